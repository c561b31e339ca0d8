package recommend

import (
	"sort"

	"github.com/literahq/litera-server/internal/domain"
)

const (
	// Neighbors below this similarity carry no useful signal.
	similarityThreshold = 0.05
	// maxNeighbors bounds how many similar users contribute.
	maxNeighbors = 15

	collaborativeReason = "Readers with similar borrowing habits also picked this"
)

// Collaborative ranks unseen books for userID by similarity to other
// users' borrowing patterns. Falls back to Popular when the user has no
// interaction history at all.
func Collaborative(interactions []*domain.Interaction, books []*domain.Book, userID string, limit int) []domain.Recommendation {
	if limit <= 0 {
		return nil
	}

	matrix := BuildUserBookScores(interactions)

	userScores, ok := matrix[userID]
	if !ok || len(userScores) == 0 {
		return Popular(interactions, books, limit)
	}

	type neighbor struct {
		id         string
		similarity float64
	}

	neighbors := make([]neighbor, 0, len(matrix))
	for otherID, otherScores := range matrix {
		if otherID == userID {
			continue
		}
		if sim := Similarity(userScores, otherScores); sim > similarityThreshold {
			neighbors = append(neighbors, neighbor{id: otherID, similarity: sim})
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].similarity != neighbors[j].similarity {
			return neighbors[i].similarity > neighbors[j].similarity
		}
		return neighbors[i].id < neighbors[j].id
	})
	if len(neighbors) > maxNeighbors {
		neighbors = neighbors[:maxNeighbors]
	}

	// Accumulate candidate scores from each neighbor's books the target
	// user has not touched.
	accum := make(map[string]float64)
	for _, n := range neighbors {
		for bookID, score := range matrix[n.id] {
			if _, seen := userScores[bookID]; seen {
				continue
			}
			accum[bookID] += n.similarity * min(score/2, 1.0)
		}
	}

	catalog := indexBooks(books)
	recs := make([]domain.Recommendation, 0, len(accum))
	for bookID, score := range accum {
		book, ok := catalog[bookID]
		if !ok {
			continue
		}
		recs = append(recs, domain.Recommendation{
			Book:   book,
			Score:  min(score, 1.0),
			Type:   domain.RecCollaborative,
			Reason: collaborativeReason,
		})
	}

	sortByScore(recs)
	return truncate(recs, limit)
}

// indexBooks builds an ID lookup over the catalog.
func indexBooks(books []*domain.Book) map[string]*domain.Book {
	catalog := make(map[string]*domain.Book, len(books))
	for _, b := range books {
		catalog[b.ID] = b
	}
	return catalog
}

// sortByScore orders recommendations by descending score, breaking ties
// by book ID so results are deterministic.
func sortByScore(recs []domain.Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Book.ID < recs[j].Book.ID
	})
}

func truncate(recs []domain.Recommendation, limit int) []domain.Recommendation {
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
