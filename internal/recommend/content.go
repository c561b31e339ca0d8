package recommend

import (
	"fmt"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/normalize"
)

const (
	genreWeight  = 0.7
	authorWeight = 0.3
)

// ContentBased ranks unseen books by how well they match the user's
// favorite genres and authors, derived from interaction frequency.
// Returns nil when the user has no favorites to match against.
func ContentBased(interactions []*domain.Interaction, books []*domain.Book, userID string, limit int) []domain.Recommendation {
	if limit <= 0 {
		return nil
	}

	genreCounts := make(map[string]int)
	genreNames := make(map[string]string)
	authorCounts := make(map[string]int)
	authorNames := make(map[string]string)
	seen := make(map[string]bool)

	var genreTotal, authorTotal int
	for _, inter := range interactions {
		if inter.UserID != userID {
			continue
		}
		seen[inter.BookID] = true

		if key := normalize.Key(inter.Genre); key != "" {
			genreCounts[key]++
			genreTotal++
			genreNames[key] = inter.Genre
		}
		if key := normalize.Key(inter.Author); key != "" {
			authorCounts[key]++
			authorTotal++
			authorNames[key] = inter.Author
		}
	}

	if len(genreCounts) == 0 && len(authorCounts) == 0 {
		return nil
	}

	recs := make([]domain.Recommendation, 0, limit)
	for _, book := range books {
		if seen[book.ID] {
			continue
		}

		var score float64
		var reason string

		if count, ok := genreCounts[normalize.Key(book.Genre)]; ok && genreTotal > 0 {
			score += float64(count) / float64(genreTotal) * genreWeight
			reason = fmt.Sprintf("Because you read %s books", genreNames[normalize.Key(book.Genre)])
		}
		if count, ok := authorCounts[normalize.Key(book.Author)]; ok && authorTotal > 0 {
			score += float64(count) / float64(authorTotal) * authorWeight
			if reason == "" {
				reason = fmt.Sprintf("More from %s", authorNames[normalize.Key(book.Author)])
			}
		}

		if score > 0 {
			recs = append(recs, domain.Recommendation{
				Book:   book,
				Score:  min(score, 1.0),
				Type:   domain.RecContentBased,
				Reason: reason,
			})
		}
	}

	sortByScore(recs)
	return truncate(recs, limit)
}
