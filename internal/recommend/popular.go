package recommend

import (
	"fmt"

	"github.com/literahq/litera-server/internal/domain"
)

// Popular is the default ranking when no personalization signal exists:
// the borrow-weighted score per book across all users, normalized so the
// top book scores exactly 1.0.
func Popular(interactions []*domain.Interaction, books []*domain.Book, limit int) []domain.Recommendation {
	if limit <= 0 {
		return nil
	}

	scores := make(map[string]float64)
	borrowCounts := make(map[string]int)
	var maxScore float64

	for _, inter := range interactions {
		scores[inter.BookID] += InteractionWeight(inter)
		if inter.Type == domain.InteractionBorrow {
			borrowCounts[inter.BookID]++
		}
		if scores[inter.BookID] > maxScore {
			maxScore = scores[inter.BookID]
		}
	}

	if maxScore == 0 {
		return nil
	}

	catalog := indexBooks(books)
	recs := make([]domain.Recommendation, 0, len(scores))
	for bookID, score := range scores {
		book, ok := catalog[bookID]
		if !ok {
			continue
		}
		recs = append(recs, domain.Recommendation{
			Book:   book,
			Score:  score / maxScore,
			Type:   domain.RecPopular,
			Reason: fmt.Sprintf("Borrowed %d times", borrowCounts[bookID]),
		})
	}

	sortByScore(recs)
	return truncate(recs, limit)
}
