// Package recommend computes ranked book suggestions from the interaction
// log. All engines here are pure functions over fetched data; fetching and
// error policy live in the service layer.
package recommend

import "github.com/literahq/litera-server/internal/domain"

// Interaction weights. A user's affinity for a book is the sum of the
// weights of every interaction they had with it.
const (
	weightBorrow   = 1.0
	weightReturn   = 0.5
	weightFavorite = 0.3
	weightRateHigh = 0.4 // rating >= 4.0
	weightRateLow  = 0.1
	weightSearch   = 0.05

	// A view is worth up to 0.2, scaling linearly over five minutes.
	viewFullWeightMs = 300000
	viewMaxWeight    = 0.2

	highRatingThreshold = 4.0
)

// InteractionWeight returns the affinity contribution of one interaction.
func InteractionWeight(inter *domain.Interaction) float64 {
	switch inter.Type {
	case domain.InteractionBorrow:
		return weightBorrow
	case domain.InteractionReturn:
		return weightReturn
	case domain.InteractionFavorite:
		return weightFavorite
	case domain.InteractionRate:
		if inter.Rating >= highRatingThreshold {
			return weightRateHigh
		}
		return weightRateLow
	case domain.InteractionView:
		return min(float64(inter.DurationMs)/viewFullWeightMs, viewMaxWeight)
	case domain.InteractionSearch:
		return weightSearch
	default:
		return 0
	}
}

// BuildUserBookScores accumulates a user -> book -> score matrix from the
// interaction log. Multiple interactions on the same (user, book) sum.
func BuildUserBookScores(interactions []*domain.Interaction) map[string]map[string]float64 {
	matrix := make(map[string]map[string]float64)
	for _, inter := range interactions {
		books, ok := matrix[inter.UserID]
		if !ok {
			books = make(map[string]float64)
			matrix[inter.UserID] = books
		}
		books[inter.BookID] += InteractionWeight(inter)
	}
	return matrix
}
