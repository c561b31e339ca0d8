package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/recommend"
	"github.com/literahq/litera-server/internal/store"
)

// defaultRecommendationLimit caps result size when the caller asks for
// nothing specific.
const defaultRecommendationLimit = 10

// RecommendationService fetches the interaction log and catalog, then
// delegates to the scoring engines. Failures never propagate: a store or
// engine problem yields an empty list and a log line, because an empty
// shelf beats a failed home screen.
type RecommendationService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(store *store.Store, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{store: store, logger: logger}
}

// Recommend produces a ranked list for the user. kind selects the engine:
// "collaborative", "content", "popular", or anything else for the hybrid
// blend.
func (s *RecommendationService) Recommend(ctx context.Context, userID, kind string, limit int) []domain.Recommendation {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	interactions, err := s.store.AllInteractions(ctx)
	if err != nil {
		s.logger.Warn("failed to load interaction log for recommendations", "error", err)
		return []domain.Recommendation{}
	}

	books, err := s.store.AllBooks(ctx)
	if err != nil {
		s.logger.Warn("failed to load catalog for recommendations", "error", err)
		return []domain.Recommendation{}
	}

	switch strings.ToLower(kind) {
	case "collaborative":
		return recommend.Collaborative(interactions, books, userID, limit)
	case "content":
		return recommend.ContentBased(interactions, books, userID, limit)
	case "popular":
		return recommend.Popular(interactions, books, limit)
	default:
		return recommend.Hybrid(s.logger, interactions, books, userID, limit)
	}
}

// Popular returns the non-personalized popularity ranking, used for
// anonymous visitors and empty-history users.
func (s *RecommendationService) Popular(ctx context.Context, limit int) []domain.Recommendation {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	interactions, err := s.store.AllInteractions(ctx)
	if err != nil {
		s.logger.Warn("failed to load interaction log for popularity ranking", "error", err)
		return []domain.Recommendation{}
	}
	books, err := s.store.AllBooks(ctx)
	if err != nil {
		s.logger.Warn("failed to load catalog for popularity ranking", "error", err)
		return []domain.Recommendation{}
	}

	return recommend.Popular(interactions, books, limit)
}
