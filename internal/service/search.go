package service

import (
	"context"
	"log/slog"

	"github.com/literahq/litera-server/internal/search"
	"github.com/literahq/litera-server/internal/store"
)

// SearchService fronts the full-text catalog index.
type SearchService struct {
	index  *search.Index
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, store *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{index: index, store: store, logger: logger}
}

// Search runs a catalog query.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// Reindex drops the index and rebuilds it from the catalog. Admin-only;
// blocks searches while the rebuild runs.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	books, err := s.store.AllBooks(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.index.Rebuild(); err != nil {
		return 0, err
	}
	if err := s.index.IndexBooks(books); err != nil {
		return 0, err
	}

	s.logger.Info("search index rebuilt", "books", len(books))
	return len(books), nil
}
