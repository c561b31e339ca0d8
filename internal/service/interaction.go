package service

import (
	"context"
	"log/slog"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/errors"
	"github.com/literahq/litera-server/internal/id"
	"github.com/literahq/litera-server/internal/store"
)

// InteractionService appends to the interaction log. Records are
// immutable once written; the recommendation engines derive everything
// from this log.
type InteractionService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewInteractionService creates a new interaction service.
func NewInteractionService(store *store.Store, logger *slog.Logger) *InteractionService {
	return &InteractionService{store: store, logger: logger}
}

type recordOpts struct {
	rating     float64
	durationMs int64
}

// RecordView logs a book detail view with how long the user stayed.
func (s *InteractionService) RecordView(ctx context.Context, userID, bookID string, durationMs int64) (*domain.Interaction, error) {
	if durationMs < 0 {
		return nil, errors.Validation("duration must not be negative")
	}
	return s.recordChecked(ctx, userID, bookID, domain.InteractionView, recordOpts{durationMs: durationMs})
}

// RecordRating logs a rating, range 0-5.
func (s *InteractionService) RecordRating(ctx context.Context, userID, bookID string, rating float64) (*domain.Interaction, error) {
	if rating < 0 || rating > 5 {
		return nil, errors.Validation("rating must be between 0 and 5")
	}
	return s.recordChecked(ctx, userID, bookID, domain.InteractionRate, recordOpts{rating: rating})
}

// RecordFavorite logs the user favoriting a book.
func (s *InteractionService) RecordFavorite(ctx context.Context, userID, bookID string) (*domain.Interaction, error) {
	return s.recordChecked(ctx, userID, bookID, domain.InteractionFavorite, recordOpts{})
}

// RecordSearchHit logs the user opening a book from search results.
func (s *InteractionService) RecordSearchHit(ctx context.Context, userID, bookID string) (*domain.Interaction, error) {
	return s.recordChecked(ctx, userID, bookID, domain.InteractionSearch, recordOpts{})
}

// ListUserInteractions returns a user's history.
func (s *InteractionService) ListUserInteractions(ctx context.Context, userID string) ([]*domain.Interaction, error) {
	return s.store.InteractionsByUser(ctx, userID)
}

// recordChecked verifies the book exists before writing.
func (s *InteractionService) recordChecked(ctx context.Context, userID, bookID string, typ domain.InteractionType, opts recordOpts) (*domain.Interaction, error) {
	book, err := s.store.Books.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, userID, book, typ, opts)
}

// record is the lenient variant used by the loan flow: a missing book or
// a failed write is logged, never surfaced, so a bookkeeping failure
// cannot fail a borrow or return.
func (s *InteractionService) record(ctx context.Context, userID, bookID string, typ domain.InteractionType, opts recordOpts) {
	book, err := s.store.Books.Get(ctx, bookID)
	if err != nil {
		s.logger.Warn("skipping interaction for missing book", "book_id", bookID, "type", typ)
		return
	}
	if _, err := s.create(ctx, userID, book, typ, opts); err != nil {
		s.logger.Warn("failed to record interaction", "user_id", userID, "type", typ, "error", err)
	}
}

func (s *InteractionService) create(ctx context.Context, userID string, book *domain.Book, typ domain.InteractionType, opts recordOpts) (*domain.Interaction, error) {
	interID, err := id.Generate("inter")
	if err != nil {
		return nil, errors.Internal("generate interaction ID").WithCause(err)
	}

	inter := domain.NewInteraction(interID, userID, book, typ)
	inter.Rating = opts.rating
	inter.DurationMs = opts.durationMs

	if err := s.store.Interactions.Create(ctx, inter.ID, inter); err != nil {
		return nil, err
	}
	return inter, nil
}
