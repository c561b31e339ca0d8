package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/literahq/litera-server/internal/domain"
)

// CreateBook persists a new book and schedules a search index update.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if err := s.Books.Create(ctx, book.ID, book); err != nil {
		return err
	}
	s.indexBookAsync(book)
	return nil
}

// UpdateBook persists book changes and schedules a search index update.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	if err := s.Books.Update(ctx, book.ID, book); err != nil {
		return err
	}
	s.indexBookAsync(book)
	return nil
}

// DeleteBook removes a book and its search document.
func (s *Store) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.Books.Delete(ctx, bookID); err != nil {
		return err
	}
	go func() {
		if err := s.searchIndexer.DeleteBook(context.Background(), bookID); err != nil && s.logger != nil {
			s.logger.Warn("failed to remove book from search index", "book_id", bookID, "error", err)
		}
	}()
	return nil
}

// indexBookAsync updates the search index without blocking the write path.
func (s *Store) indexBookAsync(book *domain.Book) {
	b := *book
	go func() {
		if err := s.searchIndexer.IndexBook(context.Background(), &b); err != nil && s.logger != nil {
			s.logger.Warn("failed to index book", "book_id", b.ID, "error", err)
		}
	}()
}

// AllUsers collects every account.
func (s *Store) AllUsers(ctx context.Context) ([]*domain.User, error) {
	return collect(s.Users.List(ctx))
}

// AllBooks collects the whole catalog.
func (s *Store) AllBooks(ctx context.Context) ([]*domain.Book, error) {
	return collect(s.Books.List(ctx))
}

// BooksByGenre collects catalog entries in one genre, case-insensitive.
func (s *Store) BooksByGenre(ctx context.Context, genre string) ([]*domain.Book, error) {
	return collect(s.Books.ListByIndex(ctx, "genre", strings.ToLower(genre)))
}

// AllInteractions collects the full interaction log.
func (s *Store) AllInteractions(ctx context.Context) ([]*domain.Interaction, error) {
	return collect(s.Interactions.List(ctx))
}

// InteractionsByUser collects one user's interaction history.
func (s *Store) InteractionsByUser(ctx context.Context, userID string) ([]*domain.Interaction, error) {
	return collect(s.Interactions.ListByIndex(ctx, "user", userID))
}

// LoansByUser collects all loans for a user.
func (s *Store) LoansByUser(ctx context.Context, userID string) ([]*domain.Loan, error) {
	return collect(s.Loans.ListByIndex(ctx, "user", userID))
}

// LoansByStatus collects all loans in a given state.
func (s *Store) LoansByStatus(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error) {
	return collect(s.Loans.ListByIndex(ctx, "status", string(status)))
}

// ActiveLoans collects loans that still have the book out: borrowed plus
// waiting for return confirmation.
func (s *Store) ActiveLoans(ctx context.Context) ([]*domain.Loan, error) {
	borrowed, err := s.LoansByStatus(ctx, domain.LoanBorrowed)
	if err != nil {
		return nil, err
	}
	waiting, err := s.LoansByStatus(ctx, domain.LoanWaitingReturnConfirm)
	if err != nil {
		return nil, err
	}
	return append(borrowed, waiting...), nil
}

// NotificationsByUser collects a user's notifications.
func (s *Store) NotificationsByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return collect(s.Notifications.ListByIndex(ctx, "user", userID))
}

// MarkerExists reports whether a dedup marker is already present.
//
// Checking here and writing the marker later is intentionally not atomic;
// see domain.SentMarker.
func (s *Store) MarkerExists(ctx context.Context, markerID string) (bool, error) {
	return s.Markers.Exists(ctx, markerID)
}

// PutMarker writes a dedup marker under its composite key.
func (s *Store) PutMarker(ctx context.Context, marker *domain.SentMarker) error {
	return s.Markers.Create(ctx, marker.ID(), marker)
}

// collect drains an entity iterator into a slice.
func collect[T any](seq func(yield func(*T, error) bool)) ([]*T, error) {
	var out []*T
	var iterErr error
	seq(func(item *T, err error) bool {
		if err != nil {
			iterErr = err
			return false
		}
		out = append(out, item)
		return true
	})
	if iterErr != nil {
		return nil, fmt.Errorf("iterate collection: %w", iterErr)
	}
	return out, nil
}
