// Package store implements the document store on BadgerDB. Each domain
// collection is a generic Entity with its own key prefix and secondary
// indexes.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/literahq/litera-server/internal/domain"
)

// SearchIndexer keeps the catalog search index in sync with store writes.
// Store calls it on book mutations without depending on the search
// implementation.
type SearchIndexer interface {
	IndexBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, bookID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexBook is a no-op.
func (NoopSearchIndexer) IndexBook(context.Context, *domain.Book) error { return nil }

// DeleteBook is a no-op.
func (NoopSearchIndexer) DeleteBook(context.Context, string) error { return nil }

// Store wraps a Badger database instance and exposes typed collections.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Search indexer for keeping search in sync with catalog changes.
	// Set via SetSearchIndexer after store creation to avoid circular
	// dependencies.
	searchIndexer SearchIndexer

	Users         *Entity[domain.User]
	Books         *Entity[domain.Book]
	Interactions  *Entity[domain.Interaction]
	Loans         *Entity[domain.Loan]
	Notifications *Entity[domain.Notification]
	Markers       *Entity[domain.SentMarker]
}

// New opens the database at path and initializes the collections.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync writes to disk to survive crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{
		db:            db,
		logger:        logger,
		searchIndexer: NoopSearchIndexer{},
	}
	s.initCollections()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return s, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
// Set after store creation because the search service needs the store to
// exist first.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	if indexer == nil {
		indexer = NoopSearchIndexer{}
	}
	s.searchIndexer = indexer
}

// initCollections wires up the typed entities and their indexes.
func (s *Store) initCollections() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithUniqueIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail,
		)

	s.Books = NewEntity[domain.Book](s, "book:").
		WithIndex("genre", func(b *domain.Book) (string, []string) {
			return b.ID, []string{strings.ToLower(b.Genre)}
		})

	s.Interactions = NewEntity[domain.Interaction](s, "inter:").
		WithIndex("user", func(i *domain.Interaction) (string, []string) {
			return i.ID, []string{i.UserID}
		}).
		WithIndex("book", func(i *domain.Interaction) (string, []string) {
			return i.ID, []string{i.BookID}
		})

	s.Loans = NewEntity[domain.Loan](s, "loan:").
		WithIndex("user", func(l *domain.Loan) (string, []string) {
			return l.ID, []string{l.UserID}
		}).
		WithIndex("status", func(l *domain.Loan) (string, []string) {
			return l.ID, []string{string(l.Status)}
		})

	s.Notifications = NewEntity[domain.Notification](s, "notif:").
		WithIndex("user", func(n *domain.Notification) (string, []string) {
			return n.ID, []string{n.UserID}
		})

	// Markers are keyed by their composite dedup ID; no secondary indexes.
	s.Markers = NewEntity[domain.SentMarker](s, "marker:")
}

// normalizeEmail lowercases and trims an email for index lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
