package store

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/literahq/litera-server/internal/domain"
)

// BatchWriter provides efficient bulk writes using BadgerDB's WriteBatch.
// Used by the seed importer; skips the per-write unique-index conflict
// checks of Entity.Create, so callers are responsible for clean input.
type BatchWriter struct {
	store *Store
	batch *badger.WriteBatch
	count int
}

// NewBatchWriter creates a new batch writer.
func (s *Store) NewBatchWriter() *BatchWriter {
	return &BatchWriter{
		store: s,
		batch: s.db.NewWriteBatch(),
	}
}

// CreateBook adds a book and its index keys to the batch.
func (b *BatchWriter) CreateBook(_ context.Context, book *domain.Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshal book: %w", err)
	}

	if err := b.batch.Set([]byte("book:"+book.ID), data); err != nil {
		return fmt.Errorf("batch set book: %w", err)
	}

	if book.Genre != "" {
		genreKey := b.store.Books.indexKeyPrefix("genre", strings.ToLower(book.Genre)) + book.ID
		if err := b.batch.Set([]byte(genreKey), []byte(book.ID)); err != nil {
			return fmt.Errorf("batch set genre index: %w", err)
		}
	}

	b.count++
	return nil
}

// CreateInteraction adds an interaction and its index keys to the batch.
func (b *BatchWriter) CreateInteraction(_ context.Context, inter *domain.Interaction) error {
	data, err := json.Marshal(inter)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	if err := b.batch.Set([]byte("inter:"+inter.ID), data); err != nil {
		return fmt.Errorf("batch set interaction: %w", err)
	}

	userKey := b.store.Interactions.indexKeyPrefix("user", inter.UserID) + inter.ID
	if err := b.batch.Set([]byte(userKey), []byte(inter.ID)); err != nil {
		return fmt.Errorf("batch set user index: %w", err)
	}
	bookKey := b.store.Interactions.indexKeyPrefix("book", inter.BookID) + inter.ID
	if err := b.batch.Set([]byte(bookKey), []byte(inter.ID)); err != nil {
		return fmt.Errorf("batch set book index: %w", err)
	}

	b.count++
	return nil
}

// Count returns the number of records queued so far.
func (b *BatchWriter) Count() int {
	return b.count
}

// Flush commits the batch.
func (b *BatchWriter) Flush() error {
	if err := b.batch.Flush(); err != nil {
		return fmt.Errorf("flush batch: %w", err)
	}
	return nil
}

// Cancel discards the batch.
func (b *BatchWriter) Cancel() {
	b.batch.Cancel()
}
