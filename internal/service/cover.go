package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/literahq/litera-server/internal/errors"
	"github.com/literahq/litera-server/internal/media/covers"
	"github.com/literahq/litera-server/internal/store"
)

// CoverService manages cover images for catalog entries.
type CoverService struct {
	store      *store.Store
	storage    *covers.Storage
	downloader *covers.Downloader
	logger     *slog.Logger
}

// NewCoverService creates a new cover service.
func NewCoverService(store *store.Store, storage *covers.Storage, logger *slog.Logger) *CoverService {
	return &CoverService{
		store:      store,
		storage:    storage,
		downloader: covers.NewDownloader(storage, logger),
		logger:     logger,
	}
}

// Get returns the stored cover bytes and a content hash for cache
// validation.
func (s *CoverService) Get(ctx context.Context, bookID string) ([]byte, string, error) {
	if _, err := s.store.Books.Get(ctx, bookID); err != nil {
		return nil, "", err
	}

	if !s.storage.Exists(bookID) {
		return nil, "", errors.NotFound("no cover stored for this book")
	}

	data, err := s.storage.Get(bookID)
	if err != nil {
		return nil, "", errors.Internal("read cover").WithCause(err)
	}
	hash, err := s.storage.Hash(bookID)
	if err != nil {
		return nil, "", errors.Internal("hash cover").WithCause(err)
	}
	return data, hash, nil
}

// Fetch downloads the cover for a book from the given URL (or the book's
// stored cover URL when empty) and records the computed BlurHash on the
// catalog entry.
func (s *CoverService) Fetch(ctx context.Context, bookID, url string) (*covers.DownloadResult, error) {
	book, err := s.store.Books.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if url == "" {
		url = book.CoverURL
	}
	if url == "" {
		return nil, errors.Validation("book has no cover URL")
	}

	result := s.downloader.Download(ctx, bookID, url)
	if result.Error != nil {
		return nil, errors.Unavailable("cover download failed").WithCause(result.Error)
	}

	book.CoverURL = url
	book.BlurHash = result.BlurHash
	book.UpdatedAt = time.Now()
	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes a book's stored cover and clears its BlurHash.
func (s *CoverService) Delete(ctx context.Context, bookID string) error {
	book, err := s.store.Books.Get(ctx, bookID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(bookID); err != nil {
		return errors.Internal("delete cover").WithCause(err)
	}

	if book.BlurHash != "" {
		book.BlurHash = ""
		book.UpdatedAt = time.Now()
		if err := s.store.UpdateBook(ctx, book); err != nil {
			return err
		}
	}
	return nil
}
