// Package service provides the business logic layer for the catalog,
// loans, interactions, recommendations and notifications.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/errors"
	"github.com/literahq/litera-server/internal/id"
	"github.com/literahq/litera-server/internal/store"
	"github.com/literahq/litera-server/internal/validation"
)

// BookService orchestrates catalog operations.
type BookService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *BookService {
	return &BookService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateBookRequest holds the fields for a new catalog entry.
type CreateBookRequest struct {
	Title          string    `json:"title" validate:"required,max=512"`
	Author         string    `json:"author" validate:"required,max=256"`
	Publisher      string    `json:"publisher" validate:"max=256"`
	Genre          string    `json:"genre" validate:"max=128"`
	Specifications string    `json:"specifications" validate:"max=2048"`
	Material       string    `json:"material" validate:"max=128"`
	Quantity       int       `json:"quantity" validate:"gte=0"`
	PurchaseDate   time.Time `json:"purchase_date,omitzero"`
	CoverURL       string    `json:"cover_url" validate:"omitempty,url"`
}

// UpdateBookRequest holds editable catalog fields. Nil pointers leave the
// existing value untouched.
type UpdateBookRequest struct {
	Title          *string    `json:"title" validate:"omitempty,max=512"`
	Author         *string    `json:"author" validate:"omitempty,max=256"`
	Publisher      *string    `json:"publisher" validate:"omitempty,max=256"`
	Genre          *string    `json:"genre" validate:"omitempty,max=128"`
	Specifications *string    `json:"specifications" validate:"omitempty,max=2048"`
	Material       *string    `json:"material" validate:"omitempty,max=128"`
	Quantity       *int       `json:"quantity" validate:"omitempty,gte=0"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	CoverURL       *string    `json:"cover_url" validate:"omitempty,url"`
}

// CreateBook adds a book to the catalog.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, errors.Internal("generate book ID").WithCause(err)
	}

	book := &domain.Book{
		ID:             bookID,
		Title:          req.Title,
		Author:         req.Author,
		Publisher:      req.Publisher,
		Genre:          req.Genre,
		Specifications: req.Specifications,
		Material:       req.Material,
		Quantity:       req.Quantity,
		PurchaseDate:   req.PurchaseDate,
		CoverURL:       req.CoverURL,
	}
	book.InitTimestamps()

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book created", "book_id", book.ID, "title", book.Title)
	return book, nil
}

// GetBook retrieves a single book by ID.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.store.Books.Get(ctx, bookID)
}

// ListBooks returns the catalog, optionally filtered to one genre.
func (s *BookService) ListBooks(ctx context.Context, genre string) ([]*domain.Book, error) {
	if genre != "" {
		return s.store.BooksByGenre(ctx, genre)
	}
	return s.store.AllBooks(ctx)
}

// UpdateBook applies a partial edit to a catalog entry.
func (s *BookService) UpdateBook(ctx context.Context, bookID string, req UpdateBookRequest) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.store.Books.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}
	if req.Specifications != nil {
		book.Specifications = *req.Specifications
	}
	if req.Material != nil {
		book.Material = *req.Material
	}
	if req.Quantity != nil {
		book.Quantity = *req.Quantity
	}
	if req.PurchaseDate != nil {
		book.PurchaseDate = *req.PurchaseDate
	}
	if req.CoverURL != nil {
		book.CoverURL = *req.CoverURL
	}
	book.UpdatedAt = time.Now()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// DeleteBook removes a book from the catalog and the search index.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return err
	}
	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}
