// Package search provides full-text catalog search using Bleve, with
// fuzzy matching, genre filtering, and availability faceting.
package search

import (
	"github.com/literahq/litera-server/internal/domain"
)

// Document is the indexed representation of a catalog book.
type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Material  string `json:"material,omitempty"`

	// Available mirrors Quantity > 0 at index time.
	Available bool `json:"available"`

	// Timestamps for sorting, Unix millis.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve defaults to Go struct field names (capitalized); our mapping uses
// lowercase names, so we convert explicitly.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"title":      d.Title,
		"available":  d.Available,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Author != "" {
		m["author"] = d.Author
	}
	if d.Publisher != "" {
		m["publisher"] = d.Publisher
	}
	if d.Genre != "" {
		m["genre"] = d.Genre
	}
	if d.Material != "" {
		m["material"] = d.Material
	}

	return m
}

// DocumentFromBook converts a catalog book into its indexed form.
func DocumentFromBook(book *domain.Book) *Document {
	return &Document{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Publisher: book.Publisher,
		Genre:     book.Genre,
		Material:  book.Material,
		Available: book.Available(),
		CreatedAt: book.CreatedAt.UnixMilli(),
		UpdatedAt: book.UpdatedAt.UnixMilli(),
	}
}
