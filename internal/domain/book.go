// Package domain contains the core value types for the Litera library server.
package domain

import "time"

// Book is a catalog entry. Identity is the ID; Quantity tracks copies
// currently on the shelf and moves down on borrow, up on return.
type Book struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Publisher      string    `json:"publisher,omitempty"`
	Genre          string    `json:"genre,omitempty"`
	Specifications string    `json:"specifications,omitempty"`
	Material       string    `json:"material,omitempty"`
	Quantity       int       `json:"quantity"`
	PurchaseDate   time.Time `json:"purchase_date,omitzero"`

	// Cover is absent for books that were catalogued without one.
	CoverURL  string `json:"cover_url,omitempty"`
	BlurHash  string `json:"blur_hash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Available reports whether at least one copy is on the shelf.
func (b *Book) Available() bool {
	return b.Quantity > 0
}

// InitTimestamps sets creation timestamps on a new book.
func (b *Book) InitTimestamps() {
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
