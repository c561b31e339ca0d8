package domain

import "time"

// InteractionType classifies a user action against the catalog.
type InteractionType string

// Interaction types. Each carries a weight when scoring recommendations;
// see the recommend package for the weight table.
const (
	InteractionView     InteractionType = "VIEW"
	InteractionBorrow   InteractionType = "BORROW"
	InteractionReturn   InteractionType = "RETURN"
	InteractionRate     InteractionType = "RATE"
	InteractionSearch   InteractionType = "SEARCH"
	InteractionFavorite InteractionType = "FAVORITE"
)

// Interaction is the atomic, immutable record of user activity.
// The interaction log is append-only - recommendations derive from it.
type Interaction struct {
	ID     string          `json:"id"`
	UserID string          `json:"user_id"`
	BookID string          `json:"book_id"`
	Type   InteractionType `json:"type"`

	// Rating is only meaningful for RATE interactions, range 0-5.
	Rating float64 `json:"rating,omitempty"`
	// DurationMs is how long the user looked at the book, for VIEW.
	DurationMs int64 `json:"duration_ms,omitempty"`

	// Denormalized from the book at record time so scoring never needs
	// a catalog lookup per event.
	Genre  string `json:"genre,omitempty"`
	Author string `json:"author,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// NewInteraction creates an interaction stamped with the current time.
func NewInteraction(id, userID string, book *Book, typ InteractionType) *Interaction {
	return &Interaction{
		ID:        id,
		UserID:    userID,
		BookID:    book.ID,
		Type:      typ,
		Genre:     book.Genre,
		Author:    book.Author,
		Timestamp: time.Now(),
	}
}
