package domain

import (
	"fmt"
	"time"
)

// NotificationKind classifies a notification for the client.
type NotificationKind string

// Notification kinds.
const (
	NotificationGeneral        NotificationKind = "general"
	NotificationReturnReminder NotificationKind = "return_reminder"
	NotificationOverdue        NotificationKind = "overdue"
)

// Notification is a persisted, user-visible message. Created by the
// reminder pipeline; the user flips IsRead; never deleted automatically.
type Notification struct {
	ID      string           `json:"id"`
	UserID  string           `json:"user_id"`
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	IsRead  bool             `json:"is_read"`

	// RelatedItemID points at the loan (or other record) that produced
	// this notification, when there is one.
	RelatedItemID    string `json:"related_item_id,omitempty"`
	RelatedItemTitle string `json:"related_item_title,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// SentMarker is a write-once-per-day dedup record. At most one marker
// exists per (user, loan, type key, date sent); its presence means the
// corresponding notification already went out today.
//
// The check for a marker and the write of a new one are deliberately not
// atomic. Concurrent scans can both pass the check and double-send; the
// scan cadence makes that rare and a duplicate is a UX blemish, not a
// correctness failure.
type SentMarker struct {
	UserID   string    `json:"user_id"`
	LoanID   string    `json:"loan_id"`
	TypeKey  string    `json:"type_key"`
	DateSent string    `json:"date_sent"` // YYYY-MM-DD, local to the scanner
	SentAt   time.Time `json:"sent_at"`
}

// MarkerID builds the composite dedup key for a sent marker.
func MarkerID(userID, loanID, typeKey, dateSent string) string {
	return fmt.Sprintf("%s:%s:%s:%s", userID, loanID, typeKey, dateSent)
}

// ID returns the marker's composite key.
func (m *SentMarker) ID() string {
	return MarkerID(m.UserID, m.LoanID, m.TypeKey, m.DateSent)
}

// DateKey formats a time as the marker date bucket.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
