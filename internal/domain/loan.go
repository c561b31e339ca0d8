package domain

import "time"

// LoanPeriod is the fixed window between borrow confirmation and due date.
const LoanPeriod = 7 * 24 * time.Hour

// LoanStatus is the lifecycle state of a loan transaction.
//
// The source system used two different status strings for the same state
// across its notification paths; here there is one canonical enum and every
// path keys off it.
type LoanStatus string

// Loan statuses. Returned is terminal.
const (
	LoanWaitingBorrowConfirm LoanStatus = "waiting_borrow_confirm"
	LoanBorrowed             LoanStatus = "borrowed"
	LoanWaitingReturnConfirm LoanStatus = "waiting_return_confirm"
	LoanReturned             LoanStatus = "returned"
)

// Loan is a borrow transaction. Created on borrow request; status
// transitions drive the reminder pipeline.
type Loan struct {
	ID     string     `json:"id"`
	UserID string     `json:"user_id"`
	BookID string     `json:"book_id"`
	Status LoanStatus `json:"status"`

	// Denormalized book fields for display without a catalog lookup.
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Publisher string `json:"publisher,omitempty"`

	BorrowDate time.Time  `json:"borrow_date,omitzero"`
	DueDate    time.Time  `json:"due_date,omitzero"`
	ReturnDate *time.Time `json:"return_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the loan still has the book out. Reminders only
// apply to active loans.
func (l *Loan) Active() bool {
	return l.Status == LoanBorrowed || l.Status == LoanWaitingReturnConfirm
}

// ConfirmBorrow moves the loan to borrowed and starts the loan period.
func (l *Loan) ConfirmBorrow(now time.Time) {
	l.Status = LoanBorrowed
	l.BorrowDate = now
	l.DueDate = now.Add(LoanPeriod)
	l.UpdatedAt = now
}

// ConfirmReturn moves the loan to its terminal state.
func (l *Loan) ConfirmReturn(now time.Time) {
	l.Status = LoanReturned
	l.ReturnDate = &now
	l.UpdatedAt = now
}

// DayDelta returns the signed whole-day difference between the loan's due
// date and now, both truncated to midnight. Positive means days remaining,
// negative means days overdue.
func (l *Loan) DayDelta(now time.Time) int {
	due := truncateToDay(l.DueDate)
	today := truncateToDay(now)
	return int(due.Sub(today).Hours() / 24)
}

// truncateToDay normalizes a time to midnight in its own location.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
