package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/errors"
	"github.com/literahq/litera-server/internal/id"
	"github.com/literahq/litera-server/internal/store"
)

// LoanService drives the borrow/return lifecycle. A copy is reserved the
// moment the borrow is requested; it goes back on the shelf only when the
// return is confirmed.
type LoanService struct {
	store        *store.Store
	interactions *InteractionService
	logger       *slog.Logger
}

// NewLoanService creates a new loan service.
func NewLoanService(store *store.Store, interactions *InteractionService, logger *slog.Logger) *LoanService {
	return &LoanService{
		store:        store,
		interactions: interactions,
		logger:       logger,
	}
}

// RequestBorrow creates a loan awaiting librarian confirmation and
// reserves a copy.
func (s *LoanService) RequestBorrow(ctx context.Context, userID, bookID string) (*domain.Loan, error) {
	book, err := s.store.Books.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.Available() {
		return nil, errors.Conflict("no copies available")
	}

	loanID, err := id.Generate("loan")
	if err != nil {
		return nil, errors.Internal("generate loan ID").WithCause(err)
	}

	now := time.Now()
	loan := &domain.Loan{
		ID:        loanID,
		UserID:    userID,
		BookID:    book.ID,
		Status:    domain.LoanWaitingBorrowConfirm,
		Title:     book.Title,
		Author:    book.Author,
		Genre:     book.Genre,
		Publisher: book.Publisher,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Loans.Create(ctx, loan.ID, loan); err != nil {
		return nil, err
	}

	book.Quantity--
	book.UpdatedAt = now
	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("borrow requested", "loan_id", loan.ID, "user_id", userID, "book_id", bookID)
	return loan, nil
}

// ConfirmBorrow is the librarian's approval: the loan becomes active and
// the 7-day period starts. Records a BORROW interaction.
func (s *LoanService) ConfirmBorrow(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.store.Loans.Get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != domain.LoanWaitingBorrowConfirm {
		return nil, errors.Conflict("loan is not awaiting borrow confirmation")
	}

	loan.ConfirmBorrow(time.Now())
	if err := s.store.Loans.Update(ctx, loan.ID, loan); err != nil {
		return nil, err
	}

	s.interactions.record(ctx, loan.UserID, loan.BookID, domain.InteractionBorrow, recordOpts{})

	s.logger.Info("borrow confirmed", "loan_id", loan.ID, "due_date", loan.DueDate)
	return loan, nil
}

// RequestReturn is the member handing the book back; it awaits librarian
// confirmation. Only the borrower can request it.
func (s *LoanService) RequestReturn(ctx context.Context, loanID, userID string) (*domain.Loan, error) {
	loan, err := s.store.Loans.Get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, errors.Forbidden("loan belongs to another user")
	}
	if loan.Status != domain.LoanBorrowed {
		return nil, errors.Conflict("loan is not currently borrowed")
	}

	loan.Status = domain.LoanWaitingReturnConfirm
	loan.UpdatedAt = time.Now()
	if err := s.store.Loans.Update(ctx, loan.ID, loan); err != nil {
		return nil, err
	}

	return loan, nil
}

// ConfirmReturn closes the loan, puts the copy back on the shelf, and
// records a RETURN interaction.
func (s *LoanService) ConfirmReturn(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.store.Loans.Get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != domain.LoanWaitingReturnConfirm && loan.Status != domain.LoanBorrowed {
		return nil, errors.Conflict("loan is not out")
	}

	loan.ConfirmReturn(time.Now())
	if err := s.store.Loans.Update(ctx, loan.ID, loan); err != nil {
		return nil, err
	}

	if book, err := s.store.Books.Get(ctx, loan.BookID); err == nil {
		book.Quantity++
		book.UpdatedAt = time.Now()
		if err := s.store.UpdateBook(ctx, book); err != nil {
			s.logger.Warn("failed to restore book quantity", "book_id", book.ID, "error", err)
		}
	} else {
		// Book removed from the catalog while on loan; nothing to restore.
		s.logger.Warn("returned book missing from catalog", "book_id", loan.BookID)
	}

	s.interactions.record(ctx, loan.UserID, loan.BookID, domain.InteractionReturn, recordOpts{})

	s.logger.Info("return confirmed", "loan_id", loan.ID)
	return loan, nil
}

// ListUserLoans returns all of a user's loans, newest first.
func (s *LoanService) ListUserLoans(ctx context.Context, userID string) ([]*domain.Loan, error) {
	loans, err := s.store.LoansByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortLoansNewestFirst(loans)
	return loans, nil
}

// ListLoansByStatus returns all loans in one lifecycle state.
func (s *LoanService) ListLoansByStatus(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error) {
	loans, err := s.store.LoansByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	sortLoansNewestFirst(loans)
	return loans, nil
}

// GetLoan retrieves one loan.
func (s *LoanService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	return s.store.Loans.Get(ctx, loanID)
}

func sortLoansNewestFirst(loans []*domain.Loan) {
	slices.SortFunc(loans, func(a, b *domain.Loan) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
