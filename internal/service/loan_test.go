package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/errors"
)

func TestLoanLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "reader@example.com")
	book := env.createBook(t, "Dune", 2)

	loan, err := env.loans.RequestBorrow(ctx, user.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanWaitingBorrowConfirm, loan.Status)
	assert.Equal(t, "Dune", loan.Title)

	// The copy is reserved immediately.
	got, err := env.books.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)

	loan, err = env.loans.ConfirmBorrow(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanBorrowed, loan.Status)
	assert.WithinDuration(t, time.Now().Add(domain.LoanPeriod), loan.DueDate, time.Minute)

	// Borrow confirmation appends a BORROW interaction.
	inters, err := env.interactions.ListUserInteractions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, inters, 1)
	assert.Equal(t, domain.InteractionBorrow, inters[0].Type)

	loan, err = env.loans.RequestReturn(ctx, loan.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanWaitingReturnConfirm, loan.Status)

	loan, err = env.loans.ConfirmReturn(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanReturned, loan.Status)
	require.NotNil(t, loan.ReturnDate)

	// The copy is back on the shelf.
	got, err = env.books.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)

	inters, err = env.interactions.ListUserInteractions(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, inters, 2)
}

func TestRequestBorrow_NoCopies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "reader@example.com")
	book := env.createBook(t, "Dune", 1)

	_, err := env.loans.RequestBorrow(ctx, user.ID, book.ID)
	require.NoError(t, err)

	// Second borrower finds the shelf empty.
	other := env.createUser(t, "other@example.com")
	_, err = env.loans.RequestBorrow(ctx, other.ID, book.ID)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestRequestReturn_WrongUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "reader@example.com")
	intruder := env.createUser(t, "intruder@example.com")
	book := env.createBook(t, "Dune", 1)

	loan, err := env.loans.RequestBorrow(ctx, user.ID, book.ID)
	require.NoError(t, err)
	_, err = env.loans.ConfirmBorrow(ctx, loan.ID)
	require.NoError(t, err)

	_, err = env.loans.RequestReturn(ctx, loan.ID, intruder.ID)
	assert.True(t, errors.Is(err, errors.ErrForbidden))
}

func TestConfirmBorrow_WrongState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "reader@example.com")
	book := env.createBook(t, "Dune", 1)

	loan, err := env.loans.RequestBorrow(ctx, user.ID, book.ID)
	require.NoError(t, err)
	_, err = env.loans.ConfirmBorrow(ctx, loan.ID)
	require.NoError(t, err)

	// Confirming twice is a state conflict.
	_, err = env.loans.ConfirmBorrow(ctx, loan.ID)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestListUserLoans_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "reader@example.com")
	first := env.createBook(t, "Dune", 1)
	second := env.createBook(t, "Hyperion", 1)

	_, err := env.loans.RequestBorrow(ctx, user.ID, first.ID)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = env.loans.RequestBorrow(ctx, user.ID, second.ID)
	require.NoError(t, err)

	loans, err := env.loans.ListUserLoans(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, "Hyperion", loans[0].Title)
}
