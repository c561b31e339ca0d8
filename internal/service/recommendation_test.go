package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literahq/litera-server/internal/domain"
)

func TestRecommend_EmptyStoreYieldsEmptyList(t *testing.T) {
	env := newTestEnv(t)

	recs := env.recommendations.Recommend(context.Background(), "user-1", "hybrid", 10)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_CollaborativeSurfacesNeighborBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userA := env.createUser(t, "a@example.com")
	userB := env.createUser(t, "b@example.com")
	book1 := env.createBook(t, "Dune", 3)
	book2 := env.createBook(t, "Hyperion", 3)

	// Both borrow book1; only B borrows book2.
	for _, pair := range []struct {
		userID string
		bookID string
	}{
		{userA.ID, book1.ID},
		{userB.ID, book1.ID},
		{userB.ID, book2.ID},
	} {
		loan, err := env.loans.RequestBorrow(ctx, pair.userID, pair.bookID)
		require.NoError(t, err)
		_, err = env.loans.ConfirmBorrow(ctx, loan.ID)
		require.NoError(t, err)
	}

	recs := env.recommendations.Recommend(ctx, userA.ID, "collaborative", 10)
	require.NotEmpty(t, recs)
	assert.Equal(t, book2.ID, recs[0].Book.ID)
	assert.Positive(t, recs[0].Score)
}

func TestRecommend_PopularRanksByBorrows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reader := env.createUser(t, "reader@example.com")
	other := env.createUser(t, "other@example.com")
	hot := env.createBook(t, "Dune", 5)
	cold := env.createBook(t, "Obscure Tome", 5)

	for _, userID := range []string{reader.ID, other.ID} {
		loan, err := env.loans.RequestBorrow(ctx, userID, hot.ID)
		require.NoError(t, err)
		_, err = env.loans.ConfirmBorrow(ctx, loan.ID)
		require.NoError(t, err)
	}
	loan, err := env.loans.RequestBorrow(ctx, reader.ID, cold.ID)
	require.NoError(t, err)
	_, err = env.loans.ConfirmBorrow(ctx, loan.ID)
	require.NoError(t, err)

	recs := env.recommendations.Popular(ctx, 10)
	require.Len(t, recs, 2)
	assert.Equal(t, hot.ID, recs[0].Book.ID)
	assert.Equal(t, 1.0, recs[0].Score)
	assert.Equal(t, domain.RecPopular, recs[0].Type)
}

func TestRecordRating_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "reader@example.com")
	book := env.createBook(t, "Dune", 1)

	_, err := env.interactions.RecordRating(ctx, user.ID, book.ID, 7)
	assert.Error(t, err)

	inter, err := env.interactions.RecordRating(ctx, user.ID, book.ID, 4.5)
	require.NoError(t, err)
	assert.Equal(t, domain.InteractionRate, inter.Type)
	assert.Equal(t, 4.5, inter.Rating)
	// Genre and author are denormalized onto the record.
	assert.Equal(t, "Fiction", inter.Genre)
}
