package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/literahq/litera-server/internal/auth"
	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/store"
	"github.com/literahq/litera-server/internal/validation"
)

type testEnv struct {
	store           *store.Store
	books           *BookService
	loans           *LoanService
	interactions    *InteractionService
	recommendations *RecommendationService
	notifications   *NotificationService
	auth            *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.DiscardHandler)

	s, err := store.New(t.TempDir(), log)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(hex.EncodeToString(key), time.Hour)
	require.NoError(t, err)

	v := validation.New()
	interactions := NewInteractionService(s, log)

	return &testEnv{
		store:           s,
		books:           NewBookService(s, v, log),
		loans:           NewLoanService(s, interactions, log),
		interactions:    interactions,
		recommendations: NewRecommendationService(s, log),
		notifications:   NewNotificationService(s, log),
		auth:            NewAuthService(s, tokens, v, log),
	}
}

func (e *testEnv) createBook(t *testing.T, title string, quantity int) *domain.Book {
	t.Helper()

	book, err := e.books.CreateBook(context.Background(), CreateBookRequest{
		Title:    title,
		Author:   "Test Author",
		Genre:    "Fiction",
		Quantity: quantity,
	})
	require.NoError(t, err)
	return book
}

func (e *testEnv) createUser(t *testing.T, email string) *domain.User {
	t.Helper()

	result, err := e.auth.Register(context.Background(), RegisterRequest{
		Email:       email,
		Password:    "a-long-enough-password",
		DisplayName: "Test Reader",
	})
	require.NoError(t, err)
	return result.User
}
