package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/errors"
)

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	env := newTestEnv(t)

	first := env.createUser(t, "librarian@example.com")
	assert.Equal(t, domain.RoleAdmin, first.Role)

	second := env.createUser(t, "member@example.com")
	assert.Equal(t, domain.RoleMember, second.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "reader@example.com")

	_, err := env.auth.Register(ctx, RegisterRequest{
		Email:       "Reader@Example.com", // different case, same account
		Password:    "another-long-password",
		DisplayName: "Imposter",
	})
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
}

func TestLogin_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "reader@example.com")

	result, err := env.auth.Login(ctx, LoginRequest{
		Email:    "reader@example.com",
		Password: "a-long-enough-password",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.AccessToken)
	assert.Positive(t, result.ExpiresIn)

	claims, err := env.auth.VerifyToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "reader@example.com")

	_, err := env.auth.Login(ctx, LoginRequest{
		Email:    "reader@example.com",
		Password: "not-the-password",
	})
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Login(ctx, LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestVerifyToken_Garbage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.VerifyToken("v4.local.garbage")
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}
