package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/literahq/litera-server/internal/auth"
	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/errors"
	"github.com/literahq/litera-server/internal/id"
	"github.com/literahq/litera-server/internal/ratelimit"
	"github.com/literahq/litera-server/internal/store"
	"github.com/literahq/litera-server/internal/validation"
)

// AuthService handles registration, login and account lookup.
type AuthService struct {
	store     *store.Store
	tokens    *auth.TokenService
	validator *validation.Validator
	// loginLimiter throttles login attempts per email to slow down
	// credential stuffing.
	loginLimiter *ratelimit.KeyedRateLimiter
	logger       *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store *store.Store, tokens *auth.TokenService, validator *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokens:       tokens,
		validator:    validator,
		loginLimiter: ratelimit.New(1, 5),
		logger:       logger,
	}
}

// RegisterRequest holds the fields for a new member account.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=1024"`
	DisplayName string `json:"display_name" validate:"required,max=128"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is a user plus a fresh access token.
type AuthResult struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"` // seconds
}

// Register creates a member account. The first account on an empty
// instance becomes the librarian.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Validation("invalid password").WithCause(err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, errors.Internal("generate user ID").WithCause(err)
	}

	role := domain.RoleMember
	if empty, err := s.noUsersYet(ctx); err == nil && empty {
		role = domain.RoleAdmin
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Users.Create(ctx, user.ID, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.AlreadyExists("an account with this email already exists")
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.issueToken(user)
}

// Login verifies credentials and issues an access token. Failed lookups
// and bad passwords return the same error so the response doesn't reveal
// which emails have accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if !s.loginLimiter.Allow(req.Email) {
		return nil, errors.Unauthorized("too many login attempts, try again later")
	}

	user, err := s.store.Users.GetByUniqueIndex(ctx, "email", req.Email)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil || !ok {
		return nil, errors.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.issueToken(user)
}

// GetUser retrieves an account by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.Users.Get(ctx, userID)
}

// VerifyToken validates an access token and returns its claims.
func (s *AuthService) VerifyToken(tokenString string) (*auth.AccessClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, errors.Unauthorized("invalid or expired token").WithCause(err)
	}
	return claims, nil
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.Internal("generate access token").WithCause(err)
	}
	return &AuthResult{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.tokens.AccessTokenDuration().Seconds()),
	}, nil
}

// noUsersYet reports whether the instance has no accounts.
func (s *AuthService) noUsersYet(ctx context.Context) (bool, error) {
	users, err := s.store.AllUsers(ctx)
	if err != nil {
		return false, err
	}
	return len(users) == 0, nil
}
