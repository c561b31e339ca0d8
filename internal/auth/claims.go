package auth

import (
	"time"

	"github.com/literahq/litera-server/internal/domain"
)

// AccessClaims are the claims carried in a PASETO access token. v4.local
// tokens are encrypted, so these are opaque to the client.
type AccessClaims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// IsAdmin reports whether the token belongs to a librarian account.
func (c *AccessClaims) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}
