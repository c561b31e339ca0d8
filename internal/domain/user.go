package domain

import (
	"slices"
	"time"
)

// Role determines what a user can do.
type Role string

// User roles.
const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User is a library member account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`

	// DeviceTokens are opaque push-delivery addresses, one per device.
	// Tokens reported unregistered by the push transport are removed.
	DeviceTokens []string `json:"device_tokens,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AddDeviceToken registers a push token, ignoring duplicates.
// Returns true if the token was added.
func (u *User) AddDeviceToken(token string) bool {
	if token == "" || slices.Contains(u.DeviceTokens, token) {
		return false
	}
	u.DeviceTokens = append(u.DeviceTokens, token)
	u.UpdatedAt = time.Now()
	return true
}

// RemoveDeviceToken drops a push token if present.
// Returns true if the token was removed.
func (u *User) RemoveDeviceToken(token string) bool {
	idx := slices.Index(u.DeviceTokens, token)
	if idx < 0 {
		return false
	}
	u.DeviceTokens = slices.Delete(u.DeviceTokens, idx, idx+1)
	u.UpdatedAt = time.Now()
	return true
}
