package domain

import (
	"errors"
	"time"
)

var (
	ErrValidation      = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized request")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenReused     = errors.New("refresh token is expired or already used")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists with this email or username")
	ErrChannelNotFound = errors.New("channel does not exist")
)

// User is the account record stored in the users collection.
//
// RefreshToken is a single slot: the platform keeps at most one live
// refresh token per user. Login and refresh overwrite it, logout clears
// it, and any presented refresh token that does not match the slot is
// treated as reused.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"cover_image,omitempty"`
	RefreshToken string    `json:"-"`
	WatchHistory []string  `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to hand to transport code: the password
// hash and the refresh token slot are blanked so they can never flow
// into a response or into request context.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	clone.RefreshToken = ""
	return &clone
}
