package ports

import (
	"context"

	"github.com/videotube/videotube-api/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Avatar
// and cover image are paths to files already staged on local disk by the
// transport layer; the service uploads them to the media host.
type RegisterInput struct {
	Username       string
	Email          string
	FullName       string
	Password       string
	AvatarPath     string
	CoverImagePath string // optional
}

// TokenPair is an access/refresh token couple minted together.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is returned on successful login: both tokens plus the
// sanitized user record.
type LoginResult struct {
	TokenPair
	User *domain.User
}

// AuthService implements the session lifecycle:
// Anonymous → Authenticated (login) → Authenticated (refreshed)* → Anonymous (logout).
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login authenticates by username (case-insensitive) or email.
	Login(ctx context.Context, usernameOrEmail, password string) (*LoginResult, error)
	// Refresh rotates the token pair. Presenting a token that no longer
	// matches the stored slot fails with domain.ErrTokenReused.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Logout clears the stored refresh token. Idempotent.
	Logout(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
