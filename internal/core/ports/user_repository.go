package ports

import (
	"context"

	"github.com/videotube/videotube-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsernameOrEmail matches either field; the username side of the
	// lookup is case-insensitive because usernames are stored lowercase.
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error)

	// SetRefreshToken overwrites the user's single refresh-token slot.
	// A nil token clears the slot (logout). This write deliberately skips
	// full record validation: it only ever runs post-authentication.
	SetRefreshToken(ctx context.Context, userID string, token *string) error

	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
	UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, userID, coverImageURL string) (*domain.User, error)

	// AppendWatchHistory moves videoID to the tail of the user's watch
	// history, removing any earlier occurrence first so the list stays
	// ordered by most recent watch without duplicates.
	AppendWatchHistory(ctx context.Context, userID, videoID string) error
}
