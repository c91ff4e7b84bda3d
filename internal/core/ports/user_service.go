package ports

import (
	"context"

	"github.com/videotube/videotube-api/internal/core/domain"
)

// UserService covers account maintenance for an authenticated user.
type UserService interface {
	UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error)
	// UpdateAvatar uploads the staged file, swaps the stored URL and
	// deletes the previous asset from the media host.
	UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.User, error)
}

// ProfileService exposes the derived read views.
type ProfileService interface {
	GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID string) ([]domain.WatchedVideo, error)
}

// SubscriptionService toggles subscription edges.
type SubscriptionService interface {
	// Toggle creates the subscriber→channel edge if absent, removes it if
	// present, and reports the resulting state.
	Toggle(ctx context.Context, subscriberID, channelID string) (subscribed bool, err error)
}
