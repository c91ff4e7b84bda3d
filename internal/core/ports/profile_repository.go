package ports

import (
	"context"

	"github.com/videotube/videotube-api/internal/core/domain"
)

// ProfileReader exposes the two derived views computed from the document
// store. Implementations are free to use aggregation pipelines or
// explicit joins; callers only see the projected results.
type ProfileReader interface {
	// ChannelProfile resolves a channel by lowercase username and computes
	// subscriber counts plus whether viewerID subscribes to it. viewerID
	// may be empty (anonymous viewer), in which case IsSubscribed is false.
	ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)

	// WatchHistory resolves the user's ordered watch-history ids into full
	// video records, each joined with its owner's reduced projection.
	WatchHistory(ctx context.Context, userID string) ([]domain.WatchedVideo, error)
}
