package ports

import (
	"context"

	"github.com/videotube/videotube-api/internal/core/domain"
)

// PublishVideoInput carries the data for publishing a new video. File
// paths point at locally staged uploads.
type PublishVideoInput struct {
	OwnerID         string
	Title           string
	Description     string
	DurationSeconds float64
	VideoPath       string
	ThumbnailPath   string
}

// VideoService defines use-case operations for videos.
type VideoService interface {
	Publish(ctx context.Context, in PublishVideoInput) (*domain.Video, error)
	Get(ctx context.Context, id string) (*domain.Video, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Video, error)
	// Delete and TogglePublish are owner-only operations.
	Delete(ctx context.Context, id, requesterID string) error
	TogglePublish(ctx context.Context, id, requesterID string) (*domain.Video, error)
}
