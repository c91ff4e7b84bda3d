package ports

import (
	"context"

	"github.com/videotube/videotube-api/internal/core/domain"
)

// VideoRepository defines persistence for video documents.
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (*domain.Video, error)
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Video, error)
	SetPublished(ctx context.Context, id string, published bool) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}
