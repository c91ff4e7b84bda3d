package ports

import (
	"context"

	"github.com/videotube/videotube-api/internal/core/domain"
)

// SubscriptionRepository defines persistence for subscription edges.
type SubscriptionRepository interface {
	// Find returns the edge subscriberID→channelID, or nil when absent.
	Find(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error)
	Create(ctx context.Context, subscriberID, channelID string) error
	Delete(ctx context.Context, subscriberID, channelID string) error
}
