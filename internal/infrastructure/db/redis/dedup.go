package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// viewWindow buckets view timestamps so repeated plays within the same
// window count once. Also bounds key lifetime.
const viewWindow = time.Minute

const dedupTTL = time.Hour

// ViewDedup provides idempotency checks for view events, backed by Redis.
// Key format: view:<user_id>:<video_id>:<window_bucket>
type ViewDedup struct {
	client *redis.Client
}

// NewViewDedup creates a ViewDedup wrapping the given Redis client.
func NewViewDedup(client *redis.Client) *ViewDedup {
	return &ViewDedup{client: client}
}

// IsDuplicate reports whether this view was already processed inside its
// dedup window.
func (d *ViewDedup) IsDuplicate(ctx context.Context, userID, videoID string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(userID, videoID, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this view has been processed (expires after dedupTTL).
func (d *ViewDedup) Mark(ctx context.Context, userID, videoID string, ts time.Time) error {
	return d.client.Set(ctx, d.key(userID, videoID, ts), "1", dedupTTL).Err()
}

func (d *ViewDedup) key(userID, videoID string, ts time.Time) string {
	return fmt.Sprintf("view:%s:%s:%d", userID, videoID, ts.Truncate(viewWindow).Unix())
}
