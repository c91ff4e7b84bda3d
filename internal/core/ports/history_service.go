package ports

import (
	"context"
	"time"
)

// ViewEventInput is the DTO handed from the transport layer to the view
// dispatcher. Events for the same user are processed in order so the
// watch history keeps its most-recent-last ordering.
type ViewEventInput struct {
	UserID    string
	VideoID   string
	WatchedAt time.Time
}

// HistoryService processes view events: dedup, watch-history append and
// the video view counter.
type HistoryService interface {
	Process(ctx context.Context, event ViewEventInput) error
}
