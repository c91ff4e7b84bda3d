package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/videotube/videotube-api/internal/api/metrics"
	"github.com/videotube/videotube-api/internal/core/ports"
)

// ViewDeduper abstracts the idempotency store (Redis) for view events.
type ViewDeduper interface {
	IsDuplicate(ctx context.Context, userID, videoID string, ts time.Time) (bool, error)
	Mark(ctx context.Context, userID, videoID string, ts time.Time) error
}

type historyService struct {
	users  ports.UserRepository
	videos ports.VideoRepository
	dedup  ViewDeduper
	log    zerolog.Logger
}

// NewHistoryService returns a HistoryService implementation.
func NewHistoryService(users ports.UserRepository, videos ports.VideoRepository, dedup ViewDeduper, log zerolog.Logger) ports.HistoryService {
	return &historyService{users: users, videos: videos, dedup: dedup, log: log}
}

// Process deduplicates and persists a single view event: the video id
// moves to the tail of the viewer's watch history and the video's view
// counter increments once per dedup window.
func (s *historyService) Process(ctx context.Context, in ports.ViewEventInput) error {
	start := time.Now()

	isDup, err := s.dedup.IsDuplicate(ctx, in.UserID, in.VideoID, in.WatchedAt)
	if err != nil {
		s.log.Warn().Err(err).Str("video_id", in.VideoID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.ViewsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("user_id", in.UserID).Str("video_id", in.VideoID).Msg("duplicate view skipped")
		return nil
	}
	metrics.ViewsDedupTotal.WithLabelValues("miss").Inc()

	if _, err := s.videos.FindByID(ctx, in.VideoID); err != nil {
		metrics.ViewsErrorsTotal.WithLabelValues("video_not_found").Inc()
		return fmt.Errorf("process view: %w", err)
	}

	// Mark before writing so a crash-retry cannot double count.
	if markErr := s.dedup.Mark(ctx, in.UserID, in.VideoID, in.WatchedAt); markErr != nil {
		s.log.Warn().Err(markErr).Str("video_id", in.VideoID).Msg("failed to set dedup key")
	}

	if err := s.users.AppendWatchHistory(ctx, in.UserID, in.VideoID); err != nil {
		metrics.ViewsErrorsTotal.WithLabelValues("history_update_failed").Inc()
		return fmt.Errorf("process view: append history: %w", err)
	}

	if err := s.videos.IncrementViews(ctx, in.VideoID); err != nil {
		// History already recorded; count drift is tolerable.
		s.log.Warn().Err(err).Str("video_id", in.VideoID).Msg("failed to increment view counter")
	}

	metrics.ViewsProcessedTotal.Inc()
	metrics.ViewProcessingDuration.Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("user_id", in.UserID).
		Str("video_id", in.VideoID).
		Msg("view processed")

	return nil
}
