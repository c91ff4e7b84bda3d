package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/videotube/videotube-api/internal/api/metrics"
	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/ports"
)

// VideoService implements the video CRUD subset. Ownership checks are
// enforced here, not in handlers.
type VideoService struct {
	videos ports.VideoRepository
	media  ports.MediaStore
	log    zerolog.Logger
}

func NewVideoService(videos ports.VideoRepository, media ports.MediaStore, log zerolog.Logger) *VideoService {
	return &VideoService{videos: videos, media: media, log: log}
}

var _ ports.VideoService = (*VideoService)(nil)

func (s *VideoService) Publish(ctx context.Context, in ports.PublishVideoInput) (*domain.Video, error) {
	if in.Title == "" || in.VideoPath == "" || in.ThumbnailPath == "" {
		return nil, fmt.Errorf("%w: title, video file and thumbnail are required", domain.ErrValidation)
	}

	videoURL, err := s.media.Upload(ctx, in.VideoPath)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}
	thumbURL, err := s.media.Upload(ctx, in.ThumbnailPath)
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	video := &domain.Video{
		OwnerID:         in.OwnerID,
		VideoFile:       videoURL,
		Thumbnail:       thumbURL,
		Title:           in.Title,
		Description:     in.Description,
		DurationSeconds: in.DurationSeconds,
		IsPublished:     true,
	}

	created, err := s.videos.Create(ctx, video)
	if err != nil {
		return nil, err
	}

	metrics.VideosPublishedTotal.Inc()
	return created, nil
}

func (s *VideoService) Get(ctx context.Context, id string) (*domain.Video, error) {
	return s.videos.FindByID(ctx, id)
}

func (s *VideoService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Video, error) {
	return s.videos.ListByOwner(ctx, ownerID)
}

func (s *VideoService) Delete(ctx context.Context, id, requesterID string) error {
	video, err := s.owned(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, id); err != nil {
		return err
	}

	// Blob cleanup is best effort; the document is already gone.
	for _, url := range []string{video.VideoFile, video.Thumbnail} {
		if url == "" {
			continue
		}
		if err := s.media.Delete(ctx, url); err != nil {
			s.log.Warn().Err(err).Str("video_id", id).Str("url", url).Msg("failed to delete video asset")
		}
	}
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, id, requesterID string) (*domain.Video, error) {
	video, err := s.owned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if err := s.videos.SetPublished(ctx, id, !video.IsPublished); err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

func (s *VideoService) owned(ctx context.Context, id, requesterID string) (*domain.Video, error) {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != requesterID {
		// Surface as not-found rather than leaking the video's existence.
		return nil, domain.ErrVideoNotFound
	}
	return video, nil
}
