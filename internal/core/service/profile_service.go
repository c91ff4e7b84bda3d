package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/ports"
)

// ProfileService serves the two derived views. All heavy lifting lives
// behind ProfileReader; this layer normalizes input and owns the
// not-found semantics.
type ProfileService struct {
	profiles ports.ProfileReader
}

func NewProfileService(profiles ports.ProfileReader) *ProfileService {
	return &ProfileService{profiles: profiles}
}

var _ ports.ProfileService = (*ProfileService)(nil)

func (s *ProfileService) GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is missing", domain.ErrValidation)
	}

	profile, err := s.profiles.ChannelProfile(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrChannelNotFound
	}
	return profile, nil
}

func (s *ProfileService) GetWatchHistory(ctx context.Context, userID string) ([]domain.WatchedVideo, error) {
	history, err := s.profiles.WatchHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []domain.WatchedVideo{}
	}
	return history, nil
}
