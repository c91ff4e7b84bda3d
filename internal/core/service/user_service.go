package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/ports"
)

// UserService handles account maintenance: profile fields and the
// avatar / cover-image assets on the media host.
type UserService struct {
	users ports.UserRepository
	media ports.MediaStore
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, media ports.MediaStore, log zerolog.Logger) *UserService {
	return &UserService{users: users, media: media, log: log}
}

var _ ports.UserService = (*UserService)(nil)

func (s *UserService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error) {
	if fullName == "" || email == "" {
		return nil, fmt.Errorf("%w: full name and email are required", domain.ErrValidation)
	}
	user, err := s.users.UpdateAccount(ctx, userID, fullName, email)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.User, error) {
	return s.replaceImage(ctx, userID, localPath,
		func(u *domain.User) string { return u.Avatar },
		s.users.UpdateAvatar)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.User, error) {
	return s.replaceImage(ctx, userID, localPath,
		func(u *domain.User) string { return u.CoverImage },
		s.users.UpdateCoverImage)
}

// replaceImage uploads the new asset first, persists its URL, then
// deletes the previous asset. Deletion failure is logged, not fatal:
// an orphaned blob is cheaper than a broken profile.
func (s *UserService) replaceImage(
	ctx context.Context,
	userID, localPath string,
	current func(*domain.User) string,
	persist func(ctx context.Context, userID, url string) (*domain.User, error),
) (*domain.User, error) {
	if localPath == "" {
		return nil, fmt.Errorf("%w: image file is missing", domain.ErrValidation)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	previous := current(user)

	url, err := s.media.Upload(ctx, localPath)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	updated, err := persist(ctx, userID, url)
	if err != nil {
		return nil, err
	}

	if previous != "" {
		if err := s.media.Delete(ctx, previous); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Str("url", previous).Msg("failed to delete previous image")
		}
	}
	return updated.Sanitized(), nil
}
