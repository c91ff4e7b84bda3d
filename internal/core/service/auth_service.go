package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/videotube/videotube-api/internal/api/metrics"
	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/ports"
)

// AuthService implements registration and the session lifecycle.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	media  ports.MediaStore
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, media ports.MediaStore) *AuthService {
	return &AuthService{users: users, tokens: tokens, media: media}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.FullName == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if in.AvatarPath == "" {
		return nil, fmt.Errorf("%w: avatar file is required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	avatarURL, err := s.media.Upload(ctx, in.AvatarPath)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}
	var coverURL string
	if in.CoverImagePath != "" {
		if coverURL, err = s.media.Upload(ctx, in.CoverImagePath); err != nil {
			return nil, fmt.Errorf("upload cover image: %w", err)
		}
	}

	user := &domain.User{
		Username:     strings.ToLower(in.Username),
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Avatar:       avatarURL,
		CoverImage:   coverURL,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created.Sanitized(), nil
}

func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*ports.LoginResult, error) {
	if usernameOrEmail == "" || password == "" {
		return nil, fmt.Errorf("%w: username or email is required", domain.ErrValidation)
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrUnauthorized
	}

	pair, err := s.rotate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.LoginResult{TokenPair: *pair, User: user.Sanitized()}, nil
}

// Refresh rotates the token pair. The incoming token must verify
// against the refresh secret AND exactly match the user's stored slot;
// a verified-but-mismatched token means it was already rotated out, and
// presenting it is treated as reuse, not a retryable failure.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthorized
	}

	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidToken
	}

	if refreshToken != user.RefreshToken {
		metrics.TokenRefreshTotal.WithLabelValues("reused").Inc()
		return nil, domain.ErrTokenReused
	}

	pair, err := s.rotate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.users.SetRefreshToken(ctx, userID, nil)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrValidation)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePasswordHash(ctx, userID, string(hash))
}

// rotate mints a fresh pair and persists the new refresh token,
// overwriting whatever the slot held. One document update; racing
// refreshes resolve at the store: first commit wins, the rest see a
// mismatched slot on their next attempt.
func (s *AuthService) rotate(ctx context.Context, userID string) (*ports.TokenPair, error) {
	access, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.users.SetRefreshToken(ctx, userID, &refresh); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
