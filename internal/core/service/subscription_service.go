package service

import (
	"context"
	"fmt"

	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/ports"
)

// SubscriptionService toggles subscription edges consumed by the
// channel-profile aggregation.
type SubscriptionService struct {
	subs  ports.SubscriptionRepository
	users ports.UserRepository
}

func NewSubscriptionService(subs ports.SubscriptionRepository, users ports.UserRepository) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users}
}

var _ ports.SubscriptionService = (*SubscriptionService)(nil)

func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if subscriberID == channelID {
		return false, fmt.Errorf("%w: cannot subscribe to own channel", domain.ErrValidation)
	}

	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		return false, domain.ErrChannelNotFound
	}

	existing, err := s.subs.Find(ctx, subscriberID, channelID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.subs.Delete(ctx, subscriberID, channelID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.subs.Create(ctx, subscriberID, channelID); err != nil {
		return false, err
	}
	return true, nil
}
