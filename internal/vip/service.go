// Package vip is the entitlement ledger: which tier a user holds and how many
// private circles it lets them own.
package vip

import (
	"context"
	"time"

	"server/internal/domain"
)

// MembershipDuration is how long a purchase extends the entitlement. Every
// purchase replaces the prior expiry outright; there is no pro-rating.
const MembershipDuration = 30 * 24 * time.Hour

type Service struct {
	users domain.UserRepository
	tiers domain.VIPTierRepository
	now   func() time.Time
}

func NewService(users domain.UserRepository, tiers domain.VIPTierRepository) *Service {
	return &Service{users: users, tiers: tiers, now: time.Now}
}

// Tiers returns the static tier catalogue ordered by level.
func (s *Service) Tiers(ctx context.Context) ([]domain.VIPTier, error) {
	return s.tiers.List(ctx)
}

// Purchase assigns the tier to the user with a fresh 30-day expiry,
// unconditionally overwriting any prior tier and expiry. Payment settlement
// happens upstream and is assumed to have succeeded.
func (s *Service) Purchase(ctx context.Context, userID string, tierID int) (*domain.Entitlement, error) {
	tier, err := s.tiers.GetByID(ctx, tierID)
	if err != nil {
		return nil, err
	}

	expiresAt := s.now().Add(MembershipDuration)
	if err := s.users.SetVIP(ctx, userID, tierID, expiresAt); err != nil {
		return nil, err
	}
	return &domain.Entitlement{Tier: *tier, ExpiresAt: expiresAt}, nil
}

// PrivateCircleQuota returns how many private circles the user's tier allows
// them to own in total. Users without a tier get zero. Expiry is not
// consulted here.
func (s *Service) PrivateCircleQuota(ctx context.Context, userID string) (int, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user.VIPTierID == nil {
		return 0, nil
	}
	tier, err := s.tiers.GetByID(ctx, *user.VIPTierID)
	if err != nil {
		return 0, err
	}
	return tier.MaxPrivateCircles, nil
}
