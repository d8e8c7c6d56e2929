// Package circles is the access-control core for membership-gated content
// groups: who may see, create, invite into, and post inside a circle.
package circles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

// QuotaSource answers how many private circles a user may own in total.
type QuotaSource interface {
	PrivateCircleQuota(ctx context.Context, userID string) (int, error)
}

type Service struct {
	users   domain.UserRepository
	circles domain.CircleRepository
	posts   domain.PostRepository
	quota   QuotaSource
}

func NewService(users domain.UserRepository, circles domain.CircleRepository, posts domain.PostRepository, quota QuotaSource) *Service {
	return &Service{users: users, circles: circles, posts: posts, quota: quota}
}

// Visible returns every public circle plus the private circles where the
// viewer holds a membership.
func (s *Service) Visible(ctx context.Context, viewerID string) ([]domain.CircleSummary, error) {
	return s.circles.VisibleTo(ctx, viewerID)
}

// Create makes a new circle with the creator as its admin member. Private
// circles require the creator to hold a VIP tier with remaining private-circle
// quota; the quota boundary is enforced atomically with the insert, so two
// concurrent creates at the limit cannot both succeed.
func (s *Service) Create(ctx context.Context, creatorID, name, description string, private bool) (*domain.Circle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}

	maxPrivate := 0
	if private {
		quota, err := s.quota.PrivateCircleQuota(ctx, creatorID)
		if err != nil {
			return nil, err
		}
		if quota <= 0 {
			return nil, fmt.Errorf("%w: private circles require a VIP tier", domain.ErrForbidden)
		}
		maxPrivate = quota
	}

	circle := &domain.Circle{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatorID:   creatorID,
		IsPrivate:   private,
		CreatedAt:   time.Now(),
	}
	return s.circles.CreateWithFounder(ctx, circle, maxPrivate)
}

// Invite adds a user to the circle as a plain member. Only admins and
// moderators may invite. Inviting an existing member is a no-op.
func (s *Service) Invite(ctx context.Context, circleID, inviterID, inviteeID string) error {
	if inviteeID == "" {
		return fmt.Errorf("%w: user_id required", domain.ErrInvalidInput)
	}
	if _, err := s.circles.GetByID(ctx, circleID); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, inviteeID); err != nil {
		return err
	}

	role, err := s.circles.MemberRole(ctx, circleID, inviterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if !role.CanInvite() {
		return domain.ErrForbidden
	}

	return s.circles.AddMember(ctx, &domain.CircleMember{
		ID:       uuid.NewString(),
		CircleID: circleID,
		UserID:   inviteeID,
		Role:     domain.CircleRoleMember,
		JoinedAt: time.Now(),
	})
}

// Posts returns the circle's posts, newest first. Private circles are
// readable by members only, regardless of role.
func (s *Service) Posts(ctx context.Context, circleID, viewerID string) ([]domain.PostSummary, error) {
	if err := s.authorizeAccess(ctx, circleID, viewerID); err != nil {
		return nil, err
	}
	return s.posts.ListByCircle(ctx, circleID)
}

// CreatePost publishes a post in the circle under the same visibility gate as
// reading.
func (s *Service) CreatePost(ctx context.Context, circleID, authorID, title, content string) (*domain.Post, error) {
	if err := s.authorizeAccess(ctx, circleID, authorID); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: title and content required", domain.ErrInvalidInput)
	}

	return s.posts.Create(ctx, &domain.Post{
		ID:        uuid.NewString(),
		CircleID:  circleID,
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

// authorizeAccess fails with ErrNotFound for a missing circle and with
// ErrForbidden when a private circle is accessed by a non-member.
func (s *Service) authorizeAccess(ctx context.Context, circleID, userID string) error {
	circle, err := s.circles.GetByID(ctx, circleID)
	if err != nil {
		return err
	}
	if !circle.IsPrivate {
		return nil
	}
	if _, err := s.circles.MemberRole(ctx, circleID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	return nil
}
