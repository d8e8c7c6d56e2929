// Package friends manages the friendship graph: directed request edges and
// the derived undirected "friends" relation.
package friends

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

type Service struct {
	users domain.UserRepository
	edges domain.FriendshipRepository
}

func NewService(users domain.UserRepository, edges domain.FriendshipRepository) *Service {
	return &Service{users: users, edges: edges}
}

// Search returns users whose username contains query, excluding the viewer.
// Matching is case-insensitive and results are ordered by username.
func (s *Service) Search(ctx context.Context, viewerID, query string) ([]domain.Profile, error) {
	return s.users.SearchByUsername(ctx, query, viewerID)
}

// Request creates a pending friend request from fromID to toID. Any existing
// edge between the pair, in either direction and regardless of status, blocks
// a new request with ErrConflict.
func (s *Service) Request(ctx context.Context, fromID, toID string) (string, error) {
	if toID == "" {
		return "", fmt.Errorf("%w: friend_id required", domain.ErrInvalidInput)
	}
	if fromID == toID {
		return "", fmt.Errorf("%w: cannot befriend yourself", domain.ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, toID); err != nil {
		return "", err
	}

	if _, err := s.edges.EdgeBetween(ctx, fromID, toID); err == nil {
		return "", domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	edge := &domain.Friendship{
		ID:          uuid.NewString(),
		RequesterID: fromID,
		RecipientID: toID,
		Status:      domain.FriendshipPending,
		CreatedAt:   time.Now(),
	}
	created, err := s.edges.Create(ctx, edge)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// PendingRequests returns the open requests addressed to userID.
func (s *Service) PendingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return s.edges.PendingFor(ctx, userID)
}

// Respond decides a pending request. Only the edge's recipient may respond;
// an edge that has already been decided fails with ErrConflict.
func (s *Service) Respond(ctx context.Context, responderID, requestID string, accept bool) error {
	edge, err := s.edges.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if edge.RecipientID != responderID {
		return domain.ErrForbidden
	}
	if edge.Status != domain.FriendshipPending {
		return domain.ErrConflict
	}

	status := domain.FriendshipRejected
	if accept {
		status = domain.FriendshipAccepted
	}
	return s.edges.SetStatus(ctx, requestID, status)
}

// Friends returns everyone connected to userID by an accepted edge in either
// direction.
func (s *Service) Friends(ctx context.Context, userID string) ([]domain.Profile, error) {
	return s.edges.AcceptedFor(ctx, userID)
}
