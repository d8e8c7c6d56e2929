package domain

import (
	"context"
	"time"
)

// UserRepository defines access methods for users.
type UserRepository interface {
	// Create inserts a new user. Returns ErrConflict when the username is taken.
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// SearchByUsername returns users whose username contains query
	// (case-insensitive), excluding excludeID, ordered by username.
	SearchByUsername(ctx context.Context, query, excludeID string) ([]Profile, error)
	// SetVIP replaces the user's tier and expiry unconditionally.
	SetVIP(ctx context.Context, userID string, tierID int, expiresAt time.Time) error
}

// FriendshipRepository defines persistence for friend-request edges.
type FriendshipRepository interface {
	// EdgeBetween returns the edge between two users in either direction and
	// any status, or ErrNotFound.
	EdgeBetween(ctx context.Context, a, b string) (*Friendship, error)
	// Create inserts a pending edge. Returns ErrConflict when an edge between
	// the pair already exists.
	Create(ctx context.Context, f *Friendship) (*Friendship, error)
	GetByID(ctx context.Context, id string) (*Friendship, error)
	// PendingFor returns pending requests addressed to userID, newest first.
	PendingFor(ctx context.Context, userID string) ([]FriendRequest, error)
	// SetStatus transitions a pending edge to the given status. Returns
	// ErrConflict when the edge has already been decided.
	SetStatus(ctx context.Context, id string, status FriendshipStatus) error
	// AcceptedFor returns all users connected to userID by an accepted edge in
	// either direction.
	AcceptedFor(ctx context.Context, userID string) ([]Profile, error)
}

// VIPTierRepository reads static tier reference data.
type VIPTierRepository interface {
	List(ctx context.Context) ([]VIPTier, error)
	GetByID(ctx context.Context, id int) (*VIPTier, error)
}

// CircleRepository defines persistence for circles and their memberships.
type CircleRepository interface {
	GetByID(ctx context.Context, id string) (*Circle, error)
	// VisibleTo returns all public circles plus private circles where viewerID
	// holds a membership, each with creator username and member count.
	VisibleTo(ctx context.Context, viewerID string) ([]CircleSummary, error)
	// CreateWithFounder atomically inserts the circle together with its
	// creator's admin membership. For private circles the creator's existing
	// private-circle count is checked against maxPrivate inside the same
	// transaction; ErrForbidden is returned when the quota is exhausted.
	CreateWithFounder(ctx context.Context, circle *Circle, maxPrivate int) (*Circle, error)
	// MemberRole returns the user's role in the circle, or ErrNotFound when no
	// membership exists.
	MemberRole(ctx context.Context, circleID, userID string) (CircleRole, error)
	// AddMember inserts a membership. Adding an existing member is a no-op and
	// never changes the stored role.
	AddMember(ctx context.Context, m *CircleMember) error
}

// PostRepository defines persistence for posts.
type PostRepository interface {
	Create(ctx context.Context, p *Post) (*Post, error)
	// ListByCircle returns the circle's posts newest first, each with author
	// username and comment count.
	ListByCircle(ctx context.Context, circleID string) ([]PostSummary, error)
}
