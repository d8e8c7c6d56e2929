// Package memrepo provides in-memory implementations of the domain
// repositories. It mirrors the Postgres semantics closely enough (symmetric
// edge uniqueness, idempotent membership inserts, quota-bounded circle
// creation) to back the service tests without a database.
package memrepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"server/internal/domain"
)

// Store holds all in-memory state behind one mutex.
type Store struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	friendships map[string]*domain.Friendship
	tiers       map[int]domain.VIPTier
	circles     map[string]*domain.Circle
	members     map[string]*domain.CircleMember
	posts       map[string]*domain.Post
	comments    map[string]string // comment id -> post id
}

func NewStore() *Store {
	return &Store{
		users:       map[string]*domain.User{},
		friendships: map[string]*domain.Friendship{},
		tiers:       map[int]domain.VIPTier{},
		circles:     map[string]*domain.Circle{},
		members:     map[string]*domain.CircleMember{},
		posts:       map[string]*domain.Post{},
		comments:    map[string]string{},
	}
}

// SeedTier registers a VIP tier.
func (s *Store) SeedTier(t domain.VIPTier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers[t.ID] = t
}

// Users returns the store as a domain.UserRepository.
func (s *Store) Users() domain.UserRepository { return (*userRepo)(s) }

// Friendships returns the store as a domain.FriendshipRepository.
func (s *Store) Friendships() domain.FriendshipRepository { return (*friendshipRepo)(s) }

// Tiers returns the store as a domain.VIPTierRepository.
func (s *Store) Tiers() domain.VIPTierRepository { return (*tierRepo)(s) }

// Circles returns the store as a domain.CircleRepository.
func (s *Store) Circles() domain.CircleRepository { return (*circleRepo)(s) }

// Posts returns the store as a domain.PostRepository.
func (s *Store) Posts() domain.PostRepository { return (*postRepo)(s) }

type userRepo Store

func (r *userRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrConflict
		}
	}
	u := *user
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = &u
	out := u
	return &out, nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) SearchByUsername(_ context.Context, query, excludeID string) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	out := []domain.Profile{}
	for _, u := range r.users {
		if u.ID == excludeID || !strings.Contains(strings.ToLower(u.Username), q) {
			continue
		}
		out = append(out, domain.Profile{ID: u.ID, Username: u.Username})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *userRepo) SetVIP(_ context.Context, userID string, tierID int, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	tier := tierID
	expiry := expiresAt
	u.VIPTierID = &tier
	u.VIPExpiresAt = &expiry
	u.UpdatedAt = time.Now()
	return nil
}

type friendshipRepo Store

func (r *friendshipRepo) EdgeBetween(_ context.Context, a, b string) (*domain.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f := r.edgeBetweenLocked(a, b); f != nil {
		out := *f
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (r *friendshipRepo) edgeBetweenLocked(a, b string) *domain.Friendship {
	for _, f := range r.friendships {
		if (f.RequesterID == a && f.RecipientID == b) || (f.RequesterID == b && f.RecipientID == a) {
			return f
		}
	}
	return nil
}

func (r *friendshipRepo) Create(_ context.Context, f *domain.Friendship) (*domain.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.edgeBetweenLocked(f.RequesterID, f.RecipientID) != nil {
		return nil, domain.ErrConflict
	}
	edge := *f
	if edge.CreatedAt.IsZero() {
		edge.CreatedAt = time.Now()
	}
	r.friendships[edge.ID] = &edge
	out := edge
	return &out, nil
}

func (r *friendshipRepo) GetByID(_ context.Context, id string) (*domain.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.friendships[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *f
	return &out, nil
}

func (r *friendshipRepo) PendingFor(_ context.Context, userID string) ([]domain.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.FriendRequest{}
	for _, f := range r.friendships {
		if f.RecipientID != userID || f.Status != domain.FriendshipPending {
			continue
		}
		username := ""
		if u, ok := r.users[f.RequesterID]; ok {
			username = u.Username
		}
		out = append(out, domain.FriendRequest{
			ID:          f.ID,
			RequesterID: f.RequesterID,
			Requester:   username,
			CreatedAt:   f.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *friendshipRepo) SetStatus(_ context.Context, id string, status domain.FriendshipStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.friendships[id]
	if !ok || f.Status != domain.FriendshipPending {
		return domain.ErrConflict
	}
	f.Status = status
	return nil
}

func (r *friendshipRepo) AcceptedFor(_ context.Context, userID string) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Profile{}
	for _, f := range r.friendships {
		if f.Status != domain.FriendshipAccepted {
			continue
		}
		var otherID string
		switch userID {
		case f.RequesterID:
			otherID = f.RecipientID
		case f.RecipientID:
			otherID = f.RequesterID
		default:
			continue
		}
		if u, ok := r.users[otherID]; ok {
			out = append(out, domain.Profile{ID: u.ID, Username: u.Username})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type tierRepo Store

func (r *tierRepo) List(_ context.Context) ([]domain.VIPTier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.VIPTier{}
	for _, t := range r.tiers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, nil
}

func (r *tierRepo) GetByID(_ context.Context, id int) (*domain.VIPTier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tiers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

type circleRepo Store

func (r *circleRepo) GetByID(_ context.Context, id string) (*domain.Circle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.circles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *circleRepo) VisibleTo(_ context.Context, viewerID string) ([]domain.CircleSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.CircleSummary{}
	for _, c := range r.circles {
		if c.IsPrivate && !r.isMemberLocked(c.ID, viewerID) {
			continue
		}
		creator := ""
		if u, ok := r.users[c.CreatorID]; ok {
			creator = u.Username
		}
		count := 0
		for _, m := range r.members {
			if m.CircleID == c.ID {
				count++
			}
		}
		out = append(out, domain.CircleSummary{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			IsPrivate:   c.IsPrivate,
			Creator:     creator,
			MemberCount: count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *circleRepo) CreateWithFounder(_ context.Context, circle *domain.Circle, maxPrivate int) (*domain.Circle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if circle.IsPrivate {
		owned := 0
		for _, c := range r.circles {
			if c.CreatorID == circle.CreatorID && c.IsPrivate {
				owned++
			}
		}
		if owned >= maxPrivate {
			return nil, fmt.Errorf("%w: private circle quota reached", domain.ErrForbidden)
		}
	}
	created := *circle
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	r.circles[created.ID] = &created
	memberID := created.ID + ":founder"
	r.members[memberID] = &domain.CircleMember{
		ID:       memberID,
		CircleID: created.ID,
		UserID:   circle.CreatorID,
		Role:     domain.CircleRoleAdmin,
		JoinedAt: created.CreatedAt,
	}
	out := created
	return &out, nil
}

func (r *circleRepo) MemberRole(_ context.Context, circleID, userID string) (domain.CircleRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.CircleID == circleID && m.UserID == userID {
			return m.Role, nil
		}
	}
	return "", domain.ErrNotFound
}

func (r *circleRepo) AddMember(_ context.Context, m *domain.CircleMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isMemberLocked(m.CircleID, m.UserID) {
		return nil
	}
	member := *m
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	r.members[member.ID] = &member
	return nil
}

func (r *circleRepo) isMemberLocked(circleID, userID string) bool {
	for _, m := range r.members {
		if m.CircleID == circleID && m.UserID == userID {
			return true
		}
	}
	return false
}

type postRepo Store

func (r *postRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post := *p
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	r.posts[post.ID] = &post
	out := post
	return &out, nil
}

func (r *postRepo) ListByCircle(_ context.Context, circleID string) ([]domain.PostSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.PostSummary{}
	for _, p := range r.posts {
		if p.CircleID != circleID {
			continue
		}
		author := ""
		if u, ok := r.users[p.AuthorID]; ok {
			author = u.Username
		}
		count := 0
		for _, postID := range r.comments {
			if postID == p.ID {
				count++
			}
		}
		out = append(out, domain.PostSummary{
			ID:           p.ID,
			Title:        p.Title,
			Content:      p.Content,
			Author:       author,
			CreatedAt:    p.CreatedAt,
			CommentCount: count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
