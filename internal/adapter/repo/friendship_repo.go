package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// FriendshipRepositoryPG implements domain.FriendshipRepository backed by
// PostgreSQL.
type FriendshipRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewFriendshipRepository creates a new FriendshipRepositoryPG.
func NewFriendshipRepository(pool *pgxpool.Pool) *FriendshipRepositoryPG {
	return &FriendshipRepositoryPG{pool: pool}
}

// EdgeBetween returns the edge between two users in either direction and any
// status.
func (r *FriendshipRepositoryPG) EdgeBetween(ctx context.Context, a, b string) (*domain.Friendship, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, requester_id, recipient_id, status, created_at
FROM friendships
WHERE (requester_id = $1 AND recipient_id = $2)
   OR (requester_id = $2 AND recipient_id = $1)`, a, b)
	return scanFriendship(row)
}

// Create inserts a pending edge. The symmetric unique index backstops
// concurrent requests between the same pair with domain.ErrConflict.
func (r *FriendshipRepositoryPG) Create(ctx context.Context, f *domain.Friendship) (*domain.Friendship, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO friendships (id, requester_id, recipient_id, status)
VALUES ($1, $2, $3, $4)
RETURNING id, requester_id, recipient_id, status, created_at`,
		f.ID, f.RequesterID, f.RecipientID, f.Status)

	created, err := scanFriendship(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

// GetByID fetches an edge by id.
func (r *FriendshipRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Friendship, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, requester_id, recipient_id, status, created_at
FROM friendships WHERE id = $1`, id)
	return scanFriendship(row)
}

// PendingFor returns pending requests addressed to userID, newest first.
func (r *FriendshipRepositoryPG) PendingFor(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	rows, err := r.pool.Query(ctx, `
SELECT f.id, f.requester_id, u.username, f.created_at
FROM friendships f
JOIN users u ON u.id = f.requester_id
WHERE f.recipient_id = $1 AND f.status = 'pending'
ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []domain.FriendRequest{}
	for rows.Next() {
		var req domain.FriendRequest
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.Requester, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// SetStatus transitions a pending edge. An edge already decided (or deleted
// meanwhile) maps to domain.ErrConflict.
func (r *FriendshipRepositoryPG) SetStatus(ctx context.Context, id string, status domain.FriendshipStatus) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE friendships SET status = $2
WHERE id = $1 AND status = 'pending'`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// AcceptedFor returns every user connected to userID by an accepted edge.
func (r *FriendshipRepositoryPG) AcceptedFor(ctx context.Context, userID string) ([]domain.Profile, error) {
	rows, err := r.pool.Query(ctx, `
SELECT u.id, u.username
FROM friendships f
JOIN users u ON u.id = CASE WHEN f.requester_id = $1 THEN f.recipient_id ELSE f.requester_id END
WHERE (f.requester_id = $1 OR f.recipient_id = $1) AND f.status = 'accepted'
ORDER BY u.username`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friends := []domain.Profile{}
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Username); err != nil {
			return nil, err
		}
		friends = append(friends, p)
	}
	return friends, rows.Err()
}

func scanFriendship(row pgx.Row) (*domain.Friendship, error) {
	var f domain.Friendship
	if err := row.Scan(&f.ID, &f.RequesterID, &f.RecipientID, &f.Status, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}
