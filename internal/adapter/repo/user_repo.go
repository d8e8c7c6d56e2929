package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Create inserts a new user. A taken username maps to domain.ErrConflict.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (id, username, password_hash)
VALUES ($1, $2, $3)
RETURNING id, username, password_hash, vip_tier_id, vip_expires_at, created_at, updated_at`,
		user.ID, user.Username, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

// GetByID fetches a user by id.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, username, password_hash, vip_tier_id, vip_expires_at, created_at, updated_at
FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByUsername fetches a user by its unique username.
func (r *UserRepositoryPG) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, username, password_hash, vip_tier_id, vip_expires_at, created_at, updated_at
FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// SearchByUsername returns users whose username contains query, excluding
// excludeID, ordered by username.
func (r *UserRepositoryPG) SearchByUsername(ctx context.Context, query, excludeID string) ([]domain.Profile, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, username
FROM users
WHERE username ILIKE '%' || $1 || '%' AND id <> $2
ORDER BY username`, query, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Username); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// SetVIP replaces the user's tier and expiry.
func (r *UserRepositoryPG) SetVIP(ctx context.Context, userID string, tierID int, expiresAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE users SET vip_tier_id = $2, vip_expires_at = $3, updated_at = NOW()
WHERE id = $1`, userID, tierID, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.VIPTierID, &u.VIPExpiresAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
