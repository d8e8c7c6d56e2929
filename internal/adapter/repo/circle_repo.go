package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// CircleRepositoryPG implements domain.CircleRepository backed by PostgreSQL.
type CircleRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCircleRepository creates a new CircleRepositoryPG.
func NewCircleRepository(pool *pgxpool.Pool) *CircleRepositoryPG {
	return &CircleRepositoryPG{pool: pool}
}

// GetByID fetches a circle by id.
func (r *CircleRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Circle, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, description, creator_id, is_private, created_at
FROM circles WHERE id = $1`, id)

	var c domain.Circle
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatorID, &c.IsPrivate, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// VisibleTo returns all public circles plus the viewer's private circles,
// annotated with creator username and member count.
func (r *CircleRepositoryPG) VisibleTo(ctx context.Context, viewerID string) ([]domain.CircleSummary, error) {
	rows, err := r.pool.Query(ctx, `
SELECT c.id, c.name, c.description, c.is_private, u.username,
       (SELECT COUNT(*) FROM circle_members m WHERE m.circle_id = c.id)
FROM circles c
JOIN users u ON u.id = c.creator_id
WHERE c.is_private = FALSE
   OR EXISTS (SELECT 1 FROM circle_members m WHERE m.circle_id = c.id AND m.user_id = $1)
ORDER BY c.created_at DESC`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.CircleSummary{}
	for rows.Next() {
		var s domain.CircleSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.IsPrivate, &s.Creator, &s.MemberCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// CreateWithFounder inserts the circle and the creator's admin membership in
// one transaction. For private circles the creator's private-circle count is
// checked under an advisory transaction lock keyed on the creator, so two
// concurrent creates at the quota boundary serialize and the loser fails.
func (r *CircleRepositoryPG) CreateWithFounder(ctx context.Context, circle *domain.Circle, maxPrivate int) (*domain.Circle, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if circle.IsPrivate {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, circle.CreatorID); err != nil {
			return nil, fmt.Errorf("acquire creator lock: %w", err)
		}

		var owned int
		err := tx.QueryRow(ctx, `
SELECT COUNT(*) FROM circles WHERE creator_id = $1 AND is_private = TRUE`, circle.CreatorID).Scan(&owned)
		if err != nil {
			return nil, err
		}
		if owned >= maxPrivate {
			return nil, fmt.Errorf("%w: private circle quota reached", domain.ErrForbidden)
		}
	}

	created := *circle
	err = tx.QueryRow(ctx, `
INSERT INTO circles (id, name, description, creator_id, is_private)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`,
		circle.ID, circle.Name, circle.Description, circle.CreatorID, circle.IsPrivate).
		Scan(&created.CreatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO circle_members (id, circle_id, user_id, role)
VALUES (gen_random_uuid(), $1, $2, 'admin')`,
		circle.ID, circle.CreatorID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &created, nil
}

// MemberRole returns the user's role in the circle.
func (r *CircleRepositoryPG) MemberRole(ctx context.Context, circleID, userID string) (domain.CircleRole, error) {
	var role domain.CircleRole
	err := r.pool.QueryRow(ctx, `
SELECT role FROM circle_members WHERE circle_id = $1 AND user_id = $2`, circleID, userID).
		Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

// AddMember inserts a membership. Re-adding an existing member is a no-op;
// the stored role is never changed.
func (r *CircleRepositoryPG) AddMember(ctx context.Context, m *domain.CircleMember) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO circle_members (id, circle_id, user_id, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (circle_id, user_id) DO NOTHING`,
		m.ID, m.CircleID, m.UserID, m.Role)
	return err
}
