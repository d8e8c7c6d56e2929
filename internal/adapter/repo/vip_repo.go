package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// VIPTierRepositoryPG implements domain.VIPTierRepository backed by
// PostgreSQL. Tiers are seeded by migration and never mutated at runtime.
type VIPTierRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewVIPTierRepository creates a new VIPTierRepositoryPG.
func NewVIPTierRepository(pool *pgxpool.Pool) *VIPTierRepositoryPG {
	return &VIPTierRepositoryPG{pool: pool}
}

// List returns all tiers ordered by level.
func (r *VIPTierRepositoryPG) List(ctx context.Context) ([]domain.VIPTier, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, level, price, max_private_circles
FROM vip_tiers ORDER BY level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiers := []domain.VIPTier{}
	for rows.Next() {
		var t domain.VIPTier
		if err := rows.Scan(&t.ID, &t.Name, &t.Level, &t.Price, &t.MaxPrivateCircles); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// GetByID fetches a tier by id.
func (r *VIPTierRepositoryPG) GetByID(ctx context.Context, id int) (*domain.VIPTier, error) {
	var t domain.VIPTier
	err := r.pool.QueryRow(ctx, `
SELECT id, name, level, price, max_private_circles
FROM vip_tiers WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Level, &t.Price, &t.MaxPrivateCircles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
