package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// PostRepositoryPG implements domain.PostRepository backed by PostgreSQL.
type PostRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new PostRepositoryPG.
func NewPostRepository(pool *pgxpool.Pool) *PostRepositoryPG {
	return &PostRepositoryPG{pool: pool}
}

// Create inserts a post.
func (r *PostRepositoryPG) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	created := *p
	err := r.pool.QueryRow(ctx, `
INSERT INTO posts (id, circle_id, author_id, title, content)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`,
		p.ID, p.CircleID, p.AuthorID, p.Title, p.Content).
		Scan(&created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListByCircle returns the circle's posts newest first, each with author
// username and comment count.
func (r *PostRepositoryPG) ListByCircle(ctx context.Context, circleID string) ([]domain.PostSummary, error) {
	rows, err := r.pool.Query(ctx, `
SELECT p.id, p.title, p.content, u.username, p.created_at,
       (SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id)
FROM posts p
JOIN users u ON u.id = p.author_id
WHERE p.circle_id = $1
ORDER BY p.created_at DESC`, circleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.PostSummary{}
	for rows.Next() {
		var s domain.PostSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &s.Author, &s.CreatedAt, &s.CommentCount); err != nil {
			return nil, err
		}
		posts = append(posts, s)
	}
	return posts, rows.Err()
}
