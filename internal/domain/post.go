package domain

import "time"

// Post is content published inside a circle, visible per the circle's rules.
type Post struct {
	ID        string
	CircleID  string
	AuthorID  string
	Title     string
	Content   string
	CreatedAt time.Time
}

// PostSummary is the listing projection of a post.
type PostSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int       `json:"comment_count"`
}
