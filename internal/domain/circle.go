package domain

import "time"

// CircleRole enumerates membership roles inside a circle.
type CircleRole string

const (
	CircleRoleMember    CircleRole = "member"
	CircleRoleModerator CircleRole = "moderator"
	CircleRoleAdmin     CircleRole = "admin"
)

// CanInvite reports whether the role may invite other users into the circle.
func (r CircleRole) CanInvite() bool {
	return r == CircleRoleAdmin || r == CircleRoleModerator
}

// Circle is a named group with public or private visibility.
type Circle struct {
	ID          string
	Name        string
	Description string
	CreatorID   string
	IsPrivate   bool
	CreatedAt   time.Time
}

// CircleMember ties a user to a circle with a role. A user holds at most one
// membership per circle.
type CircleMember struct {
	ID       string
	CircleID string
	UserID   string
	Role     CircleRole
	JoinedAt time.Time
}

// CircleSummary is the listing projection of a circle.
type CircleSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
	Creator     string `json:"creator"`
	MemberCount int    `json:"member_count"`
}
