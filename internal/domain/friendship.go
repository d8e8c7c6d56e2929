package domain

import "time"

// FriendshipStatus enumerates the lifecycle of a friend request.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship is a directed friend-request edge between two users. At most one
// edge may exist between a pair of users, in either direction, regardless of
// status.
type Friendship struct {
	ID          string
	RequesterID string
	RecipientID string
	Status      FriendshipStatus
	CreatedAt   time.Time
}

// FriendRequest is a pending edge enriched with the requester's username, as
// shown to the recipient.
type FriendRequest struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"user_id"`
	Requester   string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
}
