package domain

import "time"

// User represents a registered account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	VIPTierID    *int
	VIPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasVIP reports whether the user currently holds any VIP tier. Expiry is
// stored but deliberately not consulted here; see the entitlement notes.
func (u User) HasVIP() bool {
	return u.VIPTierID != nil
}

// Profile is the public projection of a user: what other users may see.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
