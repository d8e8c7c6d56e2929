package domain

import "time"

// VIPTier is static reference data describing a purchasable membership level.
type VIPTier struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Level             int     `json:"level"`
	Price             float64 `json:"price"`
	MaxPrivateCircles int     `json:"max_private_circles"`
}

// Entitlement is a user's current (tier, expiry) pair.
type Entitlement struct {
	Tier      VIPTier   `json:"tier"`
	ExpiresAt time.Time `json:"expires_at"`
}
