package domain

import "time"

// DefaultTrustScore is the score every user starts with.
const DefaultTrustScore = 50

// RoleAdmin may act on any user's score and roadmap.
const RoleAdmin = "admin"

// User is the per-device profile that carries the trust score.
type User struct {
	ID         string    `json:"id" bson:"_id"`
	TrustScore int       `json:"trustScore" bson:"trust_score"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}

// NewUser returns a user with the default score, stamped at now.
func NewUser(id string, now time.Time) *User {
	return &User{
		ID:         id,
		TrustScore: DefaultTrustScore,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
