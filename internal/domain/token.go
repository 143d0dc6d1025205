package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a long-lived credential used to mint new access tokens.
// Only the SHA-256 hash of the token is stored.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsActive reports whether the token can still be exchanged.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
