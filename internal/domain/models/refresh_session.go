package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshSession represents one outstanding renewable login.
//
// Liveness is decided by the cache entry keyed by JTI; the durable row this
// struct maps to is an audit record that survives cache eviction and is
// retained after revocation.
type RefreshSession struct {
	JTI       uuid.UUID  `json:"jti" db:"jti"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty" db:"revoked_at"`
}
