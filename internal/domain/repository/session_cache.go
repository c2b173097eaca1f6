package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionCache is the fast-lookup side of the refresh session store.
// Entry existence is the authority for session liveness; entries
// self-expire at the session TTL so no reaper is needed.
type SessionCache interface {
	Put(ctx context.Context, jti, userID uuid.UUID, ttl time.Duration) error
	Exists(ctx context.Context, jti uuid.UUID) (bool, error)
	Delete(ctx context.Context, jti uuid.UUID) error
}
