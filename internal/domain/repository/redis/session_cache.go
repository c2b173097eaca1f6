package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/repository"
)

const sessionKeyPrefix = "refresh_session:"

// SessionCache stores refresh session liveness in Redis. A key exists for
// every usable jti and carries the session TTL, so revocation is a DEL and
// expiry needs no reaper.
type SessionCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSessionCache creates a new SessionCache.
func NewSessionCache(client *redis.Client, logger *zap.Logger) *SessionCache {
	return &SessionCache{
		client: client,
		logger: logger.Named("session_cache"),
	}
}

func sessionKey(jti uuid.UUID) string {
	return sessionKeyPrefix + jti.String()
}

// Put registers a live session under its jti.
func (c *SessionCache) Put(ctx context.Context, jti, userID uuid.UUID, ttl time.Duration) error {
	if err := c.client.Set(ctx, sessionKey(jti), userID.String(), ttl).Err(); err != nil {
		c.logger.Error("Failed to set refresh session in cache",
			zap.Error(err),
			zap.String("jti", jti.String()),
		)
		return fmt.Errorf("failed to cache refresh session: %w", err)
	}
	return nil
}

// Exists reports whether the session is still live. Absence means dead,
// regardless of what the durable audit row says.
func (c *SessionCache) Exists(ctx context.Context, jti uuid.UUID) (bool, error) {
	n, err := c.client.Exists(ctx, sessionKey(jti)).Result()
	if err != nil {
		c.logger.Error("Failed to check refresh session in cache",
			zap.Error(err),
			zap.String("jti", jti.String()),
		)
		return false, fmt.Errorf("failed to check refresh session: %w", err)
	}
	return n > 0, nil
}

// Delete kills the session. Deleting a missing key is a no-op.
func (c *SessionCache) Delete(ctx context.Context, jti uuid.UUID) error {
	if err := c.client.Del(ctx, sessionKey(jti)).Err(); err != nil {
		c.logger.Error("Failed to delete refresh session from cache",
			zap.Error(err),
			zap.String("jti", jti.String()),
		)
		return fmt.Errorf("failed to delete refresh session: %w", err)
	}
	return nil
}

var _ repository.SessionCache = (*SessionCache)(nil)
