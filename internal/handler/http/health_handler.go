package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// HealthHandler reports process liveness and backend reachability.
type HealthHandler struct {
	pool   *pgxpool.Pool
	redis  *redis.Client
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		pool:   pool,
		redis:  redisClient,
		logger: logger.Named("health_handler"),
	}
}

// Health checks the service and its backends. The endpoint is
// unauthenticated, so failing checks report a constant "unavailable"
// while the cause goes to the log.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	overall := "ok"
	checks := gin.H{"postgres": "ok", "redis": "ok"}

	if err := h.pool.Ping(ctx); err != nil {
		h.logger.Error("Postgres health check failed", zap.Error(err))
		checks["postgres"] = "unavailable"
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		h.logger.Error("Redis health check failed", zap.Error(err))
		checks["redis"] = "unavailable"
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}
