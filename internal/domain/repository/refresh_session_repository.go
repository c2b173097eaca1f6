package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

// RefreshSessionRepository is the durable audit log of refresh sessions.
// Rows are never deleted by the auth flow; revocation stamps revoked_at.
type RefreshSessionRepository interface {
	Create(ctx context.Context, session *models.RefreshSession) error
	FindByJTI(ctx context.Context, jti uuid.UUID) (*models.RefreshSession, error)
	// Revoke stamps revoked_at. Revoking an unknown or already revoked jti
	// is not an error.
	Revoke(ctx context.Context, jti uuid.UUID, at time.Time) error
}
