package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/repository"
)

// RefreshSessionRepositoryPostgres implements the durable audit side of
// the refresh session store. Rows are append-then-stamp: created on issue,
// stamped with revoked_at on rotation or logout, never deleted here.
type RefreshSessionRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewRefreshSessionRepositoryPostgres creates a new RefreshSessionRepositoryPostgres.
func NewRefreshSessionRepositoryPostgres(pool *pgxpool.Pool) *RefreshSessionRepositoryPostgres {
	return &RefreshSessionRepositoryPostgres{pool: pool}
}

// Create appends the audit row for a freshly issued session.
func (r *RefreshSessionRepositoryPostgres) Create(ctx context.Context, session *models.RefreshSession) error {
	query := `
		INSERT INTO refresh_sessions (jti, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query, session.JTI, session.UserID, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create refresh session row: %w", err)
	}
	return nil
}

// FindByJTI retrieves one audit row; used for forensics, never on the
// refresh hot path.
func (r *RefreshSessionRepositoryPostgres) FindByJTI(ctx context.Context, jti uuid.UUID) (*models.RefreshSession, error) {
	query := `
		SELECT jti, user_id, expires_at, created_at, revoked_at
		FROM refresh_sessions
		WHERE jti = $1
	`
	s := &models.RefreshSession{}
	err := r.pool.QueryRow(ctx, query, jti).Scan(
		&s.JTI, &s.UserID, &s.ExpiresAt, &s.CreatedAt, &s.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh session: %w", err)
	}
	return s, nil
}

// Revoke stamps revoked_at. Idempotent: an unknown or already stamped jti
// affects zero rows and is not an error.
func (r *RefreshSessionRepositoryPostgres) Revoke(ctx context.Context, jti uuid.UUID, at time.Time) error {
	query := `
		UPDATE refresh_sessions
		SET revoked_at = $1
		WHERE jti = $2 AND revoked_at IS NULL
	`
	if _, err := r.pool.Exec(ctx, query, at, jti); err != nil {
		return fmt.Errorf("failed to revoke refresh session: %w", err)
	}
	return nil
}

var _ repository.RefreshSessionRepository = (*RefreshSessionRepositoryPostgres)(nil)
