package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/repository"
)

// ExternalAccountRepositoryPostgres implements repository.ExternalAccountRepository.
type ExternalAccountRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewExternalAccountRepositoryPostgres creates a new ExternalAccountRepositoryPostgres.
func NewExternalAccountRepositoryPostgres(pool *pgxpool.Pool) *ExternalAccountRepositoryPostgres {
	return &ExternalAccountRepositoryPostgres{pool: pool}
}

// Upsert creates or repoints the link for (provider, external_user_id).
// Repoint is last-write-wins: if a provider ever reissues a subject id to a
// different local account, the link follows the newest claim.
func (r *ExternalAccountRepositoryPostgres) Upsert(ctx context.Context, account *models.ExternalAccount) error {
	query := `
		INSERT INTO external_accounts (id, user_id, provider, external_user_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider, external_user_id)
		DO UPDATE SET user_id = EXCLUDED.user_id, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.pool.Exec(ctx, query,
		account.ID, account.UserID, account.Provider, account.ExternalUserID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert external account: %w", err)
	}
	return nil
}

// ExistsForUser reports whether the user has at least one provider link.
func (r *ExternalAccountRepositoryPostgres) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM external_accounts WHERE user_id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check external accounts for user: %w", err)
	}
	return exists, nil
}

var _ repository.ExternalAccountRepository = (*ExternalAccountRepositoryPostgres)(nil)
