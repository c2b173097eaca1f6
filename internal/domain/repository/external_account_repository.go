package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

// ExternalAccountRepository stores provider links.
type ExternalAccountRepository interface {
	// Upsert creates the link for (provider, external_user_id) or repoints
	// it to the given user if the provider reissued the same subject id.
	// Repoint is last-write-wins.
	Upsert(ctx context.Context, account *models.ExternalAccount) error
	ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error)
}
