package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

// UserRepository is the durable store for user records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdatePassword replaces the stored hash and sets the
	// password_configured flag in one statement.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, configured bool) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
}
