package models

import (
	"time"

	"github.com/google/uuid"
)

// ExternalAccount links an external provider identity to a local user.
// The pair (provider, external_user_id) is globally unique; a user holds
// at most one link per provider.
type ExternalAccount struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Provider       string    `json:"provider" db:"provider"` // e.g. "google"
	ExternalUserID string    `json:"external_user_id" db:"external_user_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ExternalProfile is the normalized profile fetched from an OAuth provider
// after a successful code exchange.
type ExternalProfile struct {
	Provider       string
	ExternalUserID string
	Email          string
	Name           string
	AvatarURL      string
}

// LinkResult is the outcome of reconciling an external profile with the
// local user store.
type LinkResult struct {
	User               *User
	IsNewUser          bool
	NeedsPasswordSetup bool
}
