package interfaces

import (
	"context"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

// OAuthProvider exchanges an authorization code with an external identity
// provider and fetches the normalized user profile. Any network or
// protocol failure is a hard failure: no local state may be written from
// a partially fetched profile.
type OAuthProvider interface {
	FetchProfile(ctx context.Context, provider, code string) (*models.ExternalProfile, error)
}
