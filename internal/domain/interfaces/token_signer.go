package interfaces

import (
	"github.com/google/uuid"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

// TokenSigner issues and verifies the compact signed tokens used as
// bearer credentials. Verify distinguishes expired, malformed and
// signature failures through the domain error sentinels; callers treat
// all of them as unauthenticated but may log them differently.
type TokenSigner interface {
	IssueAccessToken(user *models.User) (string, error)
	IssueRefreshToken(userID, jti uuid.UUID) (string, error)
	Verify(token string) (*models.Claims, error)
}
