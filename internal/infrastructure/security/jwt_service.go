package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/interfaces"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

// JWTService implements interfaces.TokenSigner using HS256.
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a new JWTService.
func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt signing secret must be configured")
	}
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccessToken signs a short-lived access token carrying the user's
// identity claims.
func (s *JWTService) IssueAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		UserID:    user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		TokenType: models.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return s.sign(claims)
}

// IssueRefreshToken signs a long-lived refresh token bound to one session
// via its jti.
func (s *JWTService) IssueRefreshToken(userID, jti uuid.UUID) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		TokenType: models.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        jti.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return s.sign(claims)
}

func (s *JWTService) sign(claims *models.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, mapping library failures onto the
// domain sentinels so callers can log expiry, tampering and garbage
// differently while treating all of them as unauthenticated.
func (s *JWTService) Verify(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domainErrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domainErrors.ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domainErrors.ErrTokenMalformed
		default:
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrTokenInvalid, err)
		}
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, domainErrors.ErrTokenInvalid
	}
	return claims, nil
}

var _ interfaces.TokenSigner = (*JWTService)(nil)
