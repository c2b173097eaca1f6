package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/interfaces"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/repository"
)

// RefreshSessions is the refresh-session lifecycle contract consumed by
// AuthService.
type RefreshSessions interface {
	Create(ctx context.Context, userID uuid.UUID) (*models.RefreshSession, string, error)
	Validate(ctx context.Context, jti uuid.UUID) (bool, error)
	Rotate(ctx context.Context, jti, userID uuid.UUID) (*models.RefreshSession, string, error)
	Revoke(ctx context.Context, jti uuid.UUID) error
}

// SessionStore is the dual-backed registry of outstanding refresh
// sessions: a Redis entry per jti whose existence means "still usable",
// and a durable audit row that records the full history including the
// revocation timestamp.
//
// The two writes are separate network calls with no cross-store
// transaction. Create writes the cache first, so a crash before the audit
// insert leaves a usable (if unaudited) session. Revoke and Rotate stamp
// the durable row first, so a crash before the cache delete fails toward
// "still looks valid" only until the cache TTL runs out.
type SessionStore struct {
	cache  repository.SessionCache
	audit  repository.RefreshSessionRepository
	signer interfaces.TokenSigner
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionStore creates a new SessionStore. ttl is the refresh token
// lifetime and drives both the cache expiry and the audit row's
// expires_at.
func NewSessionStore(
	cache repository.SessionCache,
	audit repository.RefreshSessionRepository,
	signer interfaces.TokenSigner,
	ttl time.Duration,
	logger *zap.Logger,
) *SessionStore {
	return &SessionStore{
		cache:  cache,
		audit:  audit,
		signer: signer,
		ttl:    ttl,
		logger: logger.Named("session_store"),
	}
}

// Create mints a fresh session for the user and returns it together with
// the signed refresh token.
func (s *SessionStore) Create(ctx context.Context, userID uuid.UUID) (*models.RefreshSession, string, error) {
	jti := uuid.New()
	session := &models.RefreshSession{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	if err := s.cache.Put(ctx, jti, userID, s.ttl); err != nil {
		return nil, "", domainErrors.Wrap("session create", err)
	}

	// The audit row is history, not enforcement: if the insert fails the
	// session stays usable and the gap is logged for operators.
	if err := s.audit.Create(ctx, session); err != nil {
		s.logger.Error("Failed to write refresh session audit row",
			zap.Error(err),
			zap.String("jti", jti.String()),
			zap.String("user_id", userID.String()),
		)
	}

	token, err := s.signer.IssueRefreshToken(userID, jti)
	if err != nil {
		return nil, "", domainErrors.Wrap("session create", err)
	}

	return session, token, nil
}

// Validate reports whether the session behind jti is still usable. Only
// the cache is consulted: if the entry is gone the session is dead, no
// matter what the audit row says.
func (s *SessionStore) Validate(ctx context.Context, jti uuid.UUID) (bool, error) {
	return s.cache.Exists(ctx, jti)
}

// Rotate revokes the session behind jti and mints a replacement for the
// same user. A refresh token is redeemable exactly once: after Rotate the
// old jti no longer validates.
//
// There is no distributed lock around the validate/delete window; two
// concurrent redemptions of the same token can both succeed within it.
// Refresh tokens are bearer secrets held by one device, so the race is
// accepted rather than locked away.
func (s *SessionStore) Rotate(ctx context.Context, jti, userID uuid.UUID) (*models.RefreshSession, string, error) {
	if err := s.audit.Revoke(ctx, jti, time.Now()); err != nil {
		return nil, "", domainErrors.Wrap("session rotate", err)
	}
	if err := s.cache.Delete(ctx, jti); err != nil {
		return nil, "", domainErrors.Wrap("session rotate", err)
	}
	return s.Create(ctx, userID)
}

// Revoke kills the session behind jti. Idempotent: revoking an unknown or
// already revoked session is not an error.
func (s *SessionStore) Revoke(ctx context.Context, jti uuid.UUID) error {
	if err := s.audit.Revoke(ctx, jti, time.Now()); err != nil {
		return domainErrors.Wrap("session revoke", err)
	}
	if err := s.cache.Delete(ctx, jti); err != nil {
		return domainErrors.Wrap("session revoke", err)
	}
	return nil
}

var _ RefreshSessions = (*SessionStore)(nil)
