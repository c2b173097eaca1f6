package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/interfaces"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/repository"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/events"
	kafkaEvents "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/events/kafka"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/utils/metrics"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/utils/password"
)

// AuthService orchestrates the credential components into the login,
// registration, OAuth, password setup, refresh and logout flows.
type AuthService struct {
	users    repository.UserRepository
	links    repository.ExternalAccountRepository
	sessions RefreshSessions
	hasher   interfaces.PasswordHasher
	signer   interfaces.TokenSigner
	linker   *IdentityLinker
	provider interfaces.OAuthProvider
	producer *kafkaEvents.Producer // nil when event publishing is disabled
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService. producer may be nil.
func NewAuthService(
	users repository.UserRepository,
	links repository.ExternalAccountRepository,
	sessions RefreshSessions,
	hasher interfaces.PasswordHasher,
	signer interfaces.TokenSigner,
	linker *IdentityLinker,
	provider interfaces.OAuthProvider,
	producer *kafkaEvents.Producer,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		links:    links,
		sessions: sessions,
		hasher:   hasher,
		signer:   signer,
		linker:   linker,
		provider: provider,
		producer: producer,
		logger:   logger.Named("auth_service"),
	}
}

// Login verifies email+password credentials and establishes a session.
// Both an unknown email and a wrong password yield ErrInvalidCredentials
// so the response never reveals which accounts exist.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, domainErrors.Wrap("login", err)
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, domainErrors.Wrap("login", err)
	}
	if !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, domainErrors.ErrInvalidCredentials
	}

	result, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.publish(ctx, events.TypeUserLoggedIn, user.ID.String(), events.UserLoggedInEvent{
		UserID:     user.ID.String(),
		AuthMethod: "password",
		Timestamp:  time.Now(),
	})
	return result, nil
}

// Register creates a password-owning account and logs it in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	if !password.IsStrong(req.Password) {
		return nil, domainErrors.ErrWeakPassword
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, domainErrors.Wrap("register", err)
	}

	user := &models.User{
		ID:                 uuid.New(),
		Email:              req.Email,
		Name:               req.Name,
		PasswordHash:       hash,
		PasswordConfigured: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index is the authority on duplicates; no pre-check
		// needed.
		return nil, domainErrors.Wrap("register", err)
	}

	result, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeUserRegistered, user.ID.String(), events.UserRegisteredEvent{
		UserID:    user.ID.String(),
		Email:     user.Email,
		AuthType:  "password",
		Timestamp: time.Now(),
	})
	return result, nil
}

// OAuthCallback redeems the provider's authorization code, reconciles the
// external identity with the local store and establishes a session. The
// metadata tells the client whether to prompt for a password.
func (s *AuthService) OAuthCallback(ctx context.Context, provider, code string) (*models.AuthResult, error) {
	profile, err := s.provider.FetchProfile(ctx, provider, code)
	if err != nil {
		return nil, err
	}

	linked, err := s.linker.Resolve(ctx, *profile)
	if err != nil {
		return nil, err
	}

	result, err := s.establishSession(ctx, linked.User)
	if err != nil {
		return nil, err
	}
	result.Metadata = &models.OAuthMetadata{
		IsNewUser:          linked.IsNewUser,
		NeedsPasswordSetup: linked.NeedsPasswordSetup,
		HasProviderLink:    true,
	}

	if linked.IsNewUser {
		s.publish(ctx, events.TypeUserRegistered, linked.User.ID.String(), events.UserRegisteredEvent{
			UserID:    linked.User.ID.String(),
			Email:     linked.User.Email,
			AuthType:  "oauth_" + provider,
			Timestamp: time.Now(),
		})
	}
	s.publish(ctx, events.TypeUserLoggedIn, linked.User.ID.String(), events.UserLoggedInEvent{
		UserID:     linked.User.ID.String(),
		AuthMethod: "oauth_" + provider,
		Timestamp:  time.Now(),
	})
	return result, nil
}

// SetupPassword lets an OAuth-originated account choose its first
// password. Accounts that already own a human-chosen password are
// rejected so this side channel can never overwrite a real credential.
func (s *AuthService) SetupPassword(ctx context.Context, userID uuid.UUID, pass, confirm string) (*models.User, error) {
	if pass != confirm {
		return nil, domainErrors.ErrPasswordMismatch
	}
	if !password.IsStrong(pass) {
		return nil, domainErrors.ErrWeakPassword
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domainErrors.Wrap("password setup", err)
	}
	if user.PasswordConfigured {
		return nil, domainErrors.ErrPasswordAlreadySet
	}

	hasLink, err := s.links.ExistsForUser(ctx, userID)
	if err != nil {
		return nil, domainErrors.Wrap("password setup", err)
	}
	if !hasLink {
		return nil, domainErrors.ErrNoProviderLink
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, domainErrors.Wrap("password setup", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash, true); err != nil {
		return nil, domainErrors.Wrap("password setup", err)
	}

	user.PasswordHash = hash
	user.PasswordConfigured = true
	return user, nil
}

// Refresh redeems a refresh token for a new access/refresh pair, rotating
// the underlying session so the presented token can never be redeemed
// again.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResult, error) {
	claims, jti, userID, err := s.verifyRefreshClaims(refreshToken)
	if err != nil {
		return nil, err
	}

	live, err := s.sessions.Validate(ctx, jti)
	if err != nil {
		return nil, domainErrors.Wrap("refresh", err)
	}
	if !live {
		// Valid signature, dead session: either a stale client retry or a
		// replay of a stolen token. Clients see a generic 401; the signal
		// is logged and published for investigation.
		metrics.TokenReuseDetectedTotal.Inc()
		s.logger.Warn("Refresh token reuse detected",
			zap.String("jti", jti.String()),
			zap.String("user_id", claims.Subject),
		)
		s.publish(ctx, events.TypeTokenReused, claims.Subject, events.TokenReusedEvent{
			UserID:    claims.Subject,
			JTI:       jti.String(),
			Timestamp: time.Now(),
		})
		return nil, domainErrors.ErrTokenReused
	}

	// Fresh lookup catches accounts deleted or deactivated since issuance.
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, domainErrors.ErrTokenInvalid
		}
		return nil, domainErrors.Wrap("refresh", err)
	}

	_, newRefresh, err := s.sessions.Rotate(ctx, jti, userID)
	if err != nil {
		return nil, domainErrors.Wrap("refresh", err)
	}

	access, err := s.signer.IssueAccessToken(user)
	if err != nil {
		return nil, domainErrors.Wrap("refresh", err)
	}

	return &models.AuthResult{
		User: user,
		Tokens: models.TokenPair{
			AccessToken:  access,
			RefreshToken: newRefresh,
		},
	}, nil
}

// Logout revokes the presented refresh token's session.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	_, jti, _, err := s.verifyRefreshClaims(refreshToken)
	if err != nil {
		return err
	}
	return s.sessions.Revoke(ctx, jti)
}

// CurrentUser returns the authenticated user's record.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) verifyRefreshClaims(refreshToken string) (*models.Claims, uuid.UUID, uuid.UUID, error) {
	claims, err := s.signer.Verify(refreshToken)
	if err != nil {
		return nil, uuid.Nil, uuid.Nil, err
	}
	if claims.TokenType != models.TokenTypeRefresh {
		return nil, uuid.Nil, uuid.Nil, domainErrors.ErrTokenInvalid
	}
	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, uuid.Nil, uuid.Nil, domainErrors.ErrTokenMalformed
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, uuid.Nil, domainErrors.ErrTokenMalformed
	}
	return claims, jti, userID, nil
}

func (s *AuthService) establishSession(ctx context.Context, user *models.User) (*models.AuthResult, error) {
	_, refresh, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	access, err := s.signer.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{
		User: user,
		Tokens: models.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType, key string, payload interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, eventType, key, payload); err != nil {
		// Event delivery is best-effort; the auth flow already succeeded.
		s.logger.Error("Failed to publish auth event",
			zap.Error(err),
			zap.String("event_type", eventType),
		)
	}
}
