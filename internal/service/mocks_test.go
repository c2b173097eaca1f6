package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, configured bool) error {
	args := m.Called(ctx, id, passwordHash, configured)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	args := m.Called(ctx, id, avatarURL)
	return args.Error(0)
}

type MockExternalAccountRepository struct {
	mock.Mock
}

func (m *MockExternalAccountRepository) Upsert(ctx context.Context, account *models.ExternalAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockExternalAccountRepository) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockRefreshSessionRepository struct {
	mock.Mock
}

func (m *MockRefreshSessionRepository) Create(ctx context.Context, session *models.RefreshSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockRefreshSessionRepository) FindByJTI(ctx context.Context, jti uuid.UUID) (*models.RefreshSession, error) {
	args := m.Called(ctx, jti)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshSession), args.Error(1)
}

func (m *MockRefreshSessionRepository) Revoke(ctx context.Context, jti uuid.UUID, at time.Time) error {
	args := m.Called(ctx, jti, at)
	return args.Error(0)
}

type MockSessionCache struct {
	mock.Mock
}

func (m *MockSessionCache) Put(ctx context.Context, jti, userID uuid.UUID, ttl time.Duration) error {
	args := m.Called(ctx, jti, userID, ttl)
	return args.Error(0)
}

func (m *MockSessionCache) Exists(ctx context.Context, jti uuid.UUID) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionCache) Delete(ctx context.Context, jti uuid.UUID) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, encodedHash string) (bool, error) {
	args := m.Called(password, encodedHash)
	return args.Bool(0), args.Error(1)
}

type MockTokenSigner struct {
	mock.Mock
}

func (m *MockTokenSigner) IssueAccessToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockTokenSigner) IssueRefreshToken(userID, jti uuid.UUID) (string, error) {
	args := m.Called(userID, jti)
	return args.String(0), args.Error(1)
}

func (m *MockTokenSigner) Verify(token string) (*models.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claims), args.Error(1)
}

type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) FetchProfile(ctx context.Context, provider, code string) (*models.ExternalProfile, error) {
	args := m.Called(ctx, provider, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExternalProfile), args.Error(1)
}

type MockRefreshSessions struct {
	mock.Mock
}

func (m *MockRefreshSessions) Create(ctx context.Context, userID uuid.UUID) (*models.RefreshSession, string, error) {
	args := m.Called(ctx, userID)
	var session *models.RefreshSession
	if args.Get(0) != nil {
		session = args.Get(0).(*models.RefreshSession)
	}
	return session, args.String(1), args.Error(2)
}

func (m *MockRefreshSessions) Validate(ctx context.Context, jti uuid.UUID) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockRefreshSessions) Rotate(ctx context.Context, jti, userID uuid.UUID) (*models.RefreshSession, string, error) {
	args := m.Called(ctx, jti, userID)
	var session *models.RefreshSession
	if args.Get(0) != nil {
		session = args.Get(0).(*models.RefreshSession)
	}
	return session, args.String(1), args.Error(2)
}

func (m *MockRefreshSessions) Revoke(ctx context.Context, jti uuid.UUID) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}
