package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

type authServiceFixture struct {
	service  *AuthService
	users    *MockUserRepository
	links    *MockExternalAccountRepository
	sessions *MockRefreshSessions
	hasher   *MockPasswordHasher
	signer   *MockTokenSigner
	provider *MockOAuthProvider
}

func newAuthServiceForTest() *authServiceFixture {
	users := new(MockUserRepository)
	links := new(MockExternalAccountRepository)
	sessions := new(MockRefreshSessions)
	hasher := new(MockPasswordHasher)
	signer := new(MockTokenSigner)
	provider := new(MockOAuthProvider)
	linker := NewIdentityLinker(users, links, hasher, zap.NewNop())
	svc := NewAuthService(users, links, sessions, hasher, signer, linker, provider, nil, zap.NewNop())
	return &authServiceFixture{
		service:  svc,
		users:    users,
		links:    links,
		sessions: sessions,
		hasher:   hasher,
		signer:   signer,
		provider: provider,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:                 uuid.New(),
		Email:              "ana@example.com",
		Name:               "Ana",
		PasswordHash:       "$argon2id$stored",
		PasswordConfigured: true,
	}
}

func refreshClaims(userID, jti uuid.UUID) *models.Claims {
	return &models.Claims{
		TokenType: models.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID.String(),
			ID:      jti.String(),
		},
	}
}

func expectSessionCreated(f *authServiceFixture, user *models.User) {
	f.sessions.On("Create", mock.Anything, user.ID).
		Return(&models.RefreshSession{JTI: uuid.New(), UserID: user.ID}, "refresh-token", nil)
	f.signer.On("IssueAccessToken", user).Return("access-token", nil)
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthServiceForTest()
	user := testUser()

	f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	f.hasher.On("Verify", "S3cret!pass", user.PasswordHash).Return(true, nil)
	expectSessionCreated(f, user)

	result, err := f.service.Login(context.Background(), models.LoginRequest{
		Email:    user.Email,
		Password: "S3cret!pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", result.Tokens.AccessToken)
	assert.Equal(t, "refresh-token", result.Tokens.RefreshToken)
	assert.Equal(t, user, result.User)
	assert.Nil(t, result.Metadata)
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	f := newAuthServiceForTest()
	user := testUser()

	f.users.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, domainErrors.ErrUserNotFound)
	f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	f.hasher.On("Verify", "wrong", user.PasswordHash).Return(false, nil)

	_, errUnknown := f.service.Login(context.Background(), models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "wrong",
	})
	_, errWrongPass := f.service.Login(context.Background(), models.LoginRequest{
		Email:    user.Email,
		Password: "wrong",
	})

	require.ErrorIs(t, errUnknown, domainErrors.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPass, domainErrors.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthServiceForTest()

	f.hasher.On("Hash", "Str0ng!pass").Return("$argon2id$new", nil)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "novo@example.com" && u.PasswordConfigured && u.PasswordHash == "$argon2id$new"
	})).Return(nil)
	f.sessions.On("Create", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&models.RefreshSession{JTI: uuid.New()}, "refresh-token", nil)
	f.signer.On("IssueAccessToken", mock.AnythingOfType("*models.User")).Return("access-token", nil)

	result, err := f.service.Register(context.Background(), models.RegisterRequest{
		Email:    "novo@example.com",
		Name:     "Novo",
		Password: "Str0ng!pass",
	})

	require.NoError(t, err)
	assert.True(t, result.User.PasswordConfigured)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	f := newAuthServiceForTest()

	weak := []string{
		"alllowercase1!", // no upper
		"ALLUPPERCASE1!", // no lower
		"NoDigitsHere!",  // no digit
		"NoSymbols123A",  // no symbol
		"Ab1!x",          // too short
	}

	for _, pwd := range weak {
		_, err := f.service.Register(context.Background(), models.RegisterRequest{
			Email:    "novo@example.com",
			Password: pwd,
		})
		require.ErrorIs(t, err, domainErrors.ErrWeakPassword, "password %q", pwd)
	}
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newAuthServiceForTest()

	f.hasher.On("Hash", mock.Anything).Return("$argon2id$new", nil)
	f.users.On("Create", mock.Anything, mock.Anything).Return(domainErrors.ErrEmailExists)

	_, err := f.service.Register(context.Background(), models.RegisterRequest{
		Email:    "taken@example.com",
		Password: "Str0ng!pass",
	})

	require.ErrorIs(t, err, domainErrors.ErrEmailExists)
}

func TestAuthService_OAuthCallback_NewUserNeedsPassword(t *testing.T) {
	f := newAuthServiceForTest()
	profile := &models.ExternalProfile{
		Provider:       "google",
		ExternalUserID: "sub-1",
		Email:          "oauth@example.com",
		Name:           "OAuth User",
	}

	f.provider.On("FetchProfile", mock.Anything, "google", "auth-code").Return(profile, nil)
	f.users.On("FindByEmail", mock.Anything, profile.Email).Return(nil, domainErrors.ErrUserNotFound)
	f.hasher.On("Hash", mock.AnythingOfType("string")).Return("$argon2id$placeholder", nil)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.links.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.sessions.On("Create", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&models.RefreshSession{JTI: uuid.New()}, "refresh-token", nil)
	f.signer.On("IssueAccessToken", mock.AnythingOfType("*models.User")).Return("access-token", nil)

	result, err := f.service.OAuthCallback(context.Background(), "google", "auth-code")

	require.NoError(t, err)
	require.NotNil(t, result.Metadata)
	assert.True(t, result.Metadata.IsNewUser)
	assert.True(t, result.Metadata.NeedsPasswordSetup)
	assert.True(t, result.Metadata.HasProviderLink)
}

func TestAuthService_OAuthCallback_ProviderFailureWritesNothing(t *testing.T) {
	f := newAuthServiceForTest()

	f.provider.On("FetchProfile", mock.Anything, "google", "bad-code").
		Return(nil, domainErrors.ErrProviderFailure)

	_, err := f.service.OAuthCallback(context.Background(), "google", "bad-code")

	require.ErrorIs(t, err, domainErrors.ErrProviderFailure)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.links.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_SetupPassword_Success(t *testing.T) {
	f := newAuthServiceForTest()
	user := testUser()
	user.PasswordConfigured = false

	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.links.On("ExistsForUser", mock.Anything, user.ID).Return(true, nil)
	f.hasher.On("Hash", "Str0ng!pass").Return("$argon2id$chosen", nil)
	f.users.On("UpdatePassword", mock.Anything, user.ID, "$argon2id$chosen", true).Return(nil)

	updated, err := f.service.SetupPassword(context.Background(), user.ID, "Str0ng!pass", "Str0ng!pass")

	require.NoError(t, err)
	assert.True(t, updated.PasswordConfigured)
}

func TestAuthService_SetupPassword_Rejections(t *testing.T) {
	f := newAuthServiceForTest()
	configured := testUser()
	noLink := testUser()
	noLink.PasswordConfigured = false

	f.users.On("FindByID", mock.Anything, configured.ID).Return(configured, nil)
	f.users.On("FindByID", mock.Anything, noLink.ID).Return(noLink, nil)
	f.links.On("ExistsForUser", mock.Anything, noLink.ID).Return(false, nil)

	_, err := f.service.SetupPassword(context.Background(), configured.ID, "Str0ng!pass", "Different!1")
	require.ErrorIs(t, err, domainErrors.ErrPasswordMismatch)

	_, err = f.service.SetupPassword(context.Background(), configured.ID, "weak", "weak")
	require.ErrorIs(t, err, domainErrors.ErrWeakPassword)

	_, err = f.service.SetupPassword(context.Background(), configured.ID, "Str0ng!pass", "Str0ng!pass")
	require.ErrorIs(t, err, domainErrors.ErrPasswordAlreadySet)

	_, err = f.service.SetupPassword(context.Background(), noLink.ID, "Str0ng!pass", "Str0ng!pass")
	require.ErrorIs(t, err, domainErrors.ErrNoProviderLink)

	f.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	f := newAuthServiceForTest()
	user := testUser()
	jti := uuid.New()

	f.signer.On("Verify", "old-refresh").Return(refreshClaims(user.ID, jti), nil)
	f.sessions.On("Validate", mock.Anything, jti).Return(true, nil)
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.sessions.On("Rotate", mock.Anything, jti, user.ID).
		Return(&models.RefreshSession{JTI: uuid.New(), UserID: user.ID}, "new-refresh", nil)
	f.signer.On("IssueAccessToken", user).Return("new-access", nil)

	result, err := f.service.Refresh(context.Background(), "old-refresh")

	require.NoError(t, err)
	assert.Equal(t, "new-access", result.Tokens.AccessToken)
	assert.Equal(t, "new-refresh", result.Tokens.RefreshToken)
}

func TestAuthService_Refresh_ReuseDetected(t *testing.T) {
	f := newAuthServiceForTest()
	userID := uuid.New()
	jti := uuid.New()

	f.signer.On("Verify", "replayed-refresh").Return(refreshClaims(userID, jti), nil)
	f.sessions.On("Validate", mock.Anything, jti).Return(false, nil)

	_, err := f.service.Refresh(context.Background(), "replayed-refresh")

	require.ErrorIs(t, err, domainErrors.ErrTokenReused)
	f.sessions.AssertNotCalled(t, "Rotate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	f := newAuthServiceForTest()
	claims := &models.Claims{
		TokenType: models.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: uuid.NewString(),
			ID:      uuid.NewString(),
		},
	}

	f.signer.On("Verify", "an-access-token").Return(claims, nil)

	_, err := f.service.Refresh(context.Background(), "an-access-token")

	require.ErrorIs(t, err, domainErrors.ErrTokenInvalid)
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	f := newAuthServiceForTest()

	f.signer.On("Verify", "expired").Return(nil, domainErrors.ErrTokenExpired)

	_, err := f.service.Refresh(context.Background(), "expired")

	require.ErrorIs(t, err, domainErrors.ErrTokenExpired)
	f.sessions.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_DeletedUser(t *testing.T) {
	f := newAuthServiceForTest()
	userID := uuid.New()
	jti := uuid.New()

	f.signer.On("Verify", "orphan-refresh").Return(refreshClaims(userID, jti), nil)
	f.sessions.On("Validate", mock.Anything, jti).Return(true, nil)
	f.users.On("FindByID", mock.Anything, userID).Return(nil, domainErrors.ErrUserNotFound)

	_, err := f.service.Refresh(context.Background(), "orphan-refresh")

	require.ErrorIs(t, err, domainErrors.ErrTokenInvalid)
	f.sessions.AssertNotCalled(t, "Rotate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	f := newAuthServiceForTest()
	userID := uuid.New()
	jti := uuid.New()

	f.signer.On("Verify", "refresh-token").Return(refreshClaims(userID, jti), nil)
	f.sessions.On("Revoke", mock.Anything, jti).Return(nil)

	require.NoError(t, f.service.Logout(context.Background(), "refresh-token"))
	f.sessions.AssertExpectations(t)
}

func TestAuthService_Logout_InvalidToken(t *testing.T) {
	f := newAuthServiceForTest()

	f.signer.On("Verify", "garbage").Return(nil, domainErrors.ErrTokenMalformed)

	err := f.service.Logout(context.Background(), "garbage")

	require.ErrorIs(t, err, domainErrors.ErrTokenMalformed)
	f.sessions.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
}

func TestAuthService_CurrentUser(t *testing.T) {
	f := newAuthServiceForTest()
	user := testUser()

	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	got, err := f.service.CurrentUser(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, user, got)
}
