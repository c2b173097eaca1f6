package models

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the payload for POST /auth/register. The strongpwd
// validator enforces the password policy (length, upper, lower, digit,
// symbol) at the binding layer; the service re-checks it.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpwd"`
}

// OAuthCallbackRequest carries the authorization code returned by the
// provider to the client.
type OAuthCallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

// PasswordSetupRequest is the payload for POST /auth/password/setup.
type PasswordSetupRequest struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// RefreshRequest is the payload for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest is the payload for POST /auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// OAuthMetadata tells the client how the callback reconciled the identity.
type OAuthMetadata struct {
	IsNewUser          bool `json:"isNewUser"`
	NeedsPasswordSetup bool `json:"needsPasswordSetup"`
	HasProviderLink    bool `json:"hasProviderLink"`
}

// AuthResult is the outcome of any operation that establishes a session.
type AuthResult struct {
	User     *User          `json:"user"`
	Tokens   TokenPair      `json:"tokens"`
	Metadata *OAuthMetadata `json:"metadata,omitempty"`
}
