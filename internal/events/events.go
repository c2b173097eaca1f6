package events

import "time"

// Event types published to the auth topic.
const (
	TypeUserRegistered = "auth.user.registered"
	TypeUserLoggedIn   = "auth.user.login"
	TypeTokenReused    = "auth.token.reused"
)

// UserRegisteredEvent is emitted when a new account is created, whether
// through registration or a first OAuth login.
type UserRegisteredEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	AuthType  string    `json:"auth_type"` // "password" or "oauth_<provider>"
	Timestamp time.Time `json:"timestamp"`
}

// UserLoggedInEvent is emitted on every successful session establishment.
type UserLoggedInEvent struct {
	UserID     string    `json:"user_id"`
	AuthMethod string    `json:"auth_method"`
	Timestamp  time.Time `json:"timestamp"`
}

// TokenReusedEvent is emitted when a refresh token with a valid signature
// fails liveness validation: a stale client retry or possible token theft.
type TokenReusedEvent struct {
	UserID    string    `json:"user_id"`
	JTI       string    `json:"jti"`
	Timestamp time.Time `json:"timestamp"`
}
