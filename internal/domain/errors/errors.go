package errors

import (
	"errors"
	"fmt"
)

var (
	// General errors.
	ErrInternal       = errors.New("internal server error")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateValue = errors.New("resource already exists")

	// Authentication errors. ErrInvalidCredentials never distinguishes
	// between an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("malformed token")
	ErrTokenSignature     = errors.New("invalid token signature")
	// ErrTokenReused: the signature verified but the session behind the jti
	// is gone, i.e. the token was already rotated or revoked. Surfaced to
	// clients exactly like ErrTokenInvalid; logged as a security signal.
	ErrTokenReused = errors.New("refresh token already used")

	// User errors.
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already in use")
	ErrWeakPassword = errors.New("password does not meet the security policy")

	// Password setup errors.
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordAlreadySet = errors.New("account already has a password configured")
	ErrNoProviderLink     = errors.New("account has no linked external provider")

	// OAuth provider errors.
	ErrProviderFailure      = errors.New("external provider request failed")
	ErrProviderEmailMissing = errors.New("external provider profile has no email")
	ErrProviderUnknown      = errors.New("unknown oauth provider")
)

// IsUnauthorized reports whether err should map to a 401. All token
// failure modes collapse into "unauthenticated" for the client.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenSignature) ||
		errors.Is(err, ErrTokenReused)
}

// IsConflict reports whether err should map to a 409.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateValue)
}

// IsBadRequest reports whether err should map to a 400. A taken email is
// a synchronous, descriptive rejection of the request body, same bucket
// as a policy violation.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrWeakPassword) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrPasswordAlreadySet) ||
		errors.Is(err, ErrNoProviderLink)
}

// Wrap annotates err with an operation name, preserving errors.Is matching.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
