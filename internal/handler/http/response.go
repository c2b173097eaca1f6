package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
)

// errorBody is the uniform error envelope: a human-readable message plus
// a stable machine code.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ErrorResponse writes the uniform error envelope and aborts the request.
func ErrorResponse(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorBody{Error: message, Code: code})
}

// errorCode maps a domain error onto its machine code. Unauthorized
// conditions deliberately collapse onto a small set of codes so the
// response never reveals whether a token was expired, revoked or forged
// beyond what the client needs to act on.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domainErrors.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, domainErrors.ErrTokenReused):
		return "unauthorized"
	case errors.Is(err, domainErrors.ErrTokenInvalid),
		errors.Is(err, domainErrors.ErrTokenMalformed),
		errors.Is(err, domainErrors.ErrTokenSignature):
		return "unauthorized"
	case errors.Is(err, domainErrors.ErrEmailExists):
		return "email_exists"
	case errors.Is(err, domainErrors.ErrWeakPassword):
		return "weak_password"
	case errors.Is(err, domainErrors.ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, domainErrors.ErrPasswordAlreadySet):
		return "password_already_set"
	case errors.Is(err, domainErrors.ErrNoProviderLink):
		return "no_provider_link"
	case errors.Is(err, domainErrors.ErrProviderEmailMissing):
		return "provider_email_missing"
	case errors.Is(err, domainErrors.ErrProviderUnknown):
		return "provider_unknown"
	case errors.Is(err, domainErrors.ErrProviderFailure):
		return "provider_failure"
	case errors.Is(err, domainErrors.ErrUserNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}
