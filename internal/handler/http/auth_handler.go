package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

// AuthService is the slice of the service layer the HTTP handlers
// consume.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	OAuthCallback(ctx context.Context, provider, code string) (*models.AuthResult, error)
	SetupPassword(ctx context.Context, userID uuid.UUID, password, confirm string) (*models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// AuthHandler handles the authentication HTTP endpoints.
type AuthHandler struct {
	service AuthService
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.Named("auth_handler"),
	}
}

// Register handles user registration.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// The strongpwd rule fires at binding time; surface it as the
		// policy violation it is, not a generic payload error.
		if hasValidationTag(err, "strongpwd") {
			ErrorResponse(c, http.StatusBadRequest, "weak_password", domainErrors.ErrWeakPassword.Error())
			return
		}
		ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, "Register", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   result.User.ToResponse(),
		"tokens": result.Tokens,
	})
}

// Login handles email+password login.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, "Login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   result.User.ToResponse(),
		"tokens": result.Tokens,
	})
}

// OAuthCallback redeems a provider authorization code for a session.
// POST /api/v1/auth/oauth/:provider/callback
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")

	var req models.OAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	result, err := h.service.OAuthCallback(c.Request.Context(), provider, req.Code)
	if err != nil {
		h.writeServiceError(c, "OAuthCallback", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     result.User.ToResponse(),
		"tokens":   result.Tokens,
		"metadata": result.Metadata,
	})
}

// SetupPassword sets the first password on an OAuth-originated account.
// POST /api/v1/auth/password/setup (authenticated)
func (h *AuthHandler) SetupPassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	var req models.PasswordSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	user, err := h.service.SetupPassword(c.Request.Context(), userID, req.Password, req.ConfirmPassword)
	if err != nil {
		h.writeServiceError(c, "SetupPassword", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password configured successfully",
		"user":    user.ToResponse(),
	})
}

// Refresh rotates a refresh token into a new token pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(c, "Refresh", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   result.User.ToResponse(),
		"tokens": result.Tokens,
	})
}

// Logout revokes the presented refresh token's session.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.writeServiceError(c, "Logout", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// hasValidationTag reports whether a binding error includes a failure of
// the named validation rule.
func hasValidationTag(err error, tag string) bool {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return false
	}
	for _, fieldErr := range validationErrs {
		if fieldErr.Tag() == tag {
			return true
		}
	}
	return false
}

// writeServiceError maps a service error onto the HTTP surface. All
// unauthorized conditions use a deliberately generic message so failed
// logins and replayed tokens are indistinguishable to the caller.
func (h *AuthHandler) writeServiceError(c *gin.Context, op string, err error) {
	switch {
	case domainErrors.IsUnauthorized(err):
		if errors.Is(err, domainErrors.ErrTokenReused) {
			h.logger.Warn("Rejected reused refresh token", zap.String("op", op))
		}
		ErrorResponse(c, http.StatusUnauthorized, errorCode(err), "Invalid credentials or token")
	case domainErrors.IsConflict(err):
		ErrorResponse(c, http.StatusConflict, errorCode(err), err.Error())
	case domainErrors.IsBadRequest(err):
		ErrorResponse(c, http.StatusBadRequest, errorCode(err), err.Error())
	case errors.Is(err, domainErrors.ErrUserNotFound):
		ErrorResponse(c, http.StatusNotFound, errorCode(err), "User not found")
	case errors.Is(err, domainErrors.ErrProviderUnknown):
		ErrorResponse(c, http.StatusBadRequest, errorCode(err), "Unknown identity provider")
	case errors.Is(err, domainErrors.ErrProviderEmailMissing):
		ErrorResponse(c, http.StatusUnprocessableEntity, errorCode(err), "Provider profile has no email address")
	case errors.Is(err, domainErrors.ErrProviderFailure):
		h.logger.Error("Upstream provider failure", zap.String("op", op), zap.Error(err))
		ErrorResponse(c, http.StatusBadGateway, errorCode(err), "Identity provider unavailable")
	default:
		h.logger.Error("Unhandled service error", zap.String("op", op), zap.Error(err))
		ErrorResponse(c, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
