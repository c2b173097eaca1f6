package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
)

// MeHandler serves the authenticated user's own record.
type MeHandler struct {
	service AuthService
	logger  *zap.Logger
}

// NewMeHandler creates a new MeHandler.
func NewMeHandler(service AuthService, logger *zap.Logger) *MeHandler {
	return &MeHandler{
		service: service,
		logger:  logger.Named("me_handler"),
	}
}

// GetMe returns the current user.
// GET /api/v1/me (authenticated)
func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			ErrorResponse(c, http.StatusNotFound, "not_found", "User not found")
			return
		}
		h.logger.Error("Failed to load current user", zap.Error(err))
		ErrorResponse(c, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}
