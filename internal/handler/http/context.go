package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/handler/http/middleware"
)

// currentUserID extracts the authenticated user id placed in the gin
// context by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
