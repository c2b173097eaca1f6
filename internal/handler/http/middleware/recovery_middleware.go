package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery converts panics into 500 responses instead of dropped
// connections.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("recovery")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  "internal_error",
				})
			}
		}()
		c.Next()
	}
}
