package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/interfaces"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

// Gin context keys populated by Auth.
const (
	ContextUserIDKey = "user_id"
	ContextClaimsKey = "claims"
)

// Auth validates the Bearer access token and stores the caller's
// identity in the gin context. Refresh tokens are rejected here; they
// are only good for the refresh endpoint.
func Auth(signer interfaces.TokenSigner, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
				"code":  "unauthorized",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format, expected 'Bearer {token}'",
				"code":  "unauthorized",
			})
			return
		}

		claims, err := signer.Verify(parts[1])
		if err != nil {
			code := "unauthorized"
			message := "Invalid token"
			if errors.Is(err, domainErrors.ErrTokenExpired) {
				code = "token_expired"
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": message,
				"code":  code,
			})
			return
		}

		if claims.TokenType != models.TokenTypeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
				"code":  "unauthorized",
			})
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			logger.Warn("Access token carried a non-uuid subject",
				zap.String("subject", claims.Subject),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
				"code":  "unauthorized",
			})
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
