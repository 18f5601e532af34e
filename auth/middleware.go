package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Gin context key under which the authenticated user id is stored.
const UserIDKey = "user_id"

// Middleware validates the Bearer token of incoming requests and injects
// the user identity into the request context for downstream handlers.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token is missing"})
			return
		}

		// Expecting the standard "Bearer <token>" format
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID extracts the authenticated user id placed by Middleware.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
