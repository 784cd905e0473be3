package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fluxyapp/fluxy/internal/auth"
)

const (
	// UserIDKey is the gin context key for the authenticated user ID.
	UserIDKey = "user_id"
	// EmailKey is the gin context key for the authenticated user's email.
	EmailKey = "email"
)

// GetUserID extracts the authenticated user ID from the gin context.
// Returns empty string if not set.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get(UserIDKey)
	id, _ := userID.(string)
	return id
}

// RequireAuth validates the Bearer token and stores the user identity on the
// request context. Requests without a valid token are rejected.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": auth.ErrMissingToken.Error(),
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": auth.ErrInvalidToken.Error(),
			})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": auth.ErrInvalidToken.Error(),
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}
