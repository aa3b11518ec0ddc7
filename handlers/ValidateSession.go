package handlers

import (
	"net/http"
	"strings"

	"worksmis/utils"

	"github.com/gin-gonic/gin"
)

// userEmailKey is the gin context key holding the authenticated user's email.
const userEmailKey = "user_email"

// AuthMiddleware validates the bearer access token and stores the user's email on the
// context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing token"})
			return
		}

		// Validate JWT (checks signature and expiration)
		parsedToken, err := utils.ValidateJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		email, err := utils.EmailFromToken(parsedToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set(userEmailKey, email)
		c.Next()
	}
}

// currentUser returns the authenticated user's email, or "system" outside AuthMiddleware.
func currentUser(c *gin.Context) string {
	if email := c.GetString(userEmailKey); email != "" {
		return email
	}
	return "system"
}
