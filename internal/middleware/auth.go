package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"imagemarket/api/internal/config"
	"imagemarket/api/internal/repository"
	"imagemarket/api/internal/security"
)

// Auth parses the bearer token and resolves the subject to a stored user.
// A token whose user record no longer exists is rejected, matching the
// profile endpoints' 401 behavior.
func Auth(cfg *config.AppConfig, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseAccessToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set("current_user", user)
		c.Next()
	}
}
