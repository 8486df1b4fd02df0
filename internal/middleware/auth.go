package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/service"
)

const userKey = "user"

// GetUser extracts the authenticated user from the gin context. Only
// valid behind RequireAuth.
func GetUser(c *gin.Context) *domain.User {
	u, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	return u.(*domain.User)
}

// RequireAuth resolves the session cookie to a user or rejects with 401.
func RequireAuth(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(config.SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		user, err := users.ByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}
