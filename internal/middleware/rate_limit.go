package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/repository"
)

// RateLimit enforces the per-minute submission limit. A failed counter
// check lets the request through; the limiter protects the oracle, it is
// not an availability gate.
func RateLimit(locks *repository.Locks) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			c.Next()
			return
		}
		count, err := locks.CheckAndIncrement(c.Request.Context(), user.ID)
		if err != nil {
			slog.Error("rate limit check failed", "error", err, "user_id", user.ID)
			c.Next()
			return
		}
		if count > config.RateLimitPerMinute {
			slog.Debug("rate limited", "user_id", user.ID, "count", count)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": domain.ErrRateLimited.Error()})
			return
		}
		c.Next()
	}
}
