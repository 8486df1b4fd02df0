package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/domain"
)

// userView is the public shape of an account; the hash never leaves the
// server.
func userView(u *domain.User) gin.H {
	return gin.H{
		"email":         u.Email,
		"name":          u.Name,
		"gender":        u.Gender,
		"guardianPhone": u.GuardianPhone,
		"yourPhone":     u.YourPhone,
		"responseMode":  u.ResponseMode,
		"emailVerified": u.EmailVerified,
	}
}
