package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/middleware"
	"github.com/solacehq/solace/internal/service"
)

type signupRequest struct {
	Email         string `json:"email" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Gender        string `json:"gender"`
	GuardianPhone string `json:"guardianPhone"`
	YourPhone     string `json:"yourPhone"`
	Password      string `json:"password" binding:"required,min=8"`
	Code          string `json:"code"`
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.cfg.SessionTTL.Seconds())
	c.SetCookie(config.SessionCookie, token, maxAge, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verified := false
	if req.Code != "" {
		if err := h.userService.VerifyCode(c.Request.Context(), req.Email, req.Code); err != nil {
			fail(c, err)
			return
		}
		verified = true
	}

	user, session, err := h.userService.Signup(c.Request.Context(), service.SignupInput{
		Email:         req.Email,
		Name:          req.Name,
		Gender:        req.Gender,
		GuardianPhone: req.GuardianPhone,
		YourPhone:     req.YourPhone,
		Password:      req.Password,
	}, verified)
	if err != nil {
		fail(c, err)
		return
	}
	h.setSessionCookie(c, session.Token)
	c.JSON(http.StatusCreated, userView(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, session, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	h.setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, userView(user))
}

func (h *Handler) Logout(c *gin.Context) {
	token, err := c.Cookie(config.SessionCookie)
	if err == nil && token != "" {
		// Freeze the active conversation into history before the session goes.
		if user, err := h.userService.ByToken(c.Request.Context(), token); err == nil {
			if _, err := h.conversations.StartNew(c.Request.Context(), user.Namespace()); err != nil {
				fail(c, err)
				return
			}
		}
		if err := h.userService.Logout(c.Request.Context(), token); err != nil {
			fail(c, err)
			return
		}
	}
	c.SetCookie(config.SessionCookie, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) CheckEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	exists, err := h.userService.EmailExists(c.Request.Context(), email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *Handler) SendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.userService.SendVerification(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

type verifyRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

func (h *Handler) VerifyCode(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.userService.VerifyCode(c.Request.Context(), req.Email, req.Code); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}

// ForgotPassword reuses the verification flow: a code is mailed, then
// redeemed by ResetPassword. Unknown emails get the same response as
// known ones, nothing is disclosed.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	exists, err := h.userService.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	if exists {
		if err := h.userService.SendVerification(c.Request.Context(), req.Email); err != nil {
			fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

type resetRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.userService.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, userView(middleware.GetUser(c)))
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (h *Handler) SetMode(c *gin.Context) {
	user := middleware.GetUser(c)
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := h.userService.SetResponseMode(c.Request.Context(), user.ID, req.Mode)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode})
}
