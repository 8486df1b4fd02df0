package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/middleware"
)

func (h *Handler) ListSaved(c *gin.Context) {
	user := middleware.GetUser(c)
	saved, err := h.saved.List(c.Request.Context(), user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

type saveRequest struct {
	Role    string          `json:"role" binding:"required"`
	Content string          `json:"content" binding:"required"`
	Sources []domain.Source `json:"sources"`
	SentAt  time.Time       `json:"sentAt"`
}

func (h *Handler) SaveMessage(c *gin.Context) {
	user := middleware.GetUser(c)
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.saved.Save(c.Request.Context(), user.Namespace(), domain.Message{
		Role:    req.Role,
		Content: req.Content,
		Sources: req.Sources,
		SentAt:  req.SentAt,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) RemoveSaved(c *gin.Context) {
	user := middleware.GetUser(c)
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a number"})
		return
	}
	if err := h.saved.Remove(c.Request.Context(), user.Namespace(), index); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
