package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/middleware"
)

// ListHistory returns the frozen conversations, newest first, trimmed to
// a preview for the sidebar.
func (h *Handler) ListHistory(c *gin.Context) {
	user := middleware.GetUser(c)
	history, err := h.conversations.History(c.Request.Context(), user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]gin.H, 0, len(history))
	for _, conv := range history {
		preview := ""
		if len(conv.Messages) > 0 {
			preview = conv.Messages[0].Content
		}
		views = append(views, gin.H{
			"id":        conv.ID,
			"preview":   preview,
			"messages":  len(conv.Messages),
			"timestamp": conv.Timestamp,
		})
	}
	c.JSON(http.StatusOK, gin.H{"conversations": views})
}

func (h *Handler) GetHistory(c *gin.Context) {
	user := middleware.GetUser(c)
	conv, err := h.conversations.HistoryByID(c.Request.Context(), user.Namespace(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]messageView, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		views = append(views, toMessageView(m))
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        conv.ID,
		"timestamp": conv.Timestamp,
		"messages":  views,
	})
}

func (h *Handler) DeleteHistory(c *gin.Context) {
	user := middleware.GetUser(c)
	if err := h.conversations.DeleteHistory(c.Request.Context(), user.Namespace(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
