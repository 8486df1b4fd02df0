package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/middleware"
	"github.com/solacehq/solace/internal/render"
)

type chatRequest struct {
	Message string `json:"message"`
}

type messageView struct {
	Role    string          `json:"role"`
	Content string          `json:"content"`
	Blocks  []render.Block  `json:"blocks,omitempty"`
	Sources []domain.Source `json:"sources,omitempty"`
	// CompactSources is the capped list for compact rendering contexts;
	// Sources always carries the full set for expanded views.
	CompactSources []domain.Source `json:"compactSources,omitempty"`
	SentAt         string          `json:"sentAt"`
}

func toMessageView(m domain.Message) messageView {
	v := messageView{
		Role:    m.Role,
		Content: m.Content,
		Sources: m.Sources,
		SentAt:  m.SentAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if m.Role == domain.RoleAssistant {
		v.Blocks = render.Format(m.Content)
		v.CompactSources = render.CompactSources(m.Sources)
	}
	return v
}

// SubmitMessage runs one message through the pipeline and returns the
// round trip plus crisis state.
func (h *Handler) SubmitMessage(c *gin.Context) {
	user := middleware.GetUser(c)
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.pipeline.Submit(c.Request.Context(), user, req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	if h.userService != nil {
		h.userService.TouchInteraction(c.Request.Context(), user.ID)
	}

	body := gin.H{
		"conversationId": res.ConversationID,
		"userMessage":    toMessageView(res.UserMessage),
		"reply":          toMessageView(res.AssistantMessage),
		"fallback":       res.Fallback,
		"crisis":         res.Crisis,
	}
	if res.Crisis {
		if inter, err := h.center.Get(user.Namespace()); err == nil {
			body["interstitial"] = interstitialView(inter)
		}
	}
	c.JSON(http.StatusOK, body)
}

// ActiveConversation returns the in-progress chat for page load.
func (h *Handler) ActiveConversation(c *gin.Context) {
	user := middleware.GetUser(c)
	conv, err := h.conversations.Active(c.Request.Context(), user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]messageView, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		views = append(views, toMessageView(m))
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       conv.ID,
		"messages": views,
	})
}

// NewConversation freezes the active chat into history and starts fresh.
func (h *Handler) NewConversation(c *gin.Context) {
	user := middleware.GetUser(c)
	fresh, err := h.conversations.StartNew(c.Request.Context(), user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": fresh.ID})
}
