package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/middleware"
	"github.com/solacehq/solace/internal/render"
)

// SearchResources finds external self-help links for a topic. Search
// being disabled is not an error; the client just shows nothing.
func (h *Handler) SearchResources(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	sources, err := h.websearch.Search(c.Request.Context(), query, config.MaxCompactSources)
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]gin.H, 0, len(sources))
	for _, s := range sources {
		views = append(views, sourceView(s))
	}
	c.JSON(http.StatusOK, gin.H{"resources": views})
}

func sourceView(s domain.Source) gin.H {
	return gin.H{
		"title":      s.Title,
		"url":        s.URL,
		"snippet":    s.Snippet,
		"displayUrl": s.DisplayURL,
		"label":      render.SourceLabel(s.Type),
	}
}

func (h *Handler) GetPreferences(c *gin.Context) {
	user := middleware.GetUser(c)
	prefs, err := h.prefs.Get(c.Request.Context(), user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *Handler) SetPreferences(c *gin.Context) {
	user := middleware.GetUser(c)
	var prefs domain.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.prefs.Set(c.Request.Context(), user.Namespace(), prefs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
