package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/middleware"
	"github.com/solacehq/solace/internal/wellness"
)

func (h *Handler) ListMood(c *gin.Context) {
	user := middleware.GetUser(c)
	entries, err := h.mood.List(c.Request.Context(), user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

type moodRequest struct {
	Score int    `json:"score" binding:"required"`
	Note  string `json:"note"`
}

func (h *Handler) RecordMood(c *gin.Context) {
	user := middleware.GetUser(c)
	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.mood.Record(c.Request.Context(), user.Namespace(), req.Score, req.Note)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) MoodStats(c *gin.Context) {
	user := middleware.GetUser(c)
	stats, err := h.mood.Stats(c.Request.Context(), user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListExerciseDays(c *gin.Context) {
	user := middleware.GetUser(c)
	days, err := h.exercise.List(c.Request.Context(), user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	streak, err := h.exercise.Streak(c.Request.Context(), user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "streak": streak})
}

func (h *Handler) MarkExerciseDay(c *gin.Context) {
	user := middleware.GetUser(c)
	day, err := h.exercise.MarkToday(c.Request.Context(), user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func breathingView(b *wellness.Breathing) gin.H {
	st := b.Status()
	return gin.H{
		"phase":     st.Phase,
		"remaining": st.Remaining,
		"cycles":    st.Cycles,
		"running":   st.Running,
	}
}

func (h *Handler) BreathingState(c *gin.Context) {
	user := middleware.GetUser(c)
	c.JSON(http.StatusOK, breathingView(h.sessions.Breathing(user.Namespace())))
}

type breathingRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *Handler) ControlBreathing(c *gin.Context) {
	user := middleware.GetUser(c)
	var req breathingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b := h.sessions.Breathing(user.Namespace())
	switch req.Action {
	case "start":
		b.Start()
	case "pause":
		b.Pause()
	case "reset":
		b.Reset()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
		return
	}
	c.JSON(http.StatusOK, breathingView(b))
}

func meditationView(m *wellness.Meditation) gin.H {
	st := m.Status()
	return gin.H{
		"track":     st.Track,
		"total":     st.Total,
		"remaining": st.Remaining,
		"running":   st.Running,
		"done":      st.Done,
	}
}

func (h *Handler) MeditationState(c *gin.Context) {
	user := middleware.GetUser(c)
	m := h.sessions.Meditation(user.Namespace())
	if m == nil {
		c.JSON(http.StatusOK, gin.H{
			"active":    false,
			"durations": config.MeditationDurations,
			"tracks":    config.MeditationTracks,
		})
		return
	}
	view := meditationView(m)
	view["active"] = true
	c.JSON(http.StatusOK, view)
}

type meditationRequest struct {
	Minutes int    `json:"minutes" binding:"required"`
	Track   string `json:"track"`
}

func (h *Handler) StartMeditation(c *gin.Context) {
	user := middleware.GetUser(c)
	var req meditationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := h.sessions.StartMeditation(user.Namespace(), req.Minutes, req.Track)
	c.JSON(http.StatusOK, meditationView(m))
}
