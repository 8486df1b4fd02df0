package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/crisis"
	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/middleware"
	"github.com/solacehq/solace/internal/repository"
	"github.com/solacehq/solace/internal/service"
	"github.com/solacehq/solace/internal/wellness"
)

// Handler holds all dependencies needed by the HTTP endpoints.
type Handler struct {
	cfg           *config.Config
	userService   *service.UserService
	pipeline      *service.Pipeline
	conversations *service.ConversationService
	saved         *service.SavedService
	mood          *service.MoodService
	exercise      *service.ExerciseService
	websearch     *service.WebSearchService
	prefs         *service.PreferencesService
	center        *crisis.Center
	sessions      *wellness.Sessions
	locks         *repository.Locks
	db            *pgxpool.Pool
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg           *config.Config
	UserService   *service.UserService
	Pipeline      *service.Pipeline
	Conversations *service.ConversationService
	Saved         *service.SavedService
	Mood          *service.MoodService
	Exercise      *service.ExerciseService
	WebSearch     *service.WebSearchService
	Prefs         *service.PreferencesService
	Center        *crisis.Center
	Sessions      *wellness.Sessions
	Locks         *repository.Locks
	DB            *pgxpool.Pool
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:           deps.Cfg,
		userService:   deps.UserService,
		pipeline:      deps.Pipeline,
		conversations: deps.Conversations,
		saved:         deps.Saved,
		mood:          deps.Mood,
		exercise:      deps.Exercise,
		websearch:     deps.WebSearch,
		prefs:         deps.Prefs,
		center:        deps.Center,
		sessions:      deps.Sessions,
		locks:         deps.Locks,
		db:            deps.DB,
	}
}

// RegisterRoutes wires every endpoint onto the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/check-email", h.CheckEmail)
		auth.POST("/send-verification", h.SendVerification)
		auth.POST("/verify-code", h.VerifyCode)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}

	api := r.Group("/api", middleware.RequireAuth(h.userService))
	{
		api.GET("/me", h.Me)
		api.PUT("/me/mode", h.SetMode)

		api.POST("/chat", middleware.RateLimit(h.locks), h.SubmitMessage)
		api.GET("/chat", h.ActiveConversation)
		api.POST("/chat/new", h.NewConversation)

		api.GET("/crisis", h.CrisisState)
		api.POST("/crisis/dismiss", h.DismissCrisis)

		api.GET("/history", h.ListHistory)
		api.GET("/history/:id", h.GetHistory)
		api.DELETE("/history/:id", h.DeleteHistory)

		api.GET("/saved", h.ListSaved)
		api.POST("/saved", h.SaveMessage)
		api.DELETE("/saved/:index", h.RemoveSaved)

		api.GET("/mood", h.ListMood)
		api.POST("/mood", h.RecordMood)
		api.GET("/mood/stats", h.MoodStats)

		api.GET("/exercise-days", h.ListExerciseDays)
		api.POST("/exercise-days", h.MarkExerciseDay)

		api.GET("/wellness/breathing", h.BreathingState)
		api.POST("/wellness/breathing", h.ControlBreathing)
		api.GET("/wellness/meditation", h.MeditationState)
		api.POST("/wellness/meditation", h.StartMeditation)

		api.GET("/resources", h.SearchResources)

		api.GET("/preferences", h.GetPreferences)
		api.PUT("/preferences", h.SetPreferences)
	}
}

// fail maps domain sentinels onto HTTP statuses; anything unrecognised is
// a 500 with a generic body.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrCodeMismatch),
		errors.Is(err, domain.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrActiveRequest):
		c.JSON(http.StatusConflict, gin.H{"error": "a request is already being processed"})
	case errors.Is(err, domain.ErrInterstitialLocked):
		c.JSON(http.StatusConflict, gin.H{"error": "countdown still running"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, domain.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrHistoryNotFound),
		errors.Is(err, domain.ErrNoInterstitial),
		errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Health reports liveness plus database reachability.
func (h *Handler) Health(c *gin.Context) {
	dbStatus := "ok"
	status := http.StatusOK
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			dbStatus = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}
	c.JSON(status, gin.H{"status": "ok", "database": dbStatus})
}
