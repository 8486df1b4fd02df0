package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	solaceroot "github.com/solacehq/solace"
	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/crisis"
	"github.com/solacehq/solace/internal/handler"
	"github.com/solacehq/solace/internal/middleware"
	"github.com/solacehq/solace/internal/repository"
	"github.com/solacehq/solace/internal/service"
	"github.com/solacehq/solace/internal/store"
	"github.com/solacehq/solace/internal/wellness"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(solaceroot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	users := repository.NewUsers(pool)
	sessions := repository.NewSessions(pool)
	locks := repository.NewLocks(pool)
	userStore := store.NewPostgres(pool)

	// Initialize services
	codes := service.NewCodesCache(config.VerificationCodeTTL)
	userService := service.NewUserService(users, sessions, codes, service.LogMailer{}, cfg.SessionTTL)
	oracle := service.NewOracleClient(cfg.OracleURL, cfg.OracleKey, cfg.OracleTimeout)
	center := crisis.NewCenter(cfg.CrisisCountdown, config.InterstitialMaxAge)
	pipeline := service.NewPipeline(oracle, locks, userStore, center)
	conversations := service.NewConversationService(userStore)
	saved := service.NewSavedService(userStore)
	mood := service.NewMoodService(userStore)
	exercise := service.NewExerciseService(userStore)
	websearch := service.NewWebSearchService(cfg.SearchEnabled)
	prefs := service.NewPreferencesService(userStore)
	wellnessSessions := wellness.NewSessions(config.InterstitialMaxAge)

	// One shared ticker drives every countdown: crisis interstitials,
	// breathing phases, meditation timers.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				center.Tick()
				wellnessSessions.Tick()
			}
		}
	}()

	// Periodic cleanup of abandoned locks and expired sessions.
	go func() {
		ticker := time.NewTicker(config.StaleRequestCleanup)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := locks.CleanupStale(ctx, config.StaleRequestAge); err != nil {
					slog.Error("stale request cleanup failed", "error", err)
				}
				if err := locks.CleanupWindows(ctx); err != nil {
					slog.Error("rate limit cleanup failed", "error", err)
				}
				if err := sessions.DeleteExpired(ctx); err != nil {
					slog.Error("session cleanup failed", "error", err)
				}
			}
		}
	}()

	// Initialize handler
	h := handler.New(handler.Deps{
		Cfg:           cfg,
		UserService:   userService,
		Pipeline:      pipeline,
		Conversations: conversations,
		Saved:         saved,
		Mood:          mood,
		Exercise:      exercise,
		WebSearch:     websearch,
		Prefs:         prefs,
		Center:        center,
		Sessions:      wellnessSessions,
		Locks:         locks,
		DB:            pool,
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.Recover(), middleware.Logging())
	h.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
