package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/edugram/edugram-backend/internal/config"
	"github.com/edugram/edugram-backend/internal/database"
	"github.com/edugram/edugram-backend/internal/engine"
	"github.com/edugram/edugram-backend/internal/handler"
	"github.com/edugram/edugram-backend/internal/logger"
	"github.com/edugram/edugram-backend/internal/repository"
	"github.com/edugram/edugram-backend/internal/router"
	"github.com/edugram/edugram-backend/internal/service"
	"github.com/edugram/edugram-backend/internal/validator"
	"github.com/edugram/edugram-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Edugram Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	playSessionRepo := repository.NewPlaySessionRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, userRepo)
	progressService := service.NewProgressService(rdb, log)
	catalogService := service.NewCatalogService(subjectRepo, questionRepo, playSessionRepo, progressService, rdb, log)
	leaderboardService := service.NewLeaderboardService(rdb, userRepo, cfg.LeaderboardSize, log)
	profileService := service.NewProfileService(userRepo, playSessionRepo, progressService, leaderboardService, rdb, log)

	statsSink := service.NewQueueStatsSink(rdb)
	aggregator := engine.NewAggregator(statsSink, log)
	playService := service.NewPlayService(cfg, catalogService, playSessionRepo, progressService, aggregator, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Play:        handler.NewPlayHandler(playService),
		Profile:     handler.NewProfileHandler(profileService, authService),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardService),
		Admin:       handler.NewAdminHandler(catalogService),
		WS:          handler.NewWSHandler(playService, log, cfg.AllowedOrigins),
		System:      handler.NewSystemHandler(rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	statsWorker := worker.NewProfileStatsWorker(userRepo, rdb, log)
	go statsWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
