// Package main is the entry point for the stock screener service.
// The service holds an in-memory universe of stock records, serves
// tabular filtering, sorting and pagination over it, and translates
// natural-language prompts into structured filters via an external
// interpretation service.
//
// The application follows clean architecture principles:
// - Domain layer is pure (no infrastructure dependencies)
// - Constructor injection for all services
// - Service layer for business logic
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockai/screener/internal/clientdata"
	"github.com/stockai/screener/internal/clients/interpreter"
	"github.com/stockai/screener/internal/config"
	"github.com/stockai/screener/internal/modules/screener"
	screenerhandlers "github.com/stockai/screener/internal/modules/screener/handlers"
	"github.com/stockai/screener/internal/modules/search"
	"github.com/stockai/screener/internal/modules/universe"
	"github.com/stockai/screener/internal/scheduler"
	"github.com/stockai/screener/internal/server"
	"github.com/stockai/screener/pkg/logger"
)

// main orchestrates the startup sequence:
// 1. Loads configuration from environment variables
// 2. Initializes logging
// 3. Seeds the in-memory universe with generated records
// 4. Wires the screening, search and cache services
// 5. Registers scheduled jobs (universe refresh, cache cleanup)
// 6. Starts the HTTP server
// 7. Waits for shutdown signal and performs graceful shutdown
func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	zerolog.DefaultContextLogger = &log

	log.Info().Msg("Starting screener service")

	// Seed the universe before the server accepts traffic so the first
	// request never sees an empty table.
	store := universe.NewStore()
	refreshJob := universe.NewRefreshJob(store, cfg.UniverseSeed, cfg.UniverseSize)
	if err := refreshJob.Run(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed universe")
	}
	log.Info().Int("size", store.Len()).Msg("Universe seeded")

	// Response cache shared by the interpreter client.
	cache := clientdata.NewCache()

	interpreterClient := interpreter.NewClient(cfg.InterpreterURL, cfg.InterpreterTimeout, cache)
	searchService := search.NewService(interpreterClient, cache)
	screenerService := screener.NewService(store, cfg.PageSize)

	handlers := screenerhandlers.New(screenerService, searchService, refreshJob)

	// Scheduled jobs: periodic universe refresh and cache cleanup.
	sched := scheduler.New()
	if cfg.RefreshSchedule != "" {
		if err := sched.AddJob(cfg.RefreshSchedule, refreshJob); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.RefreshSchedule).Msg("Failed to register refresh job")
		}
	}
	if err := sched.AddJob("@hourly", clientdata.NewCleanupJob(cache)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache cleanup job")
	}
	sched.Start()

	srv := server.New(server.Config{
		Cfg:              cfg,
		ScreenerHandlers: handlers,
		Store:            store,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()
	log.Info().Int("port", cfg.Port).Msg("Screener service ready")

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	sched.Stop()

	// The HTTP server gets up to 10 seconds to finish in-flight
	// requests before being forced down.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
