// Command api is the Bayshore League Data API server.
//
// Usage:
//
//	league-api
//	API_PORT=8080 league-api

// @title Bayshore League Data API
// @version 1.0.0
// @description League data API serving division standings, award leaderboards, team rosters, and the admin write surface.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/bayshorevolley/league-data/docs" // swagger docs

	"github.com/bayshorevolley/league-data/internal/api"
	"github.com/bayshorevolley/league-data/internal/config"
	"github.com/bayshorevolley/league-data/internal/db"
	"github.com/bayshorevolley/league-data/internal/reconcile"
	"github.com/bayshorevolley/league-data/internal/snapshot"
	"github.com/bayshorevolley/league-data/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	st := store.New(pool.Pool)
	engine := reconcile.New(st, logger, cfg.ImportChunkSize)

	// Load the initial snapshot before serving reads.
	snap := snapshot.New(st, logger)
	if err := snap.Refresh(ctx); err != nil {
		logger.Error("Failed to load initial snapshot", "error", err)
		os.Exit(1)
	}
	logger.Info("Snapshot loaded", "stats", snap.Stats())

	// Any row change on any table invalidates the whole snapshot.
	go store.Listen(ctx, cfg.DatabaseURL, func(event store.ChangeEvent) {
		logger.Info("Change notification", "table", event.Table, "op", event.Op)
		if err := snap.Refresh(ctx); err != nil {
			logger.Warn("Snapshot refresh after change failed", "error", err)
		}
	}, logger)

	// Catch-up sweep in case a notification is missed.
	go snap.AutoRefresh(ctx, cfg.SnapshotRefreshInterval)

	// Create router
	router := api.NewRouter(pool, snap, engine, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Bayshore League Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
