// Command api is the Spudin Game List data API server.
//
// Usage:
//
//	gamelist-api
//	API_PORT=8080 gamelist-api

// @title Spudin Game List Data API
// @version 1.0.0
// @description Game catalog API fronting IGDB: search, details, trending, new releases, and series lookups, normalized and cached in Postgres.
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

	"github.com/spudin/gamelist-data/internal/api"
	"github.com/spudin/gamelist-data/internal/catalog"
	"github.com/spudin/gamelist-data/internal/config"
	"github.com/spudin/gamelist-data/internal/db"
	"github.com/spudin/gamelist-data/internal/gamecache"
	"github.com/spudin/gamelist-data/internal/igdb"
	"github.com/spudin/gamelist-data/internal/maintenance"

	_ "github.com/spudin/gamelist-data/docs" // swagger docs
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
	if !cfg.HasIGDBCredentials() {
		logger.Error("TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET must be set")
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

	if err := pool.EnsureSchema(ctx); err != nil {
		logger.Error("Failed to ensure schema", "error", err)
		os.Exit(1)
	}
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Wire the catalog service
	tokens := igdb.NewTokenSource(cfg.TwitchClientID, cfg.TwitchClientSecret, cfg.IGDBTokenURL)
	client := igdb.NewClient(cfg.IGDBBaseURL, cfg.TwitchClientID, tokens, cfg.IGDBRequestsPerSec, logger)
	store := gamecache.NewStore(pool, cfg.CacheEnabled, logger)
	filter := catalog.NewFilter(cfg.FilterEnabled, cfg.BlockedThemes, cfg.BlockedAgeRatings)
	svc := catalog.NewService(client, store, filter, cfg, logger)
	logger.Info("Catalog service initialized",
		"cache_enabled", cfg.CacheEnabled,
		"filter_enabled", cfg.FilterEnabled)

	// Start maintenance tickers (cache cleanup, landing-page re-warm)
	go maintenance.Start(ctx, store, svc, maintenance.DefaultConfig(), logger)

	// Create router
	router := api.NewRouter(svc, pool, store, cfg, logger)

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
		logger.Info("Starting Spudin Game List Data API",
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
