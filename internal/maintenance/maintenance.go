// Package maintenance runs periodic background tasks as Go tickers: purging
// expired cache rows and re-warming the landing-page caches so user requests
// rarely pay the live fetch. All scheduled work is driven from Go since the
// API server is already a persistent, long-running process.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/spudin/gamelist-data/internal/catalog"
	"github.com/spudin/gamelist-data/internal/gamecache"
	"github.com/spudin/gamelist-data/internal/warm"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CleanupInterval time.Duration // Expired game_cache rows
	RewarmInterval  time.Duration // Trending + new-releases refresh
}

// DefaultConfig returns sensible production defaults. Re-warm runs on half
// the shortest cache window (new_releases: 1 day) so an expired entry is
// refreshed by the next tick rather than by a user request.
func DefaultConfig() Config {
	return Config{
		CleanupInterval: 6 * time.Hour,
		RewarmInterval:  12 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, store *gamecache.Store, svc *catalog.Service, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"cleanup", cfg.CleanupInterval,
		"rewarm", cfg.RewarmInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.CleanupInterval > 0 {
		t := time.NewTicker(cfg.CleanupInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { cleanup(ctx, store, logger) })
	}

	if cfg.RewarmInterval > 0 {
		t := time.NewTicker(cfg.RewarmInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { rewarm(ctx, svc, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// cleanup removes game_cache rows past their type's expiration window. Reads
// already treat them as misses; this just keeps the table from growing.
func cleanup(ctx context.Context, store *gamecache.Store, logger *slog.Logger) {
	removed, err := store.PurgeExpired(ctx)
	if err != nil {
		logger.Warn("Cleanup: failed to purge expired cache rows", "error", err)
		return
	}
	if removed > 0 {
		logger.Info("Cleanup: purged expired cache rows", "count", removed)
	}
}

// rewarm re-runs the landing-page queries; expired caches refill, fresh ones
// serve from cache and cost nothing.
func rewarm(ctx context.Context, svc *catalog.Service, logger *slog.Logger) {
	result := warm.All(ctx, svc, nil, logger)
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			logger.Warn("Re-warm error", "error", e)
		}
	}
	logger.Info("Re-warm finished", "summary", result.Summary())
}
