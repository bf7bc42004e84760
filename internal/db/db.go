// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spudin/gamelist-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// EnsureSchema creates the game_cache table if it does not exist yet.
// Idempotent; safe to run on every startup.
func (p *Pool) EnsureSchema(ctx context.Context) error {
	_, err := p.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS game_cache (
			cache_key    TEXT PRIMARY KEY,
			cache_type   TEXT NOT NULL,
			data         JSONB NOT NULL,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create game_cache table: %w", err)
	}
	_, err = p.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_game_cache_type ON game_cache (cache_type)`)
	if err != nil {
		return fmt.Errorf("create game_cache index: %w", err)
	}
	return nil
}

// registerPreparedStatements registers all statements the API and warming
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Cache reads
		"cache_get":       "SELECT data, last_updated FROM game_cache WHERE cache_key = $1",
		"cache_get_stale": "SELECT data FROM game_cache WHERE cache_type = $1 AND cache_key = $2",

		// Cache writes
		"cache_upsert": `
			INSERT INTO game_cache (cache_key, cache_type, data, last_updated)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (cache_key)
			DO UPDATE SET cache_type = $2, data = $3, last_updated = $4`,

		// Maintenance
		"cache_purge_before": "DELETE FROM game_cache WHERE cache_type = $1 AND last_updated < $2",
		"cache_stats":        "SELECT cache_type, COUNT(*) FROM game_cache GROUP BY cache_type",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
