// Package gamecache provides the persistent IGDB response cache over the
// Postgres game_cache table. Expiration is computed at read time from the
// cache type and last_updated, so policy changes apply to existing rows.
package gamecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Type scopes a cache entry's expiration policy.
type Type string

const (
	TypeSearch      Type = "search"
	TypeGameDetails Type = "game_details"
	TypeTrending    Type = "trending"
	TypeNewReleases Type = "new_releases"
)

// defaultWindow is the conservative fallback for any future type.
const defaultWindow = 7 * 24 * time.Hour

// Window returns the expiration window for this cache type.
func (t Type) Window() time.Duration {
	switch t {
	case TypeSearch:
		return 7 * 24 * time.Hour
	case TypeGameDetails:
		return 14 * 24 * time.Hour
	case TypeTrending:
		return 3 * 24 * time.Hour
	case TypeNewReleases:
		return 24 * time.Hour
	default:
		return defaultWindow
	}
}

// Types lists every known cache type, for maintenance sweeps and stats.
func Types() []Type {
	return []Type{TypeSearch, TypeGameDetails, TypeTrending, TypeNewReleases}
}

// --------------------------------------------------------------------------
// Keys — cache_key is unique across types, so every key is type-prefixed
// --------------------------------------------------------------------------

// SearchKey normalizes a search query into its cache key. Case and
// surrounding whitespace variants share one entry.
func SearchKey(query string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(query))
}

// GameKey returns the cache key for a single game's details.
func GameKey(id int64) string {
	return fmt.Sprintf("game:%d", id)
}

const (
	TrendingKey    = "trending"
	NewReleasesKey = "new_releases"
)

// --------------------------------------------------------------------------
// Store
// --------------------------------------------------------------------------

// DB is the slice of pgxpool.Pool the store needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store reads and writes the game_cache table. All failures are logged and
// reported as misses or swallowed — caching is best-effort and must never
// fail the caller's request.
type Store struct {
	db      DB
	enabled bool
	logger  *slog.Logger

	now func() time.Time // injectable for tests
}

// NewStore creates a cache store. Pass enabled=false for a no-op store.
func NewStore(db DB, enabled bool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, enabled: enabled, logger: logger, now: time.Now}
}

// Get returns the cached payload for key, or ok=false on miss, read error,
// or expiry. Callers cannot distinguish "never cached" from "expired".
func (s *Store) Get(ctx context.Context, t Type, key string) (json.RawMessage, bool) {
	if !s.enabled {
		return nil, false
	}

	var data []byte
	var lastUpdated time.Time
	err := s.db.QueryRow(ctx, "cache_get", key).Scan(&data, &lastUpdated)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	if s.now().Sub(lastUpdated) > t.Window() {
		return nil, false
	}
	return data, true
}

// GetStale returns the cached payload for key regardless of age. Used by the
// new-releases stale fallback when the live fetch path fails.
func (s *Store) GetStale(ctx context.Context, t Type, key string) (json.RawMessage, bool) {
	if !s.enabled {
		return nil, false
	}

	var data []byte
	err := s.db.QueryRow(ctx, "cache_get_stale", string(t), key).Scan(&data)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("stale cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

// Put upserts the payload under key with last_updated = now. Marshal and
// write failures are logged and swallowed.
func (s *Store) Put(ctx context.Context, t Type, key string, payload any) {
	if !s.enabled {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}

	if _, err := s.db.Exec(ctx, "cache_upsert", key, string(t), data, s.now().UTC()); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// PurgeExpired deletes rows past their type's window. Returns rows removed.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	var total int64
	for _, t := range Types() {
		cutoff := s.now().UTC().Add(-t.Window())
		tag, err := s.db.Exec(ctx, "cache_purge_before", string(t), cutoff)
		if err != nil {
			return total, fmt.Errorf("purge %s: %w", t, err)
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

// Stats returns row counts per cache type.
func (s *Store) Stats(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.Query(ctx, "cache_stats")
	if err != nil {
		return nil, fmt.Errorf("cache stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int64)
	for rows.Next() {
		var t string
		var n int64
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan cache stats: %w", err)
		}
		stats[t] = n
	}
	return stats, rows.Err()
}
