// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Content safety defaults
// --------------------------------------------------------------------------

// IGDB theme 42 is "Erotica"; age-rating value 12 is ESRB Adults Only.
var (
	DefaultBlockedThemes     = []int{42}
	DefaultBlockedAgeRatings = []int{12}
)

// --------------------------------------------------------------------------
// Table names — single source of truth, matches db/schema.sql
// --------------------------------------------------------------------------

const GameCacheTable = "game_cache"

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// IGDB / Twitch credentials
	TwitchClientID     string
	TwitchClientSecret string
	IGDBBaseURL        string
	IGDBTokenURL       string
	IGDBRequestsPerSec int

	// Content filter
	FilterEnabled     bool
	BlockedThemes     []int
	BlockedAgeRatings []int

	// Catalog behaviour
	SearchPageSize        int
	DetailScreenshots     bool
	TrendingMinRating     float64
	TrendingMinRatingCnt  int
	TrendingPageSize      int
	NewReleaseMonths      int
	NewReleaseMinRating   float64
	NewReleaseMinRatCnt   int
	NewReleasePageSize    int
	NewReleaseStrictFloor int

	// Cache
	CacheEnabled bool

	// Warming
	WarmSearches []string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", envOr("SUPABASE_DB_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or SUPABASE_DB_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		TwitchClientID:     envOr("TWITCH_CLIENT_ID", ""),
		TwitchClientSecret: envOr("TWITCH_CLIENT_SECRET", ""),
		IGDBBaseURL:        envOr("IGDB_BASE_URL", "https://api.igdb.com/v4"),
		IGDBTokenURL:       envOr("IGDB_TOKEN_URL", "https://id.twitch.tv/oauth2/token"),
		IGDBRequestsPerSec: envInt("IGDB_REQUESTS_PER_SEC", 4),

		FilterEnabled:     envBool("CONTENT_FILTER_ENABLED", true),
		BlockedThemes:     envIntList("BLOCKED_THEME_IDS", DefaultBlockedThemes),
		BlockedAgeRatings: envIntList("BLOCKED_AGE_RATING_VALUES", DefaultBlockedAgeRatings),

		SearchPageSize:        envInt("SEARCH_PAGE_SIZE", 20),
		DetailScreenshots:     envBool("DETAIL_SCREENSHOTS", true),
		TrendingMinRating:     envFloat("TRENDING_MIN_RATING", 75),
		TrendingMinRatingCnt:  envInt("TRENDING_MIN_RATING_COUNT", 50),
		TrendingPageSize:      envInt("TRENDING_PAGE_SIZE", 20),
		NewReleaseMonths:      envInt("NEW_RELEASE_MONTHS", 3),
		NewReleaseMinRating:   envFloat("NEW_RELEASE_MIN_RATING", 70),
		NewReleaseMinRatCnt:   envInt("NEW_RELEASE_MIN_RATING_COUNT", 5),
		NewReleasePageSize:    envInt("NEW_RELEASE_PAGE_SIZE", 15),
		NewReleaseStrictFloor: envInt("NEW_RELEASE_STRICT_FLOOR", 5),

		CacheEnabled: envBool("CACHE_ENABLED", true),

		WarmSearches: envList("WARM_SEARCHES", nil),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasIGDBCredentials reports whether Twitch client credentials are configured.
func (c *Config) HasIGDBCredentials() bool {
	return c.TwitchClientID != "" && c.TwitchClientSecret != ""
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

func envIntList(key string, fallback []int) []int {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]int, 0, len(parts))
		for _, p := range parts {
			if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
				result = append(result, n)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
