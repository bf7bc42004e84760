// Package warm pre-populates the persistent game cache so first page loads
// never wait on IGDB. Used by the ingest CLI and the maintenance re-warm
// ticker.
package warm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spudin/gamelist-data/internal/catalog"
)

// Result tracks counts and errors from a warming run.
type Result struct {
	TrendingGames   int
	NewReleaseGames int
	SearchesWarmed  int
	Errors          []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the warming run.
func (r *Result) Summary() string {
	return fmt.Sprintf("trending=%d new_releases=%d searches=%d errors=%d",
		r.TrendingGames, r.NewReleaseGames, r.SearchesWarmed, len(r.Errors))
}

// All warms trending, new releases, and the configured seed searches.
// Individual failures are recorded and do not stop the run.
func All(ctx context.Context, svc *catalog.Service, searches []string, logger *slog.Logger) Result {
	var result Result

	games, err := svc.Trending(ctx)
	if err != nil {
		result.AddErrorf("trending: %v", err)
	} else {
		result.TrendingGames = len(games)
		logger.Info("warmed trending", "games", len(games))
	}

	releases := svc.NewReleases(ctx)
	result.NewReleaseGames = len(releases)
	logger.Info("warmed new releases", "games", len(releases))

	for _, q := range searches {
		if _, err := svc.Search(ctx, q); err != nil {
			result.AddErrorf("search %q: %v", q, err)
			continue
		}
		result.SearchesWarmed++
	}
	if len(searches) > 0 {
		logger.Info("warmed searches", "count", result.SearchesWarmed, "requested", len(searches))
	}

	return result
}
