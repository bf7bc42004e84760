package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spudin/gamelist-data/internal/config"
	"github.com/spudin/gamelist-data/internal/gamecache"
	"github.com/spudin/gamelist-data/internal/igdb"
)

// GameAPI is the IGDB surface the service consumes.
type GameAPI interface {
	Games(ctx context.Context, query string) ([]igdb.RawGame, error)
}

// Cache is the persistent store surface the service consumes. Reads report
// misses instead of errors; writes are fire-and-forget.
type Cache interface {
	Get(ctx context.Context, t gamecache.Type, key string) (json.RawMessage, bool)
	GetStale(ctx context.Context, t gamecache.Type, key string) (json.RawMessage, bool)
	Put(ctx context.Context, t gamecache.Type, key string, payload any)
}

// Field lists per query shape. Expanded subfields (genres.name) return
// {id,name} objects; bare fields (themes) return numeric ids.
var (
	listFields = []string{
		"cover.url", "first_release_date", "total_rating", "total_rating_count",
		"genres.name", "platforms.name", "summary", "themes", "age_ratings.rating",
	}

	detailBaseFields = []string{
		"storyline", "game_modes.name", "player_perspectives.name",
		"involved_companies.company.name", "involved_companies.developer", "involved_companies.publisher",
		"websites.url", "websites.category",
		"franchises.name", "collection.name", "collection.games",
		"similar_games.name", "dlcs.name", "expansions.name", "standalone_expansions.name",
		"remakes.name", "remasters.name", "ports.name", "forks.name",
	}

	detailMediaFields = []string{
		"screenshots.url", "screenshots.width", "screenshots.height",
		"artworks.url", "artworks.width", "artworks.height",
		"videos.video_id", "videos.name",
	}
)

// newReleaseCandidates is the upstream page size for the new-releases
// queries; the result is truncated to the configured final size afterwards.
const newReleaseCandidates = 50

// Series accumulation thresholds: the collection contributes up to 20 games;
// franchises are consulted only below 10 and stop adding past 15.
const (
	seriesCollectionLimit  = 20
	seriesFranchiseTrigger = 10
	seriesTarget           = 15
)

// Service exposes the public catalog operations. All operations are
// cache-first; only NewReleases recovers from upstream failure.
type Service struct {
	api    GameAPI
	cache  Cache
	filter *Filter
	cfg    *config.Config
	logger *slog.Logger

	now func() time.Time // injectable for tests
}

// NewService wires the catalog service.
func NewService(api GameAPI, cache Cache, filter *Filter, cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, cache: cache, filter: filter, cfg: cfg, logger: logger, now: time.Now}
}

// --------------------------------------------------------------------------
// Search
// --------------------------------------------------------------------------

// Search finds games matching a free-text query. The cache stores the
// unfiltered normalized set; content filtering re-runs on every read so a
// policy change needs no cache invalidation.
func (s *Service) Search(ctx context.Context, query string) ([]Game, error) {
	key := gamecache.SearchKey(query)

	if games, ok := s.cachedList(ctx, gamecache.TypeSearch, key); ok {
		return s.filter.Apply(games), nil
	}

	condition := fmt.Sprintf(`name ~ *"%s"*`, igdb.Escape(query))
	raw, err := s.api.Games(ctx, igdb.BuildQuery(listFields, condition, s.cfg.SearchPageSize, ""))
	if err != nil {
		return nil, err
	}

	games := NormalizeAll(raw)
	s.cache.Put(ctx, gamecache.TypeSearch, key, games)

	return s.filter.Apply(games), nil
}

// --------------------------------------------------------------------------
// GetByID
// --------------------------------------------------------------------------

// GetByID fetches full details for one game. A cached entry is returned
// as-is — single items are vetted before they are written. Blocked items are
// never cached, so a later policy relaxation re-fetches them cleanly.
func (s *Service) GetByID(ctx context.Context, id int64) (*Game, error) {
	key := gamecache.GameKey(id)

	if payload, ok := s.cache.Get(ctx, gamecache.TypeGameDetails, key); ok {
		var g Game
		if err := json.Unmarshal(payload, &g); err == nil {
			return &g, nil
		}
		s.logger.Warn("discarding undecodable cache entry", "key", key)
	}

	raw, err := s.api.Games(ctx, igdb.BuildQuery(s.detailFields(), fmt.Sprintf("id = %d", id), 1, ""))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}

	g := Normalize(raw[0])
	if s.filter.Disallowed(&g) {
		return nil, fmt.Errorf("game %d: %w", id, ErrBlocked)
	}

	s.cache.Put(ctx, gamecache.TypeGameDetails, key, g)
	return &g, nil
}

func (s *Service) detailFields() []string {
	fields := append(append([]string{}, listFields...), detailBaseFields...)
	if s.cfg.DetailScreenshots {
		fields = append(fields, detailMediaFields...)
	}
	return fields
}

// --------------------------------------------------------------------------
// Trending
// --------------------------------------------------------------------------

// Trending returns well-rated games with substantial rating counts.
func (s *Service) Trending(ctx context.Context) ([]Game, error) {
	if games, ok := s.cachedList(ctx, gamecache.TypeTrending, gamecache.TrendingKey); ok {
		return s.filter.Apply(games), nil
	}

	condition := fmt.Sprintf("total_rating_count >= %d & total_rating >= %g",
		s.cfg.TrendingMinRatingCnt, s.cfg.TrendingMinRating)
	raw, err := s.api.Games(ctx, igdb.BuildQuery(listFields, condition, s.cfg.TrendingPageSize, "total_rating desc"))
	if err != nil {
		return nil, err
	}

	games := NormalizeAll(raw)
	s.cache.Put(ctx, gamecache.TypeTrending, gamecache.TrendingKey, games)

	return s.filter.Apply(games), nil
}

// --------------------------------------------------------------------------
// NewReleases
// --------------------------------------------------------------------------

// NewReleases returns recent releases, relaxing thresholds when the strict
// query comes back thin and degrading to stale cache — or an empty list —
// when the live path fails entirely. It never hard-fails: this feeds a
// landing-page widget.
func (s *Service) NewReleases(ctx context.Context) []Game {
	if games, ok := s.cachedList(ctx, gamecache.TypeNewReleases, gamecache.NewReleasesKey); ok {
		return s.filter.Apply(games)
	}

	games, err := s.fetchNewReleases(ctx)
	if err != nil {
		s.logger.Warn("new releases live fetch failed, trying stale cache", "error", err)
		if payload, ok := s.cache.GetStale(ctx, gamecache.TypeNewReleases, gamecache.NewReleasesKey); ok {
			var stale []Game
			if jsonErr := json.Unmarshal(payload, &stale); jsonErr == nil {
				return s.filter.Apply(stale)
			}
		}
		return []Game{}
	}
	return games
}

// fetchNewReleases runs the strict query and, when it yields too few games,
// the relaxed follow-up over the same release window.
func (s *Service) fetchNewReleases(ctx context.Context) ([]Game, error) {
	nowSec := s.now().UTC()
	windowStart := nowSec.AddDate(0, -s.cfg.NewReleaseMonths, 0).Unix()
	windowEnd := nowSec.Unix()

	strictCond := fmt.Sprintf(
		"first_release_date >= %d & first_release_date <= %d & total_rating >= %g & total_rating_count >= %d",
		windowStart, windowEnd, s.cfg.NewReleaseMinRating, s.cfg.NewReleaseMinRatCnt)

	raw, err := s.api.Games(ctx, igdb.BuildQuery(listFields, strictCond, newReleaseCandidates, "first_release_date desc"))
	if err != nil {
		return nil, err
	}
	strict := s.filter.Apply(NormalizeAll(raw))

	if len(strict) >= s.cfg.NewReleaseStrictFloor {
		strict = truncateGames(strict, s.cfg.NewReleasePageSize)
		s.cache.Put(ctx, gamecache.TypeNewReleases, gamecache.NewReleasesKey, strict)
		return strict, nil
	}

	// Relaxed pass: any rated game in the window, then re-apply the original
	// rating floor locally so quality still gates the final list.
	relaxedCond := fmt.Sprintf(
		"first_release_date >= %d & first_release_date <= %d & total_rating_count >= 1",
		windowStart, windowEnd)

	raw, err = s.api.Games(ctx, igdb.BuildQuery(listFields, relaxedCond, newReleaseCandidates, "total_rating desc"))
	if err != nil {
		return nil, err
	}

	relaxed := make([]Game, 0, len(raw))
	for _, g := range s.filter.Apply(NormalizeAll(raw)) {
		if g.TotalRating != nil && *g.TotalRating >= s.cfg.NewReleaseMinRating {
			relaxed = append(relaxed, g)
		}
	}
	relaxed = truncateGames(relaxed, s.cfg.NewReleasePageSize)

	s.cache.Put(ctx, gamecache.TypeNewReleases, gamecache.NewReleasesKey, relaxed)
	return relaxed, nil
}

// --------------------------------------------------------------------------
// SeriesByID
// --------------------------------------------------------------------------

// SeriesByID returns other games in the target game's collection and
// franchises, oldest release first. An unknown id or a game with neither
// yields an empty list, not an error.
func (s *Service) SeriesByID(ctx context.Context, id int64) ([]Game, error) {
	refs, err := s.api.Games(ctx, igdb.BuildQuery([]string{"collection", "franchises"}, fmt.Sprintf("id = %d", id), 1, ""))
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return []Game{}, nil
	}
	target := refs[0]

	var collected []igdb.RawGame
	seen := map[int64]bool{id: true}

	if target.Collection != nil && target.Collection.ID != 0 {
		condition := fmt.Sprintf("collection = %d & id != %d", target.Collection.ID, id)
		members, err := s.api.Games(ctx, igdb.BuildQuery(listFields, condition, seriesCollectionLimit, "first_release_date asc"))
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			collected = append(collected, m)
		}
	}

	if len(collected) < seriesFranchiseTrigger {
		for _, fr := range target.Franchises {
			if len(collected) >= seriesTarget {
				break
			}
			condition := fmt.Sprintf("franchises = %d & id != %d", fr.ID, id)
			members, err := s.api.Games(ctx, igdb.BuildQuery(listFields, condition, seriesCollectionLimit, "first_release_date asc"))
			if err != nil {
				return nil, err
			}
			for _, m := range members {
				if seen[m.ID] {
					continue
				}
				seen[m.ID] = true
				collected = append(collected, m)
			}
		}
	}

	return s.filter.Apply(NormalizeAll(collected)), nil
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// cachedList reads and decodes a cached game list. Undecodable payloads are
// treated as misses so a schema change cannot wedge an entry.
func (s *Service) cachedList(ctx context.Context, t gamecache.Type, key string) ([]Game, bool) {
	payload, ok := s.cache.Get(ctx, t, key)
	if !ok {
		return nil, false
	}
	var games []Game
	if err := json.Unmarshal(payload, &games); err != nil {
		s.logger.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return nil, false
	}
	return games, true
}

func truncateGames(games []Game, limit int) []Game {
	if limit > 0 && len(games) > limit {
		return games[:limit]
	}
	return games
}
