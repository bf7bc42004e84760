package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spudin/gamelist-data/internal/api/respond"
	"github.com/spudin/gamelist-data/internal/catalog"
	"github.com/spudin/gamelist-data/internal/gamecache"
	"github.com/spudin/gamelist-data/internal/httpcache"
)

// SearchGames searches the catalog by free-text query.
// @Summary Search games
// @Description Full-text search over the IGDB catalog. Results are normalized, content-filtered, and cached.
// @Tags games
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {array} catalog.Game
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /games/search [get]
func (h *Handler) SearchGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_QUERY", "query parameter is required")
		return
	}

	h.serveList(w, r, gamecache.SearchKey(query), httpcache.TTLSearch, func() ([]catalog.Game, error) {
		return h.catalog.Search(r.Context(), query)
	})
}

// GetGame returns full details for one game.
// @Summary Get game details
// @Description Returns the normalized detail record for a single game.
// @Tags games
// @Produce json
// @Param id path int true "IGDB game id"
// @Success 200 {object} catalog.Game
// @Failure 400 {object} respond.ErrorResponse
// @Failure 403 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /games/{id} [get]
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		return
	}

	cacheKey := gamecache.GameKey(id)
	if h.serveCached(w, r, cacheKey, httpcache.TTLGameDetails) {
		return
	}

	game, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	h.writeFresh(w, cacheKey, httpcache.TTLGameDetails, game)
}

// GetTrending returns highly rated games.
// @Summary Trending games
// @Description Returns well-rated games with substantial rating counts, sorted by rating.
// @Tags games
// @Produce json
// @Success 200 {array} catalog.Game
// @Failure 502 {object} respond.ErrorResponse
// @Router /games/trending [get]
func (h *Handler) GetTrending(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, gamecache.TrendingKey, httpcache.TTLTrending, func() ([]catalog.Game, error) {
		return h.catalog.Trending(r.Context())
	})
}

// GetNewReleases returns recent releases. Never fails on upstream errors —
// it degrades to stale cache or an empty list.
// @Summary New releases
// @Description Returns recent well-rated releases. Degrades to stale data rather than erroring.
// @Tags games
// @Produce json
// @Success 200 {array} catalog.Game
// @Router /games/new-releases [get]
func (h *Handler) GetNewReleases(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, gamecache.NewReleasesKey, httpcache.TTLNewReleases, func() ([]catalog.Game, error) {
		return h.catalog.NewReleases(r.Context()), nil
	})
}

// GetSeries returns other games in the target's collection and franchises.
// @Summary Game series
// @Description Returns other members of the game's collection and franchises, oldest first.
// @Tags games
// @Produce json
// @Param id path int true "IGDB game id"
// @Success 200 {array} catalog.Game
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /games/{id}/series [get]
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		return
	}

	h.serveList(w, r, fmt.Sprintf("series:%d", id), httpcache.TTLSeries, func() ([]catalog.Game, error) {
		return h.catalog.SeriesByID(r.Context(), id)
	})
}

// --------------------------------------------------------------------------
// Response-cache plumbing shared by the list endpoints
// --------------------------------------------------------------------------

// serveCached serves a cached rendered response if present, honoring
// If-None-Match. Reports whether the request was handled.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration) bool {
	data, etag, ok := h.responses.Get(key)
	if !ok {
		return false
	}
	if httpcache.ETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return true
	}
	respond.WriteJSON(w, data, etag, ttl, true)
	return true
}

func (h *Handler) writeFresh(w http.ResponseWriter, key string, ttl time.Duration, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("response marshal failed", "key", key, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode response")
		return
	}
	etag := h.responses.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, fetch func() ([]catalog.Game, error)) {
	if h.serveCached(w, r, key, ttl) {
		return
	}
	games, err := fetch()
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	h.writeFresh(w, key, ttl, games)
}
