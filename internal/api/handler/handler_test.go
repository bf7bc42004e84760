package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spudin/gamelist-data/internal/catalog"
	"github.com/spudin/gamelist-data/internal/config"
	"github.com/spudin/gamelist-data/internal/gamecache"
	"github.com/spudin/gamelist-data/internal/httpcache"
	"github.com/spudin/gamelist-data/internal/igdb"
)

// stubAPI returns the same canned result for every query.
type stubAPI struct {
	games []igdb.RawGame
	err   error
	calls int
}

func (s *stubAPI) Games(context.Context, string) ([]igdb.RawGame, error) {
	s.calls++
	return s.games, s.err
}

// nopCache always misses; the persistent tier is exercised in its own package.
type nopCache struct{}

func (nopCache) Get(context.Context, gamecache.Type, string) (json.RawMessage, bool) {
	return nil, false
}
func (nopCache) GetStale(context.Context, gamecache.Type, string) (json.RawMessage, bool) {
	return nil, false
}
func (nopCache) Put(context.Context, gamecache.Type, string, any) {}

func newTestRouter(api *stubAPI) *chi.Mux {
	cfg := &config.Config{
		FilterEnabled:     true,
		BlockedThemes:     config.DefaultBlockedThemes,
		BlockedAgeRatings: config.DefaultBlockedAgeRatings,
		SearchPageSize:    20,
		TrendingPageSize:  20,
	}
	filter := catalog.NewFilter(cfg.FilterEnabled, cfg.BlockedThemes, cfg.BlockedAgeRatings)
	svc := catalog.NewService(api, nopCache{}, filter, cfg, nil)
	h := New(svc, nil, nil, httpcache.New(true), cfg, nil)

	r := chi.NewRouter()
	r.Get("/games/search", h.SearchGames)
	r.Get("/games/trending", h.GetTrending)
	r.Get("/games/{id}", h.GetGame)
	r.Get("/games/{id}/series", h.GetSeries)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSearchGamesMissingQuery(t *testing.T) {
	router := newTestRouter(&stubAPI{})

	rec := doRequest(t, router, http.MethodGet, "/games/search", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_QUERY")
}

func TestGetGameInvalidID(t *testing.T) {
	router := newTestRouter(&stubAPI{})

	for _, target := range []string{"/games/abc", "/games/-5", "/games/0"} {
		rec := doRequest(t, router, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
		assert.Contains(t, rec.Body.String(), "INVALID_ID")
	}
}

func TestGetGameNotFound(t *testing.T) {
	router := newTestRouter(&stubAPI{games: []igdb.RawGame{}})

	rec := doRequest(t, router, http.MethodGet, "/games/99999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestGetGameBlocked(t *testing.T) {
	router := newTestRouter(&stubAPI{games: []igdb.RawGame{
		{ID: 42, Name: "Adult Game", AgeRatings: []igdb.RawAgeRating{{ID: 1, Rating: 12}}},
	}})

	rec := doRequest(t, router, http.MethodGet, "/games/42", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONTENT_BLOCKED")
}

func TestGetGameUpstreamError(t *testing.T) {
	router := newTestRouter(&stubAPI{err: &igdb.APIError{Status: 500, Body: "boom"}})

	rec := doRequest(t, router, http.MethodGet, "/games/7", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "UPSTREAM_ERROR")
}

func TestGetGameMissingCredentials(t *testing.T) {
	router := newTestRouter(&stubAPI{err: igdb.ErrMissingCredentials})

	rec := doRequest(t, router, http.MethodGet, "/games/7", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_CONFIGURED")
}

func TestSearchGamesServesAndCachesResponse(t *testing.T) {
	api := &stubAPI{games: []igdb.RawGame{{ID: 400, Name: "Portal"}}}
	router := newTestRouter(api)

	rec := doRequest(t, router, http.MethodGet, "/games/search?query=portal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	var games []catalog.Game
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
	require.Len(t, games, 1)
	assert.Equal(t, "Portal", games[0].Name)

	// Second request hits the rendered-response cache, not the service.
	rec = doRequest(t, router, http.MethodGet, "/games/search?query=portal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, api.calls)

	// Conditional request with the ETag short-circuits to 304.
	rec = doRequest(t, router, http.MethodGet, "/games/search?query=portal",
		http.Header{"If-None-Match": []string{etag}})
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGetSeriesEmptyListForUnknownGame(t *testing.T) {
	router := newTestRouter(&stubAPI{games: []igdb.RawGame{}})

	rec := doRequest(t, router, http.MethodGet, "/games/123/series", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
