// Package handler provides HTTP handlers for all API endpoints. Handlers are
// thin adapters: they parse the request, call the catalog service, and map
// its error taxonomy to HTTP statuses. Rendered responses are cached
// in-memory with ETags so repeat page loads skip the service entirely.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/spudin/gamelist-data/internal/api/respond"
	"github.com/spudin/gamelist-data/internal/catalog"
	"github.com/spudin/gamelist-data/internal/config"
	"github.com/spudin/gamelist-data/internal/db"
	"github.com/spudin/gamelist-data/internal/gamecache"
	"github.com/spudin/gamelist-data/internal/httpcache"
	"github.com/spudin/gamelist-data/internal/igdb"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	catalog   *catalog.Service
	pool      *db.Pool
	store     *gamecache.Store
	responses *httpcache.Cache
	cfg       *config.Config
	logger    *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(svc *catalog.Service, pool *db.Pool, store *gamecache.Store, responses *httpcache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		catalog:   svc,
		pool:      pool,
		store:     store,
		responses: responses,
		cfg:       cfg,
		logger:    logger,
	}
}

// writeCatalogError maps catalog/igdb error kinds to HTTP statuses.
func (h *Handler) writeCatalogError(w http.ResponseWriter, err error) {
	var authErr *igdb.AuthError
	var apiErr *igdb.APIError

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Game not found")
	case errors.Is(err, catalog.ErrBlocked):
		respond.WriteError(w, http.StatusForbidden, "CONTENT_BLOCKED", "Game is not available")
	case errors.Is(err, igdb.ErrMissingCredentials):
		respond.WriteError(w, http.StatusServiceUnavailable, "NOT_CONFIGURED", "Catalog credentials are not configured")
	case errors.As(err, &authErr):
		h.logger.Error("upstream auth failure", "status", authErr.Status)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_AUTH", "Catalog authentication failed")
	case errors.As(err, &apiErr):
		h.logger.Error("upstream API failure", "status", apiErr.Status)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Catalog request failed")
	default:
		h.logger.Error("catalog request failed", "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Catalog request failed")
	}
}
