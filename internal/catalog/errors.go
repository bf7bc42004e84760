package catalog

import "errors"

// ErrNotFound is returned by GetByID when IGDB has no game with that id.
var ErrNotFound = errors.New("catalog: game not found")

// ErrBlocked is returned by GetByID when the requested game matches the
// content filter. Distinct from ErrNotFound so callers can message the
// difference (403 vs 404).
var ErrBlocked = errors.New("catalog: game blocked by content filter")
