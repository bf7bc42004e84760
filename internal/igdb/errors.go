package igdb

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when the Twitch client id or secret is
// absent. Fatal — callers should surface it immediately rather than retry.
var ErrMissingCredentials = errors.New("igdb: TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET are required")

// AuthError reports a non-2xx response from the Twitch OAuth token endpoint.
// The response body is kept for diagnostics.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("igdb: token endpoint returned %d: %s", e.Status, e.Body)
}

// APIError reports a non-2xx response from an IGDB query endpoint.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("igdb: HTTP %d: %s", e.Status, e.Body)
}
