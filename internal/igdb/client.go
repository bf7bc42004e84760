// Package igdb provides the HTTP client for the IGDB v4 API.
//
// IGDB uses Twitch OAuth2 client-credentials auth and an Apicalypse query
// language POSTed as text/plain. The free tier allows 4 requests/second, so
// requests flow through a token bucket limiter.
package igdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client is the HTTP client for IGDB query endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	tokens     *TokenSource
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an IGDB client with rate limiting. The token source is
// shared so all clients in-process reuse one bearer token.
func NewClient(baseURL, clientID string, tokens *TokenSource, requestsPerSec int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if requestsPerSec <= 0 {
		requestsPerSec = 4
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		clientID:   clientID,
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), requestsPerSec),
		logger:     logger,
	}
}

// Games executes an Apicalypse query against /games.
func (c *Client) Games(ctx context.Context, query string) ([]RawGame, error) {
	var games []RawGame
	if err := c.Query(ctx, "games", query, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Query executes an Apicalypse query against an arbitrary endpoint and
// decodes the JSON array response into dst. No retry — relaxation and
// fallback policy belongs to the catalog service.
func (c *Client) Query(ctx context.Context, endpoint, query string, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("igdb: rate limit wait: %w", err)
	}

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+endpoint, bytes.NewBufferString(query))
	if err != nil {
		return fmt.Errorf("igdb: build request: %w", err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("igdb: request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("igdb: read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: truncate(body, 200)}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("igdb: decode response: %w", err)
	}

	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
