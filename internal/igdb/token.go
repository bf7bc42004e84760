package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// tokenSafetyMargin is subtracted from the advertised expiry so a token is
// never handed out moments before it dies mid-request.
const tokenSafetyMargin = 60 * time.Second

// TokenSource obtains and caches a Twitch client-credentials bearer token.
// One instance is shared by all callers in-process; the mutex makes
// concurrent refreshes serialize instead of racing the OAuth endpoint.
type TokenSource struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	now func() time.Time // injectable for tests
}

// NewTokenSource creates a token source for the Twitch OAuth endpoint.
func NewTokenSource(clientID, clientSecret, tokenURL string) *TokenSource {
	return &TokenSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		now:          time.Now,
	}
}

// AccessToken returns a valid bearer token, fetching a fresh one when the
// cached token is absent or within the safety margin of expiry.
func (t *TokenSource) AccessToken(ctx context.Context) (string, error) {
	if t.clientID == "" || t.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && t.now().Before(t.expiresAt.Add(-tokenSafetyMargin)) {
		return t.token, nil
	}

	return t.refresh(ctx)
}

// Clear drops the cached token unconditionally. Callers may use it after
// repeated authorization failures to force a fresh fetch.
func (t *TokenSource) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = ""
	t.expiresAt = time.Time{}
}

// refresh fetches a new client-credentials token. Caller holds the mutex.
func (t *TokenSource) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("client_id", t.clientID)
	form.Set("client_secret", t.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("igdb: token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("igdb: token fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("igdb: token read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("igdb: token decode: %w", err)
	}

	t.token = result.AccessToken
	t.expiresAt = t.now().Add(time.Duration(result.ExpiresIn) * time.Second)

	return t.token, nil
}
