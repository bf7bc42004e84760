package httpcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := New(true)

	etag := c.Set("games:search:portal", []byte(`{"results":[]}`), time.Minute)
	assert.NotEmpty(t, etag)

	data, gotETag, ok := c.Get("games:search:portal")
	require.True(t, ok)
	assert.Equal(t, `{"results":[]}`, string(data))
	assert.Equal(t, etag, gotETag)
}

func TestGetExpired(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDisabledCache(t *testing.T) {
	c := New(false)

	// Set still returns a usable ETag so handlers can set headers either way.
	etag := c.Set("k", []byte("v"), time.Minute)
	assert.Equal(t, ComputeETag([]byte("v")), etag)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestEvictRemovesExpired(t *testing.T) {
	c := New(true)
	c.Set("dead", []byte("1"), -time.Second)
	c.Set("live", []byte("2"), time.Minute)

	c.evict()

	c.mu.RLock()
	defer c.mu.RUnlock()
	_, deadExists := c.records["dead"]
	_, liveExists := c.records["live"]
	assert.False(t, deadExists)
	assert.True(t, liveExists)
}

func TestStats(t *testing.T) {
	c := New(true)
	c.Set("live", []byte("1"), time.Minute)
	c.Set("dead", []byte("2"), -time.Second)

	stats := c.Stats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 2, stats["total_keys"])
	assert.Equal(t, 1, stats["active_keys"])
	assert.Equal(t, 1, stats["expired_keys"])
}

func TestComputeETagStable(t *testing.T) {
	a := ComputeETag([]byte("payload"))
	b := ComputeETag([]byte("payload"))
	other := ComputeETag([]byte("different"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Regexp(t, `^W/"[0-9a-f]{16}"$`, a)
}

func TestETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("payload"))

	assert.True(t, ETagMatch(etag, etag))
	assert.True(t, ETagMatch("*", etag))
	assert.False(t, ETagMatch("", etag))
	assert.False(t, ETagMatch(`W/"0000000000000000"`, etag))
}
