// Package httpcache provides an in-memory TTL cache with ETag support for
// rendered API responses. It sits in front of the persistent game cache so
// repeat page loads are served without touching Postgres.
package httpcache

import (
	"crypto/md5"
	"fmt"
	"sync"
	"time"
)

// Response TTLs per endpoint family. Short by design — the persistent cache
// behind these handles the long windows.
const (
	TTLSearch      = 10 * time.Minute
	TTLGameDetails = 1 * time.Hour
	TTLTrending    = 1 * time.Hour
	TTLNewReleases = 30 * time.Minute
	TTLSeries      = 1 * time.Hour
)

type record struct {
	data      []byte
	etag      string
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache.
type Cache struct {
	mu      sync.RWMutex
	records map[string]record
	enabled bool
}

// New creates a new cache. Pass enabled=false to create a no-op cache.
func New(enabled bool) *Cache {
	c := &Cache{
		records: make(map[string]record),
		enabled: enabled,
	}
	if enabled {
		go c.evictLoop()
	}
	return c
}

// Get retrieves a cached response. Returns data, etag, and whether found.
func (c *Cache) Get(key string) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, exists := c.records[key]
	if !exists || time.Now().After(rec.expiresAt) {
		return nil, "", false
	}
	return rec.data, rec.etag, true
}

// Set stores a response with a TTL and returns its ETag.
func (c *Cache) Set(key string, data []byte, ttl time.Duration) string {
	etag := ComputeETag(data)
	if !c.enabled {
		return etag
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[key] = record{
		data:      data,
		etag:      etag,
		expiresAt: time.Now().Add(ttl),
	}
	return etag
}

// Stats returns cache statistics for the health endpoint.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := 0
	now := time.Now()
	for _, rec := range c.records {
		if now.Before(rec.expiresAt) {
			active++
		}
	}
	return map[string]interface{}{
		"enabled":      c.enabled,
		"total_keys":   len(c.records),
		"active_keys":  active,
		"expired_keys": len(c.records) - active,
	}
}

// evictLoop periodically removes expired records.
func (c *Cache) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.evict()
	}
}

func (c *Cache) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for key, rec := range c.records {
		if now.After(rec.expiresAt) {
			delete(c.records, key)
		}
	}
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// ETagMatch checks whether an If-None-Match header matches the current ETag.
func ETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	return ifNoneMatch == etag
}
