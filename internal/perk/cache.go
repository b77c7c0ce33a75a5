package perk

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is the current version of the cached payload layout.
// Increment this when the parsed structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// cachedPayload wraps a parsed artifact payload with the raw text it came from
type cachedPayload struct {
	Version  string
	Raw      string
	Payload  map[string]any
	CachedAt time.Time
}

// payloadCache is an in-memory LRU of parsed artifact payloads keyed by
// artifact id. Artifact data never changes after the draw, so entries only
// leave the cache through eviction or expiry.
type payloadCache struct {
	lru *expirable.LRU[int64, *cachedPayload]
}

// newPayloadCache creates a cache holding at most size payloads for ttl
func newPayloadCache(size int, ttl time.Duration) *payloadCache {
	return &payloadCache{
		lru: expirable.NewLRU[int64, *cachedPayload](size, nil, ttl),
	}
}

// Get returns the payload parsed from raw for artifactID.
// Entries with a different raw text or schema version are dropped.
func (c *payloadCache) Get(artifactID int64, raw string) (map[string]any, bool) {
	entry, found := c.lru.Get(artifactID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion || entry.Raw != raw {
		c.lru.Remove(artifactID)
		return nil, false
	}

	return entry.Payload, true
}

// Set stores a parsed payload
func (c *payloadCache) Set(artifactID int64, raw string, payload map[string]any) {
	c.lru.Add(artifactID, &cachedPayload{
		Version:  CacheSchemaVersion,
		Raw:      raw,
		Payload:  payload,
		CachedAt: time.Now(),
	})
}

// Len reports the number of cached payloads
func (c *payloadCache) Len() int {
	return c.lru.Len()
}

// Clear removes all entries from the cache
func (c *payloadCache) Clear() {
	c.lru.Purge()
}
