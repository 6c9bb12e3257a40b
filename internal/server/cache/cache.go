// Package cache keeps generated workbooks in memory so a finished run can be
// downloaded without querying the catalog again. It uses patrickmn/go-cache
// for TTL-based expiry.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// latestKey always points at the newest artifact.
const latestKey = "artifact:latest"

// Artifact is a rendered workbook ready to be streamed.
type Artifact struct {
	RunID       string
	Name        string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// Cache wraps go-cache with artifact-aware helpers.
type Cache struct {
	store *gocache.Cache
}

// New creates a new cache with the given TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores a value in the cache with default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache, expired ones included
// until the next cleanup.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// PutArtifact stores a under its run id and as the latest artifact.
func (c *Cache) PutArtifact(a *Artifact) {
	c.store.Set(artifactKey(a.RunID), a, gocache.DefaultExpiration)
	c.store.Set(latestKey, a, gocache.DefaultExpiration)
}

// Artifact returns the artifact generated for runID.
func (c *Cache) Artifact(runID string) (*Artifact, bool) {
	return c.artifact(artifactKey(runID))
}

// Latest returns the most recently stored artifact.
func (c *Cache) Latest() (*Artifact, bool) {
	return c.artifact(latestKey)
}

func (c *Cache) artifact(key string) (*Artifact, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	a, ok := v.(*Artifact)
	return a, ok
}

func artifactKey(runID string) string {
	return "artifact:run:" + runID
}

// Stats returns cache statistics.
type Stats struct {
	ItemCount int `json:"itemCount"`
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		ItemCount: c.store.ItemCount(),
	}
}
