package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/vofo/internal/models"
)

// chartsKey cannot collide with a search key because queries are trimmed.
const chartsKey = "\x00charts"

type cacheEntry struct {
	tracks  []models.Track
	expires time.Time
}

// Cached wraps a [Catalog] with a bounded TTL cache keyed by lowercased
// query. The cache is injected explicitly rather than living in package
// state, and a mutex guards it against concurrent requests.
type Cached struct {
	inner   Catalog
	ttl     time.Duration
	maxSize int

	mu      sync.Mutex
	entries map[string]cacheEntry
	order   []string // insertion order, oldest first
}

// NewCached wraps the given catalog with a cache of at most maxSize entries,
// each valid for ttl.
func NewCached(inner Catalog, maxSize int, ttl time.Duration) *Cached {
	if maxSize <= 0 {
		maxSize = 128
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Cached{
		inner:   inner,
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]cacheEntry),
	}
}

// Name returns the wrapped provider's name.
func (c *Cached) Name() string {
	return c.inner.Name()
}

// Search returns cached results for the query when fresh, delegating to the
// wrapped provider otherwise. Empty result lists are not cached so a
// transient upstream failure does not pin an empty answer for the TTL.
func (c *Cached) Search(ctx context.Context, query string) ([]models.Track, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	if tracks, ok := c.get(key); ok {
		return tracks, nil
	}

	tracks, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(tracks) > 0 {
		c.put(key, tracks)
	}

	return tracks, nil
}

// Charts returns the cached chart when fresh, delegating otherwise.
func (c *Cached) Charts(ctx context.Context) ([]models.Track, error) {
	if tracks, ok := c.get(chartsKey); ok {
		return tracks, nil
	}

	tracks, err := c.inner.Charts(ctx)
	if err != nil {
		return nil, err
	}

	if len(tracks) > 0 {
		c.put(chartsKey, tracks)
	}

	return tracks, nil
}

func (c *Cached) get(key string) ([]models.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}

	return entry.tracks, true
}

func (c *Cached) put(key string, tracks []models.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		for len(c.order) >= c.maxSize {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = cacheEntry{
		tracks:  tracks,
		expires: time.Now().Add(c.ttl),
	}
}
