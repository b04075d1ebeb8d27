package services

import (
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/pwakit/internal/server/models"
)

type cacheEntry struct {
	icons   []models.Icon
	expires time.Time
}

// IconCache memoizes icon lists per src prefix for at most ttl. A ttl of
// zero or less disables caching. Every Invalidate starts a new generation;
// a list built from a ledger read of an older generation is not stored.
type IconCache struct {
	mu      sync.Mutex
	gen     uint64
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func NewIconCache(ttl time.Duration) *IconCache {
	return &IconCache{ttl: ttl, now: time.Now, entries: map[string]cacheEntry{}}
}

// Get returns a copy of the cached icons for prefix, plus the current
// generation to hand back to Set on a miss.
func (c *IconCache) Get(prefix string) ([]models.Icon, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[prefix]
	if !ok {
		return nil, c.gen, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, prefix)
		return nil, c.gen, false
	}
	return slices.Clone(e.icons), c.gen, true
}

// Set stores icons for prefix unless the cache was invalidated after gen
// was handed out.
func (c *IconCache) Set(prefix string, icons []models.Icon, gen uint64) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.entries[prefix] = cacheEntry{icons: slices.Clone(icons), expires: c.now().Add(c.ttl)}
}

// Invalidate drops every prefix and starts a new generation.
func (c *IconCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	clear(c.entries)
}
