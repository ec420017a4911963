package rating

import (
	"time"
)

// DefaultTTL is how long a resolved rating stays fresh. Ratings move slowly
// during a season; a week keeps repeat runs cheap without going stale.
const DefaultTTL = 7 * 24 * time.Hour

// Cache stores resolved ratings by normalized identity with a TTL. It is
// serialized into the per-site snapshot so repeated runs skip lookups for
// players resolved recently.
type Cache struct {
	Entries  map[string]Entry     `json:"entries"`
	CachedAt map[string]time.Time `json:"cached_at"`
	TTL      time.Duration        `json:"-"` // restored after load
}

// NewCache creates an empty cache with the default TTL.
func NewCache() *Cache {
	return &Cache{
		Entries:  make(map[string]Entry),
		CachedAt: make(map[string]time.Time),
		TTL:      DefaultTTL,
	}
}

// Get returns the cached entry for a normalized identity, or false when the
// identity is missing or its entry has expired. Expired entries are evicted.
func (c *Cache) Get(normName string) (Entry, bool) {
	entry, exists := c.Entries[normName]
	if !exists {
		return Entry{}, false
	}

	cachedTime, hasTime := c.CachedAt[normName]
	if !hasTime || time.Since(cachedTime) > c.TTL {
		delete(c.Entries, normName)
		delete(c.CachedAt, normName)
		return Entry{}, false
	}

	return entry, true
}

// Set stores an entry for a normalized identity.
func (c *Cache) Set(normName string, entry Entry) {
	c.Entries[normName] = entry
	c.CachedAt[normName] = time.Now()
}

// CleanExpired removes expired entries and returns how many were evicted.
func (c *Cache) CleanExpired() int {
	removed := 0
	for key, cachedTime := range c.CachedAt {
		if time.Since(cachedTime) > c.TTL {
			delete(c.Entries, key)
			delete(c.CachedAt, key)
			removed++
		}
	}
	return removed
}
