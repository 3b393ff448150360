package glyphing

import (
	lru "github.com/hashicorp/golang-lru/simplelru"
	"github.com/npillmayer/htmlpix/core"
)

// LayoutCache is a bounded cache for shaped runs. Text is the key, matched
// byte for byte. When the cache is full, inserting a new run evicts the
// least recently used one.
//
// A LayoutCache belongs to a single font at a single size. It is not safe for
// concurrent use.
type LayoutCache struct {
	lru     *lru.LRU
	stats   CacheStats
	purging bool
}

// CacheStats holds counters of cache operations.
type CacheStats struct {
	Hits      int
	Misses    int
	Evictions int
}

// NewLayoutCache creates a cache holding up to capacity runs.
// A non-positive capacity results in an error with code core.EINVALID.
func NewLayoutCache(capacity int) (*LayoutCache, error) {
	if capacity <= 0 {
		return nil, core.Error(core.EINVALID, "layout cache capacity must be positive, is %d", capacity)
	}
	c := &LayoutCache{}
	var err error
	c.lru, err = lru.NewLRU(capacity, func(key, value interface{}) {
		if !c.purging {
			c.stats.Evictions++
			tracer().Debugf("layout cache evicts %q", key)
		}
	})
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot create layout cache")
	}
	return c, nil
}

// GetOrShape returns the cached layout for text, marking it as most recently
// used. If text is not in the cache, shape is called to produce the layout,
// which then is inserted into the cache.
func (c *LayoutCache) GetOrShape(text string, shape func(string) Layout) Layout {
	if l, ok := c.lru.Get(text); ok {
		c.stats.Hits++
		return l.(Layout)
	}
	c.stats.Misses++
	l := shape(text)
	c.lru.Add(text, l)
	return l
}

// Len returns the number of runs in the cache.
func (c *LayoutCache) Len() int {
	return c.lru.Len()
}

// Contains checks if text is in the cache, without updating its recency.
func (c *LayoutCache) Contains(text string) bool {
	return c.lru.Contains(text)
}

// Keys returns the cached texts, from oldest to newest.
func (c *LayoutCache) Keys() []string {
	keys := c.lru.Keys()
	texts := make([]string, len(keys))
	for i, k := range keys {
		texts[i] = k.(string)
	}
	return texts
}

// Purge clears the cache. Purged entries are not counted as evictions.
func (c *LayoutCache) Purge() {
	c.purging = true
	c.lru.Purge()
	c.purging = false
}

// Stats returns the counters of cache operations.
func (c *LayoutCache) Stats() CacheStats {
	return c.stats
}
