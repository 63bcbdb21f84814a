package virt

// HeightCache is a bounded map from item index to the item's last-measured
// extent. Once the cache exceeds its maximum size, the oldest half (by
// insertion order) is evicted in one batch, so the steady-state cost of a
// write stays O(1) amortized.
//
// The cache only feeds the average-extent estimate in AdaptiveCalculator;
// it is never required to be complete or accurate for correctness, only for
// smoothing the windowing math. Eviction follows insertion order, not
// recency: batch-dropping the oldest half is cheaper than LRU bookkeeping
// and the lost precision does not matter for an average.
type HeightCache struct {
	maxEntries int
	evictBatch int

	order []int // insertion order, oldest first
	items map[int]float64
}

// NewHeightCache creates a cache bounded to maxEntries, evicting evictBatch
// oldest entries when the bound is exceeded. Non-positive arguments fall
// back to the defaults (1000 / 500).
func NewHeightCache(maxEntries, evictBatch int) *HeightCache {
	d := DefaultTunables()
	if maxEntries <= 0 {
		maxEntries = d.CacheMaxEntries
	}
	if evictBatch <= 0 {
		evictBatch = d.CacheEvictBatch
	}
	if evictBatch > maxEntries {
		evictBatch = maxEntries
	}
	return &HeightCache{
		maxEntries: maxEntries,
		evictBatch: evictBatch,
		items:      make(map[int]float64),
	}
}

// Set records the measured extent for index. Updating an existing index
// does not change its insertion-order position. Extents must be positive;
// anything else is ignored so a bad measurement cannot poison the average.
func (c *HeightCache) Set(index int, extent float64) {
	if index < 0 || extent <= 0 {
		return
	}
	if _, exists := c.items[index]; exists {
		c.items[index] = extent
		return
	}
	c.items[index] = extent
	c.order = append(c.order, index)
	if len(c.items) > c.maxEntries {
		c.evictOldest()
	}
}

// Get returns the cached extent for index, if any.
func (c *HeightCache) Get(index int) (float64, bool) {
	v, ok := c.items[index]
	return v, ok
}

// Len returns the number of cached entries.
func (c *HeightCache) Len() int {
	return len(c.items)
}

// Reset discards all entries. Called on dataset replacement and on
// container resize, when every cached measurement goes stale at once.
func (c *HeightCache) Reset() {
	c.order = c.order[:0]
	c.items = make(map[int]float64)
}

// Each calls fn for every cached entry in insertion order.
func (c *HeightCache) Each(fn func(index int, extent float64)) {
	for _, idx := range c.order {
		if v, ok := c.items[idx]; ok {
			fn(idx, v)
		}
	}
}

// evictOldest drops the oldest evictBatch entries in one pass.
func (c *HeightCache) evictOldest() {
	n := c.evictBatch
	if n > len(c.order) {
		n = len(c.order)
	}
	for _, idx := range c.order[:n] {
		delete(c.items, idx)
	}
	c.order = append(c.order[:0], c.order[n:]...)
}
