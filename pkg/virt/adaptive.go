package virt

import "math"

// AdaptiveConfig holds the layout parameters for variable-extent windowing
// (card mode). ColumnsPerRow comes from the grid layout solver; the rest
// from host configuration.
type AdaptiveConfig struct {
	EstimatedItemExtent float64
	Gap                 float64
	ColumnsPerRow       int
	Overscan            int
}

// AdaptiveCalculator computes visible ranges for items whose extent is
// variable and a-priori unknown. It estimates an average row extent from
// previously measured items in a HeightCache; the estimate converges as
// measurements are written back after each paint. Immediately after a jump
// scroll or large resize the range may be imprecise -- that is a deliberate
// accuracy/cost trade-off, bounded by overscan and corrected iteratively.
type AdaptiveCalculator struct {
	tun   Tunables
	cfg   AdaptiveConfig
	cache *HeightCache
}

// NewAdaptiveCalculator creates a calculator backed by cache. A nil cache
// gets a fresh one with default bounds.
func NewAdaptiveCalculator(tun Tunables, cfg AdaptiveConfig, cache *HeightCache) *AdaptiveCalculator {
	tun = tun.Normalized()
	if cache == nil {
		cache = NewHeightCache(tun.CacheMaxEntries, tun.CacheEvictBatch)
	}
	return &AdaptiveCalculator{tun: tun, cfg: sanitizeAdaptive(cfg, tun), cache: cache}
}

// SetConfig replaces the layout parameters. Invalid fields are replaced by
// safe values; the cache is kept (measurements survive a column-count
// change only in the sense that per-item extents are still valid).
func (c *AdaptiveCalculator) SetConfig(cfg AdaptiveConfig) {
	c.cfg = sanitizeAdaptive(cfg, c.tun)
}

// Cache exposes the backing HeightCache for post-paint writeback.
func (c *AdaptiveCalculator) Cache() *HeightCache {
	return c.cache
}

// RecordExtent writes a measured item extent into the cache. Called after
// paint for each newly visible item.
func (c *AdaptiveCalculator) RecordExtent(index int, extent float64) {
	c.cache.Set(index, extent)
}

// AverageRowExtent estimates the extent of one grid row. Cached per-item
// extents are grouped into rows of ColumnsPerRow items; each row contributes
// its maximum extent plus the gap, and the result is the mean across cached
// rows. With no measurements at all, it falls back to the configured
// estimate plus gap.
func (c *AdaptiveCalculator) AverageRowExtent() float64 {
	cols := c.cfg.ColumnsPerRow
	rowMax := make(map[int]float64)
	c.cache.Each(func(index int, extent float64) {
		row := index / cols
		if extent > rowMax[row] {
			rowMax[row] = extent
		}
	})
	if len(rowMax) == 0 {
		return c.cfg.EstimatedItemExtent + c.cfg.Gap
	}
	var sum float64
	for _, m := range rowMax {
		sum += m + c.cfg.Gap
	}
	return sum / float64(len(rowMax))
}

// Compute returns the half-open item range to materialize for the given
// scroll position. The estimated visible row count carries a two-row safety
// margin to absorb estimation error.
func (c *AdaptiveCalculator) Compute(scrollOffset, containerExtent float64, total int) (VisibleRange, error) {
	if total <= 0 {
		return VisibleRange{}, nil
	}
	if containerExtent <= 0 || math.IsNaN(containerExtent) || math.IsInf(containerExtent, 0) {
		containerExtent = c.tun.DefaultItemExtent
	}
	if scrollOffset < 0 || math.IsNaN(scrollOffset) {
		scrollOffset = 0
	}

	avg := c.AverageRowExtent()
	if avg <= 0 {
		avg = c.tun.DefaultItemExtent
	}

	cols := c.cfg.ColumnsPerRow
	overscan := c.tun.CapOverscan(c.cfg.Overscan, total)

	startRow := int(math.Floor(scrollOffset / avg))
	visibleRows := int(math.Ceil(containerExtent/avg)) + 2

	start := startRow*cols - overscan
	if start < 0 {
		start = 0
	}
	end := (startRow+visibleRows)*cols + overscan
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}

	r := VisibleRange{Start: start, End: end}
	if err := r.validate(total); err != nil {
		return VisibleRange{}, err
	}
	return r, nil
}

// sanitizeAdaptive clamps config fields to usable values.
func sanitizeAdaptive(cfg AdaptiveConfig, tun Tunables) AdaptiveConfig {
	if cfg.EstimatedItemExtent <= 0 || math.IsNaN(cfg.EstimatedItemExtent) || math.IsInf(cfg.EstimatedItemExtent, 0) {
		cfg.EstimatedItemExtent = tun.DefaultItemExtent
	}
	if cfg.Gap < 0 || math.IsNaN(cfg.Gap) || math.IsInf(cfg.Gap, 0) {
		cfg.Gap = 0
	}
	if cfg.ColumnsPerRow < 1 {
		cfg.ColumnsPerRow = 1
	}
	if cfg.Overscan < 0 {
		cfg.Overscan = 0
	}
	return cfg
}
