package virt

import "math"

// FixedInput carries one windowing computation's inputs for uniform-extent
// items (table mode). Extents and offsets share a unit (terminal rows,
// pixels -- the math does not care).
type FixedInput struct {
	ScrollOffset    float64
	ContainerExtent float64
	ItemExtent      float64
	Overscan        int
	Total           int
}

// FixedCalculator computes visible ranges for datasets whose items all have
// the same extent. It is stateless apart from its tunables; identical inputs
// always yield identical ranges.
type FixedCalculator struct {
	tun Tunables
}

// NewFixedCalculator returns a calculator using the given tunables
// (normalized, so a zero value works).
func NewFixedCalculator(tun Tunables) *FixedCalculator {
	return &FixedCalculator{tun: tun.Normalized()}
}

// Compute returns the half-open item range to materialize.
//
// Malformed extents (zero/negative item or container extent) fall back to
// DefaultItemExtent rather than failing: data-driven inputs must never
// error. The returned error fires only if the computed range breaks the
// range invariant, which would indicate a defect in this function itself.
func (c *FixedCalculator) Compute(in FixedInput) (VisibleRange, error) {
	total := in.Total
	if total <= 0 {
		return VisibleRange{}, nil
	}

	itemExtent := in.ItemExtent
	if itemExtent <= 0 || math.IsNaN(itemExtent) || math.IsInf(itemExtent, 0) {
		itemExtent = c.tun.DefaultItemExtent
	}
	containerExtent := in.ContainerExtent
	if containerExtent <= 0 || math.IsNaN(containerExtent) || math.IsInf(containerExtent, 0) {
		containerExtent = c.tun.DefaultItemExtent
	}
	offset := in.ScrollOffset
	if offset < 0 || math.IsNaN(offset) {
		offset = 0
	}

	overscan := c.tun.CapOverscan(in.Overscan, total)

	startIndex := int(math.Floor(offset / itemExtent))
	visibleCount := int(math.Ceil(containerExtent / itemExtent))

	start := startIndex - overscan
	if start < 0 {
		start = 0
	}
	end := startIndex + visibleCount + overscan
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}

	// Pre-scroll: bound the first paint regardless of viewport size.
	if offset == 0 {
		if limit, ok := c.initialCap(visibleCount, total); ok && end-start > limit {
			end = start + limit
		}
	}

	r := VisibleRange{Start: start, End: end}
	if err := r.validate(total); err != nil {
		return VisibleRange{}, err
	}
	return r, nil
}

// initialCap returns the first-paint item cap for the dataset tier, or
// ok=false when the dataset is small enough that no cap applies.
func (c *FixedCalculator) initialCap(visibleCount, total int) (int, bool) {
	switch {
	case total >= c.tun.UltraLargeTotal:
		limit := visibleCount + c.tun.InitialSlackUltraLarge
		if limit > c.tun.InitialCapUltraLarge {
			limit = c.tun.InitialCapUltraLarge
		}
		return limit, true
	case total >= c.tun.VeryLargeTotal:
		limit := visibleCount + c.tun.InitialSlackVeryLarge
		if limit > c.tun.InitialCapVeryLarge {
			limit = c.tun.InitialCapVeryLarge
		}
		return limit, true
	}
	return 0, false
}
