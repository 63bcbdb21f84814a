package grid

import "math"

// Options are the host-tunable numeric knobs. All values are positive;
// Configure rejects anything else per field, keeping the previous value.
type Options struct {
	// FixedItemExtent is the uniform row height used in table mode.
	FixedItemExtent float64
	// EstimatedItemExtent seeds the adaptive calculator before any card
	// has been measured.
	EstimatedItemExtent float64
	// Overscan is the number of extra items rendered beyond each edge of
	// the strictly visible range.
	Overscan int
	// MinItemWidth is the narrowest acceptable card width.
	MinItemWidth int
	// Gap is the spacing between cards, both axes.
	Gap int
}

// DefaultOptions returns the stock knob values.
func DefaultOptions() Options {
	return Options{
		FixedItemExtent:     1,
		EstimatedItemExtent: 6,
		Overscan:            4,
		MinItemWidth:        24,
		Gap:                 1,
	}
}

// sanitized fills non-positive fields from the defaults, for construction
// time where there is no previous value to keep.
func (o Options) sanitized() Options {
	def := DefaultOptions()
	if !positive(o.FixedItemExtent) {
		o.FixedItemExtent = def.FixedItemExtent
	}
	if !positive(o.EstimatedItemExtent) {
		o.EstimatedItemExtent = def.EstimatedItemExtent
	}
	if o.Overscan <= 0 {
		o.Overscan = def.Overscan
	}
	if o.MinItemWidth <= 0 {
		o.MinItemWidth = def.MinItemWidth
	}
	if o.Gap <= 0 {
		o.Gap = def.Gap
	}
	return o
}

// Configure applies the positive fields of opts and silently ignores the
// rest. Rejection is per field: one bad knob never blocks a good one, and
// a rejected knob keeps its previous value. Changes take effect on the
// next compute cycle; no recompute is forced here.
func (g *Grid) Configure(opts Options) {
	g.mu.Lock()
	defer g.mu.Unlock()

	changedAdaptive := false
	if positive(opts.FixedItemExtent) {
		g.opts.FixedItemExtent = opts.FixedItemExtent
	}
	if positive(opts.EstimatedItemExtent) {
		g.opts.EstimatedItemExtent = opts.EstimatedItemExtent
		changedAdaptive = true
	}
	if opts.Overscan > 0 {
		g.opts.Overscan = opts.Overscan
		changedAdaptive = true
	}
	if opts.MinItemWidth > 0 {
		g.opts.MinItemWidth = opts.MinItemWidth
		g.solver.Invalidate()
	}
	if opts.Gap > 0 {
		g.opts.Gap = opts.Gap
		g.solver.Invalidate()
		changedAdaptive = true
	}

	if changedAdaptive {
		g.adaptive.SetConfig(adaptiveConfigOf(g.opts, g.gridLay.ColumnsPerRow))
	}
}

// Options returns a copy of the current knobs.
func (g *Grid) Options() Options {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opts
}

func positive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
