package virt

import "fmt"

// VisibleRange is a half-open interval [Start, End) of item indices that
// must be materialized into render output. A valid range always satisfies
// 0 <= Start <= End <= total.
type VisibleRange struct {
	Start int
	End   int
}

// Len returns the number of items covered by the range.
func (r VisibleRange) Len() int {
	return r.End - r.Start
}

// Contains reports whether item index i falls inside the range.
func (r VisibleRange) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// validate checks the range invariant against total. A violation indicates
// a logic defect in the calculator, not bad input, so it is surfaced as an
// error rather than clamped away.
func (r VisibleRange) validate(total int) error {
	if r.Start < 0 || r.End < r.Start || r.End > total {
		return fmt.Errorf("virt: computed range {%d,%d} violates invariant for total %d", r.Start, r.End, total)
	}
	return nil
}

// ViewportMetrics is a read-only snapshot of the scroll container taken
// once per scheduling cycle. It is recomputed every cycle and discarded.
type ViewportMetrics struct {
	ContainerHeight float64
	ContainerWidth  float64
	ScrollOffset    float64
}
