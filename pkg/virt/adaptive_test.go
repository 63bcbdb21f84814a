package virt

import (
	"math"
	"testing"
)

func newAdaptive(cols int, gap float64) *AdaptiveCalculator {
	return NewAdaptiveCalculator(Tunables{}, AdaptiveConfig{
		EstimatedItemExtent: 100,
		Gap:                 gap,
		ColumnsPerRow:       cols,
		Overscan:            6,
	}, nil)
}

func TestAverageRowExtentEmptyCache(t *testing.T) {
	// columnsPerRow=3, empty cache -> estimatedItemExtent + gap.
	c := newAdaptive(3, 16)
	if got := c.AverageRowExtent(); got != 116 {
		t.Errorf("got %v, want 116 (estimate+gap)", got)
	}
}

func TestAverageRowExtentUsesRowMax(t *testing.T) {
	c := newAdaptive(3, 10)
	// Row 0: extents 50, 80, 60 -> max 80. Row 1: 100 -> max 100.
	c.RecordExtent(0, 50)
	c.RecordExtent(1, 80)
	c.RecordExtent(2, 60)
	c.RecordExtent(3, 100)
	// ((80+10) + (100+10)) / 2 = 100
	if got := c.AverageRowExtent(); math.Abs(got-100) > 1e-9 {
		t.Errorf("got %v, want 100", got)
	}
}

func TestAdaptiveComputeBasic(t *testing.T) {
	c := newAdaptive(3, 0)
	// Empty cache: avg = 100. offset 1000 -> startRow 10.
	// visibleRows = ceil(500/100)+2 = 7.
	r, err := c.Compute(1000, 500, 10000)
	if err != nil {
		t.Fatal(err)
	}
	// start = 10*3 - 6 = 24, end = (10+7)*3 + 6 = 57.
	if r.Start != 24 || r.End != 57 {
		t.Errorf("got {%d,%d}, want {24,57}", r.Start, r.End)
	}
}

func TestAdaptiveInvariantAcrossOffsets(t *testing.T) {
	c := newAdaptive(4, 8)
	for i := 0; i < 300; i++ {
		c.RecordExtent(i, float64(40+i%60))
	}
	const total = 7777
	for off := 0.0; off < 300000; off += 511 {
		r, err := c.Compute(off, 600, total)
		if err != nil {
			t.Fatalf("offset %v: %v", off, err)
		}
		if r.Start < 0 || r.End < r.Start || r.End > total {
			t.Fatalf("offset %v: invalid range {%d,%d}", off, r.Start, r.End)
		}
	}
}

func TestAdaptiveIdempotent(t *testing.T) {
	c := newAdaptive(3, 12)
	c.RecordExtent(0, 90)
	c.RecordExtent(1, 110)
	r1, err1 := c.Compute(2500, 500, 5000)
	r2, err2 := c.Compute(2500, 500, 5000)
	if err1 != nil || err2 != nil {
		t.Fatal(err1, err2)
	}
	if r1 != r2 {
		t.Errorf("identical inputs produced %v then %v", r1, r2)
	}
}

func TestAdaptiveConvergesWithMeasurements(t *testing.T) {
	c := newAdaptive(2, 0)
	// Estimate is 100 but real items are 50 tall: once measured, twice as
	// many rows fit, so the computed window must grow.
	before, _ := c.Compute(0, 400, 10000)
	for i := 0; i < 40; i++ {
		c.RecordExtent(i, 50)
	}
	after, _ := c.Compute(0, 400, 10000)
	if after.Len() <= before.Len() {
		t.Errorf("window did not grow after measuring shorter items: before %d, after %d", before.Len(), after.Len())
	}
}

func TestAdaptiveScrollPastEnd(t *testing.T) {
	c := newAdaptive(3, 0)
	r, err := c.Compute(1e9, 500, 90)
	if err != nil {
		t.Fatal(err)
	}
	if r.Start != 90 || r.End != 90 {
		t.Errorf("got {%d,%d}, want {90,90}", r.Start, r.End)
	}
}

func TestAdaptiveEmptyDataset(t *testing.T) {
	c := newAdaptive(3, 0)
	r, err := c.Compute(0, 500, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r != (VisibleRange{}) {
		t.Errorf("got %v, want zero range", r)
	}
}

func TestAdaptiveSanitizesConfig(t *testing.T) {
	c := NewAdaptiveCalculator(Tunables{}, AdaptiveConfig{
		EstimatedItemExtent: -10,
		Gap:                 -4,
		ColumnsPerRow:       0,
		Overscan:            -1,
	}, nil)
	if got := c.AverageRowExtent(); got != DefaultTunables().DefaultItemExtent {
		t.Errorf("got %v, want default extent for sanitized config", got)
	}
	if _, err := c.Compute(0, 400, 100); err != nil {
		t.Fatalf("sanitized config must still compute: %v", err)
	}
}
