package virt

import "testing"

func mustCompute(t *testing.T, c *FixedCalculator, in FixedInput) VisibleRange {
	t.Helper()
	r, err := c.Compute(in)
	if err != nil {
		t.Fatalf("Compute(%+v): %v", in, err)
	}
	return r
}

func TestFixedBasicWindow(t *testing.T) {
	c := NewFixedCalculator(Tunables{})
	r := mustCompute(t, c, FixedInput{
		ScrollOffset:    400,
		ContainerExtent: 400,
		ItemExtent:      40,
		Overscan:        5,
		Total:           1000,
	})
	// startIndex=10, visible=10: {10-5, 10+10+5} = {5, 25}
	if r.Start != 5 || r.End != 25 {
		t.Errorf("got {%d,%d}, want {5,25}", r.Start, r.End)
	}
}

func TestFixedRangeInvariantAcrossOffsets(t *testing.T) {
	c := NewFixedCalculator(Tunables{})
	const total = 12345
	maxScroll := float64(total)*40 - 400
	for off := 0.0; off <= maxScroll; off += 997 {
		r := mustCompute(t, c, FixedInput{
			ScrollOffset:    off,
			ContainerExtent: 400,
			ItemExtent:      40,
			Overscan:        5,
			Total:           total,
		})
		if r.Start < 0 || r.End < r.Start || r.End > total {
			t.Fatalf("offset %v: invalid range {%d,%d}", off, r.Start, r.End)
		}
	}
}

func TestFixedViewportCoverage(t *testing.T) {
	c := NewFixedCalculator(Tunables{})
	const total = 1000
	capacity := 10 // ceil(400/40)
	for off := 40.0; off < 30000; off += 333 {
		r := mustCompute(t, c, FixedInput{
			ScrollOffset:    off,
			ContainerExtent: 400,
			ItemExtent:      40,
			Overscan:        3,
			Total:           total,
		})
		want := capacity
		if total < want {
			want = total
		}
		// Near the dataset end the window shrinks naturally.
		remaining := total - int(off/40)
		if remaining < want {
			want = remaining
		}
		if r.Len() < want {
			t.Fatalf("offset %v: window %d smaller than viewport capacity %d", off, r.Len(), want)
		}
	}
}

func TestFixedIdempotent(t *testing.T) {
	c := NewFixedCalculator(Tunables{})
	in := FixedInput{ScrollOffset: 1234, ContainerExtent: 400, ItemExtent: 30, Overscan: 4, Total: 5000}
	r1 := mustCompute(t, c, in)
	r2 := mustCompute(t, c, in)
	if r1 != r2 {
		t.Errorf("identical inputs produced %v then %v", r1, r2)
	}
}

func TestFixedMonotonic(t *testing.T) {
	c := NewFixedCalculator(Tunables{})
	prevStart := -1 << 30
	const overscan = 5
	for off := 0.0; off < 100000; off += 77 {
		r := mustCompute(t, c, FixedInput{
			ScrollOffset:    off,
			ContainerExtent: 400,
			ItemExtent:      40,
			Overscan:        overscan,
			Total:           10000,
		})
		if r.Start < prevStart-overscan {
			t.Fatalf("offset %v: start %d regressed past %d-overscan", off, r.Start, prevStart)
		}
		prevStart = r.Start
	}
}

func TestFixedUltraLargeInitialCap(t *testing.T) {
	// Scenario: total=100000, itemExtent=30, overscan=2, containerExtent=400
	// -> initial range {0,15} via the ultra-large-dataset cap.
	c := NewFixedCalculator(Tunables{})
	r := mustCompute(t, c, FixedInput{
		ScrollOffset:    0,
		ContainerExtent: 400,
		ItemExtent:      30,
		Overscan:        2,
		Total:           100000,
	})
	if r.Start != 0 || r.End != 15 {
		t.Errorf("got {%d,%d}, want {0,15}", r.Start, r.End)
	}
}

func TestFixedVeryLargeInitialCap(t *testing.T) {
	c := NewFixedCalculator(Tunables{})
	r := mustCompute(t, c, FixedInput{
		ScrollOffset:    0,
		ContainerExtent: 2000, // visible=50, well above the cap
		ItemExtent:      40,
		Overscan:        5,
		Total:           60000,
	})
	if r.Start != 0 || r.End != 25 {
		t.Errorf("got {%d,%d}, want {0,25} (very-large initial cap)", r.Start, r.End)
	}
}

func TestFixedOverscanCappedForLargeDatasets(t *testing.T) {
	c := NewFixedCalculator(Tunables{})
	r := mustCompute(t, c, FixedInput{
		ScrollOffset:    30000, // startIndex=1000, past the initial-cap branch
		ContainerExtent: 300,
		ItemExtent:      30,
		Overscan:        10,
		Total:           200000,
	})
	// visible=10, overscan capped to 2: {998, 1012}
	if r.Start != 998 || r.End != 1012 {
		t.Errorf("got {%d,%d}, want {998,1012}", r.Start, r.End)
	}
}

func TestFixedMalformedExtentFallsBack(t *testing.T) {
	c := NewFixedCalculator(Tunables{})
	for _, extent := range []float64{0, -5} {
		r, err := c.Compute(FixedInput{
			ScrollOffset:    0,
			ContainerExtent: 400,
			ItemExtent:      extent,
			Overscan:        2,
			Total:           100,
		})
		if err != nil {
			t.Fatalf("extent %v: unexpected error %v", extent, err)
		}
		if r.Len() == 0 {
			t.Errorf("extent %v: empty range, fallback extent not applied", extent)
		}
	}
}

func TestFixedEmptyDataset(t *testing.T) {
	c := NewFixedCalculator(Tunables{})
	r := mustCompute(t, c, FixedInput{ContainerExtent: 400, ItemExtent: 40, Total: 0})
	if r != (VisibleRange{}) {
		t.Errorf("got %v, want zero range for empty dataset", r)
	}
}

func TestFixedScrollPastEnd(t *testing.T) {
	c := NewFixedCalculator(Tunables{})
	r := mustCompute(t, c, FixedInput{
		ScrollOffset:    1e9,
		ContainerExtent: 400,
		ItemExtent:      40,
		Overscan:        5,
		Total:           100,
	})
	if r.End != 100 || r.Start < 0 || r.Start > r.End {
		t.Errorf("scroll past end: got {%d,%d}", r.Start, r.End)
	}
}
