package virt

import "testing"

// Range computation runs on every accepted scroll frame, so it has to stay
// allocation-free and flat regardless of dataset size.

func BenchmarkFixedCompute(b *testing.B) {
	c := NewFixedCalculator(Tunables{})
	in := FixedInput{
		ScrollOffset:    123456,
		ContainerExtent: 800,
		ItemExtent:      32,
		Overscan:        5,
		Total:           250_000,
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compute(in); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAdaptiveCompute(b *testing.B) {
	c := NewAdaptiveCalculator(Tunables{}, AdaptiveConfig{
		EstimatedItemExtent: 120,
		Gap:                 8,
		ColumnsPerRow:       4,
		Overscan:            6,
	}, nil)
	for i := 0; i < 1000; i++ {
		c.RecordExtent(i, float64(60+i%90))
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compute(54321, 800, 250_000); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHeightCacheSet(b *testing.B) {
	c := NewHeightCache(1000, 500)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Set(i, float64(i%97+1))
	}
}
