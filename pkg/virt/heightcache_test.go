package virt

import "testing"

func TestHeightCacheSetGet(t *testing.T) {
	c := NewHeightCache(0, 0)
	c.Set(3, 42.5)
	got, ok := c.Get(3)
	if !ok {
		t.Fatal("expected index 3 to be cached")
	}
	if got != 42.5 {
		t.Errorf("got %v, want 42.5", got)
	}
	if _, ok := c.Get(4); ok {
		t.Error("index 4 should not be cached")
	}
}

func TestHeightCacheRejectsBadValues(t *testing.T) {
	c := NewHeightCache(0, 0)
	c.Set(-1, 10)
	c.Set(0, 0)
	c.Set(1, -5)
	if c.Len() != 0 {
		t.Errorf("bad writes accepted: len=%d, want 0", c.Len())
	}
}

func TestHeightCacheUpdateKeepsOrder(t *testing.T) {
	c := NewHeightCache(3, 1)
	c.Set(0, 10)
	c.Set(1, 20)
	c.Set(2, 30)
	c.Set(0, 11) // update, not re-insert
	c.Set(3, 40) // forces eviction of oldest (index 0)
	if _, ok := c.Get(0); ok {
		t.Error("index 0 should have been evicted as the oldest entry")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("index 1 should survive")
	}
}

func TestHeightCacheBound(t *testing.T) {
	c := NewHeightCache(1000, 500)
	for i := 0; i < 5000; i++ {
		c.Set(i, float64(i%37+1))
		if c.Len() > 1000 {
			t.Fatalf("cache exceeded bound after %d insertions: len=%d", i+1, c.Len())
		}
	}
	// Exceeding 1000 drops the oldest 500 as a batch.
	if c.Len() < 500 {
		t.Errorf("cache unexpectedly small: len=%d", c.Len())
	}
}

func TestHeightCacheEvictsOldestBatch(t *testing.T) {
	c := NewHeightCache(1000, 500)
	for i := 0; i <= 1000; i++ {
		c.Set(i, 1)
	}
	// 1001 insertions: oldest 500 (indices 0..499) evicted.
	if c.Len() != 501 {
		t.Fatalf("len=%d, want 501", c.Len())
	}
	if _, ok := c.Get(499); ok {
		t.Error("index 499 should be evicted")
	}
	if _, ok := c.Get(500); !ok {
		t.Error("index 500 should survive")
	}
}

func TestHeightCacheReset(t *testing.T) {
	c := NewHeightCache(0, 0)
	for i := 0; i < 10; i++ {
		c.Set(i, 5)
	}
	c.Reset()
	if c.Len() != 0 {
		t.Errorf("len=%d after Reset, want 0", c.Len())
	}
	c.Set(1, 7)
	if c.Len() != 1 {
		t.Errorf("cache unusable after Reset: len=%d", c.Len())
	}
}

func TestHeightCacheEachInsertionOrder(t *testing.T) {
	c := NewHeightCache(0, 0)
	c.Set(5, 1)
	c.Set(2, 2)
	c.Set(9, 3)
	var got []int
	c.Each(func(index int, _ float64) {
		got = append(got, index)
	})
	want := []int{5, 2, 9}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d]=%d, want %d", i, got[i], want[i])
		}
	}
}
