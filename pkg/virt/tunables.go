// Package virt implements viewport virtualization (windowing) for the
// gridline data-grid widget: deciding which contiguous slice of a large
// ordered dataset must be materialized as the user scrolls or the container
// resizes, while keeping per-cycle work bounded and independent of dataset
// size.
//
// Two range calculators are provided:
//   - FixedCalculator for uniform-extent items (table mode)
//   - AdaptiveCalculator for variable-extent items (card mode), which
//     estimates an average row extent from a bounded HeightCache
//
// All size thresholds are empirical and carried in Tunables so hosts can
// override them; none of them are load-bearing for correctness.
package virt

import "time"

// Tunables collects the empirical dataset-size thresholds and fallback
// values used across the virtualization subsystem. The defaults come from
// field experience with datasets up to a few hundred thousand items; they
// are safe to tune.
type Tunables struct {
	// DefaultItemExtent is the fallback extent used when an item or
	// container extent is unknown or malformed (zero/negative).
	DefaultItemExtent float64

	// VeryLargeTotal and UltraLargeTotal are the dataset sizes above which
	// progressively more aggressive capping kicks in.
	VeryLargeTotal  int
	UltraLargeTotal int

	// OverscanCapVeryLarge / OverscanCapUltraLarge limit overscan once the
	// dataset crosses the corresponding total.
	OverscanCapVeryLarge  int
	OverscanCapUltraLarge int

	// InitialCapVeryLarge / InitialCapUltraLarge bound the pre-scroll range
	// to keep first paint cheap, together with the per-tier slack added to
	// the visible count.
	InitialCapVeryLarge    int
	InitialSlackVeryLarge  int
	InitialCapUltraLarge   int
	InitialSlackUltraLarge int

	// CooldownNormal / CooldownUltraLarge are the scheduler cooldown
	// durations after a patch is applied.
	CooldownNormal     time.Duration
	CooldownUltraLarge time.Duration

	// TableEnableThreshold / CardEnableThreshold are the item counts above
	// which virtualization activates for each layout mode. Below the
	// threshold the unwindowed renderer is cheaper than the bookkeeping.
	TableEnableThreshold int
	CardEnableThreshold  int

	// CacheMaxEntries / CacheEvictBatch bound the HeightCache.
	CacheMaxEntries int
	CacheEvictBatch int
}

// DefaultTunables returns the stock thresholds.
func DefaultTunables() Tunables {
	return Tunables{
		DefaultItemExtent:      400,
		VeryLargeTotal:         50_000,
		UltraLargeTotal:        100_000,
		OverscanCapVeryLarge:   3,
		OverscanCapUltraLarge:  2,
		InitialCapVeryLarge:    25,
		InitialSlackVeryLarge:  10,
		InitialCapUltraLarge:   15,
		InitialSlackUltraLarge: 5,
		CooldownNormal:         100 * time.Millisecond,
		CooldownUltraLarge:     150 * time.Millisecond,
		TableEnableThreshold:   25,
		CardEnableThreshold:    20,
		CacheMaxEntries:        1000,
		CacheEvictBatch:        500,
	}
}

// Normalized returns a copy of t with every non-positive field replaced by
// its default, so a zero-value or partially filled Tunables is always usable.
func (t Tunables) Normalized() Tunables {
	d := DefaultTunables()
	if t.DefaultItemExtent <= 0 {
		t.DefaultItemExtent = d.DefaultItemExtent
	}
	if t.VeryLargeTotal <= 0 {
		t.VeryLargeTotal = d.VeryLargeTotal
	}
	if t.UltraLargeTotal <= 0 {
		t.UltraLargeTotal = d.UltraLargeTotal
	}
	if t.OverscanCapVeryLarge <= 0 {
		t.OverscanCapVeryLarge = d.OverscanCapVeryLarge
	}
	if t.OverscanCapUltraLarge <= 0 {
		t.OverscanCapUltraLarge = d.OverscanCapUltraLarge
	}
	if t.InitialCapVeryLarge <= 0 {
		t.InitialCapVeryLarge = d.InitialCapVeryLarge
	}
	if t.InitialSlackVeryLarge <= 0 {
		t.InitialSlackVeryLarge = d.InitialSlackVeryLarge
	}
	if t.InitialCapUltraLarge <= 0 {
		t.InitialCapUltraLarge = d.InitialCapUltraLarge
	}
	if t.InitialSlackUltraLarge <= 0 {
		t.InitialSlackUltraLarge = d.InitialSlackUltraLarge
	}
	if t.CooldownNormal <= 0 {
		t.CooldownNormal = d.CooldownNormal
	}
	if t.CooldownUltraLarge <= 0 {
		t.CooldownUltraLarge = d.CooldownUltraLarge
	}
	if t.TableEnableThreshold <= 0 {
		t.TableEnableThreshold = d.TableEnableThreshold
	}
	if t.CardEnableThreshold <= 0 {
		t.CardEnableThreshold = d.CardEnableThreshold
	}
	if t.CacheMaxEntries <= 0 {
		t.CacheMaxEntries = d.CacheMaxEntries
	}
	if t.CacheEvictBatch <= 0 {
		t.CacheEvictBatch = d.CacheEvictBatch
	}
	return t
}

// Cooldown returns the scheduler cooldown for a dataset of the given size.
func (t Tunables) Cooldown(total int) time.Duration {
	if total >= t.UltraLargeTotal {
		return t.CooldownUltraLarge
	}
	return t.CooldownNormal
}

// CapOverscan clamps overscan according to the dataset size tier.
func (t Tunables) CapOverscan(overscan, total int) int {
	if overscan < 0 {
		overscan = 0
	}
	switch {
	case total >= t.UltraLargeTotal:
		if overscan > t.OverscanCapUltraLarge {
			overscan = t.OverscanCapUltraLarge
		}
	case total >= t.VeryLargeTotal:
		if overscan > t.OverscanCapVeryLarge {
			overscan = t.OverscanCapVeryLarge
		}
	}
	return overscan
}
