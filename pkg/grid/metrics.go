package grid

import (
	"time"

	"gitlab.com/tinyland/lab/gridline/pkg/patch"
)

// Metrics is a point-in-time snapshot of the widget's render economy.
// EfficiencyRatio is the fraction of the dataset NOT materialized on the
// current paint: 0 for an unwindowed small dataset, approaching 1 as the
// dataset grows past the window.
type Metrics struct {
	Enabled            bool
	Total              int
	VisibleCount       int
	RenderCount        int
	LastRenderDuration time.Duration
	CacheSize          int
	EfficiencyRatio    float64
}

// Metrics returns the current snapshot. Cheap enough to call per frame;
// the demo status bar does.
func (g *Grid) Metrics() Metrics {
	g.mu.Lock()
	total := g.dataset.Len()
	enabled := g.enabledLocked(total)
	cacheSize := g.adaptive.Cache().Len()
	g.mu.Unlock()

	cur := g.patcher.Current()
	m := Metrics{
		Enabled:            enabled,
		Total:              total,
		VisibleCount:       cur.Len(),
		RenderCount:        g.patcher.RenderCount(),
		LastRenderDuration: g.patcher.LastRenderDuration(),
		CacheSize:          cacheSize,
	}
	if total > 0 {
		m.EfficiencyRatio = 1 - float64(cur.Len())/float64(total)
	}
	return m
}

// OnRangeChanged registers a listener for post-patch range notifications.
// The returned detach is idempotent.
func (g *Grid) OnRangeChanged(fn func(patch.RangeChanged)) (detach func()) {
	return g.patcher.OnRangeChanged(fn)
}
