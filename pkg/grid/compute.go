package grid

import (
	"gitlab.com/tinyland/lab/gridline/pkg/sched"
	"gitlab.com/tinyland/lab/gridline/pkg/virt"
)

// computeAndPatch is the scheduler's Compute hook: it runs the active
// range calculator at the coalesced offset and applies the result to the
// surface. Below the enable threshold the whole dataset is materialized
// with no spacers.
func (g *Grid) computeAndPatch(offset float64, resize bool) {
	defer g.scheduler.Finish()
	_ = resize

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.vp.ScrollOffset = offset
	total := g.dataset.Len()
	container := g.vp.ContainerHeight
	enabled := g.enabledLocked(total)
	g.lastFrags = g.lastFrags[:0]

	var (
		rng               virt.VisibleRange
		leading, trailing float64
		err               error
	)
	switch {
	case !enabled:
		rng = virt.VisibleRange{Start: 0, End: total}
	case g.mode == ModeTable:
		rng, err = g.fixed.Compute(virt.FixedInput{
			ScrollOffset:    offset,
			ContainerExtent: container,
			ItemExtent:      g.opts.FixedItemExtent,
			Overscan:        g.opts.Overscan,
			Total:           total,
		})
		if err == nil {
			leading = float64(rng.Start) * g.opts.FixedItemExtent
			trailing = float64(total-rng.End) * g.opts.FixedItemExtent
		}
	default:
		rng, err = g.adaptive.Compute(offset, container, total)
		if err == nil {
			avg := g.adaptive.AverageRowExtent()
			cols := g.gridLay.ColumnsPerRow
			if cols < 1 {
				cols = 1
			}
			leading = float64(rng.Start/cols) * avg
			remaining := total - rng.End
			trailing = float64((remaining+cols-1)/cols) * avg
		}
	}
	g.mu.Unlock()

	if err != nil {
		// A range invariant violation is a logic defect, not a render
		// condition. Keep the last good window on screen and surface the
		// error through Err.
		g.mu.Lock()
		g.lastErr = err
		g.mu.Unlock()
		g.log.Error("grid: range computation failed", "offset", offset, "total", total, "err", err)
		return
	}

	g.patcher.Apply(rng, total, leading, trailing)
}

// refreshHeights is the scheduler's AfterCooldown hook. In card mode the
// extents measured during the last paint are written back to the height
// cache, tightening the average row estimate for the next cycle.
func (g *Grid) refreshHeights() {
	g.mu.Lock()
	if g.closed || g.mode != ModeCards {
		g.mu.Unlock()
		return
	}
	for _, f := range g.lastFrags {
		g.adaptive.RecordExtent(f.Index, f.Extent)
	}
	total := g.dataset.Len()
	gate := g.adaptive.AverageRowExtent()
	g.mu.Unlock()

	g.scheduler.SetConfig(sched.Config{ItemExtent: gate, Total: total})
}
