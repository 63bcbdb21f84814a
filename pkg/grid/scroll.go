package grid

// Align selects where the target item lands in the container after a
// programmatic scroll.
type Align int

const (
	// AlignStart puts the item's leading edge at the top of the container.
	AlignStart Align = iota
	// AlignCenter centers the item in the container.
	AlignCenter
	// AlignEnd puts the item's trailing edge at the bottom.
	AlignEnd
)

// ScrollToIndex computes the offset that places item index according to
// align, clamps it to the scrollable extent, and schedules a recompute.
// An out-of-bounds index is clamped to the dataset, never rejected. The
// applied offset is returned so hosts can mirror it into their own
// scroll state.
func (g *Grid) ScrollToIndex(index int, align Align) float64 {
	g.mu.Lock()
	total := g.dataset.Len()
	if total == 0 {
		g.mu.Unlock()
		return 0
	}
	if index < 0 {
		index = 0
	}
	if index >= total {
		index = total - 1
	}

	container := g.vp.ContainerHeight
	var (
		extent    float64
		pos       int // ordinal along the scroll axis
		axisUnits int
	)
	if g.mode == ModeTable {
		extent = g.opts.FixedItemExtent
		pos = index
		axisUnits = total
	} else {
		cols := g.gridLay.ColumnsPerRow
		if cols < 1 {
			cols = 1
		}
		extent = g.adaptive.AverageRowExtent()
		pos = index / cols
		axisUnits = (total + cols - 1) / cols
	}

	var offset float64
	switch align {
	case AlignCenter:
		offset = float64(pos)*extent - container/2 + extent/2
	case AlignEnd:
		offset = float64(pos+1)*extent - container
	default:
		offset = float64(pos) * extent
	}

	maxScroll := float64(axisUnits)*extent - container
	if maxScroll < 0 {
		maxScroll = 0
	}
	if offset > maxScroll {
		offset = maxScroll
	}
	if offset < 0 {
		offset = 0
	}
	g.vp.ScrollOffset = offset
	g.mu.Unlock()

	g.scheduler.NotifyScroll(offset)
	return offset
}
