// Package patch applies a newly computed visible range to a render surface.
// Only the window's contents are (re)materialized; items outside it are
// represented by two inert spacers sized to the extent of what was skipped,
// so scrollbar geometry stays correct. For very large datasets the window
// is assembled off-surface and swapped in as a single operation.
package patch

import (
	"sync"
	"time"

	"gitlab.com/tinyland/lab/gridline/pkg/virt"
)

// Fragment is one materialized item: its rendered content plus the extent
// it occupies on the surface.
type Fragment struct {
	Index   int
	Content string
	Extent  float64
}

// Renderer is the collaborator that produces render output for one item.
// Implementations close over the dataset; the patcher never sees items.
type Renderer interface {
	RenderItem(index int) Fragment
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(index int) Fragment

func (f RendererFunc) RenderItem(index int) Fragment { return f(index) }

// Surface is the render target. ReplaceWindow swaps the whole visible
// window in one operation; ReplaceSlot writes a single window position in
// place. SetSpacers resizes the leading/trailing placeholders.
type Surface interface {
	SetSpacers(leading, trailing float64)
	ReplaceWindow(start int, frags []Fragment)
	ReplaceSlot(pos int, frag Fragment)
	ResizeWindow(n int)
}

// RangeChanged is the observability notification emitted after each patch.
type RangeChanged struct {
	Old          virt.VisibleRange
	New          virt.VisibleRange
	VisibleCount int
	Total        int
}

// Patcher diffs visible ranges and updates a Surface incrementally.
type Patcher struct {
	mu       sync.Mutex
	tun      virt.Tunables
	surface  Surface
	renderer Renderer

	prev     virt.VisibleRange
	hasPrev  bool
	total    int
	lastDur  time.Duration
	rendered int

	listeners map[int]func(RangeChanged)
	nextID    int
}

// New creates a patcher writing to surface via renderer.
func New(tun virt.Tunables, surface Surface, renderer Renderer) *Patcher {
	return &Patcher{
		tun:       tun.Normalized(),
		surface:   surface,
		renderer:  renderer,
		listeners: make(map[int]func(RangeChanged)),
	}
}

// Reset forgets the previous range (dataset replaced); the next Apply
// repaints unconditionally.
func (p *Patcher) Reset() {
	p.mu.Lock()
	p.prev = virt.VisibleRange{}
	p.hasPrev = false
	p.mu.Unlock()
}

// Apply materializes next onto the surface. leading and trailing are the
// spacer extents representing the skipped items before and after the
// window. A repeat of the previous range is a no-op.
func (p *Patcher) Apply(next virt.VisibleRange, total int, leading, trailing float64) {
	p.mu.Lock()
	if p.hasPrev && next == p.prev && total == p.total {
		p.mu.Unlock()
		return
	}
	old := p.prev
	surface, renderer := p.surface, p.renderer
	batched := total >= p.tun.VeryLargeTotal
	p.mu.Unlock()

	started := time.Now()
	surface.SetSpacers(leading, trailing)

	n := next.Len()
	if batched {
		// Assemble off-surface, swap once: avoids incremental layout cost
		// when the dataset is huge.
		frags := make([]Fragment, 0, n)
		for i := next.Start; i < next.End; i++ {
			frags = append(frags, renderer.RenderItem(i))
		}
		surface.ReplaceWindow(next.Start, frags)
	} else {
		surface.ResizeWindow(n)
		for i := next.Start; i < next.End; i++ {
			surface.ReplaceSlot(i-next.Start, renderer.RenderItem(i))
		}
	}
	dur := time.Since(started)

	p.mu.Lock()
	p.prev = next
	p.hasPrev = true
	p.total = total
	p.lastDur = dur
	p.rendered = n
	notify := make([]func(RangeChanged), 0, len(p.listeners))
	for _, fn := range p.listeners {
		notify = append(notify, fn)
	}
	p.mu.Unlock()

	ev := RangeChanged{Old: old, New: next, VisibleCount: n, Total: total}
	for _, fn := range notify {
		fn(ev)
	}
}

// OnRangeChanged registers a listener and returns a detach func. Detaching
// twice is a no-op.
func (p *Patcher) OnRangeChanged(fn func(RangeChanged)) (detach func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Current returns the last applied range.
func (p *Patcher) Current() virt.VisibleRange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prev
}

// LastRenderDuration reports how long the most recent patch took.
func (p *Patcher) LastRenderDuration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastDur
}

// RenderCount reports how many items the most recent patch materialized.
func (p *Patcher) RenderCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rendered
}
