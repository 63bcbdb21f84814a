// Package grid implements the gridline data-grid widget: a virtualized
// table or card view over a large ordered dataset. It wires the range
// calculators, the scroll scheduler, and the incremental patcher together
// behind a small host-facing API, and delegates all markup production to
// renderer collaborators.
//
// The widget is single-owner and event-driven: the host feeds it scroll
// and resize notifications, the scheduler decides when to recompute, and
// the patcher updates the render surface with at most one visible window
// of work per cycle, independent of dataset size.
package grid

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/gridline/pkg/layout"
	"gitlab.com/tinyland/lab/gridline/pkg/patch"
	"gitlab.com/tinyland/lab/gridline/pkg/sched"
	"gitlab.com/tinyland/lab/gridline/pkg/virt"
)

// Mode selects the layout strategy.
type Mode int

const (
	// ModeTable renders uniform-height rows (fixed windowing).
	ModeTable Mode = iota
	// ModeCards renders variable-height cards in a responsive grid
	// (adaptive windowing).
	ModeCards
)

// Dataset is the host-owned ordered item sequence. The virtualizer treats
// it as immutable; replace it wholesale via SetDataset.
type Dataset interface {
	Len() int
	At(i int) any
}

// ItemRenderer produces the render fragment for one item. Implementations
// typically close over column layout and theme.
type ItemRenderer interface {
	RenderItem(item any, absoluteIndex int) patch.Fragment
}

// ItemRendererFunc adapts a function to ItemRenderer.
type ItemRendererFunc func(item any, absoluteIndex int) patch.Fragment

func (f ItemRendererFunc) RenderItem(item any, absoluteIndex int) patch.Fragment {
	return f(item, absoluteIndex)
}

// HeaderRenderer produces the fixed header line for table mode.
type HeaderRenderer interface {
	RenderHeader(columns []layout.Column) string
}

// ResizeSource delivers container resize notifications. When the host
// environment cannot observe resizes, leave it nil: the widget degrades to
// a static layout with a single warning.
type ResizeSource interface {
	Subscribe(fn func(width, height int)) (cancel func())
}

// Config assembles a Grid. Dataset and Renderer are required; everything
// else has a usable default. RequestFrame and StartTimer let the host own
// frame alignment and timers (the demo app routes them through Bubbletea
// messages); left nil, the scheduler falls back to goroutine delivery and
// time.AfterFunc.
type Config struct {
	Mode     Mode
	Columns  []layout.Column
	Dataset  Dataset
	Renderer ItemRenderer
	Header   HeaderRenderer
	Surface  patch.Surface
	Stages   []Stage
	Resize   ResizeSource
	Tunables virt.Tunables
	Options  Options
	Logger   *slog.Logger

	RequestFrame func()
	StartTimer   func(d time.Duration, fn func()) (cancel func())
}

// Grid is the virtualized data-grid widget.
type Grid struct {
	mu sync.Mutex

	mode    Mode
	columns []layout.Column
	dataset Dataset
	header  HeaderRenderer
	log     *slog.Logger

	opts Options
	tun  virt.Tunables

	fixed    *virt.FixedCalculator
	adaptive *virt.AdaptiveCalculator
	solver   *layout.GridSolver
	gridLay  layout.GridLayout

	scheduler *sched.Scheduler
	patcher   *patch.Patcher
	surface   patch.Surface

	vp        virt.ViewportMetrics
	lastErr   error
	lastFrags []patch.Fragment

	cancelResize func()
	closed       bool
}

// New builds a Grid from cfg.
func New(cfg Config) (*Grid, error) {
	if cfg.Dataset == nil {
		return nil, errors.New("grid: Config.Dataset is required")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("grid: Config.Renderer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	surface := cfg.Surface
	if surface == nil {
		surface = patch.NewTermSurface()
	}

	tun := cfg.Tunables.Normalized()
	g := &Grid{
		mode:    cfg.Mode,
		columns: cfg.Columns,
		dataset: cfg.Dataset,
		header:  cfg.Header,
		log:     logger,
		tun:     tun,
		opts:    cfg.Options.sanitized(),
		fixed:   virt.NewFixedCalculator(tun),
		solver:  layout.NewGridSolver(),
		surface: surface,
	}
	g.adaptive = virt.NewAdaptiveCalculator(tun, adaptiveConfigOf(g.opts, 1),
		virt.NewHeightCache(tun.CacheMaxEntries, tun.CacheEvictBatch))

	g.patcher = patch.New(tun, surface, g.wrapRenderer(cfg.Renderer, cfg.Stages))
	g.scheduler = sched.New(sched.Config{
		ItemExtent: g.gateExtent(),
		Total:      cfg.Dataset.Len(),
		Tunables:   tun,
	}, sched.Hooks{
		RequestFrame:  cfg.RequestFrame,
		StartTimer:    cfg.StartTimer,
		Compute:       g.computeAndPatch,
		AfterCooldown: g.refreshHeights,
	})

	if cfg.Resize != nil {
		g.cancelResize = cfg.Resize.Subscribe(g.Resize)
	} else {
		// Environment-capability gap: no resize observation. Degrade to a
		// static layout, warn once, keep functioning.
		logger.Warn("grid: no resize source available, layout is static")
	}

	return g, nil
}

// Close tears the widget down: pending frame callbacks and cooldown timers
// are cancelled and the resize subscription is detached. Safe to call more
// than once.
func (g *Grid) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	cancel := g.cancelResize
	g.cancelResize = nil
	g.mu.Unlock()

	g.scheduler.Close()
	if cancel != nil {
		cancel()
	}
}

// Enabled reports whether virtualization is active for a dataset of
// itemCount items. Below the mode-specific threshold the unwindowed
// renderer is used instead.
func (g *Grid) Enabled(itemCount int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabledLocked(itemCount)
}

func (g *Grid) enabledLocked(itemCount int) bool {
	threshold := g.tun.TableEnableThreshold
	if g.mode == ModeCards {
		threshold = g.tun.CardEnableThreshold
	}
	return itemCount > threshold
}

// SetDataset replaces the dataset. The height cache and previous range are
// invalidated; the next cycle repaints from scratch.
func (g *Grid) SetDataset(ds Dataset) {
	if ds == nil {
		return
	}
	g.mu.Lock()
	g.dataset = ds
	g.adaptive.Cache().Reset()
	g.lastFrags = nil
	g.mu.Unlock()

	g.patcher.Reset()
	g.scheduler.SetConfig(sched.Config{ItemExtent: g.gateExtent(), Total: ds.Len()})
	g.scheduler.NotifyResize()
}

// Frame delivers the frame-aligned callback requested via RequestFrame.
// Hosts that own the render loop call this once per frame.
func (g *Grid) Frame() {
	g.scheduler.Frame()
}

// Repaint forces the current window to re-render with unchanged geometry
// and intact measurements. Use after a styling or selection change.
func (g *Grid) Repaint() {
	g.patcher.Reset()
	g.scheduler.NotifyResize()
}

// NotifyScroll feeds a scroll offset into the scheduler.
func (g *Grid) NotifyScroll(offset float64) {
	g.mu.Lock()
	g.vp.ScrollOffset = offset
	g.mu.Unlock()
	g.scheduler.NotifyScroll(offset)
}

// Resize records a new container size, re-solves the card grid layout, and
// schedules a gate-bypassing recompute. A resize invalidates every cached
// measurement at once, so the height cache is rebuilt from scratch.
func (g *Grid) Resize(width, height int) {
	g.mu.Lock()
	widthChanged := int(g.vp.ContainerWidth) != width
	g.vp.ContainerWidth = float64(width)
	g.vp.ContainerHeight = float64(height)
	if g.mode == ModeCards {
		lay, changed := g.solver.Solve(width, g.opts.MinItemWidth, g.opts.Gap)
		if changed {
			g.gridLay = lay
			if widthChanged {
				g.adaptive.Cache().Reset()
			}
			g.adaptive.SetConfig(adaptiveConfigOf(g.opts, lay.ColumnsPerRow))
		}
	}
	g.mu.Unlock()
	g.scheduler.NotifyResize()
}

// Layout returns the current card-grid shape (card mode only).
func (g *Grid) Layout() layout.GridLayout {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gridLay
}

// Surface exposes the render surface for the host view.
func (g *Grid) Surface() patch.Surface {
	return g.surface
}

// Header renders the table-mode header via the collaborator, or "" when no
// header renderer is configured.
func (g *Grid) Header() string {
	g.mu.Lock()
	h, cols := g.header, g.columns
	g.mu.Unlock()
	if h == nil {
		return ""
	}
	return h.RenderHeader(cols)
}

// Err returns the last programming-fatal calculator error, if any. Range
// invariant violations are logic defects and are surfaced here instead of
// being clamped away.
func (g *Grid) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

// gateExtent is the item extent the scheduler gates scroll deltas with.
func (g *Grid) gateExtent() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode == ModeTable {
		return g.opts.FixedItemExtent
	}
	return g.adaptive.AverageRowExtent()
}

func adaptiveConfigOf(o Options, columns int) virt.AdaptiveConfig {
	if columns < 1 {
		columns = 1
	}
	return virt.AdaptiveConfig{
		EstimatedItemExtent: o.EstimatedItemExtent,
		Gap:                 float64(o.Gap),
		ColumnsPerRow:       columns,
		Overscan:            o.Overscan,
	}
}
