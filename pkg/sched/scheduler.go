// Package sched decides when the virtualizer recomputes its visible range.
// It is the event-driven gate between raw scroll/resize notifications and
// the range calculators: notifications are coalesced onto a single
// frame-aligned callback, small scroll deltas are filtered out, and a
// cooldown after each patch keeps huge datasets from recomputing on every
// wheel tick.
//
// The state machine is Idle -> Pending -> Computing -> (cooldown) -> Idle.
// Frame and timer sources are injected so the machine is fully testable
// without a render loop; the demo app drives it from Bubbletea messages.
package sched

import (
	"math"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/gridline/pkg/virt"
)

// State is the scheduler's position in its cycle.
type State int

const (
	// StateIdle: no work requested.
	StateIdle State = iota
	// StatePending: a notification arrived; a frame callback is in flight.
	StatePending
	// StateComputing: a range computation/patch is in flight (includes the
	// post-patch cooldown window). The busy state is the subsystem's sole
	// mutual-exclusion mechanism.
	StateComputing
)

// Config carries the gating inputs. ItemExtent is the unit for the
// offset-delta gate; Total selects the large-dataset thresholds.
type Config struct {
	ItemExtent float64
	Total      int
	Tunables   virt.Tunables
}

// Hooks connect the scheduler to its environment. Compute is invoked with
// the coalesced scroll offset once a notification passes the gate; the
// owner must call Finish after the patch is applied. AfterCooldown fires at
// the end of the cooldown window and is the designated point for post-paint
// height-cache refresh. All hooks are called without the scheduler's lock
// held.
type Hooks struct {
	RequestFrame  func()
	StartTimer    func(d time.Duration, fn func()) (cancel func())
	Compute       func(offset float64, resize bool)
	AfterCooldown func()
}

// Scheduler coalesces scroll and resize notifications into bounded
// recomputation work. Safe for use with asynchronous timers.
type Scheduler struct {
	mu    sync.Mutex
	cfg   Config
	hooks Hooks

	state          State
	latestOffset   float64
	computedOffset float64
	lastComputed   float64
	hasComputed    bool
	resizePending  bool
	frameRequested bool
	cancelCooldown func()
	closed         bool
}

// New creates a scheduler. A nil StartTimer defaults to time.AfterFunc; a
// nil RequestFrame delivers the frame callback on a fresh goroutine.
func New(cfg Config, hooks Hooks) *Scheduler {
	cfg.Tunables = cfg.Tunables.Normalized()
	s := &Scheduler{cfg: cfg, hooks: hooks}
	if s.hooks.StartTimer == nil {
		s.hooks.StartTimer = func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		}
	}
	if s.hooks.RequestFrame == nil {
		s.hooks.RequestFrame = func() { go s.Frame() }
	}
	return s
}

// SetConfig updates the gating inputs (dataset replaced, extent changed).
func (s *Scheduler) SetConfig(cfg Config) {
	s.mu.Lock()
	s.cfg.ItemExtent = cfg.ItemExtent
	s.cfg.Total = cfg.Total
	if cfg.Tunables != (virt.Tunables{}) {
		s.cfg.Tunables = cfg.Tunables.Normalized()
	}
	s.mu.Unlock()
}

// State returns the current machine state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NotifyScroll records a scroll offset. In Idle it requests one frame
// callback; in Pending it only coalesces (latest offset wins); in Computing
// the offset is remembered and reconsidered when the cooldown ends.
func (s *Scheduler) NotifyScroll(offset float64) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.latestOffset = offset
	fire := s.transitionToPendingLocked()
	s.mu.Unlock()
	if fire {
		s.hooks.RequestFrame()
	}
}

// NotifyResize marks a container resize. Resizes bypass the offset-delta
// gate but obey the same single-in-flight rule as scrolls.
func (s *Scheduler) NotifyResize() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.resizePending = true
	fire := s.transitionToPendingLocked()
	s.mu.Unlock()
	if fire {
		s.hooks.RequestFrame()
	}
}

// Frame is the frame-aligned callback. While Computing the notification is
// dropped (already-in-flight protection). Otherwise the coalesced offset is
// compared against the last computed one; Compute fires only if the delta
// exceeds the gate, a resize is pending, or nothing has been computed yet.
func (s *Scheduler) Frame() {
	s.mu.Lock()
	s.frameRequested = false
	if s.closed || s.state != StatePending {
		s.mu.Unlock()
		return
	}

	resize := s.resizePending
	delta := math.Abs(s.latestOffset - s.lastComputed)
	if !resize && s.hasComputed && delta <= s.gateThresholdLocked() {
		s.state = StateIdle
		s.mu.Unlock()
		return
	}

	s.state = StateComputing
	s.resizePending = false
	s.computedOffset = s.latestOffset
	offset := s.computedOffset
	s.mu.Unlock()

	s.hooks.Compute(offset, resize)
}

// Finish must be called by the owner once the computed range has been
// patched onto the render surface. It starts the cooldown window; the
// scheduler returns to Idle when it elapses.
func (s *Scheduler) Finish() {
	s.mu.Lock()
	if s.closed || s.state != StateComputing {
		s.mu.Unlock()
		return
	}
	s.lastComputed = s.computedOffset
	s.hasComputed = true
	d := s.cfg.Tunables.Cooldown(s.cfg.Total)
	s.mu.Unlock()

	cancel := s.hooks.StartTimer(d, s.cooldownDone)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancelCooldown = cancel
	s.mu.Unlock()
}

// Close cancels any pending cooldown and stops accepting notifications.
// Safe to call more than once.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancelCooldown
	s.cancelCooldown = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// cooldownDone fires the post-paint refresh hook, returns to Idle, and
// re-arms if notifications arrived while busy.
func (s *Scheduler) cooldownDone() {
	if s.hooks.AfterCooldown != nil {
		s.hooks.AfterCooldown()
	}

	s.mu.Lock()
	s.cancelCooldown = nil
	if s.closed || s.state != StateComputing {
		s.mu.Unlock()
		return
	}
	s.state = StateIdle
	fire := false
	delta := math.Abs(s.latestOffset - s.lastComputed)
	if s.resizePending || delta > s.gateThresholdLocked() {
		fire = s.transitionToPendingLocked()
	}
	s.mu.Unlock()
	if fire {
		s.hooks.RequestFrame()
	}
}

// transitionToPendingLocked moves Idle to Pending and reports whether a
// frame callback must be requested. Caller holds s.mu.
func (s *Scheduler) transitionToPendingLocked() bool {
	if s.state != StateIdle || s.frameRequested {
		return false
	}
	s.state = StatePending
	s.frameRequested = true
	return true
}

// gateThresholdLocked is half an item extent normally, a full extent for
// ultra-large datasets. Caller holds s.mu.
func (s *Scheduler) gateThresholdLocked() float64 {
	extent := s.cfg.ItemExtent
	if extent <= 0 {
		extent = s.cfg.Tunables.DefaultItemExtent
	}
	if s.cfg.Total >= s.cfg.Tunables.UltraLargeTotal {
		return extent
	}
	return extent / 2
}
