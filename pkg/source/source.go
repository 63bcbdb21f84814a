// Package source provides the datasets the demo grid browses: a synthetic
// generator for exercising very large totals, and a live process list
// gathered via gopsutil. Each source produces immutable row snapshots; the
// grid is handed a new snapshot wholesale and never observes mutation.
package source

import (
	"context"
	"time"

	"gitlab.com/tinyland/lab/gridline/pkg/layout"
)

// Row is one dataset record. Cells are pre-formatted strings aligned with
// the source's column set.
type Row struct {
	ID    string
	Cells []string
}

// Rows is an immutable snapshot satisfying the grid's dataset contract.
type Rows []Row

func (r Rows) Len() int     { return len(r) }
func (r Rows) At(i int) any { return r[i] }

// Source produces dataset snapshots for the grid.
type Source interface {
	// Name returns a unique identifier for this source (e.g., "procs").
	Name() string

	// Columns describes the snapshot's cell layout.
	Columns() []layout.Column

	// Snapshot performs one collection cycle and returns the rows.
	Snapshot(ctx context.Context) (Rows, error)

	// Interval returns how often the snapshot should be refreshed. Zero
	// means the dataset is static.
	Interval() time.Duration

	// Healthy reports whether the last snapshot succeeded. A source that
	// has never run is considered healthy.
	Healthy() bool
}
