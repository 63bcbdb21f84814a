// Package app provides the Bubbletea browser around the gridline widget:
// an Elm-architecture model that feeds scroll and resize notifications into
// the grid, delivers the grid's frame callbacks as messages, and renders
// the materialized window with a metrics status bar.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/gridline/pkg/source"
)

// FrameMsg delivers the grid's frame-aligned callback through the update
// loop, keeping all widget work on the Bubbletea goroutine.
type FrameMsg struct{}

// SnapshotMsg carries a fresh dataset snapshot from a source goroutine.
type SnapshotMsg struct {
	Source    string
	Rows      source.Rows
	Err       error
	Timestamp time.Time
}

// RefreshTickMsg triggers the next snapshot for live sources.
type RefreshTickMsg struct {
	Time time.Time
}

// SnapshotCmd runs one collection cycle off the update loop and delivers
// the result as a SnapshotMsg.
func SnapshotCmd(src source.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rows, err := src.Snapshot(ctx)
		return SnapshotMsg{
			Source:    src.Name(),
			Rows:      rows,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
}

// RefreshTickCmd schedules the next RefreshTickMsg after d.
func RefreshTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return RefreshTickMsg{Time: t}
	})
}
