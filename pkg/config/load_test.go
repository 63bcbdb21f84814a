package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Grid.Mode != "table" {
		t.Errorf("default mode = %q", cfg.Grid.Mode)
	}
}

func TestLoadTOML(t *testing.T) {
	src := `
[general]
log_level = "debug"

[grid]
mode = "cards"
overscan = 6
min_card_width = 30

[virtualization]
ultra_large_total = 200000
cooldown = "250ms"

[theme]
name = "nord"

[source]
kind = "synthetic"
rows = 5000
`
	cfg, err := LoadTOML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if cfg.Grid.Mode != "cards" || cfg.Grid.Overscan != 6 || cfg.Grid.MinCardWidth != 30 {
		t.Errorf("grid section not applied: %+v", cfg.Grid)
	}
	if cfg.Grid.RowHeight != 1 {
		t.Errorf("unset field lost its default: row_height = %v", cfg.Grid.RowHeight)
	}
	if cfg.Virt.Cooldown.Duration != 250*time.Millisecond {
		t.Errorf("cooldown = %v", cfg.Virt.Cooldown.Duration)
	}
	if cfg.Theme.Name != "nord" || cfg.Source.Rows != 5000 {
		t.Errorf("theme/source not applied: %+v %+v", cfg.Theme, cfg.Source)
	}
}

func TestLoadYAML(t *testing.T) {
	src := `
grid:
  mode: cards
  gap: 2
source:
  kind: procs
  refresh: 5s
`
	cfg, err := LoadYAML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if cfg.Grid.Mode != "cards" || cfg.Grid.Gap != 2 {
		t.Errorf("grid section not applied: %+v", cfg.Grid)
	}
	if cfg.Source.Kind != "procs" || cfg.Source.Refresh.Duration != 5*time.Second {
		t.Errorf("source section not applied: %+v", cfg.Source)
	}
}

func TestValidateRejectsBadMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Mode = "spreadsheet"
	if err := cfg.Validate(); err == nil {
		t.Error("bad mode accepted")
	}
	cfg = DefaultConfig()
	cfg.Source.Kind = "random"
	if err := cfg.Validate(); err == nil {
		t.Error("bad source kind accepted")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GRIDLINE_THEME", "gruvbox")
	t.Setenv("GRIDLINE_MODE", "cards")

	cfg, err := LoadTOML(strings.NewReader(`[theme]
name = "nord"`))
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if cfg.Theme.Name != "gruvbox" {
		t.Errorf("env did not win over file: theme = %q", cfg.Theme.Name)
	}
	if cfg.Grid.Mode != "cards" {
		t.Errorf("GRIDLINE_MODE ignored: %q", cfg.Grid.Mode)
	}
}

func TestDurationParsing(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("150ms")); err != nil {
		t.Fatalf("valid duration rejected: %v", err)
	}
	if d.Duration != 150*time.Millisecond {
		t.Errorf("parsed %v", d.Duration)
	}
	if err := d.UnmarshalText([]byte("-2s")); err == nil {
		t.Error("negative duration accepted")
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("garbage duration accepted")
	}
}

func TestTunablesOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Virt.UltraLargeTotal = 200_000
	cfg.Virt.CacheMaxEntries = 50

	tun := cfg.Tunables()
	if tun.UltraLargeTotal != 200_000 {
		t.Errorf("UltraLargeTotal = %d", tun.UltraLargeTotal)
	}
	if tun.CacheMaxEntries != 50 {
		t.Errorf("CacheMaxEntries = %d", tun.CacheMaxEntries)
	}
	// Untouched fields keep their defaults.
	def := DefaultConfig().Tunables()
	if tun.VeryLargeTotal != def.VeryLargeTotal {
		t.Errorf("VeryLargeTotal changed: %d", tun.VeryLargeTotal)
	}
}
