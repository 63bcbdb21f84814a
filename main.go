// gridline is a terminal data-grid browser built around a virtualized
// table/card widget. It renders datasets of hundreds of thousands of rows
// while materializing only the visible window, keeping per-frame work
// independent of dataset size.
//
// Usage:
//
//	gridline [flags]
//
// Flags:
//
//	-config string  Path to configuration file (default: XDG search path)
//	-source string  Dataset source: synthetic|procs (overrides config)
//	-rows int       Synthetic dataset size (overrides config)
//	-mode string    Layout mode: table|cards (overrides config)
//	-theme string   Color theme name (overrides config)
//	-verbose        Enable debug logging
//	-version        Print version and exit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	isatty "github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/gridline/pkg/app"
	"gitlab.com/tinyland/lab/gridline/pkg/config"
	"gitlab.com/tinyland/lab/gridline/pkg/source"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		sourceKind  = flag.String("source", "", "Dataset source: synthetic|procs")
		rows        = flag.Int("rows", 0, "Synthetic dataset size")
		mode        = flag.String("mode", "", "Layout mode: table|cards")
		themeName   = flag.String("theme", "", "Color theme name")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("gridline %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, *sourceKind, *rows, *mode, *themeName)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.General.LogLevel, *verbose)
	slog.SetDefault(logger)

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "gridline requires an interactive terminal")
		os.Exit(1)
	}
	if profile := termenv.ColorProfile(); profile == termenv.Ascii {
		logger.Warn("terminal reports no color support, output will be monochrome")
	}
	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil {
		logger.Debug("terminal size detected", "width", w, "height", h)
	}

	src, err := buildSource(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	model, err := app.New(cfg, src, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build UI: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	model.SetProgram(program)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "gridline: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the explicit path or walks the XDG search order.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// applyFlagOverrides lets flags win over both file and environment.
func applyFlagOverrides(cfg *config.Config, src string, rows int, mode, theme string) {
	if src != "" {
		cfg.Source.Kind = strings.ToLower(src)
	}
	if rows > 0 {
		cfg.Source.Rows = rows
	}
	if mode != "" {
		cfg.Grid.Mode = strings.ToLower(mode)
	}
	if theme != "" {
		cfg.Theme.Name = theme
	}
}

// buildSource maps the config onto a dataset source.
func buildSource(cfg *config.Config) (source.Source, error) {
	switch cfg.Source.Kind {
	case "procs":
		return source.NewProcs(cfg.Source.Refresh.Duration), nil
	case "synthetic":
		return source.NewSynthetic(cfg.Source.Rows), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source.Kind)
	}
}

// setupLogger writes structured logs to stderr; the TUI owns stdout.
// -verbose wins over the configured level.
func setupLogger(configured string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(configured) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
