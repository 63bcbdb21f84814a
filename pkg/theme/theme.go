// Package theme defines the color palettes used by the gridline renderers.
// Themes are registered by name; lookup falls back to the default theme so
// a misspelled name can never break rendering.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme is the palette consumed by the row and card renderers.
type Theme struct {
	Name string

	Foreground string // hex color e.g. "#d4d4d4"
	Dim        string // de-emphasized text, spacer filler
	Accent     string // selected row, focused border

	HeaderFg string
	HeaderBg string

	RowEvenBg   string
	RowOddBg    string
	SelectedBg  string
	SelectedFg  string
	CardBorder  string
	CardTitleFg string

	StatusOK   string
	StatusWarn string
	StatusErr  string
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	registerBuiltins()
}

// Get returns a named theme, falling back to the default when the name is
// unknown or empty. Lookup is case-insensitive.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Register adds or replaces a theme. Themes without a name are ignored.
func Register(t Theme) {
	if t.Name == "" {
		return
	}
	mu.Lock()
	registry[strings.ToLower(t.Name)] = t
	mu.Unlock()
}

// Names returns the registered theme names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
