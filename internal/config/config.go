package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wilbur182/menuscroll/internal/menuscroll"
	"github.com/wilbur182/menuscroll/internal/styles"
)

// Config is the root configuration structure.
type Config struct {
	Panels   []PanelConfig  `json:"panels"`
	Keymap   KeymapConfig   `json:"keymap"`
	UI       UIConfig       `json:"ui"`
	Features FeaturesConfig `json:"features"`
	Log      LogConfig      `json:"log"`
}

// PanelConfig describes one scrollable panel and its trigger.
type PanelConfig struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`           // trigger label
	Items []string `json:"items,omitempty"` // panel rows; generated when empty

	// Filter adds a text input above the items that narrows them as you type.
	Filter bool `json:"filter,omitempty"`

	// Options holds option overrides keyed by their public names. Anything
	// not listed keeps its default.
	Options map[string]any `json:"options,omitempty"`
}

// ResolveOptions applies the panel's overrides on top of the defaults.
func (p PanelConfig) ResolveOptions() (menuscroll.Options, error) {
	return menuscroll.DefaultOptions().With(p.Options)
}

// FeaturesConfig holds feature flag settings.
type FeaturesConfig struct {
	Flags map[string]bool `json:"flags"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowScrollbar bool        `json:"showScrollbar"`
	ShowStatus    bool        `json:"showStatus"`
	Theme         ThemeConfig `json:"theme"`
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string            `json:"name"`
	Overrides map[string]string `json:"overrides"`
}

// LogConfig configures debug logging.
type LogConfig struct {
	Level string `json:"level"` // debug, info, warn, error
	File  string `json:"file,omitempty"`
}

// SlogLevel maps Level onto a slog.Level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultPanels returns the panels shown when the config names none. Steps
// are in terminal rows.
func DefaultPanels() []PanelConfig {
	return []PanelConfig{
		{
			ID:     "menu",
			Title:  "Menu",
			Filter: true,
			Options: map[string]any{
				"useTransformPositioning": true,
				"enableMouseSlide":        true,
				"menuMoveY":               1,
				"touchMoveDetect":         1,
			},
		},
		{
			ID:    "tags",
			Title: "Tags",
			Options: map[string]any{
				"mouseOutHideMenu": false,
				"useScrolltop":     true,
				"container":        "body",
				"menuMoveY":        2,
				"touchMoveDetect":  1,
			},
		},
	}
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Panels: DefaultPanels(),
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowScrollbar: true,
			ShowStatus:    true,
			Theme: ThemeConfig{
				Name:      "default",
				Overrides: make(map[string]string),
			},
		},
		Features: FeaturesConfig{
			Flags: make(map[string]bool),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ErrInvalidPanel is returned when a panel entry cannot be used.
var ErrInvalidPanel = errors.New("invalid panel")

// Validate checks the configuration for errors. Cosmetic problems are
// repaired in place; panel problems are reported.
func (c *Config) Validate() error {
	if c.Keymap.Overrides == nil {
		c.Keymap.Overrides = make(map[string]string)
	}
	if c.Features.Flags == nil {
		c.Features.Flags = make(map[string]bool)
	}
	if c.UI.Theme.Name == "" || !styles.IsValidTheme(c.UI.Theme.Name) {
		c.UI.Theme.Name = "default"
	}
	if c.UI.Theme.Overrides == nil {
		c.UI.Theme.Overrides = make(map[string]string)
	}

	seen := make(map[string]bool, len(c.Panels))
	var errs []error
	for i, p := range c.Panels {
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Errorf("%w: panels[%d] has no id", ErrInvalidPanel, i))
			continue
		case seen[p.ID]:
			errs = append(errs, fmt.Errorf("%w: duplicate id %q", ErrInvalidPanel, p.ID))
			continue
		}
		seen[p.ID] = true
		if _, err := p.ResolveOptions(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %w", ErrInvalidPanel, p.ID, err))
		}
		if c.Panels[i].Title == "" {
			c.Panels[i].Title = p.ID
		}
	}
	return errors.Join(errs...)
}
