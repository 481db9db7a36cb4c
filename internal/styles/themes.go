// Package styles holds the color themes and the lipgloss styles derived
// from the active one.
package styles

import (
	"maps"
	"regexp"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds every color a theme sets. The JSON names double as
// the keys accepted by ui.theme.overrides in config.
type ColorPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`

	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	TextMuted     string `json:"textMuted"`

	BgPrimary   string `json:"bgPrimary"`
	BgSecondary string `json:"bgSecondary"`
	BgTertiary  string `json:"bgTertiary"`

	BorderNormal string `json:"borderNormal"`
	BorderActive string `json:"borderActive"`

	// Scroll indicator colors
	IndicatorFg    string `json:"indicatorFg"`
	IndicatorBg    string `json:"indicatorBg"`
	IndicatorHover string `json:"indicatorHover"` // background while held

	ScrollbarTrack string `json:"scrollbarTrack"`
	ScrollbarThumb string `json:"scrollbarThumb"`
}

// Theme is a named palette.
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

var (
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary:        "#7C3AED", // Purple
			Secondary:      "#3B82F6", // Blue
			Accent:         "#F59E0B", // Amber
			TextPrimary:    "#F9FAFB",
			TextSecondary:  "#9CA3AF",
			TextMuted:      "#6B7280",
			BgPrimary:      "#111827",
			BgSecondary:    "#1F2937",
			BgTertiary:     "#374151",
			BorderNormal:   "#374151",
			BorderActive:   "#7C3AED",
			IndicatorFg:    "#F9FAFB",
			IndicatorBg:    "#374151",
			IndicatorHover: "#7C3AED",
			ScrollbarTrack: "#374151",
			ScrollbarThumb: "#9CA3AF",
		},
	}

	DraculaTheme = Theme{
		Name:        "dracula",
		DisplayName: "Dracula",
		Colors: ColorPalette{
			Primary:        "#BD93F9",
			Secondary:      "#8BE9FD",
			Accent:         "#FFB86C",
			TextPrimary:    "#F8F8F2",
			TextSecondary:  "#BFBFBF",
			TextMuted:      "#6272A4",
			BgPrimary:      "#282A36",
			BgSecondary:    "#343746",
			BgTertiary:     "#44475A",
			BorderNormal:   "#44475A",
			BorderActive:   "#BD93F9",
			IndicatorFg:    "#F8F8F2",
			IndicatorBg:    "#44475A",
			IndicatorHover: "#FF79C6",
			ScrollbarTrack: "#44475A",
			ScrollbarThumb: "#6272A4",
		},
	}

	NordTheme = Theme{
		Name:        "nord",
		DisplayName: "Nord",
		Colors: ColorPalette{
			Primary:        "#88C0D0",
			Secondary:      "#81A1C1",
			Accent:         "#EBCB8B",
			TextPrimary:    "#ECEFF4",
			TextSecondary:  "#D8DEE9",
			TextMuted:      "#4C566A",
			BgPrimary:      "#2E3440",
			BgSecondary:    "#3B4252",
			BgTertiary:     "#434C5E",
			BorderNormal:   "#434C5E",
			BorderActive:   "#88C0D0",
			IndicatorFg:    "#ECEFF4",
			IndicatorBg:    "#434C5E",
			IndicatorHover: "#5E81AC",
			ScrollbarTrack: "#3B4252",
			ScrollbarThumb: "#81A1C1",
		},
	}
)

var (
	themeMu sync.RWMutex
	themes  = map[string]Theme{
		DefaultTheme.Name: DefaultTheme,
		DraculaTheme.Name: DraculaTheme,
		NordTheme.Name:    NordTheme,
	}
	currentTheme = DefaultTheme.Name
)

// paletteFields maps override keys onto palette fields.
var paletteFields = map[string]func(*ColorPalette) *string{
	"primary":        func(c *ColorPalette) *string { return &c.Primary },
	"secondary":      func(c *ColorPalette) *string { return &c.Secondary },
	"accent":         func(c *ColorPalette) *string { return &c.Accent },
	"textPrimary":    func(c *ColorPalette) *string { return &c.TextPrimary },
	"textSecondary":  func(c *ColorPalette) *string { return &c.TextSecondary },
	"textMuted":      func(c *ColorPalette) *string { return &c.TextMuted },
	"bgPrimary":      func(c *ColorPalette) *string { return &c.BgPrimary },
	"bgSecondary":    func(c *ColorPalette) *string { return &c.BgSecondary },
	"bgTertiary":     func(c *ColorPalette) *string { return &c.BgTertiary },
	"borderNormal":   func(c *ColorPalette) *string { return &c.BorderNormal },
	"borderActive":   func(c *ColorPalette) *string { return &c.BorderActive },
	"indicatorFg":    func(c *ColorPalette) *string { return &c.IndicatorFg },
	"indicatorBg":    func(c *ColorPalette) *string { return &c.IndicatorBg },
	"indicatorHover": func(c *ColorPalette) *string { return &c.IndicatorHover },
	"scrollbarTrack": func(c *ColorPalette) *string { return &c.ScrollbarTrack },
	"scrollbarThumb": func(c *ColorPalette) *string { return &c.ScrollbarThumb },
}

// Colors the renderers use directly.
var (
	Primary      lipgloss.Color
	Accent       lipgloss.Color
	BorderNormal lipgloss.Color

	ScrollbarTrackColor lipgloss.Color
	ScrollbarThumbColor lipgloss.Color
)

// Styles derived from the current theme.
var (
	Trigger       lipgloss.Style
	TriggerActive lipgloss.Style

	Indicator      lipgloss.Style
	IndicatorHover lipgloss.Style // indicator being held

	Item         lipgloss.Style
	ItemSelected lipgloss.Style

	Muted     lipgloss.Style
	StatusBar lipgloss.Style
)

func init() {
	setStyles(DefaultTheme.Colors)
}

// IsValidHexColor reports whether s is #RRGGBB or #RRGGBBAA.
func IsValidHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// IsValidTheme reports whether a theme with that name exists.
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themes[name]
	return ok
}

// GetTheme returns the named theme, or the default theme.
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if t, ok := themes[name]; ok {
		return t
	}
	return DefaultTheme
}

// GetCurrentThemeName returns the name of the applied theme.
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the theme names, sorted.
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return slices.Sorted(maps.Keys(themes))
}

// ApplyThemeWithOverrides applies the named theme with per-color overrides
// on top. Overrides with an unknown key or a value that is not a hex color
// are skipped; their keys are returned, sorted.
//
// The style variables are replaced without locking, so call it before the
// program starts or from the Update loop.
func ApplyThemeWithOverrides(name string, overrides map[string]string) (rejected []string) {
	theme := GetTheme(name)
	for key, value := range overrides {
		field, ok := paletteFields[key]
		if !ok || !IsValidHexColor(value) {
			rejected = append(rejected, key)
			continue
		}
		*field(&theme.Colors) = value
	}
	slices.Sort(rejected)

	setStyles(theme.Colors)
	themeMu.Lock()
	currentTheme = theme.Name
	themeMu.Unlock()
	return rejected
}

func setStyles(c ColorPalette) {
	Primary = lipgloss.Color(c.Primary)
	Accent = lipgloss.Color(c.Accent)
	BorderNormal = lipgloss.Color(c.BorderNormal)
	ScrollbarTrackColor = lipgloss.Color(c.ScrollbarTrack)
	ScrollbarThumbColor = lipgloss.Color(c.ScrollbarThumb)

	text := lipgloss.Color(c.TextPrimary)
	subtle := lipgloss.Color(c.TextSecondary)

	Trigger = lipgloss.NewStyle().
		Foreground(subtle).
		Background(lipgloss.Color(c.BgSecondary)).
		Padding(0, 1)
	TriggerActive = Trigger.
		Foreground(text).
		Background(Primary).
		Bold(true)

	Indicator = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.IndicatorFg)).
		Background(lipgloss.Color(c.IndicatorBg))
	IndicatorHover = Indicator.
		Background(lipgloss.Color(c.IndicatorHover)).
		Bold(true)

	Item = lipgloss.NewStyle().Foreground(text)
	ItemSelected = Item.
		Background(lipgloss.Color(c.BgTertiary)).
		Bold(true)

	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(c.TextMuted))
	StatusBar = lipgloss.NewStyle().
		Foreground(subtle).
		Background(lipgloss.Color(c.BgPrimary))
}
