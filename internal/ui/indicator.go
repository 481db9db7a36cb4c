package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/wilbur182/menuscroll/internal/styles"
)

// RenderIndicator renders a one-row scroll indicator of the given width with
// its label centered. A hidden indicator renders as blank space so the rows
// around it keep their position. up selects the arrow glyph.
func RenderIndicator(label string, width int, up, visible, held bool) string {
	if width < 1 {
		return ""
	}
	if !visible {
		return lipgloss.NewStyle().Width(width).Render("")
	}
	arrow := "▼"
	if up {
		arrow = "▲"
	}
	text := arrow + " " + label + " " + arrow
	text = ansi.Truncate(text, width, "")

	style := styles.Indicator
	if held {
		style = styles.IndicatorHover
	}
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
