package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/menuscroll/internal/styles"
)

// RenderRule renders a horizontal rule separating the trigger bar from the
// area the panels open into.
func RenderRule(width int) string {
	if width < 1 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(styles.BorderNormal).
		Render(strings.Repeat("─", width))
}
