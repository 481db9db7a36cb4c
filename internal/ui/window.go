package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Window cuts rows lines out of content starting at offset, fitting each to
// width cells. Offsets are rounded down to whole rows. Short results are
// padded with blank lines so the output always has exactly rows lines.
func Window(content []string, offset float64, rows, width int) []string {
	if rows < 1 {
		return nil
	}
	start := 0
	if offset > 0 && !math.IsInf(offset, 1) {
		start = int(math.Floor(offset))
	}
	start = min(start, len(content))

	out := make([]string, 0, rows)
	for i := start; i < len(content) && len(out) < rows; i++ {
		out = append(out, FitWidth(content[i], width))
	}
	for len(out) < rows {
		out = append(out, FitWidth("", width))
	}
	return out
}

// FitWidth truncates or pads s to exactly width cells, preserving ANSI styling.
func FitWidth(s string, width int) string {
	if width < 1 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
