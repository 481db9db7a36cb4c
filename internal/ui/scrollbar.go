package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/menuscroll/internal/styles"
)

// ScrollbarParams configures a vertical scrollbar rendering. Sizes are in
// the same unit as the panel geometry, so fractional offsets render at the
// nearest row.
type ScrollbarParams struct {
	ContentHeight float64 // Full height of the scrolled content
	Offset        float64 // Current scroll displacement
	VisibleHeight float64 // Height of the visible window onto the content
	TrackHeight   int     // Height of the scrollbar track in terminal rows
}

// ThumbSpan returns the first row and length of the thumb. ok is false when
// everything fits and no thumb is drawn.
func ThumbSpan(p ScrollbarParams) (pos, size int, ok bool) {
	if p.TrackHeight < 1 || p.VisibleHeight <= 0 || p.ContentHeight <= p.VisibleHeight {
		return 0, 0, false
	}
	track := float64(p.TrackHeight)

	// Proportional to the visible fraction, at least one row.
	size = int(math.Round(p.VisibleHeight / p.ContentHeight * track))
	size = max(1, min(size, p.TrackHeight))

	maxOffset := p.ContentHeight - p.VisibleHeight
	frac := max(0, min(p.Offset/maxOffset, 1))
	pos = int(math.Round(frac * float64(p.TrackHeight-size)))
	return pos, size, true
}

// RenderScrollbar returns a single-column string (newline-separated)
// representing a vertical scrollbar track. Returns a column of spaces
// if all content is visible to reserve the width and prevent layout jitter.
// Output has exactly TrackHeight lines, each 1 character wide.
func RenderScrollbar(params ScrollbarParams) string {
	if params.TrackHeight < 1 {
		return ""
	}

	lines := make([]string, params.TrackHeight)
	pos, size, ok := ThumbSpan(params)
	if !ok {
		for i := range lines {
			lines[i] = " "
		}
		return strings.Join(lines, "\n")
	}

	trackChar := lipgloss.NewStyle().Foreground(styles.ScrollbarTrackColor).Render("│")
	thumbChar := lipgloss.NewStyle().Foreground(styles.ScrollbarThumbColor).Render("┃")

	for i := range lines {
		if i >= pos && i < pos+size {
			lines[i] = thumbChar
		} else {
			lines[i] = trackChar
		}
	}
	return strings.Join(lines, "\n")
}
