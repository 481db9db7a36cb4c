// Package geometry supplies the measurements a scroll panel needs: the
// viewport it is shown in, how far that viewport is scrolled, where the
// panel sits inside it and how large the panel's content is.
package geometry

import "math"

// Measurement is a snapshot of one panel's layout. Heights and offsets share
// a single unit (terminal rows for the TUI host).
type Measurement struct {
	ViewportHeight float64 // window height, or the container's height
	ViewportWidth  float64
	ScrollTop      float64 // scroll position of the window or container
	PanelTop       float64 // panel's top edge relative to the window or container
	ContentHeight  float64
	ContentWidth   float64
}

// Provider measures panels on demand. An empty container means the page
// (the whole terminal window); otherwise it names an alternate scroll context.
type Provider interface {
	Measure(panelID, container string) Measurement
}

// VisibleHeight returns how much of the panel fits in the viewport. With
// fullWindow the panel may use the whole viewport regardless of where it
// starts; otherwise the space above the panel is subtracted, and the result
// never exceeds the viewport height.
func VisibleHeight(m Measurement, fullWindow bool) float64 {
	if fullWindow {
		return m.ViewportHeight
	}
	visible := m.ViewportHeight + m.ScrollTop - m.PanelTop
	if visible > m.ViewportHeight {
		visible = m.ViewportHeight
	}
	return visible
}

// Valid reports whether a length is usable: finite and strictly positive.
// Zero lengths are normal while a panel has not been laid out yet.
func Valid(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
