package menuscroll

import "math"

// WheelMsg is one wheel event over a panel. Wheel implementations report
// their delta in different fields; whichever is set first wins.
type WheelMsg struct {
	Panel string

	WheelDeltaY float64 // positive when the wheel rolls away from the user
	DeltaY      float64 // positive when the wheel rolls toward the user
	Detail      float64 // legacy line count, positive toward the user
}

// Delta normalizes the event: positive scrolls toward the top of the
// content, negative toward the bottom, zero means no usable delta.
func (m WheelMsg) Delta() float64 {
	switch {
	case m.WheelDeltaY != 0:
		return m.WheelDeltaY
	case m.DeltaY != 0:
		return -m.DeltaY
	case m.Detail != 0:
		return -m.Detail
	}
	return 0
}

// Wheel applies one normalized wheel delta as a single step. Collapsed
// panels ignore the wheel. Reports whether a step was issued.
func (p *Panel) Wheel(delta float64) bool {
	if !p.active || math.IsNaN(delta) {
		return false
	}
	switch {
	case delta > 0:
		p.MoveUp()
	case delta < 0:
		p.MoveDown()
	default:
		return false
	}
	return true
}
