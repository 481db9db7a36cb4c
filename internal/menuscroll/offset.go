package menuscroll

import (
	"math"

	"github.com/wilbur182/menuscroll/internal/geometry"
)

// maxOffset is the largest valid offset for the cached geometry. Degenerate
// geometry (nothing laid out yet, or content that fits) yields 0.
func (p *Panel) maxOffset() float64 {
	if !geometry.Valid(p.contentHeight) || !geometry.Valid(p.visibleHeight) {
		return 0
	}
	return max(p.contentHeight-p.visibleHeight, 0)
}

// MaxOffset returns the largest offset the panel can currently reach.
func (p *Panel) MaxOffset() float64 { return p.maxOffset() }

// SetOffset re-measures the panel and moves it to r, clamped to
// [0, MaxOffset]. Non-finite requests are ignored. Returns the applied offset.
func (p *Panel) SetOffset(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return p.offset
	}
	p.measure(true)
	return p.apply(r)
}

// Reposition re-measures the panel and re-clamps the current offset, for
// hosts whose content or layout changed underneath an open panel.
func (p *Panel) Reposition() float64 {
	p.measure(true)
	if p.active {
		p.syncWrapper()
	}
	return p.apply(p.offset)
}

// syncWrapper clips the wrapper to the visible height while the content
// overflows and releases it once the content fits.
func (p *Panel) syncWrapper() {
	if p.maxOffset() <= 0 {
		p.wrapperHeight = 0
		p.wrapperClipped = false
		return
	}
	p.wrapperHeight = p.visibleHeight
	if !p.opts.DisableHideWrapper {
		p.wrapperClipped = true
	}
}

// MoveBy moves one step in the given direction, snapping exactly onto the
// boundary when less than a full step remains.
func (p *Panel) MoveBy(step float64, dir Direction) float64 {
	if !finitePositive(step) {
		return p.offset
	}
	p.measure(true)
	return p.apply(stepTarget(p.offset, p.maxOffset(), step, dir))
}

// MoveUp moves one configured step toward offset 0.
func (p *Panel) MoveUp() float64 {
	return p.MoveBy(p.opts.MenuMoveY, DirectionUp)
}

// MoveDown moves one configured step toward the end of the content.
func (p *Panel) MoveDown() float64 {
	return p.MoveBy(p.opts.MenuMoveY, DirectionDown)
}

// stepTarget computes the requested offset for a single step before clamping.
func stepTarget(offset, maxOffset, step float64, dir Direction) float64 {
	if dir == DirectionUp {
		if offset >= step {
			return offset - step
		}
		return 0
	}
	switch {
	case offset <= maxOffset-step:
		return offset + step
	case offset <= maxOffset:
		return maxOffset
	default:
		return offset
	}
}

// apply clamps r against the cached geometry, stores it and refreshes the
// indicators.
func (p *Panel) apply(r float64) float64 {
	p.offset = clamp(r, p.maxOffset())
	p.updateIndicators()
	p.render()
	return p.offset
}

func (p *Panel) updateIndicators() {
	limit := p.maxOffset()
	if limit <= 0 {
		p.canScrollUp = false
		p.canScrollDown = false
		return
	}
	p.canScrollUp = p.offset > 0
	p.canScrollDown = p.offset < limit
}

func clamp(r, limit float64) float64 {
	return max(0, min(r, limit))
}
