package menuscroll

import (
	"math"
	"time"
)

func (p *Panel) now() time.Time {
	if p.reg != nil && p.reg.now != nil {
		return p.reg.now()
	}
	return time.Now()
}

func (p *Panel) startTracking() { p.tracking = true }

// stopTracking detaches the session. Nothing can end a drag once tracking
// is gone, so the drag flag goes with it.
func (p *Panel) stopTracking() {
	p.tracking = false
	p.dragging = false
}

// BeginDrag opens a drag session at pointer position y. The session stays
// a tap until the pointer travels more than TouchMoveDetect.
func (p *Panel) BeginDrag(y float64, pointer PointerKind) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	p.touch()
	p.dragging = false
	p.pointer = pointer
	p.dragStartY = y
	p.dragStartOffset = p.offset
	p.lastMove = time.Time{}
	p.startTracking()
}

// DragTo feeds a pointer sample into the open session. Samples arriving
// within MoveSampleInterval of the last processed one are dropped.
func (p *Panel) DragTo(y float64) {
	if !p.tracking || math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	diff := y - p.dragStartY
	if !p.dragging && math.Abs(diff) <= p.opts.TouchMoveDetect {
		return
	}
	p.dragging = true

	now := p.now()
	if !p.lastMove.IsZero() && now.Sub(p.lastMove) < MoveSampleInterval {
		return
	}
	p.lastMove = now
	p.SetOffset(p.dragStartOffset - diff)
}

// EndDrag closes the session. A mouse session that never became a drag is
// a click and puts the panel back where the session started. For mouse
// pointers, moving onto the trigger or the panel itself does not end the
// session.
func (p *Panel) EndDrag(pointer PointerKind, related Target) {
	if pointer == PointerMouse && (p.insideTrigger(related) || p.insidePanel(related)) {
		return
	}
	wasDragging := p.dragging
	p.dragging = false
	if !p.tracking {
		return
	}
	p.stopTracking()
	if !wasDragging && pointer == PointerMouse {
		p.SetOffset(p.dragStartOffset)
	}
}

func (p *Panel) insideTrigger(t Target) bool {
	if t.Panel != p.id || t.Part == PartNone {
		return false
	}
	return t.Part == PartTrigger || p.opts.TriggerIsParent()
}

func (p *Panel) insidePanel(t Target) bool {
	return t.Panel == p.id && (t.Part == PartPanel || t.Part == PartInput)
}
