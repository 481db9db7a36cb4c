package menuscroll

// Activate expands the panel. The wrapper is revealed, geometry measured
// and the indicators set up. When the content already fits, the panel is
// still active but every scroll operation clamps to 0.
func (p *Panel) Activate() {
	if p.active {
		return
	}
	p.active = true
	p.triggerActivated = true
	if !p.opts.DisableHideWrapper {
		p.wrapperHidden = false
	}

	p.measure(false)
	if p.maxOffset() <= 0 {
		p.offset = 0
		p.updateIndicators()
		p.render()
		if p.logger != nil {
			p.logger.Debug("panel content fits", "id", p.id,
				"content", p.contentHeight, "visible", p.visibleHeight)
		}
		return
	}

	p.wrapperHeight = p.visibleHeight
	if !p.opts.DisableHideWrapper {
		p.wrapperClipped = true
	}
	p.apply(p.offset)
}

// Collapse resets the panel to its resting state. Calling it on a collapsed
// panel leaves the same state behind.
func (p *Panel) Collapse() {
	p.repeat.cancel()
	p.tapDetect.cancel()
	p.stopTracking()

	p.offset = 0
	p.wrapperHeight = 0
	if !p.opts.DisableHideWrapper {
		p.wrapperHidden = true
		p.wrapperClipped = false
	}
	p.triggerActivated = false
	p.active = false
	p.updateIndicators()
	p.render()
}

// Toggle activates or collapses the panel. A nil force flips the state.
func (p *Panel) Toggle(force *bool) {
	show := !p.active
	if force != nil {
		show = *force
	}
	if show {
		p.Activate()
	} else {
		p.Collapse()
	}
}

// EnterTrigger handles the pointer entering the trigger area.
func (p *Panel) EnterTrigger() {
	p.touch()
	p.Activate()
}

// LeaveTrigger handles the pointer leaving the trigger area for related.
// Moving onto something inside the trigger is not a leave, and an open drag
// keeps the panel expanded.
func (p *Panel) LeaveTrigger(related Target) {
	p.touch()
	if p.insideTrigger(related) {
		return
	}
	if !p.dragging && p.active {
		p.Collapse()
	}
}

// LayoutChanged collapses the panel after a viewport change unless a text
// input grace window is open. Reports whether the panel collapsed.
func (p *Panel) LayoutChanged() bool {
	if p.TextGrace() {
		return false
	}
	p.Collapse()
	return true
}
