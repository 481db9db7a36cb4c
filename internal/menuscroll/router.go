package menuscroll

import tea "github.com/charmbracelet/bubbletea"

// PointerDownMsg opens a drag session on a panel.
type PointerDownMsg struct {
	Panel   string
	Y       float64
	Pointer PointerKind
}

// PointerMoveMsg is a pointer sample during a drag session.
type PointerMoveMsg struct {
	Panel string
	Y     float64
}

// PointerUpMsg ends a drag session. Related is what the pointer moved onto
// when the session ended by leaving the panel.
type PointerUpMsg struct {
	Panel   string
	Pointer PointerKind
	Related Target
}

// TriggerEnterMsg reports the pointer entering a panel's trigger.
type TriggerEnterMsg struct{ Panel string }

// TriggerLeaveMsg reports the pointer leaving a panel's trigger for Related.
type TriggerLeaveMsg struct {
	Panel   string
	Related Target
}

// TriggerClickMsg is a mouse click on a panel's trigger.
type TriggerClickMsg struct{ Panel string }

// TriggerTapMsg is a touch tap on a panel's trigger.
type TriggerTapMsg struct{ Panel string }

// NavEnterMsg reports the pointer resting on a scroll indicator.
type NavEnterMsg struct {
	Panel string
	Dir   Direction
}

// NavLeaveMsg reports the pointer leaving a scroll indicator.
type NavLeaveMsg struct{ Panel string }

// NavPressMsg is a touch contact starting on a scroll indicator.
type NavPressMsg struct {
	Panel string
	Dir   Direction
}

// NavReleaseMsg is the touch contact on a scroll indicator ending.
type NavReleaseMsg struct{ Panel string }

// InputFocusMsg reports a text input inside the panel gaining focus.
type InputFocusMsg struct{ Panel string }

// InputBlurMsg reports a text input inside the panel losing focus.
type InputBlurMsg struct{ Panel string }

// LayoutChangedMsg is a viewport-wide layout change such as a resize. It is
// not scoped to a panel; the most recently interacted panel handles it.
type LayoutChangedMsg struct{}

// Router dispatches input messages to panels. Each panel only reacts to the
// modalities bound by its Strategy.
type Router struct {
	reg *Registry
}

// NewRouter creates a router over reg.
func NewRouter(reg *Registry) *Router {
	return &Router{reg: reg}
}

// Registry returns the router's registry.
func (rt *Router) Registry() *Registry { return rt.reg }

func (rt *Router) panel(id string) *Panel {
	p, ok := rt.reg.panels[id]
	if !ok {
		rt.reg.logger.Debug("input for unknown panel dropped", "id", id)
		return nil
	}
	return p
}

// Update handles one message. Messages the router does not know are
// ignored, so hosts can pass everything through.
func (rt *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case WheelMsg:
		if p := rt.panel(msg.Panel); p != nil && p.strategy == StrategyWheelDrag {
			p.Wheel(msg.Delta())
		}

	case PointerDownMsg:
		if p := rt.panel(msg.Panel); p != nil && p.slideEnabled(msg.Pointer) {
			p.BeginDrag(msg.Y, msg.Pointer)
		}

	case PointerMoveMsg:
		if p := rt.panel(msg.Panel); p != nil {
			p.DragTo(msg.Y)
		}

	case PointerUpMsg:
		if p := rt.panel(msg.Panel); p != nil && p.slideEnabled(msg.Pointer) {
			p.EndDrag(msg.Pointer, msg.Related)
		}

	case TriggerEnterMsg:
		if p := rt.panel(msg.Panel); p != nil && p.hoverTrigger() {
			p.EnterTrigger()
		}

	case TriggerLeaveMsg:
		if p := rt.panel(msg.Panel); p != nil && p.hoverTrigger() {
			p.LeaveTrigger(msg.Related)
		}

	case TriggerClickMsg:
		p := rt.panel(msg.Panel)
		if p != nil && p.strategy == StrategyWheelDrag && !p.opts.MouseOutHideMenu && p.opts.ClickTrigger {
			p.touch()
			p.Toggle(nil)
		}

	case TriggerTapMsg:
		if p := rt.panel(msg.Panel); p != nil && p.strategy == StrategyTouchDrag && p.opts.TouchTrigger {
			p.touch()
			p.Toggle(nil)
		}

	case NavEnterMsg:
		if p := rt.panel(msg.Panel); p != nil {
			return p.StartRepeat(msg.Dir)
		}

	case NavLeaveMsg:
		if p := rt.panel(msg.Panel); p != nil {
			p.StopRepeat()
		}

	case NavPressMsg:
		if p := rt.panel(msg.Panel); p != nil && p.strategy == StrategyTouchDrag {
			return p.PressNav(msg.Dir)
		}

	case NavReleaseMsg:
		if p := rt.panel(msg.Panel); p != nil && p.strategy == StrategyTouchDrag {
			p.ReleaseNav()
		}

	case InputFocusMsg:
		if p := rt.panel(msg.Panel); p != nil {
			p.FocusInput()
		}

	case InputBlurMsg:
		if p := rt.panel(msg.Panel); p != nil {
			return p.BlurInput()
		}

	case LayoutChangedMsg:
		rt.reg.LayoutChanged()

	case repeatTickMsg:
		if p := rt.panel(msg.panel); p != nil {
			return p.onRepeatTick(msg.seq)
		}

	case tapDetectMsg:
		if p := rt.panel(msg.panel); p != nil {
			return p.onTapDetect(msg.seq)
		}

	case graceExpiredMsg:
		if p := rt.panel(msg.panel); p != nil {
			p.onGraceExpired(msg.seq)
		}
	}
	return nil
}

// slideEnabled reports whether drag sessions from this pointer kind are
// bound for the panel.
func (p *Panel) slideEnabled(pointer PointerKind) bool {
	if pointer == PointerTouch {
		return p.strategy == StrategyTouchDrag && p.opts.EnableTouchSlide
	}
	return p.strategy == StrategyWheelDrag && p.opts.EnableMouseSlide
}

// hoverTrigger reports whether hovering the trigger opens and closes the panel.
func (p *Panel) hoverTrigger() bool {
	return p.strategy == StrategyWheelDrag && p.opts.MouseOutHideMenu
}
