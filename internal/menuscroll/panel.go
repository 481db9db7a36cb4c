package menuscroll

import (
	"log/slog"
	"time"

	"github.com/wilbur182/menuscroll/internal/geometry"
)

// Strategy is the input binding chosen for a panel at registration.
// Touch-capable devices get touch handlers, everything else gets wheel and
// mouse handlers; a panel never has both.
type Strategy int

const (
	StrategyWheelDrag Strategy = iota
	StrategyTouchDrag
)

func (s Strategy) String() string {
	if s == StrategyTouchDrag {
		return "touch"
	}
	return "wheel"
}

// Direction of a discrete move. Up moves toward offset 0 (revealing content
// above), Down moves toward the maximum offset.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

func (d Direction) String() string {
	if d == DirectionDown {
		return "down"
	}
	return "up"
}

// PointerKind distinguishes mouse pointers from touch contacts.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

// Part identifies a piece of a panel for related-target checks.
type Part int

const (
	PartNone Part = iota
	PartTrigger
	PartPanel
	PartNavUp
	PartNavDown
	PartInput
)

// Target names the element a pointer moved onto: a part of some panel, or
// nothing at all.
type Target struct {
	Panel string
	Part  Part
}

// Frame is the complete visual state of a panel, handed to its Surface after
// every change.
type Frame struct {
	Active            bool
	TriggerActivated  bool
	WrapperHidden     bool
	WrapperClipped    bool
	WrapperHeight     float64 // 0 means natural height
	Positioning       Positioning
	Offset            float64
	RestingTop        float64
	ScrollUpVisible   bool
	ScrollDownVisible bool
}

// Top returns the panel's top edge for PositionTop rendering.
func (f Frame) Top() float64 {
	return f.RestingTop - f.Offset
}

// Surface is the externally owned visual representation of a panel.
type Surface interface {
	Render(id string, f Frame)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(id string, f Frame)

// Render implements Surface.
func (fn SurfaceFunc) Render(id string, f Frame) { fn(id, f) }

// Panel is the state of one managed scrollable panel.
type Panel struct {
	id       string
	opts     Options
	strategy Strategy
	surface  Surface
	geo      geometry.Provider
	reg      *Registry
	logger   *slog.Logger

	offset        float64
	contentHeight float64
	contentWidth  float64
	visibleHeight float64
	restingTop    float64

	active           bool
	triggerActivated bool
	wrapperHidden    bool
	wrapperClipped   bool
	wrapperHeight    float64
	canScrollUp      bool
	canScrollDown    bool

	// Drag session, valid while tracking.
	dragging        bool
	tracking        bool
	pointer         PointerKind
	dragStartOffset float64
	dragStartY      float64
	lastMove        time.Time

	repeat    task
	repeatDir Direction
	tapDetect task
	tapDir    Direction
	grace     task

	textFocused bool
	textGrace   bool
}

// ID returns the stable panel identifier.
func (p *Panel) ID() string { return p.id }

// Options returns a copy of the panel's current options.
func (p *Panel) Options() Options { return p.opts }

// Strategy returns the input binding chosen at registration.
func (p *Panel) Strategy() Strategy { return p.strategy }

// Offset returns the current scroll displacement.
func (p *Panel) Offset() float64 { return p.offset }

// Active reports whether the panel is expanded.
func (p *Panel) Active() bool { return p.active }

// Dragging reports whether a drag session has been promoted to dragging.
func (p *Panel) Dragging() bool { return p.dragging }

// Tracking reports whether pointer movement is currently being tracked.
func (p *Panel) Tracking() bool { return p.tracking }

// CanScrollUp reports whether content exists above the visible area.
func (p *Panel) CanScrollUp() bool { return p.canScrollUp }

// CanScrollDown reports whether content exists below the visible area.
func (p *Panel) CanScrollDown() bool { return p.canScrollDown }

// ContentHeight returns the cached content height.
func (p *Panel) ContentHeight() float64 { return p.contentHeight }

// ContentWidth returns the cached content width.
func (p *Panel) ContentWidth() float64 { return p.contentWidth }

// VisibleHeight returns the cached visible height.
func (p *Panel) VisibleHeight() float64 { return p.visibleHeight }

// Repeating reports whether a hold-to-repeat session is armed.
func (p *Panel) Repeating() bool { return p.repeat.armed }

// TextGrace reports whether layout-change collapse is currently suppressed.
func (p *Panel) TextGrace() bool { return p.textFocused || p.textGrace }

// Frame returns the panel's current visual state. Indicators are only shown
// while the panel is active.
func (p *Panel) Frame() Frame {
	return Frame{
		Active:            p.active,
		TriggerActivated:  p.triggerActivated,
		WrapperHidden:     p.wrapperHidden,
		WrapperClipped:    p.wrapperClipped,
		WrapperHeight:     p.wrapperHeight,
		Positioning:       p.opts.Positioning(),
		Offset:            p.offset,
		RestingTop:        p.restingTop,
		ScrollUpVisible:   p.active && p.canScrollUp && !p.opts.HideNavScrollUp,
		ScrollDownVisible: p.active && p.canScrollDown && !p.opts.HideNavScrollDown,
	}
}

func (p *Panel) render() {
	if p.surface != nil {
		p.surface.Render(p.id, p.Frame())
	}
}

// touch marks the panel as the most recently interacted one.
func (p *Panel) touch() {
	if p.reg != nil {
		p.reg.last = p.id
	}
}

// measure refreshes the cached geometry. Content size is only read when
// refreshContent is set or nothing has been cached yet.
func (p *Panel) measure(refreshContent bool) {
	if p.geo == nil {
		return
	}
	m := p.geo.Measure(p.id, p.opts.Container)
	if refreshContent || p.contentHeight == 0 {
		p.contentHeight = m.ContentHeight
		p.contentWidth = m.ContentWidth
	}
	p.visibleHeight = geometry.VisibleHeight(m, p.opts.MenuFullWindowHeight)
	p.restingTop = m.PanelTop
}
