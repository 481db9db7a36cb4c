// Package mouse turns raw terminal mouse events into hit-tested actions:
// hover transitions between named regions, press/drag/release sessions and
// wheel steps.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickWindow is the maximum gap between two presses on the same
// region for the second to count as a double click.
const DoubleClickWindow = 400 * time.Millisecond

// WheelLines is the number of lines one wheel notch represents.
const WheelLines = 3

// Rect represents a rectangular region.
type Rect struct {
	X, Y, W, H int
}

// Contains returns true if the point (x, y) is within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ContainsRect returns true if o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Region is a named rectangular hit region with associated data.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap tracks hit regions for mouse hit testing.
type HitMap struct {
	regions []Region
}

// NewHitMap creates a new empty HitMap.
func NewHitMap() *HitMap {
	return &HitMap{
		regions: make([]Region, 0, 32),
	}
}

// Clear removes all regions from the hit map.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Add adds a new region to the hit map.
func (h *HitMap) Add(id string, rect Rect, data any) {
	h.regions = append(h.regions, Region{
		ID:   id,
		Rect: rect,
		Data: data,
	})
}

// AddRect adds a region using individual coordinates.
func (h *HitMap) AddRect(id string, x, y, w, height int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: height}, data)
}

// Test returns the topmost region containing the point, or nil if none.
func (h *HitMap) Test(x, y int) *Region {
	// Later regions are drawn on top.
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Regions returns a copy of all registered regions (for testing).
func (h *HitMap) Regions() []Region {
	return append([]Region(nil), h.regions...)
}

// ActionType represents the type of mouse action detected.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionEnter
	ActionLeave
	ActionPress
	ActionDrag
	ActionRelease
	ActionScrollUp
	ActionScrollDown
)

func (a ActionType) String() string {
	switch a {
	case ActionEnter:
		return "enter"
	case ActionLeave:
		return "leave"
	case ActionPress:
		return "press"
	case ActionDrag:
		return "drag"
	case ActionRelease:
		return "release"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// MouseAction represents a processed mouse event.
type MouseAction struct {
	Type ActionType

	// Region is the region the action applies to. For drag and release
	// it is the region the press started on.
	Region *Region

	// Related is the region the pointer moved onto, for leave and release.
	Related *Region

	X, Y   int
	Delta  int  // scroll delta in lines, negative is up
	Double bool // press completed a double click
}

// Handler combines a HitMap with hover and press tracking.
type Handler struct {
	HitMap *HitMap
	now    func() time.Time

	hover *Region

	pressed     bool
	pressRegion *Region

	lastClickRegion string
	lastClickTime   time.Time
}

// NewHandler creates a new mouse handler.
func NewHandler() *Handler {
	return &Handler{
		HitMap: NewHitMap(),
		now:    time.Now,
	}
}

// SetClock replaces time.Now for double-click detection.
func (h *Handler) SetClock(now func() time.Time) { h.now = now }

// Hovered returns the region under the pointer after the last event.
func (h *Handler) Hovered() *Region { return h.hover }

// Pressed reports whether a press session is open.
func (h *Handler) Pressed() bool { return h.pressed }

// Clear clears the hit map. Hover and press state survive so transitions
// keep working across redraws.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// Reset drops hover and press state.
func (h *Handler) Reset() {
	h.hover = nil
	h.pressed = false
	h.pressRegion = nil
}

// HandleMouse processes a tea.MouseMsg. A single event can produce several
// actions, for example leaving one region and entering another; they are
// returned in the order they happened.
func (h *Handler) HandleMouse(msg tea.MouseMsg) []MouseAction {
	region := h.HitMap.Test(msg.X, msg.Y)
	var out []MouseAction

	switch msg.Action {
	case tea.MouseActionPress:
		out = h.moveTo(region, msg.X, msg.Y, out)
		switch msg.Button {
		case tea.MouseButtonLeft:
			out = append(out, h.press(region, msg.X, msg.Y))
		case tea.MouseButtonWheelUp:
			out = append(out, MouseAction{Type: ActionScrollUp, Region: region, X: msg.X, Y: msg.Y, Delta: -WheelLines})
		case tea.MouseButtonWheelDown:
			out = append(out, MouseAction{Type: ActionScrollDown, Region: region, X: msg.X, Y: msg.Y, Delta: WheelLines})
		}

	case tea.MouseActionMotion:
		out = h.moveTo(region, msg.X, msg.Y, out)
		if h.pressed {
			out = append(out, MouseAction{Type: ActionDrag, Region: h.pressRegion, X: msg.X, Y: msg.Y})
		}

	case tea.MouseActionRelease:
		if h.pressed {
			out = append(out, MouseAction{
				Type:    ActionRelease,
				Region:  h.pressRegion,
				Related: region,
				X:       msg.X,
				Y:       msg.Y,
			})
			h.pressed = false
			h.pressRegion = nil
		}
		out = h.moveTo(region, msg.X, msg.Y, out)
	}
	return out
}

// moveTo emits leave/enter transitions when the hovered region changes.
func (h *Handler) moveTo(region *Region, x, y int, out []MouseAction) []MouseAction {
	if sameRegion(h.hover, region) {
		h.hover = region
		return out
	}
	if h.hover != nil {
		out = append(out, MouseAction{Type: ActionLeave, Region: h.hover, Related: region, X: x, Y: y})
	}
	if region != nil {
		out = append(out, MouseAction{Type: ActionEnter, Region: region, X: x, Y: y})
	}
	h.hover = region
	return out
}

func (h *Handler) press(region *Region, x, y int) MouseAction {
	h.pressed = true
	h.pressRegion = region

	action := MouseAction{Type: ActionPress, Region: region, X: x, Y: y}
	if region == nil {
		h.lastClickRegion = ""
		return action
	}
	now := h.now()
	if region.ID == h.lastClickRegion && now.Sub(h.lastClickTime) < DoubleClickWindow {
		action.Double = true
		// Reset so a third click does not count as another double.
		h.lastClickRegion = ""
		h.lastClickTime = time.Time{}
	} else {
		h.lastClickRegion = region.ID
		h.lastClickTime = now
	}
	return action
}

func sameRegion(a, b *Region) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
