package mouse

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !outer.ContainsRect(Rect{X: 2, Y: 2, W: 8, H: 8}) {
		t.Error("flush inner rect should be contained")
	}
	if outer.ContainsRect(Rect{X: 5, Y: 5, W: 6, H: 1}) {
		t.Error("overhanging rect should not be contained")
	}
}

func TestHitMapTopmostWins(t *testing.T) {
	h := NewHitMap()
	h.AddRect("panel", 0, 0, 20, 10, 1)
	h.AddRect("nav", 0, 0, 20, 1, 2)

	if r := h.Test(5, 0); r == nil || r.ID != "nav" {
		t.Errorf("Test(5, 0) = %v, want nav", r)
	}
	if r := h.Test(5, 5); r == nil || r.ID != "panel" {
		t.Errorf("Test(5, 5) = %v, want panel", r)
	}
	if r := h.Test(30, 5); r != nil {
		t.Errorf("Test(30, 5) = %v, want nil", r)
	}

	h.Clear()
	if len(h.Regions()) != 0 {
		t.Error("Clear() should drop all regions")
	}
}

func types(actions []MouseAction) []ActionType {
	out := make([]ActionType, len(actions))
	for i, a := range actions {
		out[i] = a.Type
	}
	return out
}

func equalTypes(a, b []ActionType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestHandler() *Handler {
	h := NewHandler()
	h.HitMap.AddRect("trigger", 0, 0, 10, 1, "t")
	h.HitMap.AddRect("panel", 0, 1, 10, 5, "p")
	return h
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func TestHoverTransitions(t *testing.T) {
	h := newTestHandler()

	steps := []struct {
		name    string
		msg     tea.MouseMsg
		want    []ActionType
		related string
	}{
		{"enter trigger", motion(1, 0), []ActionType{ActionEnter}, ""},
		{"stay on trigger", motion(2, 0), nil, ""},
		{"trigger to panel", motion(2, 2), []ActionType{ActionLeave, ActionEnter}, "panel"},
		{"leave everything", motion(40, 2), []ActionType{ActionLeave}, ""},
	}
	for _, step := range steps {
		got := h.HandleMouse(step.msg)
		if !equalTypes(types(got), step.want) {
			t.Fatalf("%s: actions = %v, want %v", step.name, types(got), step.want)
		}
		if len(got) > 0 && got[0].Type == ActionLeave {
			rel := ""
			if got[0].Related != nil {
				rel = got[0].Related.ID
			}
			if rel != step.related {
				t.Errorf("%s: related = %q, want %q", step.name, rel, step.related)
			}
		}
	}
	if h.Hovered() != nil {
		t.Errorf("Hovered() = %v, want nil", h.Hovered())
	}
}

func TestPressDragRelease(t *testing.T) {
	h := newTestHandler()
	h.HandleMouse(motion(1, 3))

	got := h.HandleMouse(tea.MouseMsg{X: 1, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !equalTypes(types(got), []ActionType{ActionPress}) || got[0].Region.ID != "panel" {
		t.Fatalf("press actions = %v", got)
	}
	if !h.Pressed() {
		t.Fatal("Pressed() should be true after a press")
	}

	got = h.HandleMouse(motion(1, 0))
	if !equalTypes(types(got), []ActionType{ActionLeave, ActionEnter, ActionDrag}) {
		t.Fatalf("drag actions = %v", types(got))
	}
	if drag := got[2]; drag.Region.ID != "panel" || drag.Y != 0 {
		t.Errorf("drag = %+v, want region panel at y 0", drag)
	}

	got = h.HandleMouse(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if !equalTypes(types(got), []ActionType{ActionRelease}) {
		t.Fatalf("release actions = %v", types(got))
	}
	if got[0].Region.ID != "panel" || got[0].Related == nil || got[0].Related.ID != "trigger" {
		t.Errorf("release = %+v, want press region panel, related trigger", got[0])
	}
	if h.Pressed() {
		t.Error("Pressed() should be false after release")
	}
}

func TestReleaseWithoutPress(t *testing.T) {
	h := newTestHandler()
	got := h.HandleMouse(tea.MouseMsg{X: 40, Y: 40, Action: tea.MouseActionRelease})
	if len(got) != 0 {
		t.Errorf("stray release produced %v", types(got))
	}
}

func TestWheel(t *testing.T) {
	h := newTestHandler()
	up := h.HandleMouse(tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if len(up) != 2 || up[1].Type != ActionScrollUp || up[1].Delta != -WheelLines || up[1].Region.ID != "panel" {
		t.Errorf("wheel up = %+v", up)
	}
	down := h.HandleMouse(tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if len(down) != 1 || down[0].Type != ActionScrollDown || down[0].Delta != WheelLines {
		t.Errorf("wheel down = %+v", down)
	}
	if h.Pressed() {
		t.Error("wheel events must not open a press session")
	}
}

func TestDoubleClick(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := newTestHandler()
	h.SetClock(func() time.Time { return now })
	click := func() MouseAction {
		acts := h.HandleMouse(tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		h.HandleMouse(tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
		return acts[len(acts)-1]
	}

	if click().Double {
		t.Error("first click should not be a double click")
	}
	now = now.Add(100 * time.Millisecond)
	if !click().Double {
		t.Error("second click within the window should be a double click")
	}
	now = now.Add(100 * time.Millisecond)
	if click().Double {
		t.Error("third click should start a new sequence")
	}
	now = now.Add(DoubleClickWindow)
	if click().Double {
		t.Error("click after the window should not be a double click")
	}
}
