package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/wilbur182/menuscroll/internal/config"
	"github.com/wilbur182/menuscroll/internal/geometry"
	"github.com/wilbur182/menuscroll/internal/menuscroll"
	"github.com/wilbur182/menuscroll/internal/styles"
)

type touchDetector bool

func (d touchDetector) TouchCapable() bool { return bool(d) }

type fakeTimers struct{ msgs []tea.Msg }

func (f *fakeTimers) schedule(_ time.Duration, msg tea.Msg) tea.Cmd {
	f.msgs = append(f.msgs, msg)
	return func() tea.Msg { return msg }
}

func (f *fakeTimers) last() tea.Msg { return f.msgs[len(f.msgs)-1] }

type harness struct {
	m      *Model
	timers *fakeTimers
	copied []string
}

// newHarness builds an 80x24 screen. The menu panel has a filter row plus
// 40 items (max offset 20 with 21 body rows); its trigger spans columns 0-5
// and its down indicator sits on row 22.
func newHarness(t *testing.T, touch bool, cfg *config.Config) *harness {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	h := &harness{timers: &fakeTimers{}}
	m, err := New(cfg,
		WithGeometry(geometry.NewTerminal(-1)),
		WithDetector(touchDetector(touch)),
		WithScheduler(h.timers.schedule),
		WithClipboard(func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	h.m = m
	h.update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return h
}

func (h *harness) update(msg tea.Msg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

// run executes cmd and feeds the resulting messages back, one level deep.
func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	default:
		h.update(msg)
	}
}

func (h *harness) move(x, y int) {
	h.update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
}

func (h *harness) press(x, y int) tea.Cmd {
	return h.update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) release(x, y int) {
	h.update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func (h *harness) wheel(x, y int, button tea.MouseButton) {
	h.update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button})
}

func (h *harness) key(s string) tea.Cmd {
	switch s {
	case "tab":
		return h.update(tea.KeyMsg{Type: tea.KeyTab})
	case "shift+tab":
		return h.update(tea.KeyMsg{Type: tea.KeyShiftTab})
	case "esc":
		return h.update(tea.KeyMsg{Type: tea.KeyEsc})
	}
	return h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) panel(id string) *menuscroll.Panel {
	return h.m.Registry().MustGet(id)
}

func TestHoverOpensAndLeaveCollapses(t *testing.T) {
	h := newHarness(t, false, nil)
	menu := h.panel("menu")

	h.move(2, 0)
	if !menu.Active() {
		t.Fatal("hovering the trigger should open the menu")
	}
	if menu.MaxOffset() != 20 {
		t.Fatalf("MaxOffset() = %v, want 20", menu.MaxOffset())
	}

	h.move(2, 10)
	if !menu.Active() {
		t.Fatal("moving from the trigger into the panel should keep it open")
	}

	h.move(60, 10)
	if menu.Active() {
		t.Error("leaving the panel should collapse it")
	}
}

func TestClickTogglesTags(t *testing.T) {
	h := newHarness(t, false, nil)
	tags := h.panel("tags")

	h.move(9, 0)
	if tags.Active() {
		t.Fatal("tags opens on click, not hover")
	}
	h.press(9, 0)
	h.release(9, 0)
	if !tags.Active() {
		t.Fatal("clicking the trigger should open tags")
	}
	h.move(60, 15)
	if !tags.Active() {
		t.Fatal("tags should stay open when the pointer leaves")
	}
	h.press(9, 0)
	h.release(9, 0)
	if tags.Active() {
		t.Error("second click should close tags")
	}
}

func TestWheelScrollsOpenPanel(t *testing.T) {
	h := newHarness(t, false, nil)
	menu := h.panel("menu")

	h.wheel(2, 10, tea.MouseButtonWheelDown)
	if menu.Offset() != 0 {
		t.Fatal("wheel over a closed panel should do nothing")
	}

	h.move(2, 0)
	h.move(2, 10)
	h.wheel(2, 10, tea.MouseButtonWheelDown)
	h.wheel(2, 10, tea.MouseButtonWheelDown)
	if menu.Offset() != 2 {
		t.Errorf("Offset() after two notches down = %v, want 2", menu.Offset())
	}
	h.wheel(2, 10, tea.MouseButtonWheelUp)
	if menu.Offset() != 1 {
		t.Errorf("Offset() after a notch up = %v, want 1", menu.Offset())
	}
}

func TestRestingOnIndicatorRepeats(t *testing.T) {
	h := newHarness(t, false, nil)
	menu := h.panel("menu")

	h.move(2, 0)
	h.move(2, 22)
	if !menu.Active() || !menu.Repeating() {
		t.Fatalf("resting on the down indicator should start repeating (active=%v)", menu.Active())
	}

	h.update(h.timers.last())
	h.update(h.timers.last())
	if menu.Offset() != 2 {
		t.Fatalf("Offset() after two ticks = %v, want 2", menu.Offset())
	}

	h.move(2, 10)
	if menu.Repeating() {
		t.Fatal("moving off the indicator should stop repeating")
	}
	h.update(h.timers.last())
	if menu.Offset() != 2 {
		t.Errorf("stale tick moved the panel to %v", menu.Offset())
	}
	if !menu.Active() {
		t.Error("moving within the panel should keep it open")
	}
}

func TestMouseDragSlides(t *testing.T) {
	h := newHarness(t, false, nil)
	menu := h.panel("menu")

	h.move(2, 0)
	h.press(2, 15)
	h.update(tea.MouseMsg{X: 2, Y: 9, Action: tea.MouseActionMotion})
	h.release(2, 9)

	if menu.Offset() != 6 {
		t.Errorf("Offset() after dragging up 6 rows = %v, want 6", menu.Offset())
	}
	if menu.Dragging() || menu.Tracking() {
		t.Error("release should end the drag session")
	}
}

func TestMouseDragEndsOffPanel(t *testing.T) {
	tests := []struct {
		name  string
		steps func(h *harness)
	}{
		{
			name: "released outside",
			steps: func(h *harness) {
				h.update(tea.MouseMsg{X: 60, Y: 9, Action: tea.MouseActionMotion})
			},
		},
		{
			name: "released on indicator",
			steps: func(h *harness) {
				h.update(tea.MouseMsg{X: 2, Y: 22, Action: tea.MouseActionMotion})
				h.release(2, 22)
				h.move(60, 22)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, false, nil)
			menu := h.panel("menu")

			h.move(2, 0)
			h.press(2, 15)
			h.update(tea.MouseMsg{X: 2, Y: 9, Action: tea.MouseActionMotion})
			if !menu.Dragging() {
				t.Fatal("moving 6 rows with the button held should drag")
			}

			tt.steps(h)
			if menu.Dragging() || menu.Tracking() {
				t.Errorf("dragging=%v tracking=%v after the drag ended, want both false", menu.Dragging(), menu.Tracking())
			}
			if menu.Active() {
				t.Error("leaving the panel after the drag should collapse it")
			}
		})
	}
}

func TestResizeCollapsesLastInteracted(t *testing.T) {
	h := newHarness(t, false, nil)
	h.press(9, 0)
	h.release(9, 0)
	tags := h.panel("tags")
	if !tags.Active() {
		t.Fatal("tags should be open")
	}

	h.update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if tags.Active() {
		t.Error("resize should collapse the last interacted panel")
	}
}

func TestFilterGraceWindow(t *testing.T) {
	h := newHarness(t, false, nil)
	menu := h.panel("menu")

	h.move(2, 0)
	h.press(2, 2)
	h.release(2, 2)
	if !menu.TextGrace() {
		t.Fatal("focusing the filter should suppress layout collapse")
	}

	h.update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !menu.Active() {
		t.Fatal("resize while typing should not collapse the menu")
	}

	h.key("1")
	if menu.MaxOffset() != 0 || menu.CanScrollDown() {
		t.Errorf("filtered content should fit, MaxOffset() = %v", menu.MaxOffset())
	}

	h.key("esc")
	if !menu.TextGrace() {
		t.Fatal("grace should last past the blur")
	}
	h.update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !menu.Active() {
		t.Fatal("resize inside the grace window should not collapse")
	}

	h.update(h.timers.last())
	if menu.TextGrace() {
		t.Fatal("grace should expire")
	}
	h.update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if menu.Active() {
		t.Error("resize after the grace window should collapse")
	}
}

func TestKeyboardFocusAndCopy(t *testing.T) {
	h := newHarness(t, false, nil)
	menu, tags := h.panel("menu"), h.panel("tags")

	h.key("tab")
	if !tags.Active() || menu.Active() {
		t.Fatalf("tab should open tags (menu=%v tags=%v)", menu.Active(), tags.Active())
	}
	h.key("shift+tab")
	if tags.Active() || !menu.Active() {
		t.Fatal("shift+tab should move back to the menu")
	}

	h.key("j")
	h.key("j")
	h.run(h.key("y"))
	if len(h.copied) != 1 || h.copied[0] != "Menu 02" {
		t.Fatalf("copied = %v, want [Menu 02]", h.copied)
	}
	if !strings.Contains(h.m.Status(), "Menu 02") {
		t.Errorf("status = %q, want copy confirmation", h.m.Status())
	}

	h.key("G")
	if menu.Offset() != menu.MaxOffset() {
		t.Errorf("G should scroll to the bottom, Offset() = %v", menu.Offset())
	}
	h.key("g")
	h.key("g")
	if menu.Offset() != 0 {
		t.Errorf("g g should scroll to the top, Offset() = %v", menu.Offset())
	}

	for range 30 {
		h.key("j")
	}
	if menu.Offset() == 0 {
		t.Error("moving the selection past the window should scroll")
	}

	h.key("esc")
	if menu.Active() {
		t.Error("esc should close the focused panel")
	}
}

func TestTouchBindings(t *testing.T) {
	h := newHarness(t, true, nil)
	menu := h.panel("menu")
	if menu.Strategy() != menuscroll.StrategyTouchDrag {
		t.Fatalf("Strategy() = %v, want touch", menu.Strategy())
	}

	h.move(2, 0)
	if menu.Active() {
		t.Fatal("touch panels ignore hover")
	}
	h.press(2, 0)
	h.release(2, 0)
	if !menu.Active() {
		t.Fatal("tap on the trigger should open the menu")
	}

	h.press(2, 22)
	h.release(2, 22)
	if menu.Offset() != 1 {
		t.Fatalf("tap on the down indicator should step once, Offset() = %v", menu.Offset())
	}

	h.press(2, 15)
	h.update(tea.MouseMsg{X: 2, Y: 10, Action: tea.MouseActionMotion})
	h.release(2, 10)
	if menu.Offset() != 6 {
		t.Errorf("touch drag Offset() = %v, want 6", menu.Offset())
	}

	h.move(60, 10)
	if !menu.Active() {
		t.Error("touch panels do not collapse on pointer leave")
	}
}

func TestConfigReload(t *testing.T) {
	h := newHarness(t, false, nil)

	next := config.Default()
	next.Panels = []config.PanelConfig{
		{ID: "menu", Title: "Menu", Filter: true, Options: map[string]any{"hideNavScrollDown": true, "menuMoveY": 3}},
		{ID: "extra", Title: "Extra", Items: []string{"x", "y"}},
	}
	h.update(ConfigReloadMsg{Config: next})

	if _, err := h.m.Registry().Get("tags"); !errors.Is(err, menuscroll.ErrMissingInstance) {
		t.Errorf("tags should be unregistered, Get() error = %v", err)
	}
	if _, err := h.m.Registry().Get("extra"); err != nil {
		t.Errorf("extra should be registered: %v", err)
	}
	opts := h.panel("menu").Options()
	if !opts.HideNavScrollDown || opts.MenuMoveY != 3 || opts.Positioning() != menuscroll.PositionTop {
		t.Errorf("menu options after reload = %+v", opts)
	}

	h.update(ConfigReloadMsg{Err: errors.New("boom")})
	if !strings.Contains(h.m.Status(), "boom") {
		t.Errorf("status = %q, want reload error", h.m.Status())
	}
}

func TestNewRejectsBadPanel(t *testing.T) {
	cfg := config.Default()
	cfg.Panels = append(cfg.Panels, config.PanelConfig{ID: "menu"})
	_, err := New(cfg, WithGeometry(geometry.NewTerminal(-1)), WithDetector(touchDetector(false)))
	if !errors.Is(err, menuscroll.ErrDuplicatePanel) {
		t.Errorf("New() error = %v, want ErrDuplicatePanel", err)
	}
}

func TestViewShape(t *testing.T) {
	h := newHarness(t, false, nil)
	h.move(2, 0)
	h.move(2, 10)
	h.wheel(2, 10, tea.MouseButtonWheelDown)

	view := h.m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Fatalf("View() has %d lines, want 24", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 80 {
			t.Errorf("line %d width = %d, want 80", i, w)
		}
	}
	plain := ansi.Strip(view)
	for _, want := range []string{"Menu", "Tags", "scroll up", "scroll down", "Menu 02"} {
		if !strings.Contains(plain, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if !strings.Contains(ansi.Strip(lines[2]), "scroll up") {
		t.Errorf("first panel row = %q, want the up indicator", ansi.Strip(lines[2]))
	}
}

func TestThemeKeySavesChoice(t *testing.T) {
	t.Cleanup(func() { styles.ApplyThemeWithOverrides("default", nil) })
	path := filepath.Join(t.TempDir(), "config.jsonc")

	m, err := New(config.Default(),
		WithGeometry(geometry.NewTerminal(-1)),
		WithDetector(touchDetector(false)),
		WithConfigPath(path),
	)
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{m: m, timers: &fakeTimers{}}
	h.update(tea.WindowSizeMsg{Width: 80, Height: 24})

	h.run(h.key("t"))
	if styles.GetCurrentThemeName() != "dracula" {
		t.Fatalf("theme = %q, want dracula", styles.GetCurrentThemeName())
	}
	saved, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if saved.UI.Theme.Name != "dracula" {
		t.Errorf("saved theme = %q, want dracula", saved.UI.Theme.Name)
	}
}

func TestOverlay(t *testing.T) {
	got := overlay("abcdefgh", 2, "XY")
	if got != "abXYefgh" {
		t.Errorf("overlay() = %q, want abXYefgh", got)
	}
}
