package app

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/menuscroll/internal/config"
	"github.com/wilbur182/menuscroll/internal/features"
	"github.com/wilbur182/menuscroll/internal/keymap"
	"github.com/wilbur182/menuscroll/internal/menuscroll"
	"github.com/wilbur182/menuscroll/internal/mouse"
	"github.com/wilbur182/menuscroll/internal/styles"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.geo.SetWindowSize(msg.Width, msg.Height)
		m.layout()
		cmds = append(cmds, m.router.Update(menuscroll.LayoutChangedMsg{}))

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case ConfigReloadMsg:
		m.handleReload(msg)

	case ToastMsg:
		m.toast(msg.Message, msg.IsError)

	case copiedMsg:
		if msg.err != nil {
			m.toast(fmt.Sprintf("copy failed: %v", msg.err), true)
		} else {
			m.toast(fmt.Sprintf("copied %q", msg.text), false)
		}

	default:
		// Panel timers, then cursor blink for a focused filter.
		cmds = append(cmds, m.router.Update(msg))
		if pv := m.editing(); pv != nil {
			var cmd tea.Cmd
			pv.filter, cmd = pv.filter.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.layout()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleReload(msg ConfigReloadMsg) {
	if msg.Err != nil {
		m.toast(fmt.Sprintf("config reload failed: %v", msg.Err), true)
		return
	}
	features.Reconfigure(msg.Config)
	if err := m.applyConfig(msg.Config); err != nil {
		m.toast(fmt.Sprintf("config reload failed: %v", err), true)
		return
	}
	m.applyTheme(msg.Config.UI.Theme.Name)
	m.toast("config reloaded", false)
}

// editing returns the panel whose filter has keyboard focus.
func (m *Model) editing() *panelView {
	for _, pv := range m.panels {
		if pv.hasFilter && pv.filter.Focused() {
			return pv
		}
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if pv := m.editing(); pv != nil {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			return m.blurFilter(pv)
		case tea.KeyCtrlC:
			return tea.Quit
		}
		before := pv.filter.Value()
		var cmd tea.Cmd
		pv.filter, cmd = pv.filter.Update(msg)
		if pv.filter.Value() != before {
			pv.refilter()
			pv.panel.Reposition()
		}
		return cmd
	}

	cmd, _ := m.keys.Handle(msg, m.keyContext())
	return cmd
}

func (m *Model) focusFilter(pv *panelView) tea.Cmd {
	if !pv.hasFilter || pv.filter.Focused() {
		return nil
	}
	cmd := pv.filter.Focus()
	m.router.Update(menuscroll.InputFocusMsg{Panel: pv.id()})
	return cmd
}

func (m *Model) blurFilter(pv *panelView) tea.Cmd {
	if !pv.hasFilter || !pv.filter.Focused() {
		return nil
	}
	pv.filter.Blur()
	return m.router.Update(menuscroll.InputBlurMsg{Panel: pv.id()})
}

// registerCommands binds keymap command IDs to model actions.
func (m *Model) registerCommands() {
	withPanel := func(fn func(pv *panelView) tea.Cmd) func() tea.Cmd {
		return func() tea.Cmd {
			pv := m.focused()
			if pv == nil {
				return nil
			}
			return fn(pv)
		}
	}

	commands := []keymap.Command{
		{ID: keymap.CmdQuit, Name: "quit", Handler: func() tea.Cmd { return tea.Quit }},
		{ID: keymap.CmdNextPanel, Name: "next panel", Handler: func() tea.Cmd { return m.cycleFocus(1) }},
		{ID: keymap.CmdPrevPanel, Name: "prev panel", Handler: func() tea.Cmd { return m.cycleFocus(-1) }},
		{ID: keymap.CmdNextTheme, Name: "theme", Handler: m.nextTheme},
		{ID: keymap.CmdClosePanel, Name: "close", Handler: withPanel(func(pv *panelView) tea.Cmd {
			_ = m.reg.Hide(pv.id())
			return nil
		})},
		{ID: keymap.CmdScrollUp, Name: "scroll up", Handler: withPanel(func(pv *panelView) tea.Cmd {
			pv.panel.MoveUp()
			return nil
		})},
		{ID: keymap.CmdScrollDown, Name: "scroll down", Handler: withPanel(func(pv *panelView) tea.Cmd {
			pv.panel.MoveDown()
			return nil
		})},
		{ID: keymap.CmdScrollTop, Name: "top", Handler: withPanel(func(pv *panelView) tea.Cmd {
			pv.panel.SetOffset(0)
			return nil
		})},
		{ID: keymap.CmdScrollBottom, Name: "bottom", Handler: withPanel(func(pv *panelView) tea.Cmd {
			pv.panel.SetOffset(pv.panel.MaxOffset())
			return nil
		})},
		{ID: keymap.CmdSelectPrev, Name: "prev", Handler: withPanel(func(pv *panelView) tea.Cmd {
			m.moveSelection(pv, -1)
			return nil
		})},
		{ID: keymap.CmdSelectNext, Name: "next", Handler: withPanel(func(pv *panelView) tea.Cmd {
			m.moveSelection(pv, 1)
			return nil
		})},
		{ID: keymap.CmdCopyItem, Name: "copy", Handler: withPanel(m.copySelection)},
		{ID: keymap.CmdFocusFilter, Name: "filter", Handler: withPanel(m.focusFilter)},
	}
	for _, c := range commands {
		m.keys.RegisterCommand(c)
	}
}

// cycleFocus moves keyboard focus to the next panel and opens it, closing
// the one it came from.
func (m *Model) cycleFocus(delta int) tea.Cmd {
	if len(m.panels) == 0 {
		return nil
	}
	prev := m.focused()
	m.focus = (m.focus + delta + len(m.panels)) % len(m.panels)
	next := m.focused()
	if prev != next {
		_ = m.reg.Hide(prev.id())
	}
	_ = m.reg.Show(next.id())
	return nil
}

// nextTheme applies the next theme and saves the choice when a config file
// is known. The watcher then reloads the saved file.
func (m *Model) nextTheme() tea.Cmd {
	names := styles.ListThemes()
	i := slices.Index(names, styles.GetCurrentThemeName())
	name := names[(i+1)%len(names)]
	m.applyTheme(name)
	m.toast("theme: "+name, false)

	if m.configPath == "" {
		return nil
	}
	path := m.configPath
	return func() tea.Msg {
		if err := config.SaveThemeTo(path, name); err != nil {
			return ToastMsg{Message: fmt.Sprintf("saving theme: %v", err), IsError: true}
		}
		return nil
	}
}

// moveSelection moves the selection and scrolls it into view.
func (m *Model) moveSelection(pv *panelView, delta int) {
	if len(pv.filtered) == 0 {
		return
	}
	if pv.selected < 0 {
		pv.selected = 0
	} else {
		pv.selected = min(max(pv.selected+delta, 0), len(pv.filtered)-1)
	}
	m.scrollIntoView(pv)
}

func (m *Model) scrollIntoView(pv *panelView) {
	p := pv.panel
	if !p.Active() {
		return
	}
	row := float64(pv.selected + pv.filterRows())
	visible := p.VisibleHeight()
	switch {
	case row < p.Offset():
		p.SetOffset(row)
	case visible > 0 && row > p.Offset()+visible-1:
		p.SetOffset(row - visible + 1)
	}
}

func (m *Model) copySelection(pv *panelView) tea.Cmd {
	i := pv.selectedItem()
	if i < 0 {
		return nil
	}
	if !features.IsEnabled(features.ClipboardCopy.Name) {
		m.toast("clipboard copy is disabled", false)
		return nil
	}
	text := pv.items[i]
	write := m.copy
	return func() tea.Msg {
		return copiedMsg{text: text, err: write(text)}
	}
}

// targetOf converts a hit region into a router target.
func targetOf(r *mouse.Region) menuscroll.Target {
	if r == nil {
		return menuscroll.Target{}
	}
	if t, ok := r.Data.(menuscroll.Target); ok {
		return t
	}
	return menuscroll.Target{}
}

func pointerFor(p *menuscroll.Panel) menuscroll.PointerKind {
	if p.Strategy() == menuscroll.StrategyTouchDrag {
		return menuscroll.PointerTouch
	}
	return menuscroll.PointerMouse
}

func navDir(part menuscroll.Part) menuscroll.Direction {
	if part == menuscroll.PartNavUp {
		return menuscroll.DirectionUp
	}
	return menuscroll.DirectionDown
}

func isNav(part menuscroll.Part) bool {
	return part == menuscroll.PartNavUp || part == menuscroll.PartNavDown
}

// handleMouse translates hit-tested mouse actions into panel messages.
// Touch-bound panels treat the pointer as a finger: no hover, presses on the
// trigger are taps and presses on an indicator use tap detection.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, a := range m.mouse.HandleMouse(msg) {
		cmds = append(cmds, m.mouseAction(a))
		// Regions move as panels open and scroll.
		m.layout()
	}
	return tea.Batch(cmds...)
}

func (m *Model) mouseAction(a mouse.MouseAction) tea.Cmd {
	t := targetOf(a.Region)
	pv, ok := m.byID[t.Panel]

	switch a.Type {
	case mouse.ActionEnter:
		if !ok || pv.panel.Strategy() != menuscroll.StrategyWheelDrag {
			return nil
		}
		switch {
		case t.Part == menuscroll.PartTrigger:
			return m.router.Update(menuscroll.TriggerEnterMsg{Panel: t.Panel})
		case isNav(t.Part):
			pv.held, pv.heldDir = true, navDir(t.Part)
			return m.router.Update(menuscroll.NavEnterMsg{Panel: t.Panel, Dir: navDir(t.Part)})
		}

	case mouse.ActionLeave:
		if !ok {
			return nil
		}
		related := targetOf(a.Related)
		if isNav(t.Part) && pv.panel.Strategy() == menuscroll.StrategyWheelDrag {
			pv.held = false
			m.router.Update(menuscroll.NavLeaveMsg{Panel: t.Panel})
		}
		// Leaving with the button held is a release outside, delivered
		// before the trigger leave. A panel dragged out of therefore
		// collapses on that leave instead of staying open.
		if m.mouse.Pressed() && t.Part != menuscroll.PartTrigger && pointerFor(pv.panel) == menuscroll.PointerMouse {
			m.router.Update(menuscroll.PointerUpMsg{Panel: t.Panel, Pointer: menuscroll.PointerMouse, Related: related})
		}
		return m.router.Update(menuscroll.TriggerLeaveMsg{Panel: t.Panel, Related: related})

	case mouse.ActionPress:
		return m.press(a, t, pv)

	case mouse.ActionDrag:
		if ok {
			return m.router.Update(menuscroll.PointerMoveMsg{Panel: t.Panel, Y: float64(a.Y)})
		}

	case mouse.ActionRelease:
		if !ok {
			return nil
		}
		if isNav(t.Part) && pv.panel.Strategy() == menuscroll.StrategyTouchDrag {
			pv.held = false
			return m.router.Update(menuscroll.NavReleaseMsg{Panel: t.Panel})
		}
		return m.router.Update(menuscroll.PointerUpMsg{Panel: t.Panel, Pointer: pointerFor(pv.panel)})

	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		if ok && t.Part != menuscroll.PartTrigger {
			return m.router.Update(menuscroll.WheelMsg{Panel: t.Panel, DeltaY: float64(a.Delta)})
		}
	}
	return nil
}

func (m *Model) press(a mouse.MouseAction, t menuscroll.Target, pv *panelView) tea.Cmd {
	var cmds []tea.Cmd

	// Pressing anywhere outside a focused filter blurs it.
	if ed := m.editing(); ed != nil && (ed != pv || t.Part != menuscroll.PartInput) {
		cmds = append(cmds, m.blurFilter(ed))
	}
	if pv == nil {
		return tea.Batch(cmds...)
	}
	m.focus = slices.Index(m.panels, pv)
	touch := pv.panel.Strategy() == menuscroll.StrategyTouchDrag

	switch {
	case t.Part == menuscroll.PartTrigger && touch:
		cmds = append(cmds, m.router.Update(menuscroll.TriggerTapMsg{Panel: t.Panel}))

	case t.Part == menuscroll.PartTrigger:
		cmds = append(cmds, m.router.Update(menuscroll.TriggerClickMsg{Panel: t.Panel}))

	case isNav(t.Part) && touch:
		pv.held, pv.heldDir = true, navDir(t.Part)
		cmds = append(cmds, m.router.Update(menuscroll.NavPressMsg{Panel: t.Panel, Dir: navDir(t.Part)}))

	case t.Part == menuscroll.PartInput:
		cmds = append(cmds, m.focusFilter(pv))

	case t.Part == menuscroll.PartPanel:
		if idx := pv.itemAt(a.Y); idx >= 0 {
			pv.selected = idx
			if a.Double {
				cmds = append(cmds, m.copySelection(pv))
			}
		}
		cmds = append(cmds, m.router.Update(menuscroll.PointerDownMsg{
			Panel:   t.Panel,
			Y:       float64(a.Y),
			Pointer: pointerFor(pv.panel),
		}))
	}
	return tea.Batch(cmds...)
}
