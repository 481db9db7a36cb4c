package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/wilbur182/menuscroll/internal/geometry"
	"github.com/wilbur182/menuscroll/internal/menuscroll"
	"github.com/wilbur182/menuscroll/internal/styles"
	"github.com/wilbur182/menuscroll/internal/ui"
)

// Narrowest a panel is drawn, scrollbar included.
const minPanelWidth = 16

// statusRows is the number of rows reserved below the body.
func (m *Model) statusRows() int {
	if m.cfg.UI.ShowStatus {
		return 1
	}
	return 0
}

func (m *Model) bodyHeight() int {
	return max(m.height-bodyTop-m.statusRows(), 0)
}

// visibleRows is the number of screen rows an open panel occupies.
func (m *Model) visibleRows(pv *panelView) int {
	f := pv.frame
	if f.WrapperHeight > 0 {
		return min(int(f.WrapperHeight), m.bodyHeight())
	}
	return min(len(pv.content()), m.bodyHeight())
}

// layout places triggers and panels, updates the geometry provider and
// rebuilds the mouse hit map.
func (m *Model) layout() {
	m.geo.SetReserved(m.statusRows())
	m.geo.SetContainer(bodyContainer, geometry.Container{Height: m.bodyHeight(), Width: m.width})

	x := 0
	for _, pv := range m.panels {
		pv.triggerX = x
		pv.triggerW = lipgloss.Width(styles.Trigger.Render(pv.cfg.Title))
		x += pv.triggerW + 1

		widest := 0
		for _, line := range pv.content() {
			widest = max(widest, ansi.StringWidth(line))
		}
		pv.width = min(max(widest+1, minPanelWidth), max(m.width, 1))
		pv.x = max(0, min(pv.triggerX, m.width-pv.width))

		top := bodyTop
		if pv.panel.Options().Container != "" {
			top = 0 // measured relative to the body container
		}
		m.geo.Place(pv.id(), top, pv.content)

		if !pv.frame.Active {
			pv.held = false
		}
	}

	m.mouse.Clear()
	hm := m.mouse.HitMap
	for _, pv := range m.panels {
		hm.AddRect("trigger:"+pv.id(), pv.triggerX, 0, pv.triggerW, 1, pv.target(menuscroll.PartTrigger))
	}
	for _, pv := range m.panels {
		if !pv.frame.Active || pv.frame.WrapperHidden {
			continue
		}
		rows := m.visibleRows(pv)
		if rows < 1 {
			continue
		}
		hm.AddRect("panel:"+pv.id(), pv.x, bodyTop, pv.width, rows, pv.target(menuscroll.PartPanel))
		if pv.hasFilter && pv.frame.Offset < 1 {
			hm.AddRect("input:"+pv.id(), pv.x, bodyTop, pv.width, 1, pv.target(menuscroll.PartInput))
		}
		if pv.frame.ScrollUpVisible {
			hm.AddRect("navup:"+pv.id(), pv.x, bodyTop, pv.width, 1, pv.target(menuscroll.PartNavUp))
		}
		if pv.frame.ScrollDownVisible {
			hm.AddRect("navdown:"+pv.id(), pv.x, bodyTop+rows-1, pv.width, 1, pv.target(menuscroll.PartNavDown))
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, ui.FitWidth(m.renderTriggers(), m.width))
	if m.height > 1 {
		lines = append(lines, ui.RenderRule(m.width))
	}

	body := m.renderBackground()
	for _, pv := range m.panels {
		if !pv.frame.Active || pv.frame.WrapperHidden {
			continue
		}
		for i, row := range m.renderPanel(pv) {
			if i < len(body) {
				body[i] = overlay(body[i], pv.x, row)
			}
		}
	}
	lines = append(lines, body...)

	if m.statusRows() > 0 && len(lines) < m.height {
		lines = append(lines, m.renderStatus())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTriggers() string {
	parts := make([]string, 0, len(m.panels))
	for i, pv := range m.panels {
		style := styles.Trigger
		if pv.frame.TriggerActivated {
			style = styles.TriggerActive
		}
		if i == m.focus {
			style = style.Underline(true)
		}
		parts = append(parts, style.Render(pv.cfg.Title))
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderBackground() []string {
	hint := []string{
		"",
		"  Hover a trigger to open its panel; triggers that stay open are toggled by click.",
		"  Scroll with the wheel, drag inside a panel, or rest on an arrow to keep moving.",
	}
	out := make([]string, m.bodyHeight())
	for i := range out {
		text := ""
		if i < len(hint) {
			text = styles.Muted.Render(hint[i])
		}
		out[i] = ui.FitWidth(text, m.width)
	}
	return out
}

// renderPanel draws an open panel: the visible window onto its content, a
// scrollbar column and the indicators over the first and last rows.
func (m *Model) renderPanel(pv *panelView) []string {
	rows := m.visibleRows(pv)
	if rows < 1 {
		return nil
	}
	f := pv.frame
	textW := pv.width
	if m.cfg.UI.ShowScrollbar {
		textW--
	}

	content := pv.content()
	sel := pv.selected + pv.filterRows()
	for i := range content {
		switch {
		case pv.selected >= 0 && i == sel:
			content[i] = styles.ItemSelected.Render(content[i])
		case pv.hasFilter && i == 0:
			// the filter row keeps the text input's own styling
		default:
			content[i] = styles.Item.Render(content[i])
		}
	}

	// Every positioning mode shows the same window onto the content.
	start := f.Offset
	if f.Positioning == menuscroll.PositionTop {
		start = f.RestingTop - f.Top()
	}
	out := ui.Window(content, start, rows, textW)

	if m.cfg.UI.ShowScrollbar {
		bar := strings.Split(ui.RenderScrollbar(ui.ScrollbarParams{
			ContentHeight: pv.panel.ContentHeight(),
			Offset:        f.Offset,
			VisibleHeight: float64(rows),
			TrackHeight:   rows,
		}), "\n")
		for i := range out {
			if i < len(bar) {
				out[i] += bar[i]
			}
		}
	}

	opts := pv.panel.Options()
	if f.ScrollUpVisible {
		out[0] = ui.RenderIndicator(opts.ScrollUpText, pv.width, true, true, pv.held && pv.heldDir == menuscroll.DirectionUp)
	}
	if f.ScrollDownVisible {
		out[rows-1] = ui.RenderIndicator(opts.ScrollDownText, pv.width, false, true, pv.held && pv.heldDir == menuscroll.DirectionDown)
	}
	return out
}

func (m *Model) renderStatus() string {
	var left string
	if m.statusMsg != "" {
		style := styles.StatusBar
		if m.statusIsError {
			style = style.Foreground(styles.Accent)
		}
		left = style.Render(" " + m.statusMsg)
	} else {
		left = styles.StatusBar.Render(" " + strings.Join(m.keys.Help(m.keyContext()), " · "))
	}

	right := ""
	if pv := m.focused(); pv != nil {
		p := pv.panel
		right = fmt.Sprintf("%s %s %s %.0f/%.0f ", pv.cfg.Title, p.Strategy(), p.Options().Positioning(), p.Offset(), p.MaxOffset())
		if m.version != "" {
			right += m.version + " "
		}
	}
	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return ui.FitWidth(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + styles.Muted.Render(right)
}

// overlay draws s over base starting at column x.
func overlay(base string, x int, s string) string {
	w := ansi.StringWidth(s)
	return ansi.Truncate(base, x, "") + s + ansi.TruncateLeft(base, x+w, "")
}
