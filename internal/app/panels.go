package app

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/wilbur182/menuscroll/internal/config"
	"github.com/wilbur182/menuscroll/internal/menuscroll"
)

// generatedItems is the row count of panels configured without items.
const generatedItems = 40

// panelView is the on-screen state of one managed panel.
type panelView struct {
	cfg   config.PanelConfig
	panel *menuscroll.Panel
	frame menuscroll.Frame

	items    []string
	filtered []int // indices into items that match the filter
	selected int   // index into filtered, -1 for none

	hasFilter bool
	filter    textinput.Model

	// Screen placement, recomputed by layout.
	triggerX, triggerW int
	x, width           int

	held    bool // an indicator is being held
	heldDir menuscroll.Direction
}

func newPanelView(pc config.PanelConfig) *panelView {
	pv := &panelView{cfg: pc, selected: -1, hasFilter: pc.Filter}
	pv.items = pc.Items
	if len(pv.items) == 0 {
		pv.items = make([]string, generatedItems)
		for i := range pv.items {
			pv.items[i] = fmt.Sprintf("%s %02d", pc.Title, i+1)
		}
	}
	if pv.hasFilter {
		ti := textinput.New()
		ti.Placeholder = "filter…"
		ti.Prompt = "/ "
		ti.CharLimit = 40
		pv.filter = ti
	}
	pv.refilter()
	return pv
}

func (pv *panelView) id() string { return pv.cfg.ID }

// filterRows is the number of content rows above the first item.
func (pv *panelView) filterRows() int {
	if pv.hasFilter {
		return 1
	}
	return 0
}

// refilter recomputes the visible items with a case-insensitive substring
// match, keeping the selection on the same item when it survives.
func (pv *panelView) refilter() {
	prev := pv.selectedItem()
	q := ""
	if pv.hasFilter {
		q = strings.ToLower(strings.TrimSpace(pv.filter.Value()))
	}
	pv.filtered = pv.filtered[:0]
	for i, item := range pv.items {
		if q == "" || strings.Contains(strings.ToLower(item), q) {
			pv.filtered = append(pv.filtered, i)
		}
	}
	pv.selected = -1
	if prev >= 0 {
		pv.selected = slices.Index(pv.filtered, prev)
	}
}

// selectedItem returns the index into items of the selection, or -1.
func (pv *panelView) selectedItem() int {
	if pv.selected < 0 || pv.selected >= len(pv.filtered) {
		return -1
	}
	return pv.filtered[pv.selected]
}

// content returns the panel's rows as plain text. It is what the geometry
// provider measures.
func (pv *panelView) content() []string {
	lines := make([]string, 0, pv.filterRows()+len(pv.filtered))
	if pv.hasFilter {
		lines = append(lines, pv.filter.View())
	}
	for _, i := range pv.filtered {
		lines = append(lines, " "+pv.items[i]+" ")
	}
	return lines
}

// contentRow maps a screen row inside the panel to a content row.
func (pv *panelView) contentRow(screenY int) int {
	return int(pv.frame.Offset) + screenY - bodyTop
}

// itemAt returns the filtered index shown at screen row y, or -1.
func (pv *panelView) itemAt(y int) int {
	idx := pv.contentRow(y) - pv.filterRows()
	if idx < 0 || idx >= len(pv.filtered) {
		return -1
	}
	return idx
}

// target builds the router target for a part of this panel.
func (pv *panelView) target(part menuscroll.Part) menuscroll.Target {
	return menuscroll.Target{Panel: pv.id(), Part: part}
}

// optionValues lists every option by name, for applying a reloaded config
// as one batch.
func optionValues(o menuscroll.Options) map[string]any {
	out := make(map[string]any)
	for _, name := range menuscroll.OptionNames() {
		if v, err := o.Get(name); err == nil {
			out[name] = v
		}
	}
	return out
}

// addPanel registers a configured panel.
func (m *Model) addPanel(pc config.PanelConfig) error {
	if _, dup := m.byID[pc.ID]; dup {
		return fmt.Errorf("panel %q: %w", pc.ID, menuscroll.ErrDuplicatePanel)
	}
	opts, err := pc.ResolveOptions()
	if err != nil {
		return fmt.Errorf("panel %q: %w", pc.ID, err)
	}
	pv := newPanelView(pc)
	m.byID[pc.ID] = pv
	p, err := m.reg.Register(pc.ID, opts, m)
	if err != nil {
		delete(m.byID, pc.ID)
		return err
	}
	pv.panel = p
	m.panels = append(m.panels, pv)
	m.geo.Place(pc.ID, 0, pv.content)
	return nil
}

// removePanel unregisters a panel and drops it from the screen.
func (m *Model) removePanel(id string) error {
	if err := m.reg.Unregister(id); err != nil {
		return err
	}
	delete(m.byID, id)
	m.geo.Remove(id)
	m.panels = slices.DeleteFunc(m.panels, func(pv *panelView) bool { return pv.id() == id })
	return nil
}

// applyConfig brings the running panels in line with a reloaded config.
// Existing panels get their options updated in place; panels that were
// added or removed are registered or unregistered.
func (m *Model) applyConfig(cfg *config.Config) error {
	want := make(map[string]bool, len(cfg.Panels))
	for _, pc := range cfg.Panels {
		want[pc.ID] = true
	}
	for _, pv := range slices.Clone(m.panels) {
		if !want[pv.id()] {
			if err := m.removePanel(pv.id()); err != nil {
				return err
			}
		}
	}

	for _, pc := range cfg.Panels {
		pv, ok := m.byID[pc.ID]
		if !ok {
			if err := m.addPanel(pc); err != nil {
				return err
			}
			continue
		}
		opts, err := pc.ResolveOptions()
		if err != nil {
			return fmt.Errorf("panel %q: %w", pc.ID, err)
		}
		if !slices.Equal(pc.Items, pv.cfg.Items) || pc.Title != pv.cfg.Title || pc.Filter != pv.cfg.Filter {
			fresh := newPanelView(pc)
			fresh.panel, fresh.frame = pv.panel, pv.frame
			m.byID[pc.ID] = fresh
			m.panels[slices.Index(m.panels, pv)] = fresh
			m.geo.Place(pc.ID, 0, fresh.content)
		}
		if err := m.reg.SetOptions(pc.ID, optionValues(opts)); err != nil {
			return err
		}
	}

	m.cfg = cfg
	m.applyKeymapOverrides()
	return nil
}
