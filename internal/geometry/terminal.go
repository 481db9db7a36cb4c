package geometry

import (
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Fallback window size used when the terminal cannot be queried.
const (
	defaultTermWidth  = 80
	defaultTermHeight = 24
)

// ContentFunc returns the panel's content, one string per terminal row.
type ContentFunc func() []string

// Container is an alternate measurement context: a fixed-size region of the
// screen with its own scroll position.
type Container struct {
	Height    int
	Width     int
	ScrollTop int
}

type placement struct {
	top     int
	content ContentFunc
}

// Terminal measures panels laid out in a terminal window. The window size is
// queried once at construction and then kept current by the host from
// tea.WindowSizeMsg.
type Terminal struct {
	mu         sync.RWMutex
	width      int
	height     int
	reserved   int // rows at the bottom of the window panels may not use
	panels     map[string]placement
	containers map[string]Container
}

// NewTerminal creates a Terminal provider sized from the given file
// descriptor, falling back to 80x24 when it is not a terminal.
func NewTerminal(fd int) *Terminal {
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		w, h = defaultTermWidth, defaultTermHeight
	}
	return &Terminal{
		width:      w,
		height:     h,
		panels:     make(map[string]placement),
		containers: make(map[string]Container),
	}
}

// SetWindowSize records a new window size.
func (t *Terminal) SetWindowSize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width = width
	t.height = height
}

// WindowSize returns the last known window size.
func (t *Terminal) WindowSize() (width, height int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.width, t.height
}

// SetReserved excludes rows at the bottom of the window (footers, status
// lines) from the viewport.
func (t *Terminal) SetReserved(rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reserved = max(rows, 0)
}

// Place records where a panel starts and how to read its content.
func (t *Terminal) Place(panelID string, top int, content ContentFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.panels[panelID] = placement{top: top, content: content}
}

// Remove forgets a panel.
func (t *Terminal) Remove(panelID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.panels, panelID)
}

// SetContainer defines or replaces a named measurement context.
func (t *Terminal) SetContainer(name string, c Container) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.containers[name] = c
}

// Measure implements Provider.
func (t *Terminal) Measure(panelID, container string) Measurement {
	t.mu.RLock()
	p, ok := t.panels[panelID]
	m := Measurement{
		ViewportHeight: float64(t.height - t.reserved),
		ViewportWidth:  float64(t.width),
	}
	if c, found := t.containers[container]; container != "" && found {
		m.ViewportHeight = float64(c.Height)
		m.ViewportWidth = float64(c.Width)
		m.ScrollTop = float64(c.ScrollTop)
	}
	t.mu.RUnlock()

	if !ok {
		return m
	}
	m.PanelTop = float64(p.top)
	if p.content != nil {
		lines := p.content()
		m.ContentHeight = float64(len(lines))
		m.ContentWidth = float64(maxLineWidth(lines))
	}
	return m
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(ansi.Strip(line)); w > widest {
			widest = w
		}
	}
	return widest
}
