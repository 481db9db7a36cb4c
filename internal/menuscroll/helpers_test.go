package menuscroll

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/menuscroll/internal/geometry"
)

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// scheduled records timers instead of running them. The returned command
// yields the message immediately.
type scheduled struct {
	msgs   []tea.Msg
	delays []time.Duration
}

func (s *scheduled) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	s.msgs = append(s.msgs, msg)
	s.delays = append(s.delays, d)
	return func() tea.Msg { return msg }
}

func (s *scheduled) last() tea.Msg {
	if len(s.msgs) == 0 {
		return nil
	}
	return s.msgs[len(s.msgs)-1]
}

type surfaceRecorder struct {
	frames map[string][]Frame
}

func (s *surfaceRecorder) Render(id string, f Frame) {
	if s.frames == nil {
		s.frames = make(map[string][]Frame)
	}
	s.frames[id] = append(s.frames[id], f)
}

func (s *surfaceRecorder) last(id string) Frame {
	fs := s.frames[id]
	if len(fs) == 0 {
		return Frame{}
	}
	return fs[len(fs)-1]
}

type touchDetector bool

func (d touchDetector) TouchCapable() bool { return bool(d) }

type fixture struct {
	reg     *Registry
	router  *Router
	geo     *geometry.Static
	clock   *fakeClock
	timers  *scheduled
	surface *surfaceRecorder
}

func newFixture(t *testing.T, touch bool) *fixture {
	t.Helper()
	f := &fixture{
		geo:     geometry.NewStatic(geometry.Measurement{}),
		clock:   newFakeClock(),
		timers:  &scheduled{},
		surface: &surfaceRecorder{},
	}
	f.reg = NewRegistry(f.geo,
		WithClock(f.clock.Now),
		WithScheduler(f.timers.schedule),
		WithDetector(touchDetector(touch)),
	)
	f.router = NewRouter(f.reg)
	return f
}

// add registers a panel whose content is contentHeight tall inside a
// viewport that shows visibleHeight of it.
func (f *fixture) add(t *testing.T, id string, contentHeight, visibleHeight float64, opts Options) *Panel {
	t.Helper()
	f.geo.Set(id, geometry.Measurement{
		ViewportHeight: visibleHeight,
		ViewportWidth:  40,
		ContentHeight:  contentHeight,
		ContentWidth:   30,
	})
	p, err := f.reg.Register(id, opts, f.surface)
	if err != nil {
		t.Fatalf("Register(%q) error: %v", id, err)
	}
	return p
}

func checkIndicators(t *testing.T, p *Panel) {
	t.Helper()
	limit := p.MaxOffset()
	wantUp := limit > 0 && p.Offset() > 0
	wantDown := limit > 0 && p.Offset() < limit
	if p.CanScrollUp() != wantUp || p.CanScrollDown() != wantDown {
		t.Errorf("indicators at offset %v (max %v) = up:%v down:%v, want up:%v down:%v",
			p.Offset(), limit, p.CanScrollUp(), p.CanScrollDown(), wantUp, wantDown)
	}
}

type geometryMeasurement = geometry.Measurement
