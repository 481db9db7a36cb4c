package menuscroll

import (
	"math"
	"math/rand"
	"testing"
)

func TestSetOffsetClamp(t *testing.T) {
	f := newFixture(t, false)
	p := f.add(t, "menu", 500, 200, DefaultOptions())
	p.Activate()

	tests := []struct {
		name    string
		request float64
		want    float64
	}{
		{"negative", -10, 0},
		{"zero", 0, 0},
		{"inside", 150, 150},
		{"at max", 300, 300},
		{"past max", 450, 300},
		{"back inside", 120, 120},
		{"nan keeps previous", math.NaN(), 120},
		{"inf keeps previous", math.Inf(1), 120},
		{"negative inf keeps previous", math.Inf(-1), 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.SetOffset(tt.request); got != tt.want {
				t.Errorf("SetOffset(%v) = %v, want %v", tt.request, got, tt.want)
			}
			if p.Offset() != tt.want {
				t.Errorf("Offset() = %v, want %v", p.Offset(), tt.want)
			}
			checkIndicators(t, p)
		})
	}
}

func TestSetOffsetAlwaysClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	geometries := []struct{ content, visible float64 }{
		{500, 200},
		{150, 200},
		{200, 200},
		{0, 200},
		{500, 0},
		{201, 200},
	}
	for _, g := range geometries {
		f := newFixture(t, false)
		p := f.add(t, "menu", g.content, g.visible, DefaultOptions())
		p.Activate()
		limit := max(g.content-g.visible, 0)
		if g.content <= 0 || g.visible <= 0 {
			limit = 0
		}
		for range 500 {
			r := (rng.Float64() - 0.3) * 1000
			got := p.SetOffset(r)
			if got < 0 || got > limit {
				t.Fatalf("content=%v visible=%v: SetOffset(%v) = %v, outside [0, %v]",
					g.content, g.visible, r, got, limit)
			}
			checkIndicators(t, p)
		}
	}
}

func TestDegenerateContent(t *testing.T) {
	f := newFixture(t, false)
	p := f.add(t, "menu", 150, 200, DefaultOptions())
	p.Activate()

	for _, r := range []float64{-50, 0, 25, 400} {
		if got := p.SetOffset(r); got != 0 {
			t.Errorf("SetOffset(%v) = %v, want 0", r, got)
		}
		if p.CanScrollUp() || p.CanScrollDown() {
			t.Errorf("SetOffset(%v): indicators up:%v down:%v, want both false", r, p.CanScrollUp(), p.CanScrollDown())
		}
	}
	frame := f.surface.last("menu")
	if frame.ScrollUpVisible || frame.ScrollDownVisible {
		t.Errorf("frame indicators = %v/%v, want hidden", frame.ScrollUpVisible, frame.ScrollDownVisible)
	}
}

func TestInvalidGeometryTreatedAsVisible(t *testing.T) {
	f := newFixture(t, false)
	p := f.add(t, "menu", 0, 0, DefaultOptions())
	p.Activate()

	if !p.Active() {
		t.Fatal("panel should still activate with degenerate geometry")
	}
	if got := p.SetOffset(40); got != 0 {
		t.Errorf("SetOffset(40) = %v, want 0", got)
	}
	if p.MoveDown() != 0 {
		t.Errorf("MoveDown() moved a panel without geometry")
	}
}

func TestMoveBySnapsToBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		dir   Direction
		want  float64
	}{
		{"up full step", 100, DirectionUp, 85},
		{"up exactly one step", 15, DirectionUp, 0},
		{"up snaps to zero", 10, DirectionUp, 0},
		{"up at zero", 0, DirectionUp, 0},
		{"down full step", 100, DirectionDown, 115},
		{"down exactly one step left", 285, DirectionDown, 300},
		{"down snaps to max", 290, DirectionDown, 300},
		{"down at max", 300, DirectionDown, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			p := f.add(t, "menu", 500, 200, DefaultOptions())
			p.Activate()
			p.SetOffset(tt.start)

			if got := p.MoveBy(15, tt.dir); got != tt.want {
				t.Errorf("MoveBy(15, %v) from %v = %v, want %v", tt.dir, tt.start, got, tt.want)
			}
			checkIndicators(t, p)
		})
	}
}

func TestMoveByFractionalRemainder(t *testing.T) {
	f := newFixture(t, false)
	p := f.add(t, "menu", 500, 200, DefaultOptions())
	p.Activate()
	p.SetOffset(7.5)

	if got := p.MoveUp(); got != 0 {
		t.Errorf("MoveUp() from 7.5 = %v, want exactly 0", got)
	}
	p.SetOffset(292.25)
	if got := p.MoveDown(); got != 300 {
		t.Errorf("MoveDown() from 292.25 = %v, want exactly 300", got)
	}
}

func TestStepNearBoundaryFromStaleOffset(t *testing.T) {
	// An offset left past the maximum (content shrank) is stepped first and
	// then clamped into range.
	if got := stepTarget(490, 300, 15, DirectionUp); got != 475 {
		t.Errorf("stepTarget(490, up) = %v, want 475", got)
	}

	f := newFixture(t, false)
	p := f.add(t, "menu", 500, 200, DefaultOptions())
	p.Activate()
	p.offset = 490

	if got := p.MoveUp(); got != 300 {
		t.Errorf("MoveUp() from stale 490 = %v, want 300", got)
	}
	checkIndicators(t, p)

	p.offset = 490
	if got := p.MoveDown(); got != 300 {
		t.Errorf("MoveDown() from stale 490 = %v, want 300", got)
	}
}

func TestMoveByIgnoresBadStep(t *testing.T) {
	f := newFixture(t, false)
	p := f.add(t, "menu", 500, 200, DefaultOptions())
	p.Activate()
	p.SetOffset(50)

	for _, step := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if got := p.MoveBy(step, DirectionDown); got != 50 {
			t.Errorf("MoveBy(%v) = %v, want 50", step, got)
		}
	}
}

func TestRepositionAfterContentShrinks(t *testing.T) {
	f := newFixture(t, false)
	p := f.add(t, "menu", 500, 200, DefaultOptions())
	p.Activate()
	p.SetOffset(300)

	f.geo.Update("menu", func(m *geometryMeasurement) { m.ContentHeight = 260 })
	if got := p.Reposition(); got != 60 {
		t.Errorf("Reposition() = %v, want 60", got)
	}
	checkIndicators(t, p)
}

func TestFrameIndicatorsFollowOptions(t *testing.T) {
	f := newFixture(t, false)
	opts := DefaultOptions()
	opts.HideNavScrollDown = true
	p := f.add(t, "menu", 500, 200, opts)
	p.Activate()
	p.SetOffset(100)

	frame := f.surface.last("menu")
	if !frame.ScrollUpVisible {
		t.Error("scroll up indicator should be visible at offset 100")
	}
	if frame.ScrollDownVisible {
		t.Error("scroll down indicator should be suppressed by hideNavScrollDown")
	}
	if !p.CanScrollDown() {
		t.Error("CanScrollDown() should still report true when the indicator is suppressed")
	}
}

func TestFrameTopPositioning(t *testing.T) {
	f := newFixture(t, false)
	f.geo.Set("menu", geometryMeasurement{ViewportHeight: 20, PanelTop: 4, ContentHeight: 40})
	p, err := f.reg.Register("menu", DefaultOptions(), f.surface)
	if err != nil {
		t.Fatal(err)
	}
	p.Activate()
	p.SetOffset(6)

	frame := f.surface.last("menu")
	if frame.Positioning != PositionTop {
		t.Errorf("Positioning = %v, want top", frame.Positioning)
	}
	if frame.Top() != -2 {
		t.Errorf("Top() = %v, want -2", frame.Top())
	}
	if frame.WrapperHeight != 16 {
		t.Errorf("WrapperHeight = %v, want 16", frame.WrapperHeight)
	}
}
