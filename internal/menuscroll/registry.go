package menuscroll

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/wilbur182/menuscroll/internal/geometry"
)

var (
	// ErrMissingInstance is returned for operations on an unregistered panel.
	ErrMissingInstance = errors.New("missing panel instance")
	// ErrDuplicatePanel is returned when an ID is registered twice.
	ErrDuplicatePanel = errors.New("panel already registered")
	// ErrEmptyID is returned when a panel is registered without an ID.
	ErrEmptyID = errors.New("panel id must not be empty")
)

// CapabilityDetector reports whether the input device is touch capable.
type CapabilityDetector interface {
	TouchCapable() bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// WithClock replaces time.Now for drag sampling.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// WithScheduler replaces tea.Tick for timers.
func WithScheduler(s Scheduler) RegistryOption {
	return func(r *Registry) { r.schedule = s }
}

// WithDetector sets the capability detector consulted at registration.
func WithDetector(d CapabilityDetector) RegistryOption {
	return func(r *Registry) { r.detector = d }
}

// Registry owns every managed panel, keyed by a stable ID.
type Registry struct {
	panels   map[string]*Panel
	order    []string
	last     string // most recently interacted panel; a lookup key only
	geo      geometry.Provider
	detector CapabilityDetector
	logger   *slog.Logger
	now      func() time.Time
	schedule Scheduler
}

// NewRegistry creates an empty registry measuring panels through geo.
func NewRegistry(geo geometry.Provider, opts ...RegistryOption) *Registry {
	r := &Registry{
		panels:   make(map[string]*Panel),
		geo:      geo,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		schedule: TickScheduler,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register starts managing a panel. The input strategy is fixed here from
// the capability detector. The panel starts collapsed; geometry is read on
// first activation.
func (r *Registry) Register(id string, opts Options, surface Surface) (*Panel, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if _, ok := r.panels[id]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicatePanel, id)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("panel %q: %w", id, err)
	}

	strategy := StrategyWheelDrag
	if r.detector != nil && r.detector.TouchCapable() {
		strategy = StrategyTouchDrag
	}

	p := &Panel{
		id:            id,
		opts:          opts,
		strategy:      strategy,
		surface:       surface,
		geo:           r.geo,
		reg:           r,
		logger:        r.logger,
		wrapperHidden: !opts.DisableHideWrapper,
	}
	r.panels[id] = p
	r.order = append(r.order, id)
	if r.last == "" {
		r.last = id
	}

	r.logger.Debug("panel registered", "id", id, "strategy", strategy, "positioning", opts.Positioning())
	p.render()
	return p, nil
}

// Unregister stops managing a panel, cancelling its timers and drag session.
func (r *Registry) Unregister(id string) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	p.cancelTasks()
	p.stopTracking()
	p.reg = nil

	delete(r.panels, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	if r.last == id {
		r.last = ""
	}
	r.logger.Debug("panel unregistered", "id", id)
	return nil
}

// Get returns a registered panel.
func (r *Registry) Get(id string) (*Panel, error) {
	p, ok := r.panels[id]
	if !ok {
		r.logger.Debug("missing panel instance", "id", id)
		return nil, fmt.Errorf("%w: %q", ErrMissingInstance, id)
	}
	return p, nil
}

// MustGet is Get for callers that treat an unknown ID as a programming error.
func (r *Registry) MustGet(id string) *Panel {
	p, err := r.Get(id)
	if err != nil {
		panic(err)
	}
	return p
}

// Panels returns all panels in registration order.
func (r *Registry) Panels() []*Panel {
	out := make([]*Panel, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.panels[id])
	}
	return out
}

// LastInteracted returns the most recently interacted panel, if any.
func (r *Registry) LastInteracted() (*Panel, bool) {
	p, ok := r.panels[r.last]
	return p, ok
}

// Option reads a live option. The special names "defaults" and "all"
// return DefaultOptions and a copy of the panel's options.
func (r *Registry) Option(id, name string) (any, error) {
	if name == "defaults" {
		return DefaultOptions(), nil
	}
	p, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if name == "all" {
		return p.opts, nil
	}
	return p.opts.Get(name)
}

// SetOption updates a single live option.
func (r *Registry) SetOption(id, name string, value any) error {
	return r.SetOptions(id, map[string]any{name: value})
}

// SetOptions updates several live options at once. Either all values are
// applied or none are.
func (r *Registry) SetOptions(id string, values map[string]any) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	next, err := p.opts.With(values)
	if err != nil {
		return fmt.Errorf("panel %q: %w", id, err)
	}
	p.opts = next
	if !next.TouchTextResize {
		p.grace.cancel()
		p.textFocused = false
		p.textGrace = false
	}
	if p.active {
		p.Reposition()
	} else {
		p.render()
	}
	return nil
}

// Show activates a panel and makes it the most recently interacted one.
func (r *Registry) Show(id string) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	p.touch()
	p.Activate()
	return nil
}

// Hide collapses a panel.
func (r *Registry) Hide(id string) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	p.touch()
	p.Collapse()
	return nil
}

// Toggle flips a panel, or forces it into the given state.
func (r *Registry) Toggle(id string, force *bool) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	p.touch()
	p.Toggle(force)
	return nil
}

// LayoutChanged re-evaluates the most recently interacted panel after a
// viewport change. Reports whether it collapsed.
func (r *Registry) LayoutChanged() bool {
	p, ok := r.LastInteracted()
	if !ok {
		return false
	}
	collapsed := p.LayoutChanged()
	if collapsed {
		r.logger.Debug("panel collapsed on layout change", "id", p.id)
	}
	return collapsed
}
