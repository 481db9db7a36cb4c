package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/menuscroll/internal/config"
	"github.com/wilbur182/menuscroll/internal/features"
	"github.com/wilbur182/menuscroll/internal/geometry"
	"github.com/wilbur182/menuscroll/internal/keymap"
	"github.com/wilbur182/menuscroll/internal/menuscroll"
	"github.com/wilbur182/menuscroll/internal/mouse"
	"github.com/wilbur182/menuscroll/internal/styles"
)

// Screen rows above the area panels open into: the trigger bar and a rule.
const bodyTop = 2

// bodyContainer is the measurement context panels with a container option
// are measured against.
const bodyContainer = "body"

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger shared with the panel registry.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithDetector overrides touch capability detection.
func WithDetector(d menuscroll.CapabilityDetector) Option {
	return func(m *Model) { m.detector = d }
}

// WithGeometry sets the terminal geometry provider.
func WithGeometry(t *geometry.Terminal) Option {
	return func(m *Model) { m.geo = t }
}

// WithScheduler replaces tea.Tick for panel timers.
func WithScheduler(s menuscroll.Scheduler) Option {
	return func(m *Model) { m.schedule = s }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

// WithConfigPath names the config file. Theme changes made from the
// keyboard are saved to it.
func WithConfigPath(path string) Option {
	return func(m *Model) { m.configPath = path }
}

// WithVersion sets the version shown on the status line.
func WithVersion(v string) Option {
	return func(m *Model) { m.version = v }
}

// Model is the root Bubble Tea model. It owns the panel registry, lays the
// panels out on screen and translates terminal input into panel messages.
type Model struct {
	cfg      *config.Config
	logger   *slog.Logger
	detector menuscroll.CapabilityDetector
	schedule menuscroll.Scheduler
	copy     func(string) error
	version  string

	configPath string

	geo    *geometry.Terminal
	reg    *menuscroll.Registry
	router *menuscroll.Router
	mouse  *mouse.Handler
	keys   *keymap.Registry

	panels []*panelView
	byID   map[string]*panelView
	focus  int // panel receiving keyboard commands

	width, height int

	statusMsg     string
	statusIsError bool
}

// New creates the application model and registers every configured panel.
func New(cfg *config.Config, opts ...Option) (*Model, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	m := &Model{
		cfg:      cfg,
		logger:   slog.New(slog.DiscardHandler),
		detector: features.Detector{},
		copy:     clipboard.WriteAll,
		mouse:    mouse.NewHandler(),
		keys:     keymap.NewRegistry(),
		byID:     make(map[string]*panelView),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.geo == nil {
		m.geo = geometry.NewTerminal(int(os.Stdout.Fd()))
	}
	m.width, m.height = m.geo.WindowSize()

	regOpts := []menuscroll.RegistryOption{
		menuscroll.WithLogger(m.logger),
		menuscroll.WithDetector(m.detector),
	}
	if m.schedule != nil {
		regOpts = append(regOpts, menuscroll.WithScheduler(m.schedule))
	}
	m.reg = menuscroll.NewRegistry(m.geo, regOpts...)
	m.router = menuscroll.NewRouter(m.reg)

	m.registerCommands()
	m.keys.RegisterDefaults()
	m.applyKeymapOverrides()
	m.applyTheme(cfg.UI.Theme.Name)

	for _, pc := range cfg.Panels {
		if err := m.addPanel(pc); err != nil {
			return nil, err
		}
	}
	m.layout()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("menuscroll")
}

// Registry exposes the panel registry.
func (m *Model) Registry() *menuscroll.Registry { return m.reg }

// Status returns the current status line message.
func (m *Model) Status() string { return m.statusMsg }

// Render implements menuscroll.Surface. Frames are stored and drawn on the
// next View.
func (m *Model) Render(id string, f menuscroll.Frame) {
	if pv, ok := m.byID[id]; ok {
		pv.frame = f
	}
}

func (m *Model) toast(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsError = isErr
	if isErr {
		m.logger.Warn(msg)
	}
}

func (m *Model) applyTheme(name string) {
	if rejected := styles.ApplyThemeWithOverrides(name, m.cfg.UI.Theme.Overrides); len(rejected) > 0 {
		m.logger.Warn("theme overrides ignored", "keys", rejected)
	}
}

func (m *Model) applyKeymapOverrides() {
	if skipped := m.keys.ApplyOverrides(m.cfg.Keymap.Overrides); len(skipped) > 0 {
		m.toast(fmt.Sprintf("unknown commands in keymap overrides: %v", skipped), true)
	}
}

// focused returns the panel receiving keyboard commands.
func (m *Model) focused() *panelView {
	if len(m.panels) == 0 {
		return nil
	}
	m.focus = min(max(m.focus, 0), len(m.panels)-1)
	return m.panels[m.focus]
}

// keyContext is the keymap context for the current state.
func (m *Model) keyContext() keymap.Context {
	if pv := m.focused(); pv != nil && pv.frame.Active {
		return keymap.Panel
	}
	return keymap.Global
}
