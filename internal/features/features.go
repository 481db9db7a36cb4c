package features

import (
	"maps"
	"os"
	"strconv"
	"sync"

	"github.com/wilbur182/menuscroll/internal/config"
)

// Source is where a flag's effective value came from.
type Source int

const (
	SourceDefault Source = iota
	SourceConfig
	SourceEnv
	SourceOverride
)

func (s Source) String() string {
	switch s {
	case SourceConfig:
		return "config"
	case SourceEnv:
		return "env"
	case SourceOverride:
		return "flag"
	default:
		return "default"
	}
}

// Feature is a known flag. Env, when set, names an environment variable
// that forces the flag ahead of the config file.
type Feature struct {
	Name        string
	Default     bool
	Env         string
	Description string
}

var (
	// TouchInput binds panels to touch gestures instead of wheel and mouse
	// drag. Terminals do not report touch capability, so it is opt-in.
	TouchInput = Feature{
		Name:        "touch_input",
		Env:         "MENUSCROLL_TOUCH",
		Description: "Treat the pointer as a touch device (tap to toggle, press indicators, drag to slide)",
	}

	// ClipboardCopy lets the copy binding write the selected row to the
	// system clipboard.
	ClipboardCopy = Feature{
		Name:        "clipboard_copy",
		Default:     true,
		Env:         "MENUSCROLL_CLIPBOARD",
		Description: "Copy the selected panel row to the system clipboard",
	}
)

var known = map[string]Feature{
	TouchInput.Name:    TouchInput,
	ClipboardCopy.Name: ClipboardCopy,
}

// Lookup returns the registered feature with the given name.
func Lookup(name string) (Feature, bool) {
	f, ok := known[name]
	return f, ok
}

// getenv is swapped out by tests.
var getenv = os.Getenv

type manager struct {
	mu        sync.RWMutex
	flags     map[string]bool // snapshot of the config file's flags
	overrides map[string]bool // command line
}

var global *manager

// Init loads flag values from cfg. Call once at startup, before SetOverride.
func Init(cfg *config.Config) {
	global = &manager{overrides: make(map[string]bool)}
	global.flags = snapshot(cfg)
}

// Reconfigure takes the flags from a reloaded config. Command line
// overrides survive.
func Reconfigure(cfg *config.Config) {
	if global == nil {
		Init(cfg)
		return
	}
	flags := snapshot(cfg)
	global.mu.Lock()
	global.flags = flags
	global.mu.Unlock()
}

func snapshot(cfg *config.Config) map[string]bool {
	if cfg == nil {
		return nil
	}
	return maps.Clone(cfg.Features.Flags)
}

// SetOverride forces a flag from the command line. Ignored before Init.
func SetOverride(name string, enabled bool) {
	if global == nil {
		return
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	global.overrides[name] = enabled
}

// IsEnabled reports a flag's effective value. Unknown flags are off.
func IsEnabled(name string) bool {
	enabled, _ := Resolve(name)
	return enabled
}

// Resolve returns a flag's effective value and where it came from.
// Priority: command line > environment > config > default. An environment
// value that does not parse as a bool is ignored.
func Resolve(name string) (bool, Source) {
	f, ok := known[name]
	if !ok {
		return false, SourceDefault
	}

	if global != nil {
		global.mu.RLock()
		defer global.mu.RUnlock()
		if enabled, ok := global.overrides[name]; ok {
			return enabled, SourceOverride
		}
	}
	if f.Env != "" {
		if enabled, err := strconv.ParseBool(getenv(f.Env)); err == nil {
			return enabled, SourceEnv
		}
	}
	if global != nil {
		if enabled, ok := global.flags[name]; ok {
			return enabled, SourceConfig
		}
	}
	return f.Default, SourceDefault
}

// Detector reports touch capability from the touch_input flag. It
// satisfies menuscroll.CapabilityDetector.
type Detector struct{}

// TouchCapable reports whether panels should bind touch gestures.
func (Detector) TouchCapable() bool {
	return IsEnabled(TouchInput.Name)
}
