// Package keymap maps key presses to named commands, with per-context
// bindings, two-key sequences and user overrides from config.
package keymap

import (
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SequenceTimeout is how long the first key of a sequence waits for the
// second.
const SequenceTimeout = 500 * time.Millisecond

// Context selects which bindings are live. Global bindings are live in
// every context.
type Context string

const (
	Global Context = "global"
	Panel  Context = "panel" // the focused panel is open
)

// Command is a named action the bindings dispatch to.
type Command struct {
	ID      string
	Name    string // short label for the status line
	Handler func() tea.Cmd
}

// Binding maps a key, or a space-separated key sequence, to a command.
type Binding struct {
	Key     string // e.g. "tab", "ctrl+c", "g g"
	Command string
	Context Context
}

// Registry resolves keys to commands. It is not safe for concurrent use;
// the application drives it from its Update loop.
type Registry struct {
	commands  map[string]Command
	bindings  map[Context][]Binding         // registration order, for Help
	index     map[Context]map[string]string // key -> command ID
	overrides map[string]string

	pending   string
	pendingAt time.Time
	now       func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]Command),
		bindings:  make(map[Context][]Binding),
		index:     make(map[Context]map[string]string),
		overrides: make(map[string]string),
		now:       time.Now,
	}
}

// SetClock replaces time.Now for sequence timeouts.
func (r *Registry) SetClock(now func() time.Time) { r.now = now }

// RegisterCommand adds or replaces a command.
func (r *Registry) RegisterCommand(cmd Command) {
	r.commands[cmd.ID] = cmd
}

// RegisterBinding adds a binding. A later binding of the same key in the
// same context wins.
func (r *Registry) RegisterBinding(b Binding) {
	if r.index[b.Context] == nil {
		r.index[b.Context] = make(map[string]string)
	}
	r.index[b.Context][b.Key] = b.Command
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// ApplyOverrides replaces the user overrides. Overrides naming unknown
// commands are dropped and their keys returned, sorted.
func (r *Registry) ApplyOverrides(overrides map[string]string) (skipped []string) {
	r.overrides = make(map[string]string, len(overrides))
	for key, id := range overrides {
		if _, ok := r.commands[id]; !ok {
			skipped = append(skipped, key)
			continue
		}
		r.overrides[key] = id
	}
	slices.Sort(skipped)
	return skipped
}

// Lookup resolves a key in ctx: user overrides first, then ctx, then
// global bindings.
func (r *Registry) Lookup(key string, ctx Context) (string, bool) {
	if id, ok := r.overrides[key]; ok {
		return id, true
	}
	for _, c := range contexts(ctx) {
		if id, ok := r.index[c][key]; ok {
			return id, true
		}
	}
	return "", false
}

// Handle dispatches a key press. The boolean reports whether the key was
// consumed, by a command or as the first key of a sequence. When a pending
// sequence does not complete, the new key is tried on its own.
func (r *Registry) Handle(msg tea.KeyMsg, ctx Context) (tea.Cmd, bool) {
	key := KeyString(msg)
	now := r.now()

	if r.pending != "" {
		first := r.pending
		r.pending = ""
		if now.Sub(r.pendingAt) < SequenceTimeout {
			if cmd, ok := r.run(first+" "+key, ctx); ok {
				return cmd, true
			}
		}
	}

	if r.startsSequence(key, ctx) {
		r.pending, r.pendingAt = key, now
		return nil, true
	}
	return r.run(key, ctx)
}

// Pending reports whether a sequence is waiting for its second key.
func (r *Registry) Pending() bool {
	return r.pending != "" && r.now().Sub(r.pendingAt) < SequenceTimeout
}

func (r *Registry) run(key string, ctx Context) (tea.Cmd, bool) {
	id, ok := r.Lookup(key, ctx)
	if !ok {
		return nil, false
	}
	cmd, ok := r.commands[id]
	if !ok || cmd.Handler == nil {
		return nil, false
	}
	return cmd.Handler(), true
}

func (r *Registry) startsSequence(key string, ctx Context) bool {
	prefix := key + " "
	for k := range r.overrides {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	for _, c := range contexts(ctx) {
		for k := range r.index[c] {
			if strings.HasPrefix(k, prefix) {
				return true
			}
		}
	}
	return false
}

func contexts(ctx Context) []Context {
	if ctx == "" || ctx == Global {
		return []Context{Global}
	}
	return []Context{ctx, Global}
}

// Help lists "key name" pairs for ctx and then the global bindings, one
// key per command, in registration order.
func (r *Registry) Help(ctx Context) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range contexts(ctx) {
		for _, b := range r.bindings[c] {
			cmd, ok := r.commands[b.Command]
			if !ok || seen[b.Command] {
				continue
			}
			seen[b.Command] = true
			out = append(out, b.Key+" "+cmd.Name)
		}
	}
	return out
}

// KeyString converts a key press to binding notation.
func KeyString(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		if msg.Alt {
			return "alt+" + string(msg.Runes)
		}
		return string(msg.Runes)
	default:
		return msg.String()
	}
}
