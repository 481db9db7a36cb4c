package keymap

// Command IDs understood by the application.
const (
	CmdQuit         = "quit"
	CmdNextPanel    = "panel.next"
	CmdPrevPanel    = "panel.prev"
	CmdClosePanel   = "panel.close"
	CmdScrollUp     = "scroll.up"
	CmdScrollDown   = "scroll.down"
	CmdScrollTop    = "scroll.top"
	CmdScrollBottom = "scroll.bottom"
	CmdSelectPrev   = "item.prev"
	CmdSelectNext   = "item.next"
	CmdCopyItem     = "item.copy"
	CmdFocusFilter  = "filter.focus"
	CmdNextTheme    = "theme.next"
)

// DefaultBindings returns the built-in key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: "q", Command: CmdQuit, Context: Global},
		{Key: "ctrl+c", Command: CmdQuit, Context: Global},
		{Key: "tab", Command: CmdNextPanel, Context: Global},
		{Key: "shift+tab", Command: CmdPrevPanel, Context: Global},
		{Key: "t", Command: CmdNextTheme, Context: Global},

		{Key: "esc", Command: CmdClosePanel, Context: Panel},
		{Key: "k", Command: CmdSelectPrev, Context: Panel},
		{Key: "up", Command: CmdSelectPrev, Context: Panel},
		{Key: "j", Command: CmdSelectNext, Context: Panel},
		{Key: "down", Command: CmdSelectNext, Context: Panel},
		{Key: "pgup", Command: CmdScrollUp, Context: Panel},
		{Key: "pgdown", Command: CmdScrollDown, Context: Panel},
		{Key: "g g", Command: CmdScrollTop, Context: Panel},
		{Key: "G", Command: CmdScrollBottom, Context: Panel},
		{Key: "y", Command: CmdCopyItem, Context: Panel},
		{Key: "/", Command: CmdFocusFilter, Context: Panel},
	}
}

// RegisterDefaults registers DefaultBindings.
func (r *Registry) RegisterDefaults() {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
