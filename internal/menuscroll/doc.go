// Package menuscroll controls scrollable panels that live inside a fixed
// viewport: a navigation menu or list that can be moved with the mouse wheel,
// by dragging (mouse or touch) and by holding a pointer over "scroll up" and
// "scroll down" indicators.
//
// Each registered Panel owns its offset, activation state, drag session and
// timers. A Router turns Bubble Tea messages into panel operations; because
// Bubble Tea delivers messages to Update one at a time, panel state needs no
// locking. Timers are tea.Cmd values tagged with a sequence number so a newer
// session always supersedes an older one.
//
// The package never draws anything. Panels describe their visual state as a
// Frame and hand it to a Surface supplied by the host, and they read layout
// through a geometry.Provider.
package menuscroll
