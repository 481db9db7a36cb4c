package app

import "github.com/wilbur182/menuscroll/internal/config"

// ConfigReloadMsg carries a config file re-read after it changed on disk.
// A reload with Err set leaves the running configuration untouched.
type ConfigReloadMsg struct {
	Config *config.Config
	Err    error
}

// ToastMsg shows a message on the status line.
type ToastMsg struct {
	Message string
	IsError bool
}

// copiedMsg reports the result of a clipboard write.
type copiedMsg struct {
	text string
	err  error
}
