package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadDebounce coalesces bursts of file events into one reload.
const ReloadDebounce = 100 * time.Millisecond

// Reload is the result of re-reading the config file after it changed.
type Reload struct {
	Config *Config
	Err    error
}

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path   string
	fw     *fsnotify.Watcher
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	timer  *time.Timer
	out    chan Reload
	done   chan struct{}
}

// Watch starts watching path. The parent directory is watched so editors
// that save by rename are still noticed.
func Watch(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:   path,
		fw:     fw,
		logger: logger,
		out:    make(chan Reload, 1),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers reloads. Only the newest pending reload is kept.
func (w *Watcher) Changes() <-chan Reload { return w.out }

// Close stops watching. Changes is closed once the watcher has shut down.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer w.shutdown()

	name := filepath.Base(w.path)
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "err", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(ReloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := LoadFrom(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.path, "err", err)
	} else {
		w.logger.Debug("config reloaded", "path", w.path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	// Replace a reload nobody has picked up yet.
	select {
	case <-w.out:
	default:
	}
	w.out <- Reload{Config: cfg, Err: err}
}

func (w *Watcher) shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.out)
}
