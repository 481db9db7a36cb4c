// menuscroll is a terminal demo host for scrollable dropdown panels. Each
// panel hangs from a trigger on the top row; panels taller than the screen
// scroll by wheel, drag or by resting on the arrow indicators.
//
// The config file (default ~/.config/menuscroll/config.jsonc) is watched and
// re-applied to the running panels when it changes.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/wilbur182/menuscroll/internal/app"
	"github.com/wilbur182/menuscroll/internal/config"
	"github.com/wilbur182/menuscroll/internal/features"
)

// Version is set at build time via ldflags
var Version = ""

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configPath string
		logFile    string
		debugLog   bool
		touch      bool
		showVer    bool
	)
	flags := pflag.NewFlagSet("menuscroll", pflag.ContinueOnError)
	flags.StringVarP(&configPath, "config", "c", "", "path to config file (default "+config.ConfigPath()+")")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&debugLog, "debug", false, "enable debug logging")
	flags.BoolVar(&touch, "touch", false, "bind panels for touch input")
	flags.BoolVarP(&showVer, "version", "v", false, "print version and exit")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: menuscroll [options]\n\nScrollable dropdown panels for the terminal.\n\nOptions:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	version := effectiveVersion(Version)
	if showVer {
		fmt.Printf("menuscroll version %s\n", version)
		return nil
	}

	if configPath == "" {
		configPath = config.ConfigPath()
	}
	cfg, loadErr := config.LoadFrom(configPath)
	if loadErr != nil {
		cfg = config.Default()
	}

	if logFile == "" {
		logFile = cfg.Log.File
	}
	level := cfg.Log.SlogLevel()
	if debugLog {
		level = slog.LevelDebug
	}
	logger, closeLog, err := newLogger(logFile, level)
	if err != nil {
		return err
	}
	defer closeLog()

	if loadErr != nil {
		logger.Warn("using default config", "path", configPath, "err", loadErr)
	}

	features.Init(cfg)
	if flags.Changed("touch") {
		features.SetOverride(features.TouchInput.Name, touch)
	}
	touchOn, src := features.Resolve(features.TouchInput.Name)
	logger.Info("input binding", "touch", touchOn, "source", src)

	model, err := app.New(cfg,
		app.WithLogger(logger),
		app.WithVersion(version),
		app.WithConfigPath(configPath),
	)
	if err != nil {
		return fmt.Errorf("creating panels: %w", err)
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	watcher, err := config.Watch(configPath, logger)
	if err != nil {
		logger.Warn("config watch disabled", "path", configPath, "err", err)
	} else {
		defer watcher.Close()
		go func() {
			for r := range watcher.Changes() {
				p.Send(app.ConfigReloadMsg{Config: r.Config, Err: r.Err})
			}
		}()
	}

	if loadErr != nil {
		go p.Send(app.ToastMsg{Message: fmt.Sprintf("config: %v", loadErr), IsError: true})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// newLogger writes text logs to path, or discards them when path is empty.
// The terminal belongs to the UI, so logs never go to stderr.
func newLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}
	ver := "devel+" + revision
	if len(ver) > 20 {
		ver = ver[:20]
	}
	if dirty {
		ver += "+dirty"
	}
	return ver
}
