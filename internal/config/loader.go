package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// ConfigPath returns the path of the user config file,
// ~/.config/menuscroll/config.jsonc.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "menuscroll", "config.jsonc")
	}
	return filepath.Join(home, ".config", "menuscroll", "config.jsonc")
}

// LoadFrom reads a config file. The file may contain comments and trailing
// commas. A missing file yields the defaults. Values absent from the file
// keep their defaults; a file that lists panels replaces the default panels.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.Panels = nil
	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Panels == nil {
		cfg.Panels = DefaultPanels()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
