package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveTo writes cfg to path as indented JSON, which is valid JSONC.
// Comments in an existing file are not kept.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	data = append(data, '\n')

	// Write then rename so the watcher never reads a half-written file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return os.Rename(tmp, path)
}

// SaveThemeTo records the theme name in the config file at path, keeping
// the rest of the file's settings. A missing file is created from the
// defaults.
func SaveThemeTo(path, name string) error {
	cfg, err := LoadFrom(path)
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = name
	return SaveTo(cfg, path)
}
