package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	Root            *string           `toml:"root"`
	Listen          *string           `toml:"listen"`
	Theme           *string           `toml:"theme"`
	Colors          map[string]string `toml:"colors"`
	Keymap          *string           `toml:"keymap"`
	ShowStatus      *bool             `toml:"show_status"`
	SequenceTimeout *int              `toml:"sequence_timeout"`
	SettleDelay     *int              `toml:"settle_delay"`
	MutationDelay   *int              `toml:"mutation_delay"`
	ToastDuration   *int              `toml:"toast_duration"`
	ScrollStep      *int              `toml:"scroll_step"`
	CodeHeight      *int              `toml:"code_height"`
}

// ConfigDir returns the vimnav config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vimnav")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vimnav")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := fc.merge(cfg); err != nil {
		return true, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

func (fc fileConfig) merge(cfg *Config) error {
	if fc.Root != nil {
		cfg.Root = ExpandHome(*fc.Root)
	}
	if fc.Listen != nil {
		cfg.Listen = *fc.Listen
	}
	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if len(fc.Colors) > 0 {
		cfg.Colors = fc.Colors
	}
	if fc.Keymap != nil {
		cfg.Keymap = ExpandHome(*fc.Keymap)
	}
	if fc.ShowStatus != nil {
		cfg.ShowStatus = *fc.ShowStatus
	}

	ints := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"sequence_timeout", fc.SequenceTimeout, &cfg.SequenceTimeout},
		{"settle_delay", fc.SettleDelay, &cfg.SettleDelay},
		{"mutation_delay", fc.MutationDelay, &cfg.MutationDelay},
		{"toast_duration", fc.ToastDuration, &cfg.ToastDuration},
		{"scroll_step", fc.ScrollStep, &cfg.ScrollStep},
		{"code_height", fc.CodeHeight, &cfg.CodeHeight},
	}
	for _, f := range ints {
		if f.src == nil {
			continue
		}
		if *f.src <= 0 {
			return fmt.Errorf("%s must be positive, got %d", f.name, *f.src)
		}
		*f.dst = *f.src
	}
	return nil
}

// SaveFile writes a minimal config.toml with the given library root.
func SaveFile(root string) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	// Store with ~ for readability if under home dir.
	home, _ := os.UserHomeDir()
	display := root
	if home != "" && strings.HasPrefix(root, home+string(os.PathSeparator)) {
		display = "~" + root[len(home):]
	}

	fc := fileConfig{Root: &display}
	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(fc)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
