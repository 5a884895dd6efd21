package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		input string
		want  string
	}{
		{"~/notes", filepath.Join(home, "notes")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExpandHome(tt.input)
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	dir := filepath.Join(tmp, "vimnav")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("LoadFile should return false for missing file")
	}
}

func TestLoadFile_Partial(t *testing.T) {
	writeConfig(t, `theme = "nord"`+"\n")

	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("LoadFile should return true for existing file")
	}
	if cfg.Theme != "nord" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "nord")
	}
	// Root and timings keep their defaults.
	def := Default()
	if cfg.Root != def.Root {
		t.Errorf("Root changed unexpectedly: %q", cfg.Root)
	}
	if cfg.SequenceTimeout != 2000 || cfg.SettleDelay != 100 {
		t.Errorf("timings changed: %d, %d", cfg.SequenceTimeout, cfg.SettleDelay)
	}
}

func TestLoadFile_Full(t *testing.T) {
	writeConfig(t, `root = "~/docs"
theme = "gruvbox"
keymap = "/etc/vimnav/keys.json"
listen = ":2300"
show_status = false
sequence_timeout = 800
settle_delay = 50
mutation_delay = 300
toast_duration = 1500
scroll_step = 5
code_height = 12

[colors]
accent = "#ff0000"
`)

	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("LoadFile should return true")
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "docs"); cfg.Root != want {
		t.Errorf("Root = %q, want %q", cfg.Root, want)
	}
	if cfg.Theme != "gruvbox" || cfg.Listen != ":2300" || cfg.ShowStatus {
		t.Errorf("got theme %q listen %q status %v", cfg.Theme, cfg.Listen, cfg.ShowStatus)
	}
	if cfg.Keymap != "/etc/vimnav/keys.json" {
		t.Errorf("Keymap = %q", cfg.Keymap)
	}
	if cfg.SequenceTimeoutDuration().Milliseconds() != 800 {
		t.Errorf("SequenceTimeout = %v", cfg.SequenceTimeoutDuration())
	}
	if cfg.SettleDelay != 50 || cfg.MutationDelay != 300 || cfg.ToastDuration != 1500 {
		t.Errorf("delays = %d %d %d", cfg.SettleDelay, cfg.MutationDelay, cfg.ToastDuration)
	}
	if cfg.ScrollStep != 5 || cfg.CodeHeight != 12 {
		t.Errorf("ScrollStep = %d, CodeHeight = %d", cfg.ScrollStep, cfg.CodeHeight)
	}
	if cfg.Colors["accent"] != "#ff0000" {
		t.Errorf("Colors = %v", cfg.Colors)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	writeConfig(t, "theme = \n")
	cfg := Default()
	if _, err := LoadFile(&cfg); err == nil {
		t.Error("malformed TOML should fail")
	}

	writeConfig(t, "scroll_step = 0\n")
	cfg = Default()
	_, err := LoadFile(&cfg)
	if err == nil || !strings.Contains(err.Error(), "scroll_step") {
		t.Errorf("err = %v, want scroll_step error", err)
	}
}

func TestSaveFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	home, _ := os.UserHomeDir()
	root := filepath.Join(home, "my-docs")

	if err := SaveFile(root); err != nil {
		t.Fatal(err)
	}

	// Verify the file was created and can be loaded back.
	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("config file should exist after SaveFile")
	}
	if cfg.Root != root {
		t.Errorf("Root = %q, want %q", cfg.Root, root)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	want := filepath.Join(tmp, "vimnav")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "vimnav")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestSetupCountsDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if got := countDocuments(dir); got != 2 {
		t.Errorf("countDocuments = %d, want 2", got)
	}
	if got := countDocuments(filepath.Join(dir, "missing")); got != -1 {
		t.Errorf("countDocuments(missing) = %d, want -1", got)
	}

	m := newSetupModel()
	m.input.SetValue(dir)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if fm := next.(setupModel); fm.err != "" || fm.quit {
		t.Errorf("enter on a valid dir: err %q quit %v", fm.err, fm.quit)
	}

	m.input.SetValue(filepath.Join(dir, "a.md"))
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if fm := next.(setupModel); fm.err == "" {
		t.Error("a file is not a valid root")
	}
}
