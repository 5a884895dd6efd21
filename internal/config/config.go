package config

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	Root       string
	Listen     string
	Serve      bool
	Theme      string
	Colors     map[string]string
	Keymap     string // path to a keymap JSON file, "" for the built-in one
	ShowStatus bool

	SequenceTimeout int // milliseconds
	SettleDelay     int // milliseconds
	MutationDelay   int // milliseconds
	ToastDuration   int // milliseconds
	ScrollStep      int // rows per line scroll
	CodeHeight      int // rows a code block shows before it scrolls
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Root:            filepath.Join(home, "notes"),
		Listen:          ":2222",
		Theme:           "catppuccin",
		ShowStatus:      true,
		SequenceTimeout: 2000,
		SettleDelay:     100,
		MutationDelay:   500,
		ToastDuration:   2000,
		ScrollStep:      3,
		CodeHeight:      8,
	}
}

// StateDir is where per-library state (database, session, log) lives.
func (c Config) StateDir() string {
	return filepath.Join(c.Root, ".vimnav")
}

func (c Config) SequenceTimeoutDuration() time.Duration {
	return ms(c.SequenceTimeout)
}

func (c Config) SettleDelayDuration() time.Duration {
	return ms(c.SettleDelay)
}

func (c Config) MutationDelayDuration() time.Duration {
	return ms(c.MutationDelay)
}

func (c Config) ToastDurationDuration() time.Duration {
	return ms(c.ToastDuration)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
