// Package logging points the default charmbracelet logger at a file so log
// lines never reach the terminal the program draws on.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileName is the log file created in the state directory.
const FileName = "vimnav.log"

// Setup opens <dir>/vimnav.log for appending and installs a logger writing
// to it as the default. The returned closer closes the file.
func Setup(dir string, level log.Level) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetDefault(New(f, level))
	return f, nil
}

// New returns a logger that writes logfmt lines with timestamps to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
		Prefix:          "vimnav",
	})
}

// ParseLevel maps a flag value to a level, defaulting to info.
func ParseLevel(s string) log.Level {
	l, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return l
}
