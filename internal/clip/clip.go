// Package clip copies text to the user's clipboard, either through the
// local system clipboard or, for remote sessions, an OSC52 escape sequence.
package clip

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard receives copied text.
type Clipboard interface {
	Copy(text string) error
}

// Func adapts a function to Clipboard.
type Func func(string) error

func (f Func) Copy(text string) error { return f(text) }

// System writes to the local clipboard.
type System struct{}

func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no system clipboard available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// OSC52 asks the terminal at the other end of W to set its clipboard.
type OSC52 struct {
	W io.Writer
}

func (o OSC52) Copy(text string) error {
	if _, err := osc52.New(text).WriteTo(o.W); err != nil {
		return fmt.Errorf("write osc52: %w", err)
	}
	return nil
}

// Fallback tries each clipboard in order until one succeeds.
type Fallback []Clipboard

func (f Fallback) Copy(text string) error {
	err := fmt.Errorf("no clipboard")
	for _, c := range f {
		if err = c.Copy(text); err == nil {
			return nil
		}
	}
	return err
}
