// Package keys turns key presses into commands. A Matcher buffers chords and
// resolves them against single-chord and multi-chord bindings.
package keys

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Chord is one normalized key-down event.
type Chord struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Meta  bool
	Shift bool
}

// Rune returns the single character of a plain chord, or 0 if the chord
// carries ctrl, alt or meta or names a non-character key.
func (c Chord) Rune() rune {
	if c.Ctrl || c.Alt || c.Meta {
		return 0
	}
	r := []rune(c.Key)
	if len(r) != 1 {
		return 0
	}
	return r[0]
}

// String renders the chord the way bindings are written in help text,
// e.g. "ctrl+d", "G", "Escape".
func (c Chord) String() string {
	var b strings.Builder
	if c.Ctrl {
		b.WriteString("ctrl+")
	}
	if c.Alt {
		b.WriteString("alt+")
	}
	if c.Meta {
		b.WriteString("meta+")
	}
	// Shift is implied by an upper-case character.
	if c.Shift && !isUpperRune(c.Key) {
		b.WriteString("shift+")
	}
	if c.Key == " " {
		b.WriteString("Space")
	} else {
		b.WriteString(c.Key)
	}
	return b.String()
}

// FormatSequence joins chords with spaces: "g g".
func FormatSequence(chords []Chord) string {
	parts := make([]string, len(chords))
	for i, c := range chords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func isUpperRune(s string) bool {
	r := []rune(s)
	return len(r) == 1 && unicode.IsUpper(r[0])
}

// keyNames maps Bubble Tea key names to the browser-style names used in
// keymaps.
var keyNames = map[string]string{
	"esc":       "Escape",
	"enter":     "Enter",
	"tab":       "Tab",
	"backspace": "Backspace",
	"delete":    "Delete",
	"insert":    "Insert",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
	"home":      "Home",
	"end":       "End",
	" ":         " ",
}

// FromKeyMsg normalizes a terminal key message into a Chord.
func FromKeyMsg(msg tea.KeyMsg) Chord {
	switch msg.Type {
	case tea.KeyRunes:
		key := string(msg.Runes)
		return Chord{Key: key, Alt: msg.Alt, Shift: isUpperRune(key)}
	case tea.KeySpace:
		return Chord{Key: " ", Alt: msg.Alt}
	}

	s := msg.String()
	c := Chord{}
	if rest, ok := strings.CutPrefix(s, "alt+"); ok {
		c.Alt = true
		s = rest
	}
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok {
		c.Ctrl = true
		s = rest
	}
	if rest, ok := strings.CutPrefix(s, "shift+"); ok {
		c.Shift = true
		s = rest
	}
	if name, ok := keyNames[s]; ok {
		c.Key = name
		return c
	}
	if len(s) > 1 && s[0] == 'f' && strings.Trim(s[1:], "0123456789") == "" {
		c.Key = "F" + s[1:]
		return c
	}
	c.Key = s
	return c
}
