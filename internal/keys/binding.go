package keys

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySequence = errors.New("binding has no keys")
	ErrNoCommand     = errors.New("binding has no command")
	ErrDuplicate     = errors.New("duplicate binding")
	ErrShadowed      = errors.New("binding is shadowed by a longer sequence")
)

// Binding maps one chord (a single binding) or two or more chords (a
// sequence binding) to a command id.
type Binding struct {
	Chords  []Chord
	Command string
}

// IsSequence reports whether the binding needs more than one chord.
func (b Binding) IsSequence() bool {
	return len(b.Chords) > 1
}

// hasPrefix reports whether the binding's chords start with prefix.
func (b Binding) hasPrefix(prefix []Chord) bool {
	if len(prefix) > len(b.Chords) {
		return false
	}
	for i, c := range prefix {
		if b.Chords[i] != c {
			return false
		}
	}
	return true
}

// Keymap is an ordered binding set.
type Keymap struct {
	Bindings []Binding
}

// Len returns the number of bindings.
func (k Keymap) Len() int {
	return len(k.Bindings)
}

// KeysFor returns the written form of every sequence bound to command.
func (k Keymap) KeysFor(command string) []string {
	var out []string
	for _, b := range k.Bindings {
		if b.Command == command {
			out = append(out, FormatSequence(b.Chords))
		}
	}
	return out
}

// Validate reports bindings that cannot be resolved the way they are
// written. The keymap stays usable: shadowed bindings are simply unreachable.
func Validate(k Keymap) []error {
	var errs []error
	seen := make(map[string]int)
	for i, b := range k.Bindings {
		if len(b.Chords) == 0 {
			errs = append(errs, fmt.Errorf("binding %d: %w", i, ErrEmptySequence))
			continue
		}
		if b.Command == "" {
			errs = append(errs, fmt.Errorf("binding %d (%s): %w", i, FormatSequence(b.Chords), ErrNoCommand))
		}
		key := FormatSequence(b.Chords)
		if j, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("binding %d (%s) repeats binding %d: %w", i, key, j, ErrDuplicate))
			continue
		}
		seen[key] = i
	}

	for i, short := range k.Bindings {
		if len(short.Chords) == 0 {
			continue
		}
		for _, long := range k.Bindings {
			if !long.IsSequence() || len(long.Chords) <= len(short.Chords) {
				continue
			}
			if long.hasPrefix(short.Chords) {
				errs = append(errs, fmt.Errorf("binding %d (%s) under %s: %w",
					i, FormatSequence(short.Chords), FormatSequence(long.Chords), ErrShadowed))
				break
			}
		}
	}
	return errs
}
