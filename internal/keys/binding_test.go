package keys

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		km   Keymap
		want error
	}{
		{"clean", Keymap{Bindings: []Binding{seq("a", "j"), seq("b", "g", "g")}}, nil},
		{"empty", Keymap{Bindings: []Binding{{Command: "x"}}}, ErrEmptySequence},
		{"no command", Keymap{Bindings: []Binding{seq("", "j")}}, ErrNoCommand},
		{"duplicate", Keymap{Bindings: []Binding{seq("a", "j"), seq("b", "j")}}, ErrDuplicate},
		{"shadowed", Keymap{Bindings: []Binding{seq("a", "g"), seq("b", "g", "g")}}, ErrShadowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.km)
			if tt.want == nil {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.True(t, errors.Is(errs[0], tt.want), "got %v", errs[0])
		})
	}
}

func TestKeysFor(t *testing.T) {
	km := Keymap{Bindings: []Binding{
		seq("scroll-line-down", "j"),
		{Chords: []Chord{{Key: "ArrowDown"}}, Command: "scroll-line-down"},
		seq("scroll-to-top", "g", "g"),
	}}
	assert.Equal(t, []string{"j", "ArrowDown"}, km.KeysFor("scroll-line-down"))
	assert.Equal(t, []string{"g g"}, km.KeysFor("scroll-to-top"))
	assert.Nil(t, km.KeysFor("quit"))
}

func TestChordString(t *testing.T) {
	assert.Equal(t, "ctrl+d", Chord{Key: "d", Ctrl: true}.String())
	assert.Equal(t, "G", Chord{Key: "G", Shift: true}.String())
	assert.Equal(t, "shift+Tab", Chord{Key: "Tab", Shift: true}.String())
	assert.Equal(t, "Space", Chord{Key: " "}.String())
	assert.Equal(t, "Z Z", FormatSequence([]Chord{{Key: "Z", Shift: true}, {Key: "Z", Shift: true}}))
}
