package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestFromKeyMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Chord
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, Chord{Key: "j"}},
		{"upper", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, Chord{Key: "G", Shift: true}},
		{"punct", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}, Chord{Key: "?"}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, Chord{Key: "x", Alt: true}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, Chord{Key: " "}},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, Chord{Key: "Escape"}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, Chord{Key: "Enter"}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, Chord{Key: "Tab"}},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, Chord{Key: "Tab", Shift: true}},
		{"ctrl", tea.KeyMsg{Type: tea.KeyCtrlD}, Chord{Key: "d", Ctrl: true}},
		{"arrow", tea.KeyMsg{Type: tea.KeyDown}, Chord{Key: "ArrowDown"}},
		{"function", tea.KeyMsg{Type: tea.KeyF5}, Chord{Key: "F5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromKeyMsg(tt.msg))
		})
	}
}

func TestChordRune(t *testing.T) {
	assert.Equal(t, 'q', Chord{Key: "q"}.Rune())
	assert.Equal(t, ';', Chord{Key: ";"}.Rune())
	assert.Equal(t, rune(0), Chord{Key: "q", Ctrl: true}.Rune())
	assert.Equal(t, rune(0), Chord{Key: "Escape"}.Rune())
}
