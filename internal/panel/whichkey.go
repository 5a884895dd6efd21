package panel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/vimnav/internal/keys"
	"github.com/pfassina/vimnav/internal/theme"
)

// WhichKeyEntry represents a single key binding for display.
type WhichKeyEntry struct {
	Key   string
	Label string
}

// WhichKey renders a popup listing the keys that complete a pending
// sequence.
type WhichKey struct {
	entries []WhichKeyEntry
	prefix  string
	width   int
	theme   *theme.Theme
}

func NewWhichKey(th *theme.Theme) WhichKey {
	return WhichKey{theme: th}
}

// SetPending lists what can follow the chords typed so far.
func (w *WhichKey) SetPending(typed []keys.Chord, next []keys.Binding) {
	if len(typed) == 0 || len(next) == 0 {
		w.Clear()
		return
	}
	var entries []WhichKeyEntry
	for _, b := range next {
		rest := b.Chords[len(typed):]
		entries = append(entries, WhichKeyEntry{Key: keys.FormatSequence(rest), Label: b.Command})
	}
	w.SetEntries(keys.FormatSequence(typed), entries)
}

func (w *WhichKey) SetEntries(prefix string, entries []WhichKeyEntry) {
	w.prefix = prefix
	w.entries = entries
	sort.Slice(w.entries, func(i, j int) bool {
		return w.entries[i].Key < w.entries[j].Key
	})
}

func (w *WhichKey) SetWidth(width int) {
	w.width = width
}

func (w *WhichKey) Clear() {
	w.entries = nil
	w.prefix = ""
}

func (w WhichKey) Visible() bool {
	return len(w.entries) > 0
}

func (w WhichKey) View() string {
	if len(w.entries) == 0 {
		return ""
	}

	width := w.width
	if width == 0 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(w.theme.Accent).
		Padding(0, 1).
		Width(width - 4)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(w.theme.Accent)
	keyStyle := lipgloss.NewStyle().
		Foreground(w.theme.Code).
		Bold(true)
	labelStyle := lipgloss.NewStyle().
		Foreground(w.theme.Text)

	lines := []string{titleStyle.Render(fmt.Sprintf("%s …", w.prefix))}

	// Two columns when there is room.
	colWidth := (width - 4) / 2
	if colWidth < 24 {
		colWidth = width - 4
	}

	for i := 0; i < len(w.entries); i += 2 {
		left := keyStyle.Render(w.entries[i].Key) + " " + labelStyle.Render(w.entries[i].Label)

		if i+1 < len(w.entries) && colWidth < width-4 {
			right := keyStyle.Render(w.entries[i+1].Key) + " " + labelStyle.Render(w.entries[i+1].Label)
			leftPad := max(colWidth-lipgloss.Width(left), 1)
			lines = append(lines, left+strings.Repeat(" ", leftPad)+right)
		} else {
			lines = append(lines, left)
			if colWidth >= width-4 && i+1 < len(w.entries) {
				lines = append(lines, keyStyle.Render(w.entries[i+1].Key)+" "+labelStyle.Render(w.entries[i+1].Label))
			}
		}
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}
