package panel

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/vimnav/internal/keys"
	"github.com/pfassina/vimnav/internal/theme"
)

func TestStatusView(t *testing.T) {
	th := theme.DefaultTheme()
	s := NewStatus(&th)
	if s.View() != "" {
		t.Error("zero width should render nothing")
	}

	s.SetWidth(60)
	s.SetMode(ModeClick)
	s.SetDocument("Notes", "notes/a.md")
	s.SetPending("g")
	s.SetViews(2, 3)

	out := s.View()
	if w := lipgloss.Width(out); w != 60 {
		t.Errorf("width = %d, want 60", w)
	}
	for _, want := range []string{"CLICK", "Notes · notes/a.md", "g", "2/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("status %q missing %q", out, want)
		}
	}

	s.SetError("broken")
	if !strings.Contains(s.View(), "broken") {
		t.Error("error should replace the document")
	}
	s.ClearError()
	s.SetViews(1, 1)
	if strings.Contains(s.View(), "1/1") {
		t.Error("a single view shows no counter")
	}
}

func TestWhichKeyPending(t *testing.T) {
	th := theme.DefaultTheme()
	w := NewWhichKey(&th)
	g := keys.Chord{Key: "g"}
	next := []keys.Binding{
		{Chords: []keys.Chord{g, {Key: "t"}}, Command: "switch-to-right-tab"},
		{Chords: []keys.Chord{g, g}, Command: "scroll-to-top"},
	}

	w.SetPending([]keys.Chord{g}, next)
	if !w.Visible() {
		t.Fatal("popup should be visible")
	}
	if w.entries[0].Key != "g" || w.entries[1].Key != "t" {
		t.Errorf("entries not sorted: %+v", w.entries)
	}
	out := w.View()
	for _, want := range []string{"g …", "scroll-to-top", "switch-to-right-tab"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	w.SetPending(nil, next)
	if w.Visible() || w.View() != "" {
		t.Error("no typed keys should clear the popup")
	}
}

func TestAddressEditing(t *testing.T) {
	th := theme.DefaultTheme()
	a := NewAddress(&th)
	a.SetWidth(40)
	a.SetLocation("index.md")
	if !strings.Contains(a.View(), "index.md") {
		t.Errorf("view = %q", a.View())
	}

	a.Edit("index.md")
	if !a.Editing() {
		t.Fatal("should be editing")
	}
	// Two backspaces leave "index." behind.
	a, _ = a.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	a, _ = a.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	a, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("txt")})
	a, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if a.Editing() {
		t.Error("enter should stop editing")
	}
	msg, ok := cmd().(AddressSubmitMsg)
	if !ok || msg.Value != "index.txt" {
		t.Errorf("submit = %+v", msg)
	}

	a.Edit("x")
	a, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(AddressCancelMsg); !ok {
		t.Error("esc should cancel")
	}
}
