package panel

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/vimnav/internal/theme"
)

// AddressSubmitMsg is sent when a location is entered.
type AddressSubmitMsg struct {
	Value string
}

// AddressCancelMsg is sent when editing is abandoned.
type AddressCancelMsg struct{}

// Address is the one-line location bar at the top of a view. It shows the
// location, or a text input while focused.
type Address struct {
	input    textinput.Model
	location string
	width    int
	theme    *theme.Theme
	editing  bool
}

func NewAddress(th *theme.Theme) Address {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Prompt = "› "
	ti.Placeholder = "path/to/document.md"
	return Address{input: ti, theme: th}
}

// SetLocation sets what the bar shows while not editing.
func (a *Address) SetLocation(loc string) {
	a.location = loc
}

// Edit starts editing with value preselected.
func (a *Address) Edit(value string) tea.Cmd {
	a.editing = true
	a.input.SetValue(value)
	a.input.CursorEnd()
	return a.input.Focus()
}

// Stop leaves editing without a message.
func (a *Address) Stop() {
	a.editing = false
	a.input.Blur()
}

func (a Address) Editing() bool {
	return a.editing
}

func (a Address) Update(msg tea.Msg) (Address, tea.Cmd) {
	if !a.editing {
		return a, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(a.input.Value())
			a.Stop()
			return a, func() tea.Msg { return AddressSubmitMsg{Value: value} }
		case "esc", "ctrl+c":
			a.Stop()
			return a, func() tea.Msg { return AddressCancelMsg{} }
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *Address) SetWidth(width int) {
	a.width = width
	a.input.Width = max(width-4, 1)
}

func (a Address) View() string {
	style := lipgloss.NewStyle().
		Background(a.theme.StatusBg).
		Foreground(a.theme.Subtle).
		Width(a.width).
		MaxWidth(a.width)
	if a.editing {
		return style.Foreground(a.theme.Text).Render(a.input.View())
	}
	return style.Render("  " + a.location)
}
