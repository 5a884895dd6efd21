package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/vimnav/internal/theme"
)

// Mode names shown in the status bar.
const (
	ModeNormal  = "NORMAL"
	ModeClick   = "CLICK"
	ModeFocus   = "FOCUS"
	ModeAddress = "ADDRESS"
)

// Status is the status bar at the bottom.
type Status struct {
	width    int
	theme    *theme.Theme
	mode     string
	title    string
	location string
	pending  string
	views    string
	errMsg   string
}

func NewStatus(th *theme.Theme) Status {
	return Status{theme: th, mode: ModeNormal}
}

func (s *Status) SetMode(mode string) {
	s.mode = mode
}

// SetDocument sets the title and location of the front view.
func (s *Status) SetDocument(title, location string) {
	s.title = title
	s.location = location
}

// SetPending shows the keys of an incomplete sequence.
func (s *Status) SetPending(keys string) {
	s.pending = keys
}

// SetViews shows the position of the front view, 1-based.
func (s *Status) SetViews(current, total int) {
	if total <= 1 {
		s.views = ""
		return
	}
	s.views = fmt.Sprintf("%d/%d", current, total)
}

func (s *Status) SetWidth(width int) {
	s.width = width
}

func (s *Status) SetError(msg string) {
	s.errMsg = msg
}

func (s *Status) ClearError() {
	s.errMsg = ""
}

func (s Status) modeColor() lipgloss.Color {
	switch s.mode {
	case ModeClick:
		return s.theme.ClickMode
	case ModeFocus:
		return s.theme.FocusMode
	case ModeAddress:
		return s.theme.AddressMode
	}
	return s.theme.NormalMode
}

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}

	bgStyle := lipgloss.NewStyle().Background(s.theme.StatusBg)
	textStyle := lipgloss.NewStyle().
		Background(s.theme.StatusBg).
		Foreground(s.theme.StatusFg).
		Padding(0, 1)
	modeStyle := lipgloss.NewStyle().
		Background(s.modeColor()).
		Foreground(s.theme.Bg).
		Bold(true).
		Padding(0, 1)

	mode := modeStyle.Render(s.mode)

	var docSection string
	if s.errMsg != "" {
		errStyle := textStyle.Foreground(s.theme.Error)
		docSection = errStyle.Render(s.errMsg)
	} else {
		doc := s.location
		if s.title != "" && s.title != s.location {
			doc = s.title + " · " + s.location
		}
		docSection = textStyle.Render(doc)
	}
	left := mode + docSection

	var right []string
	if s.pending != "" {
		right = append(right, textStyle.Foreground(s.theme.Accent).Render(s.pending))
	}
	if s.views != "" {
		right = append(right, textStyle.Render(s.views))
	}
	rightStr := strings.Join(right, "")

	padLen := max(s.width-lipgloss.Width(left)-lipgloss.Width(rightStr), 0)
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + rightStr
}
