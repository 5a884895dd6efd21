package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultRoot = "~/notes"

// SetupResult is returned by RunSetup.
type SetupResult struct {
	Root      string
	Cancelled bool
}

type setupModel struct {
	input textinput.Model
	found int // markdown files directly under the typed path, -1 if unknown
	err   string
	quit  bool
}

func newSetupModel() setupModel {
	ti := textinput.New()
	ti.Placeholder = defaultRoot
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return setupModel{input: ti, found: countDocuments(defaultRoot)}
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			if err := validateRoot(ExpandHome(m.value())); err != nil {
				m.err = err.Error()
				return m, nil
			}
			return m, tea.Quit

		case "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}

	m.err = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.found = countDocuments(m.value())
	return m, cmd
}

func (m setupModel) value() string {
	if v := m.input.Value(); v != "" {
		return v
	}
	return defaultRoot
}

func (m setupModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")).
		Render("Welcome to vimnav")
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	s := "\n " + title + "\n\n"
	s += " Enter the directory of your documents:\n\n"
	s += "   " + m.input.View() + "\n"
	switch {
	case m.found > 0:
		s += "   " + dim.Render(fmt.Sprintf("%d markdown files here", m.found)) + "\n\n"
	case m.found == 0:
		s += "   " + dim.Render("no markdown files here yet") + "\n\n"
	default:
		s += "   " + dim.Render("will be created") + "\n\n"
	}

	if m.err != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		s += " " + errStyle.Render(m.err) + "\n\n"
	}
	s += " " + dim.Render("Press Enter to confirm, Esc to cancel") + "\n"
	return s
}

// countDocuments counts the markdown files directly under path, or returns
// -1 when path is not a directory.
func countDocuments(path string) int {
	path = ExpandHome(path)
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return -1
	}
	matches, _ := filepath.Glob(filepath.Join(path, "*.md"))
	return len(matches)
}

// validateRoot checks that a path is usable as a library root.
func validateRoot(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists but is not a directory", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	// Check that the parent directory exists or can be created.
	parent := filepath.Dir(path)
	pinfo, err := os.Stat(parent)
	if err != nil {
		return fmt.Errorf("parent directory %s does not exist", parent)
	}
	if !pinfo.IsDir() {
		return fmt.Errorf("%s is not a directory", parent)
	}
	return nil
}

// RunSetup runs the first-run TUI prompt, creates the chosen library root
// and saves it to config.toml.
func RunSetup() (SetupResult, error) {
	p := tea.NewProgram(newSetupModel())
	final, err := p.Run()
	if err != nil {
		return SetupResult{}, err
	}

	fm, ok := final.(setupModel)
	if !ok {
		return SetupResult{}, fmt.Errorf("unexpected model type from setup wizard")
	}
	if fm.quit {
		return SetupResult{Cancelled: true}, nil
	}

	root := ExpandHome(fm.value())
	if err := os.MkdirAll(root, 0755); err != nil {
		return SetupResult{}, fmt.Errorf("create library root: %w", err)
	}
	if err := SaveFile(root); err != nil {
		return SetupResult{}, fmt.Errorf("saving config: %w", err)
	}
	return SetupResult{Root: root}, nil
}
