package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color palette used by the document painter and panels.
// Panels hold a *Theme pointer so in-place changes are visible on the next
// View() call.
type Theme struct {
	Name     string
	Bg       lipgloss.Color
	Accent   lipgloss.Color
	Subtle   lipgloss.Color
	Text     lipgloss.Color
	Dim      lipgloss.Color
	Border   lipgloss.Color
	StatusBg lipgloss.Color
	StatusFg lipgloss.Color
	Error    lipgloss.Color

	Heading lipgloss.Color
	Link    lipgloss.Color
	Code    lipgloss.Color
	CodeBg  lipgloss.Color
	Focus   lipgloss.Color

	LabelBg lipgloss.Color
	LabelFg lipgloss.Color
	ToastBg lipgloss.Color
	ToastFg lipgloss.Color

	NormalMode  lipgloss.Color
	ClickMode   lipgloss.Color
	FocusMode   lipgloss.Color
	AddressMode lipgloss.Color
}

var themes = map[string]Theme{
	"catppuccin": {
		Name:        "catppuccin",
		Bg:          lipgloss.Color("#1e1e2e"),
		Accent:      lipgloss.Color("#cba6f7"),
		Subtle:      lipgloss.Color("#6c7086"),
		Text:        lipgloss.Color("#cdd6f4"),
		Dim:         lipgloss.Color("#585b70"),
		Border:      lipgloss.Color("#45475a"),
		StatusBg:    lipgloss.Color("#313244"),
		StatusFg:    lipgloss.Color("#cdd6f4"),
		Error:       lipgloss.Color("#f38ba8"),
		Heading:     lipgloss.Color("#cba6f7"),
		Link:        lipgloss.Color("#89b4fa"),
		Code:        lipgloss.Color("#a6e3a1"),
		CodeBg:      lipgloss.Color("#181825"),
		Focus:       lipgloss.Color("#f5c2e7"),
		LabelBg:     lipgloss.Color("#f9e2af"),
		LabelFg:     lipgloss.Color("#11111b"),
		ToastBg:     lipgloss.Color("#11111b"),
		ToastFg:     lipgloss.Color("#cdd6f4"),
		NormalMode:  lipgloss.Color("#89b4fa"),
		ClickMode:   lipgloss.Color("#f9e2af"),
		FocusMode:   lipgloss.Color("#a6e3a1"),
		AddressMode: lipgloss.Color("#f38ba8"),
	},
	"nord": {
		Name:        "nord",
		Bg:          lipgloss.Color("#2e3440"),
		Accent:      lipgloss.Color("#88c0d0"),
		Subtle:      lipgloss.Color("#4c566a"),
		Text:        lipgloss.Color("#eceff4"),
		Dim:         lipgloss.Color("#434c5e"),
		Border:      lipgloss.Color("#3b4252"),
		StatusBg:    lipgloss.Color("#3b4252"),
		StatusFg:    lipgloss.Color("#eceff4"),
		Error:       lipgloss.Color("#bf616a"),
		Heading:     lipgloss.Color("#88c0d0"),
		Link:        lipgloss.Color("#81a1c1"),
		Code:        lipgloss.Color("#a3be8c"),
		CodeBg:      lipgloss.Color("#242933"),
		Focus:       lipgloss.Color("#b48ead"),
		LabelBg:     lipgloss.Color("#ebcb8b"),
		LabelFg:     lipgloss.Color("#2e3440"),
		ToastBg:     lipgloss.Color("#242933"),
		ToastFg:     lipgloss.Color("#eceff4"),
		NormalMode:  lipgloss.Color("#81a1c1"),
		ClickMode:   lipgloss.Color("#ebcb8b"),
		FocusMode:   lipgloss.Color("#a3be8c"),
		AddressMode: lipgloss.Color("#bf616a"),
	},
	"gruvbox": {
		Name:        "gruvbox",
		Bg:          lipgloss.Color("#282828"),
		Accent:      lipgloss.Color("#d79921"),
		Subtle:      lipgloss.Color("#665c54"),
		Text:        lipgloss.Color("#ebdbb2"),
		Dim:         lipgloss.Color("#504945"),
		Border:      lipgloss.Color("#3c3836"),
		StatusBg:    lipgloss.Color("#3c3836"),
		StatusFg:    lipgloss.Color("#ebdbb2"),
		Error:       lipgloss.Color("#fb4934"),
		Heading:     lipgloss.Color("#fabd2f"),
		Link:        lipgloss.Color("#83a598"),
		Code:        lipgloss.Color("#b8bb26"),
		CodeBg:      lipgloss.Color("#1d2021"),
		Focus:       lipgloss.Color("#d3869b"),
		LabelBg:     lipgloss.Color("#fabd2f"),
		LabelFg:     lipgloss.Color("#1d2021"),
		ToastBg:     lipgloss.Color("#1d2021"),
		ToastFg:     lipgloss.Color("#ebdbb2"),
		NormalMode:  lipgloss.Color("#83a598"),
		ClickMode:   lipgloss.Color("#fabd2f"),
		FocusMode:   lipgloss.Color("#b8bb26"),
		AddressMode: lipgloss.Color("#fb4934"),
	},
	"tokyo-night": {
		Name:        "tokyo-night",
		Bg:          lipgloss.Color("#1a1b26"),
		Accent:      lipgloss.Color("#7aa2f7"),
		Subtle:      lipgloss.Color("#565f89"),
		Text:        lipgloss.Color("#c0caf5"),
		Dim:         lipgloss.Color("#414868"),
		Border:      lipgloss.Color("#292e42"),
		StatusBg:    lipgloss.Color("#1f2335"),
		StatusFg:    lipgloss.Color("#c0caf5"),
		Error:       lipgloss.Color("#f7768e"),
		Heading:     lipgloss.Color("#bb9af7"),
		Link:        lipgloss.Color("#7dcfff"),
		Code:        lipgloss.Color("#9ece6a"),
		CodeBg:      lipgloss.Color("#16161e"),
		Focus:       lipgloss.Color("#ff9e64"),
		LabelBg:     lipgloss.Color("#e0af68"),
		LabelFg:     lipgloss.Color("#16161e"),
		ToastBg:     lipgloss.Color("#16161e"),
		ToastFg:     lipgloss.Color("#c0caf5"),
		NormalMode:  lipgloss.Color("#7aa2f7"),
		ClickMode:   lipgloss.Color("#e0af68"),
		FocusMode:   lipgloss.Color("#9ece6a"),
		AddressMode: lipgloss.Color("#f7768e"),
	},
}

// DefaultTheme returns the default color palette (catppuccin-inspired).
func DefaultTheme() Theme {
	return themes["catppuccin"]
}

// Get returns a theme by name, defaulting to catppuccin.
func Get(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return DefaultTheme()
}

// Names lists the built-in themes.
func Names() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
