// Package ui maps document element kinds onto lipgloss styles derived from
// the active theme.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/vimnav/internal/theme"
)

// Kind is the visual role of a painted cell.
type Kind int

const (
	Text Kind = iota
	Dim
	Heading
	Link
	Code
	CodeBlock
	Quote
	Rule
	Strong
	Emphasis
	Strike
	Label
	LabelTyped
	LabelMuted
	Focused
	Dialog
	DialogBorder
	DialogTitle
	Button
	Address
	numKinds
)

// Palette holds one style per Kind.
type Palette struct {
	styles [numKinds]lipgloss.Style
}

func NewPalette(th *theme.Theme) Palette {
	var p Palette
	base := lipgloss.NewStyle().Foreground(th.Text)
	set := func(k Kind, s lipgloss.Style) { p.styles[k] = s }

	set(Text, base)
	set(Dim, base.Foreground(th.Dim))
	set(Heading, base.Foreground(th.Heading).Bold(true))
	set(Link, base.Foreground(th.Link).Underline(true))
	set(Code, base.Foreground(th.Code).Background(th.CodeBg))
	set(CodeBlock, base.Foreground(th.Code).Background(th.CodeBg))
	set(Quote, base.Foreground(th.Subtle))
	set(Rule, base.Foreground(th.Border))
	set(Strong, base.Bold(true))
	set(Emphasis, base.Italic(true))
	set(Strike, base.Strikethrough(true).Foreground(th.Dim))
	set(Label, lipgloss.NewStyle().Background(th.LabelBg).Foreground(th.LabelFg).Bold(true))
	set(LabelTyped, lipgloss.NewStyle().Background(th.LabelBg).Foreground(th.Error).Bold(true))
	set(LabelMuted, lipgloss.NewStyle().Background(th.Dim).Foreground(th.LabelFg))
	set(Focused, base.Foreground(th.Bg).Background(th.Focus))
	set(Dialog, base.Background(th.StatusBg))
	set(DialogBorder, lipgloss.NewStyle().Foreground(th.Accent).Background(th.StatusBg))
	set(DialogTitle, lipgloss.NewStyle().Foreground(th.Accent).Background(th.StatusBg).Bold(true))
	set(Button, lipgloss.NewStyle().Foreground(th.Accent).Background(th.StatusBg).Bold(true))
	set(Address, lipgloss.NewStyle().Foreground(th.Subtle).Background(th.StatusBg))
	return p
}

// Style returns the style of k.
func (p *Palette) Style(k Kind) lipgloss.Style {
	if k < 0 || k >= numKinds {
		return p.styles[Text]
	}
	return p.styles[k]
}

// KindForTag picks the kind an element tag is painted with.
func KindForTag(tag string) Kind {
	switch strings.ToLower(tag) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return Heading
	case "a":
		return Link
	case "code":
		return Code
	case "pre":
		return CodeBlock
	case "blockquote":
		return Quote
	case "hr":
		return Rule
	case "strong":
		return Strong
	case "em":
		return Emphasis
	case "del":
		return Strike
	case "img", "html":
		return Dim
	case "button":
		return Button
	}
	return Text
}
