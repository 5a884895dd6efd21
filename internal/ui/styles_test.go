package ui

import (
	"testing"

	"github.com/pfassina/vimnav/internal/theme"
)

func TestKindForTag(t *testing.T) {
	tests := map[string]Kind{
		"h1": Heading, "H3": Heading, "a": Link, "pre": CodeBlock,
		"code": Code, "del": Strike, "p": Text, "": Text, "button": Button,
	}
	for tag, want := range tests {
		if got := KindForTag(tag); got != want {
			t.Errorf("KindForTag(%q) = %d, want %d", tag, got, want)
		}
	}
}

func TestPaletteFollowsTheme(t *testing.T) {
	th := theme.DefaultTheme()
	p := NewPalette(&th)
	if got := p.Style(Label).GetBackground(); got != th.LabelBg {
		t.Errorf("label background = %v, want %v", got, th.LabelBg)
	}
	if got := p.Style(Link).GetForeground(); got != th.Link {
		t.Errorf("link foreground = %v, want %v", got, th.Link)
	}
	if got := p.Style(Kind(-1)).GetForeground(); got != th.Text {
		t.Errorf("out of range kind should fall back to text, got %v", got)
	}
}
