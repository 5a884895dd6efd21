package page

import (
	"fmt"
	"strings"

	"github.com/pfassina/vimnav/internal/dom"
	"github.com/pfassina/vimnav/internal/keys"
	"github.com/pfassina/vimnav/internal/labels"
)

const closeHelpAction = "close-help"

func (p *Page) openHelp() {
	lines := helpLines(p.matcher.Keymap())
	vp := p.doc.Viewport
	w := max(min(vp.W-4, 64), 12)
	h := max(min(vp.H-2, len(lines)+4), 4)
	x, y := max((vp.W-w)/2, 0), max((vp.H-h)/2, 0)

	dlg := &dom.Element{Tag: "div", Role: "dialog", Open: true, Rect: dom.Rect{X: x, Y: y, W: w, H: h}}
	dlg.SetAttr("aria-label", "Help")
	title := &dom.Element{Tag: "h2", Text: " Key bindings ", Rect: dom.Rect{X: x + 2, Y: y, W: 14, H: 1}}
	body := &dom.Element{
		Tag:          "div",
		Lines:        lines,
		ScrollHeight: len(lines),
		Rect:         dom.Rect{X: x + 2, Y: y + 1, W: w - 4, H: h - 3},
	}
	body.Style.OverflowY = "auto"
	closeBtn := &dom.Element{
		Tag:    "button",
		Text:   "[close]",
		Action: closeHelpAction,
		Rect:   dom.Rect{X: x + w - 9, Y: y + h - 2, W: 7, H: 1},
	}
	dlg.Append(title, body, closeBtn)

	p.help = dlg
	p.doc.AppendFixed(dlg)
}

func (p *Page) closeHelp() {
	if p.help == nil {
		return
	}
	help := p.help
	p.help = nil
	p.doc.RemoveFixed(help)
}

// helpLines lists each command once, in keymap order, with its keys.
func helpLines(km keys.Keymap) []string {
	if km.Len() == 0 {
		return []string{"No key bindings loaded."}
	}
	seen := make(map[string]bool)
	var out []string
	for _, b := range km.Bindings {
		if seen[b.Command] {
			continue
		}
		seen[b.Command] = true
		out = append(out, fmt.Sprintf("%-14s %s", strings.Join(km.KeysFor(b.Command), ", "), b.Command))
	}
	return append(out, "", "Labels are typed with: "+string(labels.Alphabet()))
}
