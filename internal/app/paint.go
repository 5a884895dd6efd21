package app

import (
	"strings"
	"unicode/utf8"

	"github.com/pfassina/vimnav/internal/dom"
	"github.com/pfassina/vimnav/internal/page"
	"github.com/pfassina/vimnav/internal/ui"
)

// painter draws one page's render tree onto a canvas.
type painter struct {
	c    *canvas
	doc  *dom.Document
	page *page.Page
}

// rowLabel is a seek label that lands on the address row, which the
// canvas does not own.
type rowLabel struct {
	x     int
	cells []cell
}

// paintPage draws the document, the focus highlight and the seek labels.
// Row 0 is left to the address bar; labels for it are returned.
func paintPage(c *canvas, p *page.Page) []rowLabel {
	pt := &painter{c: c, doc: p.Document(), page: p}
	root := pt.doc.Root
	vp := c.bounds()
	pt.children(root, root.ScrollTop, root.Rect.Intersect(vp), vp)
	return pt.labels()
}

func (pt *painter) children(e *dom.Element, dy int, clip, vp dom.Rect) {
	for _, child := range e.Children {
		if child == pt.page.Address() {
			continue
		}
		if child.Fixed {
			pt.element(child, 0, vp, vp)
			continue
		}
		pt.element(child, dy, clip, vp)
	}
}

func (pt *painter) element(e *dom.Element, dy int, clip, vp dom.Rect) {
	if strings.EqualFold(e.Style.Display, "none") {
		return
	}
	r := e.Rect
	r.Y -= dy
	if r.Intersect(clip).Empty() && !pt.doc.IsScrollContainer(e) && len(e.Children) == 0 {
		return
	}
	pt.draw(e, r, clip)

	if pt.doc.IsScrollContainer(e) {
		pt.children(e, dy+e.ScrollTop, clip.Intersect(r), vp)
		return
	}
	pt.children(e, dy, clip, vp)
}

func (pt *painter) draw(e *dom.Element, r, clip dom.Rect) {
	c := pt.c
	kind := ui.KindForTag(e.Tag)
	focused := e == pt.doc.Active && e != pt.doc.Root && e != pt.doc.Body

	switch {
	case dom.IsDialog(e):
		c.fill(r, ui.Dialog, clip)
		c.box(r, ui.DialogBorder, clip)
		return
	case e.Tag == "input" && e.Type == "checkbox":
		box := "[ ]"
		if e.Checked {
			box = "[x]"
		}
		c.text(r.X, r.Y, box, ui.Link, clip)
		if focused {
			c.restyle(r, ui.Focused, clip)
		}
		return
	case e.Tag == "h2" && e.Parent != nil && dom.IsDialog(e.Parent):
		c.text(r.X, r.Y, e.Text, ui.DialogTitle, clip)
		return
	case e.Parent != nil && dom.IsDialog(e.Parent) && kind == ui.Text:
		kind = ui.Dialog
	}

	if kind == ui.CodeBlock {
		c.fill(r, ui.CodeBlock, clip)
	}
	if kind == ui.Quote {
		for y := r.Y; y < r.Y+r.H; y++ {
			c.set(r.X, y, '│', ui.Quote, clip)
		}
	}

	switch {
	case e.Lines != nil:
		top := r.Y
		inner := clip.Intersect(r)
		if pt.doc.IsScrollContainer(e) {
			top -= e.ScrollTop
		}
		if e.Tag == "li" {
			inner = clip
		}
		for i, line := range e.Lines {
			c.text(r.X, top+i, line, kind, inner)
		}
	case e.Text != "":
		c.text(r.X, r.Y, e.Text, kind, clip)
	}

	if focused {
		pt.highlight(e, r, clip)
	}
}

// highlight marks the focused element. A wrapped link lights up every
// segment.
func (pt *painter) highlight(e *dom.Element, r, clip dom.Rect) {
	if e.Tag == "a" && e.Parent != nil {
		span := e.Attr("span")
		shift := e.Rect.Y - r.Y
		for _, sib := range e.Parent.Children {
			if sib.Attr("span") == span {
				sr := sib.Rect
				sr.Y -= shift
				pt.c.restyle(sr, ui.Focused, clip)
			}
		}
		return
	}
	if e.Lines == nil && e.Text != "" {
		pt.c.restyle(r, ui.Focused, clip)
		return
	}
	// Blocks get a gutter mark.
	for y := r.Y; y < r.Y+r.H; y++ {
		pt.c.set(r.X-1, y, '▌', ui.Focused, clip)
	}
}

// placedLabel is a seek label at the cells it is painted on.
type placedLabel struct {
	x, y  int
	label string
	cells []cell
}

// labels draws seek labels over each target. Once the first character is
// typed, labels that no longer match are muted and the typed character is
// marked.
func (pt *painter) labels() []rowLabel {
	var top []rowLabel
	screen := pt.c.bounds()
	for _, l := range pt.placeLabels() {
		if l.y == 0 {
			top = append(top, rowLabel{x: l.x, cells: l.cells})
			continue
		}
		for i, cl := range l.cells {
			pt.c.put(l.x+i, l.y, cl.s, 1, cl.kind, screen)
		}
	}
	return top
}

// placeLabels gives every visible target a spot for its label that no
// other label uses. The root covers the whole page, so it takes the right
// end of the address row. Other labels start at their target's top-left
// corner and move right, then down, inside the target; a target with no
// free spot left slides its label along its first row.
func (pt *painter) placeLabels() []placedLabel {
	screen := pt.c.bounds()
	taken := make([]bool, screen.W*screen.H)
	free := func(x, y, n int) bool {
		if y < 0 || y >= screen.H || x < 0 || x+n > screen.W {
			return false
		}
		for i := range n {
			if taken[y*screen.W+x+i] {
				return false
			}
		}
		return true
	}

	partial := pt.page.Seek().Partial()
	var out []placedLabel
	for _, o := range pt.doc.Overlays() {
		r := pt.doc.ClientRect(o.Target).Intersect(screen)
		if r.Empty() {
			continue
		}
		n := utf8.RuneCountInString(o.Label)
		x, y := r.X, r.Y
		if o.Target == pt.doc.Root {
			x, y = max(screen.W-n, 0), 0
		} else if sx, sy, ok := spot(r, n, screen.W, free); ok {
			x, y = sx, sy
		}
		for i := range n {
			if x+i < screen.W {
				taken[y*screen.W+x+i] = true
			}
		}
		out = append(out, placedLabel{x: x, y: y, label: o.Label, cells: labelCells(o.Label, partial)})
	}
	return out
}

func spot(r dom.Rect, n, width int, free func(x, y, n int) bool) (int, int, bool) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x <= r.X+max(r.W-n, 0); x++ {
			if free(x, y, n) {
				return x, y, true
			}
		}
	}
	for x := r.X + 1; x+n <= width; x++ {
		if free(x, r.Y, n) {
			return x, r.Y, true
		}
	}
	for x := r.X - 1; x >= 0; x-- {
		if free(x, r.Y, n) {
			return x, r.Y, true
		}
	}
	return 0, 0, false
}

func labelCells(label string, partial rune) []cell {
	runes := []rune(label)
	out := make([]cell, len(runes))
	for i, ch := range runes {
		kind := ui.Label
		switch {
		case partial != 0 && runes[0] != partial:
			kind = ui.LabelMuted
		case partial != 0 && i == 0:
			kind = ui.LabelTyped
		}
		out[i] = cell{s: string(ch), kind: kind}
	}
	return out
}

func renderCells(cells []cell, p *ui.Palette) string {
	var b strings.Builder
	for _, cl := range cells {
		b.WriteString(p.Style(cl.kind).Render(cl.s))
	}
	return b.String()
}
