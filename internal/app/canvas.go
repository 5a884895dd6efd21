package app

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/pfassina/vimnav/internal/dom"
	"github.com/pfassina/vimnav/internal/ui"
)

// cell is one terminal column. A wide rune fills its cell and leaves the
// next one empty ("") as its continuation.
type cell struct {
	s    string
	kind ui.Kind
}

// canvas is a grid of styled cells the document is painted onto before it
// is turned into a string.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([]cell, c.w*c.h)
	for i := range c.cells {
		c.cells[i] = cell{s: " ", kind: ui.Text}
	}
	return c
}

func (c *canvas) bounds() dom.Rect {
	return dom.Rect{W: c.w, H: c.h}
}

func (c *canvas) inside(x, y int, clip dom.Rect) bool {
	return x >= clip.X && x < clip.X+clip.W && y >= clip.Y && y < clip.Y+clip.H &&
		x >= 0 && x < c.w && y >= 0 && y < c.h
}

// set paints one rune if it lies inside clip.
func (c *canvas) set(x, y int, r rune, kind ui.Kind, clip dom.Rect) {
	c.put(x, y, string(r), max(runewidth.RuneWidth(r), 1), kind, clip)
}

// put writes s, w cells wide, at x, y. A wide rune that would be cut by the
// clip is replaced by a blank.
func (c *canvas) put(x, y int, s string, w int, kind ui.Kind, clip dom.Rect) {
	if !c.inside(x, y, clip) {
		return
	}
	if w > 1 && !c.inside(x+1, y, clip) {
		s, w = " ", 1
	}
	c.split(x, y)
	i := y*c.w + x
	c.cells[i] = cell{s: s, kind: kind}
	if w > 1 {
		c.split(x+1, y)
		c.cells[i+1] = cell{kind: kind}
	}
}

// split blanks the other half of a wide rune that x, y belongs to, so
// overwriting one half never leaves the row short or long.
func (c *canvas) split(x, y int) {
	i := y*c.w + x
	switch {
	case c.cells[i].s == "" && x > 0:
		c.cells[i-1].s = " "
	case x+1 < c.w && c.cells[i+1].s == "":
		c.cells[i+1].s = " "
	}
}

// text paints s starting at x, y. It returns the column after the last rune.
func (c *canvas) text(x, y int, s string, kind ui.Kind, clip dom.Rect) int {
	last := -1
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			// Combining marks join the cell before them.
			if last >= 0 && !unicode.IsControl(r) && c.inside(last, y, clip) {
				c.cells[y*c.w+last].s += string(r)
			}
			continue
		}
		c.put(x, y, string(r), w, kind, clip)
		last = x
		x += w
	}
	return x
}

// restyle changes the kind of the cells of r without touching their runes.
func (c *canvas) restyle(r dom.Rect, kind ui.Kind, clip dom.Rect) {
	r = r.Intersect(clip).Intersect(c.bounds())
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.cells[y*c.w+x].kind = kind
		}
	}
}

// fill clears r to blanks of kind.
func (c *canvas) fill(r dom.Rect, kind ui.Kind, clip dom.Rect) {
	r = r.Intersect(clip).Intersect(c.bounds())
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.put(x, y, " ", 1, kind, r)
		}
	}
}

// box draws a rounded border on the edge of r.
func (c *canvas) box(r dom.Rect, kind ui.Kind, clip dom.Rect) {
	if r.W < 2 || r.H < 2 {
		return
	}
	x1, y1 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < x1; x++ {
		c.set(x, r.Y, '─', kind, clip)
		c.set(x, y1, '─', kind, clip)
	}
	for y := r.Y + 1; y < y1; y++ {
		c.set(r.X, y, '│', kind, clip)
		c.set(x1, y, '│', kind, clip)
	}
	c.set(r.X, r.Y, '╭', kind, clip)
	c.set(x1, r.Y, '╮', kind, clip)
	c.set(r.X, y1, '╰', kind, clip)
	c.set(x1, y1, '╯', kind, clip)
}

// lines renders every row, grouping runs of equal kind into one styled
// segment.
func (c *canvas) lines(p *ui.Palette) []string {
	out := make([]string, c.h)
	var b, run strings.Builder
	for y := 0; y < c.h; y++ {
		b.Reset()
		row := c.cells[y*c.w : (y+1)*c.w]
		for i := 0; i < len(row); {
			kind := row[i].kind
			run.Reset()
			for ; i < len(row) && row[i].kind == kind; i++ {
				run.WriteString(row[i].s)
			}
			b.WriteString(p.Style(kind).Render(run.String()))
		}
		out[y] = b.String()
	}
	return out
}
