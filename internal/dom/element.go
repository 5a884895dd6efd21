// Package dom models a laid-out document as a tree of explicit element
// descriptors. Capability checks (interactive, text input, visible,
// scrollable) are pure functions over that tree.
package dom

import "strings"

// Rect is a box in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the box has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Style holds the computed style properties the filters look at.
type Style struct {
	Display    string // "none" hides the subtree
	Visibility string // "hidden" or "collapse" hides, "visible" overrides
	OverflowY  string // "auto" or "scroll" makes a scroll container
}

// Element is one node of the render tree.
//
// Rect is the laid-out box in page coordinates, before any scrolling.
// ScrollTop and ScrollHeight describe the content of scroll containers.
// TabIndex is zero when unset; any other value makes the element focusable.
type Element struct {
	Tag    string
	Role   string
	Type   string
	Href   string
	Text   string
	Lines  []string
	Attrs  map[string]string
	Action string

	Style        Style
	Rect         Rect
	ScrollTop    int
	ScrollHeight int
	Fixed        bool

	Open     bool
	Checked  bool
	Editable bool
	TabIndex int

	Parent   *Element
	Children []*Element
}

// New returns an element with the given tag.
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// Append adds children and sets their parent.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		c.Parent = e
		e.Children = append(e.Children, c)
	}
	return e
}

// Remove detaches child from e. It reports whether child was found.
func (e *Element) Remove(child *Element) bool {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// Attr returns the named attribute or "".
func (e *Element) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[name] = value
}

// ClientHeight is the height of the visible box.
func (e *Element) ClientHeight() int {
	return e.Rect.H
}

// MaxScroll is the largest valid ScrollTop.
func (e *Element) MaxScroll() int {
	return max(e.ScrollHeight-e.ClientHeight(), 0)
}

// Label returns a short human readable description, used in status text.
func (e *Element) Label() string {
	switch {
	case e.Text != "":
		return e.Text
	case e.Href != "":
		return e.Href
	case e.Attr("aria-label") != "":
		return e.Attr("aria-label")
	}
	return e.Tag
}

func (e *Element) tag() string {
	return strings.ToLower(e.Tag)
}
