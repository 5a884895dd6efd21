package dom

// IsScrollContainer reports whether e clips and scrolls its content.
func (d *Document) IsScrollContainer(e *Element) bool {
	return e != nil && (e == d.Root || scrollsY(e))
}

// IsScrollable reports whether e is a scroll container whose content
// exceeds its visible box.
func (d *Document) IsScrollable(e *Element) bool {
	return d.IsScrollContainer(e) && e.ScrollHeight > e.ClientHeight()
}

// ClientRect returns e's box on screen after scrolling, clipped by its
// scroll containers. Fixed subtrees ignore the root's scroll and clip.
func (d *Document) ClientRect(e *Element) Rect {
	return d.clientRect(e, make(map[*Element]bool))
}

func (d *Document) clientRect(e *Element, seen map[*Element]bool) Rect {
	r := e.Rect
	if seen[e] {
		return Rect{}
	}
	seen[e] = true
	defer delete(seen, e)

	fixed := e.Fixed
	for a := e.Parent; a != nil; a = a.Parent {
		if seen[a] {
			return Rect{}
		}
		if d.IsScrollContainer(a) && !(a == d.Root && fixed) {
			r.Y -= a.ScrollTop
			r = r.Intersect(d.clientRect(a, seen))
			// The container's own rect already accounts for everything
			// above it.
			return r
		}
		fixed = fixed || a.Fixed
	}
	return r
}

// IsVisible reports whether e can be interacted with right now: it has
// area, is not hidden by style, and shows inside the viewport.
func (d *Document) IsVisible(e *Element) bool {
	if e == nil || e.Rect.Empty() {
		return false
	}
	for a := e; a != nil; a = a.Parent {
		if hidden(a) {
			return false
		}
	}
	if invisible(e) {
		return false
	}
	vp := Rect{W: d.Viewport.W, H: d.Viewport.H}
	return !d.ClientRect(e).Intersect(vp).Empty()
}
