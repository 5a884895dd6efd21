package dom

// Walk visits the subtree under from in document order until fn returns
// false. Each element is visited at most once.
func Walk(from *Element, fn func(*Element) bool) {
	if from == nil {
		return
	}
	seen := make(map[*Element]bool)
	stack := []*Element{from}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[e] {
			continue
		}
		seen[e] = true
		if !fn(e) {
			return
		}
		for i := len(e.Children) - 1; i >= 0; i-- {
			stack = append(stack, e.Children[i])
		}
	}
}

// Find returns every element under from, in document order, for which
// match returns true.
func Find(from *Element, match func(*Element) bool) []*Element {
	var out []*Element
	Walk(from, func(e *Element) bool {
		if match(e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// NearestModal returns the open, visible dialog painted on top, or nil.
func (d *Document) NearestModal() *Element {
	var modal *Element
	Walk(d.Root, func(e *Element) bool {
		if IsDialog(e) && e.Open && d.IsVisible(e) {
			modal = e
		}
		return true
	})
	return modal
}

// FirstScrollableDescendant returns the first scrollable element under
// from, depth first, excluding from itself.
func (d *Document) FirstScrollableDescendant(from *Element) *Element {
	var found *Element
	Walk(from, func(e *Element) bool {
		if e != from && d.IsScrollable(e) {
			found = e
			return false
		}
		return true
	})
	return found
}

// NearestScrollableAncestor walks up from e, e included.
func (d *Document) NearestScrollableAncestor(e *Element) *Element {
	seen := make(map[*Element]bool)
	for a := e; a != nil && !seen[a]; a = a.Parent {
		if d.IsScrollable(a) {
			return a
		}
		seen[a] = true
	}
	return nil
}
