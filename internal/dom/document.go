package dom

// Size is the viewport in cells.
type Size struct {
	W, H int
}

// Overlay is one label drawn over a target for the current seek session.
type Overlay struct {
	Label  string
	Target *Element
}

// Document is a laid-out render tree plus its focus, scroll and overlay
// state. Root is the scrolling root; Body is its main content child.
type Document struct {
	Root     *Element
	Body     *Element
	Active   *Element
	Viewport Size

	// OnMutate is called after every structural change.
	OnMutate func()
	// OnClick is called for every activated element.
	OnClick func(*Element)

	overlays  []Overlay
	mutations uint64
}

// NewDocument returns a document whose root fills the viewport and holds
// body as its only child. Focus starts on the body.
func NewDocument(vp Size, body *Element) *Document {
	root := New("html")
	root.Rect = Rect{W: vp.W, H: vp.H}
	if body == nil {
		body = New("body")
	}
	root.Append(body)
	d := &Document{Root: root, Body: body, Active: body, Viewport: vp}
	d.Fit()
	return d
}

// Mutations returns how many structural changes the document has seen.
func (d *Document) Mutations() uint64 {
	return d.mutations
}

// Mutate records a structural change and notifies the observer.
func (d *Document) Mutate() {
	d.mutations++
	if d.OnMutate != nil {
		d.OnMutate()
	}
}

// ReplaceBody swaps the main content in place. Focus inside the old body
// falls back to the new one; the root keeps its scroll offset, clamped.
func (d *Document) ReplaceBody(body *Element) {
	for i, c := range d.Root.Children {
		if c == d.Body {
			d.Body.Parent = nil
			body.Parent = d.Root
			d.Root.Children[i] = body
			break
		}
	}
	if body.Parent != d.Root {
		d.Root.Append(body)
	}
	d.Body = body
	if !d.Contains(d.Active) {
		d.Active = body
	}
	d.Fit()
	d.Mutate()
}

// AppendFixed adds a fixed element, such as a dialog, on top of the
// content.
func (d *Document) AppendFixed(e *Element) {
	e.Fixed = true
	d.Root.Append(e)
	d.Mutate()
}

// RemoveFixed detaches an element added with AppendFixed.
func (d *Document) RemoveFixed(e *Element) {
	if d.Contains(d.Active) && isDescendant(d.Active, e) {
		d.Active = d.Body
	}
	if d.Root.Remove(e) {
		d.Mutate()
	}
}

// Fit recomputes the root's content extent from its non-fixed children
// and clamps its scroll offset.
func (d *Document) Fit() {
	bottom := d.Root.Rect.Y
	for _, c := range d.Root.Children {
		if c.Fixed {
			continue
		}
		bottom = max(bottom, c.Rect.Y+c.Rect.H)
	}
	d.Root.ScrollHeight = bottom - d.Root.Rect.Y
	d.Root.ScrollTop = min(d.Root.ScrollTop, d.Root.MaxScroll())
}

// Resize changes the viewport and the root box.
func (d *Document) Resize(vp Size, root Rect) {
	d.Viewport = vp
	d.Root.Rect = root
	d.Fit()
}

// Contains reports whether e is attached to the tree.
func (d *Document) Contains(e *Element) bool {
	return e != nil && isDescendant(e, d.Root)
}

func isDescendant(e, ancestor *Element) bool {
	seen := make(map[*Element]bool)
	for a := e; a != nil && !seen[a]; a = a.Parent {
		if a == ancestor {
			return true
		}
		seen[a] = true
	}
	return false
}

// Overlays returns the current label layer.
func (d *Document) Overlays() []Overlay {
	return d.overlays
}

// AddOverlay places a label over target.
func (d *Document) AddOverlay(label string, target *Element) {
	d.overlays = append(d.overlays, Overlay{Label: label, Target: target})
}

// ClearOverlays removes every label.
func (d *Document) ClearOverlays() {
	d.overlays = nil
}

// Focus moves focus to e if it can take it.
func (d *Document) Focus(e *Element) bool {
	if e == nil || !d.Contains(e) {
		return false
	}
	if e != d.Root && e != d.Body && !IsFocusable(e) {
		return false
	}
	d.Active = e
	return true
}

// Blur moves focus back to the body.
func (d *Document) Blur() {
	d.Active = d.Body
}

// Click activates e: checkboxes toggle, then the click handler runs.
func (d *Document) Click(e *Element) {
	if e == nil {
		return
	}
	if e.tag() == "input" && (e.Type == "checkbox" || e.Type == "radio") {
		e.Checked = !e.Checked || e.Type == "radio"
	}
	if d.OnClick != nil {
		d.OnClick(e)
	}
}

// ScrollBy moves e's content by dy rows, clamped. It returns the distance
// actually moved.
func (d *Document) ScrollBy(e *Element, dy int) int {
	return d.ScrollTo(e, e.ScrollTop+dy)
}

// ScrollTo sets e's scroll offset, clamped, and returns the distance moved.
func (d *Document) ScrollTo(e *Element, y int) int {
	y = max(0, min(y, e.MaxScroll()))
	moved := y - e.ScrollTop
	e.ScrollTop = y
	return moved
}
