// Package scroll decides which element a scroll command moves and moves it.
package scroll

import "github.com/pfassina/vimnav/internal/dom"

// Command ids handled here.
const (
	Down     = "scroll-down"
	Up       = "scroll-up"
	LineDown = "scroll-line-down"
	LineUp   = "scroll-line-up"
	Top      = "scroll-to-top"
	Bottom   = "scroll-to-bottom"
)

// IsCommand reports whether cmd is a scroll command.
func IsCommand(cmd string) bool {
	switch cmd {
	case Down, Up, LineDown, LineUp, Top, Bottom:
		return true
	}
	return false
}

// Resolver finds scroll targets.
type Resolver struct{}

// Resolve returns the element a scroll acts on: the open modal's first
// scrollable descendant, else the nearest scrollable ancestor of the
// focused element. ok is false when neither exists and the caller should
// ask the user to pick one.
func (Resolver) Resolve(doc *dom.Document) (*dom.Element, bool) {
	if modal := doc.NearestModal(); modal != nil {
		if t := doc.FirstScrollableDescendant(modal); t != nil {
			return t, true
		}
	}
	if doc.Active != nil {
		if t := doc.NearestScrollableAncestor(doc.Active); t != nil {
			return t, true
		}
	}
	return nil, false
}

// Apply performs cmd on target and returns the distance moved. step is the
// line scroll amount.
func Apply(doc *dom.Document, target *dom.Element, cmd string, step int) int {
	if step <= 0 {
		step = 1
	}
	half := max(target.ClientHeight()/2, 1)
	switch cmd {
	case Down:
		return doc.ScrollBy(target, half)
	case Up:
		return doc.ScrollBy(target, -half)
	case LineDown:
		return doc.ScrollBy(target, step)
	case LineUp:
		return doc.ScrollBy(target, -step)
	case Top:
		return doc.ScrollTo(target, 0)
	case Bottom:
		return doc.ScrollTo(target, target.MaxScroll())
	}
	return 0
}
