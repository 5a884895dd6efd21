// Package page ties one view's document to its key matcher and seek
// machine. Every key event of the view goes through Page.HandleKey.
package page

import (
	"time"

	"github.com/pfassina/vimnav/internal/clip"
	"github.com/pfassina/vimnav/internal/dom"
	"github.com/pfassina/vimnav/internal/keys"
	"github.com/pfassina/vimnav/internal/library"
	"github.com/pfassina/vimnav/internal/markdown"
	"github.com/pfassina/vimnav/internal/notify"
	"github.com/pfassina/vimnav/internal/router"
	"github.com/pfassina/vimnav/internal/scroll"
	"github.com/pfassina/vimnav/internal/seek"
)

// TimerKind tells which state machine a Timer belongs to.
type TimerKind int

const (
	SequenceTimer TimerKind = iota
	SettleTimer
)

// Timer asks the caller to call Fire with it after Delay.
type Timer struct {
	Kind  TimerKind
	Gen   uint64
	Delay time.Duration
}

// Outcome is the result of one key event.
type Outcome struct {
	// Consumed is true when the key was used by seek or a binding.
	Consumed bool
	// Typing is true when the focused element takes text; the caller
	// hands the key to it instead.
	Typing bool
	Timers []Timer
}

// Sender carries outbound commands to the coordinator.
type Sender interface {
	Send(m router.Message)
}

// Links resolves link targets found in a document.
type Links interface {
	Resolve(from, target string) (string, error)
}

// Options configures a Page. Zero values pick the defaults.
type Options struct {
	ID        string
	Keymap    keys.Source
	Notifier  notify.Notifier
	Router    Sender
	Links     Links
	Clipboard clip.Clipboard
	Store     seek.ModeStore

	SequenceTimeout time.Duration
	SettleDelay     time.Duration
	MutationDelay   time.Duration
	ScrollStep      int
	CodeHeight      int
}

type discardSender struct{}

func (discardSender) Send(router.Message) {}

// Page is the key handling and document state of one view.
type Page struct {
	opts     Options
	doc      *dom.Document
	seek     *seek.Machine
	matcher  *keys.Matcher
	resolver scroll.Resolver
	loaded   bool

	location string
	note     *markdown.ParsedNote
	rendered *markdown.Rendered
	address  *dom.Element
	help     *dom.Element

	pending []Timer
}

// New returns an empty page filling size. Row 0 holds the address bar.
func New(size dom.Size, opts Options) *Page {
	if opts.Keymap == nil {
		opts.Keymap = keys.SourceFunc(keys.Default)
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard
	}
	if opts.Router == nil {
		opts.Router = discardSender{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clip.System{}
	}
	if opts.SequenceTimeout <= 0 {
		opts.SequenceTimeout = keys.DefaultTimeout
	}
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = 1
	}

	p := &Page{opts: opts, matcher: keys.NewMatcher(keys.Keymap{})}
	p.doc = dom.NewDocument(size, nil)
	p.doc.Resize(size, rootRect(size))
	p.address = &dom.Element{Tag: "input", Type: "url", Rect: dom.Rect{W: size.W, H: 1}}
	p.address.SetAttr("aria-label", "Address")
	p.doc.AppendFixed(p.address)

	p.doc.OnMutate = p.mutated
	p.doc.OnClick = p.clicked
	p.seek = seek.New(p.doc, seek.Options{
		Instance:      opts.ID,
		Notifier:      opts.Notifier,
		Store:         opts.Store,
		SettleDelay:   opts.SettleDelay,
		MutationDelay: opts.MutationDelay,
	})
	return p
}

func rootRect(size dom.Size) dom.Rect {
	return dom.Rect{X: 0, Y: 1, W: size.W, H: max(size.H-1, 0)}
}

func (p *Page) ID() string                   { return p.opts.ID }
func (p *Page) Location() string             { return p.location }
func (p *Page) Document() *dom.Document      { return p.doc }
func (p *Page) Rendered() *markdown.Rendered { return p.rendered }
func (p *Page) Address() *dom.Element        { return p.address }
func (p *Page) HelpOpen() bool               { return p.help != nil }
func (p *Page) Mode() seek.Mode              { return p.seek.Mode() }
func (p *Page) Seek() *seek.Machine          { return p.seek }

// Title is the document title, or the location if it has none.
func (p *Page) Title() string {
	if p.rendered != nil && p.rendered.Title != "" {
		return p.rendered.Title
	}
	return p.location
}

// Typing reports whether keys currently go to a text input.
func (p *Page) Typing() bool {
	return !p.seek.Active() && dom.IsTextInput(p.doc.Active)
}

// Pending returns the chords of an incomplete sequence.
func (p *Page) Pending() []keys.Chord { return p.matcher.Buffer() }

// Continuations lists the bindings that can complete the pending sequence.
func (p *Page) Continuations() []keys.Binding { return p.matcher.Continuations() }

// Show displays note at location. Moving to another document resets the
// scroll position and ends any seek session; a fragment scrolls to its
// heading.
func (p *Page) Show(location string, note *markdown.ParsedNote) []Timer {
	oldPath, _ := library.SplitFragment(p.location)
	path, frag := library.SplitFragment(location)
	if path != oldPath {
		p.seek.Cancel()
		p.closeHelp()
		p.doc.Root.ScrollTop = 0
	}
	p.location = location
	p.address.Text = location
	p.note = note
	p.doc.ReplaceBody(p.build())
	if frag != "" {
		p.scrollToFragment(frag)
	}
	return p.drain()
}

// Reload replaces the document content in place, keeping the location and
// scroll position. An active seek session redraws once the page settles.
func (p *Page) Reload(note *markdown.ParsedNote) []Timer {
	p.note = note
	p.doc.ReplaceBody(p.build())
	return p.drain()
}

// Resize lays the page out again for a new size.
func (p *Page) Resize(size dom.Size) []Timer {
	if size == p.doc.Viewport {
		return nil
	}
	p.doc.Resize(size, rootRect(size))
	p.address.Rect.W = size.W
	p.invalidate()
	if p.note != nil {
		p.doc.ReplaceBody(p.build())
	}
	if p.help != nil {
		p.closeHelp()
		p.openHelp()
	}
	return p.drain()
}

// ScrollTop is the scroll offset of the document root.
func (p *Page) ScrollTop() int { return p.doc.Root.ScrollTop }

// SetScrollTop scrolls the document root, as when restoring a session.
func (p *Page) SetScrollTop(y int) []Timer {
	if p.doc.ScrollTo(p.doc.Root, y) != 0 {
		p.invalidate()
	}
	return p.drain()
}

// ScrollRoot moves the document root by dy rows, as for a mouse wheel.
func (p *Page) ScrollRoot(dy int) []Timer {
	if p.doc.ScrollBy(p.doc.Root, dy) != 0 {
		p.invalidate()
	}
	return p.drain()
}

// ClickAt activates the topmost interactive element under the cell x, y,
// as for a mouse click. Any seek session ends first.
func (p *Page) ClickAt(x, y int) []Timer {
	p.seek.Cancel()
	if e := p.hit(x, y, dom.IsInteractive); e != nil {
		p.doc.Focus(e)
		p.doc.Click(e)
	}
	return p.drain()
}

// WheelAt scrolls the scroll container under the cell x, y by dy rows.
func (p *Page) WheelAt(x, y, dy int) []Timer {
	target := p.doc.Root
	if e := p.hit(x, y, p.doc.IsScrollable); e != nil {
		target = e
	}
	if p.doc.ScrollBy(target, dy) != 0 {
		p.invalidate()
	}
	return p.drain()
}

// hit returns the last element in document order under x, y that passes
// match, inside the open modal if there is one. A click on the wrapped tail
// of a link lands on its head.
func (p *Page) hit(x, y int, match func(*dom.Element) bool) *dom.Element {
	scope := p.doc.Root
	if m := p.doc.NearestModal(); m != nil {
		scope = m
	}
	var found *dom.Element
	dom.Walk(scope, func(e *dom.Element) bool {
		target := e
		if e.Attr("continues") == "true" {
			target = linkHead(e)
		}
		if target == nil || !match(target) || !p.doc.IsVisible(e) {
			return true
		}
		r := p.doc.ClientRect(e)
		if x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H {
			found = target
		}
		return true
	})
	return found
}

func linkHead(e *dom.Element) *dom.Element {
	if e.Parent == nil {
		return nil
	}
	span := e.Attr("span")
	for _, sib := range e.Parent.Children {
		if sib.Attr("span") == span && sib.Href != "" {
			return sib
		}
	}
	return nil
}

// RestoreSeek re-enters a persisted seek mode silently.
func (p *Page) RestoreSeek(mode seek.Mode) {
	p.seek.Restore(mode)
}

func (p *Page) build() *dom.Element {
	if p.note == nil {
		body := dom.New("body")
		body.Rect = dom.Rect{Y: p.doc.Root.Rect.Y, W: p.doc.Viewport.W, H: 1}
		p.rendered = nil
		return body
	}
	p.rendered = markdown.Build(p.note, markdown.Options{
		Left:       1,
		Top:        p.doc.Root.Rect.Y,
		Width:      p.doc.Viewport.W - 2,
		CodeHeight: p.opts.CodeHeight,
	})
	return p.rendered.Body
}

func (p *Page) scrollToFragment(frag string) {
	if p.rendered == nil {
		return
	}
	el := p.rendered.Anchor(frag)
	if el == nil {
		p.opts.Notifier.Notify("No section " + frag)
		return
	}
	if p.doc.ScrollTo(p.doc.Root, el.Rect.Y-p.doc.Root.Rect.Y) != 0 {
		p.invalidate()
	}
}

func (p *Page) mutated() {
	if t, ok := p.seek.Mutated(); ok {
		p.pending = append(p.pending, Timer{Kind: SettleTimer, Gen: t.Gen, Delay: t.Delay})
	}
}

func (p *Page) invalidate() {
	if t, ok := p.seek.Invalidate(); ok {
		p.pending = append(p.pending, Timer{Kind: SettleTimer, Gen: t.Gen, Delay: t.Delay})
	}
}

func (p *Page) drain() []Timer {
	out := p.pending
	p.pending = nil
	return out
}
