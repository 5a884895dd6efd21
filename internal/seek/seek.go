// Package seek puts two-character labels over on-screen elements and lets
// the user pick one by typing its label.
package seek

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pfassina/vimnav/internal/dom"
	"github.com/pfassina/vimnav/internal/keys"
	"github.com/pfassina/vimnav/internal/labels"
	"github.com/pfassina/vimnav/internal/notify"
)

// Mode is the kind of pick in progress.
type Mode int

const (
	Off Mode = iota
	Click
	Focus
)

func (m Mode) String() string {
	switch m {
	case Click:
		return "click"
	case Focus:
		return "focus"
	}
	return "off"
}

// ParseMode is the inverse of Mode.String. Unknown names are Off.
func ParseMode(s string) Mode {
	switch strings.ToLower(s) {
	case "click":
		return Click
	case "focus":
		return Focus
	}
	return Off
}

const (
	DefaultSettleDelay   = 100 * time.Millisecond
	DefaultMutationDelay = 500 * time.Millisecond
)

// Toast messages.
const (
	MsgNothing = "Nothing to target"
	MsgInvalid = "Invalid label"
	MsgExit    = "Exiting seek"
)

// Continuation runs once with the scroll target of a Focus pick.
type Continuation func(target *dom.Element)

// ModeStore persists the active mode per document instance.
type ModeStore interface {
	SaveSeekMode(instance, mode string) error
}

// Timer asks the caller to call Fire(Gen) after Delay.
type Timer struct {
	Gen   uint64
	Delay time.Duration
}

// Options configures a Machine. Zero values pick the defaults.
type Options struct {
	Instance      string
	Notifier      notify.Notifier
	Store         ModeStore
	SettleDelay   time.Duration
	MutationDelay time.Duration
}

// Machine is the seek session of one document. It is Off, or picking in
// Click or Focus mode with a label layer on the document.
type Machine struct {
	doc      *dom.Document
	opts     Options
	mode     Mode
	targets  []dom.Overlay
	first    rune
	cont     Continuation
	gen      uint64
	settling bool
	// granted holds containers made focusable for the current session.
	granted []*dom.Element
}

// New returns an idle machine over doc.
func New(doc *dom.Document, opts Options) *Machine {
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.MutationDelay <= 0 {
		opts.MutationDelay = DefaultMutationDelay
	}
	return &Machine{doc: doc, opts: opts}
}

// Mode returns the active mode.
func (m *Machine) Mode() Mode { return m.mode }

// Active reports whether a pick is in progress.
func (m *Machine) Active() bool { return m.mode != Off }

// Targets returns the labeled candidates of the current session.
func (m *Machine) Targets() []dom.Overlay { return m.targets }

// Partial returns the first label key typed so far, or 0.
func (m *Machine) Partial() rune { return m.first }

// Toggle enters mode, or cancels the session if mode is already active.
func (m *Machine) Toggle(mode Mode) {
	if mode == Off {
		m.Cancel()
		return
	}
	if m.mode == mode {
		m.end()
		return
	}
	m.end()
	m.enter(mode, nil, true)
}

// PickForFocus starts a Focus session that runs cont on the picked
// element's scroll target.
func (m *Machine) PickForFocus(cont Continuation) {
	m.end()
	m.enter(Focus, cont, true)
}

// Restore re-enters a persisted mode without notices.
func (m *Machine) Restore(mode Mode) {
	m.end()
	if mode != Off {
		m.enter(mode, nil, false)
	}
}

// Cancel ends any session silently.
func (m *Machine) Cancel() {
	if m.mode != Off {
		m.end()
	}
}

// HandleKey consumes one chord while a session is active. It reports false
// only when no session is active.
func (m *Machine) HandleKey(c keys.Chord) bool {
	if m.mode == Off {
		return false
	}
	if c.Key == "Escape" && !c.Ctrl && !c.Alt && !c.Meta {
		m.end()
		m.opts.Notifier.Notify(MsgExit)
		return true
	}
	r := c.Rune()
	if r == 0 || !labels.InAlphabet(r) {
		return true
	}
	if len(m.targets) == 0 {
		// Waiting for a settle timer to redraw.
		return true
	}

	if m.first == 0 {
		for _, t := range m.targets {
			if []rune(t.Label)[0] == r {
				m.first = r
				return true
			}
		}
		m.opts.Notifier.Notify(MsgInvalid)
		return true
	}

	label := string([]rune{m.first, r})
	m.first = 0
	// Targets hold the catalog prefix, so a label's index is its target's.
	if i := labels.Index(label); i >= 0 && i < len(m.targets) {
		m.resolve(m.targets[i].Target)
		return true
	}
	m.opts.Notifier.Notify(MsgInvalid)
	return true
}

func (m *Machine) resolve(target *dom.Element) {
	mode, cont := m.mode, m.cont

	switch mode {
	case Click:
		m.end()
		m.doc.Focus(target)
		m.doc.Click(target)
	case Focus:
		// Focus before end takes back the temporary tab index.
		m.doc.Focus(target)
		scrollTarget := m.doc.NearestScrollableAncestor(m.doc.Active)
		m.end()
		if cont != nil && scrollTarget != nil {
			cont(scrollTarget)
		}
	}
}

// Invalidate drops the label layer after a scroll or resize. While the
// mode stays on it returns a timer for redrawing.
func (m *Machine) Invalidate() (Timer, bool) {
	if m.mode == Off {
		return Timer{}, false
	}
	m.clear()
	return m.arm(m.opts.SettleDelay), true
}

// Mutated notes a structural change. Each call restarts the settle window.
func (m *Machine) Mutated() (Timer, bool) {
	if m.mode == Off {
		return Timer{}, false
	}
	return m.arm(m.opts.MutationDelay), true
}

// Fire handles a settle timer. Stale generations are ignored. It reports
// whether the label layer was redrawn.
func (m *Machine) Fire(gen uint64) bool {
	if !m.settling || gen != m.gen || m.mode == Off {
		return false
	}
	m.settling = false
	m.clear()
	if !m.render() {
		m.end()
		return false
	}
	return true
}

func (m *Machine) arm(d time.Duration) Timer {
	m.gen++
	m.settling = true
	return Timer{Gen: m.gen, Delay: d}
}

func (m *Machine) enter(mode Mode, cont Continuation, loud bool) {
	m.mode = mode
	m.cont = cont
	if !m.render() {
		m.mode = Off
		m.cont = nil
		if loud {
			m.opts.Notifier.Notify(MsgNothing)
		}
		return
	}
	m.persist()
}

// render enumerates candidates and draws their labels. It reports false
// when there is nothing to pick.
func (m *Machine) render() bool {
	cands := m.candidates()
	eligible := len(cands)
	if m.mode == Click {
		eligible-- // the root is always there
	}
	if eligible <= 0 {
		return false
	}
	if len(cands) > labels.Size() {
		log.Debug("seek: more targets than labels", "targets", len(cands), "labels", labels.Size())
	}
	for i, l := range labels.Assign(len(cands)) {
		m.targets = append(m.targets, dom.Overlay{Label: l, Target: cands[i]})
		m.doc.AddOverlay(l, cands[i])
	}
	return true
}

func (m *Machine) candidates() []*dom.Element {
	scope := m.doc.NearestModal()
	if scope == nil {
		scope = m.doc.Root
	}

	switch m.mode {
	case Click:
		out := []*dom.Element{m.doc.Root}
		out = append(out, dom.Find(scope, func(e *dom.Element) bool {
			return e != m.doc.Root && dom.IsInteractive(e) && m.doc.IsVisible(e)
		})...)
		return out
	case Focus:
		out := dom.Find(scope, func(e *dom.Element) bool {
			return m.doc.IsScrollable(e) && m.doc.IsVisible(e)
		})
		for _, e := range out {
			if !dom.IsFocusable(e) {
				e.TabIndex = -1
				m.granted = append(m.granted, e)
			}
		}
		return out
	}
	return nil
}

func (m *Machine) clear() {
	m.targets = nil
	m.first = 0
	m.doc.ClearOverlays()
}

func (m *Machine) end() {
	was := m.mode
	m.clear()
	m.mode = Off
	m.cont = nil
	m.settling = false
	for _, e := range m.granted {
		e.TabIndex = 0
	}
	m.granted = nil
	if was != Off {
		m.persist()
	}
}

func (m *Machine) persist() {
	if m.opts.Store == nil {
		return
	}
	if err := m.opts.Store.SaveSeekMode(m.opts.Instance, m.mode.String()); err != nil {
		log.Warn("save seek mode", "instance", m.opts.Instance, "err", err)
	}
}
