package page

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/pfassina/vimnav/internal/dom"
	"github.com/pfassina/vimnav/internal/keys"
	"github.com/pfassina/vimnav/internal/library"
	"github.com/pfassina/vimnav/internal/router"
	"github.com/pfassina/vimnav/internal/scroll"
	"github.com/pfassina/vimnav/internal/seek"
)

// HandleKey routes one key event: an active seek session takes it first,
// then a focused text input, then the key matcher.
func (p *Page) HandleKey(c keys.Chord) Outcome {
	p.ensureKeymap()

	if p.seek.Active() {
		p.seek.HandleKey(c)
		return Outcome{Consumed: true, Timers: p.drain()}
	}
	if dom.IsTextInput(p.doc.Active) {
		return Outcome{Typing: true, Timers: p.drain()}
	}

	r := p.matcher.Feed(c)
	if r.Pending {
		p.pending = append(p.pending, Timer{Kind: SequenceTimer, Gen: r.Gen, Delay: p.opts.SequenceTimeout})
	}
	if r.Command != "" {
		p.run(r.Command, "")
	}
	return Outcome{Consumed: r.Consumed, Timers: p.drain()}
}

// Fire handles an expired timer and reports whether the page changed.
// Stale timers are ignored.
func (p *Page) Fire(t Timer) bool {
	switch t.Kind {
	case SequenceTimer:
		chords, ok := p.matcher.Expire(t.Gen)
		if ok {
			p.opts.Notifier.Notify("Clearing sequence: " + keys.FormatSequence(chords))
		}
		return ok
	case SettleTimer:
		return p.seek.Fire(t.Gen)
	}
	return false
}

// OnCommand performs a command forwarded by the coordinator.
func (p *Page) OnCommand(m router.Message) []Timer {
	if router.IsOutbound(m.Command) {
		log.Warn("page: ignoring coordinator command", "command", m.Command, "view", p.opts.ID)
		return nil
	}
	p.run(m.Command, m.Arg)
	return p.drain()
}

// SetKeymap installs a binding set, replacing the lazily loaded one.
func (p *Page) SetKeymap(km keys.Keymap) {
	p.loaded = true
	p.matcher.SetKeymap(km)
	if errs := keys.Validate(km); len(errs) > 0 {
		log.Warn("page: keymap problems", "count", len(errs), "first", errs[0])
		p.opts.Notifier.Notify("Keymap: " + errs[0].Error())
	}
}

// Keymap returns the active binding set.
func (p *Page) Keymap() keys.Keymap { return p.matcher.Keymap() }

func (p *Page) ensureKeymap() {
	if p.loaded {
		return
	}
	km, err := p.opts.Keymap.Load()
	if err != nil {
		log.Error("page: load keymap", "err", err)
		p.loaded = true
		p.opts.Notifier.Notify("Keymap failed to load: " + err.Error())
		return
	}
	p.SetKeymap(km)
}

func (p *Page) run(cmd, arg string) {
	switch {
	case scroll.IsCommand(cmd):
		p.scroll(cmd)
		return
	case router.IsOutbound(cmd):
		p.opts.Router.Send(router.Message{Command: cmd, Arg: arg, View: p.opts.ID})
		return
	}

	switch cmd {
	case router.ToggleClick:
		p.seek.Toggle(seek.Click)
	case router.ToggleFocus:
		p.seek.Toggle(seek.Focus)
	case router.Blur:
		p.closeHelp()
		p.Blur()
	case router.CopyLocation:
		p.copyText(p.location, "Copied "+p.location)
	case router.ShowToast:
		if arg != "" {
			p.opts.Notifier.Notify(arg)
		}
	case router.ToggleHelp:
		if p.help != nil {
			p.closeHelp()
		} else {
			p.openHelp()
		}
	case router.FocusAddress:
		p.focusAddress()
	default:
		log.Debug("page: unknown command", "command", cmd)
		p.opts.Notifier.Notify("Unknown command: " + cmd)
	}
}

func (p *Page) scroll(cmd string) {
	if t, ok := p.resolver.Resolve(p.doc); ok {
		p.scrollBy(t, cmd)
		return
	}
	p.seek.PickForFocus(func(t *dom.Element) { p.scrollBy(t, cmd) })
}

func (p *Page) scrollBy(t *dom.Element, cmd string) {
	if scroll.Apply(p.doc, t, cmd, p.opts.ScrollStep) != 0 {
		p.invalidate()
	}
}

// Blur moves focus back to the document and resets the address bar.
func (p *Page) Blur() {
	p.address.Text = p.location
	p.doc.Blur()
}

// Submit leaves the address bar and opens what was typed into it.
func (p *Page) Submit(text string) []Timer {
	p.Blur()
	if text != "" && text != p.location {
		p.follow(text)
	}
	return p.drain()
}

func (p *Page) focusAddress() {
	p.address.Text = p.location
	p.doc.Focus(p.address)
}

func (p *Page) clicked(e *dom.Element) {
	switch {
	case e == p.address:
		p.focusAddress()
	case e.Action == closeHelpAction:
		p.closeHelp()
	case e.Action != "":
		p.run(e.Action, "")
	case e.Href != "":
		p.follow(e.Href)
	}
}

// follow opens a link target. Links leaving the library are copied instead.
func (p *Page) follow(href string) {
	loc := href
	if p.opts.Links != nil {
		var err error
		loc, err = p.opts.Links.Resolve(p.location, href)
		switch {
		case errors.Is(err, library.ErrExternal):
			p.copyText(href, "Copied external link "+href)
			return
		case err != nil:
			p.opts.Notifier.Notify(err.Error())
			return
		}
	}
	p.opts.Router.Send(router.Message{Command: router.OpenLocation, Arg: loc, View: p.opts.ID})
}

func (p *Page) copyText(text, done string) {
	if err := p.opts.Clipboard.Copy(text); err != nil {
		log.Warn("page: copy", "err", err)
		p.opts.Notifier.Notify(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	p.opts.Notifier.Notify(done)
}
