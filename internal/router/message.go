// Package router carries commands between pages and the coordinator that
// owns the set of views.
package router

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Commands a page sends to the coordinator.
const (
	SwitchFirst    = "switch-to-first-tab"
	SwitchLast     = "switch-to-last-tab"
	SwitchLeft     = "switch-to-left-tab"
	SwitchRight    = "switch-to-right-tab"
	SwitchPrev     = "switch-to-prev-tab"
	HistoryBack    = "history-back"
	HistoryForward = "history-forward"
	OpenLocation   = "open-location"
	NewView        = "new-tab"
	CloseView      = "close-tab"
	Quit           = "quit"
)

// Commands the coordinator forwards into a page.
const (
	ToggleClick  = "toggle-label-click"
	ToggleFocus  = "toggle-label-focus"
	Blur         = "blur"
	CopyLocation = "copy-current-location"
	ShowToast    = "show-toast"
	ToggleHelp   = "toggle-help"
	FocusAddress = "focus-address"
)

var outbound = map[string]bool{
	SwitchFirst: true, SwitchLast: true, SwitchLeft: true, SwitchRight: true,
	SwitchPrev: true, HistoryBack: true, HistoryForward: true,
	OpenLocation: true, NewView: true, CloseView: true, Quit: true,
}

// IsOutbound reports whether cmd is handled by the coordinator rather than
// a page.
func IsOutbound(cmd string) bool {
	return outbound[cmd]
}

// Message is one command in flight. View is the sending or target view;
// empty means the current one. Arg carries a location or toast text.
type Message struct {
	Command string
	Arg     string
	View    string
}

// DefaultBufferSize bounds the number of messages in flight.
const DefaultBufferSize = 64

// Bus is a fire-and-forget message channel into the program.
type Bus struct {
	ch   chan Message
	done chan struct{}
	once sync.Once
}

// NewBus returns a bus holding up to size undelivered messages.
func NewBus(size int) *Bus {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Bus{ch: make(chan Message, size), done: make(chan struct{})}
}

// Send queues m without blocking. When the buffer is full the message is
// dropped.
func (b *Bus) Send(m Message) {
	select {
	case <-b.done:
		return
	default:
	}
	select {
	case b.ch <- m:
	default:
		log.Warn("router: buffer full, dropping message", "command", m.Command, "view", m.View)
	}
}

// Listen returns a command that waits for the next message. The program
// calls it again after each delivery.
func (b *Bus) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case m := <-b.ch:
			return m
		case <-b.done:
			return nil
		}
	}
}

// Close stops delivery. Pending and later messages are discarded.
func (b *Bus) Close() {
	b.once.Do(func() { close(b.done) })
}
