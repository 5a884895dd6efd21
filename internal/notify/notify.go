// Package notify shows short stacked messages that expire on their own.
package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/vimnav/internal/theme"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 2000 * time.Millisecond

// Notifier accepts fire-and-forget messages for the user.
type Notifier interface {
	Notify(message string)
}

// Func adapts a function to Notifier.
type Func func(string)

func (f Func) Notify(message string) { f(message) }

// Discard drops every message.
var Discard Notifier = Func(func(string) {})

// Toast is one message on the stack.
type Toast struct {
	Message string
	Expires time.Time
}

// Toasts is a stack of toasts, rendered newest at the bottom. It is safe
// to call Notify from any goroutine.
type Toasts struct {
	mu       sync.Mutex
	items    []Toast
	duration time.Duration
	now      func() time.Time
	theme    *theme.Theme
	width    int
}

// NewToasts returns an empty stack whose toasts live for d.
func NewToasts(d time.Duration, th *theme.Theme) *Toasts {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Toasts{duration: d, now: time.Now, theme: th}
}

// Notify pushes a toast.
func (t *Toasts) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, Toast{Message: message, Expires: t.now().Add(t.duration)})
}

// Tick drops expired toasts and reports whether any were removed. The
// survivors close up the gap.
func (t *Toasts) Tick(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.items[:0]
	for _, it := range t.items {
		if now.Before(it.Expires) {
			kept = append(kept, it)
		}
	}
	changed := len(kept) != len(t.items)
	t.items = kept
	return changed
}

// Next returns the earliest expiry, if any toast is up.
func (t *Toasts) Next() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.items) == 0 {
		return time.Time{}, false
	}
	next := t.items[0].Expires
	for _, it := range t.items[1:] {
		if it.Expires.Before(next) {
			next = it.Expires
		}
	}
	return next, true
}

// Items returns a copy of the stack, oldest first.
func (t *Toasts) Items() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Toast, len(t.items))
	copy(out, t.items)
	return out
}

// Len returns the number of toasts up.
func (t *Toasts) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

func (t *Toasts) SetWidth(width int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width = width
}

// View renders the stack as right-aligned boxes, one per line, oldest on
// top. It returns "" when nothing is up.
func (t *Toasts) View() string {
	items := t.Items()
	if len(items) == 0 {
		return ""
	}

	t.mu.Lock()
	maxW := t.width / 2
	t.mu.Unlock()
	if maxW < 12 {
		maxW = 40
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Background(t.theme.ToastBg).
		Foreground(t.theme.ToastFg)

	lines := make([]string, len(items))
	widest := 0
	for i, it := range items {
		msg := it.Message
		if lipgloss.Width(msg) > maxW-2 {
			msg = truncate(msg, maxW-2)
		}
		lines[i] = style.Render(msg)
		widest = max(widest, lipgloss.Width(lines[i]))
	}
	for i, l := range lines {
		lines[i] = strings.Repeat(" ", widest-lipgloss.Width(l)) + l
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, w int) string {
	if w <= 1 || ansi.StringWidth(s) <= w {
		return s
	}
	return ansi.Truncate(s, w, "…")
}
