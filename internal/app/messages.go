package app

import (
	"github.com/pfassina/vimnav/internal/page"
	"github.com/pfassina/vimnav/internal/watch"
)

// pageTimerMsg fires a timer a page asked for.
type pageTimerMsg struct {
	view  string
	timer page.Timer
}

// toastTickMsg expires toasts. Ticks from an older generation are ignored.
type toastTickMsg struct{ gen uint64 }

// fileChangedMsg reports a settled change to a watched document.
type fileChangedMsg struct{ change watch.Change }

// keymapReadyMsg is sent once the shared keymap has been loaded.
type keymapReadyMsg struct{ err error }
