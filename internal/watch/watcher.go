// Package watch reports changes to the markdown files of open documents.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a path must stay quiet before it is reported.
const DefaultDebounce = 200 * time.Millisecond

// Change is a settled event for one file.
type Change struct {
	Path    string
	Removed bool
}

// Watcher monitors the directories of watched files and reports changes to
// those files once they settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	delay    time.Duration
	onChange func(Change)

	mu       sync.Mutex
	files    map[string]int // watched file -> refcount
	dirs     map[string]int // watched dir -> number of files in it
	debounce map[string]*time.Timer
	stopped  bool
}

// New returns a watcher calling onChange from its own goroutine.
func New(delay time.Duration, onChange func(Change)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Watcher{
		watcher:  fw,
		delay:    delay,
		onChange: onChange,
		files:    make(map[string]int),
		dirs:     make(map[string]int),
		debounce: make(map[string]*time.Timer),
	}, nil
}

// Add starts reporting changes to path. Calls are counted; each Add needs a
// Remove.
func (w *Watcher) Add(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[path] == 0 {
		if w.dirs[dir] == 0 {
			if err := w.watcher.Add(dir); err != nil {
				return err
			}
		}
		w.dirs[dir]++
	}
	w.files[path]++
	return nil
}

// Remove undoes one Add.
func (w *Watcher) Remove(path string) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[path] == 0 {
		return
	}
	w.files[path]--
	if w.files[path] > 0 {
		return
	}
	delete(w.files, path)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		if err := w.watcher.Remove(dir); err != nil {
			log.Debug("watch: remove dir", "dir", dir, "err", err)
		}
	}
}

// Start begins watching for changes. Blocks until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch: fsnotify error", "err", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if !strings.HasSuffix(path, ".md") || (event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write)) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || w.files[path] == 0 {
		return
	}

	// Debounce: editors write files in several steps.
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		stopped := w.stopped
		w.mu.Unlock()
		if stopped {
			return
		}

		_, err := os.Stat(path)
		w.onChange(Change{Path: path, Removed: os.IsNotExist(err)})
	})
}

// Stop stops the watcher and drops pending changes.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	w.stopped = true
	for p, t := range w.debounce {
		t.Stop()
		delete(w.debounce, p)
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
