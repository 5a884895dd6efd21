// Package app is the Bubble Tea model that hosts the views of a library.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pfassina/vimnav/internal/clip"
	"github.com/pfassina/vimnav/internal/config"
	"github.com/pfassina/vimnav/internal/dom"
	"github.com/pfassina/vimnav/internal/keys"
	"github.com/pfassina/vimnav/internal/library"
	"github.com/pfassina/vimnav/internal/markdown"
	"github.com/pfassina/vimnav/internal/notify"
	"github.com/pfassina/vimnav/internal/page"
	"github.com/pfassina/vimnav/internal/panel"
	"github.com/pfassina/vimnav/internal/router"
	"github.com/pfassina/vimnav/internal/seek"
	"github.com/pfassina/vimnav/internal/session"
	"github.com/pfassina/vimnav/internal/store"
	"github.com/pfassina/vimnav/internal/theme"
	"github.com/pfassina/vimnav/internal/ui"
	"github.com/pfassina/vimnav/internal/watch"
)

// recentLimit is how many visited documents the start page lists.
const recentLimit = 10

// seekModeTTL is how long a persisted seek mode of a view that never came
// back is kept.
const seekModeTTL = 30 * 24 * time.Hour

// Options are the per-process parts of an App.
type Options struct {
	// DB is shared state storage. When nil the app opens its own in the
	// library's state directory.
	DB *store.DB
	// Output receives OSC 52 clipboard sequences.
	Output io.Writer
	// Remote marks an SSH session: the clipboard only goes through Output
	// and the saved session is neither restored nor written.
	Remote bool
}

type App struct {
	cfg     config.Config
	opts    Options
	theme   theme.Theme
	palette ui.Palette

	lib      *library.Library
	parser   *markdown.Parser
	db       *store.DB
	ownsDB   bool
	sessions *session.Store

	bus       *router.Bus
	coord     *router.Coordinator
	keymap    keys.Source
	clipboard clip.Clipboard

	watcher *watch.Watcher
	changes chan watch.Change
	watched map[string]string // view id -> watched file

	pages   map[string]*page.Page
	restore map[string]session.View

	toasts   *notify.Toasts
	toastGen uint64
	status   panel.Status
	whichKey panel.WhichKey
	address  panel.Address

	width  int
	height int
	sized  bool
	closed bool

	// cmds collects commands queued while handling one message.
	cmds []tea.Cmd
}

func New(cfg config.Config, opts Options) *App {
	a := &App{
		cfg:     cfg,
		opts:    opts,
		lib:     library.New(cfg.Root),
		parser:  markdown.NewParser(),
		bus:     router.NewBus(64),
		keymap:  keys.Once(keys.FileSource{Path: cfg.Keymap}),
		changes: make(chan watch.Change, 32),
		watched: make(map[string]string),
		pages:   make(map[string]*page.Page),
		width:   80,
		height:  24,
	}

	th, unknown := theme.WithColors(theme.Get(cfg.Theme), cfg.Colors)
	a.theme = th
	for _, name := range unknown {
		log.Warn("app: unknown color override", "name", name)
	}
	a.palette = ui.NewPalette(&a.theme)
	a.toasts = notify.NewToasts(cfg.ToastDurationDuration(), &a.theme)
	a.status = panel.NewStatus(&a.theme)
	a.whichKey = panel.NewWhichKey(&a.theme)
	a.address = panel.NewAddress(&a.theme)

	a.clipboard = a.newClipboard()
	a.openStore()
	if !opts.Remote {
		a.sessions = session.NewStore(cfg.StateDir())
	}

	w, err := watch.New(watch.DefaultDebounce, a.onChange)
	if err != nil {
		// Documents still open; they just won't reload on their own.
		log.Warn("app: file watcher unavailable", "err", err)
	} else {
		a.watcher = w
	}

	var focus router.FocusStore
	if a.db != nil {
		focus = a.db
	}
	a.coord = router.NewCoordinator(a, focus, library.StartPage)
	a.restoreSession()
	if len(a.coord.Views()) == 0 {
		if _, err := a.coord.Open(library.StartPage); err != nil {
			a.status.SetError(fmt.Sprintf("open start page: %v", err))
		}
	}
	return a
}

func (a *App) newClipboard() clip.Clipboard {
	out := a.opts.Output
	if out == nil {
		out = os.Stdout
	}
	if a.opts.Remote {
		return clip.OSC52{W: out}
	}
	return clip.Fallback{clip.System{}, clip.OSC52{W: out}}
}

func (a *App) openStore() {
	if a.opts.DB != nil {
		a.db = a.opts.DB
		return
	}
	dbPath := filepath.Join(a.cfg.StateDir(), "state.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		a.status.SetError(fmt.Sprintf("state dir: %v", err))
		return
	}
	db, err := store.Open(dbPath)
	if err != nil {
		// Without the store seek modes and focus history are not kept.
		a.status.SetError(fmt.Sprintf("state open failed: %v", err))
		log.Error("app: open state db", "path", dbPath, "err", err)
		return
	}
	a.db = db
	a.ownsDB = true
	if n, err := db.PruneSeekModes(time.Now().Add(-seekModeTTL)); err != nil {
		log.Warn("app: prune seek modes", "err", err)
	} else if n > 0 {
		log.Debug("app: pruned seek modes", "count", n)
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.bus.Listen(), a.warmKeymap(), a.flush()}
	if a.watcher != nil {
		go a.watcher.Start()
		cmds = append(cmds, a.listenChanges())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.Quit()
			break
		}
		a.handleKey(msg)

	case tea.MouseMsg:
		a.handleMouse(msg)

	case panel.AddressSubmitMsg:
		if p := a.front(); p != nil {
			a.schedule(p.ID(), p.Submit(msg.Value))
		}

	case panel.AddressCancelMsg:
		if p := a.front(); p != nil {
			p.Blur()
		}

	case router.Message:
		a.coord.Handle(msg)
		a.later(a.bus.Listen())

	case pageTimerMsg:
		if p := a.pages[msg.view]; p != nil {
			p.Fire(msg.timer)
		}

	case toastTickMsg:
		if msg.gen == a.toastGen {
			a.toasts.Tick(time.Now())
			a.armToasts()
		}

	case fileChangedMsg:
		a.reload(msg.change)
		a.later(a.listenChanges())

	case keymapReadyMsg:
		if msg.err != nil {
			log.Warn("app: keymap", "err", msg.err)
		}

	default:
		// Cursor blink and friends.
		if a.address.Editing() {
			var cmd tea.Cmd
			a.address, cmd = a.address.Update(msg)
			a.later(cmd)
		}
	}

	a.sync()
	return a, a.flush()
}

func (a *App) handleKey(msg tea.KeyMsg) {
	p := a.front()
	if p == nil {
		return
	}
	out := p.HandleKey(keys.FromKeyMsg(msg))
	a.schedule(p.ID(), out.Timers)
	if !out.Typing {
		return
	}
	if !a.address.Editing() {
		a.later(a.address.Edit(p.Location()))
	}
	var cmd tea.Cmd
	a.address, cmd = a.address.Update(msg)
	a.later(cmd)
	if !a.address.Editing() {
		// Enter or Escape; the submit or cancel message follows.
		p.Blur()
	}
}

func (a *App) handleMouse(msg tea.MouseMsg) {
	p := a.front()
	if p == nil || msg.Action != tea.MouseActionPress {
		return
	}
	size := a.pageSize()
	if msg.Y >= size.H {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.schedule(p.ID(), p.WheelAt(msg.X, msg.Y, -a.cfg.ScrollStep))
	case tea.MouseButtonWheelDown:
		a.schedule(p.ID(), p.WheelAt(msg.X, msg.Y, a.cfg.ScrollStep))
	case tea.MouseButtonLeft:
		a.schedule(p.ID(), p.ClickAt(msg.X, msg.Y))
	}
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.status.SetWidth(w)
	a.whichKey.SetWidth(w)
	a.address.SetWidth(w)
	a.toasts.SetWidth(w)
	if p := a.front(); p != nil {
		a.schedule(p.ID(), p.Resize(a.pageSize()))
	}
	if !a.sized {
		a.sized = true
		a.applyRestore()
	}
}

func (a *App) pageSize() dom.Size {
	h := a.height
	if a.cfg.ShowStatus {
		h--
	}
	return dom.Size{W: max(a.width, 1), H: max(h, 1)}
}

func (a *App) front() *page.Page {
	return a.pages[a.coord.Current()]
}

// sync mirrors the front page into the address bar, status line and
// which-key popup.
func (a *App) sync() {
	p := a.front()
	if p == nil {
		a.whichKey.Clear()
		return
	}
	switch {
	case p.Typing() && !a.address.Editing():
		a.later(a.address.Edit(p.Location()))
	case !p.Typing() && a.address.Editing():
		a.address.Stop()
	}
	a.address.SetLocation(p.Location())

	mode := panel.ModeNormal
	switch {
	case a.address.Editing():
		mode = panel.ModeAddress
	case p.Mode() == seek.Click:
		mode = panel.ModeClick
	case p.Mode() == seek.Focus:
		mode = panel.ModeFocus
	}
	a.status.SetMode(mode)
	a.status.SetDocument(p.Title(), p.Location())
	a.status.SetPending(keys.FormatSequence(p.Pending()))

	views := a.coord.Views()
	for i, v := range views {
		if v.ID == p.ID() {
			a.status.SetViews(i+1, len(views))
		}
	}
	a.whichKey.SetPending(p.Pending(), p.Continuations())
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}
	p := a.front()
	if p == nil {
		return ""
	}

	size := a.pageSize()
	c := newCanvas(size.W, size.H)
	top := paintPage(c, p)
	lines := c.lines(&a.palette)
	if len(lines) > 0 {
		lines[0] = a.address.View()
		for _, l := range top {
			lines[0] = overlayAt(lines[0], renderCells(l.cells, &a.palette), 0, l.x, a.width)
		}
	}
	result := strings.Join(lines, "\n")
	if a.cfg.ShowStatus {
		result += "\n" + a.status.View()
	}

	bottom := size.H - 1
	if a.whichKey.Visible() {
		result = overlayBottomLeft(result, a.whichKey.View(), bottom, a.width)
	}
	if t := a.toasts.View(); t != "" {
		result = overlayBottomRight(result, t, bottom, a.width)
	}
	return result
}

// Close saves the session and releases the watcher and the store. It is
// safe to call more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.saveSession()
	a.bus.Close()
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			log.Error("app: stop watcher", "err", err)
		}
	}
	if a.db != nil && a.ownsDB {
		if err := a.db.Close(); err != nil {
			log.Error("app: close state db", "err", err)
		}
	}
}

func (a *App) newPage(id string) *page.Page {
	var modes seek.ModeStore
	if a.db != nil {
		modes = a.db
	}
	return page.New(a.pageSize(), page.Options{
		ID:              id,
		Keymap:          a.keymap,
		Notifier:        notify.Func(a.notify),
		Router:          a.bus,
		Links:           a.lib,
		Clipboard:       a.clipboard,
		Store:           modes,
		SequenceTimeout: a.cfg.SequenceTimeoutDuration(),
		SettleDelay:     a.cfg.SettleDelayDuration(),
		MutationDelay:   a.cfg.MutationDelayDuration(),
		ScrollStep:      a.cfg.ScrollStep,
		CodeHeight:      a.cfg.CodeHeight,
	})
}

// content returns the markdown shown at path.
func (a *App) content(path string) ([]byte, error) {
	if path != library.StartPage {
		return a.lib.Read(path)
	}
	var recent []string
	if a.db != nil {
		visits, err := a.db.TopVisits(recentLimit)
		if err != nil {
			log.Warn("app: recent documents", "err", err)
		}
		for _, v := range visits {
			recent = append(recent, v.Location)
		}
	}
	return a.lib.StartContent(recent)
}

func (a *App) notify(msg string) {
	log.Debug("app: toast", "msg", msg)
	a.toasts.Notify(msg)
	a.armToasts()
}

// armToasts schedules a tick for the next toast to expire. Each call
// supersedes the previous tick.
func (a *App) armToasts() {
	next, ok := a.toasts.Next()
	if !ok {
		return
	}
	a.toastGen++
	gen := a.toastGen
	a.later(tea.Tick(max(time.Until(next), 0), func(time.Time) tea.Msg {
		return toastTickMsg{gen: gen}
	}))
}

func (a *App) schedule(view string, timers []page.Timer) {
	for _, t := range timers {
		a.later(tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return pageTimerMsg{view: view, timer: t}
		}))
	}
}

func (a *App) later(cmd tea.Cmd) {
	if cmd != nil {
		a.cmds = append(a.cmds, cmd)
	}
}

func (a *App) flush() tea.Cmd {
	cmds := a.cmds
	a.cmds = nil
	return tea.Batch(cmds...)
}

func (a *App) warmKeymap() tea.Cmd {
	src := a.keymap
	return func() tea.Msg {
		_, err := src.Load()
		return keymapReadyMsg{err: err}
	}
}

// onChange runs on the watcher's goroutine.
func (a *App) onChange(ch watch.Change) {
	select {
	case a.changes <- ch:
	default:
		log.Warn("app: dropping file change", "path", ch.Path)
	}
}

func (a *App) listenChanges() tea.Cmd {
	changes := a.changes
	return func() tea.Msg {
		return fileChangedMsg{change: <-changes}
	}
}

// reload redraws every view showing the changed file.
func (a *App) reload(ch watch.Change) {
	if ch.Path == "" {
		return
	}
	loc, ok := a.lib.Location(ch.Path)
	if !ok {
		return
	}
	if ch.Removed {
		if a.db != nil {
			if err := a.db.ForgetVisit(loc); err != nil {
				log.Warn("app: forget visit", "location", loc, "err", err)
			}
		}
		a.notify("Document removed: " + loc)
		return
	}
	content, err := a.lib.Read(loc)
	if err != nil {
		a.notify(err.Error())
		return
	}
	for id, p := range a.pages {
		if a.watched[id] == filepath.Clean(ch.Path) {
			a.schedule(id, p.Reload(a.parser.Parse(content)))
		}
	}
}

func (a *App) watch(viewID, path string) {
	abs := a.lib.Path(path)
	old := a.watched[viewID]
	if old == abs {
		return
	}
	if a.watcher != nil && old != "" {
		a.watcher.Remove(old)
	}
	delete(a.watched, viewID)
	if a.watcher == nil || abs == "" {
		return
	}
	if err := a.watcher.Add(abs); err != nil {
		log.Warn("app: watch document", "path", abs, "err", err)
		return
	}
	a.watched[viewID] = abs
}

func (a *App) restoreSession() {
	if a.sessions == nil {
		return
	}
	st, err := a.sessions.Load()
	if err != nil {
		log.Warn("app: load session", "err", err)
		return
	}

	// Attaching views rewrites the focus slots, so read them first.
	var cur, prev string
	if a.db != nil {
		if cur, prev, err = a.db.Focus(); err != nil {
			log.Warn("app: load focus history", "err", err)
		}
	}

	a.restore = make(map[string]session.View)
	for _, v := range st.Views {
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		if _, err := a.coord.Attach(v.ID, v.Location); err != nil {
			log.Warn("app: restore view", "location", v.Location, "err", err)
			continue
		}
		a.coord.SetHistory(v.ID, v.Back, v.Forward)
		a.restore[v.ID] = v
	}

	if active, ok := st.Current(); ok {
		a.coord.Activate(active.ID)
	}
	a.coord.RestoreFocus(cur, prev)
}

// applyRestore puts back scroll positions and seek modes once the real
// window size is known.
func (a *App) applyRestore() {
	size := a.pageSize()
	for id, v := range a.restore {
		p := a.pages[id]
		if p == nil {
			continue
		}
		a.schedule(id, p.Resize(size))
		a.schedule(id, p.SetScrollTop(v.ScrollTop))
		if a.db == nil {
			continue
		}
		mode, err := a.db.SeekMode(id)
		if err != nil {
			log.Warn("app: load seek mode", "view", id, "err", err)
			continue
		}
		p.RestoreSeek(seek.ParseMode(mode))
	}
	a.restore = nil
}

func (a *App) saveSession() {
	if a.sessions == nil {
		return
	}
	var st session.State
	for i, v := range a.coord.Views() {
		sv := session.View{ID: v.ID, Location: v.Location, Back: v.Back, Forward: v.Forward}
		if p := a.pages[v.ID]; p != nil {
			sv.ScrollTop = p.ScrollTop()
		}
		if v.ID == a.coord.Current() {
			st.Active = i
		}
		st.Views = append(st.Views, sv)
	}
	if err := a.sessions.Save(st); err != nil {
		log.Error("app: save session", "err", err)
	}
}
