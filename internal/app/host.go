package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/pfassina/vimnav/internal/library"
	"github.com/pfassina/vimnav/internal/router"
)

// Load implements router.Host.
func (a *App) Load(viewID, location string) error {
	path, _ := library.SplitFragment(location)
	content, err := a.content(path)
	if err != nil {
		return err
	}
	note := a.parser.Parse(content)

	p := a.pages[viewID]
	if p == nil {
		p = a.newPage(viewID)
		a.pages[viewID] = p
	}
	a.schedule(viewID, p.Show(location, note))
	a.watch(viewID, path)

	if path != library.StartPage && a.db != nil {
		if err := a.db.RecordVisit(path); err != nil {
			log.Warn("app: record visit", "location", path, "err", err)
		}
	}
	return nil
}

// Show implements router.Host.
func (a *App) Show(viewID string) {
	if p := a.pages[viewID]; p != nil {
		a.schedule(viewID, p.Resize(a.pageSize()))
	}
}

// Detach implements router.Host.
func (a *App) Detach(viewID string) {
	a.watch(viewID, library.StartPage)
	delete(a.pages, viewID)
	delete(a.restore, viewID)
	if a.db != nil {
		if err := a.db.ForgetSeekMode(viewID); err != nil {
			log.Warn("app: forget seek mode", "view", viewID, "err", err)
		}
	}
}

// Deliver implements router.Host.
func (a *App) Deliver(viewID string, m router.Message) {
	if p := a.pages[viewID]; p != nil {
		a.schedule(viewID, p.OnCommand(m))
	}
}

// Quit implements router.Host.
func (a *App) Quit() {
	a.saveSession()
	a.later(tea.Quit)
}
