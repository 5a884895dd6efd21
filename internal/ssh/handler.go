package ssh

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/pfassina/vimnav/internal/app"
	"github.com/pfassina/vimnav/internal/config"
	"github.com/pfassina/vimnav/internal/store"
)

// NewHandler returns a Bubble Tea handler for SSH sessions. Every session
// gets its own views; they share db.
func NewHandler(cfg config.Config, db *store.DB) bts.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		a := app.New(cfg, app.Options{DB: db, Output: sess, Remote: true})
		log.Info("ssh: session started", "user", sess.User(), "remote", sess.RemoteAddr())
		go func() {
			<-sess.Context().Done()
			a.Close()
			log.Info("ssh: session ended", "user", sess.User())
		}()

		opts := []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}
		opts = append(opts, bts.MakeOptions(sess)...)

		return a, opts
	}
}
