package ssh

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bts "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/pfassina/vimnav/internal/config"
	"github.com/pfassina/vimnav/internal/store"
)

// Server wraps a Wish SSH server serving one library.
type Server struct {
	server *ssh.Server
	db     *store.DB
	cfg    config.Config
}

// New creates a new SSH server. The host key and the state database live
// in the library's state directory.
func New(cfg config.Config) (*Server, error) {
	if err := os.MkdirAll(cfg.StateDir(), 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := store.Open(filepath.Join(cfg.StateDir(), "state.db"))
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	s, err := wish.NewServer(
		wish.WithAddress(cfg.Listen),
		wish.WithHostKeyPath(HostKeyPath(cfg)),
		wish.WithMiddleware(
			bts.Middleware(NewHandler(cfg, db)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return &Server{server: s, db: db, cfg: cfg}, nil
}

// HostKeyPath is where the server keeps its host key.
func HostKeyPath(cfg config.Config) string {
	return filepath.Join(cfg.StateDir(), "ssh_host_key")
}

// ListenAndServe starts the SSH server.
func (s *Server) ListenAndServe() error {
	err := s.server.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// Close stops the SSH server and closes the state database.
func (s *Server) Close() error {
	return errors.Join(s.server.Close(), s.db.Close())
}
