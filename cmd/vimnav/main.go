package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/pfassina/vimnav/internal/app"
	"github.com/pfassina/vimnav/internal/config"
	"github.com/pfassina/vimnav/internal/keys"
	"github.com/pfassina/vimnav/internal/logging"
	"github.com/pfassina/vimnav/internal/ssh"
	"github.com/pfassina/vimnav/internal/theme"
)

func main() {
	cfg := config.Default()
	configExisted, err := config.LoadFile(&cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	root := flag.String("root", cfg.Root, "path to the markdown library")
	serve := flag.Bool("serve", cfg.Serve, "run in SSH server mode")
	listen := flag.String("listen", cfg.Listen, "listen address for --serve (e.g. :2222)")
	themeName := flag.String("theme", cfg.Theme, "color theme")
	keymap := flag.String("keymap", cfg.Keymap, "path to a keymap JSON file")
	seqTimeout := flag.Int("sequence-timeout", cfg.SequenceTimeout, "key sequence timeout in ms")
	settle := flag.Int("settle-delay", cfg.SettleDelay, "label redraw delay after scrolling in ms")
	toastDur := flag.Int("toast-duration", cfg.ToastDuration, "toast lifetime in ms")
	scrollStep := flag.Int("scroll-step", cfg.ScrollStep, "rows per line scroll")
	logLevel := flag.String("log-level", "info", "log level: debug|info|warn|error")
	printKeymap := flag.Bool("print-keymap", false, "print the built-in keymap and exit")

	flag.Parse()

	if *printKeymap {
		os.Stdout.Write(keys.DefaultJSON())
		return
	}

	cfg.Root = absPath(config.ExpandHome(*root))
	cfg.Serve = *serve
	cfg.Listen = *listen
	cfg.Theme = *themeName
	cfg.Keymap = config.ExpandHome(*keymap)
	cfg.SequenceTimeout = *seqTimeout
	cfg.SettleDelay = *settle
	cfg.ToastDuration = *toastDur
	cfg.ScrollStep = *scrollStep

	if !slices.Contains(theme.Names(), cfg.Theme) {
		fmt.Fprintf(os.Stderr, "unknown theme %q (available: %v)\n", cfg.Theme, theme.Names())
		os.Exit(1)
	}

	// First run: without a config file or an explicit --root, ask for the
	// library and persist it.
	if !configExisted && !flagSet("root") {
		res, err := config.RunSetup()
		if err != nil {
			fmt.Fprintln(os.Stderr, "setup failed:", err)
			os.Exit(1)
		}
		if res.Cancelled {
			os.Exit(0)
		}
		cfg.Root = absPath(res.Root)
	}

	if err := os.MkdirAll(cfg.Root, 0755); err != nil {
		fmt.Fprintln(os.Stderr, "error creating library dir:", err)
		os.Exit(1)
	}
	closer, err := logging.Setup(cfg.StateDir(), logging.ParseLevel(*logLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error opening log:", err)
		os.Exit(1)
	}
	defer closer.Close()
	log.Info("starting", "root", cfg.Root, "serve", cfg.Serve)

	if cfg.Serve {
		runServe(cfg, closer)
		return
	}
	runLocal(cfg, closer)
}

func runLocal(cfg config.Config, closer io.Closer) {
	a := app.New(cfg, app.Options{Output: os.Stdout})
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	a.Close()
	if err != nil {
		log.Error("program exited", "err", err)
		fmt.Fprintln(os.Stderr, err)
		closer.Close()
		os.Exit(1)
	}
}

func runServe(cfg config.Config, closer io.Closer) {
	s, err := ssh.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		closer.Close()
		os.Exit(1)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		if err := s.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing server: %v\n", err)
		}
	}()

	fmt.Fprintf(os.Stderr, "serving %s on %s\n", cfg.Root, cfg.Listen)
	if err := s.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closer.Close()
		os.Exit(1)
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// flagSet reports whether name was given on the command line.
func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
