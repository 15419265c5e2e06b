package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/petems/click-tray/internal/app"
	"github.com/petems/click-tray/internal/clicker"
	"github.com/petems/click-tray/internal/config"
	"github.com/petems/click-tray/internal/hotkey"
	"github.com/petems/click-tray/internal/inject"
	"github.com/petems/click-tray/internal/logging"
	"github.com/petems/click-tray/internal/notify"
	"github.com/petems/click-tray/internal/permissions"
	"github.com/petems/click-tray/internal/tray"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

func main() {
	// Hotkeys and the tray both need the main thread on macOS
	hotkey.RunOnMainThread(run)
}

func run() {
	opts, err := config.ParseCLI(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	// Load config from XDG/Library/AppData
	var cfg *config.Config
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFile(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		// Use default logger if config fails to load
		log := logging.New()
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if err := config.ApplyCLI(cfg, opts); err != nil {
		log := logging.New()
		log.Fatal().Err(err).Msg("Invalid command line")
	}

	// Initialize logger with configured level
	log := logging.NewWithLevel(cfg.LogLevel)

	// macOS requires accessibility approval before hotkeys or clicks work
	if err := permissions.EnsurePermissions(); err != nil {
		log.Fatal().Err(err).Msg("Required permissions not granted")
	}

	notifier := notify.New(cfg.Notifications)

	// Create tray UI first (we'll pass the clicker to it below)
	trayUI := tray.New(nil, cfg, notifier, log, Version, Commit)

	c := clicker.New(clicker.Config{
		OS:       hotkey.NewOS(),
		Injector: inject.New(),
		Logger:   log,
		Status: app.StatusFunc(func(running bool) {
			trayUI.StatusChanged(running)
			notifier.StatusChanged(running)
		}),
	})
	trayUI.SetController(c)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx)
	}()

	if err := trayUI.Apply(ctx); err != nil {
		log.Error().Err(err).Str("hotkey", cfg.Hotkey).Msg("Failed to register hotkey")
		notifier.Error("Could not register hotkey " + cfg.Hotkey)
	}

	log.Info().Str("version", Version).Str("config", cfg.Path()).Msg("ClickTray starting...")

	// Setup shutdown signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Shutting down...")
		cancel()
		<-done
		os.Exit(0)
	}()

	// Start tray UI - MUST run on main thread
	if err := trayUI.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Tray error")
	}
	cancel()
	<-done
}
