package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sandeepkv93/studyd/internal/config"
	"github.com/sandeepkv93/studyd/internal/logging"
	"github.com/sandeepkv93/studyd/internal/notify"
	"github.com/sandeepkv93/studyd/internal/planner"
	"github.com/sandeepkv93/studyd/internal/storage"
)

// App carries the resolved configuration and the opened planner for one
// invocation.
type App struct {
	ConfigPath string
	DBPath     string

	// Ephemeral keeps the data in memory; the database is never opened.
	Ephemeral bool

	Config  config.Config
	Logger  *slog.Logger
	Store   storage.Store
	Planner *planner.Planner

	storeCloser io.Closer
	logCloser   io.Closer
}

func (a *App) open(ctx context.Context) error {
	if a.Planner != nil {
		return nil
	}
	path := a.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.DBPath != "" {
		cfg.DBPath = a.DBPath
	}
	a.Config = cfg

	logger, closer, err := logging.Open(cfg.LogPath, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	a.Logger, a.logCloser = logger, closer

	var store storage.Store
	if a.Ephemeral {
		store = storage.NewMemoryStore()
	} else {
		db, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		store, a.storeCloser = db, db
	}
	a.Store = store

	var sound notify.SoundPlayer = notify.NoopSoundPlayer{}
	if cfg.SoundEnabled {
		sound = notify.NewExecSoundPlayer(cfg.SoundDir)
	}
	var desktop notify.DesktopNotifier = notify.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		desktop = notify.ExecDesktopNotifier{}
	}
	p, err := planner.Open(ctx, store, planner.Options{
		Logger:             logger,
		Sound:              sound,
		Notifier:           desktop,
		SeedWelcome:        cfg.SeedWelcome,
		DefaultTimerLength: cfg.TimerLength,
	})
	if err != nil {
		return err
	}
	a.Planner = p
	logger.Debug("studyd started", "db", cfg.DBPath, "ephemeral", a.Ephemeral)
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.storeCloser != nil {
		errs = append(errs, a.storeCloser.Close())
		a.storeCloser = nil
	}
	a.Store = nil
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
		a.logCloser = nil
	}
	a.Planner = nil
	return errors.Join(errs...)
}

// report prints queued planner events: warnings to errOut, everything else
// to out.
func (a *App) report(out, errOut io.Writer) {
	for _, e := range a.Planner.DrainEvents() {
		switch e.Kind {
		case planner.EventWarning:
			_, _ = fmt.Fprintf(errOut, "Warning: %s\n", e.Message)
		case planner.EventSessionCompleted:
			_, _ = fmt.Fprintln(out, e.Message)
			if e.Quote != "" {
				_, _ = fmt.Fprintf(out, "%q\n", e.Quote)
			}
		default:
			_, _ = fmt.Fprintln(out, e.Message)
		}
	}
}
