package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/internal/prefs"
	"github.com/five82/pantry/internal/state"
	"github.com/five82/pantry/internal/ui"
)

// Options configure the dashboard.
type Options struct {
	Grocy     *grocy.Grocy
	Logger    *zap.Logger
	LogFile   string        // tailed by the Logs view; empty hides it
	PrefsPath string        // empty uses default ~/.config/pantry/prefs.toml
	PollEvery time.Duration // zero uses default
}

// Run boots the dashboard until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Grocy == nil {
		return errors.New("app: grocy client is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	userPrefs := prefs.Load(opts.PrefsPath)
	store := &state.Store{}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = opts.PollEvery
	}

	StartPoller(ctx, store, opts.Grocy, interval, logger.Named("poller"))
	logger.Info("dashboard started", zap.Duration("poll_interval", interval))

	return ui.Run(ui.Options{
		Context:   ctx,
		Grocy:     opts.Grocy,
		Store:     store,
		Logger:    logger.Named("ui"),
		LogFile:   opts.LogFile,
		PollTick:  time.Second,
		ThemeName: userPrefs.Theme,
		ViewName:  userPrefs.View,
		PrefsPath: opts.PrefsPath,
	})
}
