package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/carlosbandelli/superlist/internal/api"
	"github.com/carlosbandelli/superlist/internal/cache"
	"github.com/carlosbandelli/superlist/internal/config"
	"github.com/carlosbandelli/superlist/internal/creds"
	"github.com/carlosbandelli/superlist/internal/prefs"
	"github.com/carlosbandelli/superlist/internal/session"
	"github.com/carlosbandelli/superlist/internal/ui"
)

// Options configure the superlist application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/superlist/prefs.toml
	ServerURL  string // overrides the configured server URL
}

// Run boots the superlist TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.ServerURL != "" {
		cfg.ServerURL = opts.ServerURL
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	store, err := creds.Open(creds.DefaultConfig(cfg.CredsDir))
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer func() { _ = store.Close() }()

	sess := session.New(store, logger)
	sess.Restore()

	client, err := api.NewClient(cfg.ServerURL, sess.Token, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	signal := &cache.RefreshSignal{}
	collection := cache.NewCollection(client, sess.Token, cfg.FetchRetries, logger)
	detail := cache.NewDetail(client, sess.Token, cfg.FetchRetries, signal, logger)

	cache.StartRefresher(ctx, signal, collection, cfg.RefreshInterval)

	userPrefs := prefs.Load(opts.PrefsPath)

	for {
		if _, ok := sess.Token(); !ok {
			if err := ui.RunAuth(ctx, client, sess); err != nil {
				if errors.Is(err, ui.ErrAuthAborted) {
					return nil
				}
				return err
			}
		}

		err := ui.Run(ui.Options{
			Context:     ctx,
			Client:      client,
			Session:     sess,
			Collection:  collection,
			Detail:      detail,
			ThemeName:   userPrefs.Theme,
			PrefsPath:   opts.PrefsPath,
			RefreshTick: cfg.RefreshInterval,
		})
		if errors.Is(err, ui.ErrLoggedOut) {
			// Back to the auth flow with a clean slate.
			continue
		}
		return err
	}
}
