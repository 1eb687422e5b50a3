package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"quotedesk/internal/alphavantage"
	"quotedesk/internal/config"
	"quotedesk/internal/guard"
	"quotedesk/internal/httpx"
	"quotedesk/internal/kv"
	"quotedesk/internal/market"
	"quotedesk/internal/ratelimit"
	"quotedesk/internal/recent"
	"quotedesk/internal/screen"
)

// app holds the wired layer shared by every subcommand.
type app struct {
	cfg    config.Config
	log    zerolog.Logger
	repo   *market.Repository
	recent *recent.Store
	loaded *guard.LoadOnce
	close  func() error
}

func newApp(ctx context.Context, cfg config.Config, log zerolog.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hc := httpx.New(cfg.RequestTimeout())
	doer := ratelimit.Wrap(hc, cfg.AlphaVantage.MaxRequestsPerMinute, cfg.AlphaVantage.Burst, cfg.MinRequestInterval())

	client, err := alphavantage.NewClient(cfg.AlphaVantage.APIKey,
		alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
		alphavantage.WithHTTPClient(doer),
		alphavantage.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage client: %w", err)
	}

	var store kv.Store = kv.NewMemory()
	closeStore := func() error { return nil }
	if cfg.Recent.DBPath != "" {
		db, err := kv.OpenSQLite(ctx, cfg.Recent.DBPath)
		if err != nil {
			return nil, err
		}
		store, closeStore = db, db.Close
		log.Debug().Str("path", db.Path()).Msg("recent searches in sqlite")
	}

	return &app{
		cfg:    cfg,
		log:    log,
		repo:   market.NewRepository(client, market.WithTTL(cfg.CacheTTL()), market.WithLogger(log)),
		recent: recent.New(store, recent.WithMax(cfg.Recent.MaxEntries), recent.WithLogger(log)),
		loaded: &guard.LoadOnce{},
		close:  closeStore,
	}, nil
}

func (a *app) explore(ctx context.Context) *screen.Explore {
	return screen.NewExplore(ctx, a.repo, a.recent,
		screen.WithLogger(a.log),
		screen.WithSearchDelay(a.cfg.SearchDebounce()),
	)
}

func (a *app) details(ctx context.Context) *screen.Details {
	return screen.NewDetails(ctx, a.repo, a.loaded, screen.WithLogger(a.log))
}
