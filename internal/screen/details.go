package screen

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"quotedesk/internal/guard"
	"quotedesk/internal/market"
	"quotedesk/internal/scope"
	"quotedesk/internal/uistate"
)

// Details shows one symbol: its overview and its daily price history,
// each on its own stream.
type Details struct {
	Overview *uistate.Stream[market.Overview]
	Prices   *uistate.Stream[[]market.PricePoint]

	src   DetailsSource
	guard *guard.LoadOnce
	scope *scope.Scope
	log   zerolog.Logger
}

// NewDetails builds the screen. loaded is shared by every details screen
// of the session; nil gives the screen its own.
func NewDetails(parent context.Context, src DetailsSource, loaded *guard.LoadOnce, opts ...Option) *Details {
	o := buildOptions(opts)
	if loaded == nil {
		loaded = &guard.LoadOnce{}
	}
	sc := scope.New(parent)
	return &Details{
		Overview: uistate.NewStream[market.Overview](),
		Prices:   uistate.NewStream[[]market.PricePoint](),
		src:      src,
		guard:    loaded,
		scope:    sc,
		log:      o.log.With().Str("component", "details").Str("scope", sc.ID()).Logger(),
	}
}

// Fetch loads overview and price history for symbol concurrently. It
// reports false when the symbol was already attempted and force is unset,
// or when the screen is closed.
func (d *Details) Fetch(symbol string, force bool) bool {
	key := strings.ToUpper(strings.TrimSpace(symbol))
	if !d.guard.ShouldFetch(key, force) {
		return false
	}

	overviewTicket := d.Overview.Begin()
	pricesTicket := d.Prices.Begin()
	d.log.Debug().Str("symbol", key).Bool("force", force).Msg("fetching")

	started := d.scope.Go(func(ctx context.Context) {
		// the two fetches settle independently; the join is only for
		// guard bookkeeping
		var g errgroup.Group
		g.Go(func() error {
			overview, err := d.src.Overview(ctx, key)
			d.Overview.Settle(ctx, overviewTicket, overview, err)
			return nil
		})
		g.Go(func() error {
			points, err := d.src.PriceHistory(ctx, key)
			d.Prices.Settle(ctx, pricesTicket, points, err)
			return nil
		})
		_ = g.Wait()

		if ctx.Err() != nil {
			return
		}
		d.guard.MarkAttempted(key)
	})
	if !started {
		d.Overview.Reset()
		d.Prices.Reset()
	}
	return started
}

// Refresh fetches symbol regardless of the guard.
func (d *Details) Refresh(symbol string) bool {
	return d.Fetch(symbol, true)
}

// Wait blocks until started fetches have finished.
func (d *Details) Wait() { d.scope.Wait() }

// Close cancels in-flight fetches and waits for them to return.
func (d *Details) Close() { d.scope.Close() }
