package screen

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"quotedesk/internal/market"
	"quotedesk/internal/recent"
	"quotedesk/internal/scope"
	"quotedesk/internal/search"
	"quotedesk/internal/uistate"
)

// Explore is the landing screen: top movers, symbol search and the
// recently viewed list.
type Explore struct {
	Movers  *uistate.Stream[market.Movers]
	Results *uistate.Stream[[]market.SearchMatch]
	Search  *search.Debouncer

	src    ExploreSource
	recent *recent.Store
	scope  *scope.Scope
	opts   options
	log    zerolog.Logger

	// pending tracks one-shot tasks; the recent follower is not one
	pending sync.WaitGroup

	mu         sync.Mutex
	recentList []recent.Entry
}

// NewExplore builds the screen and starts following the recent list.
func NewExplore(parent context.Context, src ExploreSource, store *recent.Store, opts ...Option) *Explore {
	o := buildOptions(opts)
	sc := scope.New(parent)
	log := o.log.With().Str("component", "explore").Str("scope", sc.ID()).Logger()

	e := &Explore{
		Movers:     uistate.NewStream[market.Movers](),
		Results:    uistate.NewStream[[]market.SearchMatch](),
		src:        src,
		recent:     store,
		scope:      sc,
		opts:       o,
		log:        log,
		recentList: []recent.Entry{},
	}
	searchOpts := []search.Option{search.WithContext(sc.Context()), search.WithLogger(log)}
	if o.searchDelay > 0 {
		searchOpts = append(searchOpts, search.WithDelay(o.searchDelay))
	}
	e.Search = search.New(e.Results, src.Search, searchOpts...)

	sc.Go(e.followRecent)
	return e
}

func (e *Explore) followRecent(ctx context.Context) {
	ch, err := e.recent.Observe(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("cannot observe recent searches")
		return
	}
	for list := range ch {
		e.mu.Lock()
		e.recentList = list
		e.mu.Unlock()
	}
}

// LoadMovers fetches the movers report into Movers. Failures land on the
// stream once.
func (e *Explore) LoadMovers() bool {
	ticket := e.Movers.Begin()
	started := e.spawn(func(ctx context.Context) {
		movers, err := e.src.TopMovers(ctx)
		e.Movers.Settle(ctx, ticket, movers, err)
	})
	if !started {
		e.Movers.Reset()
	}
	return started
}

// AddToRecent records match with its latest price, or market.NotAvailable
// when the price cannot be fetched.
func (e *Explore) AddToRecent(match market.SearchMatch) bool {
	return e.spawn(func(ctx context.Context) {
		price, err := e.src.LatestPrice(ctx, match.Symbol)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			e.log.Warn().Str("symbol", match.Symbol).Err(err).Msg("latest price unavailable")
			price = market.NotAvailable
		}
		err = e.recent.Save(ctx, recent.Entry{
			Symbol:         match.Symbol,
			DisplayName:    match.Name,
			LastKnownPrice: price,
			SearchedAt:     e.opts.now(),
		})
		if err != nil {
			e.log.Warn().Str("symbol", match.Symbol).Err(err).Msg("saving recent search")
		}
	})
}

// ClearRecent empties the recent list.
func (e *Explore) ClearRecent() bool {
	return e.spawn(func(ctx context.Context) {
		if err := e.recent.Clear(ctx); err != nil {
			e.log.Warn().Err(err).Msg("clearing recent searches")
		}
	})
}

// Recent returns the latest observed recent list.
func (e *Explore) Recent() []recent.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]recent.Entry(nil), e.recentList...)
}

// spawn runs fn as a tracked one-shot task in the screen scope.
func (e *Explore) spawn(fn func(ctx context.Context)) bool {
	e.pending.Add(1)
	ok := e.scope.Go(func(ctx context.Context) {
		defer e.pending.Done()
		fn(ctx)
	})
	if !ok {
		e.pending.Done()
	}
	return ok
}

// Wait blocks until the one-shot tasks started so far have finished.
func (e *Explore) Wait() { e.pending.Wait() }

// Close stops search and cancels every task of the screen.
func (e *Explore) Close() {
	e.Search.Stop()
	e.scope.Close()
}
