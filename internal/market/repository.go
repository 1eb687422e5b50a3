package market

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"quotedesk/internal/cache"
)

// Repository decides per request whether to serve from cache or call the
// API, and normalizes every outcome into a value or a *Failure.
type Repository struct {
	api       API
	overviews *cache.Store[Overview]
	prices    *cache.Store[[]PricePoint]
	log       zerolog.Logger

	// coalesce concurrent misses per kind and symbol
	sf singleflight.Group
}

type repoOptions struct {
	ttl   time.Duration
	clock cache.Clock
	log   zerolog.Logger
}

// Option configures a Repository.
type Option func(*repoOptions)

// WithTTL sets how long overview and price history entries stay fresh.
func WithTTL(ttl time.Duration) Option {
	return func(o *repoOptions) { o.ttl = ttl }
}

// WithClock sets the clock used by the cache stores.
func WithClock(clock cache.Clock) Option {
	return func(o *repoOptions) { o.clock = clock }
}

// WithLogger sets the repository logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *repoOptions) { o.log = log }
}

// NewRepository builds a repository over api with one cache per data kind.
func NewRepository(api API, opts ...Option) *Repository {
	o := repoOptions{ttl: cache.DefaultTTL, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	var cacheOpts []cache.Option
	if o.clock != nil {
		cacheOpts = append(cacheOpts, cache.WithClock(o.clock))
	}
	r := &Repository{
		api:       api,
		overviews: cache.New[Overview](o.ttl, cacheOpts...),
		prices:    cache.New[[]PricePoint](o.ttl, cacheOpts...),
		log:       o.log.With().Str("component", "repository").Logger(),
	}
	r.log.Debug().Dur("ttl", r.overviews.TTL()).Msg("repository ready")
	return r
}

// shared runs fn once per key for all concurrent callers. The call itself
// is detached from any one caller's cancellation; a caller whose ctx ends
// stops waiting without affecting the others.
func (r *Repository) shared(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	ch := r.sf.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TopMovers fetches the movers report. It is never cached.
func (r *Repository) TopMovers(ctx context.Context) (Movers, error) {
	movers, err := r.api.TopGainersLosers(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("top movers failed")
		return Movers{}, fail("top movers", err)
	}
	return *movers, nil
}

// Overview returns the company overview for symbol, from cache when fresh.
func (r *Repository) Overview(ctx context.Context, symbol string) (Overview, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return Overview{}, domainf("symbol is required")
	}
	if v, ok := r.overviews.Get(symbol); ok {
		r.log.Debug().Str("symbol", symbol).Msg("overview cache hit")
		return v, nil
	}

	v, err := r.shared(ctx, "overview:"+symbol, func(ctx context.Context) (any, error) {
		// another caller may have filled the cache while this one waited
		if v, ok := r.overviews.Get(symbol); ok {
			return v, nil
		}
		r.log.Debug().Str("symbol", symbol).Msg("overview cache miss")
		res, err := r.api.Overview(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if *res == (Overview{}) {
			return nil, domainf("no overview available for %s", symbol)
		}
		r.overviews.Put(symbol, *res)
		r.log.Debug().Str("symbol", symbol).Int("entries", r.overviews.Len()).Msg("overview cached")
		return *res, nil
	})
	if err != nil {
		r.log.Warn().Str("symbol", symbol).Err(err).Msg("overview failed")
		return Overview{}, fail("overview "+symbol, err)
	}
	return v.(Overview), nil
}

// PriceHistory returns the daily series for symbol, newest first, from
// cache when fresh.
func (r *Repository) PriceHistory(ctx context.Context, symbol string) ([]PricePoint, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, domainf("symbol is required")
	}
	if v, ok := r.prices.Get(symbol); ok {
		r.log.Debug().Str("symbol", symbol).Msg("price history cache hit")
		return slices.Clone(v), nil
	}

	v, err := r.shared(ctx, "prices:"+symbol, func(ctx context.Context) (any, error) {
		if v, ok := r.prices.Get(symbol); ok {
			return v, nil
		}
		r.log.Debug().Str("symbol", symbol).Msg("price history cache miss")
		body, err := r.api.TimeSeriesDaily(ctx, symbol)
		if err != nil {
			return nil, err
		}
		points, err := parseDaily(symbol, body)
		if err != nil {
			return nil, err
		}
		r.prices.Put(symbol, points)
		r.log.Debug().Str("symbol", symbol).Int("entries", r.prices.Len()).Msg("price history cached")
		return points, nil
	})
	if err != nil {
		r.log.Warn().Str("symbol", symbol).Err(err).Msg("price history failed")
		return nil, fail("price history "+symbol, err)
	}
	return slices.Clone(v.([]PricePoint)), nil
}

// Search looks up symbols matching query. Queries shorter than
// MinQueryLength return an empty result without calling the API.
func (r *Repository) Search(ctx context.Context, query string) ([]SearchMatch, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return []SearchMatch{}, nil
	}
	body, err := r.api.SymbolSearch(ctx, query)
	if err != nil {
		r.log.Warn().Str("query", query).Err(err).Msg("search failed")
		return nil, fail(fmt.Sprintf("search %q", query), err)
	}
	matches, err := parseSearch(body)
	if err != nil {
		return nil, fail(fmt.Sprintf("search %q", query), err)
	}
	return matches, nil
}

// LatestPrice returns the latest traded price for symbol as delivered by
// the API, or NotAvailable when the quote carries no price.
func (r *Repository) LatestPrice(ctx context.Context, symbol string) (string, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return "", domainf("symbol is required")
	}
	body, err := r.api.GlobalQuote(ctx, symbol)
	if err != nil {
		r.log.Warn().Str("symbol", symbol).Err(err).Msg("quote failed")
		return "", fail("quote "+symbol, err)
	}
	price, err := parseQuote(symbol, body)
	if err != nil {
		return "", fail("quote "+symbol, err)
	}
	return price, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
