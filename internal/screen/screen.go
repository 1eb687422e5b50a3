// Package screen holds the per-screen view models. Each screen owns a
// scope; closing it cancels pending work and late results are dropped.
package screen

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"quotedesk/internal/market"
)

// ExploreSource is what the explore screen needs from the repository.
type ExploreSource interface {
	TopMovers(ctx context.Context) (market.Movers, error)
	Search(ctx context.Context, query string) ([]market.SearchMatch, error)
	LatestPrice(ctx context.Context, symbol string) (string, error)
}

// DetailsSource is what the details screen needs from the repository.
type DetailsSource interface {
	Overview(ctx context.Context, symbol string) (market.Overview, error)
	PriceHistory(ctx context.Context, symbol string) ([]market.PricePoint, error)
}

var (
	_ ExploreSource = (*market.Repository)(nil)
	_ DetailsSource = (*market.Repository)(nil)
)

type options struct {
	log         zerolog.Logger
	searchDelay time.Duration
	now         func() time.Time
}

// Option configures a screen.
type Option func(*options)

// WithLogger sets the screen logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithSearchDelay sets the explore search debounce delay.
func WithSearchDelay(d time.Duration) Option {
	return func(o *options) { o.searchDelay = d }
}

// WithNow sets the clock stamped on recent entries.
func WithNow(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
