// Package search debounces interactive symbol search input.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"quotedesk/internal/market"
	"quotedesk/internal/uistate"
)

// DefaultDelay is how long input must be idle before a search runs.
const DefaultDelay = 300 * time.Millisecond

// SearchFunc performs one search.
type SearchFunc func(ctx context.Context, query string) ([]market.SearchMatch, error)

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(s *Debouncer) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Debouncer) {
		s.log = log.With().Str("component", "search").Logger()
	}
}

// WithContext bounds every search task by ctx.
func WithContext(ctx context.Context) Option {
	return func(s *Debouncer) { s.parent = ctx }
}

// Debouncer owns the query text and the search lifecycle. Each keystroke
// supersedes the previous one; only the latest query may touch results.
type Debouncer struct {
	results *uistate.Stream[[]market.SearchMatch]
	search  SearchFunc
	delay   time.Duration
	parent  context.Context
	log     zerolog.Logger

	mu     sync.Mutex
	query  string
	active bool
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// New returns a Debouncer publishing to results.
func New(results *uistate.Stream[[]market.SearchMatch], fn SearchFunc, opts ...Option) *Debouncer {
	d := &Debouncer{
		results: results,
		search:  fn,
		delay:   DefaultDelay,
		parent:  context.Background(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetQuery records text and schedules a search for it. Empty text clears
// the session instead.
func (d *Debouncer) SetQuery(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.query = text
	d.stopLocked()
	if text == "" {
		d.active = false
		d.results.Reset()
		return
	}
	d.active = true

	gen := d.gen
	ctx, cancel := context.WithCancel(d.parent)
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() { d.run(ctx, gen, text) })
}

// Clear empties the query, deactivates search and cancels pending work.
func (d *Debouncer) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.query = ""
	d.active = false
	d.stopLocked()
	d.results.Reset()
}

// SetActive toggles the search session. Deactivating clears it.
func (d *Debouncer) SetActive(active bool) {
	if !active {
		d.Clear()
		return
	}
	d.mu.Lock()
	d.active = true
	d.mu.Unlock()
}

// Query returns the current text.
func (d *Debouncer) Query() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query
}

// Active reports whether a search session is open.
func (d *Debouncer) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Stop cancels pending and in-flight work without touching results.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// stopLocked invalidates the running generation.
func (d *Debouncer) stopLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// live reports whether the task for gen may still mutate state.
// Callers hold d.mu.
func (d *Debouncer) live(ctx context.Context, gen uint64) bool {
	return gen == d.gen && ctx.Err() == nil
}

func (d *Debouncer) run(ctx context.Context, gen uint64, text string) {
	d.mu.Lock()
	if !d.live(ctx, gen) {
		d.mu.Unlock()
		return
	}
	ticket := d.results.Begin()
	d.mu.Unlock()

	d.log.Debug().Str("query", text).Msg("searching")
	matches, err := d.search(ctx, text)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.live(ctx, gen) {
		d.log.Debug().Str("query", text).Msg("discarding stale search")
		return
	}
	if err != nil {
		d.log.Warn().Str("query", text).Err(err).Msg("search failed")
		d.results.Resolve(ticket, uistate.Error[[]market.SearchMatch](err.Error()))
		return
	}
	d.results.Resolve(ticket, uistate.Success(matches))
}
