package screen_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"quotedesk/internal/market"
)

// fakeSource is a hand-written repository with per-call latency.
type fakeSource struct {
	mu sync.Mutex

	overviewDelay time.Duration
	pricesDelay   time.Duration
	overviewErr   error
	pricesErr     error
	priceErr      error

	// overviewNames is consumed one per call; the last value repeats
	overviewNames  []string
	overviewDelays []time.Duration

	overviewCalls int
	pricesCalls   int
	searches      []string
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeSource) Overview(ctx context.Context, symbol string) (market.Overview, error) {
	f.mu.Lock()
	call := f.overviewCalls
	f.overviewCalls++
	delay := f.overviewDelay
	if call < len(f.overviewDelays) {
		delay = f.overviewDelays[call]
	}
	name := symbol
	if n := len(f.overviewNames); n > 0 {
		name = f.overviewNames[min(call, n-1)]
	}
	err := f.overviewErr
	f.mu.Unlock()

	if err := sleep(ctx, delay); err != nil {
		return market.Overview{}, err
	}
	if err != nil {
		return market.Overview{}, err
	}
	return market.Overview{Symbol: symbol, Name: name}, nil
}

func (f *fakeSource) PriceHistory(ctx context.Context, symbol string) ([]market.PricePoint, error) {
	f.mu.Lock()
	f.pricesCalls++
	delay, err := f.pricesDelay, f.pricesErr
	f.mu.Unlock()

	if err := sleep(ctx, delay); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return []market.PricePoint{{Date: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)}}, nil
}

func (f *fakeSource) TopMovers(context.Context) (market.Movers, error) {
	return market.Movers{TopGainers: []market.Mover{{Ticker: "NVDA"}}}, nil
}

func (f *fakeSource) Search(_ context.Context, query string) ([]market.SearchMatch, error) {
	f.mu.Lock()
	f.searches = append(f.searches, query)
	f.mu.Unlock()
	return []market.SearchMatch{{Symbol: query, Name: query + " Corp"}}, nil
}

func (f *fakeSource) LatestPrice(_ context.Context, symbol string) (string, error) {
	if f.priceErr != nil {
		return "", f.priceErr
	}
	if symbol == "IBM" {
		return "185.50", nil
	}
	return "", errors.New("unexpected symbol")
}

func (f *fakeSource) counts() (overview, prices int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overviewCalls, f.pricesCalls
}
