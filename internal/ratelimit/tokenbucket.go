package ratelimit

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// TokenBucket is a token bucket limiter.
//   - rate: tokens per second
//   - capacity: maximum tokens the bucket can hold (burst)
type TokenBucket struct {
	rate     float64
	capacity float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// NewTokenBucket returns a full bucket refilling at tokensPerSecond.
func NewTokenBucket(tokensPerSecond float64, burst int) *TokenBucket {
	if tokensPerSecond <= 0 {
		tokensPerSecond = 0.0000001
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		rate:     tokensPerSecond,
		capacity: float64(burst),
		tokens:   float64(burst), // start full to allow an initial burst
		last:     time.Now(),
	}
}

// PerMinute returns a bucket allowing rpm requests per minute.
func PerMinute(rpm, burst int) *TokenBucket {
	return NewTokenBucket(float64(rpm)/60.0, burst)
}

// Wait blocks until one token is available or ctx is canceled.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		tb.mu.Lock()
		now := time.Now()
		if elapsed := now.Sub(tb.last).Seconds(); elapsed > 0 {
			tb.tokens += elapsed * tb.rate
			if tb.tokens > tb.capacity {
				tb.tokens = tb.capacity
			}
			tb.last = now
		}
		if tb.tokens >= 1 {
			tb.tokens--
			tb.mu.Unlock()
			return nil
		}
		deficit := 1 - tb.tokens
		tb.mu.Unlock()

		waitDur := time.Duration(deficit / tb.rate * float64(time.Second))
		if waitDur <= 0 {
			waitDur = time.Millisecond
		}
		timer := time.NewTimer(waitDur)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Limited wraps a Doer and takes one token per request.
type Limited struct {
	Next Doer
	TB   *TokenBucket
}

// Do waits for a token, then forwards req.
func (l *Limited) Do(req *http.Request) (*http.Response, error) {
	if l.TB != nil {
		if err := l.TB.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return l.Next.Do(req)
}

// Wrap applies the limiter selected by rpm/burst or minInterval to next.
// A positive rpm wins over minInterval; with neither set next is returned
// unchanged.
func Wrap(next Doer, rpm, burst int, minInterval time.Duration) Doer {
	switch {
	case rpm > 0:
		return &Limited{Next: next, TB: PerMinute(rpm, burst)}
	case minInterval > 0:
		return &MinInterval{Next: next, Interval: minInterval}
	default:
		return next
	}
}
