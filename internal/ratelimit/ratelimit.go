// Package ratelimit gates outgoing HTTP requests so the upstream quota is
// not exhausted. Waiting respects the request context; nothing is retried.
package ratelimit

import (
	"net/http"
	"sync"
	"time"
)

// Doer sends an HTTP request.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MinInterval wraps a Doer and enforces a minimum time between calls.
// Concurrent calls wait until the interval has elapsed since the last call,
// or return early if the request context is canceled.
type MinInterval struct {
	Next     Doer
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// Do waits for the interval, then forwards req.
func (m *MinInterval) Do(req *http.Request) (*http.Response, error) {
	if m.Interval > 0 {
		// reserve a slot so concurrent callers queue behind each other
		m.mu.Lock()
		now := time.Now()
		slot := m.last.Add(m.Interval)
		if slot.Before(now) {
			slot = now
		}
		m.last = slot
		m.mu.Unlock()

		if wait := time.Until(slot); wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-t.C:
			}
		}
	}
	return m.Next.Do(req)
}
