// Package cache provides a time-bounded key/value store.
//
// Entries expire lazily: an entry older than the store TTL is treated as
// absent and removed by the Get that finds it. There is no background sweep
// and no size-based eviction.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the lifetime of a cached value.
const DefaultTTL = 15 * time.Minute

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Entry is a cached value together with the moment it was stored.
type Entry[T any] struct {
	Value    T
	StoredAt time.Time
}

// Option configures a Store.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock sets the clock used to timestamp and expire entries.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// Store caches values of one kind per string key for a fixed TTL.
// It is safe for concurrent use.
type Store[T any] struct {
	ttl   time.Duration
	clock Clock

	mu    sync.Mutex
	items map[string]Entry[T]
}

// New creates a store whose entries live for ttl. A non-positive ttl falls
// back to DefaultTTL.
func New[T any](ttl time.Duration, opts ...Option) *Store[T] {
	o := options{clock: systemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[T]{
		ttl:   ttl,
		clock: o.clock,
		items: make(map[string]Entry[T]),
	}
}

// TTL returns the configured entry lifetime.
func (s *Store[T]) TTL() time.Duration { return s.ttl }

// Get returns the value stored under key. Expired entries are removed and
// reported as absent.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok {
		var zero T
		return zero, false
	}
	if s.clock.Now().Sub(e.StoredAt) > s.ttl {
		delete(s.items, key)
		var zero T
		return zero, false
	}
	return e.Value, true
}

// Put stores value under key with a fresh timestamp, replacing any
// previous entry.
func (s *Store[T]) Put(key string, value T) {
	s.mu.Lock()
	s.items[key] = Entry[T]{Value: value, StoredAt: s.clock.Now()}
	s.mu.Unlock()
}

// Len reports the number of entries held, including ones that have expired
// but not yet been read.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear drops every entry.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	clear(s.items)
	s.mu.Unlock()
}
