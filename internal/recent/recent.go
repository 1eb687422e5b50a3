// Package recent keeps the most-recent-first list of looked up symbols.
package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"quotedesk/internal/kv"
)

const (
	// DefaultMax is the list capacity.
	DefaultMax = 20
	// Key is where the list lives in the key-value store.
	Key = "recent_searches"
)

// Entry is one looked up symbol.
type Entry struct {
	Symbol         string    `json:"symbol"`
	DisplayName    string    `json:"name"`
	LastKnownPrice string    `json:"price"`
	SearchedAt     time.Time `json:"searched_at"`
}

// Option configures a Store.
type Option func(*Store)

// WithMax sets the list capacity.
func WithMax(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.max = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log.With().Str("component", "recent").Logger()
	}
}

// Store is the recent list, serialized as a JSON array in a kv.Store.
type Store struct {
	kv  kv.Store
	max int
	log zerolog.Logger

	// mu serializes read-modify-write cycles and subscriber bookkeeping
	mu     sync.Mutex
	subs   map[uint64]chan []Entry
	nextID uint64
}

// New returns a Store over backend.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:   backend,
		max:  DefaultMax,
		log:  zerolog.Nop(),
		subs: make(map[uint64]chan []Entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the stored entries, most recent first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Save puts entry at the front, dropping any older entry for the same
// symbol and anything beyond capacity.
func (s *Store) Save(ctx context.Context, entry Entry) error {
	entry.Symbol = strings.ToUpper(strings.TrimSpace(entry.Symbol))
	if entry.Symbol == "" {
		return fmt.Errorf("save recent: empty symbol")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	next := make([]Entry, 0, min(len(current)+1, s.max))
	next = append(next, entry)
	for _, e := range current {
		if len(next) == s.max {
			break
		}
		if e.Symbol == entry.Symbol {
			continue
		}
		next = append(next, e)
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode recent: %w", err)
	}
	if err := s.kv.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("save recent: %w", err)
	}
	s.publishLocked(next)
	return nil
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear recent: %w", err)
	}
	s.publishLocked([]Entry{})
	return nil
}

// Observe delivers the current list and then every change until ctx is
// done. A slow reader only sees the latest list.
func (s *Store) Observe(ctx context.Context) (<-chan []Entry, error) {
	ch := make(chan []Entry, 1)

	s.mu.Lock()
	current, err := s.loadLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- current
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

// loadLocked reads the list. A corrupt value is logged and read as empty.
func (s *Store) loadLocked(ctx context.Context) ([]Entry, error) {
	data, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load recent: %w", err)
	}
	if !ok {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn().Err(err).Msg("discarding corrupt recent list")
		return []Entry{}, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *Store) publishLocked(entries []Entry) {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- append([]Entry(nil), entries...)
	}
}
