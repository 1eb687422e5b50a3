package uistate

import (
	"context"
	"sync"
)

// Ticket identifies one request started on a Stream.
type Ticket struct {
	gen uint64
}

// Stream is an observable State. Only the most recently started request
// may resolve it, so a slow stale response never overwrites a newer one.
type Stream[T any] struct {
	mu     sync.Mutex
	state  State[T]
	gen    uint64
	subs   map[uint64]chan State[T]
	nextID uint64
}

// NewStream returns a stream in the Idle state.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{state: Idle[T](), subs: make(map[uint64]chan State[T])}
}

// Current returns the live state.
func (s *Stream[T]) Current() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin moves to Loading and invalidates every earlier ticket.
func (s *Stream[T]) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.setLocked(Loading[T]())
	return Ticket{gen: s.gen}
}

// Resolve applies state if t is still the latest ticket.
func (s *Stream[T]) Resolve(t Ticket, state State[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.gen != s.gen {
		return false
	}
	s.setLocked(state)
	return true
}

// Reset returns to Idle and invalidates outstanding tickets.
func (s *Stream[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.setLocked(Idle[T]())
}

// Settle resolves t with data, or with an Error carrying err's message.
// Nothing is resolved when ctx is done.
func (s *Stream[T]) Settle(ctx context.Context, t Ticket, data T, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		return s.Resolve(t, Error[T](err.Error()))
	}
	return s.Resolve(t, Success(data))
}

// Run begins a request, calls fn and settles the ticket with its outcome.
func (s *Stream[T]) Run(ctx context.Context, fn func(context.Context) (T, error)) bool {
	t := s.Begin()
	data, err := fn(ctx)
	return s.Settle(ctx, t, data, err)
}

// Subscribe delivers the current state and then every change until ctx is
// done. Slow readers only see the latest state.
func (s *Stream[T]) Subscribe(ctx context.Context) <-chan State[T] {
	ch := make(chan State[T], 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.state
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

func (s *Stream[T]) setLocked(state State[T]) {
	s.state = state
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}

// Await blocks until stream holds a terminal state or ctx is done.
func Await[T any](ctx context.Context, stream *Stream[T]) (State[T], error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for state := range stream.Subscribe(ctx) {
		if state.Terminal() {
			return state, nil
		}
	}
	return stream.Current(), ctx.Err()
}
