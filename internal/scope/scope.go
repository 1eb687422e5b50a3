// Package scope bounds the lifetime of tasks started on behalf of a screen.
package scope

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Scope owns a cancellable context and tracks the goroutines started in it.
type Scope struct {
	id     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New returns a scope whose context derives from parent.
func New(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{id: uuid.New(), ctx: ctx, cancel: cancel}
}

// ID identifies the scope in logs.
func (s *Scope) ID() string { return s.id.String() }

// Context is cancelled when the scope closes.
func (s *Scope) Context() context.Context { return s.ctx }

// Go runs fn in a tracked goroutine. It reports false and does nothing
// once the scope is closed.
func (s *Scope) Go(fn func(ctx context.Context)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
	return true
}

// Wait blocks until every started task has returned.
func (s *Scope) Wait() { s.wg.Wait() }

// Close cancels the scope and waits for its tasks. It is safe to call
// more than once.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}
