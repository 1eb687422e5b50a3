// Package guard remembers which entities were already fetched this session.
package guard

import "sync"

// LoadOnce is a set of keys whose fetch has been attempted. The zero
// value is ready to use.
type LoadOnce struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// ShouldFetch reports whether key needs fetching. force always wins.
func (g *LoadOnce) ShouldFetch(key string, force bool) bool {
	if force {
		return true
	}
	return !g.Loaded(key)
}

// MarkAttempted records key once its fetch has completed, whatever the
// outcome.
func (g *LoadOnce) MarkAttempted(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.keys == nil {
		g.keys = make(map[string]struct{})
	}
	g.keys[key] = struct{}{}
}

// Loaded reports whether key has been marked.
func (g *LoadOnce) Loaded(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.keys[key]
	return ok
}
