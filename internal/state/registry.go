// Package state holds per-browser-session view state in process memory.
// The remote service is the sole source of truth; what lives here is only
// the working state of a session's current views (campaign collection, form
// working copy, dashboard series), keyed by the browser session token.
package state

import (
	"sync"
	"time"
)

// sweepInterval is how often stale entries are evicted, piggybacked on
// lookups to avoid a background goroutine per registry.
const sweepInterval = 5 * time.Minute

// Registry is a concurrency-safe map of session token to view state,
// creating entries on demand and evicting those idle past the TTL.
type Registry[T any] struct {
	mu        sync.Mutex
	entries   map[string]*entry[T]
	ttl       time.Duration
	newFn     func() T
	lastSweep time.Time
}

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// NewRegistry creates a registry whose entries are built by newFn on first
// access and dropped after ttl of inactivity.
func NewRegistry[T any](ttl time.Duration, newFn func() T) *Registry[T] {
	return &Registry[T]{
		entries:   make(map[string]*entry[T]),
		ttl:       ttl,
		newFn:     newFn,
		lastSweep: time.Now(),
	}
}

// Get returns the state for the given session token, creating it if absent,
// and refreshes its idle timer.
func (r *Registry[T]) Get(token string) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.sweep(now)

	e, ok := r.entries[token]
	if !ok {
		e = &entry[T]{value: r.newFn()}
		r.entries[token] = e
	}
	e.lastSeen = now
	return e.value
}

// Drop removes the state for the given session token, typically on logout.
func (r *Registry[T]) Drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, token)
}

// sweep evicts idle entries. Callers hold the lock.
func (r *Registry[T]) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < sweepInterval {
		return
	}
	r.lastSweep = now
	for token, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, token)
		}
	}
}
