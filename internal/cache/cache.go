// Package cache provides a keyed lookup wrapper combining a TTL cache
// with call-window coalescing: bursts of lookups for the same key are
// collapsed into one execution whose result every caller shares.
package cache

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long a cached value stays fresh.
	DefaultTTL = 5 * time.Minute
	// DefaultWindow is how long lookups for one key are collected
	// before a single execution runs on their behalf.
	DefaultWindow = 300 * time.Millisecond
)

// Lookup wraps fn(ctx, key) with a per-key TTL cache and a coalescing
// window. A fresh cache hit returns immediately and never reaches fn;
// only misses are coalesced. Entries are never evicted proactively,
// staleness is detected lazily on the next access.
type Lookup[K comparable, V any] struct {
	fn     func(context.Context, K) (V, error)
	ttl    time.Duration
	window time.Duration

	mu      sync.Mutex
	entries map[K]entry[V]
	pending map[K]*call[V]
}

type entry[V any] struct {
	value   V
	fetched time.Time
}

type call[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// New creates a Lookup around fn. Zero ttl/window select the defaults.
func New[K comparable, V any](fn func(context.Context, K) (V, error), ttl, window time.Duration) *Lookup[K, V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Lookup[K, V]{
		fn:      fn,
		ttl:     ttl,
		window:  window,
		entries: make(map[K]entry[V]),
		pending: make(map[K]*call[V]),
	}
}

// Get returns the value for key, from cache when fresh. On a miss the
// caller joins the current coalescing window for that key (opening one
// if none exists) and blocks until the shared execution completes or
// ctx is done. Errors are shared with every waiter and not cached.
func (l *Lookup[K, V]) Get(ctx context.Context, key K) (V, error) {
	l.mu.Lock()
	if e, ok := l.entries[key]; ok && time.Since(e.fetched) < l.ttl {
		v := e.value
		l.mu.Unlock()
		return v, nil
	}
	c, ok := l.pending[key]
	if !ok {
		c = &call[V]{done: make(chan struct{})}
		l.pending[key] = c
		time.AfterFunc(l.window, func() { l.run(key, c) })
	}
	l.mu.Unlock()

	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// run executes the shared lookup once the window closes. The pending
// slot is cleared first so late arrivals open a new window rather than
// joining an execution already in flight.
func (l *Lookup[K, V]) run(key K, c *call[V]) {
	l.mu.Lock()
	delete(l.pending, key)
	l.mu.Unlock()

	v, err := l.fn(context.Background(), key)
	if err == nil {
		l.mu.Lock()
		l.entries[key] = entry[V]{value: v, fetched: time.Now()}
		l.mu.Unlock()
	}
	c.value, c.err = v, err
	close(c.done)
}

// Invalidate drops the cached value for key. Call after any mutation
// that could change it.
func (l *Lookup[K, V]) Invalidate(key K) {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
}

// InvalidateAll drops every cached value.
func (l *Lookup[K, V]) InvalidateAll() {
	l.mu.Lock()
	l.entries = make(map[K]entry[V])
	l.mu.Unlock()
}
