// Package poller provides a cancellable fixed-interval task. The
// cancel-before-start rule lives here: restarting a running task always
// tears down the previous loop first, so a controller can never leak a
// second ticker.
package poller

import (
	"context"
	"sync"
	"time"
)

// Task is a repeating scheduled call. The zero value is ready to use.
type Task struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Start runs fn immediately and then every interval until Stop or a new
// Start. If the task is already running it is stopped first; at most
// one loop is ever active.
func (t *Task) Start(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.mu.Unlock()

	go func() {
		fn(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the running loop. Safe to call when not running.
func (t *Task) Stop() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.mu.Unlock()
}

// Running reports whether a loop is active.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}
