// Package notify maintains the unread badge and the notification panel.
// The list is loaded lazily when the panel opens, never on a timer, and
// read-state changes are reflected only after the server round trip: no
// optimistic updates.
package notify

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/coachmeplay/cmp/internal/api"
	"github.com/coachmeplay/cmp/internal/bus"
	"go.uber.org/zap"
)

// Service is the slice of the backend client the center needs.
type Service interface {
	Notifications(ctx context.Context) ([]api.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, notificationID int64) error
	MarkAllRead(ctx context.Context) error
}

// Center holds the notification snapshot and the panel open/closed bit.
type Center struct {
	svc    Service
	bus    *bus.Bus
	logger *zap.Logger

	mu    sync.Mutex
	open  bool
	count int
	items []api.Notification
}

// NewCenter creates a notification center.
func NewCenter(svc Service, b *bus.Bus, logger *zap.Logger) *Center {
	return &Center{svc: svc, bus: b, logger: logger}
}

// RefreshUnreadCount fetches the unread count and publishes it. Called
// on startup (when logged in) and after read-state mutations.
func (c *Center) RefreshUnreadCount(ctx context.Context) {
	count, err := c.svc.UnreadCount(ctx)
	if err != nil {
		c.logger.Warn("refresh unread count failed", zap.Error(err))
		return
	}
	c.mu.Lock()
	c.count = count
	c.mu.Unlock()
	c.bus.Publish(bus.Event{Kind: bus.KindNotifyCount, Timestamp: time.Now(), Payload: count})
}

// Load fetches the notification list and replaces the snapshot.
func (c *Center) Load(ctx context.Context) {
	items, err := c.svc.Notifications(ctx)
	if err != nil {
		c.logger.Warn("load notifications failed", zap.Error(err))
		return
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.bus.Publish(bus.Event{Kind: bus.KindNotifyList, Timestamp: time.Now()})
}

// Toggle flips the panel. Opening triggers a lazy Load; closing does
// nothing else. Returns the new open state.
func (c *Center) Toggle(ctx context.Context) bool {
	c.mu.Lock()
	c.open = !c.open
	open := c.open
	c.mu.Unlock()
	if open {
		c.Load(ctx)
	}
	return open
}

// ForceClose closes the panel unconditionally. The TUI calls it on any
// navigation away, the equivalent of the page-wide outside-click
// listener in the web client.
func (c *Center) ForceClose() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()
}

// Open reports whether the panel is open.
func (c *Center) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// MarkRead marks one notification read, then re-fetches the count and
// the list sequentially. It returns only after both refreshes ran, so
// callers never observe a half-updated badge/panel pair.
func (c *Center) MarkRead(ctx context.Context, notificationID int64) error {
	if err := c.svc.MarkRead(ctx, notificationID); err != nil {
		return err
	}
	c.RefreshUnreadCount(ctx)
	c.Load(ctx)
	return nil
}

// MarkAllRead marks everything read with the same refresh contract as
// MarkRead.
func (c *Center) MarkAllRead(ctx context.Context) error {
	if err := c.svc.MarkAllRead(ctx); err != nil {
		return err
	}
	c.RefreshUnreadCount(ctx)
	c.Load(ctx)
	return nil
}

// Count returns the last fetched unread count.
func (c *Center) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Items returns the current notification snapshot.
func (c *Center) Items() []api.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// BadgeText renders the badge rule: hidden (empty) at zero, the literal
// count otherwise.
func BadgeText(count int) string {
	if count <= 0 {
		return ""
	}
	return strconv.Itoa(count)
}
