// Package chat owns the conversation list and the single active chat
// session. A session is either closed or open on exactly one peer;
// opening a peer (re)starts the message poll, and at most one poll loop
// exists at any time.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/coachmeplay/cmp/internal/api"
	"github.com/coachmeplay/cmp/internal/bus"
	"github.com/coachmeplay/cmp/internal/poller"
	"go.uber.org/zap"
)

// PollInterval is how often the open thread is re-fetched.
const PollInterval = 3 * time.Second

// Service is the slice of the backend client the controller needs.
type Service interface {
	Conversations(ctx context.Context) ([]api.Conversation, error)
	Messages(ctx context.Context, peerID int64) ([]api.Message, error)
	SendMessage(ctx context.Context, receiverID int64, text string) error
}

// Controller drives conversation and message state. Snapshots are
// replaced wholesale on every refresh; consumers subscribe on the bus
// and pull the current snapshot when notified.
type Controller struct {
	svc      Service
	bus      *bus.Bus
	logger   *zap.Logger
	interval time.Duration

	mu       sync.Mutex
	peerID   int64 // 0 while closed
	epoch    uint64
	convs    []api.Conversation
	messages []api.Message

	task poller.Task
}

// NewController creates a controller polling at PollInterval.
func NewController(svc Service, b *bus.Bus, logger *zap.Logger) *Controller {
	return &Controller{
		svc:      svc,
		bus:      b,
		logger:   logger,
		interval: PollInterval,
	}
}

// RefreshConversations fetches the conversation summaries and replaces
// the snapshot. On failure the previous snapshot stays; the error is
// logged, not surfaced.
func (c *Controller) RefreshConversations(ctx context.Context) {
	convs, err := c.svc.Conversations(ctx)
	if err != nil {
		c.logger.Warn("refresh conversations failed", zap.Error(err))
		return
	}
	c.mu.Lock()
	c.convs = convs
	c.mu.Unlock()
	c.bus.Publish(bus.Event{Kind: bus.KindConversationsUpdated, Timestamp: time.Now()})
}

// Open switches the session to peerID: loads the thread immediately and
// (re)starts the poll loop. The previous loop, if any, is cancelled
// before the new one starts.
func (c *Controller) Open(ctx context.Context, peerID int64) {
	c.mu.Lock()
	c.peerID = peerID
	c.epoch++
	epoch := c.epoch
	c.mu.Unlock()

	c.task.Start(ctx, c.interval, func(ctx context.Context) {
		c.fetchMessages(ctx, peerID, epoch)
	})
}

// Close ends the session: stops the poll and clears the active peer.
func (c *Controller) Close() {
	c.mu.Lock()
	c.peerID = 0
	c.epoch++
	c.mu.Unlock()
	c.task.Stop()
}

// Peer returns the active peer id, or 0 while closed.
func (c *Controller) Peer() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peerID
}

// Send posts text to the active peer. Whitespace-only text or a closed
// session is a silent no-op. On success the thread and the conversation
// list are refreshed immediately, without waiting for the next tick.
func (c *Controller) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	c.mu.Lock()
	peerID := c.peerID
	epoch := c.epoch
	c.mu.Unlock()
	if text == "" || peerID == 0 {
		return nil
	}

	if err := c.svc.SendMessage(ctx, peerID, text); err != nil {
		return err
	}
	c.fetchMessages(ctx, peerID, epoch)
	c.RefreshConversations(ctx)
	return nil
}

// fetchMessages re-fetches the thread for peerID. The epoch tags the
// request with the session it was dispatched for: a response landing
// after the session moved on is discarded instead of rendering the
// wrong peer's messages.
func (c *Controller) fetchMessages(ctx context.Context, peerID int64, epoch uint64) {
	msgs, err := c.svc.Messages(ctx, peerID)
	if err != nil {
		c.logger.Warn("load messages failed", zap.Error(err), zap.Int64("peer_id", peerID))
		return
	}
	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	c.messages = msgs
	c.mu.Unlock()
	c.bus.Publish(bus.Event{Kind: bus.KindMessagesUpdated, Timestamp: time.Now(), Payload: peerID})
}

// Conversations returns the current conversation snapshot.
func (c *Controller) Conversations() []api.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.convs
}

// Messages returns the current thread snapshot.
func (c *Controller) Messages() []api.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages
}
