package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/coachmeplay/cmp/internal/api"
	"github.com/coachmeplay/cmp/internal/bus"
	"go.uber.org/zap"
)

type fakeService struct {
	mu           sync.Mutex
	count        int
	items        []api.Notification
	countCalls   int
	listCalls    int
	markedRead   []int64
	markedAll    int
	markAllError error
}

func (f *fakeService) Notifications(context.Context) ([]api.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.items, nil
}

func (f *fakeService) UnreadCount(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	return f.count, nil
}

func (f *fakeService) MarkRead(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedRead = append(f.markedRead, id)
	f.count = 0
	return nil
}

func (f *fakeService) MarkAllRead(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markAllError != nil {
		return f.markAllError
	}
	f.markedAll++
	f.count = 0
	return nil
}

func TestRefreshUnreadCountPublishes(t *testing.T) {
	svc := &fakeService{count: 4}
	b := bus.New()
	ch, unsub := b.Subscribe("notify.", 4)
	defer unsub()

	c := NewCenter(svc, b, zap.NewNop())
	c.RefreshUnreadCount(context.Background())

	if c.Count() != 4 {
		t.Errorf("Count() = %d, want 4", c.Count())
	}
	evt := <-ch
	if evt.Kind != bus.KindNotifyCount || evt.Payload.(int) != 4 {
		t.Errorf("event = %+v", evt)
	}
}

func TestBadgeText(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, ""},
		{-1, ""},
		{1, "1"},
		{12, "12"},
	}
	for _, tt := range tests {
		if got := BadgeText(tt.count); got != tt.want {
			t.Errorf("BadgeText(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestToggleLoadsLazily(t *testing.T) {
	svc := &fakeService{items: []api.Notification{{NotificationID: 1, Title: "New Message"}}}
	c := NewCenter(svc, bus.New(), zap.NewNop())
	ctx := context.Background()

	if svc.listCalls != 0 {
		t.Fatal("list loaded before panel opened")
	}
	if open := c.Toggle(ctx); !open {
		t.Error("first Toggle() should open")
	}
	if svc.listCalls != 1 {
		t.Errorf("list loaded %d times after open, want 1", svc.listCalls)
	}
	if len(c.Items()) != 1 {
		t.Errorf("items = %+v", c.Items())
	}

	// Closing must not refetch.
	if open := c.Toggle(ctx); open {
		t.Error("second Toggle() should close")
	}
	if svc.listCalls != 1 {
		t.Errorf("list loaded %d times after close, want 1", svc.listCalls)
	}
}

func TestForceClose(t *testing.T) {
	svc := &fakeService{}
	c := NewCenter(svc, bus.New(), zap.NewNop())

	c.Toggle(context.Background())
	c.ForceClose()
	if c.Open() {
		t.Error("panel open after ForceClose")
	}
	c.ForceClose() // idempotent
	if c.Open() {
		t.Error("panel open after second ForceClose")
	}
}

func TestMarkAllReadRefreshesBothBeforeReturn(t *testing.T) {
	svc := &fakeService{count: 3, items: []api.Notification{{NotificationID: 1}}}
	c := NewCenter(svc, bus.New(), zap.NewNop())
	ctx := context.Background()

	if err := c.MarkAllRead(ctx); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.markedAll != 1 {
		t.Errorf("mark-all issued %d times, want 1", svc.markedAll)
	}
	if svc.countCalls != 1 {
		t.Errorf("count refreshed %d times, want exactly 1", svc.countCalls)
	}
	if svc.listCalls != 1 {
		t.Errorf("list refreshed %d times, want exactly 1", svc.listCalls)
	}
	if c.Count() != 0 {
		t.Errorf("Count() = %d, want 0 after mark-all", c.Count())
	}
}

func TestMarkReadRefetchesServerState(t *testing.T) {
	svc := &fakeService{count: 2}
	c := NewCenter(svc, bus.New(), zap.NewNop())

	if err := c.MarkRead(context.Background(), 9); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.markedRead) != 1 || svc.markedRead[0] != 9 {
		t.Errorf("markedRead = %v", svc.markedRead)
	}
	if svc.countCalls != 1 || svc.listCalls != 1 {
		t.Errorf("refreshes = %d count / %d list, want 1/1", svc.countCalls, svc.listCalls)
	}
}

func TestMarkAllReadFailureSkipsRefresh(t *testing.T) {
	svc := &fakeService{markAllError: errors.New("backend down")}
	c := NewCenter(svc, bus.New(), zap.NewNop())

	if err := c.MarkAllRead(context.Background()); err == nil {
		t.Fatal("MarkAllRead() error = nil, want failure")
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.countCalls != 0 || svc.listCalls != 0 {
		t.Errorf("refreshes ran after failed mutation: %d/%d", svc.countCalls, svc.listCalls)
	}
}
