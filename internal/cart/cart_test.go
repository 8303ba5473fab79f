package cart

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/coachmeplay/cmp/internal/bus"
	"github.com/coachmeplay/cmp/internal/store"
)

func newTestCart(t *testing.T) (*Cart, *bus.Bus) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "cart.db"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	b := bus.New()
	return New(db, b, zap.NewNop()), b
}

func waitCount(t *testing.T, ch <-chan bus.Event) int {
	t.Helper()
	select {
	case ev := <-ch:
		n, ok := ev.Payload.(int)
		if !ok {
			t.Fatalf("payload = %T, want int", ev.Payload)
		}
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cart count event")
		return 0
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want string
	}{
		{"string", "7", "7"},
		{"int", 7, "7"},
		{"int64", int64(7), "7"},
		{"whole float", float64(7), "7"},
		{"fractional float", 7.5, "7.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeID(tt.id); got != tt.want {
				t.Errorf("NormalizeID(%v) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestAddMergesAcrossIDTypes(t *testing.T) {
	c, _ := newTestCart(t)

	if err := c.Add(7, "Sprint Drills", 49.90); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.Add("7", "Sprint Drills", 49.90); err != nil {
		t.Fatalf("Add() string id error = %v", err)
	}

	items, err := c.Items()
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Items() len = %d, want 1", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", items[0].Quantity)
	}
}

func TestRemoveMatchesNumericSourcedID(t *testing.T) {
	c, _ := newTestCart(t)

	if err := c.Add(1, "Season Pass", 199); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.Remove("1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	n, err := c.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}

func TestMutationsBroadcastCount(t *testing.T) {
	c, b := newTestCart(t)
	ch, unsub := b.Subscribe("cart.", 8)
	defer unsub()

	if err := c.Add("7", "Sprint Drills", 49.90); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if n := waitCount(t, ch); n != 1 {
		t.Errorf("count after add = %d, want 1", n)
	}

	if err := c.Add("7", "Sprint Drills", 49.90); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if n := waitCount(t, ch); n != 2 {
		t.Errorf("count after second add = %d, want 2", n)
	}

	if err := c.Remove("7"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if n := waitCount(t, ch); n != 0 {
		t.Errorf("count after remove = %d, want 0", n)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	c, b := newTestCart(t)

	if err := c.Add("1", "A", 10); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.Add("2", "B", 20); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	ch, unsub := b.Subscribe("cart.", 8)
	defer unsub()
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n := waitCount(t, ch); n != 0 {
		t.Errorf("count after clear = %d, want 0", n)
	}
}
