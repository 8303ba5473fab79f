package feedback

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coachmeplay/cmp/internal/api"
)

type fakeFetcher struct {
	calls int32
}

func (f *fakeFetcher) FeedbackDetail(_ context.Context, id int64) (*api.Feedback, error) {
	atomic.AddInt32(&f.calls, 1)
	return &api.Feedback{FeedbackID: id, FeedbackText: "keep your elbow in"}, nil
}

func TestDetailCachesByID(t *testing.T) {
	f := &fakeFetcher{}
	s := NewService(f, time.Minute, 5*time.Millisecond)
	ctx := context.Background()

	fb, err := s.Detail(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if fb.FeedbackID != 10 {
		t.Errorf("id = %d, want 10", fb.FeedbackID)
	}

	if _, err := s.Detail(ctx, 10); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&f.calls); n != 1 {
		t.Errorf("backend called %d times, want 1", n)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	f := &fakeFetcher{}
	s := NewService(f, time.Minute, 5*time.Millisecond)
	ctx := context.Background()

	_, _ = s.Detail(ctx, 10)
	s.Invalidate(10)
	_, _ = s.Detail(ctx, 10)

	if n := atomic.LoadInt32(&f.calls); n != 2 {
		t.Errorf("backend called %d times, want 2 after invalidation", n)
	}
}
