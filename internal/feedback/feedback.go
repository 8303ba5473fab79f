// Package feedback serves feedback details through the keyed cache so
// repeated opens of the same entry cost one backend call per TTL.
package feedback

import (
	"context"
	"time"

	"github.com/coachmeplay/cmp/internal/api"
	"github.com/coachmeplay/cmp/internal/cache"
)

// Fetcher is the backend lookup the service wraps.
type Fetcher interface {
	FeedbackDetail(ctx context.Context, feedbackID int64) (*api.Feedback, error)
}

// Service is the cached, coalesced feedback lookup.
type Service struct {
	lookup *cache.Lookup[int64, *api.Feedback]
}

// NewService wraps f. Zero ttl/window select the cache defaults
// (5 minutes, 300 ms).
func NewService(f Fetcher, ttl, window time.Duration) *Service {
	return &Service{
		lookup: cache.New(f.FeedbackDetail, ttl, window),
	}
}

// Detail returns the feedback entry, from cache when fresh.
func (s *Service) Detail(ctx context.Context, feedbackID int64) (*api.Feedback, error) {
	return s.lookup.Get(ctx, feedbackID)
}

// Invalidate drops one cached entry. Must be called after any mutation
// that could change it (e.g. the coach edits their feedback).
func (s *Service) Invalidate(feedbackID int64) {
	s.lookup.Invalidate(feedbackID)
}

// InvalidateAll drops the whole cache.
func (s *Service) InvalidateAll() {
	s.lookup.InvalidateAll()
}
