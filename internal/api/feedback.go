package api

import (
	"context"
	"fmt"
)

// FeedbackDetail fetches one feedback entry. This is the raw lookup;
// the cached and coalesced wrapper lives in the feedback package.
func (c *Client) FeedbackDetail(ctx context.Context, feedbackID int64) (*Feedback, error) {
	var fb Feedback
	if err := c.get(ctx, fmt.Sprintf("/feedback/%d", feedbackID), &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}
