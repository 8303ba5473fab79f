package api

import (
	"context"
	"fmt"
)

// Notifications returns the caller's notification feed, newest first.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var resp struct {
		Notifications []Notification `json:"notifications"`
	}
	if err := c.get(ctx, "/notifications/", &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/notifications/unread-count", &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// MarkRead marks a single notification read on the server.
func (c *Client) MarkRead(ctx context.Context, notificationID int64) error {
	return c.put(ctx, fmt.Sprintf("/notifications/%d/read", notificationID), nil)
}

// MarkAllRead marks every notification read on the server.
func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.put(ctx, "/notifications/mark-all-read", nil)
}
