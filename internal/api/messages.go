package api

import (
	"context"
	"fmt"
)

// Conversations returns the caller's conversation summaries, most
// recent first as ordered by the server.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var resp struct {
		Conversations []Conversation `json:"conversations"`
	}
	path := fmt.Sprintf("/messages/conversations?user_id=%d", c.UserID())
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// Messages returns the full thread with the given peer, oldest first.
// The server marks the peer's messages read as a side effect.
func (c *Client) Messages(ctx context.Context, peerID int64) ([]Message, error) {
	var resp struct {
		Messages []Message `json:"messages"`
	}
	path := fmt.Sprintf("/messages/messages/%d?user_id=%d", peerID, c.UserID())
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// SendMessage posts one message from the logged-in user to receiverID.
func (c *Client) SendMessage(ctx context.Context, receiverID int64, text string) error {
	body := map[string]any{
		"sender_id":    c.UserID(),
		"receiver_id":  receiverID,
		"message_text": text,
	}
	return c.post(ctx, "/messages/send", body, nil)
}

// MessageUnreadCount returns the caller's total unread message count.
func (c *Client) MessageUnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	path := fmt.Sprintf("/messages/unread-count?user_id=%d", c.UserID())
	if err := c.get(ctx, path, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
