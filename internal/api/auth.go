package api

import (
	"context"
	"net/http"
)

// Login exchanges email/password for a bearer token. Unauthenticated.
// The caller is responsible for persisting the result and installing it
// via SetCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", false, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account. Unauthenticated.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", false, req, nil)
}

// Me returns the identity behind the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/auth/me", &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
