package api

import (
	"errors"
	"fmt"
)

// ErrNotLoggedIn is returned before any request is issued when no bearer
// token is available. Callers redirect to the login flow instead of
// hitting the backend.
var ErrNotLoggedIn = errors.New("no stored token")

// Error is a non-2xx response from the backend, carrying the decoded
// {"error": ...} body when present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}
