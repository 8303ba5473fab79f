package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestAuthenticatedCallAttachesBearer(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"count": 2}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetCredentials("tok-abc", 7)

	count, err := c.UnreadCount(context.Background())
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
	if gotReqID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestNoTokenSkipsRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Conversations(context.Background())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("error = %v, want ErrNotLoggedIn", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("server hit %d times, want 0 (no request without token)", hits)
	}
}

func TestNon2xxBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Invalid token"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetCredentials("stale", 7)

	_, err := c.Me(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "Invalid token" {
		t.Errorf("message = %q, want backend error body", apiErr.Message)
	}
}

func TestLoginDoesNotRequireToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login should not carry an Authorization header")
		}
		_, _ = w.Write([]byte(`{"token":"t1","user_type":"athlete","user_id":9,"full_name":"Sam"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Login(context.Background(), "sam@example.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token != "t1" || res.UserID != 9 {
		t.Errorf("result = %+v", res)
	}
}

func TestMessagesPathCarriesPeerAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages/messages/33" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("user_id") != "7" {
			t.Errorf("user_id = %q, want 7", r.URL.Query().Get("user_id"))
		}
		_, _ = w.Write([]byte(`{"messages":[{"message_id":1,"sender_id":33,"receiver_id":7,"message_text":"hi","sent_at":"2025-01-01 10:00:00"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetCredentials("tok", 7)

	msgs, err := c.Messages(context.Background(), 33)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0].Text != "hi" {
		t.Errorf("msgs = %+v", msgs)
	}
}
