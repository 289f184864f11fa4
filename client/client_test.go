package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"tasks":[],"total":0}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("token-123"))
	if _, err := c.Tasks.List(context.Background(), TaskQuery{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer token-123")
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"server_error","message":"boom"}`))
			return
		}
		w.Write([]byte(`{"id":"t1","title":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithRetries(2, time.Millisecond))
	task, err := c.Tasks.Get(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if task.Title != "ok" {
		t.Errorf("Title = %q, want %q", task.Title, "ok")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"validation_error","message":"title is required"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithRetries(3, time.Millisecond))
	_, err := c.Tasks.Create(context.Background(), CreateTask{ListID: "l1"})
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if apiErr.Code != "validation_error" {
		t.Errorf("Code = %q, want %q", apiErr.Code, "validation_error")
	}
	if apiErr.Message != "title is required" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "title is required")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (4xx must not be retried)", got)
	}
}

func TestClient_UnauthorizedClearsTokenAndFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unauthorized","message":"Invalid or expired token"}`))
	}))
	defer srv.Close()

	hookFired := false
	c := New(srv.URL,
		WithToken("expired"),
		WithUnauthorizedHook(func() { hookFired = true }),
	)

	_, err := c.Tasks.List(context.Background(), TaskQuery{})
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized(%v) = false, want true", err)
	}
	if !hookFired {
		t.Error("OnUnauthorized hook did not fire")
	}
	if c.Token() != "" {
		t.Errorf("Token = %q, want cleared", c.Token())
	}
}

func TestAuth_LoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", r.URL.Path)
		}
		w.Write([]byte(`{"user_id":"u1","access_token":"fresh","refresh_token":"r1","token_type":"Bearer"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	pair, err := c.Auth.Login(context.Background(), "a@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if pair.AccessToken != "fresh" {
		t.Errorf("AccessToken = %q, want %q", pair.AccessToken, "fresh")
	}
	if c.Token() != "fresh" {
		t.Errorf("Token = %q, want %q", c.Token(), "fresh")
	}
}

func TestAuth_LogoutClearsTokenEvenOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("t"), WithRetries(0, time.Millisecond))
	c.Auth.Logout(context.Background())

	if c.Token() != "" {
		t.Errorf("Token = %q, want cleared", c.Token())
	}
}

func TestTaskQuery_Values(t *testing.T) {
	q := TaskQuery{
		Search:     "report",
		Status:     "pending",
		Priorities: []string{"high", "medium"},
		ListIDs:    []string{"a", "b"},
		Overdue:    true,
		SortBy:     "deadline",
		SortDesc:   true,
	}
	v := q.values()

	if v.Get("q") != "report" || v.Get("status") != "pending" {
		t.Errorf("q/status = %q/%q", v.Get("q"), v.Get("status"))
	}
	if v.Get("priority") != "high,medium" {
		t.Errorf("priority = %q, want %q", v.Get("priority"), "high,medium")
	}
	if v.Get("list_id") != "a,b" {
		t.Errorf("list_id = %q, want %q", v.Get("list_id"), "a,b")
	}
	if v.Get("overdue") != "true" || v.Get("due_today") != "" {
		t.Errorf("quick filters = overdue %q, due_today %q", v.Get("overdue"), v.Get("due_today"))
	}
	if v.Get("sort") != "deadline" || v.Get("direction") != "desc" {
		t.Errorf("sort/direction = %q/%q", v.Get("sort"), v.Get("direction"))
	}

	if empty := (TaskQuery{}).values(); len(empty) != 0 {
		t.Errorf("zero query produced params %v", empty)
	}
}
