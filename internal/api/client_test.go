package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tinqs/internal/model"
)

func TestDo_AttachesBearerTokenWhenPresent(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, func() string { return "tok-123" })
	if _, err := c.Tasks(context.Background()); err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization = %q", gotAuth)
	}

	// Logged out: no header at all.
	c = New(srv.URL, func() string { return "" })
	if _, err := c.Tasks(context.Background()); err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("authorization = %q, want empty", gotAuth)
	}
}

func TestCreateTask_OmitsEmptyDateFromPayload(t *testing.T) {
	t.Parallel()

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"_id":"t1","title":"A"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	p := model.TaskPayload{Title: "A", Priority: model.PriorityMedium, Status: model.StatusPending}
	task, err := c.CreateTask(context.Background(), p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID != "t1" {
		t.Fatalf("id = %q", task.ID)
	}
	if _, ok := body["date"]; ok {
		t.Fatalf("empty date sent: %v", body)
	}
}

func TestDo_SurfacesServerMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Provide email and password."}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Login(context.Background(), "", "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := UserMessage(err, "Login failed."); got != "Provide email and password." {
		t.Fatalf("user message = %q", got)
	}
}

func TestIsConflict(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Category name already exists"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, func() string { return "tok" })
	_, err := c.CreateCategory(context.Background(), "Work")
	if !IsConflict(err) {
		t.Fatalf("IsConflict = false for 409: %v", err)
	}
	if IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized = true for 409")
	}
}

func TestUserMessage_FallsBackOnTransportError(t *testing.T) {
	t.Parallel()

	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Tasks(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if got := UserMessage(err, "Failed to load tasks."); got != "Failed to load tasks." {
		t.Fatalf("user message = %q", got)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() { close(block); srv.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(srv.URL, nil)
	if _, err := c.Tasks(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}
