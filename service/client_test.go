package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(server *httptest.Server) *Client {
	client := NewClient(server.Client(), server.URL)
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond
	return client
}

func TestGetJSON_Non2xxReturnsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such movie"}`))
	}))
	defer server.Close()

	client := testClient(server)
	client.maxAttempts = 1

	var out map[string]any
	err := client.getJSON(context.Background(), "/movies/getallmovies", nil, &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestGetJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&attempts, 1)
		if current < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := testClient(server)

	var out map[string]any
	if err := client.getJSON(context.Background(), "/retry", nil, &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestGetJSON_DoesNotRetryClientErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad filter"}`))
	}))
	defer server.Close()

	client := testClient(server)

	var out map[string]any
	err := client.getJSON(context.Background(), "/shows", nil, &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestWriteJSON_NeverRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(server)

	err := client.writeJSON(context.Background(), "POST", "/booking/createbooking", map[string]int{"showId": 1}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt for a write, got %d", attempts)
	}
}

func TestAPIError_MessagePrefersJSONBody(t *testing.T) {
	err := &APIError{
		StatusCode: http.StatusConflict,
		Status:     "409 Conflict",
		Body:       `{"message":"Seat A2 was just booked"}`,
	}
	if got := err.Message(); got != "Seat A2 was just booked" {
		t.Fatalf("unexpected message: %q", got)
	}

	plain := &APIError{StatusCode: 500, Status: "500", Body: "boom"}
	if got := plain.Message(); got != "boom" {
		t.Fatalf("expected raw body fallback, got %q", got)
	}
}

func TestRetryDelay_ExponentialWithCap(t *testing.T) {
	client := &Client{retryBase: 200 * time.Millisecond, retryCap: 1200 * time.Millisecond}

	if got := client.retryDelay(1); got != 200*time.Millisecond {
		t.Fatalf("attempt 1: expected 200ms, got %v", got)
	}
	if got := client.retryDelay(2); got != 400*time.Millisecond {
		t.Fatalf("attempt 2: expected 400ms, got %v", got)
	}
	if got := client.retryDelay(10); got != 1200*time.Millisecond {
		t.Fatalf("attempt 10: expected the cap, got %v", got)
	}
}

func TestDoJSON_SetsIdentityHeaders(t *testing.T) {
	var gotAgent, gotRequestId string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotRequestId = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(server)
	var out map[string]any
	if err := client.getJSON(context.Background(), "/", nil, &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(gotAgent, "showtime-tix-cli") {
		t.Fatalf("unexpected user agent %q", gotAgent)
	}
	if gotRequestId == "" {
		t.Fatal("expected a request id header")
	}
}
