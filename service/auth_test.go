package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLogin_SessionCookieCarriesToMe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode login payload: %v", err)
		}
		if creds.UsernameOrEmail != "jane@example.com" {
			t.Fatalf("unexpected login payload: %+v", creds)
		}
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc123", Path: "/"})
		_, _ = w.Write([]byte(`{"id":7,"name":"Jane","email":"jane@example.com","roles":["ROLE_USER"]}`))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("JSESSIONID")
		if err != nil || cookie.Value != "abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"name":"Jane","email":"jane@example.com","roles":[{"authority":"ROLE_USER"}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := testClient(server)
	ctx := context.Background()

	user, err := client.Login(ctx, Credentials{UsernameOrEmail: "jane@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("login: expected nil error, got %v", err)
	}
	if !user.Authenticated() {
		t.Fatalf("expected an authenticated user, got %+v", user)
	}

	// The jar must replay the session cookie without any token handling.
	me, err := client.Me(ctx)
	if err != nil {
		t.Fatalf("me: expected nil error, got %v", err)
	}
	if me.Email != "jane@example.com" || !me.HasRole("ROLE_USER") {
		t.Fatalf("unexpected session snapshot: %+v", me)
	}
}

func TestLogin_EmptyCredentialsNeverSent(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.Login(context.Background(), Credentials{})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(err.Error(), "invalid request") {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 0 {
		t.Fatalf("expected no HTTP requests, got %d", requests)
	}
}

func TestRegister_ValidatesEmailAndPassword(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := testClient(server)
	err := client.Register(context.Background(), Registration{Name: "Jane", Email: "not-an-email", Password: "short"})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if requests != 0 {
		t.Fatalf("expected no HTTP requests, got %d", requests)
	}
}

func TestMe_AnonymousPseudoUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"anonymousUser","email":"anonymousUser","roles":"ROLE_ANONYMOUS"}`))
	}))
	defer server.Close()

	client := testClient(server)
	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if user.Authenticated() {
		t.Fatalf("expected the anonymous pseudo-user to not count as authenticated: %+v", user)
	}
}
