package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAddMovie_PostsAndDecodes(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody MovieRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"id": 12, "title": "Interstellar"}`))
	}))
	defer server.Close()

	client := testClient(server)
	movie, err := client.AddMovie(context.Background(), MovieRequest{Title: "Interstellar", Genre: "Sci-Fi"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotMethod != "POST" || gotPath != "/movies/addmovie" {
		t.Fatalf("expected POST /movies/addmovie, got %s %s", gotMethod, gotPath)
	}
	if gotBody.Title != "Interstellar" || gotBody.Genre != "Sci-Fi" {
		t.Fatalf("unexpected payload: %+v", gotBody)
	}
	if movie.Id != 12 {
		t.Fatalf("expected movie id 12, got %d", movie.Id)
	}
}

func TestAddMovie_TitleRequiredBeforeSending(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := testClient(server)
	if _, err := client.AddMovie(context.Background(), MovieRequest{Genre: "Drama"}); err == nil {
		t.Fatal("expected a validation error for a missing title")
	}
	if requests != 0 {
		t.Fatalf("expected no HTTP requests, got %d", requests)
	}
}

func TestUpdateMovie_PutsToMoviePath(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"id": 9, "title": "Dune"}`))
	}))
	defer server.Close()

	client := testClient(server)
	movie, err := client.UpdateMovie(context.Background(), 9, MovieRequest{Title: "Dune"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotMethod != "PUT" || gotPath != "/movies/updatemovie/9" {
		t.Fatalf("expected PUT /movies/updatemovie/9, got %s %s", gotMethod, gotPath)
	}
	if movie.Title != "Dune" {
		t.Fatalf("expected the updated movie back, got %+v", movie)
	}
}

func TestUpdateMovie_RequiresId(t *testing.T) {
	client := NewClient(nil, "http://example.invalid")
	if _, err := client.UpdateMovie(context.Background(), 0, MovieRequest{Title: "Dune"}); err == nil {
		t.Fatal("expected an error for a missing movie id")
	}
}
