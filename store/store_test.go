package store

import (
	"testing"

	"showtime-tix-cli/model"
)

func setTestDirs(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
}

func TestMovieCache_RoundTrip(t *testing.T) {
	setTestDirs(t)

	movies, fresh, err := LoadMovieCache()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fresh || len(movies) != 0 {
		t.Fatalf("expected an empty stale cache, got fresh=%v len=%d", fresh, len(movies))
	}

	saved := []model.Movie{{Id: 1, Title: "Dune"}, {Id: 2, Title: "Heat"}}
	if err := SaveMovieCache(saved); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	movies, fresh, err = LoadMovieCache()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !fresh {
		t.Fatal("expected a just-saved cache to be fresh")
	}
	if len(movies) != 2 || movies[0].Title != "Dune" {
		t.Fatalf("unexpected cache contents: %+v", movies)
	}
}

func TestTheaterCache_RoundTrip(t *testing.T) {
	setTestDirs(t)

	if err := SaveTheaterCache([]model.Theater{{Id: 3, Name: "Galaxy", City: "Mumbai"}}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	theaters, fresh, err := LoadTheaterCache()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !fresh || len(theaters) != 1 || theaters[0].City != "Mumbai" {
		t.Fatalf("unexpected cache: fresh=%v %+v", fresh, theaters)
	}
}

func TestInvalidateCatalog(t *testing.T) {
	setTestDirs(t)

	if err := SaveMovieCache([]model.Movie{{Id: 1}}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := SaveTheaterCache([]model.Theater{{Id: 1}}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if err := InvalidateCatalog(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	movies, _, err := LoadMovieCache()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(movies) != 0 {
		t.Fatalf("expected the movie cache to be gone, got %+v", movies)
	}

	// Invalidating again must not fail on already-missing files.
	if err := InvalidateCatalog(); err != nil {
		t.Fatalf("expected nil error on repeat invalidation, got %v", err)
	}
}

func TestRememberCity_RoundTrip(t *testing.T) {
	setTestDirs(t)

	if got := LastCity(); got != "" {
		t.Fatalf("expected no remembered city, got %q", got)
	}
	if err := RememberCity("  Pune "); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := LastCity(); got != "Pune" {
		t.Fatalf("expected trimmed city Pune, got %q", got)
	}
	if err := RememberCity(""); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := LastCity(); got != "" {
		t.Fatalf("expected the preference to clear, got %q", got)
	}
}
