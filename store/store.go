// Package store persists the refreshable catalog caches and small bits of
// user preference under the OS cache and config directories. Nothing here is
// authoritative: every cached value is a transient copy of backend state.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"showtime-tix-cli/model"
)

const (
	appDirName = "showtime-tix-cli"

	movieCacheTTL   = time.Hour
	theaterCacheTTL = 24 * time.Hour
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

type preferences struct {
	City string `json:"city"`
}

// LoadMovieCache returns the cached movie catalog and whether it is still
// fresh. A missing cache is empty and stale, never an error.
func LoadMovieCache() ([]model.Movie, bool, error) {
	path, err := cachePath("movies.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Movie](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= movieCacheTTL, nil
}

func SaveMovieCache(movies []model.Movie) error {
	path, err := cachePath("movies.json")
	if err != nil {
		return err
	}
	return saveCache(path, movies)
}

func LoadTheaterCache() ([]model.Theater, bool, error) {
	path, err := cachePath("theaters.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Theater](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= theaterCacheTTL, nil
}

func SaveTheaterCache(theaters []model.Theater) error {
	path, err := cachePath("theaters.json")
	if err != nil {
		return err
	}
	return saveCache(path, theaters)
}

// InvalidateCatalog drops both catalog caches; called after admin mutations
// so the next read goes to the backend.
func InvalidateCatalog() error {
	for _, name := range []string{"movies.json", "theaters.json"} {
		path, err := cachePath(name)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// RememberCity stores the schedule browser's city filter for the next run.
// An empty city clears the preference (unrestricted browsing).
func RememberCity(city string) error {
	path, err := configPath("preferences.json")
	if err != nil {
		return err
	}
	prefs, _ := loadPreferences(path)
	prefs.City = strings.TrimSpace(city)
	return savePreferences(path, prefs)
}

// LastCity returns the remembered city filter, empty when none was saved.
func LastCity() string {
	path, err := configPath("preferences.json")
	if err != nil {
		return ""
	}
	prefs, err := loadPreferences(path)
	if err != nil {
		return ""
	}
	return prefs.City
}

func loadPreferences(path string) (preferences, error) {
	var prefs preferences
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, err
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return preferences{}, errors.New("invalid preferences format")
	}
	return prefs, nil
}

func savePreferences(path string, prefs preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}
