// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL  = "http://localhost:8080/api"
	defaultHTTPTimeout = 12 * time.Second

	// Scheduling window the back office accepts new shows for. These mirror
	// the bounds the backend enforces and can be overridden per deployment.
	defaultWindowOpen  = "2026-01-20T00:00:00Z"
	defaultWindowClose = "2026-01-26T23:59:00Z"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; unset optional variables fall back to defaults.
type Config struct {
	APIBaseURL  string        // SHOWTIME_API_URL: backend base URL
	DefaultCity string        // SHOWTIME_CITY: startup city filter, empty means unrestricted
	WindowOpen  time.Time     // SHOWTIME_WINDOW_OPEN: earliest schedulable show start
	WindowClose time.Time     // SHOWTIME_WINDOW_CLOSE: latest schedulable show end
	HTTPTimeout time.Duration // SHOWTIME_HTTP_TIMEOUT: per-request timeout
}

// Load reads configuration from the environment, after loading a .env file
// if one is present in the working directory.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:  getenv("SHOWTIME_API_URL", defaultAPIBaseURL),
		DefaultCity: os.Getenv("SHOWTIME_CITY"),
		HTTPTimeout: defaultHTTPTimeout,
	}

	open, err := timeEnv("SHOWTIME_WINDOW_OPEN", defaultWindowOpen)
	if err != nil {
		return Config{}, err
	}
	close, err := timeEnv("SHOWTIME_WINDOW_CLOSE", defaultWindowClose)
	if err != nil {
		return Config{}, err
	}
	if !close.After(open) {
		return Config{}, fmt.Errorf("booking window close %s is not after open %s", close.Format(time.RFC3339), open.Format(time.RFC3339))
	}
	cfg.WindowOpen = open
	cfg.WindowClose = close

	if raw := os.Getenv("SHOWTIME_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHOWTIME_HTTP_TIMEOUT %q: %w", raw, err)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}

// InWindow reports whether t falls inside the configured scheduling window.
func (c Config) InWindow(t time.Time) bool {
	return !t.Before(c.WindowOpen) && !t.After(c.WindowClose)
}

func getenv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func timeEnv(key string, fallback string) (time.Time, error) {
	raw := os.Getenv(key)
	if raw == "" {
		raw = fallback
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return t, nil
}
