package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Feed endpoints and the cutoff hour are configuration rather than
// compiled-in literals, so tests can point the board at fixtures.
const (
	DefaultStaticURL     = "https://exo.quebec/xdata/trains/google_transit.zip"
	DefaultRealtimeURL   = "https://exo.chrono-saeiv.com/api/opendata/v1/trains/tripupdate"
	DefaultTimezone      = "America/Toronto"
	DefaultDayTransition = "02:00"
)

// Config is the immutable run configuration.
type Config struct {
	StaticURL     string
	RealtimeURL   string
	Location      *time.Location
	DayTransition time.Duration
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{
		StaticURL:   getenvDefault("TRAINBOARD_STATIC_URL", DefaultStaticURL),
		RealtimeURL: getenvDefault("TRAINBOARD_REALTIME_URL", DefaultRealtimeURL),
	}

	if token := os.Getenv("TRAINBOARD_API_TOKEN"); token != "" {
		sep := "?"
		if strings.Contains(cfg.RealtimeURL, "?") {
			sep = "&"
		}
		cfg.RealtimeURL += sep + "token=" + url.QueryEscape(token)
	}

	tz := getenvDefault("TRAINBOARD_TIMEZONE", DefaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("loading timezone '%s': %w", tz, err)
	}
	cfg.Location = loc

	cutoff, err := parseClock(getenvDefault("TRAINBOARD_DAY_TRANSITION", DefaultDayTransition))
	if err != nil {
		return nil, fmt.Errorf("parsing TRAINBOARD_DAY_TRANSITION: %w", err)
	}
	cfg.DayTransition = cutoff

	return cfg, nil
}

// parseClock turns an HH:MM time-of-day into an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day '%s': %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
