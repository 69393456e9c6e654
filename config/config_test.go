package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultStaticURL, cfg.StaticURL)
	assert.Equal(t, DefaultRealtimeURL, cfg.RealtimeURL)
	assert.Equal(t, "America/Toronto", cfg.Location.String())
	assert.Equal(t, 2*time.Hour, cfg.DayTransition)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRAINBOARD_STATIC_URL", "http://localhost:8080/static.zip")
	t.Setenv("TRAINBOARD_REALTIME_URL", "http://localhost:8080/tripupdate")
	t.Setenv("TRAINBOARD_TIMEZONE", "UTC")
	t.Setenv("TRAINBOARD_DAY_TRANSITION", "03:30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/static.zip", cfg.StaticURL)
	assert.Equal(t, "http://localhost:8080/tripupdate", cfg.RealtimeURL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 3*time.Hour+30*time.Minute, cfg.DayTransition)
}

func TestLoadAPIToken(t *testing.T) {
	t.Setenv("TRAINBOARD_API_TOKEN", "se&cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultRealtimeURL+"?token=se%26cret", cfg.RealtimeURL)

	// Appended with & when the URL already has a query
	t.Setenv("TRAINBOARD_REALTIME_URL", "http://localhost:8080/tripupdate?format=pb")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/tripupdate?format=pb&token=se%26cret", cfg.RealtimeURL)
}

func TestLoadBadValues(t *testing.T) {
	t.Setenv("TRAINBOARD_TIMEZONE", "Mars/Olympus_Mons")
	_, err := Load()
	assert.ErrorContains(t, err, "timezone")

	t.Setenv("TRAINBOARD_TIMEZONE", "UTC")
	t.Setenv("TRAINBOARD_DAY_TRANSITION", "2am")
	_, err = Load()
	assert.ErrorContains(t, err, "TRAINBOARD_DAY_TRANSITION")
}
