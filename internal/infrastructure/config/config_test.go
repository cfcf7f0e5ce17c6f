package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Desktop.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.Desktop.NotificationTTL)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BROADCAST_POLL_INTERVAL", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Desktop.PollInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	cfg := LoadOrDefault()
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
}
