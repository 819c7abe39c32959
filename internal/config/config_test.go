package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "LOG_LEVEL", "SHUTDOWN_TIMEOUT",
	"ALERT_RADIUS_KM", "ALERT_TICK_INTERVAL", "ALERT_PROBABILITY",
	"SESSION_SECRET", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"EVENT_JOURNAL_KEY", "EVENT_JOURNAL_MAX_LEN",
}

// clearEnv обнуляет переменные, чтобы окружение разработчика не влияло на тест
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50.0, cfg.AlertRadiusKm)
	assert.Equal(t, 30*time.Second, cfg.AlertTickInterval)
	assert.Equal(t, 0.10, cfg.AlertProbability)
	assert.Empty(t, cfg.SessionSecret)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.JournalEnabled())
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "border_alert_events", cfg.EventJournalKey)
	assert.Equal(t, int64(1000), cfg.EventJournalMaxLen)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "15s")
	t.Setenv("ALERT_RADIUS_KM", "25.5")
	t.Setenv("ALERT_TICK_INTERVAL", "1m")
	t.Setenv("ALERT_PROBABILITY", "0.5")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("EVENT_JOURNAL_KEY", "journal")
	t.Setenv("EVENT_JOURNAL_MAX_LEN", "250")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 25.5, cfg.AlertRadiusKm)
	assert.Equal(t, time.Minute, cfg.AlertTickInterval)
	assert.Equal(t, 0.5, cfg.AlertProbability)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.True(t, cfg.JournalEnabled())
	assert.Equal(t, "pw", cfg.RedisPass)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "journal", cfg.EventJournalKey)
	assert.Equal(t, int64(250), cfg.EventJournalMaxLen)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr string
	}{
		{key: "SHUTDOWN_TIMEOUT", value: "soon", wantErr: "invalid SHUTDOWN_TIMEOUT"},
		{key: "SHUTDOWN_TIMEOUT", value: "-1s", wantErr: "SHUTDOWN_TIMEOUT must be positive"},
		{key: "ALERT_TICK_INTERVAL", value: "0s", wantErr: "ALERT_TICK_INTERVAL must be positive"},
		{key: "ALERT_RADIUS_KM", value: "far", wantErr: "invalid ALERT_RADIUS_KM"},
		{key: "ALERT_RADIUS_KM", value: "-5", wantErr: "ALERT_RADIUS_KM must be positive"},
		{key: "ALERT_PROBABILITY", value: "1.5", wantErr: "ALERT_PROBABILITY must be within [0, 1]"},
		{key: "REDIS_DB", value: "one", wantErr: "invalid REDIS_DB"},
		{key: "EVENT_JOURNAL_MAX_LEN", value: "0", wantErr: "EVENT_JOURNAL_MAX_LEN must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
