package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbeaudet-dev/rollio-sub001/internal/config"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.False(t, cfg.RedisTLS)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, "plastic", cfg.Difficulty)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Zero(t, cfg.Seed)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ROLLIO_REDIS_ADDR", "redis:6380")
	t.Setenv("ROLLIO_REDIS_TLS", "true")
	t.Setenv("ROLLIO_LOG_LEVEL", "DEBUG")
	t.Setenv("ROLLIO_DIFFICULTY", "gold")
	t.Setenv("ROLLIO_SESSION_TTL", "90m")
	t.Setenv("ROLLIO_SEED", "1234")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis:6380", cfg.RedisAddr)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "gold", cfg.Difficulty)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, uint64(1234), cfg.Seed)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{name: "unparsable seed", key: "ROLLIO_SEED", value: "lots", wantMsg: "failed to parse environment"},
		{name: "unparsable ttl", key: "ROLLIO_SESSION_TTL", value: "soon", wantMsg: "failed to parse environment"},
		{name: "unknown difficulty", key: "ROLLIO_DIFFICULTY", value: "wood", wantMsg: "Difficulty"},
		{name: "unknown log level", key: "ROLLIO_LOG_LEVEL", value: "loud", wantMsg: "LogLevel"},
		{name: "negative ttl", key: "ROLLIO_SESSION_TTL", value: "-1h", wantMsg: "SessionTTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_RequiresRedisAddr(t *testing.T) {
	cfg := &config.Config{LogLevel: "info", Difficulty: "plastic", SessionTTL: time.Hour}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RedisAddr")
}
