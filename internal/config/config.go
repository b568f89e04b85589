// Package config loads process configuration from ROLLIO_* environment
// variables.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

// Log levels accepted by ROLLIO_LOG_LEVEL
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config is the process configuration
type Config struct {
	RedisAddr  string        `env:"ROLLIO_REDIS_ADDR"  envDefault:"localhost:6379"`
	RedisTLS   bool          `env:"ROLLIO_REDIS_TLS"`
	LogLevel   string        `env:"ROLLIO_LOG_LEVEL"   envDefault:"info"`
	Difficulty string        `env:"ROLLIO_DIFFICULTY"  envDefault:"plastic"`
	SessionTTL time.Duration `env:"ROLLIO_SESSION_TTL" envDefault:"24h"`
	// Seed fixes the seed of new runs; zero picks a random one
	Seed uint64 `env:"ROLLIO_SEED"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

// Validate checks every field
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	errors.ValidateEnum("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("Difficulty", c.Difficulty, entities.Difficulties(), vb)
	if c.SessionTTL <= 0 {
		vb.Field("SessionTTL", "must be positive")
	}

	return vb.Build()
}

// SlogLevel returns the configured log level, info when unknown
func (c *Config) SlogLevel() slog.Level {
	if l, ok := logLevels[c.LogLevel]; ok {
		return l
	}
	return slog.LevelInfo
}
