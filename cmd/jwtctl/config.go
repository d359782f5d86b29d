package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cybergodev/jwt"
)

// config is read from the environment after any .env files are loaded.
type config struct {
	Secret   string `env:"JWT_SECRET"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`

	Processor jwt.Config `envPrefix:"JWT_"`
}

// loadConfig loads envFiles (".env" when none are given) and parses the
// environment. Missing env files are ignored.
func loadConfig(envFiles ...string) (config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("loading env file: %w", err)
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}

// newLogger builds a JSON logger writing to stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	var parsed zapcore.Level
	if strings.TrimSpace(level) != "" {
		if err := parsed.Set(level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
