package main

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"elarith/object"
)

// Config is read from the environment.
type Config struct {
	LogLevel  string `env:"ELARITH_LOG_LEVEL"  envDefault:"info"`
	Headless  bool   `env:"ELARITH_HEADLESS"`
	ArenaMode string `env:"ELARITH_ARENA_MODE" envDefault:"shared"`
	EnvName   string `env:"ELARITH_ENV_NAME"   envDefault:"elarith"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.mode(); err != nil {
		return Config{}, err
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("ELARITH_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

func (c Config) mode() (object.Mode, error) {
	switch c.ArenaMode {
	case "shared":
		return object.Shared, nil
	case "exclusive":
		return object.Exclusive, nil
	}
	return 0, fmt.Errorf("ELARITH_ARENA_MODE: unknown arena mode %q", c.ArenaMode)
}

func newLogger(c Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
	}
	return zerolog.New(consoleWriter).Level(level).With().Timestamp().Logger()
}
