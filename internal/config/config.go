// Package config loads StudyQuest settings from a TOML file, then applies
// STUDYQUEST_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	Storage    StorageConfig    `toml:"storage"`
	Redis      RedisConfig      `toml:"redis"`
	Logging    LoggingConfig    `toml:"logging"`
	Challenges ChallengesConfig `toml:"challenges"`
	// Timezone decides where calendar days start. "Local" or an IANA name.
	Timezone string `toml:"timezone" env:"STUDYQUEST_TIMEZONE"`
}

type StorageConfig struct {
	Backend string `toml:"backend" env:"STUDYQUEST_BACKEND"`
	Path    string `toml:"path" env:"STUDYQUEST_DB"`
}

type RedisConfig struct {
	Addr     string `toml:"addr" env:"STUDYQUEST_REDIS_ADDR"`
	Password string `toml:"password" env:"STUDYQUEST_REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"STUDYQUEST_REDIS_DB"`
	Prefix   string `toml:"prefix" env:"STUDYQUEST_REDIS_PREFIX"`
}

type LoggingConfig struct {
	Level string `toml:"level" env:"STUDYQUEST_LOG_LEVEL"`
}

type ChallengesConfig struct {
	// File is an optional YAML challenge catalog.
	File string `toml:"file" env:"STUDYQUEST_CHALLENGES"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Backend: BackendSQLite},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "studyquest:",
		},
		Logging:  LoggingConfig{Level: "warn"},
		Timezone: "Local",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/studyquest/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "studyquest", "config.toml"), nil
}

// Load reads the config file at path (missing is fine), applies environment
// overrides and validates the result. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case "":
		c.Storage.Backend = BackendSQLite
	case BackendSQLite:
	case BackendRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("redis.addr is required for the redis backend")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("redis.db must be >= 0")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendSQLite, BackendRedis, c.Storage.Backend)
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", tz, err)
	}
	return loc, nil
}
