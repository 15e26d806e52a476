// Package config reads process configuration from TICTAC_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config is the environment-derived configuration shared by the server and
// the CLI. CLI flags are applied on top of it.
type Config struct {
	Storage    string        `env:"TICTAC_STORAGE"     envDefault:"sqlite"`
	SQLitePath string        `env:"TICTAC_SQLITE_PATH"`
	RedisURL   string        `env:"TICTAC_REDIS_URL"`
	SessionTTL time.Duration `env:"TICTAC_SESSION_TTL" envDefault:"0s"`
	Host       string        `env:"TICTAC_HOST"        envDefault:"localhost"`
	Port       int           `env:"TICTAC_PORT"        envDefault:"8080"`
	LogLevel   string        `env:"TICTAC_LOG_LEVEL"   envDefault:"info"`
}

// Load parses the process environment
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = DefaultSQLitePath()
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	return cfg, nil
}

// Validate checks that the selected backend has what it needs
func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StorageSQLite:
		if c.SQLitePath == "" {
			return errors.New("TICTAC_SQLITE_PATH is required for sqlite storage")
		}
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("TICTAC_REDIS_URL is required for redis storage")
		}
	default:
		return fmt.Errorf("unknown storage %q: must be memory, sqlite or redis", c.Storage)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Addr returns the host:port the server listens on
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Level parses LogLevel
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// DefaultSQLitePath is ~/.tictacgo/tictac.db, or a path under the working
// directory when the home directory is unknown
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".tictacgo", "tictac.db")
	}
	return filepath.Join(home, ".tictacgo", "tictac.db")
}
