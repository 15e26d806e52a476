package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/tictacgo/internal/config"
)

// Config holds CLI configuration. Storage settings start from the TICTAC_*
// environment and are overridden by flags.
type Config struct {
	Storage   string
	DBPath    string
	RedisURL  string
	ServerURL string
	Output    string
	Verbose   bool

	env config.Config
}

// DefaultConfig returns a Config seeded from the environment
func DefaultConfig() (*Config, error) {
	envCfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return &Config{
		Storage:   envCfg.Storage,
		DBPath:    envCfg.SQLitePath,
		RedisURL:  envCfg.RedisURL,
		ServerURL: "http://" + envCfg.Addr(),
		Output:    "text",
		env:       envCfg,
	}, nil
}

// AppConfig merges flag overrides into the environment configuration
func (c *Config) AppConfig() (config.Config, error) {
	merged := c.env
	merged.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	merged.SQLitePath = c.DBPath
	merged.RedisURL = c.RedisURL
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// LogLevel is WARN unless verbose output was requested
func (c *Config) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func (c *Config) validateOutput() error {
	switch c.Output {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be 'text' or 'json'", c.Output)
	}
}
