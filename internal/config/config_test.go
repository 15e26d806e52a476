package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, DefaultSQLitePath(), cfg.SQLitePath)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.SessionTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"TICTAC_STORAGE":     " Redis ",
		"TICTAC_REDIS_URL":   "redis://localhost:6379/0",
		"TICTAC_SESSION_TTL": "24h",
		"TICTAC_HOST":        "0.0.0.0",
		"TICTAC_PORT":        "9090",
		"TICTAC_LOG_LEVEL":   "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	require.NoError(t, cfg.Validate())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadFromBadPort(t *testing.T) {
	_, err := LoadFrom(map[string]string{"TICTAC_PORT": "eighty"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{Storage: StorageMemory, Port: 8080, LogLevel: "info"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "memory", mutate: func(c *Config) {}},
		{name: "sqlite with path", mutate: func(c *Config) {
			c.Storage = StorageSQLite
			c.SQLitePath = filepath.Join(t.TempDir(), "x.db")
		}},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage = StorageSQLite }, wantErr: true},
		{name: "redis without url", mutate: func(c *Config) { c.Storage = StorageRedis }, wantErr: true},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage = "postgres" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}
