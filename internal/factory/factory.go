package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/mcoot/tictacgo/internal/api/sse"
	"github.com/mcoot/tictacgo/internal/config"
	"github.com/mcoot/tictacgo/internal/dependencies/clock"
	"github.com/mcoot/tictacgo/internal/dependencies/ids"
	"github.com/mcoot/tictacgo/internal/services/game"
	"github.com/mcoot/tictacgo/internal/services/session"
	"github.com/mcoot/tictacgo/internal/services/stats"
	"github.com/mcoot/tictacgo/internal/storage"
	"github.com/mcoot/tictacgo/internal/storage/memory"
	redisstorage "github.com/mcoot/tictacgo/internal/storage/redis"
	sqlitestorage "github.com/mcoot/tictacgo/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeSQLite = config.StorageSQLite
	StorageTypeRedis  = config.StorageRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Services
	Ledger         *stats.Ledger
	Session        *session.Store
	GameController *game.Controller
	Hub            *sse.Hub

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// ConfigFrom builds a factory Config from environment configuration
func ConfigFrom(cfg config.Config, logger *slog.Logger) Config {
	out := Config{
		Logger:      logger,
		StorageType: cfg.Storage,
		SQLitePath:  cfg.SQLitePath,
	}
	if cfg.Storage == StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.SessionTTL = cfg.SessionTTL
		out.RedisConfig = &redisCfg
	}
	return out
}

// New creates a new application with all dependencies wired. Close releases
// the storage backend and stops the event hub.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	var closers []io.Closer
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		store = sqliteStore
		closers = append(closers, sqliteStore)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis storage: %w", err)
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'sqlite' or 'redis'", storageType)
	}

	logger.Debug("storage ready", slog.String("storage", storageType))

	app := newWithDependencies(store, clock.New(), ids.New(), logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, idGen ids.Generator, logger *slog.Logger) *App {
	hub := sse.NewHub(logger)
	go hub.Run()

	ledger := stats.New(store, logger)
	sessionStore := session.New(store, ledger, clk, logger)
	gameController := game.NewController(sessionStore, ledger, idGen, clk, hub, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		IDs:            idGen,
		Ledger:         ledger,
		Session:        sessionStore,
		GameController: gameController,
		Hub:            hub,
	}
}

// Close stops the event hub and closes the storage backend
func (a *App) Close() error {
	a.Hub.Close()

	var result *multierror.Error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
