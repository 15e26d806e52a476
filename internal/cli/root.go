package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictacgo/internal/factory"
	"github.com/mcoot/tictacgo/internal/model"
)

// Version is set at build time with -ldflags "-X ...cli.Version=..."
var Version = "dev"

// Commands carrying this annotation run without opening storage
const annotationOffline = "offline"

var (
	cfg *Config
	app *factory.App
	out *Output

	// restoreWarn holds storage faults hit while restoring the session
	restoreWarn error
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cfgErr error
	cfg, cfgErr = DefaultConfig()
	if cfg == nil {
		cfg = &Config{Output: "text"}
	}

	rootCmd := &cobra.Command{
		Use:   "tictac",
		Short: "Play tic-tac-toe in the terminal",
		Long: `tictac is a terminal tic-tac-toe game.

Sign in with any identity to keep per-mark win/loss/tie stats and a preferred
mark. State is kept in local storage between invocations (SQLite by default).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if err := cfg.validateOutput(); err != nil {
				return err
			}
			out = NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())

			if cmd.Annotations[annotationOffline] == "true" {
				return nil
			}
			return openApp(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeApp()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: memory, sqlite, redis (env: TICTAC_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (env: TICTAC_SQLITE_PATH)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: TICTAC_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newMarkCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newAboutCmd())

	return rootCmd
}

// openApp wires the application against the configured storage and
// restores the session saved by a previous invocation
func openApp(cmd *cobra.Command) error {
	appCfg, err := cfg.AppConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))

	app, err = factory.New(factory.ConfigFrom(appCfg, logger))
	if err != nil {
		return err
	}

	_, restoreWarn = app.Session.RestoreSession(cmd.Context())
	if restoreWarn != nil && !model.IsWarning(restoreWarn) {
		_ = closeApp()
		return fmt.Errorf("restore session: %w", restoreWarn)
	}
	return nil
}

func closeApp() error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	restoreWarn = nil
	return err
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if out != nil {
			out.PrintError(err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		_ = closeApp()
		os.Exit(1)
	}
}
