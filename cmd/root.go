package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/julpanucci/timerView/internal/config"
	"github.com/julpanucci/timerView/internal/ui"
)

const appID = "com.julpanucci.timerview"

var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	verbose    bool
	version    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "timerview",
		Short: "Workout timer with a play/pause card",
		Long: `Shows a single workout timer card. Tap the button to start, pause
and resume; the elapsed time is corrected from the wall clock whenever the
app returns to the foreground.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "timerview version", version)
				return nil
			}
			return run(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.timerview/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	cmd.PersistentFlags().BoolVar(&opts.version, "version", false, "print version information and exit")
	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	manager, err := config.NewManager(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := manager.GetConfig()

	levelName := cfg.Log.Level
	if opts.logLevel != "" {
		levelName = opts.logLevel
	}
	if opts.verbose {
		levelName = "debug"
	}
	level, err := parseLevel(levelName)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), level)
	logger.Debug("config loaded", "path", manager.Path())
	if err := manager.LoadError(); err != nil {
		logger.Warn("config replaced with defaults", "error", err, "backup", manager.BackupPath())
	}

	myApp := app.NewWithID(appID)
	window := ui.NewMainWindow(myApp, cfg, logger)
	window.Show()
	return nil
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
