package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"studyplan/internal/app"
	"studyplan/internal/config"
	"studyplan/internal/logging"
	"studyplan/internal/ui"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "A daily study planner for exam preparation",
	Long: `Planner keeps a per-day list of subjects and topics, tracks what is done
and reports monthly progress. Without a subcommand it opens the interactive planner.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := openApp(true)
		defer cleanup()

		if err := ui.Run(a.Plan, a.Config, a.Logger()); err != nil {
			cleanup()
			fatal("error running program", err)
		}
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default is the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openApp loads the config, builds the logger and opens the plan. The TUI logs to
// the configured file; subcommands log warnings to stderr unless verbose.
func openApp(tui bool) (*app.App, func()) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		fatal("failed to load config", err)
	}

	opts := logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}
	var (
		logger  *log.Logger
		logFile io.Closer
	)
	switch {
	case tui && cfg.LogPath != "":
		if verbose {
			opts.Level = "debug"
		}
		logger, logFile, err = logging.OpenFile(cfg.LogPath, opts)
		if err != nil {
			fatal("failed to open log file", err)
		}
	default:
		opts.Level = "warn"
		if verbose {
			opts.Level = "debug"
		}
		logger = logging.New(os.Stderr, opts)
	}

	a, err := app.Open(cfg, logger)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		fatal("failed to open plan", err)
	}

	closed := false
	return a, func() {
		if closed {
			return
		}
		closed = true
		if err := a.Close(); err != nil {
			logger.Error("failed to close plan", "err", err)
		}
		if logFile != nil {
			logFile.Close()
		}
	}
}
