package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFile    string
	dataDir    string
)

// settings is resolved once per invocation by loadSettings.
var (
	settings    config.Settings
	logger      zerolog.Logger
	closeLogger = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "redline",
	Short: "Redline - AI text rewrites as reviewable suggestions",
	Long: `Redline sends part of a text file to a language model and writes the
rewrite back as inline suggestions: added and removed spans that can be
accepted or rejected one by one, instead of silently replacing the text.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (YAML or TOML); default "+config.DefaultPath())
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the run log database")

	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() { closeLogger() }()
	return rootCmd.ExecuteContext(ctx)
}

func configOptions() config.Options {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Options{Path: path}
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.Load(configOptions())
	if err != nil {
		return err
	}
	if logLevel != "" {
		s.Log.Level = logLevel
	}
	if logFile != "" {
		s.Log.File = logFile
	}
	if dataDir != "" {
		s.DataDir = dataDir
	}

	l, closer, err := logging.New(s.Log.Level, s.Log.File, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	logging.SetDefault(l)
	settings, logger, closeLogger = s, l, closer
	return nil
}

// stdoutIsTerminal is replaced in tests.
var stdoutIsTerminal = func() bool {
	return isTerminal(os.Stdout)
}
