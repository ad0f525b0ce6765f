// Package main implements the sredlog CLI: auditable SR&ED time accounting
// from tagged git commits.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/sredlog/internal/config"
	"github.com/fyrsmithlabs/sredlog/internal/logging"
)

var (
	// repoPath is the repository whose history is analyzed
	repoPath string
	// configPath overrides the default config file location
	configPath string
	// logLevel overrides the configured log level
	logLevel string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sredlog",
	Short: "SR&ED time accounting from tagged git commits",
	Long: `sredlog reconstructs work sessions from SR&ED-tagged git commits and
produces auditable time logs.

Commits tagged exp: open a session; obs: and test: record observations;
succeed:, pivot:, stop: and fail: close it. Time is measured from commit
timestamp gaps, with any gap over 4 hours capped at a 1 hour credit.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", ".", "path to git repository")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/sredlog/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(watchCmd)
}

// setup loads configuration and builds the logger shared by all commands.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, nil, err
	}

	levelName := cfg.Logging.Level
	if logLevel != "" {
		levelName = logLevel
	}
	level, err := logging.LevelFromString(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	logger, err := logging.New(&logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}
