// Package config provides configuration loading for sredlog.
//
// User configuration comes from a YAML file overridden by environment
// variables. Per-repository project settings live in a .sred.toml file at
// the repository root, resolved separately by LoadProject.
package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/v2"
)

// Config holds the complete sredlog configuration.
type Config struct {
	Accounting AccountingConfig `koanf:"accounting"`
	Output     OutputConfig     `koanf:"output"`
	GitHub     GitHubConfig     `koanf:"github"`
	Logging    LoggingConfig    `koanf:"logging"`
	Watch      WatchConfig      `koanf:"watch"`
}

// AccountingConfig holds the gap-protection policy.
type AccountingConfig struct {
	// MaxGapHours is the threshold above which an inter-commit gap is capped.
	MaxGapHours float64 `koanf:"max_gap_hours"`
	// MaxGapCredit is the flat credit applied to a capped gap.
	MaxGapCredit float64 `koanf:"max_gap_credit"`
}

// OutputConfig holds default report output settings.
type OutputConfig struct {
	// Format is one of "markdown", "json" or "csv".
	Format string `koanf:"format"`
	// Path is the default output file; empty means stdout.
	Path string `koanf:"path"`
}

// GitHubConfig holds settings for the GitHub commit source.
type GitHubConfig struct {
	// Token authenticates API requests. Optional for public repositories.
	Token Secret `koanf:"token"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	// Debounce coalesces bursts of filesystem events into one regeneration.
	Debounce Duration `koanf:"debounce"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Accounting.MaxGapHours <= 0 {
		return fmt.Errorf("accounting.max_gap_hours must be > 0, got %v", c.Accounting.MaxGapHours)
	}
	if c.Accounting.MaxGapCredit < 0 {
		return fmt.Errorf("accounting.max_gap_credit must be >= 0, got %v", c.Accounting.MaxGapCredit)
	}

	switch c.Output.Format {
	case "markdown", "json", "csv":
	default:
		return fmt.Errorf("output.format must be markdown, json or csv, got %q", c.Output.Format)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if c.Watch.Debounce.Duration() <= 0 {
		return fmt.Errorf("watch.debounce must be > 0")
	}

	return nil
}

// applyDefaults sets default values for missing configuration fields. The
// koanf instance distinguishes unset fields from explicit zero values: an
// explicit max_gap_credit of 0 is a legal policy and must survive.
func applyDefaults(cfg *Config, k *koanf.Koanf) {
	if cfg.Accounting.MaxGapHours == 0 {
		cfg.Accounting.MaxGapHours = 4.0
	}
	if cfg.Accounting.MaxGapCredit == 0 && !k.Exists("accounting.max_gap_credit") {
		cfg.Accounting.MaxGapCredit = 1.0
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = "markdown"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = Duration(2 * time.Second)
	}
}
