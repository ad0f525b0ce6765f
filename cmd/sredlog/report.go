package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/sredlog/internal/config"
	"github.com/fyrsmithlabs/sredlog/internal/gitlog"
	"github.com/fyrsmithlabs/sredlog/internal/logging"
	"github.com/fyrsmithlabs/sredlog/internal/report"
	"github.com/fyrsmithlabs/sredlog/internal/sred"
)

var (
	sinceDate  string
	untilDate  string
	outputPath string
	outputFmt  string
	githubRepo string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a time log from tagged commits",
	Long: `Generate a time log from SR&ED-tagged commits.

Examples:
  # Markdown time log for the current repo, all time
  sredlog report

  # JSON export since January, written to a file
  sredlog report --since 2025-01-01 --format json --output time_log.json

  # Analyze a GitHub-hosted repository without a local clone
  sredlog report --github fyrsmithlabs/contextd`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&sinceDate, "since", "", "include commits since date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&untilDate, "until", "", "include commits until date (YYYY-MM-DD)")
	reportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: stdout)")
	reportCmd.Flags().StringVarP(&outputFmt, "format", "f", "", "output format: markdown, json or csv")
	reportCmd.Flags().StringVar(&githubRepo, "github", "", "read commits from a GitHub repository (owner/repo)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	rep, _, err := buildReport(cmd, cfg, logger)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if outputFmt != "" {
		format = outputFmt
	}

	path := cfg.Output.Path
	if outputPath != "" {
		path = outputPath
	}
	if path == "" {
		return report.Write(cmd.OutOrStdout(), rep, format)
	}

	if err := writeReportFile(path, rep, format); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Written to %s\n", path)
	return nil
}

// buildReport runs collection and session accounting for the active flags.
// The service is returned alongside the report so callers can run follow-up
// operations under the same project policy.
func buildReport(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) (*sred.Report, sred.Service, error) {
	opts, err := rangeOptions()
	if err != nil {
		return nil, nil, err
	}

	var records []sred.Record
	if githubRepo != "" {
		owner, name, err := splitGitHubRepo(githubRepo)
		if err != nil {
			return nil, nil, err
		}
		records, err = gitlog.CollectGitHub(cmd.Context(), owner, name, cfg.GitHub.Token.Value(), opts, logger)
		if err != nil {
			return nil, nil, err
		}
	} else {
		records, err = gitlog.Collect(repoPath, opts, logger)
		if err != nil {
			return nil, nil, err
		}
	}

	proj, err := config.LoadProject(repoPath)
	if err != nil {
		return nil, nil, err
	}

	extraTags := make(map[string]sred.TagRole, len(proj.Tags))
	for prefix, roleName := range proj.Tags {
		role, err := sred.ParseTagRole(roleName)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid tag %q in .sred.toml: %w", prefix, err)
		}
		extraTags[prefix] = role
	}

	svc, err := sred.NewService(&sred.Config{
		MaxGapHours:      cfg.Accounting.MaxGapHours,
		MaxGapCredit:     cfg.Accounting.MaxGapCredit,
		ProjectName:      proj.ProjectName,
		ExperimentPrefix: proj.ExperimentPrefix,
		ExtraTags:        extraTags,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	rep, err := svc.BuildReport(records, time.Now())
	if err != nil {
		return nil, nil, err
	}
	return rep, svc, nil
}

// writeReportFile writes the report to path with an explicit Close so a
// short write surfaces as an error rather than a silently truncated log.
func writeReportFile(path string, rep *sred.Report, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := report.Write(f, rep, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finalize output file %s: %w", path, err)
	}
	return nil
}

// rangeOptions parses the --since/--until flags into collection options.
func rangeOptions() (gitlog.Options, error) {
	var opts gitlog.Options

	if sinceDate != "" {
		t, err := parseDate(sinceDate)
		if err != nil {
			return opts, fmt.Errorf("invalid --since date: %w", err)
		}
		opts.Since = &t
	}
	if untilDate != "" {
		t, err := parseDate(untilDate)
		if err != nil {
			return opts, fmt.Errorf("invalid --until date: %w", err)
		}
		// Until is inclusive of the named day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		opts.Until = &end
	}

	return opts, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func splitGitHubRepo(s string) (owner, name string, err error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid --github value %q (expected owner/repo)", s)
	}
	return parts[0], parts[1], nil
}
