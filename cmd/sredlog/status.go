package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/sredlog/internal/gitlog"
	"github.com/fyrsmithlabs/sredlog/internal/logging"
	"github.com/fyrsmithlabs/sredlog/internal/report"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a one-screen accounting summary",
	Long: `Show current eligible hours, session counts and the most recent session
for the repository.

Examples:
  sredlog status
  sredlog status --repo ~/src/widget --since 2025-01-01`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&sinceDate, "since", "", "include commits since date (YYYY-MM-DD)")
	statusCmd.Flags().StringVar(&untilDate, "until", "", "include commits until date (YYYY-MM-DD)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	rep, _, err := buildReport(cmd, cfg, logger)
	if err != nil {
		return err
	}

	branch := gitlog.DetectBranch(repoPath)
	fmt.Fprintln(cmd.OutOrStdout(), report.RenderStatus(rep, branch))
	return nil
}
