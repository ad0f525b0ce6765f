package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/sredlog/internal/logging"
	"github.com/fyrsmithlabs/sredlog/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the commit history for documentation gaps",
	Long: `Check the commit history for gaps that would weaken the time log under
review: tagged commits without an experiment reference and sessions that
were never closed.

Exits non-zero when gaps are found.

Examples:
  sredlog validate
  sredlog validate --since 2025-01-01`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&sinceDate, "since", "", "include commits since date (YYYY-MM-DD)")
	validateCmd.Flags().StringVar(&untilDate, "until", "", "include commits until date (YYYY-MM-DD)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	rep, svc, err := buildReport(cmd, cfg, logger)
	if err != nil {
		return err
	}

	findings := svc.AuditReport(rep)
	fmt.Fprintln(cmd.OutOrStdout(), report.RenderAudit(rep, findings))

	if len(findings) > 0 {
		return fmt.Errorf("found %d documentation gap(s)", len(findings))
	}
	return nil
}
