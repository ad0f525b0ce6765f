package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fyrsmithlabs/sredlog/internal/sred"
)

// timelineMessageMaxLen caps commit messages in timeline tables.
const timelineMessageMaxLen = 50

// writeMarkdown renders the auditor-facing TIME_LOG document.
func writeMarkdown(w io.Writer, rep *sred.Report) error {
	var b strings.Builder

	b.WriteString("# SR&ED Time Log\n\n")
	fmt.Fprintf(&b, "**Project:** %s\n", rep.ProjectName)
	fmt.Fprintf(&b, "**Generated:** %s\n", rep.GeneratedAt.Format("2006-01-02 15:04"))
	b.WriteString("**Method:** Human wall-clock deltas based on developer actions (git commits)\n\n")

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Total Eligible Hours | **%.2f** |\n", rep.TotalHours)
	fmt.Fprintf(&b, "| Complete Sessions | %d |\n", rep.Complete)
	fmt.Fprintf(&b, "| In-Progress Sessions | %d |\n\n", rep.Incomplete)

	b.WriteString("### Methodology\n\n")
	b.WriteString("Time is calculated from gaps between consecutive SR&ED-tagged git commits.\n")
	b.WriteString("Gap protection rule: Any gap exceeding 4 hours is capped at 1.0 hour to\n")
	b.WriteString("prevent overclaiming during breaks, sleep, or weekends.\n\n")
	b.WriteString("This measures the developer's investigation time (reading, thinking,\n")
	b.WriteString("planning, reviewing outputs, debugging, testing and decision-making),\n")
	b.WriteString("not machine processing time.\n\n")
	b.WriteString("---\n\n")

	b.WriteString("## Session Details\n\n")
	for _, s := range rep.Sessions {
		status := "Complete"
		if !s.Complete {
			status = "In Progress"
		}

		fmt.Fprintf(&b, "### %s: %s\n\n", s.ID, s.ExperimentID)
		fmt.Fprintf(&b, "**Status:** %s\n", status)
		fmt.Fprintf(&b, "**Duration:** %.2f hours\n", s.DurationHours)
		fmt.Fprintf(&b, "**Outcome:** %s\n\n", s.Outcome)
		fmt.Fprintf(&b, "**Objective:** %s\n\n", s.Objective)

		b.WriteString("**Timeline:**\n\n")
		b.WriteString("| Time | Action | Commit |\n")
		b.WriteString("|------|--------|--------|\n")
		for _, entry := range s.Timeline {
			fmt.Fprintf(&b, "| %s | `%s` %s | `%s` |\n",
				entry.Timestamp.Format("2006-01-02 15:04"),
				entry.Tag,
				truncate(entry.Message, timelineMessageMaxLen),
				entry.Hash,
			)
		}

		tags := make([]string, 0, len(s.TagsUsed))
		for _, tag := range s.TagsUsed {
			tags = append(tags, "`"+tag+"`")
		}
		fmt.Fprintf(&b, "\n**Tags Used:** %s\n\n---\n\n", strings.Join(tags, ", "))
	}

	b.WriteString("## Audit Notes\n\n")
	b.WriteString("This log demonstrates systematic investigation through the scientific method:\n\n")
	b.WriteString("1. **Hypotheses** were formed before coding (exp: commits)\n")
	b.WriteString("2. **Observations** were recorded during testing (obs:, test: commits)\n")
	b.WriteString("3. **Conclusions** were documented (succeed:, fail:, pivot: commits)\n")
	b.WriteString("4. **Time tracking** is contemporaneous (git timestamps)\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// truncate caps s at max characters. It counts runes so a multi-byte
// character is never split mid-sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
