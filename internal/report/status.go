package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/sredlog/internal/sred"
)

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(0, 1)

	statusLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("242"))

	statusValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252"))

	statusHoursStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42"))

	statusWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// RenderStatus produces a one-screen styled summary for the status command.
func RenderStatus(rep *sred.Report, branch string) string {
	var b strings.Builder

	b.WriteString(statusTitleStyle.Render("SR&ED Status"))
	b.WriteString("\n\n")

	line := func(label, value string) {
		b.WriteString(statusLabelStyle.Render(fmt.Sprintf("%-18s", label)))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	line("Project:", statusValueStyle.Render(rep.ProjectName))
	if branch != "" {
		line("Branch:", statusValueStyle.Render(branch))
	}
	line("Eligible hours:", statusHoursStyle.Render(fmt.Sprintf("%.2f", rep.TotalHours)))
	line("Complete:", statusValueStyle.Render(fmt.Sprintf("%d", rep.Complete)))
	if rep.Incomplete > 0 {
		line("In progress:", statusWarnStyle.Render(fmt.Sprintf("%d", rep.Incomplete)))
	}

	if last, ok := lastSession(rep); ok {
		b.WriteByte('\n')
		line("Last session:", statusValueStyle.Render(
			fmt.Sprintf("%s (%s, %.2fh)", last.ID, last.Outcome, last.DurationHours)))
		line("Objective:", last.Objective)
	}

	return b.String()
}

func lastSession(rep *sred.Report) (sred.SessionRecord, bool) {
	if len(rep.Sessions) == 0 {
		return sred.SessionRecord{}, false
	}
	return rep.Sessions[len(rep.Sessions)-1], true
}
