package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/sredlog/internal/sred"
)

var auditOKStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("42"))

// RenderAudit produces the validate command's styled gap listing.
func RenderAudit(rep *sred.Report, findings []sred.AuditFinding) string {
	var b strings.Builder

	b.WriteString(statusTitleStyle.Render("SR&ED Documentation Check"))
	b.WriteString("\n\n")
	b.WriteString(statusLabelStyle.Render(fmt.Sprintf("%-18s", "Sessions:")))
	fmt.Fprintf(&b, "%d\n", len(rep.Sessions))

	if len(findings) == 0 {
		b.WriteByte('\n')
		b.WriteString(auditOKStyle.Render("No documentation gaps found."))
		return b.String()
	}

	b.WriteByte('\n')
	for _, f := range findings {
		where := f.SessionID
		if f.Hash != "" {
			where = fmt.Sprintf("%s %s", f.SessionID, f.Hash)
		}
		b.WriteString(statusWarnStyle.Render(fmt.Sprintf("%-22s", where)))
		b.WriteString(f.Problem)
		b.WriteByte('\n')
	}
	return b.String()
}
