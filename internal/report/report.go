// Package report renders assembled session reports for humans and tooling.
package report

import (
	"fmt"
	"io"

	"github.com/fyrsmithlabs/sredlog/internal/sred"
)

// Supported output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatCSV      = "csv"
)

// Write renders the report to w in the requested format.
func Write(w io.Writer, rep *sred.Report, format string) error {
	switch format {
	case FormatMarkdown:
		return writeMarkdown(w, rep)
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatCSV:
		return writeCSV(w, rep)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
