package report

import (
	"encoding/json"
	"io"

	"github.com/fyrsmithlabs/sredlog/internal/sred"
)

// writeJSON renders the report as indented JSON for machine consumers.
func writeJSON(w io.Writer, rep *sred.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
