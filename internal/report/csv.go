package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fyrsmithlabs/sredlog/internal/sred"
)

// writeCSV renders one row per session for spreadsheet hand-off.
func writeCSV(w io.Writer, rep *sred.Report) error {
	cw := csv.NewWriter(w)

	header := []string{
		"session_id", "experiment_id", "objective", "outcome",
		"complete", "duration_hours", "started_at", "ended_at", "tags_used",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, s := range rep.Sessions {
		endedAt := ""
		if s.EndedAt != nil {
			endedAt = s.EndedAt.Format(time.RFC3339)
		}
		row := []string{
			s.ID,
			s.ExperimentID,
			s.Objective,
			s.Outcome,
			strconv.FormatBool(s.Complete),
			strconv.FormatFloat(s.DurationHours, 'f', 2, 64),
			s.StartedAt.Format(time.RFC3339),
			endedAt,
			strings.Join(s.TagsUsed, " "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
