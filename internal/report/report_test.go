package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/sredlog/internal/sred"
)

func sampleReport() *sred.Report {
	started := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	ended := started.Add(2 * time.Hour)

	return &sred.Report{
		RunID:       "run-123",
		GeneratedAt: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
		ProjectName: "Widget Research",
		TotalHours:  2.00,
		Complete:    1,
		Incomplete:  1,
		Sessions: []sred.SessionRecord{
			{
				ID:            "SESSION-001",
				ExperimentID:  "EXP-001",
				Objective:     "reduce p99 latency",
				Outcome:       "SUCCEED",
				Complete:      true,
				DurationHours: 2.00,
				StartedAt:     started,
				EndedAt:       &ended,
				TagsUsed:      []string{"exp:", "obs:", "succeed:"},
				Timeline: []sred.TimelineEntry{
					{Timestamp: started, Tag: "exp:", Message: "exp: EXP-001 reduce p99 latency", Hash: "aaaa1111"},
					{Timestamp: started.Add(time.Hour), Tag: "obs:", Message: "obs: flamegraph points at GC", Hash: "bbbb2222"},
					{Timestamp: ended, Tag: "succeed:", Message: "succeed: pool tuning worked", Hash: "cccc3333"},
				},
			},
			{
				ID:            "SESSION-002",
				ExperimentID:  sred.UnknownExperiment,
				Objective:     "still investigating",
				Outcome:       "IN_PROGRESS",
				Complete:      false,
				DurationHours: 0.0,
				StartedAt:     ended,
				TagsUsed:      []string{"exp:"},
				Timeline: []sred.TimelineEntry{
					{Timestamp: ended, Tag: "exp:", Message: "exp: still investigating", Hash: "dddd4444"},
				},
			},
		},
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleReport(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestWriteMarkdown_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), FormatMarkdown))
	out := buf.String()

	assert.Contains(t, out, "# SR&ED Time Log")
	assert.Contains(t, out, "**Project:** Widget Research")
	assert.Contains(t, out, "| Total Eligible Hours | **2.00** |")
	assert.Contains(t, out, "| Complete Sessions | 1 |")
	assert.Contains(t, out, "| In-Progress Sessions | 1 |")
	assert.Contains(t, out, "### SESSION-001: EXP-001")
	assert.Contains(t, out, "**Outcome:** SUCCEED")
	assert.Contains(t, out, "| 2025-06-02 10:00 | `obs:` obs: flamegraph points at GC | `bbbb2222` |")
	assert.Contains(t, out, "**Tags Used:** `exp:`, `obs:`, `succeed:`")
	assert.Contains(t, out, "### SESSION-002: UNKNOWN")
	assert.Contains(t, out, "**Status:** In Progress")
	assert.Contains(t, out, "## Audit Notes")
}

func TestWriteMarkdown_TruncatesLongTimelineMessages(t *testing.T) {
	rep := sampleReport()
	rep.Sessions[0].Timeline[0].Message = "exp: " + strings.Repeat("y", 120)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rep, FormatMarkdown))

	assert.NotContains(t, buf.String(), strings.Repeat("y", 120))
	assert.Contains(t, buf.String(), "...")
}

func TestTruncate_RuneBoundary(t *testing.T) {
	got := truncate(strings.Repeat("é", 60), 50)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 50)+"...", got)

	short := "exp: café"
	assert.Equal(t, short, truncate(short, 50))
}

func TestRenderAudit_ListsFindings(t *testing.T) {
	findings := []sred.AuditFinding{
		{SessionID: "SESSION-001", Problem: "session has no closing commit"},
		{SessionID: "SESSION-001", Hash: "abcd1234", Problem: "tagged commit carries no experiment reference"},
	}

	out := RenderAudit(sampleReport(), findings)
	assert.Contains(t, out, "SR&ED Documentation Check")
	assert.Contains(t, out, "SESSION-001")
	assert.Contains(t, out, "abcd1234")
	assert.Contains(t, out, "no closing commit")
}

func TestRenderAudit_CleanReport(t *testing.T) {
	out := RenderAudit(sampleReport(), nil)

	assert.Contains(t, out, "No documentation gaps found")
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), FormatJSON))

	var decoded sred.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "run-123", decoded.RunID)
	assert.Equal(t, 2.00, decoded.TotalHours)
	require.Len(t, decoded.Sessions, 2)
	assert.Equal(t, "EXP-001", decoded.Sessions[0].ExperimentID)
	assert.Nil(t, decoded.Sessions[1].EndedAt)
}

func TestWriteCSV_OneRowPerSession(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "session_id", rows[0][0])
	assert.Equal(t, "SESSION-001", rows[1][0])
	assert.Equal(t, "2.00", rows[1][5])
	assert.Equal(t, "SESSION-002", rows[2][0])
	assert.Equal(t, "", rows[2][7], "incomplete session has no ended_at")
}

func TestRenderStatus_Summary(t *testing.T) {
	out := RenderStatus(sampleReport(), "main")

	assert.Contains(t, out, "SR&ED Status")
	assert.Contains(t, out, "Widget Research")
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "2.00")
	assert.Contains(t, out, "SESSION-002")
}

func TestRenderStatus_EmptyReport(t *testing.T) {
	rep := &sred.Report{ProjectName: "Empty"}
	out := RenderStatus(rep, "")

	assert.Contains(t, out, "Empty")
	assert.NotContains(t, out, "Last session")
}
