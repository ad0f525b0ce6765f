package sred

// AuditFinding flags one documentation gap in an assembled report.
type AuditFinding struct {
	// SessionID is the session the gap belongs to.
	SessionID string
	// Hash is the offending commit, empty for session-level gaps.
	Hash string
	// Problem describes the gap.
	Problem string
}

// AuditReport checks every session for evidence gaps: tagged commits that
// reference no experiment, and sessions never closed by an end commit.
// Findings follow session order, so output is deterministic for a given
// report.
func (s *service) AuditReport(rep *Report) []AuditFinding {
	var findings []AuditFinding
	for _, sess := range rep.Sessions {
		if !sess.Complete {
			findings = append(findings, AuditFinding{
				SessionID: sess.ID,
				Problem:   "session has no closing commit",
			})
		}
		for _, entry := range sess.Timeline {
			if _, ok := experimentID(s.asm.expPattern, entry.Message); !ok {
				findings = append(findings, AuditFinding{
					SessionID: sess.ID,
					Hash:      entry.Hash,
					Problem:   "tagged commit carries no experiment reference",
				})
			}
		}
	}
	return findings
}
