package sred

import (
	"fmt"

	"go.uber.org/zap"
)

// buildSessions segments classified commits into sessions with a single
// pass. Input must already be sorted ascending by timestamp.
//
// The machine has two states: idle (no open session) and open (one session
// accumulating). A start commit while open supersedes the current session:
// it is flushed incomplete and a fresh session opens. An end commit while
// idle synthesizes an orphan minimal session whose start and end are the
// same commit. An intermediate commit while idle has no session to attach
// to and is dropped.
func buildSessions(commits []Commit, logger *zap.Logger) []*Session {
	var sessions []*Session
	var open *Session
	counter := 1

	nextID := func() string {
		id := fmt.Sprintf("SESSION-%03d", counter)
		counter++
		return id
	}

	for _, c := range commits {
		switch c.Role {
		case RoleStart:
			if open != nil {
				// Superseded: the developer began new work without closing
				// the prior investigation.
				open.Status = StatusIncomplete
				sessions = append(sessions, open)
				logger.Debug("session superseded",
					zap.String("session_id", open.ID),
					zap.String("new_start", c.Hash),
				)
			}
			open = &Session{ID: nextID(), Start: c}

		case RoleEnd:
			if open != nil {
				end := c
				open.End = &end
				open.Status = StatusComplete
				sessions = append(sessions, open)
				open = nil
			} else {
				// Orphan end commit: synthesize a minimal single-commit
				// session so the outcome is still accounted for.
				end := c
				sessions = append(sessions, &Session{
					ID:     nextID(),
					Start:  c,
					End:    &end,
					Status: StatusComplete,
				})
			}

		case RoleIntermediate:
			if open != nil {
				open.Intermediates = append(open.Intermediates, c)
			} else {
				// Preserved source behavior: an observation with no open
				// session is discarded. Logged so the loss is auditable.
				logger.Warn("dropping intermediate commit with no open session",
					zap.String("hash", c.Hash),
					zap.String("tag", c.Tag),
				)
			}
		}
	}

	if open != nil {
		open.Status = StatusIncomplete
		sessions = append(sessions, open)
	}

	return sessions
}
