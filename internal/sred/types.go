package sred

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TagRole classifies a commit's role in the session state machine.
type TagRole string

const (
	// RoleStart opens a new work session (exp:).
	RoleStart TagRole = "start"
	// RoleIntermediate records an observation inside an open session (obs:, test:).
	RoleIntermediate TagRole = "intermediate"
	// RoleEnd closes the open session (succeed:, pivot:, stop:, fail:).
	RoleEnd TagRole = "end"
	// RoleNone marks a commit outside the tag vocabulary. Such commits are
	// invisible to session accounting.
	RoleNone TagRole = "none"
)

// ParseTagRole parses a role name from project configuration. RoleNone is
// not accepted; a prefix that should be ignored simply stays out of the
// vocabulary.
func ParseTagRole(s string) (TagRole, error) {
	switch role := TagRole(strings.ToLower(s)); role {
	case RoleStart, RoleIntermediate, RoleEnd:
		return role, nil
	default:
		return RoleNone, fmt.Errorf("unknown tag role %q (expected start, intermediate or end)", s)
	}
}

// SessionStatus indicates whether a session was closed by an end commit.
type SessionStatus string

const (
	// StatusComplete means the session has an end commit.
	StatusComplete SessionStatus = "complete"
	// StatusIncomplete means the session was flushed without an end commit,
	// either at end of stream or when superseded by a new start.
	StatusIncomplete SessionStatus = "incomplete"
)

// Record is a raw commit handed over by a retrieval collaborator, before
// classification.
type Record struct {
	// Hash is the commit identifier (short form).
	Hash string
	// Timestamp is the commit's author time. Must be timezone-aware and
	// non-zero; a zero timestamp fails the run.
	Timestamp time.Time
	// Message is the commit subject line.
	Message string
}

// Commit is a classified commit participating in session accounting.
type Commit struct {
	Hash      string
	Timestamp time.Time
	Message   string

	// Tag is the matched vocabulary prefix (e.g. "exp:", "fail:").
	Tag string
	// Role is the tag's role in the state machine. Never RoleNone here;
	// unrecognized commits are filtered out before sessions are built.
	Role TagRole
}

// Session is a contiguous unit of accounted work. Once emitted by the
// builder a session is never mutated again.
type Session struct {
	// ID is assigned in discovery order (SESSION-001, SESSION-002, ...).
	ID string

	// Start is the session's opening commit. For an orphan session
	// synthesized from a lone end commit, Start and End are the same commit.
	Start Commit

	// End is the closing commit, nil while the session is incomplete.
	End *Commit

	// Intermediates are the observation commits accumulated while open,
	// in discovery order.
	Intermediates []Commit

	Status SessionStatus
}

// IsComplete reports whether the session was closed by an end commit.
func (s *Session) IsComplete() bool {
	return s.Status == StatusComplete
}

// Commits returns all of the session's commits sorted by ascending
// timestamp. The start and end tags are structural, not necessarily
// extremal in time, so callers computing durations must use this order
// rather than discovery order.
func (s *Session) Commits() []Commit {
	all := make([]Commit, 0, len(s.Intermediates)+2)
	all = append(all, s.Start)
	all = append(all, s.Intermediates...)
	if s.End != nil && s.End.Hash != s.Start.Hash {
		all = append(all, *s.End)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})
	return all
}
