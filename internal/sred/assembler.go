package sred

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// UnknownExperiment is the marker used when a session's start commit carries
// no recognizable experiment reference.
const UnknownExperiment = "UNKNOWN"

// objectiveMaxLen caps the human-readable objective string, in characters.
const objectiveMaxLen = 100

// DefaultExperimentPrefix is the reference scheme matched when a project
// does not configure its own.
const DefaultExperimentPrefix = "EXP"

var experimentIDPattern = experimentPattern(DefaultExperimentPrefix)

// experimentPattern compiles the reference matcher for a project's prefix,
// e.g. "EXP" -> EXP-\d+. An empty prefix falls back to the default.
func experimentPattern(prefix string) *regexp.Regexp {
	if prefix == "" {
		prefix = DefaultExperimentPrefix
	}
	return regexp.MustCompile(regexp.QuoteMeta(prefix) + `-\d+`)
}

// ExperimentID extracts an experiment reference (e.g. EXP-001) from a commit
// message using the default prefix. The second return value reports whether
// one was found.
func ExperimentID(message string) (string, bool) {
	return experimentID(experimentIDPattern, message)
}

func experimentID(pattern *regexp.Regexp, message string) (string, bool) {
	id := pattern.FindString(message)
	return id, id != ""
}

// SessionRecord is a session assembled for a formatting collaborator:
// the frozen session plus derived presentation fields. Derived fields are
// presentation metadata only and never feed back into duration accounting.
type SessionRecord struct {
	ID            string          `json:"id"`
	ExperimentID  string          `json:"experiment_id"`
	Objective     string          `json:"objective"`
	Outcome       string          `json:"outcome"`
	Complete      bool            `json:"complete"`
	DurationHours float64         `json:"duration_hours"`
	StartedAt     time.Time       `json:"started_at"`
	EndedAt       *time.Time      `json:"ended_at,omitempty"`
	TagsUsed      []string        `json:"tags_used"`
	Timeline      []TimelineEntry `json:"timeline"`
}

// TimelineEntry is one commit in a session's chronological timeline.
type TimelineEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Tag       string    `json:"tag"`
	Message   string    `json:"message"`
	Hash      string    `json:"hash"`
}

// Report is the full output of a run: assembled sessions plus aggregate
// totals. Incomplete sessions are reported but excluded from TotalHours.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	ProjectName string    `json:"project_name"`

	TotalHours float64 `json:"total_hours"`
	Complete   int     `json:"complete_sessions"`
	Incomplete int     `json:"incomplete_sessions"`

	Sessions []SessionRecord `json:"sessions"`
}

// assembler derives presentation fields under one accounting policy, tag
// vocabulary and experiment reference scheme.
type assembler struct {
	maxGapHours  float64
	maxGapCredit float64
	vocab        []vocabEntry
	expPattern   *regexp.Regexp
}

func newAssembler(cfg *Config) *assembler {
	return &assembler{
		maxGapHours:  cfg.MaxGapHours,
		maxGapCredit: cfg.MaxGapCredit,
		vocab:        extendVocabulary(cfg.ExtraTags),
		expPattern:   experimentPattern(cfg.ExperimentPrefix),
	}
}

// assemble derives the presentation fields for one session.
func (a *assembler) assemble(s *Session) SessionRecord {
	rec := SessionRecord{
		ID:            s.ID,
		Objective:     a.objective(s.Start.Message),
		Outcome:       outcome(s),
		Complete:      s.IsComplete(),
		DurationHours: durationHours(s, a.maxGapHours, a.maxGapCredit),
		StartedAt:     s.Start.Timestamp,
		TagsUsed:      tagsUsed(s),
	}

	if id, ok := experimentID(a.expPattern, s.Start.Message); ok {
		rec.ExperimentID = id
	} else {
		rec.ExperimentID = UnknownExperiment
	}

	if s.End != nil {
		t := s.End.Timestamp
		rec.EndedAt = &t
	}

	for _, c := range s.Commits() {
		rec.Timeline = append(rec.Timeline, TimelineEntry{
			Timestamp: c.Timestamp,
			Tag:       c.Tag,
			Message:   c.Message,
			Hash:      c.Hash,
		})
	}

	return rec
}

// objective strips the tag prefix from a start commit message and truncates
// the rest to a displayable length. Truncation counts characters, not bytes,
// so a multi-byte rune is never split.
func (a *assembler) objective(message string) string {
	msg := message
	lower := strings.ToLower(message)
	for _, entry := range a.vocab {
		if strings.HasPrefix(lower, entry.prefix) {
			msg = strings.TrimSpace(message[len(entry.prefix):])
			break
		}
	}
	if runes := []rune(msg); len(runes) > objectiveMaxLen {
		return string(runes[:objectiveMaxLen]) + "..."
	}
	return msg
}

// outcome derives the session's outcome label from its end tag, e.g.
// "succeed:" -> "SUCCEED". Incomplete sessions are "IN_PROGRESS".
func outcome(s *Session) string {
	if s.End == nil {
		return "IN_PROGRESS"
	}
	return strings.ToUpper(strings.TrimSuffix(s.End.Tag, ":"))
}

// tagsUsed returns the sorted distinct tags appearing in the session.
func tagsUsed(s *Session) []string {
	seen := map[string]struct{}{s.Start.Tag: {}}
	for _, c := range s.Intermediates {
		seen[c.Tag] = struct{}{}
	}
	if s.End != nil {
		seen[s.End.Tag] = struct{}{}
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
