package sred

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBadTimestamp indicates a commit record with a zero timestamp. A wrong
// timestamp corrupts every gap it touches, so the run fails rather than
// defaulting to now or epoch.
var ErrBadTimestamp = errors.New("commit has invalid timestamp")

// Service turns an ordered stream of raw commit records into an assembled
// session report.
type Service interface {
	// BuildReport classifies, segments and assembles the given records.
	// Records must be sorted ascending by timestamp.
	BuildReport(records []Record, generatedAt time.Time) (*Report, error)

	// AuditReport checks an assembled report for documentation gaps that
	// would weaken it under review.
	AuditReport(rep *Report) []AuditFinding
}

// Config configures session accounting.
type Config struct {
	// MaxGapHours is the gap-protection threshold: inter-commit gaps longer
	// than this are capped.
	MaxGapHours float64

	// MaxGapCredit is the flat credit applied to a capped gap.
	MaxGapCredit float64

	// ProjectName appears on generated reports.
	ProjectName string

	// ExperimentPrefix is the project's experiment reference scheme
	// (e.g. "EXP" matches EXP-001). Empty means DefaultExperimentPrefix.
	ExperimentPrefix string

	// ExtraTags extends the built-in tag vocabulary with per-project
	// prefixes. Built-in prefixes cannot be overridden.
	ExtraTags map[string]TagRole
}

// DefaultConfig returns the standard accounting policy: gaps over 4 hours
// credit 1 hour flat.
func DefaultConfig() *Config {
	return &Config{
		MaxGapHours:      4.0,
		MaxGapCredit:     1.0,
		ProjectName:      "Unknown Project",
		ExperimentPrefix: DefaultExperimentPrefix,
	}
}

// Validate checks the accounting policy for errors.
func (c *Config) Validate() error {
	if c.MaxGapHours <= 0 {
		return fmt.Errorf("max gap hours must be > 0, got %v", c.MaxGapHours)
	}
	if c.MaxGapCredit < 0 {
		return fmt.Errorf("max gap credit must be >= 0, got %v", c.MaxGapCredit)
	}
	if c.MaxGapCredit > c.MaxGapHours {
		return fmt.Errorf("max gap credit %v exceeds max gap hours %v", c.MaxGapCredit, c.MaxGapHours)
	}
	for prefix, role := range c.ExtraTags {
		if strings.TrimSpace(prefix) == "" {
			return fmt.Errorf("extra tag prefix must not be empty")
		}
		switch role {
		case RoleStart, RoleIntermediate, RoleEnd:
		default:
			return fmt.Errorf("extra tag %q has invalid role %q", prefix, role)
		}
	}
	return nil
}

// service implements the Service interface.
type service struct {
	config *Config
	logger *zap.Logger
	vocab  []vocabEntry
	asm    *assembler
}

// NewService creates a session accounting service.
func NewService(cfg *Config, logger *zap.Logger) (Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		config: cfg,
		logger: logger,
		vocab:  extendVocabulary(cfg.ExtraTags),
		asm:    newAssembler(cfg),
	}, nil
}

// BuildReport runs the full pipeline: validate, classify, segment, assemble.
func (s *service) BuildReport(records []Record, generatedAt time.Time) (*Report, error) {
	valid, err := s.validate(records)
	if err != nil {
		return nil, err
	}

	commits := classify(valid, s.vocab)
	sessions := buildSessions(commits, s.logger)

	report := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: generatedAt,
		ProjectName: s.config.ProjectName,
		Sessions:    make([]SessionRecord, 0, len(sessions)),
	}

	for _, sess := range sessions {
		rec := s.asm.assemble(sess)
		report.Sessions = append(report.Sessions, rec)
		if rec.Complete {
			report.Complete++
			report.TotalHours = round2(report.TotalHours + rec.DurationHours)
		} else {
			report.Incomplete++
		}
	}

	s.logger.Info("built session report",
		zap.Int("records", len(records)),
		zap.Int("tagged_commits", len(commits)),
		zap.Int("sessions", len(sessions)),
		zap.Float64("total_hours", report.TotalHours),
	)

	return report, nil
}

// validate drops malformed records and fails the run on a zero timestamp.
// A missing hash or message is a data-quality warning, not fatal.
func (s *service) validate(records []Record) ([]Record, error) {
	valid := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Timestamp.IsZero() {
			return nil, fmt.Errorf("%w: commit %q", ErrBadTimestamp, r.Hash)
		}
		if r.Hash == "" || r.Message == "" {
			s.logger.Warn("skipping malformed commit record",
				zap.String("hash", r.Hash),
				zap.Time("timestamp", r.Timestamp),
			)
			continue
		}
		valid = append(valid, r)
	}
	return valid, nil
}
