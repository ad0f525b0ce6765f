package gitlog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/sredlog/internal/sred"
)

// ErrNotGitRepo indicates the directory is not a Git repository.
var ErrNotGitRepo = errors.New("not a git repository")

// shortHashLen is the abbreviated hash length used in reports.
const shortHashLen = 8

// Options narrows the commit range before the accounting core runs.
type Options struct {
	// Since includes only commits authored at or after this instant.
	Since *time.Time
	// Until includes only commits authored at or before this instant.
	Until *time.Time
}

// Collect reads the commit history of a local clone and returns records
// sorted ascending by timestamp, across all branches. Filtering to the tag
// vocabulary happens downstream in the accounting core.
func Collect(repoPath string, opts Options, logger *zap.Logger) ([]sred.Record, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotGitRepo, repoPath)
		}
		return nil, fmt.Errorf("failed to open repository %s: %w", repoPath, err)
	}
	return collect(repo, opts, logger)
}

func collect(repo *git.Repository, opts Options, logger *zap.Logger) ([]sred.Record, error) {
	iter, err := repo.Log(&git.LogOptions{
		All:   true,
		Since: opts.Since,
		Until: opts.Until,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read commit log: %w", err)
	}
	defer iter.Close()

	var records []sred.Record
	err = iter.ForEach(func(c *object.Commit) error {
		when := c.Author.When
		if when.IsZero() {
			// A zero timestamp would corrupt every gap it touches.
			return fmt.Errorf("%w: commit %q", sred.ErrBadTimestamp, shortHash(c.Hash.String()))
		}
		records = append(records, sred.Record{
			Hash:      shortHash(c.Hash.String()),
			Timestamp: when,
			Message:   subjectLine(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortRecords(records)

	logger.Debug("collected commit records", zap.Int("count", len(records)))
	return records, nil
}

// sortRecords orders records ascending by timestamp, breaking ties by hash
// so identical histories always yield identical input to the core.
func sortRecords(records []sred.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Hash < records[j].Hash
		}
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}

func shortHash(full string) string {
	if len(full) > shortHashLen {
		return full[:shortHashLen]
	}
	return full
}

// subjectLine returns the first line of a commit message, which is where
// the tag vocabulary lives.
func subjectLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = message[:idx]
	}
	return strings.TrimSpace(message)
}
