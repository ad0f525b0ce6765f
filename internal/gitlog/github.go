package gitlog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/fyrsmithlabs/sredlog/internal/sred"
)

// githubPageSize is the per-page commit count for the list API.
const githubPageSize = 100

// CollectGitHub lists the commits of a GitHub-hosted repository and returns
// records sorted ascending by timestamp. token may be empty for public
// repositories, subject to unauthenticated rate limits.
func CollectGitHub(ctx context.Context, owner, repo, token string, opts Options, logger *zap.Logger) ([]sred.Record, error) {
	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		))
	}
	client := github.NewClient(httpClient)

	listOpts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: githubPageSize},
	}
	if opts.Since != nil {
		listOpts.Since = *opts.Since
	}
	if opts.Until != nil {
		listOpts.Until = *opts.Until
	}

	var records []sred.Record
	for {
		commits, resp, err := client.Repositories.ListCommits(ctx, owner, repo, listOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits for %s/%s: %w", owner, repo, err)
		}

		for _, rc := range commits {
			date := rc.GetCommit().GetAuthor().GetDate()
			if date.Time.IsZero() {
				return nil, fmt.Errorf("%w: commit %q", sred.ErrBadTimestamp, shortHash(rc.GetSHA()))
			}
			records = append(records, sred.Record{
				Hash:      shortHash(rc.GetSHA()),
				Timestamp: date.Time,
				Message:   subjectLine(rc.GetCommit().GetMessage()),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}

	sortRecords(records)

	logger.Debug("collected commit records from github",
		zap.String("owner", owner),
		zap.String("repo", repo),
		zap.Int("count", len(records)),
	)
	return records, nil
}
