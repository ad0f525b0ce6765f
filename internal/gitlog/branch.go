package gitlog

import (
	git "github.com/go-git/go-git/v5"
)

// DetectBranch returns the current branch of a local clone, or "detached"
// when HEAD does not point at a branch. A missing or unreadable repository
// yields an empty string rather than an error; branch is status output
// garnish, never accounting input.
func DetectBranch(repoPath string) string {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		return ""
	}

	if head.Name().IsBranch() {
		return head.Name().Short()
	}
	return "detached"
}
