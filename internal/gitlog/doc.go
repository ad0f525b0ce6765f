// Package gitlog retrieves commit records for session accounting.
//
// Two sources are supported: a local clone read with go-git, and a
// GitHub-hosted repository read over the API. Both produce the same
// ordered record shape consumed by internal/sred.
package gitlog
