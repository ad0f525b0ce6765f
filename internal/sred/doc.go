// Package sred reconstructs SR&ED work sessions from tagged git commits.
//
// The package is the accounting core of sredlog: it classifies commits by
// their message tag, segments the ordered commit stream into sessions with
// a single-pass state machine, and computes gap-protected elapsed hours per
// session. It performs no I/O; commit retrieval and report rendering live
// in internal/gitlog and internal/report.
package sred
