package sred

import (
	"math"
)

// durationHours computes a session's gap-protected elapsed hours.
//
// Commits are taken in chronological order. Each consecutive gap contributes
// its raw length in hours, except that any gap exceeding maxGapHours is
// credited maxGapCredit instead. This bounds the contribution of a single
// idle interval (sleep, weekend, context switch) no matter how long it was.
//
// Incomplete sessions have no defined duration and yield 0.0. Orphan
// single-commit sessions have zero gaps and yield exactly 0.0.
func durationHours(s *Session, maxGapHours, maxGapCredit float64) float64 {
	if !s.IsComplete() {
		return 0.0
	}

	commits := s.Commits()
	total := 0.0
	for i := 1; i < len(commits); i++ {
		gap := commits[i].Timestamp.Sub(commits[i-1].Timestamp).Hours()
		if gap > maxGapHours {
			total += maxGapCredit
		} else {
			total += gap
		}
	}

	return round2(total)
}

// round2 rounds to two decimal places, the granularity of the time log.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
