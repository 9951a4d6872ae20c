// Package grading turns a graded answer (correctness plus response time)
// into one of the four scheduler ratings.
package grading

import (
	fsrs "github.com/open-spaced-repetition/go-fsrs"

	"github.com/brzaa/math-practice-kids/internal/speed"
)

// Grade maps one answer to a rating. Wrong answers are Again no matter how
// fast they came. While the session is still warming up every correct
// answer is Good, so early noisy timings don't skew the scheduler. After
// warmup the response time is ranked against the session percentiles
// computed before this answer's own sample:
//
//	<= p25  Easy
//	<= p50  Good
//	<= p75  Hard
//	slower  Again (correct but not yet fluent)
//
// The percentile cutoffs are policy, not invariants. Grade is total: it
// never fails and negative times are clamped to zero.
func Grade(correct bool, timeMs int, stats speed.Stats) fsrs.Rating {
	if !correct {
		return fsrs.Again
	}
	if !stats.WarmedUp {
		return fsrs.Good
	}

	if timeMs < 0 {
		timeMs = 0
	}
	t := float64(timeMs)
	switch {
	case t <= stats.P25:
		return fsrs.Easy
	case t <= stats.P50:
		return fsrs.Good
	case t <= stats.P75:
		return fsrs.Hard
	default:
		return fsrs.Again
	}
}

var ratingLabels = map[fsrs.Rating]string{
	fsrs.Again: "Again",
	fsrs.Hard:  "Hard",
	fsrs.Good:  "Good",
	fsrs.Easy:  "Easy",
}

// Label returns the display name for a rating.
func Label(r fsrs.Rating) string {
	if s, ok := ratingLabels[r]; ok {
		return s
	}
	return "Unknown"
}
