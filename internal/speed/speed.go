// Package speed tracks the learner's response times for the current
// practice session and derives the percentiles the grading policy reads.
package speed

import "sort"

// maxHistory bounds the retained sample window. A session never comes
// close in practice; the cap just keeps a pathological log from growing
// without bound.
const maxHistory = 500

// Stats is a value type: Record returns a new Stats and never mutates
// its input. WarmedUp flips to true once the sample count first reaches
// the warmup target and stays true for the rest of the session, even if
// the history window later trims old samples.
type Stats struct {
	Samples  []float64 `json:"samples"`
	P25      float64   `json:"p25"`
	P50      float64   `json:"p50"`
	P75      float64   `json:"p75"`
	P90      float64   `json:"p90"`
	WarmedUp bool      `json:"warmed_up"`
}

// Count returns the number of retained samples.
func (s Stats) Count() int {
	return len(s.Samples)
}

// Record appends one response time (milliseconds) and recomputes the
// percentiles over the whole retained history. Negative times are clamped
// to zero. History sizes are session-bounded, so full recomputation on
// every sample is fine.
func Record(s Stats, timeMs int, warmupTarget int) Stats {
	if timeMs < 0 {
		timeMs = 0
	}
	if warmupTarget < 1 {
		warmupTarget = 1
	}

	samples := make([]float64, len(s.Samples), len(s.Samples)+1)
	copy(samples, s.Samples)
	samples = append(samples, float64(timeMs))
	if len(samples) > maxHistory {
		samples = samples[len(samples)-maxHistory:]
	}

	next := Stats{
		Samples:  samples,
		WarmedUp: s.WarmedUp || len(samples) >= warmupTarget,
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	next.P25 = percentile(sorted, 25)
	next.P50 = percentile(sorted, 50)
	next.P75 = percentile(sorted, 75)
	next.P90 = percentile(sorted, 90)

	return next
}

// percentile computes the p-th percentile of sorted using linear
// interpolation between the two nearest ranks.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(n-1)
	lower := int(rank)
	if lower >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}
