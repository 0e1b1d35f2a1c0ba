// Package stat implements the exponentially-smoothed running statistic
// used throughout the coordinator to track timing distributions without
// retaining a sample window.
//
// EMA is chosen over a windowed mean because it is constant-space and
// tracks drift (CPU frequency scaling, thermal throttling) without needing
// periodic resets. The default smoothing factor gives an effective horizon
// of about four samples, trading responsiveness for stability.
package stat

import "github.com/fuzzysync/fuzzysync/internal/sync/clock"

// DefaultAlpha is the smoothing factor used by the coordinator unless a
// caller overrides it.
const DefaultAlpha = 0.25

// Stat holds an exponentially-smoothed mean and mean absolute deviation.
//
// The zero value is ready to use: the first Update seeds Avg directly
// rather than smoothing against a false zero baseline.
type Stat struct {
	Avg    float64
	AvgDev float64

	seeded bool
}

// Update folds sample into the statistic using smoothing factor alpha.
//
//	avg    += alpha * (sample - avg)
//	avgDev += alpha * (|sample - avg| - avgDev)
//
// The first call seeds Avg with sample directly instead of smoothing
// against the zero value, matching the documented "avg was 0" seeding
// behavior.
func (s *Stat) Update(alpha, sample float64) {
	if !s.seeded {
		s.Avg = sample
		s.AvgDev = 0
		s.seeded = true
		return
	}
	s.Avg += alpha * (sample - s.Avg)
	dev := sample - s.Avg
	if dev < 0 {
		dev = -dev
	}
	s.AvgDev += alpha * (dev - s.AvgDev)
}

// UpdateDiff is a convenience wrapper that samples end-start (in
// nanoseconds) and feeds it to Update.
func (s *Stat) UpdateDiff(alpha float64, end, start clock.Timestamp) {
	s.Update(alpha, float64(clock.Sub(end, start)))
}

// Seeded reports whether Update has been called at least once.
func (s *Stat) Seeded() bool {
	return s.seeded
}
