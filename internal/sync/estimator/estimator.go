// Package estimator converts the coordinator's moving window-timing
// statistics into the signed delay bias that the next iteration's start
// barrier should apply.
//
// The package is deliberately free of goroutines, atomics, and mutable
// package state: every function here is a pure transform over the inputs
// it's given, which makes the delay-bias formulas independently
// unit-testable without spinning up the concurrency-heavy coordinator.
package estimator

import (
	"math"

	"github.com/fuzzysync/fuzzysync/internal/sync/stat"
)

// Stats bundles the moving statistics Estimate reads. Fields are read-only
// inputs; Estimate never mutates them.
type Stats struct {
	DiffSS stat.Stat // a_start - b_start: the alignment error
	DiffSA stat.Stat // length of A's critical section
	DiffSB stat.Stat // length of B's critical section
}

// Estimate computes the next signed delay bias, in spin units, from the
// current moving statistics and the calibrated duration of one spin unit
// (delayIncNS, nanoseconds per spin).
//
//	target_ns = (diff_sb.avg - diff_sa.avg) / 2
//	bias_ns   = diff_ss.avg - target_ns
//	delay     = round(bias_ns / delay_inc_ns)
//
// delay is saturated so that |delay| * delayIncNS <= 2 * max(diff_sa.avg,
// diff_sb.avg), preventing runaway over-correction when one window is
// nearly zero length.
//
// A negative delay means B should delay |delay| units on its next start; a
// positive delay means A should delay that many units; zero means
// neither. If delayIncNS is not yet calibrated (<= 0), Estimate returns 0:
// the coordinator should not yet be calling Estimate in that state (see
// DefaultSpinUnitNS), but a defined, inert result is cheaper than a panic
// for a condition that is normally unreachable after the first measured
// spin phase.
func Estimate(s Stats, delayIncNS float64) int64 {
	if delayIncNS <= 0 {
		return 0
	}

	targetNS := (s.DiffSB.Avg - s.DiffSA.Avg) / 2
	biasNS := s.DiffSS.Avg - targetNS
	delay := int64(math.Round(biasNS / delayIncNS))

	maxSection := math.Max(s.DiffSA.Avg, s.DiffSB.Avg)
	limit := int64(math.Round(2 * maxSection / delayIncNS))
	if limit < 0 {
		limit = 0
	}
	if delay > limit {
		delay = limit
	}
	if delay < -limit {
		delay = -limit
	}
	return delay
}

// Stable reports whether the moving statistics have settled enough for
// Estimate's output to be trusted.
//
// Open question: the upstream fuzzy-sync design switches from sampling to
// amplify mode on a simple minSamples counter, without an explicit
// variance check on diff_ss; a reimplementation may keep that simpler
// rule or strengthen it. This package keeps the simpler rule to preserve
// the test timings the end-to-end scenarios were tuned against, so Stable
// always returns true today. It stays a separate function, rather than
// being inlined at
// the call site, so a variance-based heuristic can be swapped in later
// without touching the coordinator.
func Stable(s Stats) bool {
	_ = s
	return true
}

// DefaultSpinUnitNS is the fallback spin-unit duration assumed when B has
// never actually lost a race to A during sampling, so no spin phase has
// ever been timed and Calibrate has nothing to calibrate from.
//
// Open question: the alternative is to detect this condition and extend
// sampling indefinitely. This package instead falls back to one
// nanosecond per spin so delay stays usable, at the cost of a coarse first
// correction; Calibrate recalibrates the instant B loses even a single
// race.
const DefaultSpinUnitNS = 1.0

// Calibrate folds one observed spin phase into the running spin-unit
// duration estimate: spins busy-wait iterations executed over wallClockNS
// nanoseconds, smoothed with smoothing factor alpha. If spins is zero
// (B was not the late party this iteration), prev is returned unchanged.
func Calibrate(prev, alpha float64, spins uint64, wallClockNS float64) float64 {
	if spins == 0 {
		return prev
	}
	sample := wallClockNS / float64(spins)
	if prev <= 0 {
		return sample
	}
	return prev + alpha*(sample-prev)
}
