package fuzzysync

import (
	"time"

	"github.com/fuzzysync/fuzzysync/internal/sync/clock"
	internal "github.com/fuzzysync/fuzzysync/internal/sync/coordinator"
)

// SpawnError reports that Reset could not start B's worker goroutine. The
// pair remains safe to Cleanup after a SpawnError.
type SpawnError = internal.SpawnError

// MisuseError reports a caller protocol violation, such as Reset being
// called while a previous worker has not yet been joined by Cleanup.
type MisuseError = internal.MisuseError

// Init prepares pair for its first Reset. Init must be called exactly
// once, before anything else.
func (pair *Pair) Init() {
	internal.Init(&pair.p)
}

// SetDiagf overrides the diagnostic printer hook used for one-shot
// progress messages (default: one line on os.Stderr). Passing nil
// restores the default.
//
//nolint:revive // matches the core's (format, args...) hook signature
func (pair *Pair) SetDiagf(fn func(format string, args ...any)) {
	pair.p.SetDiagf(fn)
}

// SetMinSamples overrides the number of iterations sampling mode runs
// before the estimator's delay freezes into amplify mode. Default 1024.
func (pair *Pair) SetMinSamples(n uint64) { pair.p.SetMinSamples(n) }

// SetExecLoops caps the number of iterations RunA will allow before
// signaling a normal stop. 0 (the default) means unlimited.
func (pair *Pair) SetExecLoops(n uint64) { pair.p.SetExecLoops(n) }

// SetExecTimeLimit caps the wall-clock duration RunA will allow before
// signaling a normal stop. 0 (the default) means unlimited.
func (pair *Pair) SetExecTimeLimit(d time.Duration) { pair.p.SetExecTimeLimit(d) }

// SetAlpha overrides the EMA smoothing factor used for every moving
// statistic (default 0.25).
func (pair *Pair) SetAlpha(alpha float64) { pair.p.SetAlpha(alpha) }

// SetCPUPinning enables pinning A to CPU 0 and B to CPU 1 on platforms
// that support it (Linux) when at least two hardware CPUs are available;
// otherwise no pinning is attempted. If pinning A fails, Reset returns a
// *SpawnError. The cooperative-yield spin does not depend on this
// setting: Reset turns it on only when fewer than two hardware CPUs are
// available.
func (pair *Pair) SetCPUPinning(enabled bool) { pair.p.SetCPUPinning(enabled) }

// Reset reinitializes the pair for a fresh run and, if worker is non-nil,
// spawns it as B's goroutine. It returns a *MisuseError if a previous
// worker is still running and has not been joined by Cleanup, or a
// *SpawnError if the worker goroutine could not be started (CPU pinning
// is enabled and A could not be pinned) - an error
// return rather than a panic, so a caller driving many scenarios in a
// loop can decide how to handle a protocol violation instead of crashing
// the whole suite.
func (pair *Pair) Reset(worker Worker) error {
	var fn internal.Worker
	if worker != nil {
		// The internal Worker is handed the internal *Pair it was spawned
		// from, which is always exactly pair.p - so we hand worker the
		// enclosing public Pair instead of wrapping that argument.
		fn = func(*internal.Pair) { worker(pair) }
	}
	return pair.p.Reset(fn)
}

// Cleanup signals B to stop and joins its goroutine. It is safe to call
// on a pair with no running worker, and safe to call more than once.
func (pair *Pair) Cleanup() {
	pair.p.Cleanup()
}

// RunA reports whether A should begin another iteration; see
// internal/sync/coordinator.RunA for the loop-budget and diagnostic
// semantics it implements.
func (pair *Pair) RunA() bool { return internal.RunA(&pair.p) }

// RunB reports whether B should begin another iteration. It becomes false
// once A's run loop has ended, whether by budget exhaustion or an
// explicit Cleanup.
func (pair *Pair) RunB() bool { return internal.RunB(&pair.p) }

// StartRaceA applies A's delay bias, rendezvouses with B at the start
// barrier, and timestamps AStart. The caller's instrumented critical
// section begins immediately after this call returns.
func (pair *Pair) StartRaceA() { internal.StartRaceA(&pair.p) }

// StartRaceB applies B's delay bias, rendezvouses with A at the start
// barrier, and timestamps BStart.
func (pair *Pair) StartRaceB() { internal.StartRaceB(&pair.p) }

// EndRaceA timestamps AEnd, folds the iteration into the moving
// statistics, and recomputes the delay bias while still sampling.
func (pair *Pair) EndRaceA() { internal.EndRaceA(&pair.p) }

// EndRaceB timestamps BEnd.
func (pair *Pair) EndRaceB() { internal.EndRaceB(&pair.p) }

// AStart, AEnd, BStart, BEnd return the nanosecond-resolution,
// process-monotonic timestamps most recently captured by StartRaceA,
// EndRaceA, StartRaceB and EndRaceB respectively. They are valid to read from A's
// goroutine after EndRaceA has returned; BStart and BEnd may reflect B's
// previous iteration rather than the one A just finished, since B
// publishes both without a barrier of its own.
func (pair *Pair) AStart() time.Duration { return asDuration(pair.p.AStart()) }
func (pair *Pair) AEnd() time.Duration   { return asDuration(pair.p.AEnd()) }
func (pair *Pair) BStart() time.Duration { return asDuration(pair.p.BStart()) }
func (pair *Pair) BEnd() time.Duration   { return asDuration(pair.p.BEnd()) }

func asDuration(ts clock.Timestamp) time.Duration { return time.Duration(ts) }

// Delay returns the current signed delay bias, in spin units: negative
// means B delays on its next iteration, positive means A delays, zero
// means neither.
func (pair *Pair) Delay() int64 { return pair.p.Delay() }

// Sampling reports whether the pair is still recomputing delay each
// iteration (sampling mode) as opposed to holding it fixed (amplify
// mode).
func (pair *Pair) Sampling() bool { return pair.p.Sampling() }

// ExecLoop returns the current iteration index.
func (pair *Pair) ExecLoop() uint64 { return pair.p.ExecLoop() }
