// Package coordinator implements Fuzzy Sync's synchronization engine: the
// Pair type that barriers, times, and statistically aligns two
// participants' race windows.
//
// Pair's fields are partitioned by ownership: A owns everything except B's
// counter (bar.B) and B's endpoint timestamps; B owns only those. Every
// field B writes and A reads (or vice versa) is a sync/atomic type, so the
// cross-goroutine traffic here is the engine's own bookkeeping
// synchronized properly - never the instrumented application variable
// under test, which stays deliberately unsynchronized because it is the
// thing being raced on.
//
// A itself is not a goroutine the coordinator spawns: "A" is simply
// whichever goroutine calls Reset/RunA/StartRaceA/EndRaceA/Cleanup, almost
// always the caller's own goroutine. Only B is spawned, by Reset, running
// the supplied Worker.
package coordinator

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fuzzysync/fuzzysync/internal/sync/barrier"
	"github.com/fuzzysync/fuzzysync/internal/sync/clock"
	"github.com/fuzzysync/fuzzysync/internal/sync/estimator"
	"github.com/fuzzysync/fuzzysync/internal/sync/stat"
)

// Worker is the callable B runs as its goroutine body. It is handed the
// Pair so it can call StartRaceB, EndRaceB, and RunB in its own loop; the
// function returns when B's run loop exits.
type Worker func(p *Pair)

// diagnosticLoopMark is the iteration count at which RunA emits its
// one-shot diagnostic line, a cheap sign-of-life for a long amplification
// run without flooding output every iteration.
const diagnosticLoopMark = 5000

// Pair is Fuzzy Sync's coordinator, shared by exactly two participants, A
// (the driver calling Init/Reset/RunA/StartRaceA/EndRaceA/Cleanup) and B
// (running inside the Worker passed to Reset, calling RunB/StartRaceB/
// EndRaceB).
type Pair struct {
	bar barrier.Barrier

	// Timestamps, as nanosecond clock.Timestamp values stored in atomic
	// ints so the owning side's Store and the other side's Load are never
	// flagged as a data race, independent of how many iterations the
	// reader happens to lag behind the writer. A reader may legitimately
	// observe a value one or more iterations stale rather than the very
	// latest one - that staleness is expected and harmless for an
	// EMA-smoothed statistic, and the alternative (blocking for freshness)
	// would reintroduce the kind of synchronization overhead this design
	// exists to avoid.
	aStart, aEnd atomic.Int64 // A-owned
	bStart, bEnd atomic.Int64 // B-owned

	// bSpins and bSpinWallNS are B's publication of "how late was A, and
	// how long (wall-clock) did I spin waiting" for B's most recently
	// completed start-barrier rendezvous. A folds these into spins and
	// delayIncNS during EndRaceA.
	bSpins      atomic.Uint64
	bSpinWallNS atomic.Int64

	// A-owned moving statistics, touched only from A's goroutine.
	diffSS stat.Stat // a_start - b_start: alignment error
	diffSA stat.Stat // length of A's critical section
	diffSB stat.Stat // length of B's critical section
	diffAB stat.Stat // a_end - b_end
	spins  stat.Stat // spin iterations B burned waiting for a late A

	alpha float64

	// delay is written only by A and read by both sides at the start of
	// every iteration to decide which side spins, so it is atomic.
	delay atomic.Int64

	// delayIncNS is the calibrated nanosecond duration of one spin unit.
	// It is derived and consumed entirely by A (from bSpins/bSpinWallNS),
	// so it does not itself need to be atomic.
	delayIncNS float64

	sampling   uint64
	minSamples uint64

	execLoop  uint64
	execLoops uint64 // 0 means unlimited

	execTimeStart time.Time
	execTimeLimit time.Duration // 0 means unlimited

	yieldInWait bool
	pinCPUs     bool

	stop atomic.Bool

	diagf func(format string, args ...any)

	mu      sync.Mutex // guards running/worker lifecycle transitions below
	running bool
	wg      sync.WaitGroup
}

// Init zero-initializes pair and sets its defaults: alpha=0.25,
// minSamples=1024, execLoops effectively unlimited. Init must be called
// exactly once before the first Reset; calling it again without an
// intervening Cleanup is a misuse the library does not attempt to detect
// beyond what Reset's own running check catches.
func Init(p *Pair) {
	*p = Pair{}
	p.alpha = stat.DefaultAlpha
	p.minSamples = 1024
	p.sampling = p.minSamples
	p.execLoops = 0
	p.diagf = defaultDiagf
}

// defaultDiagf is the diagnostic printer hook's default: one line to
// standard error.
func defaultDiagf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// SetDiagf overrides the diagnostic printer hook. Passing nil restores the
// default (one line on os.Stderr).
func (p *Pair) SetDiagf(fn func(format string, args ...any)) {
	if fn == nil {
		fn = defaultDiagf
	}
	p.diagf = fn
}

// SetMinSamples overrides the minimum sample count required before
// sampling mode ends (default 1024). The new value takes effect at the
// next Reset.
func (p *Pair) SetMinSamples(n uint64) { p.minSamples = n }

// SetExecLoops overrides the hard upper bound on iterations. 0 means
// unlimited.
func (p *Pair) SetExecLoops(n uint64) { p.execLoops = n }

// SetExecTimeLimit overrides the wall-clock budget for a run. 0 means
// unlimited.
func (p *Pair) SetExecTimeLimit(d time.Duration) { p.execTimeLimit = d }

// SetAlpha overrides the EMA smoothing factor (default 0.25).
func (p *Pair) SetAlpha(alpha float64) { p.alpha = alpha }

// SetCPUPinning enables optional CPU affinity pinning: A is pinned to CPU
// 0 and B to CPU 1 when Reset next spawns a worker, provided a pinToCPU
// implementation exists and at least two hardware CPUs are available;
// otherwise no pinning is attempted. If pinning A fails, Reset returns a
// *SpawnError without starting B; a failure to pin B is ignored.
// yieldInWait does not depend on this setting: Reset forces it on only
// when fewer than two hardware CPUs are available.
func (p *Pair) SetCPUPinning(enabled bool) { p.pinCPUs = enabled }

// Reset reinitializes per-run state and, if worker is non-nil, spawns B
// running worker(pair). All timestamps, stats, counters, and delay are
// reinitialized to their post-Init values; minSamples, execLoops, and the
// caller-chosen policy flags (alpha, execTimeLimit, pinCPUs) survive a
// Reset, so a caller sweeping several scenarios with the same pair does
// not have to reapply its configuration before every run.
//
// Reset fails with a *MisuseError if a previous worker is still running
// and has not been joined by Cleanup.
func (p *Pair) Reset(worker Worker) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return &MisuseError{Op: "Reset", Reason: "previous worker still running; call Cleanup first"}
	}
	p.mu.Unlock()

	p.bar = barrier.Barrier{}
	p.aStart.Store(0)
	p.aEnd.Store(0)
	p.bStart.Store(0)
	p.bEnd.Store(0)
	p.bSpins.Store(0)
	p.bSpinWallNS.Store(0)
	p.diffSS, p.diffSA, p.diffSB, p.diffAB, p.spins = stat.Stat{}, stat.Stat{}, stat.Stat{}, stat.Stat{}, stat.Stat{}
	p.delay.Store(0)
	p.delayIncNS = 0
	p.sampling = p.minSamples
	p.execLoop = 0
	p.execTimeStart = time.Now()
	p.stop.Store(false)

	p.yieldInWait = !hardwareParallelismAvailable()

	return p.spawn(worker)
}

// AStart, AEnd, BStart, BEnd return the most recent timestamps captured by
// StartRaceA, EndRaceA, StartRaceB and EndRaceB respectively.
func (p *Pair) AStart() clock.Timestamp { return clock.Timestamp(p.aStart.Load()) }
func (p *Pair) AEnd() clock.Timestamp   { return clock.Timestamp(p.aEnd.Load()) }
func (p *Pair) BStart() clock.Timestamp { return clock.Timestamp(p.bStart.Load()) }
func (p *Pair) BEnd() clock.Timestamp   { return clock.Timestamp(p.bEnd.Load()) }

// Delay returns the current signed delay bias in spin units: negative
// means B delays, positive means A delays, zero means neither.
func (p *Pair) Delay() int64 { return p.delay.Load() }

// Sampling reports whether the pair is still in sampling mode (delay is
// still being recomputed each iteration) as opposed to amplify mode
// (delay frozen).
func (p *Pair) Sampling() bool { return p.sampling > 0 }

// ExecLoop returns the current iteration index. Intended to be called
// from A's goroutine, or after Cleanup has joined B.
func (p *Pair) ExecLoop() uint64 { return p.execLoop }

// currentStats snapshots the A-owned Stat fields for the estimator. Only
// called from A's goroutine, so no synchronization is required beyond the
// ordinary Go memory model guarantees for a single goroutine's own writes.
func (p *Pair) currentStats() estimator.Stats {
	return estimator.Stats{DiffSS: p.diffSS, DiffSA: p.diffSA, DiffSB: p.diffSB}
}
