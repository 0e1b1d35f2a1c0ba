// Package barrier implements the two-counter start-barrier rendezvous that
// Fuzzy Sync's coordinator uses to line up A's and B's iterations before
// each race window.
//
// A futex or condition variable would add microseconds of jitter that
// swamp the nanosecond-scale races being probed, so the barrier is a pure
// spin (optionally yielding) on two atomic counters — no OS primitives on
// the hot path.
package barrier

import (
	"runtime"
	"sync/atomic"
)

// cacheLinePadding is sized so that two adjacent Counter values never share
// a cache line on common 64-byte-line hardware. This is a performance
// invariant, not a correctness one: without it, A's and B's busy-spinning
// cores would ping-pong the same cache line every iteration.
const cacheLinePadding = 64 - 4

// Counter is a single barrier side, padded to occupy its own cache line.
type Counter struct {
	v   atomic.Uint32
	_   [cacheLinePadding]byte
}

// Load returns the counter's current value with acquire semantics.
func (c *Counter) Load() uint32 { return c.v.Load() }

// Add atomically increments the counter and returns the new value.
func (c *Counter) Add(delta uint32) uint32 { return c.v.Add(delta) }

// Barrier is a single reusable start-barrier shared by exactly two
// participants, A and B.
//
// |A.Load() - B.Load()| <= 1 outside of a rendezvous in progress: a
// correctness invariant maintained by construction, since each side only
// ever advances its own counter by one and waits for the other to catch
// up before advancing again.
type Barrier struct {
	A Counter
	B Counter
}

// EnterA performs A's half of the rendezvous: publish A's arrival, then
// spin until B has published a matching arrival.
//
// yield selects a cooperative runtime.Gosched() each spin iteration
// instead of a pure busy-wait; stop, if non-nil, is polled each spin and
// causes EnterA to return ok=false without blocking forever - this is how
// a cooperative cancellation unblocks a spinner that would otherwise wait
// for a partner that is never coming.
//
// Tie-break: the counter is incremented before the first Load of the
// other side, so a participant that "arrives second" always observes the
// other's already-published increment - there is no window in which both
// appear equal to a spinner that has not yet read the other counter.
func (br *Barrier) EnterA(yield bool, stop func() bool) (ok bool) {
	target := br.A.Add(1)
	for {
		if br.B.Load() >= target {
			return true
		}
		if stop != nil && stop() {
			return false
		}
		if yield {
			runtime.Gosched()
		}
	}
}

// EnterB performs B's half of the rendezvous and additionally counts the
// spin iterations burned waiting for a late A. The coordinator feeds
// spins into the spins Stat to calibrate delayIncNS, the nanosecond cost
// of one spin unit.
//
// lateA reports whether B had to spin at all, i.e. A was the later
// party this iteration.
func (br *Barrier) EnterB(yield bool, stop func() bool) (ok, lateA bool, spins uint64) {
	target := br.B.Add(1)
	for {
		if br.A.Load() >= target {
			return true, spins > 0, spins
		}
		if stop != nil && stop() {
			return false, spins > 0, spins
		}
		spins++
		if yield {
			runtime.Gosched()
		}
	}
}

// Bump advances A's counter once more without a paired rendezvous, so a
// spinner blocked purely on the counter comparison (no stop check of its
// own) is still woken on cancellation. This implementation's EnterB
// already polls stop on every spin, so Bump is a belt-and-suspenders tick
// rather than the sole unblocking mechanism.
func (br *Barrier) Bump() {
	br.A.Add(1)
}
