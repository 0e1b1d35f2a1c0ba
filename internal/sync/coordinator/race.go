package coordinator

import (
	"runtime"

	"github.com/fuzzysync/fuzzysync/internal/sync/clock"
	"github.com/fuzzysync/fuzzysync/internal/sync/estimator"
)

// spinDelay burns approximately n spin units of wall-clock time: n
// iterations of a counted loop that, like the start barrier's spin loop,
// calls runtime.Gosched each iteration when yield is set. Unlike the
// barrier's loop it performs no atomic Load per iteration, so one unit
// here is somewhat cheaper than one barrier spin, which is what
// delayIncNS is calibrated from.
func spinDelay(n int64, yield bool) {
	for i := int64(0); i < n; i++ {
		if yield {
			runtime.Gosched()
		}
	}
}

// StartRaceA applies any positive delay bias as a pre-barrier spin, then
// rendezvouses with B at the start barrier, then timestamps a_start. The
// caller's instrumented critical section is meant to begin immediately
// after StartRaceA returns, so that a_start marks the true start of the
// window being raced against B's.
func StartRaceA(p *Pair) {
	if delay := p.delay.Load(); delay > 0 {
		spinDelay(delay, p.yieldInWait)
	}
	p.bar.EnterA(p.yieldInWait, p.stop.Load)
	p.aStart.Store(int64(clock.Now()))
}

// StartRaceB applies any negative delay bias as a pre-barrier spin, then
// rendezvouses with A, then timestamps b_start. It also times its own half
// of the rendezvous and publishes the spin count and wall-clock duration
// for A to fold into delayIncNS during EndRaceA; a B that did not have to
// wait (lateA false: A was already there) publishes a zero spin count,
// meaning "no sample this iteration" rather than "zero-duration spin
// phase".
func StartRaceB(p *Pair) {
	if delay := p.delay.Load(); delay < 0 {
		spinDelay(-delay, p.yieldInWait)
	}

	spinStart := clock.Now()
	_, lateA, spins := p.bar.EnterB(p.yieldInWait, p.stop.Load)
	spinEnd := clock.Now()

	if lateA {
		p.bSpins.Store(spins)
		p.bSpinWallNS.Store(int64(clock.Sub(spinEnd, spinStart)))
	} else {
		p.bSpins.Store(0)
		p.bSpinWallNS.Store(0)
	}

	p.bStart.Store(int64(clock.Now()))
}

// EndRaceA timestamps a_end, folds the iteration's observations into the
// moving statistics, and, while still sampling, recomputes delay from
// them. The b_start and b_end read here may reflect B's previous iteration
// rather than this one: B publishes both without a barrier of its own, so
// the freshest value this call can observe safely (without a data race)
// is whatever B's last atomic Store produced.
func EndRaceA(p *Pair) {
	now := clock.Now()
	p.aEnd.Store(int64(now))

	aStart := clock.Timestamp(p.aStart.Load())
	bStart := clock.Timestamp(p.bStart.Load())
	bEnd := clock.Timestamp(p.bEnd.Load())

	p.diffSA.UpdateDiff(p.alpha, now, aStart)
	p.diffSS.UpdateDiff(p.alpha, aStart, bStart)
	p.diffAB.UpdateDiff(p.alpha, now, bEnd)
	p.diffSB.UpdateDiff(p.alpha, bEnd, bStart)

	spins := p.bSpins.Load()
	p.delayIncNS = estimator.Calibrate(p.delayIncNS, p.alpha, spins, float64(p.bSpinWallNS.Load()))
	if spins > 0 {
		p.spins.Update(p.alpha, float64(spins))
	}

	if p.sampling > 0 {
		if estimator.Stable(p.currentStats()) {
			delayIncNS := p.delayIncNS
			if delayIncNS <= 0 {
				delayIncNS = estimator.DefaultSpinUnitNS
			}
			p.delay.Store(estimator.Estimate(p.currentStats(), delayIncNS))
		}
		p.sampling--
	}
}

// EndRaceB timestamps b_end. B contributes nothing further to the moving
// statistics: all Stat bookkeeping is done by A in EndRaceA, reading B's
// published timestamps, so EndRaceB stays a single atomic Store.
func EndRaceB(p *Pair) {
	p.bEnd.Store(int64(clock.Now()))
}
