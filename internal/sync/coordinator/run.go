package coordinator

import "time"

// RunA reports whether A should begin another iteration. The caller's
// driving loop is:
//
//	for coordinator.RunA(p) {
//	    coordinator.StartRaceA(p)
//	    ... critical section ...
//	    coordinator.EndRaceA(p)
//	}
//
// RunA advances exec_loop, checks the exec_loops and wall-clock budgets set
// via SetExecLoops/SetExecTimeLimit, and emits one diagnostic line the
// first time exec_loop reaches 5000 so a long-running scenario reports
// signs of life without flooding its output. On a normal exit (a
// budget was reached) RunA signals B to stop and joins it before returning
// false, via Cleanup - so a caller whose loop just ended may call Cleanup
// again harmlessly, or skip it, without double-joining.
func RunA(p *Pair) bool {
	if p.stop.Load() {
		return false
	}
	if p.execLoops > 0 && p.execLoop >= p.execLoops {
		p.Cleanup()
		return false
	}
	if p.execTimeLimit > 0 && time.Since(p.execTimeStart) >= p.execTimeLimit {
		p.Cleanup()
		return false
	}

	p.execLoop++
	if p.execLoop == diagnosticLoopMark {
		p.diagf("fuzzysync: exec_loop=%d delay=%d sampling=%v diff_ss.avg=%.1fns diff_sa.avg=%.1fns diff_sb.avg=%.1fns",
			p.execLoop, p.delay.Load(), p.Sampling(), p.diffSS.Avg, p.diffSA.Avg, p.diffSB.Avg)
	}

	return true
}

// RunB reports whether B should begin another iteration. It becomes false
// the moment A's run loop has signaled a stop, whether that stop came from
// RunA reaching a budget or from an explicit Cleanup call, so B's own loop
// is:
//
//	for coordinator.RunB(p) {
//	    coordinator.StartRaceB(p)
//	    ... critical section ...
//	    coordinator.EndRaceB(p)
//	}
func RunB(p *Pair) bool {
	return !p.stop.Load()
}
