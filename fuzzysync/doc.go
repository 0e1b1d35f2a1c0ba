// Package fuzzysync provides the public API for Fuzzy Sync: a tool for
// statistically aligning two goroutines' critical sections so that a rare
// data race between them reproduces often enough to catch in a test run,
// instead of once in a blue moon in production.
//
// See internal/sync/coordinator for the synchronization engine this
// package wraps.
package fuzzysync

import internal "github.com/fuzzysync/fuzzysync/internal/sync/coordinator"

// Worker is the callable B runs as its own goroutine body.
type Worker func(p *Pair)

// Pair coordinates exactly two participants, A and B, through repeated
// iterations of a start-barrier rendezvous followed by a pair of
// independently timed critical sections. A is whichever goroutine calls
// Reset, RunA, StartRaceA, EndRaceA, and Cleanup - almost always the
// caller's own goroutine; B is the goroutine Reset spawns to run the
// Worker passed to it.
//
// The zero value is not ready to use; call Init first.
//
// Typical use:
//
//	var p fuzzysync.Pair
//	p.Init()
//	p.Reset(func(p *fuzzysync.Pair) {
//		for p.RunB() {
//			p.StartRaceB()
//			// ... B's half of the race under test ...
//			p.EndRaceB()
//		}
//	})
//	for p.RunA() {
//		p.StartRaceA()
//		// ... A's half of the race under test ...
//		p.EndRaceA()
//	}
//	p.Cleanup()
type Pair struct {
	p internal.Pair
}
