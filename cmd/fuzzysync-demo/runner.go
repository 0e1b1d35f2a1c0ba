package main

import (
	"time"

	"github.com/fuzzysync/fuzzysync"
)

// busyUnit shapes one window's relative timing; see scenario.go's window
// type. It is not calibrated to a fixed wall-clock duration.
func busyUnit(n int) {
	x := 0
	for i := 0; i < n*64; i++ {
		x += i
	}
	_ = x
}

// runScenario drives one scenario row to completion, recording every
// iteration's outcome through rec.
func runScenario(s scenario, rec *recorder, pr *progress) error {
	if s.Winner {
		return runWinnerScenario(s, rec, pr)
	}
	return runWindowScenario(s, rec, pr)
}

func runWindowScenario(s scenario, rec *recorder, pr *progress) error {
	var p fuzzysync.Pair
	p.Init()
	p.SetExecLoops(s.Loops)
	if s.Loops > 4 {
		p.SetMinSamples(s.Loops / 4)
	}

	if err := p.Reset(func(p *fuzzysync.Pair) {
		for p.RunB() {
			busyUnit(s.B.S)
			p.StartRaceB()
			busyUnit(s.B.T)
			p.EndRaceB()
			busyUnit(s.B.R)
		}
	}); err != nil {
		return err
	}

	for p.RunA() {
		busyUnit(s.A.S)
		p.StartRaceA()
		busyUnit(s.A.T)
		p.EndRaceA()
		if err := rec.writeRow("", int64(p.AStart()), int64(p.BStart()), int64(p.AEnd()), int64(p.BEnd())); err != nil {
			p.Cleanup()
			return err
		}
		pr.update(s.Name, p.ExecLoop(), s.Loops)
		busyUnit(s.A.R)
	}
	p.Cleanup()
	pr.done(s.Name)
	return nil
}

// runWinnerScenario is scenario 6: A and B race an unsynchronized shared
// variable, and the CSV rows' winner column records who actually landed
// last each iteration.
func runWinnerScenario(s scenario, rec *recorder, pr *progress) error {
	var p fuzzysync.Pair
	p.Init()
	p.SetExecLoops(s.Loops)
	if s.Loops > 4 {
		p.SetMinSamples(s.Loops / 4)
	}

	var winner string // deliberately unsynchronized: this is the race fuzzysync exists to amplify

	if err := p.Reset(func(p *fuzzysync.Pair) {
		for p.RunB() {
			p.StartRaceB()
			winner = "B" //nolint:staticcheck // intentionally racy demonstration variable
			p.EndRaceB()
		}
	}); err != nil {
		return err
	}

	for p.RunA() {
		p.StartRaceA()
		winner = "A" //nolint:staticcheck // intentionally racy demonstration variable
		time.Sleep(time.Nanosecond)
		observed := winner
		p.EndRaceA()

		if err := rec.writeRow(observed, int64(p.AStart()), int64(p.BStart()), int64(p.AEnd()), int64(p.BEnd())); err != nil {
			p.Cleanup()
			return err
		}
		pr.update(s.Name, p.ExecLoop(), s.Loops)
	}
	p.Cleanup()
	pr.done(s.Name)
	return nil
}
