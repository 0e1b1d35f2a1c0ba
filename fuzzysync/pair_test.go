package fuzzysync_test

import (
	"errors"
	"testing"

	"github.com/fuzzysync/fuzzysync"
)

func TestPairMisuseSurfacesAsError(t *testing.T) {
	var p fuzzysync.Pair
	p.Init()

	started := make(chan struct{})
	release := make(chan struct{})
	if err := p.Reset(func(p *fuzzysync.Pair) {
		close(started)
		<-release
	}); err != nil {
		t.Fatalf("first reset: %v", err)
	}
	<-started

	err := p.Reset(nil)
	if err == nil {
		t.Fatal("expected Reset to report a *fuzzysync.MisuseError while a worker is running")
	}
	var misuse *fuzzysync.MisuseError
	if !errors.As(err, &misuse) {
		t.Fatalf("expected *fuzzysync.MisuseError, got %T: %v", err, err)
	}

	close(release)
	p.Cleanup()
}

func TestPairGetOptionsDoNotPanicBeforeReset(t *testing.T) {
	var p fuzzysync.Pair
	p.Init()
	p.SetMinSamples(8)
	p.SetAlpha(0.5)
	p.SetExecLoops(3)

	if !p.Sampling() {
		t.Error("expected a freshly initialized pair to start in sampling mode")
	}
	if p.Delay() != 0 {
		t.Errorf("expected zero delay before any iterations, got %d", p.Delay())
	}
}
