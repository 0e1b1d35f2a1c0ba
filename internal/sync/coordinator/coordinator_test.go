package coordinator

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// drive runs one iteration of A against one iteration of B directly, with
// B's half on a short-lived goroutine so the start barrier can rendezvous,
// for tests that only care about the bookkeeping and not about a
// long-running worker.
func drive(p *Pair) {
	done := make(chan struct{})
	go func() {
		StartRaceB(p)
		EndRaceB(p)
		close(done)
	}()
	StartRaceA(p)
	<-done
	EndRaceA(p)
}

func TestInitDefaults(t *testing.T) {
	var p Pair
	Init(&p)

	require.Equal(t, 0.25, p.alpha)
	require.Equal(t, uint64(1024), p.minSamples)
	require.True(t, p.Sampling())
	require.Zero(t, p.Delay())
	require.Zero(t, p.ExecLoop())
}

func TestResetRoundTrip(t *testing.T) {
	var p Pair
	Init(&p)
	p.SetMinSamples(4)

	require.NoError(t, p.Reset(nil))
	for i := 0; i < 10; i++ {
		drive(&p)
	}
	require.False(t, p.Sampling())
	require.Zero(t, p.ExecLoop()) // driven by hand here, not via RunA

	require.NoError(t, p.Reset(nil))
	require.True(t, p.Sampling(), "Reset must restore sampling mode")
	require.Zero(t, p.Delay(), "Reset must zero delay")
	require.Zero(t, p.AStart())
	require.Zero(t, p.BEnd())
}

func TestResetRejectsStillRunning(t *testing.T) {
	var p Pair
	Init(&p)

	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, p.Reset(func(p *Pair) {
		close(started)
		<-release
	}))
	<-started

	err := p.Reset(nil)
	require.Error(t, err)
	var misuse *MisuseError
	require.ErrorAs(t, err, &misuse)

	close(release)
	p.Cleanup()
}

func TestCleanupIdempotent(t *testing.T) {
	var p Pair
	Init(&p)

	p.Cleanup() // no worker ever started
	require.NoError(t, p.Reset(func(p *Pair) {}))
	time.Sleep(time.Millisecond)
	p.Cleanup()
	p.Cleanup() // second call must not hang or panic
}

func TestClockMonotoneAcrossIterations(t *testing.T) {
	var p Pair
	Init(&p)
	p.SetMinSamples(2)
	require.NoError(t, p.Reset(nil))

	var lastAEnd, lastBEnd int64
	for i := 0; i < 20; i++ {
		drive(&p)
		require.GreaterOrEqual(t, int64(p.AEnd()), lastAEnd)
		require.GreaterOrEqual(t, int64(p.BEnd()), lastBEnd)
		lastAEnd, lastBEnd = int64(p.AEnd()), int64(p.BEnd())
	}
}

func TestBarrierCounterBoundConcurrent(t *testing.T) {
	var p Pair
	Init(&p)
	p.SetMinSamples(200)
	p.SetExecLoops(2000)

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, p.Reset(func(p *Pair) {
		defer wg.Done()
		for RunB(p) {
			StartRaceB(p)
			EndRaceB(p)

			a, b := p.bar.A.Load(), p.bar.B.Load()
			diff := int64(a) - int64(b)
			if diff < 0 {
				diff = -diff
			}
			if diff > 1 {
				t.Errorf("barrier counters diverged: a=%d b=%d", a, b)
			}
		}
	}))

	for RunA(&p) {
		StartRaceA(&p)
		EndRaceA(&p)
	}
	wg.Wait()
}

func TestAvgDevNeverNegative(t *testing.T) {
	var p Pair
	Init(&p)
	p.SetMinSamples(50)
	require.NoError(t, p.Reset(nil))

	for i := 0; i < 200; i++ {
		drive(&p)
		require.GreaterOrEqual(t, p.diffSS.AvgDev, 0.0)
		require.GreaterOrEqual(t, p.diffSA.AvgDev, 0.0)
		require.GreaterOrEqual(t, p.diffSB.AvgDev, 0.0)
	}
}

func TestSamplingEndsAtMinSamples(t *testing.T) {
	var p Pair
	Init(&p)
	p.SetMinSamples(10)
	require.NoError(t, p.Reset(nil))

	for i := 0; i < 9; i++ {
		drive(&p)
		require.True(t, p.Sampling(), "iteration %d should still be sampling", i)
	}
	drive(&p)
	require.False(t, p.Sampling())
}
