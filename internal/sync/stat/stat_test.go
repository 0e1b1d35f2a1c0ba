package stat

import (
	"math"
	"testing"

	"github.com/fuzzysync/fuzzysync/internal/sync/clock"
)

func TestUpdateSeedsFirstSample(t *testing.T) {
	var s Stat
	s.Update(DefaultAlpha, 42)
	if s.Avg != 42 {
		t.Errorf("Avg = %v, want 42 (seeded)", s.Avg)
	}
	if s.AvgDev != 0 {
		t.Errorf("AvgDev = %v, want 0 (seeded)", s.AvgDev)
	}
}

func TestUpdateSmooths(t *testing.T) {
	var s Stat
	s.Update(DefaultAlpha, 0)
	s.Update(DefaultAlpha, 100)
	// avg = 0 + 0.25*(100-0) = 25
	if math.Abs(s.Avg-25) > 1e-9 {
		t.Errorf("Avg = %v, want 25", s.Avg)
	}
	// avgDev = 0 + 0.25*(|100-25| - 0) = 18.75
	if math.Abs(s.AvgDev-18.75) > 1e-9 {
		t.Errorf("AvgDev = %v, want 18.75", s.AvgDev)
	}
}

func TestUpdateNeverNegativeAvgDev(t *testing.T) {
	var s Stat
	samples := []float64{5, -5, 5, -5, 0, 100, -100}
	for _, x := range samples {
		s.Update(DefaultAlpha, x)
		if s.AvgDev < 0 {
			t.Fatalf("AvgDev went negative: %v", s.AvgDev)
		}
	}
}

func TestUpdateDiff(t *testing.T) {
	var s Stat
	s.UpdateDiff(DefaultAlpha, clock.Timestamp(100), clock.Timestamp(60))
	if s.Avg != 40 {
		t.Errorf("Avg = %v, want 40", s.Avg)
	}
}

func TestSeeded(t *testing.T) {
	var s Stat
	if s.Seeded() {
		t.Fatal("zero-value Stat reports Seeded()")
	}
	s.Update(DefaultAlpha, 1)
	if !s.Seeded() {
		t.Fatal("Stat does not report Seeded() after Update")
	}
}
