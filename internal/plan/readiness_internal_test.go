package plan

import (
	"math"
	"testing"
)

func readinessDay() *Day {
	return &Day{
		Title:   "Snatch Focus",
		LiftKey: LiftSnatch,
		Work: []Exercise{
			{Name: "Snatch", LiftKey: LiftSnatch, Sets: 5, Reps: 2, Pct: 0.80},
			{Name: "Snatch Pull", LiftKey: LiftSnatch, Sets: 4, Reps: 3, Pct: 0.90},
			{Name: "Plank", Sets: 3, Reps: 1},
		},
	}
}

func TestApplyReadinessAdjustment_low(t *testing.T) {
	t.Parallel()
	day := readinessDay()
	ApplyReadinessAdjustment(day, 2)

	if got := day.Work[0].Sets; got != 4 {
		t.Errorf("snatch sets = %d, want 4", got)
	}
	if got := day.Work[0].Pct; math.Abs(got-0.75) > 1e-9 {
		t.Errorf("snatch pct = %v, want 0.75", got)
	}
	if got := day.Work[2].Sets; got != 2 {
		t.Errorf("plank sets = %d, want 2", got)
	}
	if got := day.Work[2].Pct; got != 0 {
		t.Errorf("bodyweight pct = %v, want untouched zero", got)
	}
}

func TestApplyReadinessAdjustment_high(t *testing.T) {
	t.Parallel()
	day := readinessDay()
	ApplyReadinessAdjustment(day, 4.5)

	if got := day.Work[0].Sets; got != 6 {
		t.Errorf("snatch sets = %d, want 6", got)
	}
	if got := day.Work[0].Pct; math.Abs(got-0.83) > 1e-9 {
		t.Errorf("snatch pct = %v, want 0.83", got)
	}
}

func TestApplyReadinessAdjustment_neutralLeavesDayAlone(t *testing.T) {
	t.Parallel()
	day := readinessDay()
	ApplyReadinessAdjustment(day, 3)
	if day.Work[0].Sets != 5 || day.Work[0].Pct != 0.80 {
		t.Errorf("neutral score changed the day: %+v", day.Work[0])
	}
}

func TestApplyReadinessAdjustment_notCumulative(t *testing.T) {
	t.Parallel()
	day := readinessDay()
	for i := 0; i < 5; i++ {
		ApplyReadinessAdjustment(day, 1)
	}
	// Repeated low scores always rescale the original prescription.
	if got := day.Work[0].Sets; got != 4 {
		t.Errorf("snatch sets after repeated scores = %d, want 4", got)
	}
	if got := day.Work[0].Pct; math.Abs(got-0.75) > 1e-9 {
		t.Errorf("snatch pct after repeated scores = %v, want 0.75", got)
	}

	ApplyReadinessAdjustment(day, 3)
	if got := day.Work[0].Sets; got != 5 {
		t.Errorf("neutral rescore sets = %d, want the original 5", got)
	}
}

func TestApplyReadinessAdjustment_setsFloorAtOne(t *testing.T) {
	t.Parallel()
	day := &Day{Work: []Exercise{{Name: "Snatch", Sets: 1, Reps: 1, Pct: 0.55}}}
	ApplyReadinessAdjustment(day, 1)
	if got := day.Work[0].Sets; got != 1 {
		t.Errorf("sets = %d, want floor of 1", got)
	}
	if got := day.Work[0].Pct; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("pct = %v, want the 0.50 floor", got)
	}
}
