package plan

import (
	"math"
	"testing"
)

func TestActionDelta(t *testing.T) {
	t.Parallel()
	tests := []struct {
		action Action
		want   float64
	}{
		{ActionMake, 0.01},
		{ActionBelt, 0.00},
		{ActionHeavy, -0.02},
		{ActionMiss, -0.05},
		{Action(""), 0.00},
	}
	for _, tt := range tests {
		if got := actionDelta(tt.action); got != tt.want {
			t.Errorf("actionDelta(%q) = %v, want %v", tt.action, got, tt.want)
		}
	}
}

func TestWorkSetsOverride(t *testing.T) {
	t.Parallel()
	l := NewDayLog()
	if got := workSetsOverride(l, 0, 5); got != 5 {
		t.Errorf("fallback = %d, want 5", got)
	}
	setOverride(l, 0, func(o *ExerciseOverride) { o.WorkSets = 3 })
	if got := workSetsOverride(l, 0, 5); got != 3 {
		t.Errorf("override = %d, want 3", got)
	}
	if got := workSetsOverride(nil, 0, 0); got != 1 {
		t.Errorf("nil log, zero fallback = %d, want 1", got)
	}
}

func TestCompletionAdjustments_missWithLowerWeight(t *testing.T) {
	t.Parallel()
	p := maxesProfile()
	p.Maxes.Snatch = 125
	p.WorkingMaxes = ComputeWorkingMaxes(p.Maxes)

	day := Day{
		LiftKey: LiftSnatch,
		Work:    []Exercise{{Name: "Snatch", LiftKey: LiftSnatch, Sets: 3, Reps: 2, Pct: 0.80}},
	}
	scheme := BuildSetScheme(day.Work[0], LiftSnatch, p)
	lastWork := len(scheme) - 1
	prescribed := scheme[lastWork].TargetWeight
	if prescribed != 100 {
		t.Fatalf("prescribed last work set = %v, want 100", prescribed)
	}

	l := NewDayLog()
	l.Sets[key(0, lastWork)] = SetRecord{Action: ActionMiss, Weight: 98}

	deltas := completionAdjustments(day, l, p)
	d := deltas[LiftSnatch]

	// A miss contributes -0.0050; lifting 2% under prescription adds a
	// further negative ratio term, and the total stays inside the long-term
	// bound.
	if d > -0.0050 {
		t.Errorf("delta = %v, want at most -0.0050", d)
	}
	ratioTerm := 0.25 * (98.0/100.0 - 1)
	want := -0.0050 + ratioTerm
	if math.Abs(d-want) > 1e-9 {
		t.Errorf("delta = %v, want %v", d, want)
	}
	if d < -maxLiftAdjustment {
		t.Errorf("delta %v exceeds the %v bound", d, maxLiftAdjustment)
	}
}

func TestCompletionAdjustments_ratioTermIsClamped(t *testing.T) {
	t.Parallel()
	p := maxesProfile()
	day := Day{
		LiftKey: LiftSnatch,
		Work:    []Exercise{{Name: "Snatch", LiftKey: LiftSnatch, Sets: 3, Reps: 2, Pct: 0.80}},
	}
	scheme := BuildSetScheme(day.Work[0], LiftSnatch, p)
	lastWork := len(scheme) - 1
	prescribed := scheme[lastWork].TargetWeight

	l := NewDayLog()
	// A wildly overloaded bar still only moves the adjustment by the
	// clamped ratio contribution.
	l.Sets[key(0, lastWork)] = SetRecord{Action: ActionMake, Weight: prescribed * 2}

	deltas := completionAdjustments(day, l, p)
	want := 0.0025 + 0.25*0.02
	if math.Abs(deltas[LiftSnatch]-want) > 1e-9 {
		t.Errorf("delta = %v, want %v", deltas[LiftSnatch], want)
	}
}

func TestCompletionAdjustments_skipsUnkeyedAndUnweighted(t *testing.T) {
	t.Parallel()
	p := maxesProfile()
	day := Day{
		Work: []Exercise{
			{Name: "Plank", Sets: 3, Reps: 1},
			{Name: "Back Extension", Sets: 3, Reps: 10},
		},
	}
	l := NewDayLog()
	l.Sets[key(0, 2)] = SetRecord{Action: ActionMake}
	if deltas := completionAdjustments(day, l, p); len(deltas) != 0 {
		t.Errorf("accessory-only day produced deltas %v", deltas)
	}
}

func TestApplyCompletionAdjustments_staysBounded(t *testing.T) {
	t.Parallel()
	p := DefaultProfile("bounded")
	for i := 0; i < 100; i++ {
		applyCompletionAdjustments(p, map[string]float64{LiftSnatch: -0.0050, LiftCleanJerk: 0.0025})
	}
	if got := p.LiftAdjustments[LiftSnatch]; got != -maxLiftAdjustment {
		t.Errorf("snatch adjustment = %v, want clamped to %v", got, -maxLiftAdjustment)
	}
	if got := p.LiftAdjustments[LiftCleanJerk]; got > maxLiftAdjustment {
		t.Errorf("cj adjustment = %v exceeds %v", got, maxLiftAdjustment)
	}
}
