package plan

import "testing"

func boundsProfile(pt ProgramType, mode AthleteMode, trainingAge float64) *Profile {
	p := DefaultProfile("bounds")
	p.Maxes = Maxes{Snatch: 100, CleanJerk: 120, FrontSquat: 140, BackSquat: 160}
	p.WorkingMaxes = ComputeWorkingMaxes(p.Maxes)
	p.ProgramType = pt
	p.AthleteMode = mode
	p.TrainingAge = trainingAge
	p.BlockLength = 12
	return p
}

func TestMakeWeekPlan_intensityAndVolumeBounds(t *testing.T) {
	t.Parallel()
	programs := []ProgramType{
		ProgramGeneral, ProgramCompetition, ProgramMaximumStrength,
		ProgramPowerbuilding, ProgramHypertrophy, ProgramStrength,
	}
	modes := []AthleteMode{ModeRecreational, ModeIntermediate, ModeAdvanced, ModeElite, ModeCompetition}
	ages := []float64{0.5, 1.5, 2.5, 5}

	for _, pt := range programs {
		for _, mode := range modes {
			for _, age := range ages {
				p := boundsProfile(pt, mode, age)
				for week := 0; week < 12; week++ {
					w := MakeWeekPlan(p, week)
					if w.Intensity < minWeekIntensity-1e-9 || w.Intensity > maxWeekIntensity+1e-9 {
						t.Errorf("%s/%s/age %v week %d: intensity %v outside [%v, %v]",
							pt, mode, age, week, w.Intensity, minWeekIntensity, maxWeekIntensity)
					}
					if w.VolumeFactor < minWeekVolume-1e-9 || w.VolumeFactor > maxWeekVolume+1e-9 {
						t.Errorf("%s/%s/age %v week %d: volume %v outside [%v, %v]",
							pt, mode, age, week, w.VolumeFactor, minWeekVolume, maxWeekVolume)
					}
				}
			}
		}
	}
}

func TestMicroIntensityFor_trainingAgeCaps(t *testing.T) {
	t.Parallel()
	// A first-year athlete never trains above 75% regardless of program.
	p := boundsProfile(ProgramMaximumStrength, ModeElite, 0.5)
	for week := 0; week < 12; week++ {
		got := microIntensityFor(p, PhaseForWeek(week), week)
		if got > 0.75+1e-9 {
			t.Errorf("week %d: intensity %v exceeds first-year cap 0.75", week, got)
		}
	}
}

func TestTransitionMultiplier_rampsToFull(t *testing.T) {
	t.Parallel()
	p := DefaultProfile("ramp")
	p.TransitionWeeks = 2
	p.TransitionProfile = TransitionConservative

	i0, v0 := transitionMultiplier(p, 0)
	i1, v1 := transitionMultiplier(p, 1)
	i2, v2 := transitionMultiplier(p, 2)

	if i0 >= i1 || v0 >= v1 {
		t.Errorf("transition does not ramp: week0 (%v, %v), week1 (%v, %v)", i0, v0, i1, v1)
	}
	if i2 != 1.0 || v2 != 1.0 {
		t.Errorf("past the transition window multipliers = (%v, %v), want (1, 1)", i2, v2)
	}
	if i0 < 0.80-1e-9 {
		t.Errorf("conservative intensity floor violated: %v", i0)
	}
	if v0 < 0.70-1e-9 {
		t.Errorf("conservative volume floor violated: %v", v0)
	}
}

func TestPullOffset(t *testing.T) {
	t.Parallel()
	tests := []struct {
		phase   Phase
		liftKey string
		want    float64
	}{
		{PhaseAccumulation, LiftSnatch, 0.05},
		{PhaseAccumulation, LiftCleanJerk, 0.08},
		{PhaseIntensification, LiftSnatch, 0.10},
		{PhaseIntensification, LiftCleanJerk, 0.15},
		{PhaseDeload, LiftSnatch, 0.08},
		{PhaseDeload, LiftCleanJerk, 0.10},
	}
	for _, tt := range tests {
		if got := pullOffset(tt.phase, tt.liftKey); got != tt.want {
			t.Errorf("pullOffset(%s, %s) = %v, want %v", tt.phase, tt.liftKey, got, tt.want)
		}
	}
}
