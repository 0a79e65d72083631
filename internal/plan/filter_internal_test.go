package plan

import (
	"strings"
	"testing"
)

func TestSafeForInjuries(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		injuries []Injury
		want     bool
	}{
		{"Snatch", []Injury{InjuryShoulder}, false},
		{"Power Snatch", []Injury{InjuryShoulder}, true},
		{"Snatch Pull", []Injury{InjuryShoulder}, true},
		{"Overhead Squat", []Injury{InjuryShoulder}, false},
		{"Snatch Balance + OHS", []Injury{InjuryShoulder}, false},
		{"Clean & Jerk", []Injury{InjuryWrist}, false},
		{"Clean Pull", []Injury{InjuryWrist}, true},
		{"Back Squat", []Injury{InjuryKnee}, false},
		{"Pause Back Squat", []Injury{InjuryKnee}, true},
		{"Back Squat", nil, true},
	}
	for _, tt := range tests {
		if got := safeForInjuries(tt.name, tt.injuries); got != tt.want {
			t.Errorf("safeForInjuries(%q, %v) = %v, want %v", tt.name, tt.injuries, got, tt.want)
		}
	}
}

func TestFilteredPool_neverEmpty(t *testing.T) {
	t.Parallel()
	allInjuries := []Injury{
		InjuryShoulder, InjuryWrist, "elbow", InjuryKnee, "back", "hip", "ankle",
	}
	for family := range swapPools {
		p := DefaultProfile("hurt")
		p.Injuries = allInjuries
		p.IncludeBlocks = false
		if pool := filteredPool(family, p); len(pool) == 0 {
			t.Errorf("family %s filtered to an empty pool", family)
		}
	}
}

func TestFilteredPool_fallbackWhenEverythingExcluded(t *testing.T) {
	t.Parallel()
	p := DefaultProfile("wrist")
	// The wrist rule excludes every front squat variation, so the family
	// falls back to its emergency variant.
	p.Injuries = []Injury{InjuryWrist}
	pool := filteredPool(FamilyFrontSquat, p)
	if len(pool) != 1 || pool[0].Name != "Tempo Front Squat" {
		t.Fatalf("pool = %v, want the Tempo Front Squat fallback", pool)
	}
	if pool[0].LiftKey != LiftFrontSquat {
		t.Errorf("fallback lift key = %q, want %q", pool[0].LiftKey, LiftFrontSquat)
	}
}

func TestFilteredPool_blockFilter(t *testing.T) {
	t.Parallel()
	p := DefaultProfile("noblocks")
	p.IncludeBlocks = false
	for _, v := range filteredPool(FamilySnatch, p) {
		if strings.Contains(strings.ToLower(v.Name), "block") {
			t.Errorf("block variation %q survived the filter", v.Name)
		}
	}
}

func TestChooseVariation_respectsInjuries(t *testing.T) {
	t.Parallel()
	p := DefaultProfile("shoulder")
	p.Injuries = []Injury{InjuryShoulder}
	for week := 0; week < 12; week++ {
		v := chooseVariation(FamilySnatch, p, week, PhaseAccumulation, "main", 0)
		if !safeForInjuries(v.Name, p.Injuries) {
			t.Errorf("week %d chose unsafe variation %q", week, v.Name)
		}
	}
}

func TestChooseVariation_competitionBiasDuringIntensification(t *testing.T) {
	t.Parallel()
	p := DefaultProfile("comp")
	p.AthleteMode = ModeCompetition

	primary := 0
	weeks := 40
	for week := 0; week < weeks; week++ {
		v := chooseVariation(FamilySnatch, p, week, PhaseIntensification, "main", 0)
		if v.Name == swapPools[FamilySnatch][0].Name {
			primary++
		}
	}
	// Seven of every ten hash buckets resolve to the primary variation, so
	// over forty weeks a majority must be the competition lift.
	if primary <= weeks/2 {
		t.Errorf("primary variation chosen %d/%d times, want a clear majority", primary, weeks)
	}
}

func TestChooseVariationExcluding(t *testing.T) {
	t.Parallel()
	p := DefaultProfile("excl")
	taken := chooseVariation(FamilyPullSnatch, p, 3, PhaseAccumulation, "pull", 0)
	v := chooseVariationExcluding(FamilyPullSnatch, p, 3, PhaseAccumulation, "pull", []string{taken.Name}, 1)
	if v.Name == taken.Name {
		t.Errorf("exclusion ignored, got %q twice", v.Name)
	}
}

func TestChooseHypertrophyExercise_stableAcrossWeeks(t *testing.T) {
	t.Parallel()
	p := DefaultProfile("hyp")
	p.LastBlockSeed = 99
	first := chooseHypertrophyExercise(PoolUpperPush, p, "slot0", nil)
	for i := 0; i < 5; i++ {
		if got := chooseHypertrophyExercise(PoolUpperPush, p, "slot0", nil); got.Name != first.Name {
			t.Fatalf("selection changed between calls: %q then %q", first.Name, got.Name)
		}
	}
}
