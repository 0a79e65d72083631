package plan

import (
	"fmt"
	"strings"
)

// Long-term per-lift adjustments are bounded so one bad session can never
// swing prescriptions by more than five percent.
const maxLiftAdjustment = 0.05

// Press maxes can be estimated from the clean & jerk when not tested.
const (
	pushPressRatio   = 0.70
	strictPressRatio = 0.55
)

// variationRatios scale the true max down for lighter single variations.
// Complexes never use these: the limiting component is the primary lift.
var variationRatios = []struct {
	substring string
	ratio     float64
}{
	{"hang power snatch", 0.80},
	{"power snatch", 0.88},
	{"power clean", 0.90},
	{"overhead squat", 0.85},
	{"hang snatch", 0.95},
	{"hang clean", 0.95},
}

// customMaxAliases maps variation names to optional tested maxes in Maxes.
var customMaxAliases = []struct {
	substring string
	get       func(Maxes) *float64
}{
	{"hang power snatch", func(m Maxes) *float64 { return m.HangPowerSnatch }},
	{"power snatch", func(m Maxes) *float64 { return m.PowerSnatch }},
	{"power clean", func(m Maxes) *float64 { return m.PowerClean }},
	{"overhead squat", func(m Maxes) *float64 { return m.OverheadSquat }},
	{"hang snatch", func(m Maxes) *float64 { return m.HangSnatch }},
	{"hang clean", func(m Maxes) *float64 { return m.HangClean }},
}

// isComplex reports whether an exercise is a multi-movement complex.
// Complexes are written with a "+" between movements.
func isComplex(name string) bool {
	return strings.Contains(name, "+")
}

func cappedAdjustment(p *Profile, liftKey string) float64 {
	adj := p.LiftAdjustments[liftKey]
	return clamp(adj, -maxLiftAdjustment, maxLiftAdjustment)
}

// adjustedWorkingMax returns the working max for a lift with the long-term
// adjustment applied, estimating press maxes from the clean & jerk when the
// athlete never tested them.
func adjustedWorkingMax(p *Profile, liftKey string) float64 {
	base := p.WorkingMaxes[liftKey]

	if base == 0 && (liftKey == LiftPushPress || liftKey == LiftStrictPress) {
		cj := p.WorkingMaxes[LiftCleanJerk]
		if cj > 0 {
			ratio := strictPressRatio
			if liftKey == LiftPushPress {
				ratio = pushPressRatio
			}
			estimated := roundTo(cj*ratio, 1)
			return estimated * (1 + cappedAdjustment(p, liftKey))
		}
	}

	return base * (1 + cappedAdjustment(p, liftKey))
}

// baseForExercise resolves the reference weight an exercise's percentages
// apply to. Complexes use the primary lift's true max reduced by 5% for the
// cumulative fatigue of chained movements; single variations prefer a tested
// custom max, then a ratio of the true max.
func baseForExercise(name, liftKey string, p *Profile) float64 {
	if isComplex(name) {
		return baseForExerciseSingle(name, liftKey, p, true) * 0.95
	}
	return baseForExerciseSingle(name, liftKey, p, false)
}

func baseForExerciseSingle(name, liftKey string, p *Profile, complex bool) float64 {
	nameLower := strings.ToLower(name)

	if !complex {
		for _, alias := range customMaxAliases {
			if strings.Contains(nameLower, alias.substring) {
				if custom := alias.get(p.Maxes); custom != nil && *custom > 0 {
					return *custom * (1 + cappedAdjustment(p, liftKey))
				}
				break
			}
		}
	}

	trueMax := p.Maxes.Of(liftKey)
	if trueMax == 0 && (liftKey == LiftPushPress || liftKey == LiftStrictPress) {
		return adjustedWorkingMax(p, liftKey)
	}

	ratio := 1.0
	if !complex {
		for _, vr := range variationRatios {
			if strings.Contains(nameLower, vr.substring) {
				ratio = vr.ratio
				break
			}
		}
	}

	return trueMax * ratio * (1 + cappedAdjustment(p, liftKey))
}

// warmupLadder is the percentage ladder prepended to main movements.
var warmupLadder = []float64{0.40, 0.50, 0.60, 0.70}

// mainishMovements marks exercises that get a warm-up ladder.
var mainishMovements = []string{"snatch", "clean", "jerk", "squat", "pull"}

func isMainish(name string) bool {
	nameLower := strings.ToLower(name)
	for _, m := range mainishMovements {
		if strings.Contains(nameLower, m) {
			return true
		}
	}
	return false
}

// BuildSetScheme expands an exercise prescription into concrete sets:
// warm-up ladder steps strictly below the target for main movements, then
// the working sets. An unknown base max yields zero target weights rather
// than an error, so bodyweight work flows through the same path.
func BuildSetScheme(ex Exercise, liftKey string, p *Profile) []SetSpec {
	targetPct := ex.Pct
	if targetPct == 0 {
		targetPct = ex.RecommendedPct
	}
	base := 0.0
	if liftKey != "" {
		base = baseForExercise(ex.Name, liftKey, p)
	}

	var sets []SetSpec
	pushSet := func(pct float64, reps int, tag SetTag) {
		w := 0.0
		if base > 0 && pct > 0 {
			w = roundTo(base*pct, 1)
		}
		sets = append(sets, SetSpec{TargetPct: pct, TargetReps: reps, Tag: tag, TargetWeight: w})
	}

	if targetPct > 0 && liftKey != "" && isMainish(ex.Name) {
		warmupReps := min(3, max(1, ex.Reps))
		for _, pct := range warmupLadder {
			// A rung closer than five points to the first work set warms
			// nothing up, it is just an extra work set.
			if pct < targetPct-0.05 {
				pushSet(pct, warmupReps, TagWarmup)
			}
		}
	}
	for i := 0; i < ex.Sets; i++ {
		pushSet(targetPct, ex.Reps, TagWork)
	}
	return sets
}

// cumulativeAdjustment sums the in-session weight deltas from prior work-set
// actions plus the day's manual weight offset for the exercise.
func cumulativeAdjustment(dayLog *DayLog, exIndex, setIndex int, scheme []SetSpec) float64 {
	d := weightOffsetOverride(dayLog, exIndex)
	for i := 0; i < setIndex && i < len(scheme); i++ {
		if scheme[i].Tag != TagWork {
			continue
		}
		rec, ok := dayLog.Sets[fmt.Sprintf("%d:%d", exIndex, i)]
		if ok && rec.Action != "" {
			d += actionDelta(rec.Action)
		}
	}
	return d
}
