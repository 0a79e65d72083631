package plan

import "fmt"

// Two separate feedback tables operate at different time scales. The
// in-session deltas react immediately to the last few sets; the completion
// deltas nudge the long-term lift adjustment by fractions of a percent.

// actionDelta is the within-session weight change following a set action.
func actionDelta(a Action) float64 {
	switch a {
	case ActionMake:
		return 0.01
	case ActionBelt:
		return 0.00
	case ActionHeavy:
		return -0.02
	case ActionMiss:
		return -0.05
	default:
		return 0.00
	}
}

// completionDelta is the cross-session contribution of a final work set's
// action to the lift's long-term adjustment.
func completionDelta(a Action) float64 {
	switch a {
	case ActionMake:
		return 0.0025
	case ActionBelt:
		return 0.0010
	case ActionHeavy:
		return -0.0015
	case ActionMiss:
		return -0.0050
	default:
		return 0.0
	}
}

// Manual per-exercise weight offsets are limited to ±10%.
const maxWeightOffset = 0.10

func workSetsOverride(dayLog *DayLog, exIndex, fallbackSets int) int {
	if dayLog != nil {
		if o, ok := dayLog.Overrides[exIndex]; ok && o.WorkSets > 0 {
			return max(1, o.WorkSets)
		}
	}
	return max(1, fallbackSets)
}

func weightOffsetOverride(dayLog *DayLog, exIndex int) float64 {
	if dayLog == nil {
		return 0
	}
	o, ok := dayLog.Overrides[exIndex]
	if !ok {
		return 0
	}
	return clamp(o.WeightOffset, -maxWeightOffset, maxWeightOffset)
}

func setOverride(dayLog *DayLog, exIndex int, mutate func(*ExerciseOverride)) {
	if dayLog.Overrides == nil {
		dayLog.Overrides = map[int]ExerciseOverride{}
	}
	o := dayLog.Overrides[exIndex]
	mutate(&o)
	dayLog.Overrides[exIndex] = o
}

// completionAdjustments computes the per-lift long-term adjustment deltas
// for a completed day. For each percentage-based exercise the final work
// set's action feeds the completion table, and the performed-to-prescribed
// weight ratio contributes a small correction.
func completionAdjustments(day Day, dayLog *DayLog, p *Profile) map[string]float64 {
	deltas := map[string]float64{}
	for exIndex, ex := range day.Work {
		liftKey := ex.LiftKey
		if liftKey == "" {
			liftKey = day.LiftKey
		}
		if liftKey == "" || ex.Pct == 0 {
			continue
		}

		effective := ex
		effective.Sets = workSetsOverride(dayLog, exIndex, ex.Sets)
		scheme := BuildSetScheme(effective, liftKey, p)

		lastWork := -1
		for i := len(scheme) - 1; i >= 0; i-- {
			if scheme[i].Tag == TagWork {
				lastWork = i
				break
			}
		}
		if lastWork < 0 {
			continue
		}

		rec := dayLog.Sets[fmt.Sprintf("%d:%d", exIndex, lastWork)]
		d := completionDelta(rec.Action)

		adj := cumulativeAdjustment(dayLog, exIndex, lastWork, scheme)
		prescribed := 0.0
		if scheme[lastWork].TargetWeight > 0 {
			prescribed = roundTo(scheme[lastWork].TargetWeight*(1+adj), 1)
		}
		if rec.Weight > 0 && prescribed > 0 {
			ratio := rec.Weight/prescribed - 1
			d += 0.25 * clamp(ratio, -0.02, 0.02)
		}

		deltas[liftKey] += d
	}
	return deltas
}

// applyCompletionAdjustments folds the deltas into the profile's long-term
// lift adjustments, each staying within ±5%.
func applyCompletionAdjustments(p *Profile, deltas map[string]float64) {
	if p.LiftAdjustments == nil {
		p.LiftAdjustments = map[string]float64{}
	}
	for liftKey, d := range deltas {
		p.LiftAdjustments[liftKey] = clamp(p.LiftAdjustments[liftKey]+d, -maxLiftAdjustment, maxLiftAdjustment)
	}
}
