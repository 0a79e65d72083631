package plan

import (
	"fmt"
	"strings"
)

// InferSwapFamily classifies an exercise into a swap family from its name
// and lift key. Pull variations split by lift, squats by rack position, and
// anything unrecognized swaps within the accessory pool.
func InferSwapFamily(name, liftKey string) string {
	n := strings.ToLower(name)
	lk := strings.ToLower(liftKey)
	switch {
	case strings.Contains(n, "pull"):
		if lk == LiftSnatch {
			return FamilyPullSnatch
		}
		return FamilyPullClean
	case strings.Contains(n, "squat"):
		if strings.Contains(n, "front") || lk == LiftFrontSquat {
			return FamilyFrontSquat
		}
		return FamilyBackSquat
	case strings.Contains(n, "press"), strings.Contains(n, "jerk dip"):
		return FamilyPress
	case strings.Contains(n, "snatch"):
		return FamilySnatch
	case strings.Contains(n, "clean"), strings.Contains(n, "jerk"):
		return FamilyCleanJerk
	default:
		return FamilyAccessory
	}
}

// SwapOptions returns the variations an exercise may be swapped to.
// Recognized accessory exercises swap within their movement category;
// barbell lifts swap within their family pool.
func SwapOptions(ex Exercise, day Day) []Variant {
	liftKey := ex.LiftKey
	if liftKey == "" {
		liftKey = day.LiftKey
	}

	if category, ok := exerciseCategories[ex.Name]; ok {
		names := accessoryDatabase[category]
		options := make([]Variant, 0, len(names))
		for _, name := range names {
			options = append(options, Variant{Name: name})
		}
		return options
	}

	family := InferSwapFamily(ex.Name, liftKey)
	return append([]Variant(nil), swapPools[family]...)
}

// ClearExerciseLogs drops every logged set and override for one exercise
// index within a day log. Used whenever an edit invalidates what was
// already logged.
func ClearExerciseLogs(dayLog *DayLog, exIndex int) {
	if dayLog == nil {
		return
	}
	prefix := fmt.Sprintf("%d:", exIndex)
	for k := range dayLog.Sets {
		if strings.HasPrefix(k, prefix) {
			delete(dayLog.Sets, k)
		}
	}
	delete(dayLog.Overrides, exIndex)
}

// SwapExercise replaces the exercise at exIndex with a variation, keeping
// the set and rep prescription, and clears its logs.
func SwapExercise(day *Day, dayLog *DayLog, exIndex int, to Variant) error {
	if exIndex < 0 || exIndex >= len(day.Work) {
		return fmt.Errorf("exercise index %d out of range", exIndex)
	}
	ex := &day.Work[exIndex]
	ex.Name = to.Name
	if to.LiftKey != "" {
		ex.LiftKey = to.LiftKey
	}
	if to.RecommendedPct > 0 {
		ex.RecommendedPct = to.RecommendedPct
	}
	if to.Description != "" {
		ex.Description = to.Description
	}
	ClearExerciseLogs(dayLog, exIndex)
	return nil
}

// RemoveExercise deletes the exercise at exIndex and shifts the remaining
// logs down so they stay attached to the right exercises.
func RemoveExercise(day *Day, dayLog *DayLog, exIndex int) error {
	if exIndex < 0 || exIndex >= len(day.Work) {
		return fmt.Errorf("exercise index %d out of range", exIndex)
	}
	day.Work = append(day.Work[:exIndex], day.Work[exIndex+1:]...)
	if dayLog == nil {
		return nil
	}

	reindexed := map[string]SetRecord{}
	for k, rec := range dayLog.Sets {
		var ei, si int
		if _, err := fmt.Sscanf(k, "%d:%d", &ei, &si); err != nil {
			continue
		}
		switch {
		case ei == exIndex:
			// dropped
		case ei > exIndex:
			reindexed[fmt.Sprintf("%d:%d", ei-1, si)] = rec
		default:
			reindexed[k] = rec
		}
	}
	dayLog.Sets = reindexed

	if dayLog.Overrides != nil {
		shifted := map[int]ExerciseOverride{}
		for ei, o := range dayLog.Overrides {
			switch {
			case ei == exIndex:
			case ei > exIndex:
				shifted[ei-1] = o
			default:
				shifted[ei] = o
			}
		}
		dayLog.Overrides = shifted
	}
	return nil
}

// MoveExercise reorders the exercise at fromIndex to toIndex and relocates
// logs and overrides so each stays attached to the exercise it was recorded
// against.
func MoveExercise(day *Day, dayLog *DayLog, fromIndex, toIndex int) error {
	if fromIndex < 0 || fromIndex >= len(day.Work) {
		return fmt.Errorf("exercise index %d out of range", fromIndex)
	}
	if toIndex < 0 || toIndex >= len(day.Work) {
		return fmt.Errorf("exercise index %d out of range", toIndex)
	}
	if fromIndex == toIndex {
		return nil
	}

	moved := day.Work[fromIndex]
	day.Work = append(day.Work[:fromIndex], day.Work[fromIndex+1:]...)
	day.Work = append(day.Work[:toIndex], append([]Exercise{moved}, day.Work[toIndex:]...)...)

	remap := func(ei int) int {
		switch {
		case ei == fromIndex:
			return toIndex
		case fromIndex < toIndex && ei > fromIndex && ei <= toIndex:
			return ei - 1
		case fromIndex > toIndex && ei >= toIndex && ei < fromIndex:
			return ei + 1
		default:
			return ei
		}
	}

	if dayLog == nil {
		return nil
	}
	relocated := map[string]SetRecord{}
	for k, rec := range dayLog.Sets {
		var ei, si int
		if _, err := fmt.Sscanf(k, "%d:%d", &ei, &si); err != nil {
			continue
		}
		relocated[fmt.Sprintf("%d:%d", remap(ei), si)] = rec
	}
	dayLog.Sets = relocated

	if dayLog.Overrides != nil {
		shifted := map[int]ExerciseOverride{}
		for ei, o := range dayLog.Overrides {
			shifted[remap(ei)] = o
		}
		dayLog.Overrides = shifted
	}
	return nil
}

// AddExercise appends an exercise to a day.
func AddExercise(day *Day, ex Exercise) {
	if ex.Sets < 1 {
		ex.Sets = 1
	}
	if ex.Reps < 1 {
		ex.Reps = 1
	}
	day.Work = append(day.Work, ex)
}

// SetWorkSets overrides the number of working sets for an exercise and
// drops logs for sets past the new count.
func SetWorkSets(day Day, dayLog *DayLog, exIndex, workSets int, p *Profile) error {
	if exIndex < 0 || exIndex >= len(day.Work) {
		return fmt.Errorf("exercise index %d out of range", exIndex)
	}
	workSets = max(1, workSets)
	setOverride(dayLog, exIndex, func(o *ExerciseOverride) { o.WorkSets = workSets })

	ex := day.Work[exIndex]
	liftKey := ex.LiftKey
	if liftKey == "" {
		liftKey = day.LiftKey
	}
	ex.Sets = workSets
	scheme := BuildSetScheme(ex, liftKey, p)
	for k := range dayLog.Sets {
		var ei, si int
		if _, err := fmt.Sscanf(k, "%d:%d", &ei, &si); err != nil {
			continue
		}
		if ei == exIndex && si >= len(scheme) {
			delete(dayLog.Sets, k)
		}
	}
	return nil
}

// SetWeightOffset stores a manual weight offset for an exercise, clamped
// to ±10%.
func SetWeightOffset(dayLog *DayLog, exIndex int, offset float64) {
	offset = clamp(offset, -maxWeightOffset, maxWeightOffset)
	setOverride(dayLog, exIndex, func(o *ExerciseOverride) { o.WeightOffset = offset })
}
