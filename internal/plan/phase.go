package plan

// Step-loading mesocycle: three loading weeks followed by one deload,
// repeating for the length of the block.

// PhaseForWeek classifies a zero-based week index within its mesocycle.
func PhaseForWeek(weekIndex int) Phase {
	switch weekIndex % 4 {
	case 3:
		return PhaseDeload
	case 0, 1:
		return PhaseAccumulation
	default:
		return PhaseIntensification
	}
}

// stepLoadingMultiplier returns the volume multiplier for a week: reduced on
// deloads, slightly raised on the second accumulation week, peaked before
// the deload, and growing 2.5% per completed mesocycle.
func stepLoadingMultiplier(weekIndex int, phase Phase) float64 {
	mesocycleWeek := weekIndex % 4
	mesocycleNumber := weekIndex / 4

	mult := 1.0
	switch phase {
	case PhaseDeload:
		mult = 0.80
	case PhaseAccumulation:
		if mesocycleWeek == 0 {
			mult = 1.0
		} else {
			mult = 1.05
		}
	case PhaseIntensification:
		mult = 1.10
	}

	return mult * (1 + float64(mesocycleNumber)*0.025)
}

// stepLoadingIntensity modulates a base intensity through the mesocycle and
// caps it by experience. Each mesocycle starts 2.5% higher than the last.
func stepLoadingIntensity(weekIndex int, phase Phase, baseIntensity float64, mode AthleteMode) float64 {
	mesocycleNumber := weekIndex / 4

	ceiling := 0.88
	switch mode {
	case ModeAdvanced, ModeElite:
		ceiling = 0.95
	case ModeIntermediate, ModeCompetition:
		ceiling = 0.92
	}

	intensity := baseIntensity
	switch phase {
	case PhaseDeload:
		intensity = baseIntensity * 0.90
	case PhaseIntensification:
		intensity = baseIntensity * 1.05
	}

	intensity += float64(mesocycleNumber) * 0.025

	if intensity > ceiling {
		intensity = ceiling
	}
	return intensity
}
