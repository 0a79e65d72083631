package plan

import "math"

// Intensity and volume bounds enforced on the final weekly values.
const (
	minWeekIntensity = 0.55
	maxWeekIntensity = 0.92
	minWeekVolume    = 0.45
	maxWeekVolume    = 1.10
)

// microIntensityFor computes the base intensity for a week from the program
// curve, then runs it through step loading and the cascading safety caps:
// training age, athlete experience, and an absolute ceiling of 95%.
func microIntensityFor(p *Profile, phase Phase, weekIndex int) float64 {
	blockLength := p.BlockLength
	if blockLength <= 0 {
		blockLength = 8
	}
	progressRatio := 0.0
	if blockLength > 1 {
		progressRatio = float64(weekIndex) / float64(blockLength-1)
	}

	trainingAgeCap := 1.00
	switch {
	case p.TrainingAge < 1:
		trainingAgeCap = 0.75
	case p.TrainingAge < 2:
		trainingAgeCap = 0.85
	case p.TrainingAge < 3:
		trainingAgeCap = 0.90
	}

	experienceCap := 0.88
	switch p.AthleteMode {
	case ModeAdvanced, ModeElite:
		experienceCap = 0.95
	case ModeIntermediate, ModeCompetition:
		experienceCap = 0.92
	}

	base := 0.70
	switch p.ProgramType {
	case ProgramCompetition:
		// Power-curve ramp from 70% toward 95% across the block.
		base = 0.70 + 0.25*math.Pow(progressRatio, 0.8)
	case ProgramMaximumStrength:
		base = 0.80 + 0.15*progressRatio
	case ProgramPowerbuilding:
		base = 0.70 + 0.13*progressRatio
	case ProgramHypertrophy:
		base = 0.68 + 0.12*progressRatio
	default:
		switch phase {
		case PhaseAccumulation:
			base = 0.70 + 0.10*progressRatio
		case PhaseIntensification:
			base = 0.78 + 0.10*progressRatio
		default:
			base = 0.60
		}
	}

	intensity := stepLoadingIntensity(weekIndex, phase, base, p.AthleteMode)

	intensity = math.Min(intensity, trainingAgeCap)
	intensity = math.Min(intensity, experienceCap)
	intensity = math.Min(intensity, 0.95)
	return intensity
}

// volumeFactorFor computes the weekly volume factor from the athlete's
// volume preference, the step-loading multiplier and a masters age de-rate.
func volumeFactorFor(p *Profile, phase Phase, weekIndex int) float64 {
	base := 1.0
	switch p.VolumePref {
	case VolumeMinimal:
		base = 0.70
	case VolumeReduced:
		base = 0.85
	case VolumeStandard:
		base = 1.0
	case VolumeHigh:
		base = 1.15
	}

	ageMult := 1.0
	switch {
	case p.Age >= 50:
		ageMult = 0.85
	case p.Age >= 40:
		ageMult = 0.90
	}

	return base * stepLoadingMultiplier(weekIndex, phase) * ageMult
}

// transitionMultiplier ramps intensity and volume up over the first weeks of
// a block. Outside the transition window both multipliers are 1.
func transitionMultiplier(p *Profile, weekIndex int) (intensity, volume float64) {
	tw := p.TransitionWeeks
	if tw <= 0 || weekIndex >= tw {
		return 1, 1
	}
	t := float64(weekIndex+1) / float64(tw)
	minI, minV := 0.85, 0.80
	switch p.TransitionProfile {
	case TransitionConservative:
		minI, minV = 0.80, 0.70
	case TransitionAggressive:
		minI, minV = 0.90, 0.90
	}
	return minI + (1-minI)*t, minV + (1-minV)*t
}

// pullOffset returns how far above the week's intensity pulls are loaded.
// Snatch pulls stay lighter than clean pulls; both climb as the phase
// shifts from volume toward strength work.
func pullOffset(phase Phase, liftKey string) float64 {
	snatch := liftKey == LiftSnatch
	switch phase {
	case PhaseAccumulation:
		if snatch {
			return 0.05
		}
		return 0.08
	case PhaseIntensification:
		if snatch {
			return 0.10
		}
		return 0.15
	default:
		if snatch {
			return 0.08
		}
		return 0.10
	}
}
