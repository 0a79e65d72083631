package plan

import (
	"fmt"
	"math"
	"sort"
)

// templatePatterns rotates the main-day templates so snatch and clean & jerk
// volume stays close to 2:1 at every training frequency. Values index into
// the template list built by mainTemplate.
var templatePatterns = map[int][]int{
	1: {0, 1, 3},
	2: {0, 1, 3, 0, 1, 3},
	3: {0, 1, 3},
	4: {0, 1, 0, 1},
	5: {0, 1, 3, 0, 1},
	6: {0, 1, 3, 0, 1, 3},
}

// balancedTemplateIndex picks the template for a main day. One- and two-day
// frequencies rotate the pattern across weeks so single sessions still cycle
// through every emphasis.
func balancedTemplateIndex(dayCount, dayIndex, weekIndex int) int {
	pattern, ok := templatePatterns[dayCount]
	if !ok {
		pattern = templatePatterns[6]
	}
	if dayCount <= 2 {
		offset := (weekIndex * dayCount) % len(pattern)
		return pattern[(dayIndex+offset)%len(pattern)]
	}
	return pattern[dayIndex%len(pattern)]
}

func scaledSets(base int, volFactor float64) int {
	return int(math.Round(float64(base) * volFactor))
}

// mainTemplate builds one of the four main-day session templates with the
// week's variations and loading resolved.
func mainTemplate(templateIndex int, p *Profile, weekIndex, dayIndex int, phase Phase, intensity, volFactor float64) Day {
	switch templateIndex % 4 {
	case 0:
		return Day{
			Title: "Snatch Focus", Kind: DaySnatch, Main: "Snatch", LiftKey: LiftSnatch,
			Work: []Exercise{
				{
					Name:    chooseVariation(FamilySnatch, p, weekIndex, phase, "snatch_main", dayIndex).Name,
					LiftKey: LiftSnatch, Sets: scaledSets(5, volFactor), Reps: 2, Pct: intensity,
				},
				{
					Name:    chooseVariation(FamilyPullSnatch, p, weekIndex, phase, "snatch_pull", dayIndex).Name,
					LiftKey: LiftSnatch, Sets: scaledSets(4, volFactor), Reps: 3,
					Pct: clamp(intensity+pullOffset(phase, LiftSnatch), 0.65, 1.00),
				},
				{
					Name:    chooseVariation(FamilyBackSquat, p, weekIndex, phase, "back_squat", dayIndex).Name,
					LiftKey: LiftBackSquat, Sets: scaledSets(4, volFactor), Reps: 5,
					Pct: clamp(intensity+0.05, 0.55, 0.92),
				},
			},
		}
	case 1:
		return Day{
			Title: "Clean & Jerk Focus", Kind: DayCleanJerk, Main: "Clean & Jerk", LiftKey: LiftCleanJerk,
			Work: []Exercise{
				{
					Name:    chooseVariation(FamilyCleanJerk, p, weekIndex, phase, "cj_main", dayIndex).Name,
					LiftKey: LiftCleanJerk, Sets: scaledSets(5, volFactor), Reps: 1,
					Pct: clamp(intensity+0.05, 0.60, 0.95),
				},
				{
					Name:    chooseVariation(FamilyPullClean, p, weekIndex, phase, "clean_pull", dayIndex).Name,
					LiftKey: LiftCleanJerk, Sets: scaledSets(4, volFactor), Reps: 3,
					Pct: clamp(intensity+pullOffset(phase, LiftCleanJerk), 0.70, 1.05),
				},
				{
					Name:    chooseVariation(FamilyFrontSquat, p, weekIndex, phase, "front_squat", dayIndex).Name,
					LiftKey: LiftFrontSquat, Sets: scaledSets(4, volFactor), Reps: 3,
					Pct: clamp(intensity+0.08, 0.55, 0.92),
				},
			},
		}
	case 2:
		// Legacy template, only reachable through imported blocks.
		press := chooseVariation(FamilyPress, p, weekIndex, phase, "press", dayIndex)
		return Day{
			Title: "Strength + Positions", Kind: DayStrength, Main: "Back Squat", LiftKey: LiftBackSquat,
			Work: []Exercise{
				{
					Name:    chooseVariation(FamilyBackSquat, p, weekIndex, phase, "back_squat_strength", dayIndex).Name,
					LiftKey: LiftBackSquat, Sets: scaledSets(5, volFactor), Reps: 3,
					Pct: clamp(intensity+0.08, 0.55, 0.95),
				},
				{
					Name:    chooseVariation(FamilySnatch, p, weekIndex, phase, "snatch_secondary", dayIndex).Name,
					LiftKey: LiftSnatch, Sets: scaledSets(4, volFactor), Reps: 2,
					Pct: clamp(intensity-0.02, 0.55, 0.90),
				},
				{
					Name:    press.Name,
					LiftKey: press.LiftKey, Sets: scaledSets(4, volFactor), Reps: 5,
					Pct: clamp(intensity-0.12, 0.45, 0.80),
				},
			},
		}
	default:
		press := chooseVariation(FamilyPress, p, weekIndex, phase, "press_accessory", dayIndex)
		return Day{
			Title: "Combined + Squat", Kind: DayCombined, Main: "Both Lifts", LiftKey: LiftSnatch,
			Work: []Exercise{
				{
					Name:    chooseVariation(FamilySnatch, p, weekIndex, phase, "snatch_skill", dayIndex).Name,
					LiftKey: LiftSnatch, Sets: scaledSets(4, volFactor), Reps: 2,
					Pct: clamp(intensity-0.05, 0.55, 0.88),
				},
				{
					Name:    chooseVariation(FamilyCleanJerk, p, weekIndex, phase, "cj_skill", dayIndex).Name,
					LiftKey: LiftCleanJerk, Sets: scaledSets(4, volFactor), Reps: 1,
					Pct: clamp(intensity, 0.60, 0.90),
				},
				{
					Name:    chooseVariation(FamilyBackSquat, p, weekIndex, phase, "back_squat_combined", dayIndex).Name,
					LiftKey: LiftBackSquat, Sets: scaledSets(4, volFactor), Reps: 3,
					Pct: clamp(intensity+0.08, 0.55, 0.95),
				},
				{
					Name:    press.Name,
					LiftKey: press.LiftKey, Sets: scaledSets(3, volFactor), Reps: 5,
					Pct: clamp(intensity-0.15, 0.40, 0.75),
				},
			},
		}
	}
}

// enhanceDescription appends program-specific execution cues to accessory
// descriptions.
func enhanceDescription(desc string, pt ProgramType) string {
	switch pt {
	case ProgramHypertrophy, ProgramPowerbuilding:
		return desc + " | Tempo: 3-1-1-0 (slow eccentric) | RIR: 1-2 (near failure) | Focus: Muscle tension"
	case ProgramCompetition:
		return desc + " | Tempo: Explosive | RIR: 3-4 (technical reserve) | Focus: Speed & quality"
	case ProgramMaximumStrength:
		return desc + " | Tempo: Controlled | RIR: 2-3 | Focus: Stability"
	}
	return desc
}

// accessoryTemplate builds an accessory day with two distinct selections and
// a core finisher.
func accessoryTemplate(p *Profile, weekIndex, dayIndex int, phase Phase, volFactor float64) Day {
	acc1 := chooseVariation(FamilyAccessory, p, weekIndex, phase, "accessory_1", dayIndex)
	acc2 := chooseVariationExcluding(FamilyAccessory, p, weekIndex, phase, "accessory_2", []string{acc1.Name}, dayIndex)

	reps1, reps2 := 5, 8
	if p.ProgramType == ProgramHypertrophy {
		reps1, reps2 = 10, 12
	}

	return Day{
		Title: "Accessory + Core", Kind: DayAccessory, Main: "Accessory",
		Work: []Exercise{
			{
				Name: acc1.Name, LiftKey: acc1.LiftKey, RecommendedPct: acc1.RecommendedPct,
				Description: enhanceDescription(acc1.Description, p.ProgramType),
				Sets:        scaledSets(3, volFactor), Reps: reps1,
			},
			{
				Name: acc2.Name, LiftKey: acc2.LiftKey, RecommendedPct: acc2.RecommendedPct,
				Description: enhanceDescription(acc2.Description, p.ProgramType),
				Sets:        scaledSets(3, volFactor), Reps: reps2,
			},
			{Name: "Core + Mobility", Sets: 1, Reps: 1},
		},
	}
}

// hypertrophyProgression scales accessory volume and proximity to failure
// across a mesocycle.
type hypertrophyProgression struct {
	setMultiplier float64
	rirAdjustment int
}

func hypertrophyProgressionFor(weekIndex int, phase Phase) hypertrophyProgression {
	if phase == PhaseDeload {
		return hypertrophyProgression{setMultiplier: 0.6, rirAdjustment: 2}
	}
	switch weekIndex % 4 {
	case 1:
		return hypertrophyProgression{setMultiplier: 1.0, rirAdjustment: 0}
	case 2:
		return hypertrophyProgression{setMultiplier: 1.2, rirAdjustment: 0}
	case 3:
		return hypertrophyProgression{setMultiplier: 1.2, rirAdjustment: -1}
	default:
		return hypertrophyProgression{setMultiplier: 1.0, rirAdjustment: 1}
	}
}

func makeHypExercise(poolName string, p *Profile, slotKey string, sets, reps, baseRIR int, prog hypertrophyProgression, exclude []string) Exercise {
	v := chooseHypertrophyExercise(poolName, p, slotKey, exclude)
	return Exercise{
		Name:           v.Name,
		Sets:           sets,
		Reps:           reps,
		Tag:            "hypertrophy",
		TargetRIR:      max(0, baseRIR+prog.rirAdjustment),
		LiftKey:        v.LiftKey,
		RecommendedPct: v.RecommendedPct,
		Description:    v.Description,
	}
}

// MakeWeekPlan generates one fully resolved training week for the profile.
func MakeWeekPlan(p *Profile, weekIndex int) Week {
	phase := PhaseForWeek(weekIndex)
	baseI := microIntensityFor(p, phase, weekIndex)
	transI, transV := transitionMultiplier(p, weekIndex)
	intensity := clamp(baseI*transI, minWeekIntensity, maxWeekIntensity)
	volFactor := clamp(volumeFactorFor(p, phase, weekIndex)*transV, minWeekVolume, maxWeekVolume)

	mainDays := append([]int(nil), p.MainDays...)
	if len(mainDays) == 0 {
		mainDays = []int{2, 4, 6}
	}
	sort.Ints(mainDays)
	mainSet := make(map[int]bool, len(mainDays))
	for _, d := range mainDays {
		mainSet[d] = true
	}
	var accessoryDays []int
	for _, d := range p.AccessoryDays {
		if !mainSet[d] {
			accessoryDays = append(accessoryDays, d)
		}
	}
	sort.Ints(accessoryDays)

	var days []Day
	dayCount := len(mainDays)
	for i, dow := range mainDays {
		templateIndex := balancedTemplateIndex(dayCount, i, weekIndex)
		day := mainTemplate(templateIndex, p, weekIndex, i, phase, intensity, volFactor)
		day.Weekday = dow
		days = append(days, day)
	}
	for i, dow := range accessoryDays {
		day := accessoryTemplate(p, weekIndex, dayCount+i, phase, volFactor)
		day.Weekday = dow
		days = append(days, day)
	}

	applyProgramExtras(days, p, weekIndex, phase, intensity, volFactor)
	enforceSessionDuration(days, p.Duration)

	return Week{Index: weekIndex, Phase: phase, Intensity: intensity, VolumeFactor: volFactor, Days: days}
}

// applyProgramExtras appends program-specific assistance work to each
// session: bodybuilding slots for powerbuilding and hypertrophy programs,
// and a support pull or squat for strength programs on longer sessions.
func applyProgramExtras(days []Day, p *Profile, weekIndex int, phase Phase, intensity, volFactor float64) {
	duration := p.Duration
	if duration == 0 {
		duration = 75
	}
	prog := hypertrophyProgressionFor(weekIndex, phase)

	for si := range days {
		s := &days[si]
		switch p.ProgramType {
		case ProgramPowerbuilding:
			baseHypSets := 2
			if phase == PhaseAccumulation || phase == PhaseIntensification {
				baseHypSets = 4
			}
			hypSets := int(math.Round(float64(baseHypSets) * volFactor * prog.setMultiplier))
			hypReps := 8
			if phase == PhaseAccumulation {
				hypReps = 12
			}

			switch s.Kind {
			case DayAccessory:
				s.Title = "Hypertrophy + Pump"
				dayKey := fmt.Sprintf("d%d", si)
				if duration >= 90 {
					sh1 := makeHypExercise(PoolShoulders, p, "hyp_acc_sh1_"+dayKey, hypSets, 10, 2, prog, nil)
					sh2 := makeHypExercise(PoolShoulders, p, "hyp_acc_sh2_"+dayKey, hypSets, 15, 3, prog, []string{sh1.Name})
					s.Work = []Exercise{
						makeHypExercise(PoolUpperPush, p, "hyp_acc_push_"+dayKey, hypSets+1, hypReps, 2, prog, nil),
						makeHypExercise(PoolUpperPull, p, "hyp_acc_pull_"+dayKey, hypSets+1, hypReps, 2, prog, nil),
						sh1,
						sh2,
						makeHypExercise(PoolLowerQuad, p, "hyp_acc_quad_"+dayKey, hypSets, 15, 3, prog, nil),
						makeHypExercise(PoolLowerPosterior, p, "hyp_acc_post_"+dayKey, hypSets, hypReps, 2, prog, nil),
						{Name: "Core Circuit", Sets: 3, Reps: 1, Tag: "core"},
					}
				} else {
					s.Work = []Exercise{
						makeHypExercise(PoolUpperPush, p, "hyp_acc_push_"+dayKey, hypSets, hypReps, 2, prog, nil),
						makeHypExercise(PoolUpperPull, p, "hyp_acc_pull_"+dayKey, hypSets, hypReps, 2, prog, nil),
						makeHypExercise(PoolLowerQuad, p, "hyp_acc_quad_"+dayKey, hypSets, 12, 2, prog, nil),
						{Name: "Core Circuit", Sets: 2, Reps: 1, Tag: "core"},
					}
				}
			case DaySnatch:
				if duration >= 90 {
					s.Work = append(s.Work,
						makeHypExercise(PoolUpperPush, p, "hyp_sn_push", hypSets, hypReps-2, 2, prog, nil),
						makeHypExercise(PoolUpperPull, p, "hyp_sn_pull", hypSets, hypReps-2, 2, prog, nil),
						makeHypExercise(PoolShoulders, p, "hyp_sn_sh", hypSets, hypReps, 2, prog, nil),
						makeHypExercise(PoolArms, p, "hyp_sn_arm", hypSets, hypReps, 2, prog, nil),
					)
				} else {
					s.Work = append(s.Work,
						makeHypExercise(PoolUpperPush, p, "hyp_sn_push", hypSets, 10, 2, prog, nil),
						makeHypExercise(PoolUpperPull, p, "hyp_sn_pull", hypSets, 10, 2, prog, nil),
					)
				}
			case DayCleanJerk:
				if duration >= 90 {
					pull1 := makeHypExercise(PoolUpperPull, p, "hyp_cj_pull1", hypSets, hypReps-2, 2, prog, nil)
					pull2 := makeHypExercise(PoolUpperPull, p, "hyp_cj_pull2", hypSets, hypReps, 2, prog, []string{pull1.Name})
					s.Work = append(s.Work,
						pull1,
						pull2,
						makeHypExercise(PoolShoulders, p, "hyp_cj_sh", hypSets, hypReps, 2, prog, nil),
						makeHypExercise(PoolArms, p, "hyp_cj_arm1", hypSets, hypReps, 3, prog, nil),
					)
				} else {
					s.Work = append(s.Work,
						makeHypExercise(PoolUpperPull, p, "hyp_cj_pull", hypSets, 10, 2, prog, nil),
						makeHypExercise(PoolArms, p, "hyp_cj_arm1", hypSets, 12, 2, prog, nil),
					)
				}
			case DayStrength:
				if duration >= 90 {
					post1 := makeHypExercise(PoolLowerPosterior, p, "hyp_st_post1", hypSets, hypReps-2, 2, prog, nil)
					post2 := makeHypExercise(PoolLowerPosterior, p, "hyp_st_post2", hypSets, hypReps, 2, prog, []string{post1.Name})
					s.Work = append(s.Work,
						post1,
						post2,
						makeHypExercise(PoolLowerQuad, p, "hyp_st_quad", hypSets, hypReps-2, 2, prog, nil),
						Exercise{Name: "Calf Raises", Sets: 4, Reps: 15, Tag: "hypertrophy"},
					)
				} else {
					s.Work = append(s.Work,
						makeHypExercise(PoolLowerPosterior, p, "hyp_st_post1", hypSets, 10, 2, prog, nil),
						Exercise{Name: "Calf Raises", Sets: 3, Reps: 15, Tag: "hypertrophy"},
					)
				}
			}

		case ProgramHypertrophy:
			baseHypSets := 4
			if phase == PhaseAccumulation {
				baseHypSets = 5
			}
			hypSets := int(math.Round(float64(baseHypSets) * volFactor * prog.setMultiplier))
			dayKey := fmt.Sprintf("d%d", si)

			if s.Kind == DayAccessory && duration >= 75 {
				s.Work = append(s.Work,
					makeHypExercise(PoolUpperPush, p, "hyp_acc_extra1_"+dayKey, hypSets, 12, 2, prog, nil),
					makeHypExercise(PoolShoulders, p, "hyp_acc_extra2_"+dayKey, 3, 15, 3, prog, nil),
				)
			} else if duration >= 75 && s.Kind != DayAccessory {
				switch s.Kind {
				case DaySnatch, DayStrength:
					s.Work = append(s.Work,
						makeHypExercise(PoolUpperPush, p, fmt.Sprintf("hyp_%s_push", s.Kind), hypSets, 10, 2, prog, nil),
						makeHypExercise(PoolUpperPull, p, fmt.Sprintf("hyp_%s_pull", s.Kind), hypSets, 10, 2, prog, nil),
					)
				case DayCleanJerk:
					s.Work = append(s.Work,
						makeHypExercise(PoolLowerQuad, p, "hyp_cj_quad", hypSets, 12, 2, prog, nil),
						makeHypExercise(PoolLowerPosterior, p, "hyp_cj_post", hypSets, 10, 2, prog, nil),
					)
				}
			}

		case ProgramStrength:
			if duration >= 75 && s.Kind != DayAccessory {
				var support Variant
				var pullKey string
				switch s.Kind {
				case DaySnatch:
					support = chooseVariation(FamilyPullSnatch, p, weekIndex, phase, string(s.Kind)+"_support", 0)
					pullKey = LiftSnatch
				case DayCleanJerk:
					support = chooseVariation(FamilyPullClean, p, weekIndex, phase, string(s.Kind)+"_support", 0)
					pullKey = LiftCleanJerk
				default:
					support = chooseVariation(FamilyBackSquat, p, weekIndex, phase, string(s.Kind)+"_support", 0)
					pullKey = LiftCleanJerk
				}
				s.Work = append(s.Work, Exercise{
					Name:    support.Name,
					LiftKey: support.LiftKey,
					Sets:    scaledSets(3, volFactor),
					Reps:    3,
					Pct:     clamp(intensity+pullOffset(phase, pullKey), 0.65, 1.05),
					Tag:     "strength",
				})
			}
		}
	}
}

// enforceSessionDuration trims sessions that cannot fit a 60-minute slot:
// accessory days are dropped entirely, main days keep their first three
// exercises with at most five sets each.
func enforceSessionDuration(days []Day, duration int) {
	if duration != 60 {
		return
	}
	for i := range days {
		s := &days[i]
		if s.Kind == DayAccessory {
			s.Work = nil
			continue
		}
		if len(s.Work) > 3 {
			s.Work = s.Work[:3]
		}
		for j := range s.Work {
			if s.Work[j].Sets > 5 {
				s.Work[j].Sets = 5
			}
		}
	}
}
