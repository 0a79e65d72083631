package plan

// Variant is a selectable exercise variation within a pool.
type Variant struct {
	Name           string
	LiftKey        string
	RecommendedPct float64
	Description    string
}

// Swap family identifiers.
const (
	FamilySnatch     = "snatch"
	FamilyCleanJerk  = "cj"
	FamilyPullSnatch = "pull_snatch"
	FamilyPullClean  = "pull_clean"
	FamilyBackSquat  = "bs"
	FamilyFrontSquat = "fs"
	FamilyPress      = "press"
	FamilyAccessory  = "accessory"
)

// swapPools holds every selectable variation grouped by movement family.
// Pool order matters: index 0 is the fallback and the competition-specific
// preference, and the selector's index arithmetic depends on pool length.
var swapPools = map[string][]Variant{
	FamilySnatch: {
		{Name: "Snatch", LiftKey: LiftSnatch},
		{Name: "Power Snatch", LiftKey: LiftSnatch},
		{Name: "Hang Snatch (knee)", LiftKey: LiftSnatch},
		{Name: "Hang Power Snatch", LiftKey: LiftSnatch},
		{Name: "Block Snatch (knee)", LiftKey: LiftSnatch},
		{Name: "Pause Snatch (2s)", LiftKey: LiftSnatch},
		{Name: "Snatch from Blocks (mid-thigh)", LiftKey: LiftSnatch},
		{Name: "Muscle Snatch", LiftKey: LiftSnatch},
		{Name: "Snatch High Pull + Hang Snatch + OHS", LiftKey: LiftSnatch},
		{Name: "Snatch (pause at knee) + Snatch", LiftKey: LiftSnatch},
		{Name: "Hang Snatch (above knee) + Snatch", LiftKey: LiftSnatch},
		{Name: "Snatch + OHS (pause)", LiftKey: LiftSnatch},
		{Name: "Muscle Snatch + OHS", LiftKey: LiftSnatch},
		{Name: "Tall Snatch + Snatch", LiftKey: LiftSnatch},
		{Name: "Low Hang Snatch + Hang Snatch + Snatch", LiftKey: LiftSnatch},
		{Name: "Hip Snatch + Hang Snatch + Snatch", LiftKey: LiftSnatch},
		{Name: "Snatch Balance + OHS", LiftKey: LiftSnatch},
		{Name: "Snatch Pull + Snatch", LiftKey: LiftSnatch},
		{Name: "Snatch Pull + Hang Snatch + Snatch", LiftKey: LiftSnatch},
		{Name: "Snatch High Pull + Snatch", LiftKey: LiftSnatch},
		{Name: "Segment Snatch Pull + Snatch", LiftKey: LiftSnatch},
		{Name: "Halting Snatch Deadlift + Snatch Pull + Snatch", LiftKey: LiftSnatch},
		{Name: "Snatch + Snatch (1+1)", LiftKey: LiftSnatch},
		{Name: "Power Snatch + Snatch", LiftKey: LiftSnatch},
		{Name: "Block Snatch + Snatch", LiftKey: LiftSnatch},
	},
	FamilyCleanJerk: {
		{Name: "Clean & Jerk", LiftKey: LiftCleanJerk},
		{Name: "Power Clean + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Hang Clean (knee) + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Clean + Push Jerk", LiftKey: LiftCleanJerk},
		{Name: "Clean + Power Jerk", LiftKey: LiftCleanJerk},
		{Name: "Block Clean (knee) + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Power Jerk from Rack", LiftKey: LiftCleanJerk},
		{Name: "Hang Power Clean + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Clean Pull + Hang Clean + Front Squat", LiftKey: LiftCleanJerk},
		{Name: "Clean (pause at knee) + Clean", LiftKey: LiftCleanJerk},
		{Name: "Hang Clean (above knee) + Clean", LiftKey: LiftCleanJerk},
		{Name: "Tall Clean + Clean", LiftKey: LiftCleanJerk},
		{Name: "Low Hang Clean + Hang Clean + Clean", LiftKey: LiftCleanJerk},
		{Name: "Hip Clean + Hang Clean + Clean", LiftKey: LiftCleanJerk},
		{Name: "Clean + Front Squat", LiftKey: LiftCleanJerk},
		{Name: "Clean + Front Squat + Clean", LiftKey: LiftCleanJerk},
		{Name: "Clean + Front Squat (2 reps)", LiftKey: LiftCleanJerk},
		{Name: "Clean + Front Squat + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Clean Pull + Clean + Front Squat", LiftKey: LiftCleanJerk},
		{Name: "Jerk Dip Squat (pause) + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Power Jerk + Split Jerk", LiftKey: LiftCleanJerk},
		{Name: "Pause Jerk + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Split Jerk + Jerk Balance", LiftKey: LiftCleanJerk},
		{Name: "Jerk from Blocks + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Clean + Jerk + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Clean + Jerk (1+1)", LiftKey: LiftCleanJerk},
		{Name: "Power Clean + Clean + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Block Clean + Clean + Jerk", LiftKey: LiftCleanJerk},
		{Name: "Tempo Clean (3s) + Clean", LiftKey: LiftCleanJerk},
	},
	FamilyPullSnatch: {
		{Name: "Snatch Pull", LiftKey: LiftSnatch},
		{Name: "Snatch High Pull", LiftKey: LiftSnatch},
		{Name: "Deficit Snatch Pull", LiftKey: LiftSnatch},
		{Name: "Halting Snatch Pull", LiftKey: LiftSnatch},
	},
	FamilyPullClean: {
		{Name: "Clean Pull", LiftKey: LiftCleanJerk},
		{Name: "Clean High Pull", LiftKey: LiftCleanJerk},
		{Name: "Deficit Clean Pull", LiftKey: LiftCleanJerk},
		{Name: "Halting Clean Pull", LiftKey: LiftCleanJerk},
	},
	FamilyBackSquat: {
		{Name: "Back Squat", LiftKey: LiftBackSquat},
		{Name: "Pause Back Squat", LiftKey: LiftBackSquat},
		{Name: "Tempo Back Squat", LiftKey: LiftBackSquat},
	},
	FamilyFrontSquat: {
		{Name: "Front Squat", LiftKey: LiftFrontSquat},
		{Name: "Pause Front Squat", LiftKey: LiftFrontSquat},
		{Name: "Tempo Front Squat", LiftKey: LiftFrontSquat},
	},
	FamilyPress: {
		{Name: "Push Press", LiftKey: LiftPushPress},
		{Name: "Strict Press", LiftKey: LiftStrictPress},
		{Name: "Behind-the-Neck Push Press", LiftKey: LiftPushPress},
		{Name: "Jerk Dip + Drive", LiftKey: LiftCleanJerk},
	},
	FamilyAccessory: {
		{Name: "RDL", LiftKey: LiftBackSquat, RecommendedPct: 0.60, Description: "~60% of Back Squat"},
		{Name: "Good Morning", LiftKey: LiftBackSquat, RecommendedPct: 0.50, Description: "~50% of Back Squat"},
		{Name: "Bulgarian Split Squat", LiftKey: LiftBackSquat, RecommendedPct: 0.55, Description: "~55% of Back Squat"},
		{Name: "Row", LiftKey: LiftBackSquat, RecommendedPct: 0.30, Description: "~30% of Back Squat"},
		{Name: "Pull-up", Description: "Bodyweight or add load"},
		{Name: "Plank", Description: "Bodyweight hold"},
		{Name: "Back Extension", LiftKey: LiftBackSquat, RecommendedPct: 0.40, Description: "~40% of Back Squat"},
	},
}

// Hypertrophy pool identifiers.
const (
	PoolUpperPush      = "upperPush"
	PoolUpperPull      = "upperPull"
	PoolShoulders      = "shoulders"
	PoolArms           = "arms"
	PoolLowerPosterior = "lowerPosterior"
	PoolLowerQuad      = "lowerQuad"
)

// hypertrophyPools maps bodybuilding slots to exercises with load guidance
// relative to the back squat.
var hypertrophyPools = map[string][]Variant{
	PoolUpperPush: {
		{Name: "Dumbbell Bench Press", LiftKey: LiftBackSquat, RecommendedPct: 0.22, Description: "~22% of BS per hand"},
		{Name: "Incline Dumbbell Press", LiftKey: LiftBackSquat, RecommendedPct: 0.20, Description: "~20% of BS per hand"},
		{Name: "Dips", Description: "Bodyweight or add load"},
		{Name: "Overhead Dumbbell Press", LiftKey: LiftBackSquat, RecommendedPct: 0.15, Description: "~15% of BS per hand"},
		{Name: "Landmine Press", LiftKey: LiftBackSquat, RecommendedPct: 0.30, Description: "~30% of BS"},
	},
	PoolUpperPull: {
		{Name: "Barbell Row", LiftKey: LiftBackSquat, RecommendedPct: 0.40, Description: "~40% of BS"},
		{Name: "Pull-ups", Description: "Bodyweight or add load"},
		{Name: "Lat Pulldown", LiftKey: LiftBackSquat, RecommendedPct: 0.35, Description: "~35% of BS"},
		{Name: "Cable Row", LiftKey: LiftBackSquat, RecommendedPct: 0.35, Description: "~35% of BS"},
		{Name: "T-Bar Row", LiftKey: LiftBackSquat, RecommendedPct: 0.40, Description: "~40% of BS"},
		{Name: "Single-Arm Dumbbell Row", LiftKey: LiftBackSquat, RecommendedPct: 0.18, Description: "~18% of BS per hand"},
	},
	PoolShoulders: {
		{Name: "Lateral Raise", LiftKey: LiftBackSquat, RecommendedPct: 0.06, Description: "~6% of BS per hand"},
		{Name: "Face Pull", LiftKey: LiftBackSquat, RecommendedPct: 0.15, Description: "~15% of BS"},
		{Name: "Rear Delt Fly", LiftKey: LiftBackSquat, RecommendedPct: 0.05, Description: "~5% of BS per hand"},
		{Name: "Front Raise", LiftKey: LiftBackSquat, RecommendedPct: 0.06, Description: "~6% of BS per hand"},
		{Name: "Cable Lateral Raise", LiftKey: LiftBackSquat, RecommendedPct: 0.06, Description: "~6% of BS per hand"},
	},
	PoolArms: {
		{Name: "Barbell Curl", LiftKey: LiftBackSquat, RecommendedPct: 0.25, Description: "~25% of BS"},
		{Name: "Hammer Curl", LiftKey: LiftBackSquat, RecommendedPct: 0.12, Description: "~12% of BS per hand"},
		{Name: "Tricep Extension", LiftKey: LiftBackSquat, RecommendedPct: 0.20, Description: "~20% of BS"},
		{Name: "Tricep Pushdown", LiftKey: LiftBackSquat, RecommendedPct: 0.25, Description: "~25% of BS"},
		{Name: "Dumbbell Curl", LiftKey: LiftBackSquat, RecommendedPct: 0.10, Description: "~10% of BS per hand"},
		{Name: "Close-Grip Push-up", Description: "Bodyweight or add load"},
	},
	PoolLowerPosterior: {
		{Name: "Romanian Deadlift", LiftKey: LiftBackSquat, RecommendedPct: 0.60, Description: "~60% of BS"},
		{Name: "Leg Curl", LiftKey: LiftBackSquat, RecommendedPct: 0.25, Description: "~25% of BS"},
		{Name: "Good Morning", LiftKey: LiftBackSquat, RecommendedPct: 0.50, Description: "~50% of BS"},
		{Name: "Glute Bridge", LiftKey: LiftBackSquat, RecommendedPct: 0.60, Description: "~60% of BS"},
		{Name: "Nordic Curl", Description: "Bodyweight"},
	},
	PoolLowerQuad: {
		{Name: "Bulgarian Split Squat", LiftKey: LiftBackSquat, RecommendedPct: 0.55, Description: "~55% of BS"},
		{Name: "Leg Press", LiftKey: LiftBackSquat, RecommendedPct: 1.20, Description: "~120% of BS"},
		{Name: "Walking Lunge", LiftKey: LiftBackSquat, RecommendedPct: 0.35, Description: "~35% of BS"},
		{Name: "Leg Extension", LiftKey: LiftBackSquat, RecommendedPct: 0.30, Description: "~30% of BS"},
		{Name: "Step-up", LiftKey: LiftBackSquat, RecommendedPct: 0.40, Description: "~40% of BS"},
	},
}

// accessoryDatabase groups accessory exercises by movement category for
// like-for-like swapping.
var accessoryDatabase = map[string][]string{
	"back_vertical": {
		"Pull-up", "Pull-ups", "Weighted Pull-up", "Weighted Pull-ups",
		"Chin-up", "Chin-ups",
		"Lat Pulldown", "Wide-Grip Lat Pulldown", "Close-Grip Lat Pulldown",
	},
	"back_horizontal": {
		"Barbell Row", "Pendlay Row", "T-Bar Row",
		"Dumbbell Row", "Single-Arm Row", "Single-Arm Dumbbell Row",
		"Chest-Supported Row", "Seated Cable Row", "Cable Row", "Machine Row",
		"TRX Row", "Row", "Back Extension",
	},
	"shoulders_press": {
		"Overhead Press", "Seated Dumbbell Press", "Standing Dumbbell Press",
		"Overhead Dumbbell Press", "Arnold Press", "Machine Shoulder Press",
		"Landmine Press",
	},
	"shoulders_lateral": {
		"Dumbbell Lateral Raise", "Cable Lateral Raise", "Machine Lateral Raise",
		"Leaning Cable Lateral Raise", "Lateral Raise", "Front Raise",
	},
	"shoulders_rear": {
		"Face Pull", "Reverse Pec Deck", "Bent-Over Dumbbell Fly",
		"Cable Rear Delt Fly", "Rear Delt Row", "Rear Delt Fly",
	},
	"chest_press": {
		"Barbell Bench Press", "Incline Barbell Bench Press", "Dumbbell Bench Press",
		"Incline Dumbbell Press", "Weighted Dips", "Bodyweight Dips",
		"Machine Chest Press", "Dips", "Close-Grip Push-up",
	},
	"chest_isolation": {
		"Cable Flyes", "Dumbbell Flyes", "Pec Deck Machine", "Incline Cable Flyes",
	},
	"legs_quad": {
		"Leg Extension", "Single-Leg Extension", "Leg Press",
		"Hack Squat Machine", "Bulgarian Split Squat",
	},
	"legs_hamstring": {
		"Leg Curl", "Seated Leg Curl", "Lying Leg Curl", "Nordic Curl",
		"Romanian Deadlift", "RDL", "Dumbbell Romanian Deadlift", "Good Morning",
	},
	"legs_glutes": {
		"Hip Thrust", "Barbell Glute Bridge", "Glute Bridge", "Cable Pull-Through",
	},
	"legs_calves": {
		"Standing Calf Raise", "Seated Calf Raise", "Leg Press Calf Raise", "Calf Raises",
	},
	"arms_biceps": {
		"Barbell Curl", "EZ-Bar Curl", "Dumbbell Curl", "Hammer Curl",
		"Incline Dumbbell Curl", "Cable Curl", "Preacher Curl",
	},
	"arms_triceps": {
		"Close-Grip Bench Press", "Dumbbell Overhead Extension",
		"Cable Tricep Pushdown", "Rope Tricep Pushdown", "Tricep Pushdown",
		"Overhead Cable Extension", "Skull Crusher", "Rope Tricep Extension", "Tricep Extension",
	},
	"core": {
		"Plank", "Ab Wheel Rollout", "Cable Crunch", "Pallof Press",
		"Side Plank", "Core + Mobility", "Core Circuit",
	},
}

// exerciseCategories is the reverse index of accessoryDatabase, built once.
var exerciseCategories = func() map[string]string {
	idx := make(map[string]string)
	for category, names := range accessoryDatabase {
		for _, name := range names {
			idx[name] = category
		}
	}
	return idx
}()
