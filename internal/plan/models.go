// Package plan implements deterministic weightlifting block programming:
// periodized week plans, exercise selection, set schemes and a performance
// feedback loop over logged sets.
package plan

import "fmt"

// Units of measurement for loads.
type Units string

const (
	UnitsKg Units = "kg"
	UnitsLb Units = "lb"
)

// ProgramType selects the intensity curve and session composition.
type ProgramType string

const (
	ProgramGeneral         ProgramType = "general"
	ProgramStrength        ProgramType = "strength"
	ProgramHypertrophy     ProgramType = "hypertrophy"
	ProgramPowerbuilding   ProgramType = "powerbuilding"
	ProgramCompetition     ProgramType = "competition"
	ProgramMaximumStrength ProgramType = "maximum_strength"
)

// AthleteMode classifies training experience for intensity caps.
type AthleteMode string

const (
	ModeRecreational AthleteMode = "recreational"
	ModeIntermediate AthleteMode = "intermediate"
	ModeCompetition  AthleteMode = "competition"
	ModeAdvanced     AthleteMode = "advanced"
	ModeElite        AthleteMode = "elite"
)

// VolumePref scales weekly training volume.
type VolumePref string

const (
	VolumeMinimal  VolumePref = "minimal"
	VolumeReduced  VolumePref = "reduced"
	VolumeStandard VolumePref = "standard"
	VolumeHigh     VolumePref = "high"
)

// TransitionProfile controls how quickly the first weeks of a block ramp up.
type TransitionProfile string

const (
	TransitionStandard     TransitionProfile = "standard"
	TransitionConservative TransitionProfile = "conservative"
	TransitionAggressive   TransitionProfile = "aggressive"
)

// Phase is the position of a week within the step-loading mesocycle.
type Phase string

const (
	PhaseAccumulation    Phase = "accumulation"
	PhaseIntensification Phase = "intensification"
	PhaseDeload          Phase = "deload"
)

// Injury tags restrict exercise selection to safe variations.
type Injury string

const (
	InjuryShoulder Injury = "shoulder"
	InjuryWrist    Injury = "wrist"
	InjuryElbow    Injury = "elbow"
	InjuryKnee     Injury = "knee"
	InjuryBack     Injury = "back"
	InjuryHip      Injury = "hip"
	InjuryAnkle    Injury = "ankle"
)

// DayKind is the primary emphasis of a training day.
type DayKind string

const (
	DaySnatch    DayKind = "snatch"
	DayCleanJerk DayKind = "cj"
	DayStrength  DayKind = "strength"
	DayCombined  DayKind = "combined"
	DayAccessory DayKind = "accessory"
)

// Lift keys identify the reference lifts percentages are computed from.
const (
	LiftSnatch      = "snatch"
	LiftCleanJerk   = "cj"
	LiftFrontSquat  = "fs"
	LiftBackSquat   = "bs"
	LiftPushPress   = "pushPress"
	LiftStrictPress = "strictPress"
)

// Maxes holds tested one-rep maxes. The four main lifts are required for
// block generation; press and variation maxes are optional. A nil variation
// max means the prescription falls back to a ratio of the parent lift.
type Maxes struct {
	Snatch          float64  `json:"snatch"`
	CleanJerk       float64  `json:"cj"`
	FrontSquat      float64  `json:"fs"`
	BackSquat       float64  `json:"bs"`
	PushPress       float64  `json:"pushPress"`
	StrictPress     float64  `json:"strictPress"`
	PowerSnatch     *float64 `json:"powerSnatch,omitempty"`
	PowerClean      *float64 `json:"powerClean,omitempty"`
	OverheadSquat   *float64 `json:"ohs,omitempty"`
	HangSnatch      *float64 `json:"hangSnatch,omitempty"`
	HangPowerSnatch *float64 `json:"hangPowerSnatch,omitempty"`
	HangClean       *float64 `json:"hangClean,omitempty"`
}

// Of returns the true max for a lift key, zero when unknown.
func (m Maxes) Of(liftKey string) float64 {
	switch liftKey {
	case LiftSnatch:
		return m.Snatch
	case LiftCleanJerk:
		return m.CleanJerk
	case LiftFrontSquat:
		return m.FrontSquat
	case LiftBackSquat:
		return m.BackSquat
	case LiftPushPress:
		return m.PushPress
	case LiftStrictPress:
		return m.StrictPress
	}
	return 0
}

// Profile is one athlete's configuration. All block generation derives from
// it plus the block seed.
type Profile struct {
	Name              string             `json:"name"`
	Units             Units              `json:"units"`
	BlockLength       int                `json:"blockLength"`
	ProgramType       ProgramType        `json:"programType"`
	TransitionWeeks   int                `json:"transitionWeeks"`
	TransitionProfile TransitionProfile  `json:"transitionProfile"`
	AthleteMode       AthleteMode        `json:"athleteMode"`
	IncludeBlocks     bool               `json:"includeBlocks"`
	VolumePref        VolumePref         `json:"volumePref"`
	Duration          int                `json:"duration"`
	RestDuration      int                `json:"restDuration"`
	Age               int                `json:"age"`
	TrainingAge       float64            `json:"trainingAge"`
	Injuries          []Injury           `json:"injuries"`
	MainDays          []int              `json:"mainDays"`
	AccessoryDays     []int              `json:"accessoryDays"`
	Maxes             Maxes              `json:"maxes"`
	WorkingMaxes      map[string]float64 `json:"workingMaxes"`
	LiftAdjustments   map[string]float64 `json:"liftAdjustments"`
	AccessoryWeights  map[string]float64 `json:"accessoryWeights"`
	LastBlockSeed     int64              `json:"lastBlockSeed"`
}

// DefaultProfile returns the configuration a new athlete starts from.
func DefaultProfile(name string) *Profile {
	return &Profile{
		Name:              name,
		Units:             UnitsKg,
		BlockLength:       8,
		ProgramType:       ProgramGeneral,
		TransitionWeeks:   1,
		TransitionProfile: TransitionStandard,
		AthleteMode:       ModeRecreational,
		IncludeBlocks:     true,
		VolumePref:        VolumeReduced,
		Duration:          75,
		RestDuration:      180,
		TrainingAge:       1,
		Injuries:          nil,
		MainDays:          []int{2, 4, 6},
		AccessoryDays:     []int{7},
		Maxes:             Maxes{},
		WorkingMaxes:      map[string]float64{},
		LiftAdjustments:   map[string]float64{},
		AccessoryWeights:  map[string]float64{},
	}
}

// fillDefaults replaces zero-valued settings with the defaults a new athlete
// starts from, so sparse client payloads still generate.
func (p *Profile) fillDefaults() {
	def := DefaultProfile(p.Name)
	if p.Units == "" {
		p.Units = def.Units
	}
	if p.BlockLength == 0 {
		p.BlockLength = def.BlockLength
	}
	if p.ProgramType == "" {
		p.ProgramType = def.ProgramType
	}
	if p.TransitionProfile == "" {
		p.TransitionProfile = def.TransitionProfile
	}
	if p.AthleteMode == "" {
		p.AthleteMode = def.AthleteMode
	}
	if p.VolumePref == "" {
		p.VolumePref = def.VolumePref
	}
	if p.Duration == 0 {
		p.Duration = def.Duration
	}
	if p.RestDuration == 0 {
		p.RestDuration = def.RestDuration
	}
	if p.TrainingAge == 0 {
		p.TrainingAge = def.TrainingAge
	}
	if len(p.MainDays) == 0 {
		p.MainDays = def.MainDays
	}
	if len(p.AccessoryDays) == 0 {
		p.AccessoryDays = def.AccessoryDays
	}
	if p.WorkingMaxes == nil {
		p.WorkingMaxes = map[string]float64{}
	}
	if p.LiftAdjustments == nil {
		p.LiftAdjustments = map[string]float64{}
	}
	if p.AccessoryWeights == nil {
		p.AccessoryWeights = map[string]float64{}
	}
}

// ComputeWorkingMaxes derives training maxes at 90% of the tested maxes,
// rounded to the nearest unit.
func ComputeWorkingMaxes(m Maxes) map[string]float64 {
	wm := map[string]float64{
		LiftSnatch:      roundTo(m.Snatch*0.9, 1),
		LiftCleanJerk:   roundTo(m.CleanJerk*0.9, 1),
		LiftFrontSquat:  roundTo(m.FrontSquat*0.9, 1),
		LiftBackSquat:   roundTo(m.BackSquat*0.9, 1),
		LiftPushPress:   roundTo(m.PushPress*0.9, 1),
		LiftStrictPress: roundTo(m.StrictPress*0.9, 1),
	}
	return wm
}

// Exercise is a single prescription line within a day.
type Exercise struct {
	Name           string  `json:"name"`
	LiftKey        string  `json:"liftKey,omitempty"`
	Sets           int     `json:"sets"`
	Reps           int     `json:"reps"`
	Pct            float64 `json:"pct"`
	RecommendedPct float64 `json:"recommendedPct,omitempty"`
	Description    string  `json:"description,omitempty"`
	TargetRIR      int     `json:"targetRIR,omitempty"`
	Tag            string  `json:"tag,omitempty"`
}

// Day is one training session within a week.
type Day struct {
	Weekday      int        `json:"dow"`
	Title        string     `json:"title"`
	Kind         DayKind    `json:"kind"`
	Main         string     `json:"main"`
	LiftKey      string     `json:"liftKey"`
	Work         []Exercise `json:"work"`
	OriginalWork []Exercise `json:"originalWork,omitempty"`
}

// Week is a fully resolved training week.
type Week struct {
	Index        int     `json:"weekIndex"`
	Phase        Phase   `json:"phase"`
	Intensity    float64 `json:"intensity"`
	VolumeFactor float64 `json:"volFactor"`
	Days         []Day   `json:"days"`
}

// Block is a generated training block.
type Block struct {
	Seed        int64       `json:"seed"`
	ProfileName string      `json:"profileName"`
	StartDate   string      `json:"startDateISO"`
	ProgramType ProgramType `json:"programType"`
	BlockLength int         `json:"blockLength"`
	Weeks       []Week      `json:"weeks"`
}

// SetTag distinguishes warm-up sets from working sets.
type SetTag string

const (
	TagWarmup SetTag = "warmup"
	TagWork   SetTag = "work"
)

// SetSpec is one prescribed set within an exercise's scheme.
type SetSpec struct {
	TargetPct    float64 `json:"targetPct"`
	TargetReps   int     `json:"targetReps"`
	Tag          SetTag  `json:"tag"`
	TargetWeight float64 `json:"targetWeight"`
}

// Action is the lifter's verdict on a completed set.
type Action string

const (
	ActionMake  Action = "make"
	ActionBelt  Action = "belt"
	ActionHeavy Action = "heavy"
	ActionMiss  Action = "miss"
)

// SetRecord is a logged set.
type SetRecord struct {
	Weight float64 `json:"weight,omitempty"`
	Reps   int     `json:"reps,omitempty"`
	RPE    float64 `json:"rpe,omitempty"`
	Action Action  `json:"action,omitempty"`
	Status string  `json:"status,omitempty"`
}

// ExerciseOverride stores per-day user edits to a single exercise.
type ExerciseOverride struct {
	WorkSets     int     `json:"workSets,omitempty"`
	WeightOffset float64 `json:"weightOffset,omitempty"`
}

// DayLog accumulates logged sets and overrides for one training day.
// Set records are keyed "exerciseIndex:setIndex".
type DayLog struct {
	Sets      map[string]SetRecord     `json:"sets"`
	Overrides map[int]ExerciseOverride `json:"overrides,omitempty"`
}

// NewDayLog returns an empty log.
func NewDayLog() *DayLog {
	return &DayLog{Sets: map[string]SetRecord{}}
}

// SessionExercise is an exercise as recorded in the completed-session history.
type SessionExercise struct {
	Exercise
	WeightText string `json:"weightText,omitempty"`
}

// Session is a completed day summary.
type Session struct {
	Title string            `json:"title"`
	Work  []SessionExercise `json:"work"`
}

// HistoryEntry records one completed training day.
type HistoryEntry struct {
	ProfileName string  `json:"profileName"`
	Date        string  `json:"dateISO"`
	WeekIndex   int     `json:"weekIndex"`
	DayIndex    int     `json:"dayIndex"`
	Title       string  `json:"title"`
	Session     Session `json:"session"`
}

// ArchivedSet is one performed set in the block archive.
type ArchivedSet struct {
	SetNumber int     `json:"setNumber"`
	Tag       SetTag  `json:"tag"`
	Weight    float64 `json:"weight,omitempty"`
	Reps      int     `json:"reps,omitempty"`
	RPE       float64 `json:"rpe,omitempty"`
	Action    Action  `json:"action,omitempty"`
}

// ArchivedExercise is one prescription line plus its performed sets.
type ArchivedExercise struct {
	Name             string        `json:"name"`
	Sets             int           `json:"sets"`
	Reps             int           `json:"reps"`
	PrescribedWeight float64       `json:"prescribedWeight,omitempty"`
	PrescribedPct    int           `json:"prescribedPct,omitempty"`
	LiftKey          string        `json:"liftKey,omitempty"`
	ActualSets       []ArchivedSet `json:"actualSets"`
}

// ArchivedDay is one day within the block archive.
type ArchivedDay struct {
	DayIndex      int                `json:"dayIndex"`
	Title         string             `json:"title"`
	Weekday       int                `json:"dow"`
	Completed     bool               `json:"completed"`
	CompletedDate string             `json:"completedDate,omitempty"`
	Exercises     []ArchivedExercise `json:"exercises"`
}

// ArchivedWeek is one week within the block archive.
type ArchivedWeek struct {
	WeekIndex int           `json:"weekIndex"`
	Phase     Phase         `json:"phase"`
	Days      []ArchivedDay `json:"days"`
}

// BlockArchive preserves a generated block together with the performance
// that was logged against it.
type BlockArchive struct {
	ID          string         `json:"id"`
	ProfileName string         `json:"profileName"`
	StartDate   string         `json:"startDateISO"`
	ProgramType ProgramType    `json:"programType"`
	BlockLength int            `json:"blockLength"`
	BlockSeed   int64          `json:"blockSeed"`
	Units       Units          `json:"units"`
	Maxes       Maxes          `json:"maxes"`
	Weeks       []ArchivedWeek `json:"weeks"`
}

// StateVersion tags the persisted state document shape.
const StateVersion = "v1"

// State is the whole persisted document: every profile, the current block
// and all logs. It is stored as one versioned JSON value.
type State struct {
	Version          string              `json:"version"`
	ActiveProfile    string              `json:"activeProfile"`
	Profiles         map[string]*Profile `json:"profiles"`
	CurrentBlock     *Block              `json:"currentBlock,omitempty"`
	History          []HistoryEntry      `json:"history"`
	SetLogs          map[string]*DayLog  `json:"setLogs"`
	WorkoutReadiness map[string]float64  `json:"workoutReadiness"`
	BlockHistory     []BlockArchive      `json:"blockHistory"`
	SyncUserID       string              `json:"syncUserId,omitempty"`
}

// DefaultState returns an empty document with one default profile.
func DefaultState() *State {
	return &State{
		Version:          StateVersion,
		ActiveProfile:    "Default",
		Profiles:         map[string]*Profile{"Default": DefaultProfile("Default")},
		History:          []HistoryEntry{},
		SetLogs:          map[string]*DayLog{},
		WorkoutReadiness: map[string]float64{},
		BlockHistory:     []BlockArchive{},
	}
}

// Normalize fills missing keys after decoding a partial or older document so
// downstream code never sees nil maps or a dangling active profile.
func (s *State) Normalize() {
	if s.Version == "" {
		s.Version = StateVersion
	}
	if len(s.Profiles) == 0 {
		s.Profiles = map[string]*Profile{"Default": DefaultProfile("Default")}
	}
	if _, ok := s.Profiles[s.ActiveProfile]; !ok {
		for name := range s.Profiles {
			s.ActiveProfile = name
			break
		}
	}
	for name, p := range s.Profiles {
		if p == nil {
			s.Profiles[name] = DefaultProfile(name)
			continue
		}
		d := DefaultProfile(name)
		if p.Name == "" {
			p.Name = name
		}
		if p.Units == "" {
			p.Units = d.Units
		}
		if p.BlockLength == 0 {
			p.BlockLength = d.BlockLength
		}
		if p.ProgramType == "" {
			p.ProgramType = d.ProgramType
		}
		if p.TransitionProfile == "" {
			p.TransitionProfile = d.TransitionProfile
		}
		if p.AthleteMode == "" {
			p.AthleteMode = d.AthleteMode
		}
		if p.VolumePref == "" {
			p.VolumePref = d.VolumePref
		}
		if p.Duration == 0 {
			p.Duration = d.Duration
		}
		if p.RestDuration == 0 {
			p.RestDuration = d.RestDuration
		}
		if p.TrainingAge == 0 {
			p.TrainingAge = d.TrainingAge
		}
		if len(p.MainDays) == 0 {
			p.MainDays = append([]int(nil), d.MainDays...)
		}
		if p.AccessoryDays == nil {
			p.AccessoryDays = append([]int(nil), d.AccessoryDays...)
		}
		if p.WorkingMaxes == nil {
			p.WorkingMaxes = map[string]float64{}
		}
		if p.LiftAdjustments == nil {
			p.LiftAdjustments = map[string]float64{}
		}
		if p.AccessoryWeights == nil {
			p.AccessoryWeights = map[string]float64{}
		}
	}
	if s.History == nil {
		s.History = []HistoryEntry{}
	}
	if s.SetLogs == nil {
		s.SetLogs = map[string]*DayLog{}
	}
	for k, l := range s.SetLogs {
		if l == nil {
			s.SetLogs[k] = NewDayLog()
		} else if l.Sets == nil {
			l.Sets = map[string]SetRecord{}
		}
	}
	if s.WorkoutReadiness == nil {
		s.WorkoutReadiness = map[string]float64{}
	}
	if s.BlockHistory == nil {
		s.BlockHistory = []BlockArchive{}
	}
}

// ActiveProfileData returns the active profile, falling back to a default
// one when the document is inconsistent.
func (s *State) ActiveProfileData() *Profile {
	if p, ok := s.Profiles[s.ActiveProfile]; ok && p != nil {
		return p
	}
	p := DefaultProfile("Default")
	s.Profiles["Default"] = p
	s.ActiveProfile = "Default"
	return p
}

// WorkoutKey identifies one day's logs within State.SetLogs.
func WorkoutKey(profileName string, weekIndex, dayIndex int) string {
	return fmt.Sprintf("%s|w%d|d%d", profileName, weekIndex, dayIndex)
}
