package plan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akoskinen/liftblock/internal/sqlite"
)

// Syncer pushes state snapshots to a remote backup. Implementations must be
// safe to call concurrently; a nil or unconfigured Syncer disables sync.
type Syncer interface {
	Configured() bool
	Push(ctx context.Context, st *State) error
}

// Service handles the business logic for training block management. All
// mutations go through updateState so the persisted document stays the
// single source of truth.
type Service struct {
	repo   *repository
	logger *slog.Logger
	syncer Syncer
	now    func() time.Time
}

// NewService creates a training plan service. syncer may be nil when cloud
// sync is not configured.
func NewService(db *sqlite.Database, logger *slog.Logger, syncer Syncer) *Service {
	return &Service{
		repo:   newRepository(db, logger),
		logger: logger,
		syncer: syncer,
		now:    time.Now,
	}
}

// State loads the current state document.
func (s *Service) State(ctx context.Context) (*State, error) {
	st, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return st, nil
}

// updateState loads the document, applies the mutation and saves it back.
// The mutation reports whether anything changed; unchanged documents are
// not rewritten or synced.
func (s *Service) updateState(ctx context.Context, mutate func(*State) (bool, error)) error {
	st, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	changed, err := mutate(st)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	// The sync identity must be on disk before the first push, otherwise
	// every push would mint a fresh identity.
	if s.syncer != nil && s.syncer.Configured() && st.SyncUserID == "" {
		st.SyncUserID = uuid.NewString()
	}
	if err := s.repo.Save(ctx, st); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	s.pushToCloud(ctx, st)
	return nil
}

// pushToCloud best-effort syncs the document. Sync failures are logged and
// never surface to the caller: local state is already saved.
func (s *Service) pushToCloud(ctx context.Context, st *State) {
	if s.syncer == nil {
		return
	}
	if err := s.syncer.Push(ctx, st); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "cloud sync failed", slog.Any("error", err))
	}
}

// SwitchProfile makes an existing profile active.
func (s *Service) SwitchProfile(ctx context.Context, name string) error {
	return s.updateState(ctx, func(st *State) (bool, error) {
		if _, ok := st.Profiles[name]; !ok {
			return false, fmt.Errorf("profile %q: %w", name, ErrNotFound)
		}
		if st.ActiveProfile == name {
			return false, nil
		}
		st.ActiveProfile = name
		return true, nil
	})
}

// SaveProfile creates or replaces a profile.
func (s *Service) SaveProfile(ctx context.Context, p *Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	return s.updateState(ctx, func(st *State) (bool, error) {
		p.fillDefaults()
		p.WorkingMaxes = ComputeWorkingMaxes(p.Maxes)
		st.Profiles[p.Name] = p
		return true, nil
	})
}

// GenerateBlock creates a new training block for the active profile and
// archives it. The seed is wall-clock based so every block is unique while
// remaining reproducible from the stored seed.
func (s *Service) GenerateBlock(ctx context.Context) (*Block, error) {
	var block *Block
	err := s.updateState(ctx, func(st *State) (bool, error) {
		p := st.ActiveProfileData()
		seed := s.now().UnixMilli()
		b, err := GenerateBlock(p, seed, s.now())
		if err != nil {
			return false, fmt.Errorf("generate block: %w", err)
		}
		b.ProfileName = st.ActiveProfile
		st.CurrentBlock = b
		st.BlockHistory = append([]BlockArchive{ArchiveBlock(b, p)}, st.BlockHistory...)
		block = b
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated training block",
		slog.Int64("seed", block.Seed),
		slog.String("programType", string(block.ProgramType)),
		slog.Int("weeks", block.BlockLength))
	return block, nil
}

// day returns a pointer into the current block, validating indices.
func day(st *State, weekIndex, dayIndex int) (*Day, error) {
	if st.CurrentBlock == nil {
		return nil, fmt.Errorf("no current block: %w", ErrNotFound)
	}
	if weekIndex < 0 || weekIndex >= len(st.CurrentBlock.Weeks) {
		return nil, fmt.Errorf("week %d out of range", weekIndex)
	}
	week := &st.CurrentBlock.Weeks[weekIndex]
	if dayIndex < 0 || dayIndex >= len(week.Days) {
		return nil, fmt.Errorf("day %d out of range", dayIndex)
	}
	return &week.Days[dayIndex], nil
}

func dayLogFor(st *State, weekIndex, dayIndex int) *DayLog {
	key := WorkoutKey(st.ActiveProfile, weekIndex, dayIndex)
	l, ok := st.SetLogs[key]
	if !ok || l == nil {
		l = NewDayLog()
		st.SetLogs[key] = l
	}
	if l.Sets == nil {
		l.Sets = map[string]SetRecord{}
	}
	return l
}

// LogSet records one performed set. The indices are validated against the
// day's resolved scheme so a stale client cannot write orphaned entries.
func (s *Service) LogSet(ctx context.Context, weekIndex, dayIndex, exIndex, setIndex int, rec SetRecord) error {
	return s.updateState(ctx, func(st *State) (bool, error) {
		d, err := day(st, weekIndex, dayIndex)
		if err != nil {
			return false, err
		}
		if exIndex < 0 || exIndex >= len(d.Work) {
			return false, fmt.Errorf("exercise index %d out of range", exIndex)
		}
		l := dayLogFor(st, weekIndex, dayIndex)

		ex := d.Work[exIndex]
		liftKey := ex.LiftKey
		if liftKey == "" {
			liftKey = d.LiftKey
		}
		ex.Sets = workSetsOverride(l, exIndex, ex.Sets)
		scheme := BuildSetScheme(ex, liftKey, st.ActiveProfileData())
		if setIndex < 0 || setIndex >= len(scheme) {
			return false, fmt.Errorf("set index %d out of range", setIndex)
		}

		if rec.Status == "" {
			rec.Status = "done"
		}
		l.Sets[fmt.Sprintf("%d:%d", exIndex, setIndex)] = rec
		return true, nil
	})
}

// DaySchemes resolves the set schemes for every exercise of a day, with
// overrides and the in-session offset applied. Used by the HTTP surface to
// render a session: a heavy or missed set lowers every later work set's
// target weight live, warm-ups stay fixed.
func (s *Service) DaySchemes(ctx context.Context, weekIndex, dayIndex int) (Day, [][]SetSpec, error) {
	st, err := s.repo.Load(ctx)
	if err != nil {
		return Day{}, nil, fmt.Errorf("load state: %w", err)
	}
	d, err := day(st, weekIndex, dayIndex)
	if err != nil {
		return Day{}, nil, err
	}
	p := st.ActiveProfileData()
	l := dayLogFor(st, weekIndex, dayIndex)

	schemes := make([][]SetSpec, len(d.Work))
	for i, ex := range d.Work {
		liftKey := ex.LiftKey
		if liftKey == "" {
			liftKey = d.LiftKey
		}
		effective := ex
		effective.Sets = workSetsOverride(l, i, ex.Sets)
		scheme := BuildSetScheme(effective, liftKey, p)
		for si := range scheme {
			if scheme[si].Tag != TagWork || scheme[si].TargetWeight == 0 {
				continue
			}
			if adj := cumulativeAdjustment(l, i, si, scheme); adj != 0 {
				scheme[si].TargetWeight = roundTo(scheme[si].TargetWeight*(1+adj), 1)
			}
		}
		schemes[i] = scheme
	}
	return *d, schemes, nil
}

// CompleteDay finalizes a training day: folds the logged actions into the
// long-term lift adjustments, archives performed sets and appends a history
// entry. Completing an already completed day is rejected.
func (s *Service) CompleteDay(ctx context.Context, weekIndex, dayIndex int) error {
	return s.updateState(ctx, func(st *State) (bool, error) {
		d, err := day(st, weekIndex, dayIndex)
		if err != nil {
			return false, err
		}
		for _, h := range st.History {
			if h.ProfileName == st.ActiveProfile && h.WeekIndex == weekIndex && h.DayIndex == dayIndex {
				return false, fmt.Errorf("day already completed")
			}
		}
		p := st.ActiveProfileData()
		l := dayLogFor(st, weekIndex, dayIndex)

		deltas := completionAdjustments(*d, l, p)
		applyCompletionAdjustments(p, deltas)

		session := Session{Title: d.Title}
		for _, ex := range d.Work {
			liftKey := ex.LiftKey
			if liftKey == "" {
				liftKey = d.LiftKey
			}
			se := SessionExercise{Exercise: ex}
			if ex.Pct > 0 && liftKey != "" {
				base := baseForExercise(ex.Name, liftKey, p)
				weight := roundTo(base*ex.Pct, 1)
				se.WeightText = fmt.Sprintf("%g %s (%d%%)", weight, p.Units, int(roundTo(ex.Pct*100, 1)))
			}
			session.Work = append(session.Work, se)
		}

		s.archivePerformance(st, weekIndex, dayIndex, *d, l, p)

		st.History = append([]HistoryEntry{{
			ProfileName: st.ActiveProfile,
			Date:        s.now().Format("2006-01-02"),
			WeekIndex:   weekIndex,
			DayIndex:    dayIndex,
			Title:       d.Title,
			Session:     session,
		}}, st.History...)
		return true, nil
	})
}

// archivePerformance copies the day's logged sets into the block archive.
func (s *Service) archivePerformance(st *State, weekIndex, dayIndex int, d Day, l *DayLog, p *Profile) {
	if st.CurrentBlock == nil {
		return
	}
	id := fmt.Sprintf("%s_%d", st.ActiveProfile, st.CurrentBlock.Seed)
	for bi := range st.BlockHistory {
		entry := &st.BlockHistory[bi]
		if entry.ID != id {
			continue
		}
		if weekIndex >= len(entry.Weeks) || dayIndex >= len(entry.Weeks[weekIndex].Days) {
			return
		}
		ad := &entry.Weeks[weekIndex].Days[dayIndex]
		ad.Completed = true
		ad.CompletedDate = s.now().Format("2006-01-02")

		for exIndex := range ad.Exercises {
			if exIndex >= len(d.Work) {
				break
			}
			scheme := BuildSetScheme(d.Work[exIndex], ad.Exercises[exIndex].LiftKey, p)
			actual := make([]ArchivedSet, 0, len(scheme))
			for setIndex, spec := range scheme {
				rec := l.Sets[fmt.Sprintf("%d:%d", exIndex, setIndex)]
				actual = append(actual, ArchivedSet{
					SetNumber: setIndex + 1,
					Tag:       spec.Tag,
					Weight:    rec.Weight,
					Reps:      rec.Reps,
					RPE:       rec.RPE,
					Action:    rec.Action,
				})
			}
			ad.Exercises[exIndex].ActualSets = actual
		}
		return
	}
}

// SwapExercise replaces an exercise with one of its swap options.
func (s *Service) SwapExercise(ctx context.Context, weekIndex, dayIndex, exIndex int, toName string) error {
	return s.updateState(ctx, func(st *State) (bool, error) {
		d, err := day(st, weekIndex, dayIndex)
		if err != nil {
			return false, err
		}
		if exIndex < 0 || exIndex >= len(d.Work) {
			return false, fmt.Errorf("exercise index %d out of range", exIndex)
		}
		var target *Variant
		for _, opt := range SwapOptions(d.Work[exIndex], *d) {
			if opt.Name == toName {
				o := opt
				target = &o
				break
			}
		}
		if target == nil {
			return false, fmt.Errorf("swap option %q: %w", toName, ErrNotFound)
		}
		l := dayLogFor(st, weekIndex, dayIndex)
		if err := SwapExercise(d, l, exIndex, *target); err != nil {
			return false, err
		}
		return true, nil
	})
}

// AddExercise appends an exercise to a day.
func (s *Service) AddExercise(ctx context.Context, weekIndex, dayIndex int, ex Exercise) error {
	if ex.Name == "" {
		return fmt.Errorf("exercise name required")
	}
	return s.updateState(ctx, func(st *State) (bool, error) {
		d, err := day(st, weekIndex, dayIndex)
		if err != nil {
			return false, err
		}
		AddExercise(d, ex)
		return true, nil
	})
}

// RemoveExercise deletes an exercise from a day and drops its logs.
func (s *Service) RemoveExercise(ctx context.Context, weekIndex, dayIndex, exIndex int) error {
	return s.updateState(ctx, func(st *State) (bool, error) {
		d, err := day(st, weekIndex, dayIndex)
		if err != nil {
			return false, err
		}
		l := dayLogFor(st, weekIndex, dayIndex)
		if err := RemoveExercise(d, l, exIndex); err != nil {
			return false, err
		}
		return true, nil
	})
}

// MoveExercise reorders an exercise within a day.
func (s *Service) MoveExercise(ctx context.Context, weekIndex, dayIndex, fromIndex, toIndex int) error {
	return s.updateState(ctx, func(st *State) (bool, error) {
		d, err := day(st, weekIndex, dayIndex)
		if err != nil {
			return false, err
		}
		l := dayLogFor(st, weekIndex, dayIndex)
		if err := MoveExercise(d, l, fromIndex, toIndex); err != nil {
			return false, err
		}
		return true, nil
	})
}

// SetWorkSets overrides the working-set count for an exercise.
func (s *Service) SetWorkSets(ctx context.Context, weekIndex, dayIndex, exIndex, workSets int) error {
	return s.updateState(ctx, func(st *State) (bool, error) {
		d, err := day(st, weekIndex, dayIndex)
		if err != nil {
			return false, err
		}
		l := dayLogFor(st, weekIndex, dayIndex)
		if err := SetWorkSets(*d, l, exIndex, workSets, st.ActiveProfileData()); err != nil {
			return false, err
		}
		return true, nil
	})
}

// SetWeightOffset stores a manual weight offset for an exercise.
func (s *Service) SetWeightOffset(ctx context.Context, weekIndex, dayIndex, exIndex int, offset float64) error {
	return s.updateState(ctx, func(st *State) (bool, error) {
		d, err := day(st, weekIndex, dayIndex)
		if err != nil {
			return false, err
		}
		if exIndex < 0 || exIndex >= len(d.Work) {
			return false, fmt.Errorf("exercise index %d out of range", exIndex)
		}
		SetWeightOffset(dayLogFor(st, weekIndex, dayIndex), exIndex, offset)
		return true, nil
	})
}

// LogReadiness records a pre-session readiness score and rescales the day.
func (s *Service) LogReadiness(ctx context.Context, weekIndex, dayIndex int, score float64) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("readiness score %g out of range 1-5", score)
	}
	return s.updateState(ctx, func(st *State) (bool, error) {
		d, err := day(st, weekIndex, dayIndex)
		if err != nil {
			return false, err
		}
		st.WorkoutReadiness[WorkoutKey(st.ActiveProfile, weekIndex, dayIndex)] = score
		ApplyReadinessAdjustment(d, score)
		return true, nil
	})
}

// RememberAccessoryWeight stores the weight an athlete actually used for an
// accessory so the next block can suggest it again.
func (s *Service) RememberAccessoryWeight(ctx context.Context, exerciseName string, weight float64) error {
	return s.updateState(ctx, func(st *State) (bool, error) {
		p := st.ActiveProfileData()
		if p.AccessoryWeights == nil {
			p.AccessoryWeights = map[string]float64{}
		}
		p.AccessoryWeights[exerciseName] = weight
		return true, nil
	})
}

// ReplaceState overwrites the whole document, e.g. after restoring a cloud
// backup. The replacement is normalized and saved without a sync push: the
// cloud already has this copy.
func (s *Service) ReplaceState(ctx context.Context, st *State) error {
	st.Normalize()
	if err := s.repo.Save(ctx, st); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// ImportBlock replaces the current block with an externally parsed one.
// The state is only touched after the block has fully parsed upstream.
func (s *Service) ImportBlock(ctx context.Context, b *Block) error {
	if b == nil || len(b.Weeks) == 0 {
		return fmt.Errorf("imported block has no weeks")
	}
	return s.updateState(ctx, func(st *State) (bool, error) {
		b.ProfileName = st.ActiveProfile
		if b.StartDate == "" {
			b.StartDate = s.now().Format("2006-01-02")
		}
		st.CurrentBlock = b
		return true, nil
	})
}
