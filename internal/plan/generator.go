package plan

import (
	"fmt"
	"time"

	"github.com/akoskinen/liftblock/internal/errors"
)

// Block length is bounded to keep mesocycle structure meaningful.
const (
	minBlockLength = 4
	maxBlockLength = 12
)

// ErrInvalidProfile is returned when a profile cannot produce a block.
var ErrInvalidProfile = errors.NewSentinel("profile cannot generate a training block")

// validateForGeneration rejects profiles that would produce a meaningless
// block: the four main maxes must be tested and at least one main training
// day selected.
func validateForGeneration(p *Profile) error {
	m := p.Maxes
	for _, lift := range []struct {
		key string
		max float64
	}{
		{LiftSnatch, m.Snatch},
		{LiftCleanJerk, m.CleanJerk},
		{LiftFrontSquat, m.FrontSquat},
		{LiftBackSquat, m.BackSquat},
	} {
		if m.Of(lift.key) <= 0 {
			return fmt.Errorf("missing 1RM for %s: %w", lift.key, ErrInvalidProfile)
		}
	}
	if len(p.MainDays) == 0 {
		return fmt.Errorf("no main training days selected: %w", ErrInvalidProfile)
	}
	return nil
}

// GenerateBlock builds a complete training block from the profile and seed.
// The seed pins every deterministic selection in the block; passing the
// same profile and seed reproduces the block exactly. The profile's working
// maxes and last block seed are updated as a side effect.
func GenerateBlock(p *Profile, seed int64, now time.Time) (*Block, error) {
	if err := validateForGeneration(p); err != nil {
		return nil, err
	}

	blockLength := p.BlockLength
	if blockLength < minBlockLength {
		blockLength = minBlockLength
	}
	if blockLength > maxBlockLength {
		blockLength = maxBlockLength
	}

	p.WorkingMaxes = ComputeWorkingMaxes(p.Maxes)
	p.LastBlockSeed = seed

	weeks := make([]Week, 0, blockLength)
	for w := 0; w < blockLength; w++ {
		weeks = append(weeks, MakeWeekPlan(p, w))
	}

	return &Block{
		Seed:        seed,
		ProfileName: p.Name,
		StartDate:   now.Format("2006-01-02"),
		ProgramType: p.ProgramType,
		BlockLength: blockLength,
		Weeks:       weeks,
	}, nil
}

// ArchiveBlock snapshots a freshly generated block into the history format,
// with prescriptions resolved to weights and room for performed sets.
func ArchiveBlock(b *Block, p *Profile) BlockArchive {
	archive := BlockArchive{
		ID:          fmt.Sprintf("%s_%d", p.Name, b.Seed),
		ProfileName: p.Name,
		StartDate:   b.StartDate,
		ProgramType: b.ProgramType,
		BlockLength: b.BlockLength,
		BlockSeed:   b.Seed,
		Units:       p.Units,
		Maxes:       p.Maxes,
	}
	for wi, week := range b.Weeks {
		aw := ArchivedWeek{WeekIndex: wi, Phase: week.Phase}
		for di, day := range week.Days {
			ad := ArchivedDay{DayIndex: di, Title: day.Title, Weekday: day.Weekday}
			for _, ex := range day.Work {
				ae := ArchivedExercise{
					Name:    ex.Name,
					Sets:    ex.Sets,
					Reps:    ex.Reps,
					LiftKey: ex.LiftKey,
				}
				if ex.Pct > 0 && ex.LiftKey != "" {
					ae.PrescribedWeight = roundTo(baseForExercise(ex.Name, ex.LiftKey, p)*ex.Pct, 1)
					ae.PrescribedPct = int(roundTo(ex.Pct*100, 1))
				}
				ad.Exercises = append(ad.Exercises, ae)
			}
			aw.Days = append(aw.Days, ad)
		}
		archive.Weeks = append(archive.Weeks, aw)
	}
	return archive
}
