package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/akoskinen/liftblock/internal/plan"
)

// weekdaysFor spreads n training days over a week the way the generator
// does for common day counts.
func weekdaysFor(n int) []int {
	switch n {
	case 3:
		return []int{1, 3, 5}
	case 4:
		return []int{1, 2, 4, 5}
	case 5:
		return []int{1, 2, 3, 4, 5}
	case 6:
		return []int{1, 2, 3, 4, 5, 6}
	default:
		days := make([]int, n)
		for i := range days {
			days[i] = i + 1
		}
		return days
	}
}

func kindForTitle(title string) (plan.DayKind, string) {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "clean") || strings.Contains(t, "jerk") || strings.Contains(t, "c&j"):
		return plan.DayCleanJerk, plan.LiftCleanJerk
	case strings.Contains(t, "combined"):
		return plan.DayCombined, plan.LiftSnatch
	case strings.Contains(t, "strength"):
		return plan.DayStrength, ""
	case strings.Contains(t, "accessory") || strings.Contains(t, "hypertrophy"):
		return plan.DayAccessory, ""
	default:
		return plan.DaySnatch, plan.LiftSnatch
	}
}

func liftKeyForExercise(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "snatch"):
		return plan.LiftSnatch
	case strings.Contains(n, "clean") || strings.Contains(n, "jerk"):
		return plan.LiftCleanJerk
	case strings.Contains(n, "front squat"):
		return plan.LiftFrontSquat
	case strings.Contains(n, "squat"):
		return plan.LiftBackSquat
	case strings.Contains(n, "push press"):
		return plan.LiftPushPress
	case strings.Contains(n, "press"):
		return plan.LiftStrictPress
	default:
		return ""
	}
}

type importedWeek struct {
	week     plan.Week
	dayOrder []string
	days     map[string]*plan.Day
}

// ImportBlock parses a CSV backup into a block. Rows that do not parse are
// skipped; the import fails only when no row parses at all, so a valid file
// with a stray line still restores. Nothing is mutated on failure: the
// caller receives either a complete block or an error.
func ImportBlock(r io.Reader, now time.Time) (*plan.Block, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	joined := strings.ToLower(strings.Join(head, ","))
	if !strings.Contains(joined, "week") || !strings.Contains(joined, "exercise") {
		return nil, fmt.Errorf("not a training block CSV: header %q lacks Week and Exercise columns", strings.Join(head, ","))
	}

	weeks := map[int]*importedWeek{}
	maxWeek := -1
	parsed := 0

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(record) < 6 {
			continue
		}

		weekNum, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil || weekNum < 1 {
			continue
		}
		title := strings.TrimSpace(record[1])
		name := strings.TrimSpace(record[2])
		sets, err1 := strconv.Atoi(strings.TrimSpace(record[3]))
		reps, err2 := strconv.Atoi(strings.TrimSpace(record[4]))
		if title == "" || name == "" || err1 != nil || err2 != nil {
			continue
		}
		pct := 0.0
		if s := strings.TrimSpace(record[5]); s != "" {
			p, err := strconv.ParseFloat(s, 64)
			if err != nil {
				continue
			}
			pct = p / 100
		}
		notes := ""
		if len(record) > 6 {
			notes = record[6]
		}

		wi := weekNum - 1
		w, ok := weeks[wi]
		if !ok {
			phase := plan.PhaseAccumulation
			if part, _, found := strings.Cut(notes, "|"); found && part != "" {
				phase = plan.Phase(part)
			}
			w = &importedWeek{
				week: plan.Week{
					Index:        wi,
					Phase:        phase,
					Intensity:    0.75,
					VolumeFactor: 1.0,
				},
				days: map[string]*plan.Day{},
			}
			weeks[wi] = w
			maxWeek = max(maxWeek, wi)
		}

		d, ok := w.days[title]
		if !ok {
			kind, liftKey := kindForTitle(title)
			d = &plan.Day{
				Title:   title,
				Kind:    kind,
				Main:    name,
				LiftKey: liftKey,
			}
			w.days[title] = d
			w.dayOrder = append(w.dayOrder, title)
		}

		d.Work = append(d.Work, plan.Exercise{
			Name:    name,
			LiftKey: liftKeyForExercise(name),
			Sets:    sets,
			Reps:    reps,
			Pct:     pct,
			Tag:     "work",
		})
		parsed++
	}

	if parsed == 0 {
		return nil, fmt.Errorf("no valid exercise rows found")
	}

	b := &plan.Block{
		Seed:        now.UnixMilli(),
		StartDate:   now.Format("2006-01-02"),
		ProgramType: plan.ProgramGeneral,
	}
	for wi := 0; wi <= maxWeek; wi++ {
		w, ok := weeks[wi]
		if !ok {
			continue
		}
		dows := weekdaysFor(len(w.dayOrder))
		for di, title := range w.dayOrder {
			d := w.days[title]
			d.Weekday = dows[di]
			w.week.Days = append(w.week.Days, *d)
		}
		b.Weeks = append(b.Weeks, w.week)
	}
	b.BlockLength = len(b.Weeks)
	return b, nil
}
