package plan

import "math"

// Readiness score thresholds on the 1-5 scale.
const (
	lowReadiness  = 2.5
	highReadiness = 3.5
)

// ApplyReadinessAdjustment rescales a day's prescriptions from the athlete's
// pre-session readiness score. The unmodified prescription is kept on the
// day so repeated scores always adjust from the original, not cumulatively.
func ApplyReadinessAdjustment(day *Day, score float64) {
	if day == nil {
		return
	}
	if day.OriginalWork == nil {
		day.OriginalWork = append([]Exercise(nil), day.Work...)
	}
	day.Work = append([]Exercise(nil), day.OriginalWork...)

	switch {
	case score < lowReadiness:
		for i := range day.Work {
			ex := &day.Work[i]
			ex.Sets = max(1, int(math.Floor(float64(ex.Sets)*0.8)))
			if ex.Pct > 0 {
				ex.Pct = math.Max(0.5, ex.Pct-0.05)
			}
		}
	case score > highReadiness:
		for i := range day.Work {
			ex := &day.Work[i]
			ex.Sets = int(math.Ceil(float64(ex.Sets) * 1.1))
			if ex.Pct > 0 {
				ex.Pct = math.Min(0.98, ex.Pct+0.03)
			}
		}
	}
}
