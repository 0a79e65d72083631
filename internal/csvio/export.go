// Package csvio reads and writes training blocks as CSV for backup and
// restore. The format is one row per prescription line with the phase and
// day title packed into the Notes column.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/akoskinen/liftblock/internal/plan"
)

var header = []string{"Week", "Day", "Exercise", "Sets", "Reps", "Percentage", "Notes"}

// ExportBlock writes the block to w. Percentages are rounded to whole
// percentage points; exercises without a percentage leave the column empty.
func ExportBlock(w io.Writer, b *plan.Block) error {
	if b == nil || len(b.Weeks) == 0 {
		return fmt.Errorf("block has no weeks")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rows := 0
	for wi, week := range b.Weeks {
		for _, day := range week.Days {
			title := day.Title
			if title == "" {
				title = "workout"
			}
			for _, ex := range day.Work {
				pct := ""
				if ex.Pct > 0 {
					pct = strconv.Itoa(int(math.Round(ex.Pct * 100)))
				}
				row := []string{
					strconv.Itoa(wi + 1),
					title,
					ex.Name,
					strconv.Itoa(ex.Sets),
					strconv.Itoa(ex.Reps),
					pct,
					fmt.Sprintf("%s|%s", week.Phase, title),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("write row: %w", err)
				}
				rows++
			}
		}
	}
	if rows == 0 {
		return fmt.Errorf("block has no exercises")
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
