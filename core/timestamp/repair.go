package timestamp

import (
	"fmt"
	"time"

	"github.com/wagonlab/railscan/schema"
)

// Repair fills null stretches in a table's timestamp column using the given
// method and recomputes the stored range. The raw data columns are never
// touched; only the reserved timestamp column is repopulated.
func Repair(tbl *schema.Table, method schema.RepairMethod, samplePeriod time.Duration) error {
	if tbl == nil || len(tbl.Timestamps) == 0 {
		return fmt.Errorf("no timestamp column to repair")
	}
	if samplePeriod <= 0 {
		samplePeriod = time.Second
	}

	switch method {
	case schema.InterpolateRepair:
		interpolateGaps(tbl)
	case schema.ForwardFillRepair:
		forwardFill(tbl)
	case schema.SequenceRepair:
		regenerateSequence(tbl, samplePeriod)
	default:
		return fmt.Errorf("unknown repair method %q", method)
	}

	recomputeRange(tbl)
	return nil
}

// interpolateGaps fills null stretches between two valid timestamps by
// monotonic time-based interpolation. Leading and trailing stretches are
// extended from the nearest valid neighbor at one-second steps.
func interpolateGaps(tbl *schema.Table) {
	n := len(tbl.Timestamps)
	prev := -1
	for i := 0; i <= n; i++ {
		if i < n && !tbl.TimeValid[i] {
			continue
		}
		next := i // valid index or n (sentinel past the end)

		gapStart := prev + 1
		gapLen := next - gapStart
		if gapLen > 0 {
			switch {
			case prev >= 0 && next < n:
				// Interior gap: spread evenly between the neighbors.
				span := tbl.Timestamps[next].Sub(tbl.Timestamps[prev])
				step := span / time.Duration(gapLen+1)
				for j := 0; j < gapLen; j++ {
					tbl.Timestamps[gapStart+j] = tbl.Timestamps[prev].Add(step * time.Duration(j+1))
					tbl.TimeValid[gapStart+j] = true
				}
			case next < n:
				// Leading gap: walk backwards from the first valid row.
				for j := 0; j < gapLen; j++ {
					idx := next - 1 - j
					tbl.Timestamps[idx] = tbl.Timestamps[next].Add(-time.Duration(j+1) * time.Second)
					tbl.TimeValid[idx] = true
				}
			case prev >= 0:
				// Trailing gap: walk forwards from the last valid row.
				for j := 0; j < gapLen; j++ {
					idx := prev + 1 + j
					tbl.Timestamps[idx] = tbl.Timestamps[prev].Add(time.Duration(j+1) * time.Second)
					tbl.TimeValid[idx] = true
				}
			}
		}
		prev = next
	}
}

// forwardFill propagates the last valid timestamp into following null rows.
// Rows before the first valid timestamp stay null.
func forwardFill(tbl *schema.Table) {
	last := -1
	for i := range tbl.Timestamps {
		if tbl.TimeValid[i] {
			last = i
			continue
		}
		if last >= 0 {
			tbl.Timestamps[i] = tbl.Timestamps[last]
			tbl.TimeValid[i] = true
		}
	}
}

// regenerateSequence replaces the whole column with a uniform sequence at
// the configured sampling period, anchored at the first valid timestamp
// (or "now minus the table span" when none exists).
func regenerateSequence(tbl *schema.Table, samplePeriod time.Duration) {
	n := len(tbl.Timestamps)
	start := time.Time{}
	for i := range tbl.Timestamps {
		if tbl.TimeValid[i] {
			start = tbl.Timestamps[i].Add(-time.Duration(i) * samplePeriod)
			break
		}
	}
	if start.IsZero() {
		start = time.Now().Add(-time.Duration(n) * samplePeriod)
	}

	for i := range tbl.Timestamps {
		tbl.Timestamps[i] = start.Add(time.Duration(i) * samplePeriod)
		tbl.TimeValid[i] = true
	}
	tbl.Tier = schema.SyntheticTier
	tbl.TimestampWagon = ""
	tbl.TimestampColumns = nil
}

// recomputeRange refreshes the stored range after a repair, preserving the
// never-zero-width invariant.
func recomputeRange(tbl *schema.Table) {
	res := &Result{Timestamps: tbl.Timestamps, Valid: tbl.TimeValid}
	tbl.Range = res.Range()
}
