// Package timestamp reconstructs the per-row timestamp column from split
// time-component columns duplicated across wagons.
//
// Reconstruction is a tiered strategy list: the component tier assembles
// real timestamps from the lowest-numbered wagon carrying all seven
// components; the synthetic tier generates a one-second sequence ending
// near "now"; the uniform tier is the last resort and may collapse to a
// single instant. The first strategy that yields any valid timestamp wins,
// and the chosen tier is reported so consumers can warn about synthetic
// time axes.
package timestamp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/schema"
)

// smallSecondScale converts the sub-second component to microseconds.
const smallSecondScale = 10_000

// Result is the outcome of a reconstruction pass.
type Result struct {
	Timestamps []time.Time
	Valid      []bool
	Tier       schema.ReconstructionTier
	Wagon      string            // Wagon used, component tier only
	Components map[string]string // Component name -> source column, component tier only
	ValidCount int
	Warnings   []string
}

// Range returns the min/max over valid timestamps, widened to one second
// when degenerate so the table range invariant holds.
func (r *Result) Range() schema.TimeRange {
	var min, max time.Time
	for i, ts := range r.Timestamps {
		if !r.Valid[i] {
			continue
		}
		if min.IsZero() || ts.Before(min) {
			min = ts
		}
		if max.IsZero() || ts.After(max) {
			max = ts
		}
	}
	if min.IsZero() {
		now := time.Now()
		return schema.TimeRange{Start: now, End: now.Add(time.Second)}
	}
	if !max.After(min) {
		max = min.Add(time.Second)
	}
	return schema.TimeRange{Start: min, End: max}
}

// strategy attempts one reconstruction tier. A nil result means the tier
// produced nothing usable and the next tier should run.
type strategy func(src contract.DataSource, params []schema.Parameter, now time.Time) *Result

// Reconstruct builds the timestamp column for a table. It never fails:
// the uniform tier always produces a result.
func Reconstruct(src contract.DataSource, params []schema.Parameter) *Result {
	return reconstructAt(src, params, time.Now())
}

// reconstructAt is the injectable-clock variant used by tests.
func reconstructAt(src contract.DataSource, params []schema.Parameter, now time.Time) *Result {
	strategies := []strategy{fromComponents, synthetic, uniform}

	var warnings []string
	for i, s := range strategies {
		res := s(src, params, now)
		if res == nil {
			continue
		}
		if i > 0 {
			warnings = append(warnings,
				fmt.Sprintf("timestamp reconstruction degraded to %s tier", res.Tier))
		}
		res.Warnings = append(warnings, res.Warnings...)
		return res
	}

	// Unreachable: uniform never returns nil. Kept so a future strategy
	// edit cannot silently drop the timestamp column.
	res := uniform(src, params, now)
	res.Warnings = warnings
	return res
}

// fromComponents assembles timestamps from the lowest-numbered wagon that
// carries all seven component columns. Returns nil when no wagon is
// complete or no row parses.
func fromComponents(src contract.DataSource, params []schema.Parameter, _ time.Time) *Result {
	wagon, columns := locateComponentWagon(src, params)
	if wagon == "" {
		return nil
	}

	cells := make(map[string][]string, len(schema.TimestampComponents))
	for _, comp := range schema.TimestampComponents {
		col, ok := src.Column(columns[comp])
		if !ok {
			return nil
		}
		cells[comp] = col
	}

	rows := src.RowCount()
	res := &Result{
		Timestamps: make([]time.Time, rows),
		Valid:      make([]bool, rows),
		Tier:       schema.ComponentTier,
		Wagon:      wagon,
		Components: columns,
	}

	for i := range rows {
		ts, ok := assembleRow(cells, i)
		if !ok {
			continue // bad row yields a null timestamp, never aborts the batch
		}
		res.Timestamps[i] = ts
		res.Valid[i] = true
		res.ValidCount++
	}

	if res.ValidCount == 0 {
		return nil
	}
	return res
}

// assembleRow parses the seven integer components of one row into a
// timestamp. Out-of-range values are rejected by time normalization checks.
func assembleRow(cells map[string][]string, row int) (time.Time, bool) {
	vals := make(map[string]int, len(schema.TimestampComponents))
	for _, comp := range schema.TimestampComponents {
		col := cells[comp]
		if row >= len(col) {
			return time.Time{}, false
		}
		n, err := parseComponentCell(col[row])
		if err != nil {
			return time.Time{}, false
		}
		vals[comp] = n
	}

	year := vals[schema.YearComponent]
	month := vals[schema.MonthComponent]
	day := vals[schema.DayComponent]
	hour := vals[schema.HourComponent]
	minute := vals[schema.MinuteComponent]
	second := vals[schema.SecondComponent]
	micro := vals[schema.SmallSecondComponent] * smallSecondScale

	if year < 1970 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 60 {
		return time.Time{}, false
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, second, micro*1000, time.UTC)
	// time.Date normalizes out-of-range days (e.g. Feb 30); reject rows
	// that did not survive intact.
	if ts.Day() != day || int(ts.Month()) != month {
		return time.Time{}, false
	}
	return ts, true
}

// parseComponentCell parses one raw component cell. Exports sometimes write
// integer components as floats ("2024.0"), so both forms are accepted.
func parseComponentCell(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// locateComponentWagon scans wagons 1..15 ascending and returns the first
// wagon with all seven timestamp components present, plus its component ->
// column mapping. The ascending scan makes tier selection deterministic.
func locateComponentWagon(src contract.DataSource, params []schema.Parameter) (string, map[string]string) {
	for wagon := 1; wagon <= schema.MaxWagon; wagon++ {
		w := strconv.Itoa(wagon)
		columns := make(map[string]string, len(schema.TimestampComponents))
		for _, p := range params {
			if !p.IsTimestampRelated || p.Wagon != w {
				continue
			}
			comp := componentOf(p)
			if comp == "" {
				continue
			}
			if _, taken := columns[comp]; taken {
				continue // first column per component wins
			}
			if _, ok := src.Column(p.FullColumn); ok {
				columns[comp] = p.FullColumn
			}
		}
		if len(columns) == len(schema.TimestampComponents) {
			return w, columns
		}
	}
	return "", nil
}

// componentOf returns which timestamp component a parameter carries, or
// empty when its signal parts name none.
func componentOf(p schema.Parameter) string {
	for _, part := range p.SignalParts {
		up := strings.ToUpper(part)
		for _, comp := range schema.TimestampComponents {
			if up == comp {
				return comp
			}
		}
	}
	return ""
}

// synthetic generates one timestamp per row starting at (now - rows
// seconds) with one-second spacing. The sequence is strictly increasing
// and unique. Returns nil when the row count is unusable.
func synthetic(src contract.DataSource, _ []schema.Parameter, now time.Time) *Result {
	rows := src.RowCount()
	if rows <= 0 {
		return nil
	}

	res := &Result{
		Timestamps: make([]time.Time, rows),
		Valid:      make([]bool, rows),
		Tier:       schema.SyntheticTier,
		ValidCount: rows,
	}
	start := now.Add(-time.Duration(rows) * time.Second)
	for i := range rows {
		res.Timestamps[i] = start.Add(time.Duration(i) * time.Second)
		res.Valid[i] = true
	}
	return res
}

// uniform is the absolute fallback: microsecond-spaced timestamps from
// "now", or a single shared instant when even that degenerates. It never
// returns nil.
func uniform(src contract.DataSource, _ []schema.Parameter, now time.Time) *Result {
	rows := src.RowCount()
	if rows <= 0 {
		rows = 1
	}

	res := &Result{
		Timestamps: make([]time.Time, rows),
		Valid:      make([]bool, rows),
		Tier:       schema.UniformFallbackTier,
		ValidCount: rows,
	}
	for i := range rows {
		res.Timestamps[i] = now.Add(time.Duration(i) * time.Microsecond)
		res.Valid[i] = true
	}
	return res
}

// Apply installs a reconstruction result into the table: the timestamp
// column, its validity mask, the range and the provenance metadata.
func Apply(tbl *schema.Table, res *Result) {
	tbl.Timestamps = res.Timestamps
	tbl.TimeValid = res.Valid
	tbl.Range = res.Range()
	tbl.Tier = res.Tier
	tbl.TimestampWagon = res.Wagon
	tbl.TimestampColumns = res.Components
}
