package core

import (
	"fmt"
	"time"

	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/schema"
)

// RangeManager owns the active analysis window as distinct from the table's
// full timestamp range. It moves through three states: NoRange before a
// table is loaded, FullRange right after a load, and UserRange once a
// caller narrows the window.
type RangeManager struct {
	state     schema.RangeState
	dataRange schema.TimeRange
	window    schema.TimeRange
	warnings  []string
}

// NewRangeManager returns a manager in the NoRange state.
func NewRangeManager() *RangeManager {
	return &RangeManager{state: schema.NoRange}
}

// Initialize installs the table's full range and resets the window to it.
func (m *RangeManager) Initialize(dataRange schema.TimeRange) {
	m.dataRange = dataRange
	m.window = dataRange
	m.state = schema.FullRange
	m.warnings = nil
}

// State returns the current window state.
func (m *RangeManager) State() schema.RangeState {
	return m.state
}

// Window returns the active analysis window.
func (m *RangeManager) Window() schema.TimeRange {
	return m.window
}

// DataRange returns the table's full timestamp range.
func (m *RangeManager) DataRange() schema.TimeRange {
	return m.dataRange
}

// Warnings returns the advisory messages from the last SetWindow call.
func (m *RangeManager) Warnings() []string {
	return m.warnings
}

// SetWindow narrows the analysis window. It returns false and leaves all
// state untouched when start >= end. Windows that fall partially or fully
// outside the data range are accepted but recorded as warnings.
func (m *RangeManager) SetWindow(start, end time.Time) bool {
	if m.state == schema.NoRange {
		return false
	}
	if !start.Before(end) {
		return false
	}

	m.warnings = nil
	if start.Before(m.dataRange.Start) || end.After(m.dataRange.End) {
		m.warnings = append(m.warnings, fmt.Sprintf(
			"window %s - %s extends outside the data range %s - %s",
			schema.FormatTimestamp(start), schema.FormatTimestamp(end),
			schema.FormatTimestamp(m.dataRange.Start), schema.FormatTimestamp(m.dataRange.End)))
	}

	m.window = schema.TimeRange{Start: start, End: end}
	m.state = schema.UserRange
	return true
}

// Reset restores the window to the table's full range.
func (m *RangeManager) Reset() {
	if m.state == schema.NoRange {
		return
	}
	m.window = m.dataRange
	m.state = schema.FullRange
	m.warnings = nil
}

// CoveragePercent computes how much of the data range the active window
// spans. Derived on demand, never stored.
func (m *RangeManager) CoveragePercent() float64 {
	dataDur := m.dataRange.Duration()
	if dataDur <= 0 {
		return 0
	}
	pct := float64(m.window.Duration()) / float64(dataDur) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// FindChanged runs the detector over every eligible parameter with the
// table's rows restricted to the active window. Problematic parameters and
// parameters without a backing column are skipped; the skipped count is
// reported alongside the results.
func (m *RangeManager) FindChanged(
	tbl *schema.Table,
	params []schema.Parameter,
	det contract.ChangeDetector,
	threshold float64,
) (changed []schema.ParameterChange, unchanged []schema.ParameterChange, skipped int) {
	rows := m.windowRows(tbl)

	for _, p := range params {
		if p.IsProblematic {
			skipped++
			continue
		}
		col, ok := tbl.Columns[p.FullColumn]
		if !ok {
			skipped++
			continue
		}

		values := make([]string, 0, len(rows))
		for _, i := range rows {
			values = append(values, col[i])
		}

		res := det.Evaluate(values, threshold)
		pc := schema.ParameterChange{Parameter: p, Result: res}
		if res.IsChanged {
			changed = append(changed, pc)
		} else {
			unchanged = append(unchanged, pc)
		}
	}
	return changed, unchanged, skipped
}

// windowRows returns the indices of rows whose timestamp is valid and falls
// inside the active window.
func (m *RangeManager) windowRows(tbl *schema.Table) []int {
	rows := make([]int, 0, tbl.Rows)
	for i := 0; i < tbl.Rows && i < len(tbl.Timestamps); i++ {
		if !tbl.TimeValid[i] {
			continue
		}
		if m.window.Contains(tbl.Timestamps[i]) {
			rows = append(rows, i)
		}
	}
	return rows
}
