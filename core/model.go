package core

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wagonlab/railscan/core/detect"
	"github.com/wagonlab/railscan/core/signal"
	"github.com/wagonlab/railscan/core/timestamp"
	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/schema"
)

// ErrEmptyTable is returned on load when the source holds no usable rows or
// columns. No partial model is published in that case.
var ErrEmptyTable = errors.New("empty table: no usable rows or columns")

// ErrNotLoaded is returned by queries before a successful load.
var ErrNotLoaded = errors.New("no table loaded")

// problematicWarnRatio triggers a load warning when at least this share of
// headers failed the naming grammar.
const problematicWarnRatio = 0.5

// Model is the single entry surface for all external callers. It owns the
// loaded table, the parameter list, the range manager and the analysis
// caches. A single lock serializes mutation and cache access so a
// concurrent host never observes a half-updated window or table.
type Model struct {
	mu sync.RWMutex

	table    *schema.Table
	params   []schema.Parameter
	byCode   map[string]int
	ranges   *RangeManager
	detector contract.ChangeDetector
	report   schema.LoadReport
	priority bool

	changedCache *fifoCache[[]schema.ParameterChange]
	detailCache  *fifoCache[*schema.AnalysisReport]
}

// NewModel builds an empty model. A nil detector selects the production
// change detector.
func NewModel(det contract.ChangeDetector) *Model {
	if det == nil {
		det = detect.Default
	}
	return &Model{
		ranges:       NewRangeManager(),
		detector:     det,
		changedCache: newFifoCache[[]schema.ParameterChange](defaultCacheCapacity),
		detailCache:  newFifoCache[*schema.AnalysisReport](defaultCacheCapacity),
	}
}

// Load replaces the model's table with the source's data: headers are
// parsed into parameters, the timestamp column is reconstructed, and all
// caches are invalidated. On error the previous table stays published.
func (m *Model) Load(src contract.DataSource) (schema.LoadReport, error) {
	headers := src.Headers()
	if len(headers) == 0 || src.RowCount() == 0 {
		return schema.LoadReport{}, ErrEmptyTable
	}

	params := signal.ParseAll(headers)

	columns := make(map[string][]string, len(headers))
	for _, h := range headers {
		col, ok := src.Column(h)
		if !ok {
			continue
		}
		columns[h] = col
	}
	if len(columns) == 0 {
		return schema.LoadReport{}, ErrEmptyTable
	}

	tbl := &schema.Table{
		Headers: append([]string(nil), headers...),
		Columns: columns,
		Rows:    src.RowCount(),
		Source: schema.SourceInfo{
			Path:     src.Path(),
			Encoding: src.Encoding(),
			Extra:    src.Metadata(),
		},
	}

	recon := timestamp.Reconstruct(src, params)
	timestamp.Apply(tbl, recon)

	report := schema.LoadReport{
		Parameters:      len(params),
		Rows:            tbl.Rows,
		Tier:            recon.Tier,
		TimestampWagon:  recon.Wagon,
		ValidTimestamps: recon.ValidCount,
		Warnings:        append([]string(nil), recon.Warnings...),
	}
	for _, p := range params {
		if p.IsProblematic {
			report.Problematic++
		}
	}
	if report.Parameters > 0 && float64(report.Problematic) >= problematicWarnRatio*float64(report.Parameters) {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"%d of %d headers failed the naming grammar", report.Problematic, report.Parameters))
	}

	byCode := make(map[string]int, len(params))
	for i, p := range params {
		if _, exists := byCode[p.SignalCode]; !exists {
			byCode[p.SignalCode] = i
		}
	}

	// Publish the new snapshot atomically.
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table = tbl
	m.params = params
	m.byCode = byCode
	m.report = report
	m.ranges.Initialize(tbl.Range)
	m.changedCache.Clear()
	m.detailCache.Clear()

	return report, nil
}

// Loaded reports whether a table has been published.
func (m *Model) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table != nil
}

// LoadReport returns the report of the last successful load.
func (m *Model) LoadReport() schema.LoadReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.report
}

// Parameters returns every loaded parameter in column order.
func (m *Model) Parameters() []schema.Parameter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]schema.Parameter(nil), m.params...)
}

// Parameter looks up a parameter by signal code.
func (m *Model) Parameter(signalCode string) (schema.Parameter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byCode[signalCode]
	if !ok {
		return schema.Parameter{}, false
	}
	return m.params[i], true
}

// SetPriorityMode toggles priority mode: when set, FilterParameters returns
// every loaded parameter, problematic ones included.
func (m *Model) SetPriorityMode(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.priority = on
}

// FilterParameters returns the parameters exposed to downstream filtering:
// the non-problematic subset by default, everything in priority mode.
func (m *Model) FilterParameters() []schema.Parameter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.priority {
		return append([]schema.Parameter(nil), m.params...)
	}
	filtered := make([]schema.Parameter, 0, len(m.params))
	for _, p := range m.params {
		if !p.IsProblematic {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// TimeRangeFields returns the boundary view of the table's time axis.
func (m *Model) TimeRangeFields() (schema.TimeRangeFields, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.table == nil {
		return schema.TimeRangeFields{}, ErrNotLoaded
	}
	w := m.ranges.Window()
	return schema.TimeRangeFields{
		From:         schema.FormatTimestamp(w.Start),
		To:           schema.FormatTimestamp(w.End),
		Duration:     schema.FormatDuration(w.Duration()),
		TotalRecords: m.table.Rows,
		SourceTier:   m.table.Tier,
		Window:       WindowToken(w),
	}, nil
}

// SetUserTimeRange narrows the analysis window and invalidates both caches.
// It returns false, without mutating anything, when from >= to or no table
// is loaded.
func (m *Model) SetUserTimeRange(from, to time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ranges.SetWindow(from, to) {
		return false
	}
	for _, w := range m.ranges.Warnings() {
		contract.LogWarn(w, nil)
	}
	m.changedCache.Clear()
	m.detailCache.Clear()
	return true
}

// ResetTimeRange restores the full-range window and invalidates both caches.
func (m *Model) ResetTimeRange() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ranges.Reset()
	m.changedCache.Clear()
	m.detailCache.Clear()
}

// CoveragePercent reports how much of the data range the window spans.
func (m *Model) CoveragePercent() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ranges.CoveragePercent()
}

// FindChangedParameters returns the parameters judged changed within the
// active window, ranked by change score. Results are cached per
// (threshold, window); a hit is returned as-is without re-running the
// detector.
func (m *Model) FindChangedParameters(threshold float64) ([]schema.ParameterChange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return nil, ErrNotLoaded
	}

	key := keyFor(threshold, m.ranges.Window())
	if cached, ok := m.changedCache.Get(key); ok {
		return cached, nil
	}

	changed, _, _ := m.ranges.FindChanged(m.table, m.filterLocked(), m.detector, threshold)
	changed = RankChanges(changed, 0)
	m.changedCache.Put(key, changed)
	return changed, nil
}

// AnalyzeDetailed runs the full change analysis: the changed/unchanged
// split with complete per-parameter statistics. Cached like
// FindChangedParameters, in a parallel cache.
func (m *Model) AnalyzeDetailed(threshold float64) (*schema.AnalysisReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return nil, ErrNotLoaded
	}

	key := keyFor(threshold, m.ranges.Window())
	if cached, ok := m.detailCache.Get(key); ok {
		return cached, nil
	}

	changed, unchanged, skipped := m.ranges.FindChanged(m.table, m.filterLocked(), m.detector, threshold)
	report := &schema.AnalysisReport{
		Threshold: threshold,
		Window:    m.ranges.Window(),
		Changed:   RankChanges(changed, 0),
		Unchanged: RankChanges(unchanged, 0),
		Skipped:   skipped,
	}
	m.detailCache.Put(key, report)
	return report, nil
}

// RepairTimestamps repairs the timestamp column in place and invalidates
// the caches. The interpolate method re-runs component reconstruction
// first so interpolation starts from the freshest real data.
func (m *Model) RepairTimestamps(method schema.RepairMethod, samplePeriod time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return ErrNotLoaded
	}

	if method == schema.InterpolateRepair {
		src := tableSourceView{table: m.table}
		recon := timestamp.Reconstruct(src, m.params)
		if recon.Tier == schema.ComponentTier {
			timestamp.Apply(m.table, recon)
		}
	}

	if err := timestamp.Repair(m.table, method, samplePeriod); err != nil {
		return err
	}

	m.ranges.Initialize(m.table.Range)
	m.changedCache.Clear()
	m.detailCache.Clear()
	m.report.Tier = m.table.Tier
	return nil
}

// Table returns the loaded table snapshot. Callers must treat it as
// read-only.
func (m *Model) Table() *schema.Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table
}

// Window returns the active analysis window.
func (m *Model) Window() schema.TimeRange {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ranges.Window()
}

// WindowState returns the range manager state.
func (m *Model) WindowState() schema.RangeState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ranges.State()
}

// filterLocked is FilterParameters without locking, for internal callers
// that already hold the lock.
func (m *Model) filterLocked() []schema.Parameter {
	if m.priority {
		return m.params
	}
	filtered := make([]schema.Parameter, 0, len(m.params))
	for _, p := range m.params {
		if !p.IsProblematic {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// tableSourceView adapts a loaded table back to the DataSource shape so the
// reconstructor can re-run against it during repair.
type tableSourceView struct {
	table *schema.Table
}

func (v tableSourceView) Headers() []string { return v.table.Headers }
func (v tableSourceView) RowCount() int     { return v.table.Rows }
func (v tableSourceView) Column(name string) ([]string, bool) {
	col, ok := v.table.Columns[name]
	return col, ok
}
func (v tableSourceView) Path() string                { return v.table.Source.Path }
func (v tableSourceView) Encoding() string            { return v.table.Source.Encoding }
func (v tableSourceView) Metadata() map[string]string { return v.table.Source.Extra }
