package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagonlab/railscan/core/detect"
	"github.com/wagonlab/railscan/core/signal"
	"github.com/wagonlab/railscan/schema"
)

var testRange = schema.TimeRange{
	Start: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
}

func TestRangeManagerLifecycle(t *testing.T) {
	m := NewRangeManager()
	assert.Equal(t, schema.NoRange, m.State())

	m.Initialize(testRange)
	assert.Equal(t, schema.FullRange, m.State())
	assert.Equal(t, testRange, m.Window())
	assert.Equal(t, testRange, m.DataRange())
}

func TestSetWindowValidation(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"valid subrange", testRange.Start.Add(time.Minute), testRange.End.Add(-time.Minute), true},
		{"start equals end", testRange.Start, testRange.Start, false},
		{"start after end", testRange.End, testRange.Start, false},
		{"outside data range still accepted", testRange.Start.Add(-time.Hour), testRange.End.Add(time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRangeManager()
			m.Initialize(testRange)

			got := m.SetWindow(tt.start, tt.end)
			assert.Equal(t, tt.want, got)
			if tt.want {
				assert.Equal(t, schema.UserRange, m.State())
				assert.Equal(t, schema.TimeRange{Start: tt.start, End: tt.end}, m.Window())
			} else {
				assert.Equal(t, schema.FullRange, m.State(), "failed SetWindow must not change state")
				assert.Equal(t, testRange, m.Window(), "failed SetWindow must not change the window")
			}
		})
	}
}

func TestSetWindowBeforeInitialize(t *testing.T) {
	m := NewRangeManager()
	assert.False(t, m.SetWindow(testRange.Start, testRange.End))
	assert.Equal(t, schema.NoRange, m.State())
}

func TestSetWindowOutsideRangeWarns(t *testing.T) {
	m := NewRangeManager()
	m.Initialize(testRange)

	require.True(t, m.SetWindow(testRange.Start.Add(-time.Hour), testRange.End))
	assert.NotEmpty(t, m.Warnings())
}

func TestResetRestoresFullRange(t *testing.T) {
	m := NewRangeManager()
	m.Initialize(testRange)
	require.True(t, m.SetWindow(testRange.Start.Add(time.Minute), testRange.End))

	m.Reset()
	assert.Equal(t, schema.FullRange, m.State())
	assert.Equal(t, testRange, m.Window())
}

func TestCoveragePercent(t *testing.T) {
	m := NewRangeManager()
	m.Initialize(testRange)
	assert.InDelta(t, 100.0, m.CoveragePercent(), 1e-9)

	require.True(t, m.SetWindow(testRange.Start, testRange.Start.Add(30*time.Minute)))
	assert.InDelta(t, 50.0, m.CoveragePercent(), 1e-9)

	// A window wider than the data range is capped.
	require.True(t, m.SetWindow(testRange.Start.Add(-time.Hour), testRange.End.Add(time.Hour)))
	assert.InDelta(t, 100.0, m.CoveragePercent(), 1e-9)
}

func TestFindChangedSkipsProblematicAndMissing(t *testing.T) {
	headers := []string{"F_SPEED_SENSOR_1", "Unnamed: 3", "B_DOOR_LOCKED_1"}
	params := signal.ParseAll(headers)

	n := 4
	ts := make([]time.Time, n)
	valid := make([]bool, n)
	for i := range n {
		ts[i] = testRange.Start.Add(time.Duration(i) * time.Minute)
		valid[i] = true
	}

	tbl := &schema.Table{
		Headers: headers,
		Columns: map[string][]string{
			"F_SPEED_SENSOR_1": {"1", "2", "3", "4"},
			"Unnamed: 3":       {"9", "9", "9", "9"},
			// B_DOOR_LOCKED_1 column intentionally absent
		},
		Rows:       n,
		Timestamps: ts,
		TimeValid:  valid,
		Range:      testRange,
	}

	m := NewRangeManager()
	m.Initialize(testRange)

	changed, unchanged, skipped := m.FindChanged(tbl, params, detect.Default, 0.1)
	assert.Equal(t, 2, skipped, "problematic and column-less parameters are skipped")
	assert.Len(t, changed, 1)
	assert.Empty(t, unchanged)
	assert.Equal(t, "F_SPEED_SENSOR_1", changed[0].Parameter.SignalCode)
}

func TestFindChangedRespectsWindow(t *testing.T) {
	headers := []string{"F_SPEED_SENSOR_1"}
	params := signal.ParseAll(headers)

	n := 12
	ts := make([]time.Time, n)
	valid := make([]bool, n)
	cells := make([]string, n)
	for i := range n {
		ts[i] = testRange.Start.Add(time.Duration(i) * time.Minute)
		valid[i] = true
		cells[i] = "5"
	}
	// Only the last two rows vary; a window over the first ten sees a
	// constant column whose unique ratio stays at the threshold.
	cells[10] = "80"
	cells[11] = "120"
	tbl := &schema.Table{
		Headers:    headers,
		Columns:    map[string][]string{"F_SPEED_SENSOR_1": cells},
		Rows:       n,
		Timestamps: ts,
		TimeValid:  valid,
		Range:      testRange,
	}

	m := NewRangeManager()
	m.Initialize(testRange)
	require.True(t, m.SetWindow(ts[0], ts[9]))

	changed, unchanged, _ := m.FindChanged(tbl, params, detect.Default, 0.1)
	assert.Empty(t, changed)
	assert.Len(t, unchanged, 1)

	m.Reset()
	changed, _, _ = m.FindChanged(tbl, params, detect.Default, 0.1)
	assert.Len(t, changed, 1, "full range sees the variation")
}
