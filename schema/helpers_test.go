package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParameterMapRoundTrip ensures ToMap followed by ParameterFromMap
// yields a value equal to the original in all fields.
func TestParameterMapRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		param Parameter
	}{
		{
			name: "full parameter",
			param: Parameter{
				SignalCode:         "W_TEMP_SENSOR_5",
				FullColumn:         "W_TEMP_SENSOR_5::TV|Axle temperature",
				Line:               "TV",
				Description:        "Axle temperature",
				DataType:           WordType,
				SignalParts:        []string{"TEMP", "SENSOR"},
				Wagon:              "5",
				IsTimestampRelated: false,
				ComponentType:      ClimateSystem,
				HardwareType:       SensorHardware,
			},
		},
		{
			name: "problematic parameter",
			param: Parameter{
				SignalCode:    "Unnamed: 3",
				FullColumn:    "Unnamed: 3",
				Line:          LineDataChannel,
				DataType:      BooleanType,
				Wagon:         "1",
				ComponentType: UnknownSystem,
				HardwareType:  UnknownHardware,
				IsProblematic: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParameterFromMap(tt.param.ToMap())
			assert.Equal(t, tt.param, got)
		})
	}
}

// TestParameterFromMapUntyped covers the JSON-decoded shape where slices
// arrive as []any.
func TestParameterFromMapUntyped(t *testing.T) {
	m := map[string]any{
		"signal_code":  "B_DOOR_OPEN_2",
		"full_column":  "B_DOOR_OPEN_2",
		"data_type":    "B",
		"signal_parts": []any{"DOOR", "OPEN"},
		"wagon":        "2",
	}
	p := ParameterFromMap(m)
	assert.Equal(t, "B_DOOR_OPEN_2", p.SignalCode)
	assert.Equal(t, []string{"DOOR", "OPEN"}, p.SignalParts)
	assert.Equal(t, "2", p.Wagon)
	assert.False(t, p.IsProblematic)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "boundary format",
			input: "2024-03-01 12:30:45",
			want:  time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2024-03-01",
			want:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "yesterday-ish",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestTimeRangeContains(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	r := TimeRange{Start: start, End: end}

	assert.True(t, r.Contains(start))
	assert.True(t, r.Contains(end))
	assert.True(t, r.Contains(start.Add(30*time.Minute)))
	assert.False(t, r.Contains(start.Add(-time.Second)))
	assert.False(t, r.Contains(end.Add(time.Second)))
}

func TestDisplayName(t *testing.T) {
	p := Parameter{SignalCode: "F_SPEED", Description: "Train speed"}
	assert.Equal(t, "Train speed", p.DisplayName())
	p.Description = ""
	assert.Equal(t, "F_SPEED", p.DisplayName())
}
