package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wagonlab/railscan/schema"
)

func TestParseGenericGrammar(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantType   schema.DataType
		wantWagon  string
		wantParts  []string
		wantLine   string
		wantHW     schema.HardwareType
		wantComp   schema.ComponentType
		wantTSFlag bool
	}{
		{
			name:      "word sensor with wagon",
			header:    "W_TEMP_SENSOR_5",
			wantType:  schema.WordType,
			wantWagon: "5",
			wantParts: []string{"TEMP", "SENSOR"},
			wantLine:  schema.LineCANComfort,
			wantHW:    schema.SensorHardware,
			wantComp:  schema.ClimateSystem,
		},
		{
			name:      "boolean door signal",
			header:    "B_DOOR_OPEN_2",
			wantType:  schema.BooleanType,
			wantWagon: "2",
			wantParts: []string{"DOOR", "OPEN"},
			wantLine:  schema.LineCANControl,
			wantHW:    schema.DiscreteHardware,
			wantComp:  schema.DoorSystem,
		},
		{
			name:      "float without wagon",
			header:    "F_BRAKE_PRESSURE",
			wantType:  schema.FloatType,
			wantWagon: "",
			wantParts: []string{"BRAKE", "PRESSURE"},
			wantLine:  schema.LineTrainVehicle,
			wantHW:    schema.AnalogHardware,
			wantComp:  schema.BrakeSystem,
		},
		{
			name:      "wagon number above range stays a part",
			header:    "W_AXLE_LOAD_16",
			wantType:  schema.WordType,
			wantWagon: "",
			wantParts: []string{"AXLE", "LOAD", "16"},
			wantLine:  schema.LineCANComfort,
			wantHW:    schema.AnalogHardware,
			wantComp:  schema.UnknownSystem,
		},
		{
			name:       "timestamp component",
			header:     "DW_TIMESTAMP_YEAR_3",
			wantType:   schema.DoubleWordType,
			wantWagon:  "3",
			wantParts:  []string{"TIMESTAMP", "YEAR"},
			wantLine:   schema.LineCANComfort,
			wantHW:     schema.AnalogHardware,
			wantComp:   schema.TimeSystem,
			wantTSFlag: true,
		},
		{
			name:      "unknown type defaults to boolean and keeps the token",
			header:    "XX_RELAY_STATE_4",
			wantType:  schema.BooleanType,
			wantWagon: "4",
			wantParts: []string{"XX", "RELAY", "STATE"},
			wantLine:  schema.LineCANControl,
			wantHW:    schema.RelayHardware,
			wantComp:  schema.UnknownSystem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.header)
			assert.False(t, p.IsProblematic)
			assert.Equal(t, tt.header, p.SignalCode)
			assert.Equal(t, tt.header, p.FullColumn)
			assert.Equal(t, tt.wantType, p.DataType)
			assert.Equal(t, tt.wantWagon, p.Wagon)
			assert.Equal(t, tt.wantParts, p.SignalParts)
			assert.Equal(t, tt.wantLine, p.Line)
			assert.Equal(t, tt.wantHW, p.HardwareType)
			assert.Equal(t, tt.wantComp, p.ComponentType)
			assert.Equal(t, tt.wantTSFlag, p.IsTimestampRelated)
		})
	}
}

func TestParseExtendedHeaders(t *testing.T) {
	t.Run("code line and description", func(t *testing.T) {
		p := Parse("W_TEMP_SENSOR_5::TV|Axle temperature")
		assert.False(t, p.IsProblematic)
		assert.Equal(t, "W_TEMP_SENSOR_5", p.SignalCode)
		assert.Equal(t, "W_TEMP_SENSOR_5::TV|Axle temperature", p.FullColumn)
		assert.Equal(t, "TV", p.Line)
		assert.Equal(t, "Axle temperature", p.Description)
		assert.Equal(t, "5", p.Wagon)
	})

	t.Run("code and line only", func(t *testing.T) {
		p := Parse("B_DOOR_OPEN_1::CAN_CTRL")
		assert.False(t, p.IsProblematic)
		assert.Equal(t, "CAN_CTRL", p.Line)
		assert.Empty(t, p.Description)
	})

	t.Run("missing metadata is malformed", func(t *testing.T) {
		p := Parse("W_TEMP_SENSOR_5::")
		assert.True(t, p.IsProblematic)
		assert.Equal(t, schema.LineUnknown, p.Line)
	})
}

func TestParseSpecialHeaders(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantLine  string
		wantWagon string
	}{
		{name: "date metadata", header: "Date: 2024-05-01", wantLine: schema.LineMetadata},
		{name: "unnamed column", header: "Unnamed: 7", wantLine: schema.LineDataChannel, wantWagon: "1"},
		{name: "pure digits", header: "42", wantLine: schema.LineNumericData},
		{name: "reserved index", header: "index", wantLine: schema.LineMetadata},
		{name: "reserved timestamp", header: "timestamp", wantLine: schema.LineMetadata},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.header)
			assert.True(t, p.IsProblematic)
			assert.Equal(t, tt.wantLine, p.Line)
			assert.Equal(t, tt.wantWagon, p.Wagon)
			assert.Equal(t, tt.header, p.SignalCode)
		})
	}
}

// TestParseNeverEmpty ensures the SignalCode/FullColumn invariant holds even
// for hopeless input.
func TestParseNeverEmpty(t *testing.T) {
	for _, h := range []string{"", "   ", "::", "___", "Unnamed:", "::|"} {
		p := Parse(h)
		assert.NotEmpty(t, p.SignalCode, "header %q", h)
		assert.NotEmpty(t, p.FullColumn, "header %q", h)
	}
}

func TestParseAllDuplicates(t *testing.T) {
	params := ParseAll([]string{"W_TEMP_SENSOR_5", "W_TEMP_SENSOR_5", "B_DOOR_OPEN_1"})
	assert.Len(t, params, 3)
	assert.False(t, params[0].IsProblematic)
	assert.True(t, params[1].IsProblematic)
	assert.False(t, params[2].IsProblematic)
}

func TestParseDeterministic(t *testing.T) {
	headers := []string{"W_TEMP_SENSOR_5", "Unnamed: 3", "F_VOLT_BATTERY_12", "junk header"}
	first := ParseAll(headers)
	second := ParseAll(headers)
	assert.Equal(t, first, second)
}
