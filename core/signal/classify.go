package signal

import (
	"strings"

	"github.com/wagonlab/railscan/schema"
)

// componentKeywords maps signal-code keywords to vehicle subsystems.
// Order matters: earlier entries win when a code matches several keywords.
var componentKeywords = []struct {
	keyword   string
	component schema.ComponentType
}{
	{"TIMESTAMP", schema.TimeSystem},
	{"DOOR", schema.DoorSystem},
	{"BRAKE", schema.BrakeSystem},
	{"TRACTION", schema.TractionSystem},
	{"MOTOR", schema.TractionSystem},
	{"SPEED", schema.TractionSystem},
	{"HVAC", schema.ClimateSystem},
	{"TEMP", schema.ClimateSystem},
	{"CLIMATE", schema.ClimateSystem},
	{"BATTERY", schema.PowerSystem},
	{"VOLT", schema.PowerSystem},
	{"CURR", schema.PowerSystem},
	{"POWER", schema.PowerSystem},
	{"LIGHT", schema.LightSystem},
	{"LAMP", schema.LightSystem},
}

// hardwareKeywords maps signal-code keywords to device classes.
var hardwareKeywords = []struct {
	keyword  string
	hardware schema.HardwareType
}{
	{"SENSOR", schema.SensorHardware},
	{"VALVE", schema.ActuatorHardware},
	{"ACTUATOR", schema.ActuatorHardware},
	{"RELAY", schema.RelayHardware},
	{"SWITCH", schema.RelayHardware},
}

// classify derives the component and hardware tags for an upper-cased
// signal code. When no hardware keyword matches, the class falls back to
// one derived from the data type.
func classify(upperCode string, dataType schema.DataType) (schema.ComponentType, schema.HardwareType) {
	component := schema.UnknownSystem
	for _, kw := range componentKeywords {
		if strings.Contains(upperCode, kw.keyword) {
			component = kw.component
			break
		}
	}

	for _, kw := range hardwareKeywords {
		if strings.Contains(upperCode, kw.keyword) {
			return component, kw.hardware
		}
	}

	return component, hardwareFromType(dataType)
}

// hardwareFromType is the data-type fallback for the hardware class:
// booleans read as discrete I/O, everything else as an analog channel.
func hardwareFromType(dataType schema.DataType) schema.HardwareType {
	switch dataType {
	case schema.BooleanType:
		return schema.DiscreteHardware
	case schema.ByteType, schema.WordType, schema.DoubleWordType, schema.FloatType, schema.WordFloatType:
		return schema.AnalogHardware
	default:
		return schema.UnknownHardware
	}
}
