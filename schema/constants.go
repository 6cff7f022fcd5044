package schema

// Custom string types for type safety.
type (
	// DataType represents the declared type of a telemetry signal.
	DataType string

	// ComponentType represents the vehicle subsystem a signal belongs to.
	ComponentType string

	// HardwareType represents the physical device class behind a signal.
	HardwareType string

	// ReconstructionTier represents the strategy that produced the timestamp column.
	ReconstructionTier string

	// RepairMethod represents a timestamp gap-repair strategy.
	RepairMethod string

	// RangeState represents the state of the analysis window.
	RangeState string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All signal data types. The short codes are the first underscore-delimited
// token of a signal code.
const (
	BooleanType    DataType = "B"
	ByteType       DataType = "BY"
	WordType       DataType = "W"
	DoubleWordType DataType = "DW"
	FloatType      DataType = "F"
	WordFloatType  DataType = "WF"
)

// Communication-line identifiers. Generic signals derive their line from the
// data type; special-cased headers carry fixed lines.
const (
	LineCANControl   = "CAN_CTRL"
	LineCANComfort   = "CAN_CMF"
	LineTrainVehicle = "TV"
	LineMetadata     = "METADATA"
	LineDataChannel  = "DATA_CHANNEL"
	LineNumericData  = "NUMERIC_DATA"
	LineUnknown      = "UNKNOWN_LINE"
)

// Component classifications derived from signal-code keywords.
const (
	DoorSystem     ComponentType = "DOOR_SYSTEM"
	BrakeSystem    ComponentType = "BRAKE_SYSTEM"
	TractionSystem ComponentType = "TRACTION_SYSTEM"
	ClimateSystem  ComponentType = "CLIMATE_SYSTEM"
	PowerSystem    ComponentType = "POWER_SYSTEM"
	LightSystem    ComponentType = "LIGHT_SYSTEM"
	TimeSystem     ComponentType = "TIME_SYSTEM"
	UnknownSystem  ComponentType = "UNKNOWN_SYSTEM"
)

// Hardware classifications. When no keyword matches, the class is derived
// from the signal's data type.
const (
	SensorHardware   HardwareType = "SENSOR"
	ActuatorHardware HardwareType = "ACTUATOR"
	RelayHardware    HardwareType = "RELAY"
	DiscreteHardware HardwareType = "DISCRETE_IO"
	AnalogHardware   HardwareType = "ANALOG_CHANNEL"
	UnknownHardware  HardwareType = "UNKNOWN_HW"
)

// All reconstruction tiers, ordered from most to least trustworthy.
const (
	ComponentTier       ReconstructionTier = "component"
	SyntheticTier       ReconstructionTier = "synthetic"
	UniformFallbackTier ReconstructionTier = "fallback_uniform"
)

// All timestamp repair methods supported.
const (
	InterpolateRepair RepairMethod = "interpolate"
	ForwardFillRepair RepairMethod = "forward_fill"
	SequenceRepair    RepairMethod = "sequence"
)

// Analysis window states.
const (
	NoRange   RangeState = "none"
	FullRange RangeState = "full"
	UserRange RangeState = "user"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run-store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// MaxWagon is the highest physical wagon number a train can carry.
const MaxWagon = 15

// TimestampFormat is the wire format for all timestamps crossing the
// engine boundary.
const TimestampFormat = "2006-01-02 15:04:05"

// Timestamp component names, in assembly order.
const (
	YearComponent        = "YEAR"
	MonthComponent       = "MONTH"
	DayComponent         = "DAY"
	HourComponent        = "HOUR"
	MinuteComponent      = "MINUTE"
	SecondComponent      = "SECOND"
	SmallSecondComponent = "SMALLSECOND"
)

// TimestampComponents lists the component names a wagon must provide in
// full before its columns are used for reconstruction.
var TimestampComponents = []string{
	YearComponent,
	MonthComponent,
	DayComponent,
	HourComponent,
	MinuteComponent,
	SecondComponent,
	SmallSecondComponent,
}
