package schema

import "time"

// AnalysisRunRecord represents a row from the railscan_analysis_runs table.
type AnalysisRunRecord struct {
	RunID             int64
	StartTime         time.Time
	EndTime           *time.Time
	TotalParameters   int32
	ChangedParameters int32
	ConfigParams      *string
}

// ParameterResultRecord represents a row from the railscan_parameter_results table.
type ParameterResultRecord struct {
	RunID       int64
	SignalCode  string
	EvaluatedAt time.Time
	DataType    string
	Wagon       *string
	IsChanged   bool
	ChangeScore float64
	IsNumeric   bool
	UniqueCount int32
	UniqueRatio float64
	Mean        float64
	Std         float64
	CoV         float64
}
