package schema

import (
	"fmt"
	"strings"
	"time"
)

// FormatTimestamp renders a timestamp in the boundary wire format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}

// ParseTimestamp parses a boundary-format timestamp. It also accepts
// RFC3339 and plain dates so config files and flags stay forgiving.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimestampFormat, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q (want %q)", s, TimestampFormat)
}

// ToMap flattens a Parameter into a string-keyed map for JSON-ish consumers
// and round-trip persistence.
func (p Parameter) ToMap() map[string]any {
	return map[string]any{
		"signal_code":          p.SignalCode,
		"full_column":          p.FullColumn,
		"line":                 p.Line,
		"description":          p.Description,
		"data_type":            string(p.DataType),
		"signal_parts":         append([]string(nil), p.SignalParts...),
		"wagon":                p.Wagon,
		"is_timestamp_related": p.IsTimestampRelated,
		"component_type":       string(p.ComponentType),
		"hardware_type":        string(p.HardwareType),
		"is_problematic":       p.IsProblematic,
	}
}

// ParameterFromMap rebuilds a Parameter from the ToMap representation.
// Missing keys yield zero values rather than errors.
func ParameterFromMap(m map[string]any) Parameter {
	p := Parameter{
		SignalCode:         asString(m["signal_code"]),
		FullColumn:         asString(m["full_column"]),
		Line:               asString(m["line"]),
		Description:        asString(m["description"]),
		DataType:           DataType(asString(m["data_type"])),
		Wagon:              asString(m["wagon"]),
		IsTimestampRelated: asBool(m["is_timestamp_related"]),
		ComponentType:      ComponentType(asString(m["component_type"])),
		HardwareType:       HardwareType(asString(m["hardware_type"])),
		IsProblematic:      asBool(m["is_problematic"]),
	}
	switch parts := m["signal_parts"].(type) {
	case []string:
		p.SignalParts = append([]string(nil), parts...)
	case []any:
		for _, v := range parts {
			p.SignalParts = append(p.SignalParts, asString(v))
		}
	}
	return p
}

// DisplayName returns the human-facing name of a parameter: the description
// when one was supplied, otherwise the signal code.
func (p Parameter) DisplayName() string {
	if p.Description != "" {
		return p.Description
	}
	return p.SignalCode
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// FormatDuration renders a duration with second precision for display.
func FormatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
