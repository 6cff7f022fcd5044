// Package signal parses raw column headers into typed telemetry parameters.
//
// A header is either an extended form "code::line|description" or a bare
// signal code. Bare codes follow the grammar TYPE_PART[_PART...][_WAGON]
// where TYPE is one of B, BY, W, DW, F, WF and WAGON is an integer in
// [1,15]. Headers that match none of the expected shapes still produce a
// Parameter, marked problematic, so a single bad column never aborts a load.
package signal

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wagonlab/railscan/schema"
)

// ExtendedSeparator splits a header into signal code and metadata.
const ExtendedSeparator = "::"

// dataTypeByCode maps the leading header token to a signal data type.
var dataTypeByCode = map[string]schema.DataType{
	"B":  schema.BooleanType,
	"BY": schema.ByteType,
	"W":  schema.WordType,
	"DW": schema.DoubleWordType,
	"F":  schema.FloatType,
	"WF": schema.WordFloatType,
}

// lineByType maps a data type to its default communication line.
var lineByType = map[schema.DataType]string{
	schema.BooleanType:    schema.LineCANControl,
	schema.ByteType:       schema.LineCANControl,
	schema.WordType:       schema.LineCANComfort,
	schema.DoubleWordType: schema.LineCANComfort,
	schema.FloatType:      schema.LineTrainVehicle,
	schema.WordFloatType:  schema.LineTrainVehicle,
}

var (
	dateHeaderRe    = regexp.MustCompile(`^Date:`)
	unnamedHeaderRe = regexp.MustCompile(`^Unnamed:\s*\d+$`)
	pureDigitsRe    = regexp.MustCompile(`^\d+$`)
)

// Parse converts a raw column header into a Parameter. It is a total
// function: any header yields a usable Parameter, with IsProblematic set
// when the expected grammar did not match.
func Parse(header string) schema.Parameter {
	header = strings.TrimSpace(header)
	if header == "" {
		return fallbackParameter(header, "empty header")
	}

	if strings.Contains(header, ExtendedSeparator) {
		return parseExtended(header)
	}

	// Special-case detection runs before the generic grammar, in priority
	// order: metadata, unnamed, numeric, reserved names.
	switch {
	case dateHeaderRe.MatchString(header):
		return specialParameter(header, schema.LineMetadata, "Export date column", "")
	case unnamedHeaderRe.MatchString(header):
		return specialParameter(header, schema.LineDataChannel, "Unnamed data channel", "1")
	case pureDigitsRe.MatchString(header):
		return specialParameter(header, schema.LineNumericData, "Numeric data column", "")
	case strings.EqualFold(header, "index"), strings.EqualFold(header, "timestamp"):
		return specialParameter(header, schema.LineMetadata, "Reserved column", "")
	}

	return parseGeneric(header, header, "", "")
}

// parseExtended handles the "code::line|description" header form. Metadata
// missing entirely after the separator is malformed and falls back to a
// generic problematic parameter.
func parseExtended(header string) schema.Parameter {
	code, meta, _ := strings.Cut(header, ExtendedSeparator)
	code = strings.TrimSpace(code)
	meta = strings.TrimSpace(meta)
	if code == "" || meta == "" {
		return fallbackParameter(header, "malformed extended header")
	}

	line, description, _ := strings.Cut(meta, "|")
	return parseGeneric(header, code, strings.TrimSpace(line), strings.TrimSpace(description))
}

// parseGeneric applies the underscore grammar to a bare signal code.
// lineOverride, when non-empty, wins over the type-derived line.
func parseGeneric(fullColumn, code, lineOverride, description string) schema.Parameter {
	tokens := strings.Split(code, "_")

	dataType, typeKnown := dataTypeByCode[strings.ToUpper(tokens[0])]
	if !typeKnown {
		dataType = schema.BooleanType
	}

	// Unknown leading tokens stay in the signal parts since they still
	// carry semantic meaning.
	rest := tokens
	if typeKnown {
		rest = tokens[1:]
	}

	// A trailing numeric token in [1,15] is the wagon number.
	wagon := ""
	if len(rest) > 0 {
		last := rest[len(rest)-1]
		if n, err := strconv.Atoi(last); err == nil && n >= 1 && n <= schema.MaxWagon {
			wagon = last
			rest = rest[:len(rest)-1]
		}
	}

	parts := make([]string, 0, len(rest))
	for _, tok := range rest {
		if tok != "" {
			parts = append(parts, tok)
		}
	}

	upperCode := strings.ToUpper(code)
	component, hardware := classify(upperCode, dataType)

	line := lineOverride
	if line == "" {
		line = lineByType[dataType]
		if line == "" {
			line = schema.LineUnknown
		}
	}

	return schema.Parameter{
		SignalCode:         code,
		FullColumn:         fullColumn,
		Line:               line,
		Description:        description,
		DataType:           dataType,
		SignalParts:        parts,
		Wagon:              wagon,
		IsTimestampRelated: strings.Contains(upperCode, "TIMESTAMP"),
		ComponentType:      component,
		HardwareType:       hardware,
		IsProblematic:      false,
	}
}

// specialParameter builds the dedicated problematic parameter for the
// recognized non-signal headers (metadata, unnamed, numeric, reserved).
func specialParameter(header, line, description, wagon string) schema.Parameter {
	return schema.Parameter{
		SignalCode:    header,
		FullColumn:    header,
		Line:          line,
		Description:   description,
		DataType:      schema.BooleanType,
		Wagon:         wagon,
		ComponentType: schema.UnknownSystem,
		HardwareType:  schema.UnknownHardware,
		IsProblematic: true,
	}
}

// fallbackParameter is the last-resort Parameter for headers no grammar
// could interpret.
func fallbackParameter(header, reason string) schema.Parameter {
	code := header
	if code == "" {
		code = "UNKNOWN"
	}
	return schema.Parameter{
		SignalCode:    code,
		FullColumn:    code,
		Line:          schema.LineUnknown,
		Description:   reason,
		DataType:      schema.BooleanType,
		ComponentType: schema.UnknownSystem,
		HardwareType:  schema.UnknownHardware,
		IsProblematic: true,
	}
}

// ParseAll parses every header in order. Duplicate signal codes keep their
// first parse; later duplicates are marked problematic so the caller can
// report them without losing columns.
func ParseAll(headers []string) []schema.Parameter {
	seen := make(map[string]bool, len(headers))
	params := make([]schema.Parameter, 0, len(headers))
	for _, h := range headers {
		p := Parse(h)
		if seen[p.SignalCode] {
			p.IsProblematic = true
			p.Description = "duplicate signal code"
		}
		seen[p.SignalCode] = true
		params = append(params, p)
	}
	return params
}
