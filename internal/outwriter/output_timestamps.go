package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteTimestamps prints the time axis summary, dispatching based on the output format configured.
func (ow *OutWriter) WriteTimestamps(fields schema.TimeRangeFields, report schema.LoadReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			type JSONTimestamps struct {
				schema.TimeRangeFields
				ValidTimestamps int      `json:"valid_timestamps"`
				Wagon           string   `json:"wagon,omitempty"`
				Warnings        []string `json:"warnings,omitempty"`
			}
			return writeJSON(w, JSONTimestamps{
				TimeRangeFields: fields,
				ValidTimestamps: report.ValidTimestamps,
				Wagon:           report.TimestampWagon,
				Warnings:        report.Warnings,
			})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"from", "to", "duration", "total_records", "valid_timestamps", "source_tier", "wagon"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return csvWriter.Write([]string{
					fields.From,
					fields.To,
					fields.Duration,
					strconv.Itoa(fields.TotalRecords),
					strconv.Itoa(report.ValidTimestamps),
					string(fields.SourceTier),
					report.TimestampWagon,
				})
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for timestamp summaries")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTimestampTable(fields, report, w)
		}, "Wrote table")
	}
}

// writeTimestampTable generates and writes the human-readable summary.
func writeTimestampTable(fields schema.TimeRangeFields, report schema.LoadReport, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Field", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := [][]string{
		{"From", fields.From},
		{"To", fields.To},
		{"Duration", fields.Duration},
		{"Records", strconv.Itoa(fields.TotalRecords)},
		{"Valid timestamps", strconv.Itoa(report.ValidTimestamps)},
		{"Source tier", string(fields.SourceTier)},
	}
	if report.TimestampWagon != "" {
		data = append(data, []string{"Wagon", report.TimestampWagon})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, w := range report.Warnings {
		contract.LogWarn(w, nil)
	}
	return nil
}
