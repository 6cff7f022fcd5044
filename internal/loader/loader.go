// Package loader materializes telemetry CSV exports into the DataSource
// shape the engine consumes. Encoding detection and delimiter sniffing are
// out of scope: exports are assumed UTF-8 and comma-separated.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/wagonlab/railscan/internal/contract"
)

// TableSource is the concrete DataSource backed by an in-memory rectangular
// block of raw cells.
type TableSource struct {
	headers  []string
	columns  map[string][]string
	rows     int
	path     string
	encoding string
	metadata map[string]string
}

var _ contract.DataSource = &TableSource{} // Compile-time check

// Headers returns the original column headers in file order.
func (s *TableSource) Headers() []string { return s.headers }

// RowCount returns the number of data rows.
func (s *TableSource) RowCount() int { return s.rows }

// Column returns the raw cells for a header name.
func (s *TableSource) Column(name string) ([]string, bool) {
	col, ok := s.columns[name]
	return col, ok
}

// Path returns the origin path of the data.
func (s *TableSource) Path() string { return s.path }

// Encoding returns the character encoding the loader decoded from.
func (s *TableSource) Encoding() string { return s.encoding }

// Metadata returns free-form loader key/values.
func (s *TableSource) Metadata() map[string]string { return s.metadata }

// FromCSVFile reads a telemetry CSV export from disk.
func FromCSVFile(path string) (*TableSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	src, err := FromCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	src.path = path
	return src, nil
}

// FromCSV reads a telemetry CSV export from a reader. The first record is
// the header row. Ragged rows are tolerated: short rows are padded with
// empty cells, long rows are truncated to the header width.
func FromCSV(r io.Reader) (*TableSource, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rectangularity is enforced below
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	// Columns are keyed by header name, so a repeated name would fold two
	// physical columns into one entry and break rectangularity.
	seen := make(map[string]int, len(header))
	columns := make(map[string][]string, len(header))
	for i, h := range header {
		if first, dup := seen[h]; dup {
			return nil, fmt.Errorf("duplicate header %q at columns %d and %d", h, first+1, i+1)
		}
		seen[h] = i
		columns[h] = nil
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", rows+2, err)
		}
		for i, h := range header {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			columns[h] = append(columns[h], cell)
		}
		rows++
	}

	return &TableSource{
		headers:  append([]string(nil), header...),
		columns:  columns,
		rows:     rows,
		encoding: "utf-8",
		metadata: map[string]string{"delimiter": ","},
	}, nil
}

// FromColumns builds an in-memory source from named columns. Used by tests
// and embedding callers that already hold a materialized table. Columns
// shorter than the longest one are padded with empty cells.
func FromColumns(headers []string, columns map[string][]string) *TableSource {
	rows := 0
	for _, col := range columns {
		if len(col) > rows {
			rows = len(col)
		}
	}

	padded := make(map[string][]string, len(headers))
	for _, h := range headers {
		col := append([]string(nil), columns[h]...)
		for len(col) < rows {
			col = append(col, "")
		}
		padded[h] = col
	}

	return &TableSource{
		headers:  append([]string(nil), headers...),
		columns:  padded,
		rows:     rows,
		encoding: "utf-8",
		metadata: map[string]string{},
	}
}
