package sales

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Table is the raw row matrix of a sales file, header split off.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable reads the whole file at path. The file is closed before
// ReadTable returns, whatever the outcome.
func ReadTable(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open sales file: %w", err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	return ParseTable(bufio.NewReader(file))
}

// ParseTable reads CSV from r. The first row is treated as the header.
func ParseTable(r io.Reader) (Table, error) {
	csvReader := csv.NewReader(r)
	// short rows are reported by ParseRecord with a line number
	csvReader.FieldsPerRecord = -1

	results, err := csvReader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if len(results) == 0 {
		return Table{}, nil
	}
	return Table{Header: results[0], Rows: results[1:]}, nil
}

// Records parses every data row. The first bad row aborts parsing.
func (t Table) Records() ([]Record, error) {
	records := make([]Record, 0, len(t.Rows))
	for idx, row := range t.Rows {
		// +2: 1-based, and the header occupies line 1
		record, err := ParseRecord(row, idx+2)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Matrix returns header and rows together, as the display shows them.
func (t Table) Matrix() [][]string {
	if t.Header == nil {
		return t.Rows
	}
	return append([][]string{t.Header}, t.Rows...)
}
