// Package sales turns rows of a sales CSV into per-product statistics.
package sales

import (
	"fmt"
	"strconv"
	"strings"
)

// Column positions in the input file.
const (
	ColCategory = 0
	ColID       = 1
	ColProduct  = 2
	ColExtra    = 3
	ColUnits    = 4
	ColRevenue  = 5

	RecordFields = 6
)

// Record is one sales transaction. Category, ID and Extra are carried for
// display and export only.
type Record struct {
	Category string
	ID       string
	Product  string
	Extra    string
	Units    int64
	Revenue  int64
}

// ParseRecord maps one CSV row onto a Record. line is the 1-based line
// number in the source file and is only used in error messages.
func ParseRecord(row []string, line int) (Record, error) {
	if len(row) < RecordFields {
		return Record{}, fmt.Errorf("%w: line %d has %d fields, want %d", ErrMalformedRecord, line, len(row), RecordFields)
	}
	units, err := parseInt(row[ColUnits])
	if err != nil {
		return Record{}, fmt.Errorf("%w: line %d units: %v", ErrMalformedRecord, line, err)
	}
	revenue, err := parseInt(row[ColRevenue])
	if err != nil {
		return Record{}, fmt.Errorf("%w: line %d revenue: %v", ErrMalformedRecord, line, err)
	}
	return Record{
		Category: row[ColCategory],
		ID:       row[ColID],
		Product:  strings.TrimSpace(row[ColProduct]),
		Extra:    row[ColExtra],
		Units:    units,
		Revenue:  revenue,
	}, nil
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
