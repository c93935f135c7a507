package sales

import (
	"fmt"
	"strings"
)

// Default sort columns of the console utilities.
const (
	BubbleSortColumn    = ColRevenue
	SelectionSortColumn = ColProduct
)

// SortAlgorithm names one of the console sort routines.
type SortAlgorithm string

const (
	BubbleSort    SortAlgorithm = "bubble"
	SelectionSort SortAlgorithm = "selection"
)

// sortKeys parses column col of every row as an integer.
func sortKeys(rows [][]string, col int) ([]int64, error) {
	keys := make([]int64, len(rows))
	for i, row := range rows {
		if col < 0 || col >= len(row) {
			return nil, fmt.Errorf("%w: row %d has no column %d", ErrMalformedRecord, i+1, col)
		}
		v, err := parseInt(row[col])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d column %d: %v", ErrMalformedRecord, i+1, col, err)
		}
		keys[i] = v
	}
	return keys, nil
}

// BubbleSortByColumn sorts rows in place, ascending by the integer value of
// column col. Equal rows keep their relative order.
func BubbleSortByColumn(rows [][]string, col int) error {
	keys, err := sortKeys(rows, col)
	if err != nil {
		return err
	}
	for i := 0; i < len(rows); i++ {
		for j := 0; j < len(rows)-1; j++ {
			if keys[j] > keys[j+1] {
				keys[j], keys[j+1] = keys[j+1], keys[j]
				rows[j], rows[j+1] = rows[j+1], rows[j]
			}
		}
	}
	return nil
}

// SelectionSortByColumn sorts rows in place, ascending by the integer value
// of column col. It is not stable.
func SelectionSortByColumn(rows [][]string, col int) error {
	keys, err := sortKeys(rows, col)
	if err != nil {
		return err
	}
	for i := 0; i < len(rows); i++ {
		minIdx := i
		for j := i + 1; j < len(rows); j++ {
			if keys[j] < keys[minIdx] {
				minIdx = j
			}
		}
		keys[i], keys[minIdx] = keys[minIdx], keys[i]
		rows[i], rows[minIdx] = rows[minIdx], rows[i]
	}
	return nil
}

// SortFile reads the file at path and returns its table with rows sorted by
// algo on column col.
func SortFile(path string, algo SortAlgorithm, col int) (Table, error) {
	table, err := ReadTable(path)
	if err != nil {
		return Table{}, err
	}
	switch SortAlgorithm(strings.ToLower(string(algo))) {
	case BubbleSort:
		err = BubbleSortByColumn(table.Rows, col)
	case SelectionSort:
		err = SelectionSortByColumn(table.Rows, col)
	default:
		return Table{}, fmt.Errorf("unknown sort algorithm %q", algo)
	}
	if err != nil {
		return Table{}, fmt.Errorf("%s sort %s: %w", algo, path, err)
	}
	return table, nil
}
