package sales

import "errors"

var (
	// ErrMalformedRecord is returned when a row is too short or a numeric
	// column does not hold an integer.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrDivisionUndefined is returned when revenue shares are requested
	// while the total revenue is zero.
	ErrDivisionUndefined = errors.New("total revenue is zero")

	// ErrTotalOverflow is returned when a running total no longer fits in
	// an int64.
	ErrTotalOverflow = errors.New("total overflows int64")

	// ErrCrossCheckMismatch is returned when DuckDB disagrees with the
	// in-memory aggregation.
	ErrCrossCheckMismatch = errors.New("cross-check mismatch")
)
