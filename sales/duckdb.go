package sales

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const productTotalsQuery = `
	SELECT
		product,
		SUM(revenue)::BIGINT AS total_revenue,
		SUM(units)::BIGINT AS total_units
	FROM sales
	GROUP BY product`

// ProductTotals is one row of the DuckDB group-by.
type ProductTotals struct {
	Product string
	Revenue int64
	Units   int64
}

// OpenDuckDB opens an in-memory DuckDB holding records in a table named
// sales. Records travel through a temporary Parquet file.
func OpenDuckDB(ctx context.Context, records []Record) (*sql.DB, error) {
	tempFile, err := os.CreateTemp("", "sales-*.parquet")
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if err := WriteRecordsParquet(tempFile, records); err != nil {
		_ = tempFile.Close()
		return nil, err
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	query := fmt.Sprintf("CREATE TABLE sales AS SELECT * FROM read_parquet('%s')",
		strings.ReplaceAll(tempFile.Name(), "'", "''"))
	if _, err := db.ExecContext(ctx, query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load parquet into duckdb: %w", err)
	}
	return db, nil
}

// QueryProductTotals runs the per-product group-by against db.
func QueryProductTotals(ctx context.Context, db *sql.DB) (map[string]ProductTotals, error) {
	rows, err := db.QueryContext(ctx, productTotalsQuery)
	if err != nil {
		return nil, fmt.Errorf("query product totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]ProductTotals)
	for rows.Next() {
		var t ProductTotals
		if err := rows.Scan(&t.Product, &t.Revenue, &t.Units); err != nil {
			return nil, fmt.Errorf("scan product totals: %w", err)
		}
		totals[t.Product] = t
	}
	return totals, rows.Err()
}

// CrossCheck recomputes per-product totals in DuckDB and compares them with
// summary. Any difference is reported as ErrCrossCheckMismatch.
func CrossCheck(ctx context.Context, records []Record, summary Summary) error {
	db, err := OpenDuckDB(ctx, records)
	if err != nil {
		return err
	}
	defer db.Close()

	totals, err := QueryProductTotals(ctx, db)
	if err != nil {
		return err
	}

	if len(totals) != len(summary.RevenueShares) {
		return fmt.Errorf("%w: duckdb has %d products, summary has %d",
			ErrCrossCheckMismatch, len(totals), len(summary.RevenueShares))
	}
	var totalRevenue int64
	for _, share := range summary.RevenueShares {
		t, ok := totals[share.Product]
		if !ok {
			return fmt.Errorf("%w: product %q missing from duckdb", ErrCrossCheckMismatch, share.Product)
		}
		if t.Revenue != share.Revenue || t.Units != share.Units {
			return fmt.Errorf("%w: product %q revenue %d/%d units %d/%d",
				ErrCrossCheckMismatch, share.Product, t.Revenue, share.Revenue, t.Units, share.Units)
		}
		totalRevenue += t.Revenue
	}
	if totalRevenue != summary.TotalRevenue {
		return fmt.Errorf("%w: total revenue %d/%d", ErrCrossCheckMismatch, totalRevenue, summary.TotalRevenue)
	}
	return nil
}
