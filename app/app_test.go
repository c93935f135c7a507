package app

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tillberg/salesagg/sales"
)

const salesCSV = `category,id,product,price,units,revenue
Electronics,1,A,10,10,100
Electronics,2,B,10,5,50
Electronics,3,A,10,3,30
`

type recordingDisplay struct {
	tables    []sales.Table
	summaries []sales.Summary
	err       error
}

func (d *recordingDisplay) ShowTable(table sales.Table) error {
	d.tables = append(d.tables, table)
	return d.err
}

func (d *recordingDisplay) ShowSummary(summary sales.Summary) error {
	d.summaries = append(d.summaries, summary)
	return d.err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(input string) Config {
	cfg := DefaultConfig()
	cfg.Input = input
	return cfg
}

func TestControllerLoad(t *testing.T) {
	display := &recordingDisplay{}
	c := NewController(testConfig(writeFile(t, "data.csv", salesCSV)), display, zaptest.NewLogger(t))
	assert.Nil(t, c.State())

	state, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, state, c.State())
	assert.Len(t, state.Records, 3)
	assert.Equal(t, "B", state.Summary.MaxSalesProduct)
	assert.Equal(t, "A", state.Summary.MaxRevenueProduct)
	assert.Equal(t, "A", state.Summary.MaxUnitsSoldProduct)

	require.Len(t, display.tables, 1)
	assert.Len(t, display.tables[0].Matrix(), 4)
	require.Len(t, display.summaries, 1)
	assert.EqualValues(t, 180, display.summaries[0].TotalRevenue)
}

func TestControllerFailedLoadKeepsState(t *testing.T) {
	path := writeFile(t, "data.csv", salesCSV)
	display := &recordingDisplay{}
	c := NewController(testConfig(path), display, nil)

	first, err := c.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("category,id,product,price,units,revenue\nElectronics,1,A\n"), 0o644))
	state, err := c.Load(context.Background())
	require.ErrorIs(t, err, sales.ErrMalformedRecord)
	assert.Nil(t, state)
	assert.Same(t, first, c.State())
	assert.Len(t, display.summaries, 1)

	require.NoError(t, os.WriteFile(path, []byte("category,id,product,price,units,revenue\nElectronics,1,A,1,1,0\n"), 0o644))
	_, err = c.Load(context.Background())
	require.ErrorIs(t, err, sales.ErrDivisionUndefined)
	assert.Same(t, first, c.State())
}

func TestControllerDisplayError(t *testing.T) {
	display := &recordingDisplay{err: errors.New("closed")}
	c := NewController(testConfig(writeFile(t, "data.csv", salesCSV)), display, nil)

	state, err := c.Load(context.Background())
	require.Error(t, err)
	require.NotNil(t, state)
	assert.Same(t, state, c.State())
}

func TestControllerVerifyAndParquet(t *testing.T) {
	cfg := testConfig(writeFile(t, "data.csv", salesCSV))
	cfg.Verify = true
	cfg.ParquetOut = filepath.Join(t.TempDir(), "shares.parquet")

	state, err := NewController(cfg, nil, zaptest.NewLogger(t)).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, state)

	info, err := os.Stat(cfg.ParquetOut)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	db, err := sql.Open("duckdb", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var products int
	var revenue int64
	query := fmt.Sprintf("SELECT COUNT(*), SUM(revenue)::BIGINT FROM read_parquet('%s')", cfg.ParquetOut)
	require.NoError(t, db.QueryRow(query).Scan(&products, &revenue))
	assert.Equal(t, 2, products)
	assert.EqualValues(t, 180, revenue)

	// a second run overwrites the export without tripping over the closed file
	_, err = NewController(cfg, nil, nil).Load(context.Background())
	require.NoError(t, err)
}

func TestTextDisplay(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(testConfig(writeFile(t, "data.csv", salesCSV)), NewTextDisplay(&buf), nil)
	_, err := c.Load(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Electronics")
	assert.Contains(t, out, "Max sales product: B\n")
	assert.Contains(t, out, "Max revenue product: A\n")
	assert.Contains(t, out, "Total revenue: 180\n")
	assert.Contains(t, out, "72.22%")
	assert.Contains(t, out, "27.78%")
}

func TestWriteJSON(t *testing.T) {
	c := NewController(testConfig(writeFile(t, "data.csv", salesCSV)), nil, nil)
	state, err := c.Load(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, state))

	var decoded struct {
		RunID   string `json:"run_id"`
		Records int    `json:"records"`
		Summary struct {
			MaxSalesProduct string `json:"max_sales_product"`
			TotalRevenue    int64  `json:"total_revenue"`
			RevenueShares   []struct {
				Product string `json:"product"`
				Percent string `json:"percent"`
			} `json:"revenue_shares"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, state.RunID.String(), decoded.RunID)
	assert.Equal(t, 3, decoded.Records)
	assert.Equal(t, "B", decoded.Summary.MaxSalesProduct)
	assert.EqualValues(t, 180, decoded.Summary.TotalRevenue)
	require.Len(t, decoded.Summary.RevenueShares, 2)
	assert.Equal(t, "72.22", decoded.Summary.RevenueShares[0].Percent)
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "salesagg.yaml", "input: sales.csv\nbuckets: 7\nverify: true\nsorts:\n  enabled: false\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sales.csv", cfg.Input)
	assert.Equal(t, 7, cfg.Buckets)
	assert.True(t, cfg.Verify)
	assert.False(t, cfg.Sorts.Enabled)
	// untouched keys keep their defaults
	assert.Equal(t, sales.BubbleSortColumn, cfg.Sorts.BubbleColumn)
	assert.Equal(t, sales.SelectionSortColumn, cfg.Sorts.SelectionColumn)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "bad.yaml", "buckets: 0\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeFile(t, "broken.yaml", "buckets: [\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	cfg := DefaultConfig()
	cfg.Input = ""
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
