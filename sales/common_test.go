package sales

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	TOTAL_RECORDS                = 10_000
	EXPECTED_TOTAL_REVENUE       = 500_950_000
	EXPECTED_KEYBOARD_REVENUE    = 100_230_000
	EXPECTED_KEYBOARD_UNITS      = 15_000
	EXPECTED_KEYBOARD_LAST_UNITS = 10
	EXPECTED_KEYBOARD_PERCENT    = "20.01"
	EXPECTED_PRODUCTS            = 5
	EXPECTED_RECORDS_PER_PRODUCT = TOTAL_RECORDS / EXPECTED_PRODUCTS
)

var regions = []string{"North", "South", "East", "West"}
var products = []string{"Laptop", "Phone", "Tablet", "Monitor", "Keyboard"}

// createSampleRecords cycles regions and products; revenue grows with the
// row index so Keyboard, the last product in each cycle, wins everything.
func createSampleRecords() []Record {
	records := make([]Record, 0, TOTAL_RECORDS)
	for i := 0; i < TOTAL_RECORDS; i++ {
		records = append(records, Record{
			Category: regions[i%len(regions)],
			ID:       strconv.Itoa(i + 1),
			Product:  products[i%len(products)],
			Extra:    "-",
			Units:    int64(1 + (i % 10)),
			Revenue:  100 + 10*int64(i),
		})
	}
	return records
}

const sampleHeader = "category,id,product,price,units,revenue"

// writeSalesFile writes header plus lines to a file under t.TempDir().
func writeSalesFile(t testing.TB, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	content := strings.Join(append([]string{sampleHeader}, lines...), "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
