package sales

import (
	"fmt"
	"math"
)

// addInt64 returns a+b, or false if the sum does not fit in an int64.
func addInt64(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// Totals keeps a running sum per product and remembers the order in which
// products were first seen.
type Totals struct {
	order []string
	sums  map[string]int64
}

func NewTotals() *Totals {
	return &Totals{sums: make(map[string]int64)}
}

// Add adds n to the sum of product. On overflow the sum is left unchanged
// and an error wrapping ErrTotalOverflow is returned.
func (t *Totals) Add(product string, n int64) error {
	next, err := t.next(product, n)
	if err != nil {
		return err
	}
	if _, ok := t.sums[product]; !ok {
		t.order = append(t.order, product)
	}
	t.sums[product] = next
	return nil
}

// next computes the sum product would hold after adding n.
func (t *Totals) next(product string, n int64) (int64, error) {
	sum, ok := addInt64(t.sums[product], n)
	if !ok {
		return 0, fmt.Errorf("%w: %q at %d plus %d", ErrTotalOverflow, product, t.sums[product], n)
	}
	return sum, nil
}

func (t *Totals) Get(product string) (int64, bool) {
	v, ok := t.sums[product]
	return v, ok
}

// Products returns products in first-seen order.
func (t *Totals) Products() []string {
	return append([]string(nil), t.order...)
}

func (t *Totals) Len() int {
	return len(t.order)
}

// Max returns the product with the largest sum. Ties go to the product
// seen first. ok is false when no product has been added.
func (t *Totals) Max() (product string, sum int64, ok bool) {
	for _, p := range t.order {
		if !ok || t.sums[p] > sum {
			product, sum, ok = p, t.sums[p], true
		}
	}
	return product, sum, ok
}
