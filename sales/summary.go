package sales

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SharePlaces is the number of decimal places kept in a revenue share.
const SharePlaces = 2

var hundred = decimal.NewFromInt(100)

// ProductShare is one row of the revenue breakdown.
type ProductShare struct {
	Product string          `json:"product"`
	Revenue int64           `json:"revenue"`
	Units   int64           `json:"units"`
	Percent decimal.Decimal `json:"percent"`
}

// Summary is the read-only result of one aggregation run.
//
// MaxSalesProduct is taken from the bucket store, which keeps the last
// units value seen for each product. MaxUnitsSoldProduct is taken from the
// additive totals. The two can name different products for the same input.
type Summary struct {
	MaxSalesProduct     string         `json:"max_sales_product"`
	MaxRevenueProduct   string         `json:"max_revenue_product"`
	MaxUnitsSoldProduct string         `json:"max_units_sold_product"`
	TotalRevenue        int64          `json:"total_revenue"`
	RevenueShares       []ProductShare `json:"revenue_shares"`
}

// Share looks up the revenue share row for product.
func (s Summary) Share(product string) (ProductShare, bool) {
	for _, share := range s.RevenueShares {
		if share.Product == product {
			return share, true
		}
	}
	return ProductShare{}, false
}

// RevenuePercent computes revenue/total*100 rounded to SharePlaces, half
// away from zero.
func RevenuePercent(revenue, total int64) (decimal.Decimal, error) {
	if total == 0 {
		return decimal.Zero, ErrDivisionUndefined
	}
	return decimal.NewFromInt(revenue).Mul(hundred).DivRound(decimal.NewFromInt(total), SharePlaces), nil
}

// RevenueShares builds the percentage table in first-seen product order.
func RevenueShares(revenue, units *Totals, total int64) ([]ProductShare, error) {
	if total == 0 {
		return nil, fmt.Errorf("revenue shares over %d products: %w", revenue.Len(), ErrDivisionUndefined)
	}
	shares := make([]ProductShare, 0, revenue.Len())
	for _, product := range revenue.Products() {
		r, _ := revenue.Get(product)
		u, _ := units.Get(product)
		pct, err := RevenuePercent(r, total)
		if err != nil {
			return nil, err
		}
		shares = append(shares, ProductShare{
			Product: product,
			Revenue: r,
			Units:   u,
			Percent: pct,
		})
	}
	return shares, nil
}
