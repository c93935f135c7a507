package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tillberg/salesagg/sales"
)

// Display renders the results of a run. Implementations must not retain
// or modify the values they are given.
type Display interface {
	ShowTable(table sales.Table) error
	ShowSummary(summary sales.Summary) error
}

// TextDisplay writes plain-text tables to an io.Writer.
type TextDisplay struct {
	w io.Writer
}

func NewTextDisplay(w io.Writer) *TextDisplay {
	return &TextDisplay{w: w}
}

func (d *TextDisplay) ShowTable(table sales.Table) error {
	tw := tabwriter.NewWriter(d.w, 0, 4, 2, ' ', 0)
	for _, row := range table.Matrix() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func (d *TextDisplay) ShowSummary(summary sales.Summary) error {
	fmt.Fprintf(d.w, "Max sales product: %s\n", summary.MaxSalesProduct)
	fmt.Fprintf(d.w, "Max revenue product: %s\n", summary.MaxRevenueProduct)
	fmt.Fprintf(d.w, "Max units sold product: %s\n", summary.MaxUnitsSoldProduct)
	fmt.Fprintf(d.w, "Total revenue: %d\n", summary.TotalRevenue)

	tw := tabwriter.NewWriter(d.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Product\tShare of revenue")
	for _, share := range summary.RevenueShares {
		fmt.Fprintf(tw, "%s\t%s%%\n", share.Product, share.Percent.StringFixed(sales.SharePlaces))
	}
	return tw.Flush()
}
