package sales

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tillberg/salesagg/kvstore"
)

type Option func(*options)

type options struct {
	buckets int
	logger  *zap.Logger
}

// WithBuckets sets the bucket count of the per-product store.
func WithBuckets(n int) Option {
	return func(o *options) { o.buckets = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Pipeline accumulates records into per-product state. A Pipeline serves a
// single run and is not safe for concurrent use.
type Pipeline struct {
	log *zap.Logger

	// last units value seen per product
	sales *kvstore.Store[int64]

	revenue      *Totals
	units        *Totals
	totalRevenue int64
	ingested     int
}

func NewPipeline(opts ...Option) (*Pipeline, error) {
	o := options{buckets: kvstore.DefaultBuckets, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	store, err := kvstore.New[int64](o.buckets)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		log:     o.logger,
		sales:   store,
		revenue: NewTotals(),
		units:   NewTotals(),
	}, nil
}

// Ingest folds records into the pipeline state. The store keeps only the
// latest units value per product; the totals accumulate. A record that
// would overflow any running total is rejected before it touches the state,
// and ingestion stops there.
func (p *Pipeline) Ingest(records []Record) error {
	for i, r := range records {
		if err := p.add(r); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		p.ingested++
	}
	p.log.Debug("ingested records",
		zap.Int("records", len(records)),
		zap.Int("products", p.sales.Len()),
		zap.Int64("total_revenue", p.totalRevenue))
	return nil
}

func (p *Pipeline) add(r Record) error {
	total, ok := addInt64(p.totalRevenue, r.Revenue)
	if !ok {
		return fmt.Errorf("%w: total revenue at %d plus %d", ErrTotalOverflow, p.totalRevenue, r.Revenue)
	}
	if _, err := p.revenue.next(r.Product, r.Revenue); err != nil {
		return err
	}
	if _, err := p.units.next(r.Product, r.Units); err != nil {
		return err
	}

	p.totalRevenue = total
	p.sales.Put(r.Product, r.Units)
	// both checked above
	_ = p.revenue.Add(r.Product, r.Revenue)
	_ = p.units.Add(r.Product, r.Units)
	return nil
}

func (p *Pipeline) TotalRevenue() int64 { return p.totalRevenue }

func (p *Pipeline) RevenueByProduct() *Totals { return p.revenue }

func (p *Pipeline) UnitsByProduct() *Totals { return p.units }

// Store exposes the last-write-wins units store.
func (p *Pipeline) Store() *kvstore.Store[int64] { return p.sales }

// Summarize derives the summary from everything ingested so far.
func (p *Pipeline) Summarize() (Summary, error) {
	shares, err := RevenueShares(p.revenue, p.units, p.totalRevenue)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		MaxSalesProduct: maxEntry(p.sales.Items()),
		TotalRevenue:    p.totalRevenue,
		RevenueShares:   shares,
	}
	summary.MaxRevenueProduct, _, _ = p.revenue.Max()
	summary.MaxUnitsSoldProduct, _, _ = p.units.Max()

	if summary.MaxSalesProduct != summary.MaxUnitsSoldProduct {
		p.log.Debug("store and totals disagree on best seller",
			zap.String("last_units", summary.MaxSalesProduct),
			zap.String("total_units", summary.MaxUnitsSoldProduct))
	}
	p.log.Info("summarized sales",
		zap.Int("records", p.ingested),
		zap.Int("products", len(shares)),
		zap.Int64("total_revenue", p.totalRevenue),
		zap.String("max_revenue_product", summary.MaxRevenueProduct))
	return summary, nil
}

// maxEntry returns the key of the first entry holding the largest value.
func maxEntry(items []kvstore.Entry[int64]) string {
	var best string
	var bestValue int64
	for i, e := range items {
		if i == 0 || e.Value > bestValue {
			best, bestValue = e.Key, e.Value
		}
	}
	return best
}

// Aggregate runs a fresh pipeline over records.
func Aggregate(records []Record, opts ...Option) (Summary, error) {
	p, err := NewPipeline(opts...)
	if err != nil {
		return Summary{}, err
	}
	if err := p.Ingest(records); err != nil {
		return Summary{}, fmt.Errorf("aggregate %d records: %w", len(records), err)
	}
	summary, err := p.Summarize()
	if err != nil {
		return Summary{}, fmt.Errorf("aggregate %d records: %w", len(records), err)
	}
	return summary, nil
}

// AggregateFile reads, parses and aggregates the file at path.
func AggregateFile(path string, opts ...Option) (Table, Summary, error) {
	table, err := ReadTable(path)
	if err != nil {
		return Table{}, Summary{}, err
	}
	records, err := table.Records()
	if err != nil {
		return Table{}, Summary{}, fmt.Errorf("%s: %w", path, err)
	}
	summary, err := Aggregate(records, opts...)
	if err != nil {
		return Table{}, Summary{}, err
	}
	return table, summary, nil
}
