package sales

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

var recordSchema = arrow.NewSchema(
	[]arrow.Field{
		{Name: "category", Type: arrow.BinaryTypes.String},
		{Name: "id", Type: arrow.BinaryTypes.String},
		{Name: "product", Type: arrow.BinaryTypes.String},
		{Name: "extra", Type: arrow.BinaryTypes.String},
		{Name: "units", Type: arrow.PrimitiveTypes.Int64},
		{Name: "revenue", Type: arrow.PrimitiveTypes.Int64},
	},
	nil,
)

var shareSchema = arrow.NewSchema(
	[]arrow.Field{
		{Name: "product", Type: arrow.BinaryTypes.String},
		{Name: "revenue", Type: arrow.PrimitiveTypes.Int64},
		{Name: "units", Type: arrow.PrimitiveTypes.Int64},
		{Name: "percent", Type: arrow.PrimitiveTypes.Float64},
	},
	nil,
)

// RecordsToArrow builds an Arrow record with one row per sales record. The
// caller must Release it.
func RecordsToArrow(records []Record) arrow.Record {
	rb := array.NewRecordBuilder(memory.DefaultAllocator, recordSchema)
	defer rb.Release()
	categoryBuilder := rb.Field(0).(*array.StringBuilder)
	idBuilder := rb.Field(1).(*array.StringBuilder)
	productBuilder := rb.Field(2).(*array.StringBuilder)
	extraBuilder := rb.Field(3).(*array.StringBuilder)
	unitsBuilder := rb.Field(4).(*array.Int64Builder)
	revenueBuilder := rb.Field(5).(*array.Int64Builder)

	for _, r := range records {
		categoryBuilder.Append(r.Category)
		idBuilder.Append(r.ID)
		productBuilder.Append(r.Product)
		extraBuilder.Append(r.Extra)
		unitsBuilder.Append(r.Units)
		revenueBuilder.Append(r.Revenue)
	}
	return rb.NewRecord()
}

// SharesToArrow builds an Arrow record of the revenue breakdown. The caller
// must Release it.
func SharesToArrow(shares []ProductShare) arrow.Record {
	rb := array.NewRecordBuilder(memory.DefaultAllocator, shareSchema)
	defer rb.Release()
	productBuilder := rb.Field(0).(*array.StringBuilder)
	revenueBuilder := rb.Field(1).(*array.Int64Builder)
	unitsBuilder := rb.Field(2).(*array.Int64Builder)
	percentBuilder := rb.Field(3).(*array.Float64Builder)

	for _, s := range shares {
		productBuilder.Append(s.Product)
		revenueBuilder.Append(s.Revenue)
		unitsBuilder.Append(s.Units)
		percentBuilder.Append(s.Percent.InexactFloat64())
	}
	return rb.NewRecord()
}

// writeParquet writes record to w. Closing the parquet writer also closes w
// when w is an io.Closer, so callers handing in a file must not close it
// again after a successful write.
func writeParquet(w io.Writer, record arrow.Record) error {
	writer, err := pqarrow.NewFileWriter(record.Schema(), w, nil, pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.WriteBuffered(record); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write record to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteRecordsParquet writes records to w as a single Parquet file. w is
// closed if it is an io.Closer.
func WriteRecordsParquet(w io.Writer, records []Record) error {
	record := RecordsToArrow(records)
	defer record.Release()
	return writeParquet(w, record)
}

// WriteSharesParquet writes the revenue breakdown of summary to w. w is
// closed if it is an io.Closer.
func WriteSharesParquet(w io.Writer, summary Summary) error {
	record := SharesToArrow(summary.RevenueShares)
	defer record.Release()
	return writeParquet(w, record)
}
