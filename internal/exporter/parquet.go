package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/buddyroo30/readadat/internal/errors"
	"github.com/buddyroo30/readadat/pkg/contracts/domain"
)

// ExportParquet writes the sample table as a snappy-compressed Parquet file
// named <name>.parquet. Annotation columns become string fields and readout
// columns float64 fields, so downstream tools get typed intensities.
func (e *Exporter) ExportParquet(ctx context.Context, doc *domain.Document, name string) (string, error) {
	table := sampleArrowTable(doc.Samples)
	defer table.Release()

	if err := os.MkdirAll(e.outDir, 0755); err != nil {
		return "", errors.NewStorageError("create output directory", err)
	}
	path := filepath.Join(e.outDir, name+".parquet")

	f, err := os.Create(path)
	if err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("create parquet file %s", path), err)
	}
	defer f.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), f, props, arrowProps)
	if err != nil {
		return "", errors.NewStorageError("create parquet writer", err)
	}

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		writer.Close()
		return "", errors.NewStorageError(fmt.Sprintf("write parquet file %s", path), err)
	}
	// Close flushes the footer, so its error means a truncated file.
	if err := writer.Close(); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("finalize parquet file %s", path), err)
	}

	e.logger.InfoContext(ctx, "document exported to parquet",
		slog.String("path", path),
		slog.Int("samples", doc.Samples.NumSamples()),
		slog.Int("sequences", doc.Samples.NumSequences()))
	return path, nil
}

// sampleArrowTable converts the sample table to an Arrow table with one
// string field per annotation column and one float64 field per readout
// column. The caller owns the returned table and must Release it.
func sampleArrowTable(t *domain.SampleTable) arrow.Table {
	fields := make([]arrow.Field, 0, len(t.Fields)+len(t.SeqIDs))
	for _, name := range t.Fields {
		fields = append(fields, arrow.Field{Name: name, Type: arrow.BinaryTypes.String})
	}
	for _, id := range t.SeqIDs {
		fields = append(fields, arrow.Field{Name: id, Type: arrow.PrimitiveTypes.Float64})
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	for col := range t.Fields {
		b := builder.Field(col).(*array.StringBuilder)
		for row := range t.Annotations {
			b.Append(t.Annotations[row][col])
		}
	}
	offset := len(t.Fields)
	for col := range t.SeqIDs {
		b := builder.Field(offset + col).(*array.Float64Builder)
		for row := range t.Readouts {
			b.Append(t.Readouts[row][col])
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()

	return array.NewTableFromRecords(schema, []arrow.Record{rec})
}
