package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/buddyroo30/readadat/internal/errors"
	"github.com/buddyroo30/readadat/pkg/contracts/domain"
)

// Supported export formats.
const (
	FormatCSV     = "csv"
	FormatXLSX    = "xlsx"
	FormatParquet = "parquet"
)

// Exporter writes parsed documents to the configured output directory.
type Exporter struct {
	csvWriter *CSVWriter
	outDir    string
	logger    *slog.Logger
}

// NewExporter creates an exporter writing into outDir.
func NewExporter(outDir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		csvWriter: NewCSVWriter(outDir),
		outDir:    outDir,
		logger:    logger,
	}
}

// Export writes doc in the given format under the base name and returns the
// paths of the files written. CSV produces three files (metadata, sequences,
// samples); XLSX one workbook with three sheets; Parquet one file holding
// the sample table.
func (e *Exporter) Export(ctx context.Context, doc *domain.Document, format, name string) ([]string, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return e.ExportCSV(ctx, doc, name)
	case FormatXLSX:
		path, err := e.ExportXLSX(ctx, doc, name)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	case FormatParquet:
		path, err := e.ExportParquet(ctx, doc, name)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported export format %q", format))
	}
}

// ExportCSV writes the metadata, sequence and sample tables as three CSV
// files named <name>_metadata.csv, <name>_sequences.csv and <name>_samples.csv.
func (e *Exporter) ExportCSV(ctx context.Context, doc *domain.Document, name string) ([]string, error) {
	parts := []struct {
		suffix  string
		headers []string
		records [][]string
	}{
		{"_metadata.csv", metadataHeaders(), metadataRecords(doc)},
		{"_sequences.csv", sequenceHeaders(doc.Sequences), sequenceRecords(doc.Sequences)},
		{"_samples.csv", doc.Samples.Columns(), sampleRecords(doc.Samples)},
	}

	written := make([]string, 0, len(parts))
	for _, p := range parts {
		filePath := name + p.suffix
		if err := e.csvWriter.WriteCSV(filePath, WriteOptions{
			Headers: p.headers,
			Records: p.records,
		}); err != nil {
			return nil, err
		}
		written = append(written, e.csvWriter.resolvePath(filePath))
	}

	e.logger.InfoContext(ctx, "document exported to csv",
		slog.String("name", name),
		slog.Int("files", len(written)),
		slog.Int("samples", doc.Samples.NumSamples()),
		slog.Int("sequences", doc.Sequences.NumSequences()))
	return written, nil
}

// metadataHeaders returns the header row for the metadata table
func metadataHeaders() []string {
	return []string{"Key", "Value"}
}

// metadataRecords converts the header metadata to key/value rows. The
// checksum, when present, leads the rows the way it leads the file.
func metadataRecords(doc *domain.Document) [][]string {
	records := make([][]string, 0, doc.Metadata.Len()+1)
	if doc.Checksum != "" {
		records = append(records, []string{"!Checksum", doc.Checksum})
	}
	for _, key := range doc.Metadata.Keys() {
		value, _ := doc.Metadata.Get(key)
		records = append(records, []string{key, value})
	}
	return records
}

// sequenceHeaders returns the header row for the sequence-annotation table
func sequenceHeaders(t *domain.SequenceTable) []string {
	headers := make([]string, 0, len(t.SeqIDs)+1)
	headers = append(headers, "Annotation")
	headers = append(headers, t.SeqIDs...)
	return headers
}

// sequenceRecords converts the sequence-annotation table to rows, one per
// annotation label with the label in the first column.
func sequenceRecords(t *domain.SequenceTable) [][]string {
	records := make([][]string, len(t.Labels))
	for i, label := range t.Labels {
		row := make([]string, 0, len(t.Rows[i])+1)
		row = append(row, label)
		row = append(row, t.Rows[i]...)
		records[i] = row
	}
	return records
}

// sampleRecords converts the sample table to rows: annotation values
// followed by the formatted readout intensities.
func sampleRecords(t *domain.SampleTable) [][]string {
	records := make([][]string, t.NumSamples())
	for i := range t.Annotations {
		row := make([]string, 0, len(t.Fields)+len(t.SeqIDs))
		row = append(row, t.Annotations[i]...)
		for _, v := range t.Readouts[i] {
			row = append(row, formatFloat(v))
		}
		records[i] = row
	}
	return records
}
