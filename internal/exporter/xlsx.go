package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/buddyroo30/readadat/internal/errors"
	"github.com/buddyroo30/readadat/pkg/contracts/domain"
)

// Sheet names in the exported workbook.
const (
	sheetMetadata  = "Metadata"
	sheetSequences = "Sequences"
	sheetSamples   = "Samples"
)

// ExportXLSX writes the document as a single workbook with three sheets:
// metadata key/value pairs, the sequence-annotation table and the sample
// table. Readout intensities are written as numeric cells.
func (e *Exporter) ExportXLSX(ctx context.Context, doc *domain.Document, name string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetMetadata)
	if err := writeStringSheet(f, sheetMetadata, metadataHeaders(), metadataRecords(doc)); err != nil {
		return "", err
	}

	if _, err := f.NewSheet(sheetSequences); err != nil {
		return "", errors.NewStorageError("create sequences sheet", err)
	}
	if err := writeStringSheet(f, sheetSequences, sequenceHeaders(doc.Sequences), sequenceRecords(doc.Sequences)); err != nil {
		return "", err
	}

	if _, err := f.NewSheet(sheetSamples); err != nil {
		return "", errors.NewStorageError("create samples sheet", err)
	}
	if err := writeSampleSheet(f, sheetSamples, doc.Samples); err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.outDir, 0755); err != nil {
		return "", errors.NewStorageError("create output directory", err)
	}
	path := filepath.Join(e.outDir, name+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("save workbook %s", path), err)
	}

	e.logger.InfoContext(ctx, "document exported to xlsx",
		slog.String("path", path),
		slog.Int("samples", doc.Samples.NumSamples()),
		slog.Int("sequences", doc.Sequences.NumSequences()))
	return path, nil
}

// writeStringSheet fills a sheet from a header row and string records.
func writeStringSheet(f *excelize.File, sheet string, headers []string, records [][]string) error {
	for col, h := range headers {
		if err := setCell(f, sheet, col+1, 1, h); err != nil {
			return err
		}
	}
	for rowIdx, record := range records {
		for col, value := range record {
			if err := setCell(f, sheet, col+1, rowIdx+2, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeSampleSheet fills the samples sheet: annotation values as strings,
// readouts as float64 so spreadsheet tools see numeric cells.
func writeSampleSheet(f *excelize.File, sheet string, t *domain.SampleTable) error {
	for col, h := range t.Columns() {
		if err := setCell(f, sheet, col+1, 1, h); err != nil {
			return err
		}
	}
	for i := range t.Annotations {
		row := i + 2
		for col, value := range t.Annotations[i] {
			if err := setCell(f, sheet, col+1, row, value); err != nil {
				return err
			}
		}
		offset := len(t.Fields)
		for col, value := range t.Readouts[i] {
			if err := setCell(f, sheet, offset+col+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("resolve cell %d,%d", col, row), err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return errors.NewStorageError(fmt.Sprintf("set cell %s", cell), err)
	}
	return nil
}
