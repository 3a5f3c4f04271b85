package adat

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/buddyroo30/readadat/internal/errors"
	"github.com/buddyroo30/readadat/pkg/contracts/domain"
)

// Section markers and distinguished field names of the ADAT format.
const (
	sectionHeader  = "^HEADER"
	sectionColData = "^COL_DATA"
	sectionRowData = "^ROW_DATA"
	sectionTable   = "^TABLE_BEGIN"

	markerChecksum = "!Checksum"
	markerName     = "!Name"

	fieldSampleType = "SampleType"
	fieldRowCheck   = "RowCheck"
	fieldColCheck   = "ColCheck"
	fieldSeqID      = "SeqId"

	passValue   = "PASS"
	sampleValue = "Sample"

	seqIDPrefix = "SeqId."
)

// Options control row and column filtering during a parse.
type Options struct {
	// KeepOnlyPasses drops sequences whose ColCheck value is not PASS and
	// sample rows whose RowCheck value is not PASS.
	KeepOnlyPasses bool
	// KeepOnlySamples drops rows whose SampleType value is not Sample.
	KeepOnlySamples bool
}

// DefaultOptions returns the standard filtering: quality-check and
// sample-type filtering both enabled.
func DefaultOptions() Options {
	return Options{KeepOnlyPasses: true, KeepOnlySamples: true}
}

// ReadFile opens and parses the ADAT file at path.
func ReadFile(path string, opts Options) (*domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("failed to open adat file %s", path), err)
	}
	defer f.Close()

	start := time.Now()
	doc, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	slog.Info("adat file parsed",
		slog.String("file", path),
		slog.Int("samples", doc.Samples.NumSamples()),
		slog.Int("sequences", doc.Sequences.NumSequences()),
		slog.Duration("duration", time.Since(start)))
	return doc, nil
}

// Read parses ADAT content from r in a single forward pass. Each call is
// independent; no state survives the return.
func Read(r io.Reader, opts Options) (*domain.Document, error) {
	st := &parseState{
		opts:          opts,
		metadata:      domain.NewMetadata(),
		sampleTypeIdx: -1,
		rowCheckIdx:   -1,
	}

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewIOError("failed to read adat content", err).
				WithContext("line", st.line+1)
		}
		st.line++
		if err := st.consume(fields); err != nil {
			return nil, err
		}
	}

	return st.finalize()
}

// parseState is the accumulator for one pass over the file.
type parseState struct {
	opts Options

	section string

	checksum string
	metadata *domain.Metadata

	// sampleFields is the schema from the ^ROW_DATA !Name row; nil until
	// that row is seen. The two filter offsets stay -1 when the schema
	// does not carry the field, which disables that filter axis.
	sampleFields  []string
	sampleTypeIdx int
	rowCheckIdx   int

	seqLabels []string
	seqRows   [][]string
	colPass   []bool

	// samples holds retained rows as annotations followed by readouts,
	// still text until finalize coerces the readout columns.
	samples [][]string

	line int
}

func (st *parseState) consume(fields []string) error {
	if st.section == sectionTable {
		return st.consumeTableRow(fields)
	}

	first := fields[0]
	switch {
	case first == sectionHeader || first == sectionColData ||
		first == sectionRowData || first == sectionTable:
		st.section = first
	case st.section == "" && first == markerChecksum:
		if len(fields) < 2 {
			return errors.NewFormatError("checksum line is missing its value", nil).
				WithContext("line", st.line)
		}
		st.checksum = fields[1]
	case st.section == sectionHeader:
		if len(fields) < 2 {
			return errors.NewFormatError(
				fmt.Sprintf("header line %q is missing its value", first), nil).
				WithContext("line", st.line)
		}
		st.metadata.Set(first, fields[1])
	case st.section == sectionRowData && first == markerName:
		st.setSchema(fields[1:])
	}
	return nil
}

// setSchema records the sample-annotation field names and locates the
// SampleType and RowCheck offsets used for row filtering.
func (st *parseState) setSchema(fields []string) {
	schema := make([]string, len(fields))
	copy(schema, fields)
	st.sampleFields = schema
	st.sampleTypeIdx = slices.Index(schema, fieldSampleType)
	st.rowCheckIdx = slices.Index(schema, fieldRowCheck)

	slog.Debug("sample annotation schema discovered",
		slog.Int("fields", len(schema)),
		slog.Int("sample_type_offset", st.sampleTypeIdx),
		slog.Int("row_check_offset", st.rowCheckIdx))
}

func (st *parseState) consumeTableRow(fields []string) error {
	if st.sampleFields == nil {
		return errors.NewFormatError("no !Name row found in ^ROW_DATA before ^TABLE_BEGIN", nil).
			WithContext("line", st.line)
	}
	n := len(st.sampleFields)
	if len(fields) <= n {
		return errors.NewFormatError(
			fmt.Sprintf("table row has %d fields, need at least %d", len(fields), n+1), nil).
			WithContext("line", st.line)
	}

	if label := fields[n]; label != "" {
		st.addSequenceRow(label, fields[n+1:])
		return nil
	}
	st.addSampleRow(fields, n)
	return nil
}

// addSequenceRow appends a column-annotation row. A ColCheck row also fixes
// the column pass mask when pass filtering is on.
func (st *parseState) addSequenceRow(label string, values []string) {
	vals := make([]string, len(values))
	copy(vals, values)
	st.seqLabels = append(st.seqLabels, label)
	st.seqRows = append(st.seqRows, vals)

	if st.opts.KeepOnlyPasses && label == fieldColCheck {
		mask := make([]bool, len(vals))
		for i, v := range vals {
			mask[i] = v == passValue
		}
		st.colPass = mask
	}
}

// addSampleRow applies the row filters and, for surviving rows, appends the
// annotations plus readouts. Readouts are mask-filtered only when the
// ColCheck mask is already known at this point in the pass.
func (st *parseState) addSampleRow(fields []string, n int) {
	annots := fields[:n]
	if slices.Equal(annots, st.sampleFields) {
		return // stray header row embedded in the table
	}
	if st.opts.KeepOnlySamples && st.sampleTypeIdx >= 0 &&
		annots[st.sampleTypeIdx] != sampleValue {
		return
	}
	if st.opts.KeepOnlyPasses && st.rowCheckIdx >= 0 &&
		annots[st.rowCheckIdx] != passValue {
		return
	}

	readouts := fields[n+1:]
	if st.opts.KeepOnlyPasses && len(st.colPass) > 0 {
		readouts = applyMask(readouts, st.colPass)
	}

	rec := make([]string, 0, n+len(readouts))
	rec = append(rec, annots...)
	rec = append(rec, readouts...)
	st.samples = append(st.samples, rec)
}

// finalize applies the deferred column filtering and assembles the tables.
func (st *parseState) finalize() (*domain.Document, error) {
	if st.sampleFields == nil {
		return nil, errors.NewFormatError("no !Name row found in ^ROW_DATA section", nil)
	}

	if st.opts.KeepOnlyPasses && len(st.colPass) > 0 {
		for i, row := range st.seqRows {
			st.seqRows[i] = applyMask(row, st.colPass)
		}
	}

	seqIDs, err := st.sequenceIDs()
	if err != nil {
		return nil, err
	}
	sequences, err := st.buildSequenceTable(seqIDs)
	if err != nil {
		return nil, err
	}
	samples, err := st.buildSampleTable(seqIDs)
	if err != nil {
		return nil, err
	}

	return &domain.Document{
		Checksum:       st.checksum,
		Metadata:       st.metadata,
		SampleFields:   st.sampleFields,
		SequenceFields: st.seqLabels,
		Sequences:      sequences,
		Samples:        samples,
	}, nil
}

// sequenceIDs derives the protein column labels from the SeqId row values.
func (st *parseState) sequenceIDs() ([]string, error) {
	for i, label := range st.seqLabels {
		if label == fieldSeqID {
			row := st.seqRows[i]
			ids := make([]string, len(row))
			for j, v := range row {
				ids[j] = seqIDPrefix + v
			}
			return ids, nil
		}
	}
	return nil, errors.NewFormatError("no SeqId column-annotation row found", nil)
}

func (st *parseState) buildSequenceTable(seqIDs []string) (*domain.SequenceTable, error) {
	for i, row := range st.seqRows {
		if len(row) != len(seqIDs) {
			return nil, errors.NewFormatError(
				fmt.Sprintf("column-annotation row %q has %d values, want %d",
					st.seqLabels[i], len(row), len(seqIDs)), nil)
		}
	}
	return &domain.SequenceTable{
		Labels: st.seqLabels,
		SeqIDs: seqIDs,
		Rows:   st.seqRows,
	}, nil
}

func (st *parseState) buildSampleTable(seqIDs []string) (*domain.SampleTable, error) {
	n := len(st.sampleFields)
	annotations := make([][]string, len(st.samples))
	readouts := make([][]float64, len(st.samples))

	for i, rec := range st.samples {
		if len(rec) != n+len(seqIDs) {
			return nil, errors.NewFormatError(
				fmt.Sprintf("sample row %d has %d readout values, want %d",
					i, len(rec)-n, len(seqIDs)), nil)
		}
		annotations[i] = rec[:n:n]

		vals := make([]float64, len(seqIDs))
		for j, raw := range rec[n:] {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, errors.NewParseError(
					fmt.Sprintf("readout %q in column %s of sample row %d is not numeric",
						raw, seqIDs[j], i), err).
					WithContext("column", seqIDs[j]).
					WithContext("row", i)
			}
			vals[j] = f
		}
		readouts[i] = vals
	}

	return &domain.SampleTable{
		Fields:      st.sampleFields,
		SeqIDs:      seqIDs,
		Annotations: annotations,
		Readouts:    readouts,
	}, nil
}

// applyMask keeps values at mask-true positions, truncating at the shorter
// of the two slices.
func applyMask(values []string, mask []bool) []string {
	out := make([]string, 0, len(values))
	for i, v := range values {
		if i >= len(mask) {
			break
		}
		if mask[i] {
			out = append(out, v)
		}
	}
	return out
}
