package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/buddyroo30/readadat/internal/adat"
	"github.com/buddyroo30/readadat/internal/cli"
	"github.com/buddyroo30/readadat/internal/config"
	"github.com/buddyroo30/readadat/internal/infrastructure"
	"github.com/buddyroo30/readadat/pkg/contracts/domain"
)

// previewLimit caps how many rows and values the text output shows per table.
const previewLimit = 5

func main() {
	adatFile := flag.String("adat_file", "", "path to the ADAT file to parse (required)")
	keepOnlyPasses := flag.Bool("keepOnlyPasses", true, "keep only sequences and sample rows whose quality checks PASS")
	keepOnlySamples := flag.Bool("keepOnlySamples", true, "keep only rows whose SampleType is Sample")
	format := flag.String("format", "text", "output format: text | json")
	logLevel := flag.String("log-level", "", "override configured log level (debug|info|warn|error)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	opts := cli.ReadOptions{
		AdatFile:        *adatFile,
		KeepOnlyPasses:  *keepOnlyPasses,
		KeepOnlySamples: *keepOnlySamples,
		Format:          *format,
	}
	if err := cli.Validate(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger.InfoContext(ctx, "Starting ADAT parse",
		slog.String("file", opts.AdatFile),
		slog.Bool("keep_only_passes", opts.KeepOnlyPasses),
		slog.Bool("keep_only_samples", opts.KeepOnlySamples),
		slog.String("format", opts.Format))

	parseOpts := adat.Options{
		KeepOnlyPasses:  opts.KeepOnlyPasses,
		KeepOnlySamples: opts.KeepOnlySamples,
	}
	doc, err := adat.ReadFile(opts.AdatFile, parseOpts)
	if err != nil {
		logger.ErrorContext(ctx, "Parse failed",
			slog.String("file", opts.AdatFile),
			slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	summary := adat.NewSummarizer(logger).Summarize(ctx, doc, parseOpts)

	switch opts.Format {
	case "json":
		if err := writeDocumentJSON(os.Stdout, doc); err != nil {
			logger.ErrorContext(ctx, "JSON output failed", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		writeDocumentText(os.Stdout, doc, summary)
	}
}

// writeDocumentJSON prints the whole document as indented JSON.
func writeDocumentJSON(w io.Writer, doc *domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeDocumentText prints a human-readable rendition: checksum, header
// metadata, then previews of the sequence and sample tables.
func writeDocumentText(w io.Writer, doc *domain.Document, summary *adat.Summary) {
	if summary.HasChecksum {
		fmt.Fprintf(w, "Checksum: %s\n", doc.Checksum)
	} else {
		fmt.Fprintln(w, "Checksum: (none)")
	}

	fmt.Fprintf(w, "Metadata: %d keys\n", summary.MetadataKeys)
	for _, key := range doc.Metadata.Keys() {
		value, _ := doc.Metadata.Get(key)
		fmt.Fprintf(w, "  %s = %s\n", key, value)
	}

	fmt.Fprintf(w, "Sequences: %d columns, %d annotation labels\n",
		summary.Sequences, summary.SequenceFields)
	for i, label := range doc.Sequences.Labels {
		fmt.Fprintf(w, "  %s: %s\n", label, previewValues(doc.Sequences.Rows[i]))
	}

	fmt.Fprintf(w, "Samples: %d rows, %d annotation fields, %d readout columns\n",
		summary.Samples, summary.SampleFields, doc.Samples.NumSequences())
	fmt.Fprintf(w, "  %s\n", previewValues(doc.Samples.Columns()))
	for i := 0; i < doc.Samples.NumSamples() && i < previewLimit; i++ {
		fmt.Fprintf(w, "  %s\n", previewValues(sampleRow(doc.Samples, i)))
	}
	if extra := doc.Samples.NumSamples() - previewLimit; extra > 0 {
		fmt.Fprintf(w, "  ... %d more rows\n", extra)
	}
}

// sampleRow renders sample row i as strings: annotations then readouts.
func sampleRow(t *domain.SampleTable, i int) []string {
	row := make([]string, 0, len(t.Fields)+len(t.SeqIDs))
	row = append(row, t.Annotations[i]...)
	for _, v := range t.Readouts[i] {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return row
}

// previewValues joins up to previewLimit values, eliding the rest.
func previewValues(values []string) string {
	if len(values) <= previewLimit {
		return strings.Join(values, "\t")
	}
	return fmt.Sprintf("%s\t... (%d more)",
		strings.Join(values[:previewLimit], "\t"), len(values)-previewLimit)
}
