package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/buddyroo30/readadat/internal/adat"
	"github.com/buddyroo30/readadat/internal/cli"
	"github.com/buddyroo30/readadat/internal/config"
	"github.com/buddyroo30/readadat/internal/errors"
	"github.com/buddyroo30/readadat/internal/exporter"
	"github.com/buddyroo30/readadat/internal/files"
	"github.com/buddyroo30/readadat/internal/infrastructure"
)

func main() {
	in := flag.String("in", "", "input ADAT file or directory of ADAT files (required)")
	out := flag.String("out", "", "output directory (defaults to the configured reports directory)")
	format := flag.String("format", "", "export format: csv | xlsx | parquet (defaults to the configured format)")
	keepOnlyPasses := flag.Bool("keepOnlyPasses", true, "keep only sequences and sample rows whose quality checks PASS")
	keepOnlySamples := flag.Bool("keepOnlySamples", true, "keep only rows whose SampleType is Sample")
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

	// Fall back to configured defaults for unset flags
	if *out == "" {
		reportsDir, err := cfg.GetReportsDir()
		if err != nil {
			logger.Error("Failed to resolve reports directory", slog.String("error", err.Error()))
			os.Exit(1)
		}
		*out = reportsDir
	}
	if *format == "" {
		*format = cfg.Export.Format
	}

	opts := cli.ConvertOptions{
		In:              *in,
		Out:             *out,
		Format:          *format,
		KeepOnlyPasses:  *keepOnlyPasses,
		KeepOnlySamples: *keepOnlySamples,
	}
	if err := cli.Validate(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger.InfoContext(ctx, "Starting ADAT conversion",
		slog.String("in", opts.In),
		slog.String("out", opts.Out),
		slog.String("format", opts.Format),
		slog.Bool("keep_only_passes", opts.KeepOnlyPasses),
		slog.Bool("keep_only_samples", opts.KeepOnlySamples))

	if err := os.MkdirAll(opts.Out, 0755); err != nil {
		logger.ErrorContext(ctx, "Cannot create output directory",
			slog.String("path", opts.Out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	inputs, err := resolveInputs(opts.In)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to discover input files",
			slog.String("in", opts.In),
			slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d ADAT files\n", len(inputs))
	if len(inputs) == 0 {
		logger.WarnContext(ctx, "No ADAT files found", slog.String("in", opts.In))
		fmt.Println("Conversion complete: 0 files")
		return
	}

	parseOpts := adat.Options{
		KeepOnlyPasses:  opts.KeepOnlyPasses,
		KeepOnlySamples: opts.KeepOnlySamples,
	}
	exp := exporter.NewExporter(opts.Out, logger)

	converted, failed := convertAll(ctx, os.Stdout, exp, logger, inputs, parseOpts, opts.Format)

	logger.InfoContext(ctx, "Conversion finished",
		slog.Int("converted", converted),
		slog.Int("failed", failed))
	fmt.Printf("Conversion complete: %d files\n", converted)

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "Failed to convert %d of %d files\n", failed, len(inputs))
		os.Exit(1)
	}
}

// resolveInputs expands in to the files to convert: the file itself, or
// the .adat files inside the directory sorted by name.
func resolveInputs(in string) ([]files.FileInfo, error) {
	info, err := os.Stat(in)
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("failed to stat %s", in), err)
	}
	if info.IsDir() {
		return files.NewDiscovery(in).FindAdatFiles(".")
	}
	return []files.FileInfo{{
		Path:    in,
		Name:    filepath.Base(in),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}}, nil
}

// convertAll parses and exports each file, continuing past per-file
// failures so one bad plate does not sink the batch.
func convertAll(ctx context.Context, w io.Writer, exp *exporter.Exporter, logger *slog.Logger,
	inputs []files.FileInfo, parseOpts adat.Options, format string) (converted, failed int) {

	summarizer := adat.NewSummarizer(logger)
	for i, fi := range inputs {
		fmt.Fprintf(w, "Processing file %d of %d: %s\n", i+1, len(inputs), fi.Name)
		logger.InfoContext(ctx, "Processing file",
			slog.Int("current", i+1),
			slog.Int("total", len(inputs)),
			slog.String("filename", fi.Name))

		doc, err := adat.ReadFile(fi.Path, parseOpts)
		if err != nil {
			logger.ErrorContext(ctx, "Error parsing file",
				slog.String("filename", fi.Name),
				slog.String("error", err.Error()))
			failed++
			continue
		}

		summarizer.Summarize(ctx, doc, parseOpts)

		written, err := exp.Export(ctx, doc, format, baseName(fi.Name))
		if err != nil {
			logger.ErrorContext(ctx, "Error exporting file",
				slog.String("filename", fi.Name),
				slog.String("error", err.Error()))
			failed++
			continue
		}

		logger.InfoContext(ctx, "File converted",
			slog.String("filename", fi.Name),
			slog.Int("outputs", len(written)))
		converted++
	}
	return converted, failed
}

// baseName strips the extension for use as the export base name.
func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
