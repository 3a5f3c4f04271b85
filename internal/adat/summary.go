package adat

import (
	"context"
	"log/slog"

	"github.com/buddyroo30/readadat/pkg/contracts/domain"
)

// Summary represents the headline numbers of one parsed document.
type Summary struct {
	Samples         int  `json:"samples"`
	Sequences       int  `json:"sequences"`
	SampleFields    int  `json:"sample_fields"`
	SequenceFields  int  `json:"sequence_fields"`
	MetadataKeys    int  `json:"metadata_keys"`
	HasChecksum     bool `json:"has_checksum"`
	KeepOnlyPasses  bool `json:"keep_only_passes"`
	KeepOnlySamples bool `json:"keep_only_samples"`
}

// Summarizer reports headline numbers for parsed documents.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer logging through the given logger.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Summarize derives the summary for doc as parsed with opts.
func (s *Summarizer) Summarize(ctx context.Context, doc *domain.Document, opts Options) *Summary {
	summary := &Summary{
		Samples:         doc.Samples.NumSamples(),
		Sequences:       doc.Sequences.NumSequences(),
		SampleFields:    len(doc.SampleFields),
		SequenceFields:  len(doc.SequenceFields),
		MetadataKeys:    doc.Metadata.Len(),
		HasChecksum:     doc.Checksum != "",
		KeepOnlyPasses:  opts.KeepOnlyPasses,
		KeepOnlySamples: opts.KeepOnlySamples,
	}

	s.logger.InfoContext(ctx, "document summarized",
		slog.Int("samples", summary.Samples),
		slog.Int("sequences", summary.Sequences),
		slog.Int("metadata_keys", summary.MetadataKeys),
		slog.Bool("keep_only_passes", summary.KeepOnlyPasses),
		slog.Bool("keep_only_samples", summary.KeepOnlySamples))

	return summary
}
