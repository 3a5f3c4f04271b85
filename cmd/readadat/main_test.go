package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buddyroo30/readadat/internal/adat"
	"github.com/buddyroo30/readadat/pkg/contracts/domain"
)

func testDocument() *domain.Document {
	meta := domain.NewMetadata()
	meta.Set("!Version", "1.2")
	meta.Set("!AssayType", "PharmaServices")

	return &domain.Document{
		Checksum:       "700a4c0415a7e",
		Metadata:       meta,
		SampleFields:   []string{"SampleId", "SampleType", "RowCheck"},
		SequenceFields: []string{"SeqId", "Target"},
		Sequences: &domain.SequenceTable{
			Labels: []string{"SeqId", "Target"},
			SeqIDs: []string{"SeqId.10000-28", "SeqId.10001-7"},
			Rows: [][]string{
				{"10000-28", "10001-7"},
				{"Beta-crystallin B2", "RAF proto-oncogene"},
			},
		},
		Samples: &domain.SampleTable{
			Fields: []string{"SampleId", "SampleType", "RowCheck"},
			SeqIDs: []string{"SeqId.10000-28", "SeqId.10001-7"},
			Annotations: [][]string{
				{"S1", "Sample", "PASS"},
				{"S2", "Sample", "PASS"},
			},
			Readouts: [][]float64{
				{476.5, 3654.25},
				{992.1, 4221},
			},
		},
	}
}

func testSummary(doc *domain.Document) *adat.Summary {
	return adat.NewSummarizer(nil).Summarize(
		context.Background(), doc, adat.DefaultOptions())
}

func TestWriteDocumentText(t *testing.T) {
	doc := testDocument()

	var buf bytes.Buffer
	writeDocumentText(&buf, doc, testSummary(doc))
	out := buf.String()

	assert.Contains(t, out, "Checksum: 700a4c0415a7e")
	assert.Contains(t, out, "Metadata: 2 keys")
	assert.Contains(t, out, "  !Version = 1.2")
	assert.Contains(t, out, "  !AssayType = PharmaServices")
	assert.Contains(t, out, "Sequences: 2 columns, 2 annotation labels")
	assert.Contains(t, out, "  Target: Beta-crystallin B2\tRAF proto-oncogene")
	assert.Contains(t, out, "Samples: 2 rows, 3 annotation fields, 2 readout columns")
	assert.Contains(t, out, "  S1\tSample\tPASS\t476.5\t3654.25")
	assert.Contains(t, out, "  S2\tSample\tPASS\t992.1\t4221")
	assert.NotContains(t, out, "more rows")
}

func TestWriteDocumentText_NoChecksum(t *testing.T) {
	doc := testDocument()
	doc.Checksum = ""

	var buf bytes.Buffer
	writeDocumentText(&buf, doc, testSummary(doc))

	assert.Contains(t, buf.String(), "Checksum: (none)")
}

func TestWriteDocumentText_LongTablesElided(t *testing.T) {
	doc := testDocument()
	for i := 0; i < 10; i++ {
		doc.Samples.Annotations = append(doc.Samples.Annotations,
			[]string{"SX", "Sample", "PASS"})
		doc.Samples.Readouts = append(doc.Samples.Readouts, []float64{1, 2})
	}

	var buf bytes.Buffer
	writeDocumentText(&buf, doc, testSummary(doc))
	out := buf.String()

	assert.Contains(t, out, "Samples: 12 rows")
	assert.Contains(t, out, "... 7 more rows")
	assert.Equal(t, previewLimit, strings.Count(out, "\tSample\tPASS\t"))
}

func TestWriteDocumentJSON(t *testing.T) {
	doc := testDocument()

	var buf bytes.Buffer
	require.NoError(t, writeDocumentJSON(&buf, doc))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "700a4c0415a7e", decoded["checksum"])

	samples, ok := decoded["samples"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, samples["annotations"], 2)

	// Metadata keeps file order in the JSON rendition.
	metaStart := bytes.Index(buf.Bytes(), []byte("!Version"))
	assayStart := bytes.Index(buf.Bytes(), []byte("!AssayType"))
	assert.Greater(t, assayStart, metaStart)
}

func TestPreviewValues(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
	}{
		{"short list joined", []string{"a", "b"}, "a\tb"},
		{"limit kept", []string{"a", "b", "c", "d", "e"}, "a\tb\tc\td\te"},
		{"long list elided", []string{"a", "b", "c", "d", "e", "f", "g"}, "a\tb\tc\td\te\t... (2 more)"},
		{"empty list", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, previewValues(tt.values))
		})
	}
}

func TestSampleRow(t *testing.T) {
	doc := testDocument()

	row := sampleRow(doc.Samples, 1)

	assert.Equal(t, []string{"S2", "Sample", "PASS", "992.1", "4221"}, row)
}
