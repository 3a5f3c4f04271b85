package domain

// SequenceTable represents the per-protein annotations read from an ADAT
// table section: one row per annotation label (SeqId, Target, UniProt, ...),
// one column per assayed sequence. Column order matches the order the
// sequences appear in the file, after any quality-check filtering.
type SequenceTable struct {
	// Labels holds the annotation row labels in encounter order.
	Labels []string `json:"labels"`
	// SeqIDs holds the protein identifier columns ("SeqId." + value).
	SeqIDs []string `json:"seq_ids"`
	// Rows holds one value slice per label, each len(SeqIDs) wide.
	Rows [][]string `json:"rows"`
}

// NumLabels returns the number of annotation rows
func (t *SequenceTable) NumLabels() int {
	return len(t.Labels)
}

// NumSequences returns the number of protein columns
func (t *SequenceTable) NumSequences() int {
	return len(t.SeqIDs)
}

// Row returns the values for the first row carrying the given label
func (t *SequenceTable) Row(label string) ([]string, bool) {
	for i, l := range t.Labels {
		if l == label {
			return t.Rows[i], true
		}
	}
	return nil, false
}

// Value returns the annotation value at (label, seqID)
func (t *SequenceTable) Value(label, seqID string) (string, bool) {
	row, ok := t.Row(label)
	if !ok {
		return "", false
	}
	for i, id := range t.SeqIDs {
		if id == seqID {
			return row[i], true
		}
	}
	return "", false
}

// SampleTable represents the retained samples joined with their readout
// intensities: annotation columns are text, readout columns are numeric.
// Annotations and Readouts are row-aligned, one entry each per sample.
type SampleTable struct {
	// Fields holds the sample-annotation column names from the !Name row.
	Fields []string `json:"fields"`
	// SeqIDs holds the readout column names, identical in set and order to
	// the owning Document's SequenceTable.SeqIDs.
	SeqIDs      []string    `json:"seq_ids"`
	Annotations [][]string  `json:"annotations"`
	Readouts    [][]float64 `json:"readouts"`
}

// NumSamples returns the number of retained sample rows
func (t *SampleTable) NumSamples() int {
	return len(t.Annotations)
}

// NumSequences returns the number of readout columns
func (t *SampleTable) NumSequences() int {
	return len(t.SeqIDs)
}

// Columns returns the full column header: annotation fields followed by
// protein identifiers
func (t *SampleTable) Columns() []string {
	cols := make([]string, 0, len(t.Fields)+len(t.SeqIDs))
	cols = append(cols, t.Fields...)
	cols = append(cols, t.SeqIDs...)
	return cols
}

// Annotation returns the annotation value for sample row i and field name
func (t *SampleTable) Annotation(i int, field string) (string, bool) {
	if i < 0 || i >= len(t.Annotations) {
		return "", false
	}
	for j, f := range t.Fields {
		if f == field {
			return t.Annotations[i][j], true
		}
	}
	return "", false
}

// Readout returns the intensity for sample row i and protein column seqID
func (t *SampleTable) Readout(i int, seqID string) (float64, bool) {
	if i < 0 || i >= len(t.Readouts) {
		return 0, false
	}
	for j, id := range t.SeqIDs {
		if id == seqID {
			return t.Readouts[i][j], true
		}
	}
	return 0, false
}

// Document represents the parsed content of one ADAT file
type Document struct {
	// Checksum is the value of the !Checksum line, empty when absent.
	Checksum string    `json:"checksum,omitempty"`
	Metadata *Metadata `json:"metadata"`
	// SampleFields holds the sample-annotation field names in schema order.
	SampleFields []string `json:"sample_fields"`
	// SequenceFields holds the column-annotation labels in encounter order.
	SequenceFields []string       `json:"sequence_fields"`
	Sequences      *SequenceTable `json:"sequences"`
	Samples        *SampleTable   `json:"samples"`
}
