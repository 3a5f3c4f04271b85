// Package adat reads SomaLogic ADAT files, the tab-delimited sectioned
// flat-file format used to distribute proteomic assay results.
//
// An ADAT file opens with an optional !Checksum line followed by marker-led
// sections: ^HEADER holds key/value pairs describing the experiment,
// ^COL_DATA and ^ROW_DATA declare the annotation field names, and
// ^TABLE_BEGIN holds the data rows until end of file. Table rows come in two
// kinds, told apart by the field just past the sample-annotation columns:
// column-annotation rows carry a label there (SeqId, Target, ColCheck, ...)
// followed by one value per sequence, while sample rows leave that field
// empty and carry the sample's annotations followed by one readout value per
// sequence.
//
// Filtering follows the SomaLogic quality-check conventions. With
// KeepOnlyPasses set, sequences whose ColCheck value is not PASS and samples
// whose RowCheck value is not PASS are dropped. With KeepOnlySamples set,
// rows whose SampleType is not Sample (calibrators, buffers, QC pools) are
// dropped. The ColCheck mask applies to sample readouts only from the point
// the ColCheck row is seen: sample rows that precede it keep their full
// readout width, and the final table assembly then rejects the width
// mismatch. Well-formed ADAT files declare ColCheck before any sample row.
package adat
