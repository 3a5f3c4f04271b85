// Package exporter writes parsed ADAT documents to CSV, XLSX and Parquet.
//
// CSVWriter carries the low-level CSV mechanics: header rows, append mode,
// an optional UTF-8 BOM for Excel, and a streaming variant for large sample
// tables. Exporter sits on top and knows the document shape: one metadata
// file/sheet of key/value pairs, one sequence-annotation table (rows are
// annotation labels, columns are protein identifiers), and one sample table
// (annotation columns followed by numeric readout columns).
//
// Readout values are formatted with round-trip precision; the Parquet export
// keeps them as float64 columns so downstream tools get real numerics.
package exporter
