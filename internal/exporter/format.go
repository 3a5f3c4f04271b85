package exporter

import "strconv"

// formatFloat formats a readout value for text output. The shortest
// representation that parses back to the same float64 is used, so assay
// intensities survive an export/import cycle bit-for-bit.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
