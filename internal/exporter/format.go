package exporter

import (
	"math"
	"strconv"
)

// formatFloat formats a float64 value for CSV output using the shortest
// representation that round-trips. NaN and infinities become empty cells.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
