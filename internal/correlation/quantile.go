package correlation

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile of values, interpolating linearly
// between the two closest ranks at position (n-1)*q. Empty input and q
// outside [0, 1] yield NaN. values is not modified.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 || q < 0 || q > 1 || math.IsNaN(q) {
		return math.NaN()
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := float64(len(sorted)-1) * q
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}
