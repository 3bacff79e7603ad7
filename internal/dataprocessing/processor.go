package dataprocessing

import (
	"math"
)

// BMI returns the body mass index of r, weight over height in metres
// squared. A zero height yields +Inf or NaN.
func BMI(r Record) float64 {
	m := r.Height / 100
	return r.Weight / (m * m)
}

// Normalize derives the overweight flag and binarizes cholesterol and
// glucose (1 becomes 0, anything above 1 becomes 1). The raw table is not
// modified.
func Normalize(raw *RawTable) *Dataset {
	if raw == nil {
		return NewDataset(nil)
	}

	records := make([]Record, len(raw.Records))
	for i, r := range raw.Records {
		r.Overweight = overweightFlag(BMI(r))
		r.Cholesterol = binarize(r.Cholesterol)
		r.Gluc = binarize(r.Gluc)
		records[i] = r
	}
	return &Dataset{records: records}
}

// LoadDataset parses and normalizes the examination file at filePath
func LoadDataset(filePath string, opts ParseOptions) (*Dataset, error) {
	raw, err := ParseFile(filePath, opts)
	if err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

func overweightFlag(bmi float64) int {
	// NaN compares false and lands in class 0
	if bmi > OverweightBMI {
		return 1
	}
	return 0
}

// binarize maps the 1-3 scale onto good (0) and bad (1). Values below 1
// are out of domain and pass through.
func binarize(v int) int {
	switch {
	case v == 1:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// isFinite reports whether v is neither NaN nor infinite
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
