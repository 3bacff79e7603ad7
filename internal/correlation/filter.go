package correlation

import (
	"log/slog"
	"strings"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/dataprocessing"
)

// Mode selects which predicates the outlier filter applies
type Mode string

const (
	// ModeStrict requires diastolic <= systolic pressure and both
	// anthropometric values inside their percentile bands
	ModeStrict Mode = "strict"

	// ModeLegacy applies the percentile bands only and keeps rows whose
	// diastolic pressure exceeds the systolic one.
	ModeLegacy Mode = "legacy"
)

// FilterOptions configures Filter
type FilterOptions struct {
	Mode          Mode
	LowerQuantile float64
	UpperQuantile float64
}

// DefaultFilterOptions keeps records between the 2.5th and 97.5th
// percentiles of height and weight with consistent blood pressure
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Mode:          ModeStrict,
		LowerQuantile: 0.025,
		UpperQuantile: 0.975,
	}
}

// Band is an inclusive value range
type Band struct {
	Low  float64
	High float64
}

// Contains reports whether v lies inside the band. NaN bounds contain
// nothing.
func (b Band) Contains(v float64) bool {
	return v >= b.Low && v <= b.High
}

// FilterResult is the outcome of Filter
type FilterResult struct {
	Dataset    *dataprocessing.Dataset
	Mode       Mode
	HeightBand Band
	WeightBand Band
	// Kept holds the indices of the surviving records in the input dataset
	Kept    []int
	Dropped int
}

// Filter removes outliers. The percentile bands are computed once on the
// unfiltered dataset and every predicate is evaluated against the unfiltered
// values in a single pass.
func Filter(ds *dataprocessing.Dataset, opts FilterOptions) FilterResult {
	mode := Mode(strings.ToLower(string(opts.Mode)))
	switch mode {
	case ModeStrict:
	case ModeLegacy:
		slog.Warn("Legacy outlier filter selected: records with diastolic pressure above systolic are kept",
			slog.String("mode", string(mode)))
	case "":
		mode = ModeStrict
	default:
		slog.Warn("Unknown outlier filter mode, using strict",
			slog.String("mode", string(opts.Mode)))
		mode = ModeStrict
	}

	records := ds.Records()
	heights := make([]float64, len(records))
	weights := make([]float64, len(records))
	for i, r := range records {
		heights[i] = r.Height
		weights[i] = r.Weight
	}

	result := FilterResult{
		Mode: mode,
		HeightBand: Band{
			Low:  Quantile(heights, opts.LowerQuantile),
			High: Quantile(heights, opts.UpperQuantile),
		},
		WeightBand: Band{
			Low:  Quantile(weights, opts.LowerQuantile),
			High: Quantile(weights, opts.UpperQuantile),
		},
		Kept: make([]int, 0, len(records)),
	}

	for i, r := range records {
		keep := result.HeightBand.Contains(r.Height) && result.WeightBand.Contains(r.Weight)
		if mode == ModeStrict {
			keep = keep && r.APLo <= r.APHi
		}
		if keep {
			result.Kept = append(result.Kept, i)
		}
	}

	result.Dropped = len(records) - len(result.Kept)
	result.Dataset = ds.Subset(result.Kept)

	slog.Debug("Outlier filter applied",
		slog.String("mode", string(mode)),
		slog.Int("kept", len(result.Kept)),
		slog.Int("dropped", result.Dropped),
		slog.Float64("height_low", result.HeightBand.Low),
		slog.Float64("height_high", result.HeightBand.High),
		slog.Float64("weight_low", result.WeightBand.Low),
		slog.Float64("weight_high", result.WeightBand.High))

	return result
}
