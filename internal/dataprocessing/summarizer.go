package dataprocessing

import (
	"log/slog"
)

// Summarize computes headline counts of a normalized dataset. Records with
// a non-finite BMI are left out of MeanBMI.
func Summarize(ds *Dataset) Summary {
	s := Summary{Records: ds.Len()}
	if s.Records == 0 {
		return s
	}

	var ageDays, bmiSum float64
	bmiCount := 0
	for _, r := range ds.records {
		s.CardioPositive += r.Cardio
		s.Overweight += r.Overweight
		s.HighCholesterol += r.Cholesterol
		s.HighGlucose += r.Gluc
		s.Smokers += r.Smoke
		ageDays += float64(r.Age)
		if bmi := BMI(r); isFinite(bmi) {
			bmiSum += bmi
			bmiCount++
		}
	}

	s.MeanAgeYears = ageDays / float64(s.Records) / 365.25
	if bmiCount > 0 {
		s.MeanBMI = bmiSum / float64(bmiCount)
	}
	return s
}

// LogValue implements slog.LogValuer
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("records", s.Records),
		slog.Int("cardio_positive", s.CardioPositive),
		slog.Int("overweight", s.Overweight),
		slog.Int("high_cholesterol", s.HighCholesterol),
		slog.Int("high_glucose", s.HighGlucose),
		slog.Int("smokers", s.Smokers),
		slog.Float64("mean_age_years", s.MeanAgeYears),
		slog.Float64("mean_bmi", s.MeanBMI),
	)
}
