package dataprocessing

// CategoricalFeatures are the binary features compared across cardio
// outcomes, in melt order
var CategoricalFeatures = []string{
	ColCholesterol, ColGluc, ColSmoke, ColAlco, ColActive, ColOverweight,
}

// LongRow is one (record, feature) pair of the melted table
type LongRow struct {
	Cardio   int
	Variable string
	Value    int
}

// CategoryCount is the number of records with a given cardio outcome whose
// feature Variable equals Value
type CategoryCount struct {
	Cardio   int
	Variable string
	Value    int
	Total    int
}

// Summary describes a dataset for logging
type Summary struct {
	Records         int
	CardioPositive  int
	Overweight      int
	HighCholesterol int
	HighGlucose     int
	Smokers         int
	MeanAgeYears    float64
	MeanBMI         float64
}
