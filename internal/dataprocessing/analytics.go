package dataprocessing

import (
	"sort"
)

// Melt unpivots the categorical features: one row per record and feature,
// grouped by feature in CategoricalFeatures order
func Melt(ds *Dataset) []LongRow {
	n := ds.Len()
	rows := make([]LongRow, 0, n*len(CategoricalFeatures))
	for _, feature := range CategoricalFeatures {
		for i := 0; i < n; i++ {
			r := ds.records[i]
			v, _ := r.Value(feature)
			rows = append(rows, LongRow{
				Cardio:   r.Cardio,
				Variable: feature,
				Value:    int(v),
			})
		}
	}
	return rows
}

// SortByVariable orders rows by variable name. Rows sharing a variable
// keep their relative order.
func SortByVariable(rows []LongRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Variable < rows[j].Variable
	})
}

type categoryKey struct {
	cardio   int
	value    int
	variable string
}

// CountCategories counts rows per (cardio, value, variable). The result is
// ordered by cardio, then value, then variable; only observed combinations
// appear.
func CountCategories(rows []LongRow) []CategoryCount {
	totals := make(map[categoryKey]int)
	for _, row := range rows {
		totals[categoryKey{cardio: row.Cardio, value: row.Value, variable: row.Variable}]++
	}

	counts := make([]CategoryCount, 0, len(totals))
	for k, total := range totals {
		counts = append(counts, CategoryCount{
			Cardio:   k.cardio,
			Variable: k.variable,
			Value:    k.value,
			Total:    total,
		})
	}

	sort.Slice(counts, func(i, j int) bool {
		a, b := counts[i], counts[j]
		if a.Cardio != b.Cardio {
			return a.Cardio < b.Cardio
		}
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		return a.Variable < b.Variable
	})
	return counts
}

// BuildCategoryTable melts, sorts and counts the dataset's categorical
// features
func BuildCategoryTable(ds *Dataset) []CategoryCount {
	rows := Melt(ds)
	SortByVariable(rows)
	return CountCategories(rows)
}
