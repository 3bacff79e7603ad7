package dataprocessing

import (
	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
)

// Column names of the examination table, in file order
const (
	ColID          = "id"
	ColAge         = "age"
	ColGender      = "gender"
	ColHeight      = "height"
	ColWeight      = "weight"
	ColAPHi        = "ap_hi"
	ColAPLo        = "ap_lo"
	ColCholesterol = "cholesterol"
	ColGluc        = "gluc"
	ColSmoke       = "smoke"
	ColAlco        = "alco"
	ColActive      = "active"
	ColCardio      = "cardio"
	ColOverweight  = "overweight"
)

// RequiredColumns lists the columns an input file must provide
var RequiredColumns = []string{
	ColID, ColAge, ColGender, ColHeight, ColWeight, ColAPHi, ColAPLo,
	ColCholesterol, ColGluc, ColSmoke, ColAlco, ColActive, ColCardio,
}

// OverweightBMI is the body mass index above which a record is overweight.
// A BMI of exactly 25 is not overweight.
const OverweightBMI = 25.0

// Record is one examination row. Height is in centimetres, weight in
// kilograms, age in days. After normalization Cholesterol, Gluc and
// Overweight are 0 (good) or 1 (bad).
type Record struct {
	ID          int
	Age         int
	Gender      int
	Height      float64
	Weight      float64
	APHi        int
	APLo        int
	Cholesterol int
	Gluc        int
	Smoke       int
	Alco        int
	Active      int
	Cardio      int
	Overweight  int
}

// Value returns the named column of the record as a float
func (r Record) Value(column string) (float64, bool) {
	switch column {
	case ColID:
		return float64(r.ID), true
	case ColAge:
		return float64(r.Age), true
	case ColGender:
		return float64(r.Gender), true
	case ColHeight:
		return r.Height, true
	case ColWeight:
		return r.Weight, true
	case ColAPHi:
		return float64(r.APHi), true
	case ColAPLo:
		return float64(r.APLo), true
	case ColCholesterol:
		return float64(r.Cholesterol), true
	case ColGluc:
		return float64(r.Gluc), true
	case ColSmoke:
		return float64(r.Smoke), true
	case ColAlco:
		return float64(r.Alco), true
	case ColActive:
		return float64(r.Active), true
	case ColCardio:
		return float64(r.Cardio), true
	case ColOverweight:
		return float64(r.Overweight), true
	}
	return 0, false
}

// Dataset is the normalized, read-only examination table. All accessors
// return copies.
type Dataset struct {
	records []Record
}

// NewDataset wraps a copy of records
func NewDataset(records []Record) *Dataset {
	return &Dataset{records: append([]Record(nil), records...)}
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of all records
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return append([]Record(nil), d.records...)
}

// all returns the backing records; a nil dataset has none
func (d *Dataset) all() []Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Record returns the i-th record. It panics when i is out of range, which
// is every i for a nil dataset.
func (d *Dataset) Record(i int) Record {
	return d.all()[i]
}

// NumericColumns returns the names of all numeric columns in table order,
// overweight last
func (d *Dataset) NumericColumns() []string {
	cols := make([]string, 0, len(RequiredColumns)+1)
	cols = append(cols, RequiredColumns...)
	return append(cols, ColOverweight)
}

// Column returns the named column as floats
func (d *Dataset) Column(name string) ([]float64, error) {
	if _, ok := (Record{}).Value(name); !ok {
		return nil, apperrors.NewNotFoundError("column " + name).WithContext("column", name)
	}

	values := make([]float64, d.Len())
	for i, r := range d.all() {
		values[i], _ = r.Value(name)
	}
	return values, nil
}

// Subset returns a new dataset holding the records at indices, in the
// given order. Indices must be in range.
func (d *Dataset) Subset(indices []int) *Dataset {
	src := d.all()
	records := make([]Record, len(indices))
	for i, idx := range indices {
		records[i] = src[idx]
	}
	return &Dataset{records: records}
}

// ParseOptions configures ParseFile
type ParseOptions struct {
	// Delimiter separates CSV fields
	Delimiter rune

	// Sheet selects the workbook sheet for XLSX input; empty means the first
	Sheet string
}

// DefaultParseOptions returns default parse options
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Delimiter: ',',
	}
}

// RawTable holds parsed records before normalization
type RawTable struct {
	Source  string
	Records []Record
}
