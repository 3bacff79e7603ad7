// Package dataprocessing loads the medical examination table and derives the
// categorical view used by the catplot.
//
// # Architecture
//
// The package is organized into three components:
//
//  1. Parser: reads CSV (gota dataframe) or XLSX (excelize) input into records
//  2. Processor: derives the overweight flag and binarizes cholesterol and glucose
//  3. Analytics: melts the six categorical features and counts them per cardio outcome
//
// # Usage
//
//	ds, err := dataprocessing.LoadDataset("medical_examination.csv", dataprocessing.DefaultParseOptions())
//	if err != nil {
//	    return err
//	}
//	counts := dataprocessing.BuildCategoryTable(ds)
//
// # Data Flow
//
//	File → ParseFile → RawTable → Normalize → Dataset → Melt → SortByVariable → CountCategories
//
// # Error Handling
//
// Loading is all or nothing. A missing file yields a NOT_FOUND AppError;
// a missing column or an empty or malformed numeric field yields a PARSING
// AppError whose context names the column and the 1-based data row.
package dataprocessing
