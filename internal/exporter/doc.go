// Package exporter writes the intermediate tables behind the charts.
//
// CSVWriter is the low level writer for whole files and streams,
// with relative paths placed in the configured export directory.
// TableExporter builds on it to write the category counts, the filtered
// records and the correlation matrix. WorkbookWriter puts the same tables
// into one xlsx workbook.
//
// Example usage:
//
//	tables := exporter.NewTableExporter(paths)
//	err := tables.ExportCategoryCounts(counts, config.CategoryCountsCSV)
//
//	book := exporter.NewWorkbookWriter(paths.Workbook)
//	err = book.Write(counts, matrix, correlation.UpperTriangleMask(14))
package exporter
