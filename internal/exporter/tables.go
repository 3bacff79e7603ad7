package exporter

import (
	"log/slog"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/config"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/correlation"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/dataprocessing"
)

// TableExporter writes the intermediate report tables as CSV files
type TableExporter struct {
	csvWriter *CSVWriter
}

// NewTableExporter creates a new table exporter writing into the export
// directory of paths
func NewTableExporter(paths *config.Paths) *TableExporter {
	return &TableExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// WithBOM makes every exported table start with a UTF-8 BOM
func (t *TableExporter) WithBOM(enabled bool) *TableExporter {
	t.csvWriter.WithBOM(enabled)
	return t
}

// ExportCategoryCounts writes the aggregated category table
func (t *TableExporter) ExportCategoryCounts(counts []dataprocessing.CategoryCount, outputPath string) error {
	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, categoryCountRow(c))
	}

	if err := t.csvWriter.WriteSimpleCSV(outputPath, categoryCountHeaders(), records); err != nil {
		return err
	}
	slog.Debug("Exported category counts",
		slog.String("path", outputPath),
		slog.Int("rows", len(records)))
	return nil
}

// ExportFilteredRecords streams every record of ds, overweight included
func (t *TableExporter) ExportFilteredRecords(ds *dataprocessing.Dataset, outputPath string) error {
	headers := recordHeaders()
	stream, err := t.csvWriter.CreateStreamWriter(outputPath, headers)
	if err != nil {
		return err
	}

	for _, r := range ds.Records() {
		if err := stream.WriteRecord(recordRow(r, headers)); err != nil {
			stream.Close()
			return err
		}
	}
	return stream.Close()
}

// ExportCorrelation writes m as a square table whose first column holds
// the row names. Masked cells are left empty when mask is not nil.
func (t *TableExporter) ExportCorrelation(m *correlation.Matrix, mask correlation.Mask, outputPath string) error {
	names := m.Names()
	headers := append([]string{""}, names...)

	records := make([][]string, len(names))
	for i, name := range names {
		row := make([]string, 0, len(names)+1)
		row = append(row, name)
		for j := range names {
			if mask != nil && mask.Masked(i, j) {
				row = append(row, "")
				continue
			}
			row = append(row, formatFloat(m.At(i, j)))
		}
		records[i] = row
	}

	return t.csvWriter.WriteSimpleCSV(outputPath, headers, records)
}

func categoryCountHeaders() []string {
	return []string{"cardio", "variable", "value", "total"}
}

func categoryCountRow(c dataprocessing.CategoryCount) []string {
	return []string{
		formatInt(int64(c.Cardio)),
		c.Variable,
		formatInt(int64(c.Value)),
		formatInt(int64(c.Total)),
	}
}

func recordHeaders() []string {
	return append(append([]string(nil), dataprocessing.RequiredColumns...), dataprocessing.ColOverweight)
}

func recordRow(r dataprocessing.Record, columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		v, _ := r.Value(col)
		row[i] = formatFloat(v)
	}
	return row
}
