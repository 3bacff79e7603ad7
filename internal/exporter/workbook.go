package exporter

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/correlation"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/dataprocessing"
	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
)

// Workbook sheet names
const (
	SheetCounts      = "Counts"
	SheetCorrelation = "Correlation"
	SheetMask        = "Mask"
)

// WorkbookWriter writes the report tables into a single xlsx workbook
type WorkbookWriter struct {
	path string
}

// NewWorkbookWriter creates a writer for the workbook at path
func NewWorkbookWriter(path string) *WorkbookWriter {
	return &WorkbookWriter{path: path}
}

// Path returns the workbook location
func (w *WorkbookWriter) Path() string {
	return w.path
}

// Write replaces the workbook with three sheets: the category counts, the
// correlation matrix and its mask. counts may be empty and m may be nil,
// in which case the sheets only carry headers.
func (w *WorkbookWriter) Write(counts []dataprocessing.CategoryCount, m *correlation.Matrix, mask correlation.Mask) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.NewStorageError("failed to close workbook", cerr).
				WithContext("path", w.path)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetCounts); err != nil {
		return w.wrap("failed to name counts sheet", err)
	}
	for _, name := range []string{SheetCorrelation, SheetMask} {
		if _, err := f.NewSheet(name); err != nil {
			return w.wrap("failed to create sheet", err)
		}
	}

	if err := writeCounts(f, counts); err != nil {
		return w.wrap("failed to write counts sheet", err)
	}
	if m != nil {
		if err := writeCorrelation(f, m); err != nil {
			return w.wrap("failed to write correlation sheet", err)
		}
		if err := writeMask(f, m.Names(), mask); err != nil {
			return w.wrap("failed to write mask sheet", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return w.wrap("failed to create workbook directory", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return w.wrap("failed to save workbook", err)
	}

	slog.Debug("Exported workbook",
		slog.String("path", w.path),
		slog.Int("count_rows", len(counts)))
	return nil
}

func (w *WorkbookWriter) wrap(msg string, err error) error {
	return apperrors.NewStorageError(msg, err).WithContext("path", w.path)
}

func writeCounts(f *excelize.File, counts []dataprocessing.CategoryCount) error {
	headers := categoryCountHeaders()
	if err := setRow(f, SheetCounts, 1, toCells(headers)); err != nil {
		return err
	}
	for i, c := range counts {
		row := []interface{}{c.Cardio, c.Variable, c.Value, c.Total}
		if err := setRow(f, SheetCounts, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCorrelation(f *excelize.File, m *correlation.Matrix) error {
	names := m.Names()
	header := append([]interface{}{""}, toCells(names)...)
	if err := setRow(f, SheetCorrelation, 1, header); err != nil {
		return err
	}

	for i, name := range names {
		row := make([]interface{}, 0, len(names)+1)
		row = append(row, name)
		for j := range names {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				row = append(row, nil)
				continue
			}
			row = append(row, v)
		}
		if err := setRow(f, SheetCorrelation, i+2, row); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	from, err := excelize.CoordinatesToCellName(2, 2)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(len(names)+1, len(names)+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetCorrelation, from, to, style)
}

func writeMask(f *excelize.File, names []string, mask correlation.Mask) error {
	header := append([]interface{}{""}, toCells(names)...)
	if err := setRow(f, SheetMask, 1, header); err != nil {
		return err
	}
	for i, name := range names {
		row := make([]interface{}, 0, len(names)+1)
		row = append(row, name)
		for j := range names {
			row = append(row, mask != nil && mask.Masked(i, j))
		}
		if err := setRow(f, SheetMask, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
