package services

import (
	"github.com/stretchr/testify/mock"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/correlation"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/dataprocessing"
)

// MockTableExporter is a mock for the TableExporter interface
type MockTableExporter struct {
	mock.Mock
}

func (m *MockTableExporter) ExportCategoryCounts(counts []dataprocessing.CategoryCount, outputPath string) error {
	return m.Called(counts, outputPath).Error(0)
}

func (m *MockTableExporter) ExportFilteredRecords(ds *dataprocessing.Dataset, outputPath string) error {
	return m.Called(ds, outputPath).Error(0)
}

func (m *MockTableExporter) ExportCorrelation(mat *correlation.Matrix, mask correlation.Mask, outputPath string) error {
	return m.Called(mat, mask, outputPath).Error(0)
}

// MockWorkbookWriter is a mock for the WorkbookWriter interface
type MockWorkbookWriter struct {
	mock.Mock
}

func (m *MockWorkbookWriter) Write(counts []dataprocessing.CategoryCount, mat *correlation.Matrix, mask correlation.Mask) error {
	return m.Called(counts, mat, mask).Error(0)
}
