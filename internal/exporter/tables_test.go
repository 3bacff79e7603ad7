package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/config"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/correlation"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/dataprocessing"
)

func sampleDataset() *dataprocessing.Dataset {
	return dataprocessing.Normalize(&dataprocessing.RawTable{Records: []dataprocessing.Record{
		{ID: 0, Age: 18393, Gender: 2, Height: 168, Weight: 62, APHi: 110, APLo: 80, Cholesterol: 1, Gluc: 1, Active: 1, Cardio: 0},
		{ID: 1, Age: 20228, Gender: 1, Height: 156, Weight: 85, APHi: 140, APLo: 90, Cholesterol: 3, Gluc: 1, Active: 1, Cardio: 1},
		{ID: 2, Age: 18857, Gender: 1, Height: 165, Weight: 64.5, APHi: 130, APLo: 70, Cholesterol: 3, Gluc: 2, Cardio: 1},
	}})
}

func TestTableExporter_CategoryCounts(t *testing.T) {
	dir := t.TempDir()
	tables := NewTableExporter(&config.Paths{ExportDir: dir})

	counts := dataprocessing.BuildCategoryTable(sampleDataset())
	require.NoError(t, tables.ExportCategoryCounts(counts, config.CategoryCountsCSV))

	lines := readLines(t, filepath.Join(dir, config.CategoryCountsCSV))
	require.Len(t, lines, len(counts)+1)
	assert.Equal(t, "cardio,variable,value,total", lines[0])
	assert.Equal(t, categoryCountRow(counts[0]), splitCSV(lines[1]))
}

func TestTableExporter_WithBOM(t *testing.T) {
	dir := t.TempDir()
	tables := NewTableExporter(&config.Paths{ExportDir: dir}).WithBOM(true)
	ds := sampleDataset()

	require.NoError(t, tables.ExportCategoryCounts(dataprocessing.BuildCategoryTable(ds), config.CategoryCountsCSV))
	require.NoError(t, tables.ExportFilteredRecords(ds, config.FilteredRecordsCSV))
	m, err := correlation.Compute(ds)
	require.NoError(t, err)
	require.NoError(t, tables.ExportCorrelation(m, nil, config.CorrelationCSV))

	for _, name := range []string{config.CategoryCountsCSV, config.FilteredRecordsCSV, config.CorrelationCSV} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(content, utf8BOM), name)
	}
}

func TestTableExporter_FilteredRecords(t *testing.T) {
	dir := t.TempDir()
	tables := NewTableExporter(&config.Paths{ExportDir: dir})

	require.NoError(t, tables.ExportFilteredRecords(sampleDataset(), config.FilteredRecordsCSV))

	lines := readLines(t, filepath.Join(dir, config.FilteredRecordsCSV))
	require.Len(t, lines, 4)
	assert.Equal(t, "id,age,gender,height,weight,ap_hi,ap_lo,cholesterol,gluc,smoke,alco,active,cardio,overweight", lines[0])
	assert.Equal(t, "0,18393,2,168,62,110,80,0,0,0,0,1,0,0", lines[1])
	assert.Equal(t, "1,20228,1,156,85,140,90,1,0,0,0,1,1,1", lines[2])
	assert.Equal(t, "2,18857,1,165,64.5,130,70,1,1,0,0,0,1,0", lines[3])
}

func TestTableExporter_FilteredRecordsEmpty(t *testing.T) {
	dir := t.TempDir()
	tables := NewTableExporter(&config.Paths{ExportDir: dir})

	require.NoError(t, tables.ExportFilteredRecords(dataprocessing.NewDataset(nil), "empty.csv"))
	assert.Len(t, readLines(t, filepath.Join(dir, "empty.csv")), 1)
}

func TestTableExporter_Correlation(t *testing.T) {
	dir := t.TempDir()
	tables := NewTableExporter(&config.Paths{ExportDir: dir})

	m, err := correlation.Compute(sampleDataset())
	require.NoError(t, err)
	names := m.Names()

	require.NoError(t, tables.ExportCorrelation(m, nil, "full.csv"))
	full := readLines(t, filepath.Join(dir, "full.csv"))
	require.Len(t, full, len(names)+1)
	header := splitCSV(full[0])
	assert.Equal(t, "", header[0])
	assert.Equal(t, names, header[1:])

	// id against itself
	assert.Equal(t, []string{"id", "1"}, splitCSV(full[1])[:2])
	// smoke and alco never vary in the sample
	smoke, ok := m.Index(dataprocessing.ColSmoke)
	require.True(t, ok)
	assert.Equal(t, "", splitCSV(full[smoke+1])[1])

	mask := correlation.UpperTriangleMask(len(names))
	require.NoError(t, tables.ExportCorrelation(m, mask, "masked.csv"))
	masked := readLines(t, filepath.Join(dir, "masked.csv"))
	first := splitCSV(masked[1])
	for _, cell := range first[1:] {
		assert.Equal(t, "", cell)
	}
	second := splitCSV(masked[2])
	assert.Equal(t, formatFloat(m.At(1, 0)), second[1])
}
