package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/config"
	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/shared/testutil"
)

func TestFileValidator_ValidateInputFile(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantType  apperrors.ErrorType
	}{
		{
			name: "csv dataset",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, t.TempDir(), "medical_examination.csv", testutil.ExaminationCSV(2))
			},
		},
		{
			name: "workbook dataset",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, t.TempDir(), "medical_examination.xlsx", "PK")
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.csv")
			},
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				dir := filepath.Join(t.TempDir(), "data.csv")
				require.NoError(t, os.Mkdir(dir, 0755))
				return dir
			},
			wantType: apperrors.ErrTypeValidation,
		},
		{
			name: "unsupported extension",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, t.TempDir(), "data.json", "{}")
			},
			wantType: apperrors.ErrTypeValidation,
		},
		{
			name: "excel lock file",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, t.TempDir(), "~$medical_examination.xlsx", "")
			},
			wantType: apperrors.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			err := validator.ValidateInputFile(tt.setupFunc(t))

			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	validator := NewFileValidator(nil)

	dir := filepath.Join(t.TempDir(), "nested", "charts")
	require.NoError(t, validator.ValidateOutputDirectory(dir))
	assert.DirExists(t, dir)
	assert.NoFileExists(t, filepath.Join(dir, ".write_test"))

	blocker := testutil.WriteFile(t, t.TempDir(), "file", "x")
	err := validator.ValidateOutputDirectory(filepath.Join(blocker, "charts"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestFileValidator_ValidateChartFile(t *testing.T) {
	validator := NewFileValidator(nil)
	dir := t.TempDir()

	for _, name := range []string{"catplot.png", "heatmap.SVG", "chart.pdf", "noext"} {
		assert.NoError(t, validator.ValidateChartFile(filepath.Join(dir, name)), name)
	}

	err := validator.ValidateChartFile(filepath.Join(dir, "chart.bmp"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "plots.png"), 0755))
	err = validator.ValidateChartFile(filepath.Join(dir, "plots.png"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestFileValidator_ValidatePaths(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, config.DefaultInputFile, testutil.ExaminationCSV(2))

	logger, handler := testutil.NewTestLogger(t)
	validator := NewFileValidator(logger)

	cfg := config.Default()
	cfg.Export.CSVDir = "exports"
	cfg.Export.Workbook = "exports/medviz.xlsx"
	require.NoError(t, validator.ValidatePaths(config.ResolvePaths(dir, cfg)))
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Run paths validated")
	testutil.AssertNoErrors(t, handler)

	cfg.Export.Workbook = "exports/medviz.csv"
	err := validator.ValidatePaths(config.ResolvePaths(dir, cfg))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	cfg = config.Default()
	cfg.Output.HeatMap = "heatmap.gif"
	err = validator.ValidatePaths(config.ResolvePaths(dir, cfg))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}
