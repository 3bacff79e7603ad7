package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/config"
	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
)

// InputExtensions are the dataset file types the loader understands.
// Anything that is not a workbook is read as delimited text.
var InputExtensions = []string{".csv", ".txt", ".tsv", ".xlsx", ".xlsm"}

// ChartExtensions are the image formats charts can be saved in. A path
// without extension is saved as png.
var ChartExtensions = []string{"", ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".tif", ".tiff", ".eps"}

// FileValidator checks input and output locations before a run starts
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError("file").WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to stat file", err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewAppValidationError("path is a directory, not a file").WithContext("path", path)
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("file is not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateInputFile checks that path is a readable dataset of a supported
// type
func (v *FileValidator) ValidateInputFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !contains(InputExtensions, ext) {
		v.logger.Error("Unsupported dataset type",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError("unsupported dataset type").
			WithContext("path", path).
			WithContext("extension", ext)
	}

	// Excel lock files share the workbook extension
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel file",
			slog.String("file", path))
		return apperrors.NewAppValidationError("temporary Excel file").WithContext("path", path)
	}

	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("directory", dir)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).WithContext("directory", dir)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateChartFile checks that a chart can be written to path
func (v *FileValidator) ValidateChartFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !contains(ChartExtensions, ext) {
		v.logger.Error("Unsupported chart format",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError("unsupported chart format").
			WithContext("path", path).
			WithContext("extension", ext)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return apperrors.NewAppValidationError("chart path is a directory").WithContext("path", path)
	}
	return v.ValidateOutputDirectory(filepath.Dir(path))
}

// ValidatePaths checks every location of a run: the dataset, both charts
// and the optional exports
func (v *FileValidator) ValidatePaths(paths *config.Paths) error {
	if err := v.ValidateInputFile(paths.InputFile); err != nil {
		return err
	}
	for _, chart := range []string{paths.CatPlotFile, paths.HeatMapFile} {
		if err := v.ValidateChartFile(chart); err != nil {
			return err
		}
	}
	if paths.ExportDir != "" {
		if err := v.ValidateOutputDirectory(paths.ExportDir); err != nil {
			return err
		}
	}
	if paths.Workbook != "" {
		if ext := strings.ToLower(filepath.Ext(paths.Workbook)); ext != ".xlsx" {
			return apperrors.NewAppValidationError("workbook must be an .xlsx file").
				WithContext("path", paths.Workbook)
		}
		if err := v.ValidateOutputDirectory(filepath.Dir(paths.Workbook)); err != nil {
			return err
		}
	}

	v.logger.Info("Run paths validated",
		slog.String("input", paths.InputFile),
		slog.String("catplot", paths.CatPlotFile),
		slog.String("heatmap", paths.HeatMapFile))
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
