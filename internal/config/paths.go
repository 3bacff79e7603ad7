package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every file location used by a run, resolved against
// BaseDir. Relative configuration values are interpreted relative to the
// working directory, matching the fixed relative paths of the analysis.
type Paths struct {
	BaseDir     string
	InputFile   string
	CatPlotFile string
	HeatMapFile string
	ExportDir   string
	Workbook    string
	LogFile     string
	TraceFile   string
	MetricsFile string
}

// GetPaths resolves the configured paths against the current working directory
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return ResolvePaths(wd, cfg), nil
}

// ResolvePaths resolves the configured paths against baseDir. Empty
// optional paths stay empty.
func ResolvePaths(baseDir string, cfg *Config) *Paths {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	return &Paths{
		BaseDir:     baseDir,
		InputFile:   resolve(cfg.Input.Path),
		CatPlotFile: resolve(cfg.Output.CatPlot),
		HeatMapFile: resolve(cfg.Output.HeatMap),
		ExportDir:   resolve(cfg.Export.CSVDir),
		Workbook:    resolve(cfg.Export.Workbook),
		LogFile:     resolve(cfg.Logging.FilePath),
		TraceFile:   resolve(cfg.Telemetry.TraceFile),
		MetricsFile: resolve(cfg.Telemetry.MetricsFile),
	}
}

// EnsureDirectories creates the parent directories of every output
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		filepath.Dir(p.CatPlotFile),
		filepath.Dir(p.HeatMapFile),
	}
	if p.ExportDir != "" {
		directories = append(directories, p.ExportDir)
	}
	if p.Workbook != "" {
		directories = append(directories, filepath.Dir(p.Workbook))
	}
	if p.MetricsFile != "" {
		directories = append(directories, filepath.Dir(p.MetricsFile))
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// GetExportPath returns the path of an exported table
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.String("base_dir", p.BaseDir),
		slog.Group("input",
			slog.String("dataset", p.InputFile),
			slog.Bool("exists", FileExists(p.InputFile)),
		),
		slog.Group("output",
			slog.String("catplot", p.CatPlotFile),
			slog.String("heatmap", p.HeatMapFile),
			slog.String("export_dir", p.ExportDir),
			slog.String("workbook", p.Workbook),
			slog.String("metrics", p.MetricsFile),
		))
}
