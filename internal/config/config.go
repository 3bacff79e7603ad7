package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Filter    FilterConfig    `yaml:"filter" envconfig:"FILTER"`
	Charts    ChartsConfig    `yaml:"charts" envconfig:"CHARTS"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig describes the examination dataset
type InputConfig struct {
	Path      string `yaml:"path" envconfig:"DATASET" validate:"required"`
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
}

// OutputConfig holds the chart destinations
type OutputConfig struct {
	CatPlot string `yaml:"catplot" envconfig:"CATPLOT" validate:"required"`
	HeatMap string `yaml:"heatmap" envconfig:"HEATMAP" validate:"required"`
}

// FilterConfig controls outlier removal ahead of the correlation step.
// Mode "strict" ANDs the pressure check with the percentile band; "legacy"
// keeps only the percentile band.
type FilterConfig struct {
	Mode          string  `yaml:"mode" envconfig:"MODE" validate:"oneof=strict legacy"`
	LowerQuantile float64 `yaml:"lower_quantile" envconfig:"LOWER_QUANTILE" validate:"gte=0,lt=1"`
	UpperQuantile float64 `yaml:"upper_quantile" envconfig:"UPPER_QUANTILE" validate:"gt=0,lte=1,gtfield=LowerQuantile"`
}

// ChartsConfig contains presentation parameters for both charts
type ChartsConfig struct {
	ScaleMin          float64 `yaml:"scale_min" envconfig:"SCALE_MIN"`
	ScaleMax          float64 `yaml:"scale_max" envconfig:"SCALE_MAX" validate:"gtfield=ScaleMin"`
	Center            float64 `yaml:"center" envconfig:"CENTER"`
	AnnotatePrecision int     `yaml:"annotate_precision" envconfig:"ANNOTATE_PRECISION" validate:"gte=0,lte=6"`
	ColorbarShrink    float64 `yaml:"colorbar_shrink" envconfig:"COLORBAR_SHRINK" validate:"gt=0,lte=1"`
	ColorbarFormat    string  `yaml:"colorbar_format" envconfig:"COLORBAR_FORMAT" validate:"required"`
	LineWidth         float64 `yaml:"line_width" envconfig:"LINE_WIDTH" validate:"gte=0"`
	HeatMapSize       float64 `yaml:"heatmap_size" envconfig:"HEATMAP_SIZE" validate:"gt=0"`
	CatPlotWidth      float64 `yaml:"catplot_width" envconfig:"CATPLOT_WIDTH" validate:"gt=0"`
	CatPlotHeight     float64 `yaml:"catplot_height" envconfig:"CATPLOT_HEIGHT" validate:"gt=0"`
}

// ExportConfig enables the optional table exports. Empty values disable them.
// CSVBOM prefixes the CSV exports with a UTF-8 BOM for Excel.
type ExportConfig struct {
	CSVDir   string `yaml:"csv_dir" envconfig:"CSV_DIR"`
	CSVBOM   bool   `yaml:"csv_bom" envconfig:"CSV_BOM"`
	Workbook string `yaml:"workbook" envconfig:"WORKBOOK"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Environment   string `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	TraceFile     string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file and MEDVIZ_* environment variables, in that order of
// increasing precedence. An empty path searches the default locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", path)
		}
	}

	// .env never overrides variables already present in the environment
	if FileExists(DotEnvFile) {
		if err := godotenv.Load(DotEnvFile); err != nil {
			return nil, apperrors.NewConfigError("failed to load .env file", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file
// keep their current values
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Filter.Mode = strings.ToLower(c.Filter.Mode)

	v := validator.New()
	if err := v.Struct(c); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
		}
		return apperrors.NewConfigError("config validation failed", err).
			WithContext("fields", fields)
	}

	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		return apperrors.NewConfigError("logging.file_path is required for file output", nil)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"medviz.yaml",
		"configs/medviz.yaml",
		"config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration: relative input and output paths
// and the standard heatmap styling constants.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:      DefaultInputFile,
			Delimiter: ",",
		},
		Output: OutputConfig{
			CatPlot: DefaultCatPlotFile,
			HeatMap: DefaultHeatMapFile,
		},
		Filter: FilterConfig{
			Mode:          FilterModeStrict,
			LowerQuantile: DefaultLowerQuantile,
			UpperQuantile: DefaultUpperQuantile,
		},
		Charts: ChartsConfig{
			ScaleMin:          DefaultScaleMin,
			ScaleMax:          DefaultScaleMax,
			Center:            DefaultCenter,
			AnnotatePrecision: DefaultAnnotatePrecision,
			ColorbarShrink:    DefaultColorbarShrink,
			ColorbarFormat:    DefaultColorbarFormat,
			LineWidth:         DefaultLineWidth,
			HeatMapSize:       DefaultHeatMapSize,
			CatPlotWidth:      DefaultCatPlotWidth,
			CatPlotHeight:     DefaultCatPlotHeight,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/medviz.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName:   AppName,
			Environment:   "development",
			TraceExporter: "none",
			EnableMetrics: true,
		},
	}
}
