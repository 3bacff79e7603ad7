package config

// Application constants
const (
	// Application Info
	AppName    = "medviz"
	AppVersion = "1.0.0"

	// Environment variable prefix (MEDVIZ_INPUT_DATASET, MEDVIZ_LOGGING_LEVEL, ...)
	EnvPrefix  = "MEDVIZ"
	DotEnvFile = ".env"

	// Fixed relative paths in the working directory
	DefaultInputFile   = "medical_examination.csv"
	DefaultCatPlotFile = "catplot.png"
	DefaultHeatMapFile = "heatmap.png"

	// Export file names, written below Export.CSVDir
	CategoryCountsCSV  = "category_counts.csv"
	FilteredRecordsCSV = "filtered_records.csv"
	CorrelationCSV     = "correlation.csv"

	// Outlier filter
	FilterModeStrict     = "strict"
	FilterModeLegacy     = "legacy"
	DefaultLowerQuantile = 0.025
	DefaultUpperQuantile = 0.975

	// Heatmap styling
	DefaultScaleMin          = 0.1
	DefaultScaleMax          = 0.25
	DefaultCenter            = 0.0
	DefaultAnnotatePrecision = 1
	DefaultColorbarShrink    = 0.45
	DefaultColorbarFormat    = "%.2f"
	DefaultLineWidth         = 0.5 // points
	DefaultHeatMapSize       = 12  // inches, square

	// Categorical plot size in inches
	DefaultCatPlotWidth  = 10
	DefaultCatPlotHeight = 5

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
