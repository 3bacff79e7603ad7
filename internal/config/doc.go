// Package config provides configuration management for medviz.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later sources
// overriding earlier ones:
//
//  1. Default values (Default)
//  2. A YAML file (medviz.yaml, configs/medviz.yaml or the -config flag)
//  3. A .env file in the working directory
//  4. Environment variables prefixed with MEDVIZ_
//
// # Environment Variables
//
//	MEDVIZ_INPUT_DATASET=data/medical_examination.csv
//	MEDVIZ_OUTPUT_CATPLOT=out/catplot.png
//	MEDVIZ_FILTER_MODE=legacy
//	MEDVIZ_CHARTS_SCALE_MAX=0.3
//	MEDVIZ_LOGGING_LEVEL=debug
//	MEDVIZ_TELEMETRY_METRICS_FILE=out/medviz.prom
//
// # Path Management
//
// Paths resolves every configured location against the working
// directory:
//
//	paths, err := config.GetPaths(cfg)
//	countsCSV := paths.GetExportPath(config.CategoryCountsCSV)
//
// # Validation
//
// Load validates the merged configuration with go-playground/validator
// struct tags and returns a CONFIG AppError describing the failing fields.
package config
