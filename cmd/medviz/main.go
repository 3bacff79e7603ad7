package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/config"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/infrastructure"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/services"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		}
		stop()
		os.Exit(1)
	}
}

// options are the command line flags. Non-empty values override the
// loaded configuration.
type options struct {
	configPath string
	input      string
	catplot    string
	heatmap    string
	filterMode string
	exportDir  string
	workbook   string
	version    bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(output)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file (defaults to medviz.yaml when present)")
	fs.StringVar(&opts.input, "input", "", "examination dataset, .csv or .xlsx (default "+config.DefaultInputFile+")")
	fs.StringVar(&opts.catplot, "catplot", "", "categorical plot output (default "+config.DefaultCatPlotFile+")")
	fs.StringVar(&opts.heatmap, "heatmap", "", "correlation heatmap output (default "+config.DefaultHeatMapFile+")")
	fs.StringVar(&opts.filterMode, "filter", "", "outlier filter mode: strict or legacy")
	fs.StringVar(&opts.exportDir, "export-dir", "", "directory for the intermediate CSV tables")
	fs.StringVar(&opts.workbook, "workbook", "", "xlsx workbook holding the intermediate tables")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// loadConfig loads the configuration and applies the flag overrides
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	// Matches the case folding Config.validate applies to file and env values
	opts.filterMode = strings.ToLower(strings.TrimSpace(opts.filterMode))

	overrides := []struct {
		value  string
		target *string
	}{
		{opts.input, &cfg.Input.Path},
		{opts.catplot, &cfg.Output.CatPlot},
		{opts.heatmap, &cfg.Output.HeatMap},
		{opts.filterMode, &cfg.Filter.Mode},
		{opts.exportDir, &cfg.Export.CSVDir},
		{opts.workbook, &cfg.Export.Workbook},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = o.value
		}
	}
	if opts.filterMode != "" && opts.filterMode != config.FilterModeStrict && opts.filterMode != config.FilterModeLegacy {
		return nil, fmt.Errorf("invalid filter mode %q", opts.filterMode)
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) (err error) {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintf(stdout, "%s %s\n", config.AppName, config.AppVersion)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	logCfg := cfg.Logging
	logCfg.FilePath = paths.LogFile
	logger, err := infrastructure.InitializeLogger(logCfg)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()
	defer func() {
		if err != nil {
			infrastructure.WithError(infrastructure.LoggerWithContext(ctx), err).Error("medviz failed")
		}
	}()
	paths.LogPathResolution(logger)

	if err := validation.NewFileValidator(logger).ValidatePaths(paths); err != nil {
		return err
	}

	otelCfg := infrastructure.NewOTelConfig(cfg.Telemetry)
	otelCfg.TraceFile = paths.TraceFile
	otelCfg.MetricsFile = paths.MetricsFile
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := providers.Shutdown(shutdownCtx); serr != nil && err == nil {
			err = serr
		}
	}()

	ctx = infrastructure.EnsureTraceID(ctx)
	start := time.Now()
	logger.InfoContext(ctx, "Starting medviz",
		slog.String("version", config.AppVersion),
		slog.String("input", paths.InputFile),
		slog.String("filter_mode", cfg.Filter.Mode))

	svc := services.NewReportService(cfg, paths, logger, providers)

	ds, err := svc.LoadDataset(ctx)
	if err != nil {
		return err
	}
	reports, err := svc.Run(ctx, ds)
	if err != nil {
		return err
	}

	stats := infrastructure.CollectRuntimeStats(ctx, providers.Metrics, start)
	logger.InfoContext(ctx, "medviz finished",
		slog.String("catplot", paths.CatPlotFile),
		slog.String("heatmap", paths.HeatMapFile),
		slog.Int("records", ds.Len()),
		slog.Int("records_kept", len(reports.Filter.Kept)),
		slog.Any("runtime", stats.FormatStats()))
	return nil
}
