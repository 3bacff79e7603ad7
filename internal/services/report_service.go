package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/charts"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/config"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/correlation"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/dataprocessing"
	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/exporter"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/infrastructure"
)

// Report names used in logs, spans and metrics
const (
	ReportCatPlot = "catplot"
	ReportHeatMap = "heatmap"
)

// TableExporter receives the intermediate tables of each report
type TableExporter interface {
	ExportCategoryCounts(counts []dataprocessing.CategoryCount, outputPath string) error
	ExportFilteredRecords(ds *dataprocessing.Dataset, outputPath string) error
	ExportCorrelation(m *correlation.Matrix, mask correlation.Mask, outputPath string) error
}

// WorkbookWriter receives every table of a run at once
type WorkbookWriter interface {
	Write(counts []dataprocessing.CategoryCount, m *correlation.Matrix, mask correlation.Mask) error
}

// ReportService produces the two charts from a normalized dataset
type ReportService struct {
	config  *config.Config
	paths   *config.Paths
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics

	tables   TableExporter
	workbook WorkbookWriter
}

// Reports holds the outcome of Run
type Reports struct {
	CatPlot *charts.Figure
	HeatMap *charts.Figure
	Filter  correlation.FilterResult
}

// NewReportService creates a report service. providers may be nil, in
// which case spans go to the global tracer and no metrics are recorded.
// Table exports are enabled by the export section of cfg.
func NewReportService(cfg *config.Config, paths *config.Paths, logger *slog.Logger, providers *infrastructure.OTelProviders) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &ReportService{
		config: cfg,
		paths:  paths,
		logger: infrastructure.WithComponent(logger, "report_service"),
		tracer: otel.Tracer(infrastructure.MeterName),
	}
	if providers != nil {
		if providers.Tracer != nil {
			s.tracer = providers.Tracer
		}
		s.metrics = providers.Metrics
	}

	if paths.ExportDir != "" {
		s.tables = exporter.NewTableExporter(paths).WithBOM(cfg.Export.CSVBOM)
	}
	if paths.Workbook != "" {
		s.workbook = exporter.NewWorkbookWriter(paths.Workbook)
	}
	return s
}

// WithTableExporter replaces the CSV table exporter; nil disables it
func (s *ReportService) WithTableExporter(t TableExporter) *ReportService {
	s.tables = t
	return s
}

// WithWorkbookWriter replaces the workbook writer; nil disables it
func (s *ReportService) WithWorkbookWriter(w WorkbookWriter) *ReportService {
	s.workbook = w
	return s
}

// LoadDataset reads and normalizes the configured input file
func (s *ReportService) LoadDataset(ctx context.Context) (*dataprocessing.Dataset, error) {
	ctx, span := s.tracer.Start(ctx, "report.load_dataset",
		trace.WithAttributes(attribute.String("input.path", s.paths.InputFile)))
	defer span.End()

	opts := dataprocessing.DefaultParseOptions()
	if d := []rune(s.config.Input.Delimiter); len(d) == 1 {
		opts.Delimiter = d[0]
	}

	start := time.Now()
	ds, err := dataprocessing.LoadDataset(s.paths.InputFile, opts)
	if err != nil {
		s.fail(ctx, "load", err)
		return nil, err
	}

	infrastructure.RecordRecordsLoaded(ctx, s.metrics, ds.Len())
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{"records": ds.Len()})

	s.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("path", s.paths.InputFile),
		slog.Any("summary", dataprocessing.Summarize(ds)),
		slog.Duration("duration", time.Since(start)))
	return ds, nil
}

// DrawCatPlot counts the categorical features per cardio outcome, renders
// the bar chart and writes it to the configured catplot path
func (s *ReportService) DrawCatPlot(ctx context.Context, ds *dataprocessing.Dataset) (fig *charts.Figure, err error) {
	fig, _, err = s.drawCatPlot(ctx, ds)
	return fig, err
}

func (s *ReportService) drawCatPlot(ctx context.Context, ds *dataprocessing.Dataset) (fig *charts.Figure, counts []dataprocessing.CategoryCount, err error) {
	ds = orEmpty(ds)
	ctx, span := s.tracer.Start(ctx, "report.catplot",
		trace.WithAttributes(attribute.Int("records", ds.Len())))
	defer span.End()

	start := time.Now()
	defer func() {
		infrastructure.RecordReportMetrics(ctx, s.metrics, ReportCatPlot, time.Since(start), err)
	}()

	counts = dataprocessing.BuildCategoryTable(ds)
	infrastructure.AddSpanEvent(ctx, "categories.counted", map[string]interface{}{"rows": len(counts)})

	if s.tables != nil {
		if err = s.tables.ExportCategoryCounts(counts, config.CategoryCountsCSV); err != nil {
			s.fail(ctx, ReportCatPlot, err)
			return nil, nil, err
		}
	}
	if err = ctx.Err(); err != nil {
		s.fail(ctx, ReportCatPlot, err)
		return nil, nil, err
	}

	fig, err = charts.CatPlot(counts, charts.NewCatPlotStyle(s.config.Charts))
	if err != nil {
		s.fail(ctx, ReportCatPlot, err)
		return nil, nil, err
	}

	if err = fig.Save(s.paths.CatPlotFile); err != nil {
		s.fail(ctx, ReportCatPlot, err)
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "Chart written",
		slog.String("report", ReportCatPlot),
		slog.String("path", s.paths.CatPlotFile),
		slog.Int("count_rows", len(counts)),
		slog.Duration("duration", time.Since(start)))
	return fig, counts, nil
}

// DrawHeatMap filters outliers, correlates the remaining records, hides
// the upper triangle and writes the annotated heatmap to the configured
// path
func (s *ReportService) DrawHeatMap(ctx context.Context, ds *dataprocessing.Dataset) (*charts.Figure, error) {
	fig, _, _, err := s.drawHeatMap(ctx, ds)
	return fig, err
}

func (s *ReportService) drawHeatMap(ctx context.Context, ds *dataprocessing.Dataset) (fig *charts.Figure, res correlation.FilterResult, m *correlation.Matrix, err error) {
	ds = orEmpty(ds)
	ctx, span := s.tracer.Start(ctx, "report.heatmap",
		trace.WithAttributes(
			attribute.Int("records", ds.Len()),
			attribute.String("filter.mode", s.config.Filter.Mode),
		))
	defer span.End()

	start := time.Now()
	defer func() {
		infrastructure.RecordReportMetrics(ctx, s.metrics, ReportHeatMap, time.Since(start), err)
	}()

	res = correlation.Filter(ds, correlation.FilterOptions{
		Mode:          correlation.Mode(s.config.Filter.Mode),
		LowerQuantile: s.config.Filter.LowerQuantile,
		UpperQuantile: s.config.Filter.UpperQuantile,
	})
	infrastructure.RecordFilterMetrics(ctx, s.metrics, len(res.Kept), res.Dropped)
	infrastructure.AddSpanEvent(ctx, "records.filtered", map[string]interface{}{
		"kept":    len(res.Kept),
		"dropped": res.Dropped,
	})
	s.logger.DebugContext(ctx, "Outliers removed",
		slog.String("mode", string(res.Mode)),
		slog.Int("kept", len(res.Kept)),
		slog.Int("dropped", res.Dropped),
		slog.Float64("height_low", res.HeightBand.Low),
		slog.Float64("height_high", res.HeightBand.High),
		slog.Float64("weight_low", res.WeightBand.Low),
		slog.Float64("weight_high", res.WeightBand.High))

	if err = ctx.Err(); err != nil {
		s.fail(ctx, ReportHeatMap, err)
		return nil, res, nil, err
	}

	m, err = correlation.Compute(res.Dataset)
	if err != nil {
		s.fail(ctx, ReportHeatMap, err)
		return nil, res, nil, err
	}
	n, _ := m.Dims()
	mask := correlation.UpperTriangleMask(n)

	if s.tables != nil {
		if err = s.tables.ExportFilteredRecords(res.Dataset, config.FilteredRecordsCSV); err != nil {
			s.fail(ctx, ReportHeatMap, err)
			return nil, res, nil, err
		}
		if err = s.tables.ExportCorrelation(m, mask, config.CorrelationCSV); err != nil {
			s.fail(ctx, ReportHeatMap, err)
			return nil, res, nil, err
		}
	}

	fig, err = charts.HeatMap(m, mask, charts.NewHeatmapStyle(s.config.Charts))
	if err != nil {
		s.fail(ctx, ReportHeatMap, err)
		return nil, res, nil, err
	}

	if err = fig.Save(s.paths.HeatMapFile); err != nil {
		s.fail(ctx, ReportHeatMap, err)
		return nil, res, nil, err
	}

	s.logger.InfoContext(ctx, "Chart written",
		slog.String("report", ReportHeatMap),
		slog.String("path", s.paths.HeatMapFile),
		slog.Int("columns", n),
		slog.Duration("duration", time.Since(start)))
	return fig, res, m, nil
}

// Run draws both charts and, when configured, writes the workbook
func (s *ReportService) Run(ctx context.Context, ds *dataprocessing.Dataset) (*Reports, error) {
	ctx, span := s.tracer.Start(ctx, "report.run")
	defer span.End()

	catplot, counts, err := s.drawCatPlot(ctx, ds)
	if err != nil {
		return nil, err
	}
	heatmap, res, m, err := s.drawHeatMap(ctx, ds)
	if err != nil {
		return nil, err
	}

	if s.workbook != nil {
		n, _ := m.Dims()
		if err := s.workbook.Write(counts, m, correlation.UpperTriangleMask(n)); err != nil {
			s.fail(ctx, "workbook", err)
			return nil, err
		}
		s.logger.InfoContext(ctx, "Workbook written", slog.String("path", s.paths.Workbook))
	}

	return &Reports{CatPlot: catplot, HeatMap: heatmap, Filter: res}, nil
}

func orEmpty(ds *dataprocessing.Dataset) *dataprocessing.Dataset {
	if ds == nil {
		return dataprocessing.NewDataset(nil)
	}
	return ds
}

// fail records err on the current span and logs it
func (s *ReportService) fail(ctx context.Context, step string, err error) {
	infrastructure.RecordError(ctx, err)

	attrs := []slog.Attr{
		slog.String("step", step),
		slog.String("error", err.Error()),
		slog.String("otel_trace_id", infrastructure.TraceIDFromContext(ctx)),
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		attrs = append(attrs, slog.String("error_type", string(appErr.Type)))
		for k, v := range appErr.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	s.logger.LogAttrs(ctx, slog.LevelError, "Report step failed", attrs...)
}
