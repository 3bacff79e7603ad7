// Package services implements the report layer of medviz.
//
// ReportService ties the packages together. It loads and normalizes the
// examination dataset, then produces each chart:
//
//	ds, err := svc.LoadDataset(ctx)
//	catplot, err := svc.DrawCatPlot(ctx, ds)
//	heatmap, err := svc.DrawHeatMap(ctx, ds)
//
// Run draws both charts and writes the optional workbook. Every step runs
// in its own span and records the report metrics of the injected
// infrastructure.OTelProviders. Failures are logged with their AppError
// type and context before being returned unchanged.
//
// Table exports go through the TableExporter and WorkbookWriter
// interfaces, implemented by the exporter package and mocked in tests.
package services
