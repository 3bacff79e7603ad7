// Package charts renders the two examination charts with gonum/plot.
//
// CatPlot draws the grouped bar panels of the categorical feature counts,
// one panel per cardio outcome. HeatMap draws the masked correlation
// matrix with cell annotations and a color bar.
//
// Both return a *Figure that can be encoded to a writer or saved to a
// file:
//
//	fig, err := charts.HeatMap(m, mask, charts.DefaultHeatmapStyle())
//	if err != nil {
//	    return err
//	}
//	err = fig.Save("heatmap.png")
//
// Rendering is deterministic; saving a figure twice in a raster format
// yields identical files.
package charts
