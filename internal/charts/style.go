package charts

import (
	"image/color"

	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/config"
)

// HeatmapStyle holds the presentation parameters of the correlation heatmap
type HeatmapStyle struct {
	// ScaleMin and ScaleMax fix the color scale; values outside are clipped
	ScaleMin float64
	ScaleMax float64

	// Center is the value mapped to the midpoint of the diverging palette
	Center float64

	// AnnotatePrecision is the number of decimals printed in each cell
	AnnotatePrecision int

	// ColorbarShrink is the color bar height as a fraction of the figure
	ColorbarShrink float64

	// ColorbarFormat formats the color bar tick labels
	ColorbarFormat string

	// LineWidth is the width of the lines separating cells
	LineWidth vg.Length
	LineColor color.Color

	// Size is the side length of the square figure
	Size vg.Length

	// PaletteSize is the number of discrete colors sampled from the palette
	PaletteSize int
}

// DefaultHeatmapStyle returns the configured default heatmap styling
func DefaultHeatmapStyle() HeatmapStyle {
	return HeatmapStyle{
		ScaleMin:          config.DefaultScaleMin,
		ScaleMax:          config.DefaultScaleMax,
		Center:            config.DefaultCenter,
		AnnotatePrecision: config.DefaultAnnotatePrecision,
		ColorbarShrink:    config.DefaultColorbarShrink,
		ColorbarFormat:    config.DefaultColorbarFormat,
		LineWidth:         vg.Points(config.DefaultLineWidth),
		LineColor:         color.White,
		Size:              config.DefaultHeatMapSize * vg.Inch,
		PaletteSize:       256,
	}
}

// NewHeatmapStyle builds the heatmap style from the charts configuration
func NewHeatmapStyle(cfg config.ChartsConfig) HeatmapStyle {
	s := DefaultHeatmapStyle()
	s.ScaleMin = cfg.ScaleMin
	s.ScaleMax = cfg.ScaleMax
	s.Center = cfg.Center
	s.AnnotatePrecision = cfg.AnnotatePrecision
	s.ColorbarShrink = cfg.ColorbarShrink
	s.ColorbarFormat = cfg.ColorbarFormat
	s.LineWidth = vg.Points(cfg.LineWidth)
	s.Size = vg.Length(cfg.HeatMapSize) * vg.Inch
	return s
}

// CatPlotStyle holds the presentation parameters of the categorical plot
type CatPlotStyle struct {
	Width  vg.Length
	Height vg.Length

	// BarWidth is the width of a single bar; the bars of a feature sit
	// side by side
	BarWidth vg.Length

	// Colors are the bar colors in ascending value order
	Colors []color.Color
}

// Color returns the bar color of the i-th value. Values beyond Colors
// take the plotutil default palette.
func (s CatPlotStyle) Color(i int) color.Color {
	if i < len(s.Colors) {
		return s.Colors[i]
	}
	return plotutil.Color(i)
}

// DefaultCatPlotStyle returns two 5 inch panels side by side with the
// muted blue and orange bars
func DefaultCatPlotStyle() CatPlotStyle {
	return CatPlotStyle{
		Width:    config.DefaultCatPlotWidth * vg.Inch,
		Height:   config.DefaultCatPlotHeight * vg.Inch,
		BarWidth: vg.Points(14),
		Colors: []color.Color{
			color.RGBA{R: 76, G: 114, B: 176, A: 255},
			color.RGBA{R: 221, G: 132, B: 82, A: 255},
		},
	}
}

// NewCatPlotStyle builds the catplot style from the charts configuration
func NewCatPlotStyle(cfg config.ChartsConfig) CatPlotStyle {
	s := DefaultCatPlotStyle()
	s.Width = vg.Length(cfg.CatPlotWidth) * vg.Inch
	s.Height = vg.Length(cfg.CatPlotHeight) * vg.Inch
	return s
}
