package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
)

// Matrix is a square labelled matrix
type Matrix interface {
	Names() []string
	At(i, j int) float64
}

// Masker reports which cells to hide
type Masker interface {
	Masked(i, j int) bool
}

// colorbarWidth is the horizontal space reserved right of the heatmap
const colorbarWidth = 1.1 * vg.Inch

// HeatMap draws m as an annotated heatmap. Cells hidden by mask and NaN
// cells are left blank. The first matrix row is drawn at the top. mask may
// be nil.
func HeatMap(m Matrix, mask Masker, style HeatmapStyle) (*Figure, error) {
	if !(style.ScaleMax > style.ScaleMin) {
		return nil, apperrors.NewRenderError("color scale maximum must exceed its minimum", nil).
			WithContext("scale_min", style.ScaleMin).
			WithContext("scale_max", style.ScaleMax)
	}
	if style.PaletteSize <= 0 {
		style.PaletteSize = DefaultHeatmapStyle().PaletteSize
	}

	pal, err := divergingPalette(style)
	if err != nil {
		return nil, err
	}
	colors := pal.Colors()

	names := m.Names()
	n := len(names)
	grid := maskedGrid{m: m, mask: mask, n: n}

	hm := plotter.NewHeatMap(grid, pal)
	hm.Min = style.ScaleMin
	hm.Max = style.ScaleMax
	hm.Underflow = colors[0]
	hm.Overflow = colors[len(colors)-1]
	hm.NaN = nil

	p := plot.New()
	p.Add(hm)
	p.Add(cellBorders{grid: grid, style: draw.LineStyle{Color: style.LineColor, Width: style.LineWidth}})

	labels, err := annotations(grid, hm, style)
	if err != nil {
		return nil, err
	}
	if labels != nil {
		p.Add(labels)
	}

	xTicks := make([]plot.Tick, n)
	yTicks := make([]plot.Tick, n)
	for i, name := range names {
		xTicks[i] = plot.Tick{Value: float64(i), Label: name}
		yTicks[i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Length = 0
	p.Y.Tick.Length = 0
	p.X.LineStyle.Width = 0
	p.Y.LineStyle.Width = 0
	p.X.Padding = 0
	p.Y.Padding = 0
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(n)-0.5
	if n == 0 {
		p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = 0, 1, 0, 1
	}

	bar := colorbar(pal, hm, style)

	fig := &Figure{
		Name:   "heatmap",
		Width:  style.Size,
		Height: style.Size,
		panels: []*plot.Plot{p, bar},
	}
	fig.draw = func(dc draw.Canvas) {
		pad := vg.Length(0.2) * vg.Inch
		dc = draw.Crop(dc, pad, -pad, pad, -pad)

		p.Draw(draw.Crop(dc, 0, -colorbarWidth, 0, 0))

		height := dc.Max.Y - dc.Min.Y
		margin := height * vg.Length(1-style.ColorbarShrink) / 2
		left := dc.Max.X - dc.Min.X - colorbarWidth + vg.Length(0.25)*vg.Inch
		bar.Draw(draw.Crop(dc, left, 0, margin, -margin))
	}
	return fig, nil
}

// maskedGrid exposes a matrix as a plotter.GridXYZ with row 0 at the top
type maskedGrid struct {
	m    Matrix
	mask Masker
	n    int
}

func (g maskedGrid) Dims() (c, r int) { return g.n, g.n }

func (g maskedGrid) Z(c, r int) float64 {
	i, j := g.n-1-r, c
	if g.mask != nil && g.mask.Masked(i, j) {
		return math.NaN()
	}
	return g.m.At(i, j)
}

func (g maskedGrid) X(c int) float64 { return float64(c) }

func (g maskedGrid) Y(r int) float64 { return float64(r) }

// cellBorders outlines every visible cell
type cellBorders struct {
	grid  maskedGrid
	style draw.LineStyle
}

// Plot implements plot.Plotter
func (b cellBorders) Plot(c draw.Canvas, plt *plot.Plot) {
	if b.style.Width <= 0 || b.style.Color == nil {
		return
	}
	trX, trY := plt.Transforms(&c)
	for col := 0; col < b.grid.n; col++ {
		for row := 0; row < b.grid.n; row++ {
			if math.IsNaN(b.grid.Z(col, row)) {
				continue
			}
			x0, x1 := trX(float64(col)-0.5), trX(float64(col)+0.5)
			y0, y1 := trY(float64(row)-0.5), trY(float64(row)+0.5)
			c.StrokeLines(b.style, []vg.Point{
				{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
			})
		}
	}
}

// annotations labels every visible cell with its value. It returns nil
// when no cell is visible.
func annotations(grid maskedGrid, hm *plotter.HeatMap, style HeatmapStyle) (*plotter.Labels, error) {
	var data plotter.XYLabels
	var cellColors []color.Color
	for col := 0; col < grid.n; col++ {
		for row := 0; row < grid.n; row++ {
			v := grid.Z(col, row)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			data.XYs = append(data.XYs, plotter.XY{X: grid.X(col), Y: grid.Y(row)})
			data.Labels = append(data.Labels, fmt.Sprintf("%.*f", style.AnnotatePrecision, v))
			cellColors = append(cellColors, cellColor(hm, v))
		}
	}
	if len(data.XYs) == 0 {
		return nil, nil
	}

	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, apperrors.NewRenderError("failed to create cell annotations", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Color = textColor(cellColors[i])
	}
	return labels, nil
}

// colorbar draws the color scale as a one column heatmap with formatted
// ticks on its left
func colorbar(pal palette.Palette, hm *plotter.HeatMap, style HeatmapStyle) *plot.Plot {
	steps := len(pal.Colors())
	values := make([]float64, steps)
	step := (style.ScaleMax - style.ScaleMin) / float64(steps)
	for k := range values {
		values[k] = style.ScaleMin + (float64(k)+0.5)*step
	}

	bar := plotter.NewHeatMap(scaleGrid{values: values}, pal)
	bar.Min, bar.Max = hm.Min, hm.Max
	bar.Underflow, bar.Overflow = hm.Underflow, hm.Overflow

	p := plot.New()
	p.Add(bar)
	p.HideX()
	p.Y.Min, p.Y.Max = style.ScaleMin, style.ScaleMax
	p.Y.Padding = 0
	p.Y.LineStyle.Width = 0
	p.Y.Tick.Marker = formattedTicks(style.ColorbarFormat)
	return p
}

// scaleGrid is a single column of evenly spaced scale values
type scaleGrid struct {
	values []float64
}

func (g scaleGrid) Dims() (c, r int)    { return 1, len(g.values) }
func (g scaleGrid) Z(c, r int) float64 { return g.values[r] }
func (g scaleGrid) X(c int) float64    { return 0 }
func (g scaleGrid) Y(r int) float64    { return g.values[r] }

// formattedTicks relabels the default major ticks with format
func formattedTicks(format string) plot.Ticker {
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		ticks := plot.DefaultTicks{}.Ticks(min, max)
		for i := range ticks {
			if ticks[i].Label != "" {
				ticks[i].Label = fmt.Sprintf(format, ticks[i].Value)
			}
		}
		return ticks
	})
}

// divergingPalette samples a blue-red diverging color map over
// [ScaleMin, ScaleMax]. The map is centered on Center and spans the larger
// distance from Center to either end of the scale, so Center always gets
// the neutral midpoint color.
func divergingPalette(style HeatmapStyle) (palette.Palette, error) {
	r := math.Max(math.Abs(style.ScaleMin-style.Center), math.Abs(style.ScaleMax-style.Center))
	if r == 0 {
		r = 1
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMax(style.Center + r)
	cm.SetMin(style.Center - r)

	colors := make(sampledPalette, style.PaletteSize)
	step := (style.ScaleMax - style.ScaleMin) / float64(style.PaletteSize)
	for k := range colors {
		c, err := cm.At(style.ScaleMin + (float64(k)+0.5)*step)
		if err != nil {
			return nil, apperrors.NewRenderError("failed to sample color map", err)
		}
		colors[k] = c
	}
	return colors, nil
}

// sampledPalette is a fixed list of colors
type sampledPalette []color.Color

// Colors implements palette.Palette
func (p sampledPalette) Colors() []color.Color { return p }

// cellColor returns the color hm paints for v
func cellColor(hm *plotter.HeatMap, v float64) color.Color {
	colors := hm.Palette.Colors()
	switch {
	case v < hm.Min:
		return hm.Underflow
	case v > hm.Max:
		return hm.Overflow
	}
	idx := int((v - hm.Min) / (hm.Max - hm.Min) * float64(len(colors)))
	if idx >= len(colors) {
		idx = len(colors) - 1
	}
	return colors[idx]
}

// textColor picks dark text on light cells and white text on dark cells
func textColor(bg color.Color) color.Color {
	if bg == nil || relativeLuminance(bg) > 0.408 {
		return color.Gray{Y: 38}
	}
	return color.White
}

// relativeLuminance follows the sRGB definition of WCAG 2
func relativeLuminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	lin := func(v uint32) float64 {
		s := float64(v) / 0xffff
		if s <= 0.03928 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(r) + 0.7152*lin(g) + 0.0722*lin(b)
}
