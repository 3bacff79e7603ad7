package charts

import (
	"bytes"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/config"
	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/dataprocessing"
	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// smallStyles keep rendering fast in tests
func smallHeatmapStyle() HeatmapStyle {
	s := DefaultHeatmapStyle()
	s.Size = 4 * 72
	return s
}

func smallCatPlotStyle() CatPlotStyle {
	s := DefaultCatPlotStyle()
	s.Width, s.Height = 6*72, 3*72
	return s
}

func sampleCounts() []dataprocessing.CategoryCount {
	return []dataprocessing.CategoryCount{
		{Cardio: 0, Value: 0, Variable: "alco", Total: 1},
		{Cardio: 0, Value: 0, Variable: "cholesterol", Total: 1},
		{Cardio: 0, Value: 1, Variable: "active", Total: 1},
		{Cardio: 1, Value: 0, Variable: "alco", Total: 2},
		{Cardio: 1, Value: 1, Variable: "alco", Total: 1},
		{Cardio: 1, Value: 1, Variable: "smoke", Total: 3},
	}
}

// testMatrix is a fixed labelled matrix
type testMatrix struct {
	names  []string
	values [][]float64
}

func (m testMatrix) Names() []string     { return m.names }
func (m testMatrix) At(i, j int) float64 { return m.values[i][j] }

type upperMask struct{}

func (upperMask) Masked(i, j int) bool { return i <= j }

func sampleMatrix() testMatrix {
	return testMatrix{
		names: []string{"a", "b", "c", "d"},
		values: [][]float64{
			{1, 0.2, -0.4, math.NaN()},
			{0.2, 1, 0.15, math.NaN()},
			{-0.4, 0.15, 1, math.NaN()},
			{math.NaN(), math.NaN(), math.NaN(), math.NaN()},
		},
	}
}

func TestCatPlot_Panels(t *testing.T) {
	fig, err := CatPlot(sampleCounts(), smallCatPlotStyle())
	require.NoError(t, err)
	require.NotNil(t, fig)

	panels := fig.Panels()
	require.Len(t, panels, 2)
	assert.Equal(t, "cardio = 0", panels[0].Title.Text)
	assert.Equal(t, "cardio = 1", panels[1].Title.Text)
	assert.Equal(t, "variable", panels[0].X.Label.Text)
	assert.Equal(t, "total", panels[0].Y.Label.Text)

	// panels share the y range
	assert.Equal(t, panels[0].Y.Max, panels[1].Y.Max)
	assert.Equal(t, 0.0, panels[0].Y.Min)
	assert.InDelta(t, 3*1.05, panels[1].Y.Max, 1e-9)
}

func TestCatPlot_Encode(t *testing.T) {
	fig, err := CatPlot(sampleCounts(), smallCatPlotStyle())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fig.Encode(&buf, "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestCatPlot_Empty(t *testing.T) {
	fig, err := CatPlot(nil, smallCatPlotStyle())
	require.NoError(t, err)
	require.Len(t, fig.Panels(), 1)

	var buf bytes.Buffer
	require.NoError(t, fig.Encode(&buf, "png"))
	assert.NotZero(t, buf.Len())
}

func TestCatPlot_RejectsUnknownCategory(t *testing.T) {
	_, err := CatPlot([]dataprocessing.CategoryCount{{Variable: "bmi", Value: 0, Total: 1}}, smallCatPlotStyle())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRender))
}

func TestCatPlot_ValuesOutsideBinaryRange(t *testing.T) {
	counts := append(sampleCounts(),
		dataprocessing.CategoryCount{Cardio: 0, Value: 2, Variable: "smoke", Total: 4},
		dataprocessing.CategoryCount{Cardio: 1, Value: -1, Variable: "cholesterol", Total: 1},
	)

	fig, err := CatPlot(counts, smallCatPlotStyle())
	require.NoError(t, err)

	panels := fig.Panels()
	require.Len(t, panels, 2)
	assert.InDelta(t, 4*1.05, panels[0].Y.Max, 1e-9)
	assert.Equal(t, panels[0].Y.Max, panels[1].Y.Max)

	var buf bytes.Buffer
	require.NoError(t, fig.Encode(&buf, "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestCatPlotStyle_Color(t *testing.T) {
	style := DefaultCatPlotStyle()
	require.Len(t, style.Colors, 2)

	assert.Equal(t, style.Colors[0], style.Color(0))
	assert.Equal(t, style.Colors[1], style.Color(1))
	assert.NotNil(t, style.Color(2))
	assert.NotNil(t, style.Color(7))
}

func TestHeatMap_Figure(t *testing.T) {
	fig, err := HeatMap(sampleMatrix(), upperMask{}, smallHeatmapStyle())
	require.NoError(t, err)

	assert.Equal(t, "heatmap", fig.Name)
	assert.Equal(t, fig.Width, fig.Height)
	require.Len(t, fig.Panels(), 2)

	main := fig.Panels()[0]
	assert.Equal(t, -0.5, main.X.Min)
	assert.Equal(t, 3.5, main.X.Max)

	bar := fig.Panels()[1]
	assert.Equal(t, 0.1, bar.Y.Min)
	assert.Equal(t, 0.25, bar.Y.Max)
}

func TestHeatMap_MaskedGrid(t *testing.T) {
	g := maskedGrid{m: sampleMatrix(), mask: upperMask{}, n: 4}

	c, r := g.Dims()
	assert.Equal(t, 4, c)
	assert.Equal(t, 4, r)

	// grid row 3 is matrix row 0, fully masked
	for col := 0; col < 4; col++ {
		assert.True(t, math.IsNaN(g.Z(col, 3)))
	}
	// matrix (1, 0) sits at grid column 0, row 2
	assert.Equal(t, 0.2, g.Z(0, 2))
	assert.Equal(t, -0.4, g.Z(0, 1))
	// NaN correlations stay NaN
	assert.True(t, math.IsNaN(g.Z(0, 0)))

	unmasked := maskedGrid{m: sampleMatrix(), n: 4}
	assert.Equal(t, 1.0, unmasked.Z(0, 3))
}

func TestHeatMap_Annotations(t *testing.T) {
	style := DefaultHeatmapStyle()
	pal, err := divergingPalette(style)
	require.NoError(t, err)

	g := maskedGrid{m: sampleMatrix(), mask: upperMask{}, n: 4}
	hm := plotter.NewHeatMap(g, pal)
	hm.Min, hm.Max = style.ScaleMin, style.ScaleMax
	hm.Underflow = pal.Colors()[0]
	hm.Overflow = pal.Colors()[style.PaletteSize-1]

	labels, err := annotations(g, hm, style)
	require.NoError(t, err)
	require.NotNil(t, labels)
	assert.ElementsMatch(t, []string{"0.2", "-0.4", "0.1"}, labels.Labels)
	require.Len(t, labels.TextStyle, 3)

	none, err := annotations(maskedGrid{m: sampleMatrix(), mask: upperMask{}, n: 1}, hm, style)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestHeatMap_AllMasked(t *testing.T) {
	m := testMatrix{names: []string{"a"}, values: [][]float64{{1}}}
	fig, err := HeatMap(m, upperMask{}, smallHeatmapStyle())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fig.Encode(&buf, "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestHeatMap_InvalidScale(t *testing.T) {
	style := smallHeatmapStyle()
	style.ScaleMin, style.ScaleMax = 0.3, 0.3

	_, err := HeatMap(sampleMatrix(), upperMask{}, style)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRender))
}

func TestDivergingPalette(t *testing.T) {
	style := DefaultHeatmapStyle()
	pal, err := divergingPalette(style)
	require.NoError(t, err)
	colors := pal.Colors()
	require.Len(t, colors, style.PaletteSize)

	// the scale lies above the center, so every color is on the red side
	for _, c := range []color.Color{colors[0], colors[len(colors)-1]} {
		r, _, b, _ := c.RGBA()
		assert.Greater(t, r, b)
	}
	// and darkens toward the top of the scale
	assert.Greater(t, relativeLuminance(colors[0]), relativeLuminance(colors[len(colors)-1]))

	// a symmetric scale puts the neutral color in the middle
	style.ScaleMin, style.ScaleMax = -1, 1
	pal, err = divergingPalette(style)
	require.NoError(t, err)
	mid := pal.Colors()[style.PaletteSize/2]
	r, g, b, _ := mid.RGBA()
	assert.InDelta(t, float64(r), float64(b), 0.15*0xffff)
	assert.InDelta(t, float64(g), float64(b), 0.2*0xffff)
}

func TestTextColor(t *testing.T) {
	assert.Equal(t, color.White, textColor(color.Black))
	assert.Equal(t, color.Gray{Y: 38}, textColor(color.White))
	assert.Equal(t, color.Gray{Y: 38}, textColor(nil))
}

func TestFormattedTicks(t *testing.T) {
	ticks := formattedTicks("%.2f").Ticks(0.1, 0.25)
	require.NotEmpty(t, ticks)

	labelled := 0
	for _, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		labelled++
		assert.Regexp(t, `^\d\.\d\d$`, tick.Label)
	}
	assert.NotZero(t, labelled)
}

func TestFigure_SaveAndIdempotence(t *testing.T) {
	fig, err := HeatMap(sampleMatrix(), upperMask{}, smallHeatmapStyle())
	require.NoError(t, err)

	dir := t.TempDir()
	first := filepath.Join(dir, "heatmap.png")
	second := filepath.Join(dir, "again.png")
	require.NoError(t, fig.Save(first))
	require.NoError(t, fig.Save(second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(a, pngMagic))
	assert.Equal(t, a, b)

	// saving over an existing file replaces it
	require.NoError(t, fig.Save(first))
	c, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

func TestFigure_Formats(t *testing.T) {
	fig, err := CatPlot(sampleCounts(), smallCatPlotStyle())
	require.NoError(t, err)

	var svg bytes.Buffer
	require.NoError(t, fig.Encode(&svg, "SVG"))
	assert.Contains(t, svg.String(), "<svg")

	err = fig.Encode(&bytes.Buffer{}, "bmp")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRender))

	err = fig.Save(filepath.Join(t.TempDir(), "chart.bmp"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRender))
}

func TestFigure_SaveStorageError(t *testing.T) {
	fig, err := CatPlot(sampleCounts(), smallCatPlotStyle())
	require.NoError(t, err)

	err = fig.Save(filepath.Join(t.TempDir(), "missing", "dir", "catplot.png"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "png", FormatFromPath("catplot.png"))
	assert.Equal(t, "svg", FormatFromPath("out/Chart.SVG"))
	assert.Equal(t, "png", FormatFromPath("noext"))
}

func TestStylesFromConfig(t *testing.T) {
	cfg := config.Default().Charts
	assert.Equal(t, DefaultHeatmapStyle(), NewHeatmapStyle(cfg))
	assert.Equal(t, DefaultCatPlotStyle(), NewCatPlotStyle(cfg))

	cfg.ScaleMax = 0.5
	cfg.HeatMapSize = 6
	s := NewHeatmapStyle(cfg)
	assert.Equal(t, 0.5, s.ScaleMax)
	assert.Equal(t, 6*72.0, float64(s.Size))
}
