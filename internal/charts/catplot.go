package charts

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/dataprocessing"
	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
)

// CatPlot draws one bar panel per cardio outcome, ascending. Each panel
// shows every categorical feature, alphabetically, with one bar per value
// whose height is the number of records. Values 0 and 1 are always drawn;
// any other observed value gets a bar series of its own in every panel.
// Combinations absent from counts are drawn as zero-height bars. Without
// counts the figure has a single empty panel.
func CatPlot(counts []dataprocessing.CategoryCount, style CatPlotStyle) (*Figure, error) {
	features := append([]string(nil), dataprocessing.CategoricalFeatures...)
	sort.Strings(features)
	featureIndex := make(map[string]int, len(features))
	for i, f := range features {
		featureIndex[f] = i
	}

	values := []int{0, 1}
	seen := map[int]bool{0: true, 1: true}
	for _, c := range counts {
		if _, ok := featureIndex[c.Variable]; !ok {
			return nil, apperrors.NewRenderError("unexpected category count", nil).
				WithContext("variable", c.Variable).
				WithContext("value", c.Value)
		}
		if !seen[c.Value] {
			seen[c.Value] = true
			values = append(values, c.Value)
		}
	}
	sort.Ints(values)
	valueIndex := make(map[int]int, len(values))
	for i, v := range values {
		valueIndex[v] = i
	}

	// totals[cardio][value index][feature]
	totals := make(map[int][]plotter.Values)
	var outcomes []int
	maxTotal := 0.0
	for _, c := range counts {
		t, ok := totals[c.Cardio]
		if !ok {
			t = make([]plotter.Values, len(values))
			for i := range t {
				t[i] = make(plotter.Values, len(features))
			}
			totals[c.Cardio] = t
			outcomes = append(outcomes, c.Cardio)
		}
		vi, fi := valueIndex[c.Value], featureIndex[c.Variable]
		t[vi][fi] += float64(c.Total)
		maxTotal = math.Max(maxTotal, t[vi][fi])
	}
	sort.Ints(outcomes)

	yMax := 1.0
	if maxTotal > 0 {
		yMax = maxTotal * 1.05
	}

	series := catSeries{values: values}
	var panels []*plot.Plot
	for _, cardio := range outcomes {
		series.totals = totals[cardio]
		p, err := catPanel(fmt.Sprintf("cardio = %d", cardio), features, series, yMax, style)
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}
	if len(panels) == 0 {
		p, err := catPanel("cardio", features, catSeries{}, yMax, style)
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}

	fig := &Figure{
		Name:   "catplot",
		Width:  style.Width,
		Height: style.Height,
		panels: panels,
	}
	fig.draw = func(dc draw.Canvas) {
		tiles := draw.Tiles{
			Rows:      1,
			Cols:      len(panels),
			PadX:      vg.Millimeter * 4,
			PadTop:    vg.Millimeter * 2,
			PadBottom: vg.Millimeter * 2,
			PadLeft:   vg.Millimeter * 2,
			PadRight:  vg.Millimeter * 2,
		}
		canvases := plot.Align([][]*plot.Plot{panels}, tiles, dc)
		for j, p := range panels {
			p.Draw(canvases[0][j])
		}
	}
	return fig, nil
}

// catSeries holds the per-value bar heights of one panel
type catSeries struct {
	values []int
	totals []plotter.Values
}

func catPanel(title string, features []string, series catSeries, yMax float64, style CatPlotStyle) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "variable"
	p.Y.Label.Text = "total"

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	n := len(series.totals)
	for i := 0; i < n; i++ {
		bars, err := plotter.NewBarChart(series.totals[i], style.BarWidth)
		if err != nil {
			return nil, apperrors.NewRenderError("failed to create bar chart", err).
				WithContext("panel", title)
		}
		bars.Color = style.Color(i)
		bars.LineStyle.Width = vg.Length(0)
		// bars of one feature sit side by side, centred on the tick
		bars.Offset = (vg.Length(i) - vg.Length(n-1)/2) * style.BarWidth
		p.Add(bars)
		p.Legend.Add(fmt.Sprintf("value = %d", series.values[i]), bars)
	}
	if n > 0 {
		p.Legend.Top = true
	}

	p.NominalX(features...)
	p.X.Tick.Label.XAlign = draw.XCenter
	p.X.Min = -0.5
	p.X.Max = float64(len(features)) - 0.5
	p.Y.Min = 0
	p.Y.Max = math.Max(yMax, 1)

	return p, nil
}
