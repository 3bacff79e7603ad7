package correlation

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/dataprocessing"
)

// sampleDataset mirrors the four-record examination fixture after
// normalization
func sampleDataset() *dataprocessing.Dataset {
	return dataprocessing.Normalize(&dataprocessing.RawTable{Records: []dataprocessing.Record{
		{ID: 0, Age: 18393, Gender: 2, Height: 168, Weight: 62, APHi: 110, APLo: 80, Cholesterol: 1, Gluc: 1, Active: 1, Cardio: 0},
		{ID: 1, Age: 20228, Gender: 1, Height: 156, Weight: 85, APHi: 140, APLo: 90, Cholesterol: 3, Gluc: 1, Active: 1, Cardio: 1},
		{ID: 2, Age: 18857, Gender: 1, Height: 165, Weight: 64, APHi: 130, APLo: 70, Cholesterol: 3, Gluc: 2, Cardio: 1},
		{ID: 3, Age: 17623, Gender: 2, Height: 169, Weight: 82, APHi: 150, APLo: 100, Cholesterol: 1, Gluc: 1, Smoke: 1, Alco: 1, Active: 1, Cardio: 1},
	}})
}

// spreadDataset has 40 records with heights 150..189 and weights 50..89.
// Records 10 and 20 have inverted blood pressure.
func spreadDataset() *dataprocessing.Dataset {
	records := make([]dataprocessing.Record, 40)
	for i := range records {
		records[i] = dataprocessing.Record{
			ID:     i,
			Age:    15000 + 100*i,
			Gender: 1 + i%2,
			Height: float64(150 + i),
			Weight: float64(50 + (i*7)%40),
			APHi:   120,
			APLo:   80,
			Cardio: i % 2,
		}
	}
	records[10].APLo = 130
	records[20].APLo = 121
	return dataprocessing.NewDataset(records)
}

func ids(ds *dataprocessing.Dataset) []int {
	out := make([]int, 0, ds.Len())
	for _, r := range ds.Records() {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter_Sample(t *testing.T) {
	res := Filter(sampleDataset(), DefaultFilterOptions())

	assert.Equal(t, ModeStrict, res.Mode)
	assert.InDelta(t, 156.675, res.HeightBand.Low, 1e-9)
	assert.InDelta(t, 168.925, res.HeightBand.High, 1e-9)
	assert.InDelta(t, 62.15, res.WeightBand.Low, 1e-9)
	assert.InDelta(t, 84.775, res.WeightBand.High, 1e-9)

	// id 0 is below the weight band, id 1 below the height band,
	// id 3 above the height band
	assert.Equal(t, []int{2}, ids(res.Dataset))
	assert.Equal(t, []int{2}, res.Kept)
	assert.Equal(t, 3, res.Dropped)
}

func TestFilter_StrictDropsInvertedPressure(t *testing.T) {
	ds := spreadDataset()
	res := Filter(ds, DefaultFilterOptions())

	for _, r := range res.Dataset.Records() {
		assert.LessOrEqual(t, r.APLo, r.APHi)
		assert.True(t, res.HeightBand.Contains(r.Height))
		assert.True(t, res.WeightBand.Contains(r.Weight))
	}
	assert.NotContains(t, ids(res.Dataset), 10)
	assert.NotContains(t, ids(res.Dataset), 20)
	assert.Equal(t, ds.Len(), res.Dataset.Len()+res.Dropped)
}

func TestFilter_LegacyKeepsInvertedPressure(t *testing.T) {
	ds := spreadDataset()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	strict := Filter(ds, DefaultFilterOptions())
	legacy := Filter(ds, FilterOptions{Mode: ModeLegacy, LowerQuantile: 0.025, UpperQuantile: 0.975})

	assert.Equal(t, ModeLegacy, legacy.Mode)
	assert.Contains(t, ids(legacy.Dataset), 10)
	assert.Contains(t, ids(legacy.Dataset), 20)
	assert.Equal(t, strict.Dataset.Len()+2, legacy.Dataset.Len())
	assert.Contains(t, buf.String(), "Legacy outlier filter")
}

func TestFilter_BandsUseUnfilteredData(t *testing.T) {
	ds := spreadDataset()
	res := Filter(ds, DefaultFilterOptions())

	heights, err := ds.Column(dataprocessing.ColHeight)
	require.NoError(t, err)
	assert.Equal(t, Quantile(heights, 0.025), res.HeightBand.Low)
	assert.Equal(t, Quantile(heights, 0.975), res.HeightBand.High)

	// heights 150 and 189 fall outside [150.975, 188.025]
	assert.NotContains(t, ids(res.Dataset), 0)
	assert.NotContains(t, ids(res.Dataset), 39)
}

func TestFilter_ModeHandling(t *testing.T) {
	ds := spreadDataset()

	assert.Equal(t, ModeStrict, Filter(ds, FilterOptions{LowerQuantile: 0, UpperQuantile: 1}).Mode)
	assert.Equal(t, ModeStrict, Filter(ds, FilterOptions{Mode: "bogus", UpperQuantile: 1}).Mode)
	assert.Equal(t, ModeLegacy, Filter(ds, FilterOptions{Mode: "LEGACY", UpperQuantile: 1}).Mode)

	// a full band keeps every consistent record
	res := Filter(ds, FilterOptions{Mode: ModeStrict, LowerQuantile: 0, UpperQuantile: 1})
	assert.Equal(t, 38, res.Dataset.Len())
}

func TestFilter_Empty(t *testing.T) {
	res := Filter(dataprocessing.NewDataset(nil), DefaultFilterOptions())
	assert.Equal(t, 0, res.Dataset.Len())
	assert.Equal(t, 0, res.Dropped)
	assert.Empty(t, res.Kept)
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	ds := spreadDataset()
	Filter(ds, DefaultFilterOptions())
	assert.Equal(t, 40, ds.Len())
}
