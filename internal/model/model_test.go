package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepData is a simple piecewise-constant target a shallow tree can
// learn exactly.
func stepData(n int) ([][]float64, []float64) {
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		v := float64(i)
		x[i] = []float64{v, math.Mod(v*7, 13)}
		if v < float64(n)/2 {
			y[i] = 1.0
		} else {
			y[i] = 5.0
		}
	}
	return x, y
}

func TestFitLearnsStepFunction(t *testing.T) {
	x, y := stepData(100)
	m := Fit(x, y, Config{
		LearningRate:   0.5,
		MaxIter:        50,
		MaxDepth:       3,
		MinSamplesLeaf: 10,
		L2:             0.0,
	})

	preds := m.Predict(x)
	for i := range y {
		assert.InDelta(t, y[i], preds[i], 0.05, "row %d", i)
	}
}

func TestFitBaselineIsTargetMean(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{2, 4, 6, 8}
	m := Fit(x, y, Config{LearningRate: 0.1, MaxIter: 1, MaxDepth: 1, MinSamplesLeaf: 2, L2: 0})
	assert.InDelta(t, 5.0, m.Baseline, 1e-12)
}

func TestFitUnlimitedDepthStopsOnLeafSize(t *testing.T) {
	x, y := stepData(40)
	// MaxDepth 0 must not recurse forever; leaf-size bounds growth.
	m := Fit(x, y, Config{LearningRate: 0.3, MaxIter: 10, MaxDepth: 0, MinSamplesLeaf: 5, L2: 0.1})
	require.Len(t, m.Trees, 10)
	assert.InDelta(t, 1.0, m.PredictRow([]float64{2, 1}), 0.2)
}

func TestL2ShrinksLeafValues(t *testing.T) {
	y := []float64{4, 4, 4, 4}
	idx := []int{0, 1, 2, 3}
	assert.InDelta(t, 4.0, leafValue(y, idx, 0), 1e-12)
	assert.InDelta(t, 16.0/5.0, leafValue(y, idx, 1.0), 1e-12)
}

func TestBestSplitRespectsMinLeaf(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}}
	y := []float64{0, 0, 0, 10, 10, 10}
	idx := []int{0, 1, 2, 3, 4, 5}

	f, thr, ok := bestSplit(x, y, idx, 3)
	require.True(t, ok)
	assert.Equal(t, 0, f)
	assert.InDelta(t, 3.5, thr, 1e-12)

	// A minimum leaf of 4 leaves no legal boundary.
	_, _, ok = bestSplit(x, y, idx, 4)
	assert.False(t, ok)
}

func TestBestSplitSkipsEqualValues(t *testing.T) {
	x := [][]float64{{1}, {1}, {1}, {1}}
	y := []float64{0, 1, 2, 3}
	_, _, ok := bestSplit(x, y, []int{0, 1, 2, 3}, 1)
	assert.False(t, ok)
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	x, y := stepData(50)
	xTr1, xTe1, yTr1, yTe1 := TrainTestSplit(x, y, 0.2, SplitSeed)
	xTr2, xTe2, yTr2, yTe2 := TrainTestSplit(x, y, 0.2, SplitSeed)

	assert.Equal(t, xTr1, xTr2)
	assert.Equal(t, xTe1, xTe2)
	assert.Equal(t, yTr1, yTr2)
	assert.Equal(t, yTe1, yTe2)
	assert.Len(t, yTe1, 10)
	assert.Len(t, yTr1, 40)
}

func TestRandomizedSearchPicksWorkingConfig(t *testing.T) {
	x, y := stepData(60)
	res := RandomizedSearch(x, y, 5, 3, SplitSeed)
	assert.False(t, math.IsInf(res.Score, -1))
	assert.Greater(t, res.Score, -2.0)
	assert.Contains(t, gridLearningRate, res.Config.LearningRate)
	assert.Contains(t, gridMaxIter, res.Config.MaxIter)
}

func TestMetrics(t *testing.T) {
	pred := []float64{1, 2, 3}
	actual := []float64{1, 2, 5}
	m := Evaluate(pred, actual)
	assert.InDelta(t, 2.0/3.0, m.MAE, 1e-12)
	assert.InDelta(t, math.Sqrt(4.0/3.0), m.RMSE, 1e-12)
	assert.Equal(t, 3, m.Samples)

	perfect := Evaluate(actual, actual)
	assert.InDelta(t, 1.0, perfect.R2, 1e-12)
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "advanced/v2")

	x, y := stepData(40)
	m := Fit(x, y, DefaultConfig())
	names := []string{"goals_per_60", "points_per_60"}

	require.NoError(t, store.Save("forward_model", m, names))
	assert.True(t, store.Exists("forward_model"))

	loaded, loadedNames, err := store.Load("forward_model")
	require.NoError(t, err)
	assert.Equal(t, names, loadedNames)
	assert.Equal(t, m.Config, loaded.Config)
	assert.InDelta(t, m.PredictRow(x[3]), loaded.PredictRow(x[3]), 1e-12)
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir(), "advanced/v2")
	_, _, err := store.Load("goalie_model")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, store.Exists("goalie_model"))
}

func TestStoreRejectsSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	old := NewStore(dir, "advanced/v1")
	x, y := stepData(40)
	require.NoError(t, old.Save("forward_model", Fit(x, y, DefaultConfig()), []string{"a"}))

	current := NewStore(dir, "advanced/v2")
	_, _, err := current.Load("forward_model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version")
}
