package model

import (
	"math"
	"math/rand"
)

// Search grids. MaxDepth 0 stands in for an unlimited tree.
var (
	gridLearningRate   = []float64{0.01, 0.05, 0.1, 0.2}
	gridMaxIter        = []int{100, 300, 500, 1000}
	gridMaxDepth       = []int{3, 5, 10, 0}
	gridMinSamplesLeaf = []int{10, 20, 50}
	gridL2             = []float64{0.0, 0.1, 1.0}
)

// SearchResult reports the winning configuration and its mean
// cross-validated score (negated MAE, so higher is better).
type SearchResult struct {
	Config Config
	Score  float64
}

// RandomizedSearch samples candidate configurations from the grids
// without repeats and scores each by k-fold cross-validation on
// negated mean absolute error. Ties keep the earlier candidate.
func RandomizedSearch(x [][]float64, y []float64, candidates, folds int, seed int64) SearchResult {
	rng := rand.New(rand.NewSource(seed))

	seen := make(map[Config]bool)
	best := SearchResult{Score: math.Inf(-1)}
	for len(seen) < candidates {
		cfg := Config{
			LearningRate:   gridLearningRate[rng.Intn(len(gridLearningRate))],
			MaxIter:        gridMaxIter[rng.Intn(len(gridMaxIter))],
			MaxDepth:       gridMaxDepth[rng.Intn(len(gridMaxDepth))],
			MinSamplesLeaf: gridMinSamplesLeaf[rng.Intn(len(gridMinSamplesLeaf))],
			L2:             gridL2[rng.Intn(len(gridL2))],
		}
		if seen[cfg] {
			continue
		}
		seen[cfg] = true

		score := crossValidate(x, y, cfg, folds)
		if score > best.Score {
			best = SearchResult{Config: cfg, Score: score}
		}
	}
	return best
}

// crossValidate scores a configuration by contiguous k-fold splits,
// returning the mean of -MAE over the folds.
func crossValidate(x [][]float64, y []float64, cfg Config, folds int) float64 {
	n := len(y)
	if folds > n {
		folds = n
	}

	var total float64
	for f := 0; f < folds; f++ {
		lo := f * n / folds
		hi := (f + 1) * n / folds

		xTrain := make([][]float64, 0, n-(hi-lo))
		yTrain := make([]float64, 0, n-(hi-lo))
		xTrain = append(xTrain, x[:lo]...)
		xTrain = append(xTrain, x[hi:]...)
		yTrain = append(yTrain, y[:lo]...)
		yTrain = append(yTrain, y[hi:]...)

		m := Fit(xTrain, yTrain, cfg)
		total += -MAE(m.Predict(x[lo:hi]), y[lo:hi])
	}
	return total / float64(folds)
}
