// Package model implements gradient-boosted regression trees with
// squared-error loss, plus the hyperparameter search, evaluation
// metrics, and JSON artifact persistence around them. Models are plain
// data once fitted; prediction is pure and safe for concurrent use.
package model

// Config holds the boosting hyperparameters. MaxDepth of 0 grows each
// tree until the leaf-size constraint stops it.
type Config struct {
	LearningRate   float64 `json:"learning_rate"`
	MaxIter        int     `json:"max_iter"`
	MaxDepth       int     `json:"max_depth"`
	MinSamplesLeaf int     `json:"min_samples_leaf"`
	L2             float64 `json:"l2_regularization"`
}

// DefaultConfig mirrors the midpoint of the search grids, for callers
// that fit without a search.
func DefaultConfig() Config {
	return Config{
		LearningRate:   0.1,
		MaxIter:        300,
		MaxDepth:       5,
		MinSamplesLeaf: 20,
		L2:             0.1,
	}
}

// GBT is a fitted gradient-boosted tree ensemble. The prediction for a
// row is Baseline plus the learning-rate-scaled sum of tree outputs.
type GBT struct {
	Config   Config      `json:"config"`
	Baseline float64     `json:"baseline"`
	Trees    []*treeNode `json:"trees"`
}

// Fit trains an ensemble on x and y. Each boosting round fits one tree
// to the current residuals and shrinks its contribution by the
// learning rate.
func Fit(x [][]float64, y []float64, cfg Config) *GBT {
	n := len(y)
	m := &GBT{Config: cfg}

	var sum float64
	for _, v := range y {
		sum += v
	}
	m.Baseline = sum / float64(n)

	residuals := make([]float64, n)
	for i, v := range y {
		residuals[i] = v - m.Baseline
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	params := treeParams{
		maxDepth:       cfg.MaxDepth,
		minSamplesLeaf: cfg.MinSamplesLeaf,
		l2:             cfg.L2,
	}

	for iter := 0; iter < cfg.MaxIter; iter++ {
		tree := fitTree(x, residuals, idx, params)
		m.Trees = append(m.Trees, tree)
		for i := range residuals {
			residuals[i] -= cfg.LearningRate * tree.predict(x[i])
		}
	}
	return m
}

// Predict returns one prediction per input row.
func (m *GBT) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = m.PredictRow(row)
	}
	return out
}

// PredictRow scores a single feature vector.
func (m *GBT) PredictRow(row []float64) float64 {
	pred := m.Baseline
	for _, tree := range m.Trees {
		pred += m.Config.LearningRate * tree.predict(row)
	}
	return pred
}
