package model

import "math/rand"

// SplitSeed makes train/test partitions and the hyperparameter search
// reproducible across runs; evaluation depends on recreating the exact
// holdout a model was trained against.
const SplitSeed = 42

// TrainTestSplit shuffles rows with the given seed and carves off the
// trailing testFrac share as the holdout. The same seed and fraction
// always produce the same partition.
func TrainTestSplit(x [][]float64, y []float64, testFrac float64, seed int64) (xTrain, xTest [][]float64, yTrain, yTest []float64) {
	n := len(y)
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	testN := int(float64(n) * testFrac)
	trainN := n - testN

	xTrain = make([][]float64, 0, trainN)
	yTrain = make([]float64, 0, trainN)
	xTest = make([][]float64, 0, testN)
	yTest = make([]float64, 0, testN)

	for k, i := range perm {
		if k < trainN {
			xTrain = append(xTrain, x[i])
			yTrain = append(yTrain, y[i])
		} else {
			xTest = append(xTest, x[i])
			yTest = append(yTest, y[i])
		}
	}
	return xTrain, xTest, yTrain, yTest
}
