package model

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes holdout performance on the log-target scale.
type Metrics struct {
	MAE     float64 `json:"mae"`
	RMSE    float64 `json:"rmse"`
	R2      float64 `json:"r2"`
	Samples int     `json:"samples"`
}

// Evaluate computes MAE, RMSE, and R-squared of predictions against
// the true values.
func Evaluate(predicted, actual []float64) Metrics {
	return Metrics{
		MAE:     MAE(predicted, actual),
		RMSE:    RMSE(predicted, actual),
		R2:      stat.RSquaredFrom(predicted, actual, nil),
		Samples: len(actual),
	}
}

// MAE is the mean absolute error.
func MAE(predicted, actual []float64) float64 {
	var sum float64
	for i := range actual {
		sum += math.Abs(predicted[i] - actual[i])
	}
	return sum / float64(len(actual))
}

// RMSE is the root mean squared error.
func RMSE(predicted, actual []float64) float64 {
	var sum float64
	for i := range actual {
		d := predicted[i] - actual[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(actual)))
}
