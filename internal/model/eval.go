package model

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes model quality on a holdout set.
type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Evaluate computes holdout metrics for a fitted forest.
func Evaluate(f *Forest, x [][]float64, y []float64) (Metrics, error) {
	if len(x) == 0 {
		return Metrics{}, errors.New("empty evaluation set")
	}
	if len(x) != len(y) {
		return Metrics{}, errors.New("features/targets size mismatch")
	}

	estimates := make([]float64, len(x))
	absErr := make([]float64, len(x))
	sqErr := make([]float64, len(x))
	for i, row := range x {
		est, err := f.Predict(row)
		if err != nil {
			return Metrics{}, err
		}
		estimates[i] = est.Value
		d := est.Value - y[i]
		absErr[i] = math.Abs(d)
		sqErr[i] = d * d
	}

	return Metrics{
		MAE:  stat.Mean(absErr, nil),
		RMSE: math.Sqrt(stat.Mean(sqErr, nil)),
		R2:   stat.RSquaredFrom(estimates, y, nil),
	}, nil
}
