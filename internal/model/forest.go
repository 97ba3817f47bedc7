package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Forest is a bagged ensemble of regression trees.
type Forest struct {
	Trees       []tree `json:"trees"`
	NumFeatures int    `json:"num_features"`
}

// TrainOptions control forest fitting. Zero values take defaults.
type TrainOptions struct {
	Trees    int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

func (o TrainOptions) withDefaults() TrainOptions {
	if o.Trees <= 0 {
		o.Trees = 200
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = 12
	}
	if o.MinLeaf <= 0 {
		o.MinLeaf = 2
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	return o
}

// Estimate is a forest prediction: the mean of the per-tree outputs plus the
// 10th/90th percentile of their spread.
type Estimate struct {
	Value float64
	Low   float64
	High  float64
}

// TrainForest fits a forest over the feature matrix and targets. It returns
// the forest and the per-feature importance (sum-of-squares reduction,
// normalized to sum to 1). Training is deterministic for a given seed.
func TrainForest(x [][]float64, y []float64, opt TrainOptions) (*Forest, []float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, nil, errors.New("empty training set")
	}
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("features/targets size mismatch: %d vs %d", len(x), len(y))
	}
	width := len(x[0])
	for i, row := range x {
		if len(row) != width {
			return nil, nil, fmt.Errorf("ragged feature row %d: got %d columns, want %d", i, len(row), width)
		}
	}

	opt = opt.withDefaults()
	rng := rand.New(rand.NewSource(opt.Seed))
	importance := make([]float64, width)
	featuresPer := int(math.Ceil(math.Sqrt(float64(width))))

	f := &Forest{Trees: make([]tree, 0, opt.Trees), NumFeatures: width}
	for i := 0; i < opt.Trees; i++ {
		bx, by := bootstrap(x, y, rng)
		cfg := &growConfig{
			maxDepth:    opt.MaxDepth,
			minLeaf:     opt.MinLeaf,
			featuresPer: featuresPer,
			rng:         rand.New(rand.NewSource(rng.Int63())),
			importance:  importance,
		}
		f.Trees = append(f.Trees, growTree(bx, by, cfg))
	}

	var total float64
	for _, v := range importance {
		total += v
	}
	if total > 0 {
		for i := range importance {
			importance[i] /= total
		}
	}
	return f, importance, nil
}

// bootstrap draws a sample of len(x) rows with replacement.
func bootstrap(x [][]float64, y []float64, rng *rand.Rand) ([][]float64, []float64) {
	n := len(x)
	bx := make([][]float64, n)
	by := make([]float64, n)
	for i := 0; i < n; i++ {
		j := rng.Intn(n)
		bx[i] = x[j]
		by[i] = y[j]
	}
	return bx, by
}

// Predict evaluates every tree and aggregates. The forest is read-only, so
// Predict is safe for concurrent use.
func (f *Forest) Predict(features []float64) (Estimate, error) {
	if len(f.Trees) == 0 {
		return Estimate{}, errors.New("forest has no trees")
	}
	if len(features) != f.NumFeatures {
		return Estimate{}, fmt.Errorf("feature vector has %d columns, model expects %d", len(features), f.NumFeatures)
	}
	outs := make([]float64, 0, len(f.Trees))
	for _, t := range f.Trees {
		v, err := t.predict(features)
		if err != nil {
			return Estimate{}, fmt.Errorf("tree predict: %w", err)
		}
		outs = append(outs, v)
	}
	sort.Float64s(outs)
	return Estimate{
		Value: mean(outs),
		Low:   quantile(outs, 0.10),
		High:  quantile(outs, 0.90),
	}, nil
}

// quantile interpolates over a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
