package model

import (
	"math/rand"
	"testing"
)

// syntheticData builds rows where the target is a linear function of the
// features plus small deterministic noise.
func syntheticData(n int) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(99))
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		age := rng.Float64() * 15
		mileage := rng.Float64() * 200000
		x[i] = []float64{age, mileage}
		y[i] = 900000 - 40000*age - 2*mileage + rng.Float64()*10000
		if y[i] < 0 {
			y[i] = 0
		}
	}
	return x, y
}

func TestTrainForestInputValidation(t *testing.T) {
	if _, _, err := TrainForest(nil, nil, TrainOptions{}); err == nil {
		t.Fatal("expected error for empty set")
	}
	if _, _, err := TrainForest([][]float64{{1}}, []float64{1, 2}, TrainOptions{}); err == nil {
		t.Fatal("expected error for size mismatch")
	}
	if _, _, err := TrainForest([][]float64{{1, 2}, {1}}, []float64{1, 2}, TrainOptions{}); err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestTrainForestDeterministic(t *testing.T) {
	x, y := syntheticData(120)
	opt := TrainOptions{Trees: 15, MaxDepth: 8, Seed: 42}

	f1, _, err := TrainForest(x, y, opt)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	f2, _, err := TrainForest(x, y, opt)
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	probe := []float64{5, 60000}
	e1, err := f1.Predict(probe)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	e2, err := f2.Predict(probe)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if e1 != e2 {
		t.Fatalf("same seed gave different estimates: %+v vs %+v", e1, e2)
	}
}

func TestForestPredictRange(t *testing.T) {
	x, y := syntheticData(120)
	f, _, err := TrainForest(x, y, TrainOptions{Trees: 20, MaxDepth: 8, Seed: 1})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	est, err := f.Predict([]float64{3, 40000})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if est.Low > est.Value || est.Value > est.High {
		t.Fatalf("range out of order: %+v", est)
	}
}

func TestForestPredictWidthMismatch(t *testing.T) {
	x, y := syntheticData(30)
	f, _, err := TrainForest(x, y, TrainOptions{Trees: 3, Seed: 1})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if _, err := f.Predict([]float64{1}); err == nil {
		t.Fatal("expected error for wrong feature count")
	}
}

func TestTrainForestImportancesNormalized(t *testing.T) {
	x, y := syntheticData(120)
	_, imp, err := TrainForest(x, y, TrainOptions{Trees: 10, MaxDepth: 6, Seed: 7})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if len(imp) != 2 {
		t.Fatalf("importances len=%d", len(imp))
	}
	var sum float64
	for _, v := range imp {
		if v < 0 {
			t.Fatalf("negative importance: %v", imp)
		}
		sum += v
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("importances sum=%v, want ~1", sum)
	}
}

func TestEvaluateOnTrainingData(t *testing.T) {
	x, y := syntheticData(150)
	f, _, err := TrainForest(x, y, TrainOptions{Trees: 25, MaxDepth: 10, Seed: 5})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	m, err := Evaluate(f, x, y)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if m.MAE < 0 || m.RMSE < m.MAE {
		t.Fatalf("implausible metrics: %+v", m)
	}
	if m.R2 < 0.5 {
		t.Fatalf("R2=%v, expected a decent fit on training data", m.R2)
	}
}

func TestEvaluateEmpty(t *testing.T) {
	f := &Forest{Trees: []tree{{Nodes: []treeNode{{Leaf: true, Value: 1}}}}, NumFeatures: 1}
	if _, err := Evaluate(f, nil, nil); err == nil {
		t.Fatal("expected error for empty evaluation set")
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	if q := quantile(sorted, 0); q != 10 {
		t.Fatalf("q0=%v", q)
	}
	if q := quantile(sorted, 1); q != 50 {
		t.Fatalf("q1=%v", q)
	}
	if q := quantile(sorted, 0.5); q != 30 {
		t.Fatalf("q0.5=%v", q)
	}
}
