// Package trainer implements the offline training job: load the dataset,
// fit the price forest, evaluate it on a holdout split and write the
// artifact the server loads at startup.
package trainer

import (
	"fmt"

	"github.com/rs/zerolog"

	"priced/internal/common/fsutil"
	"priced/internal/dataset"
	"priced/internal/model"
)

// Options control one training run. Defaults are set by the CLI so the job
// runs with no arguments.
type Options struct {
	DataPath string
	OutPath  string
	Trees    int
	MaxDepth int
	MinLeaf  int
	Holdout  float64
	Seed     int64
}

// Run executes the training pipeline and returns the saved artifact.
func Run(opts Options, log zerolog.Logger) (*model.Artifact, error) {
	dataPath, err := fsutil.ExpandHome(opts.DataPath)
	if err != nil {
		return nil, err
	}
	outPath, err := fsutil.ExpandHome(opts.OutPath)
	if err != nil {
		return nil, err
	}

	records, err := dataset.ReadCSV(dataPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dataset", dataPath).Int("rows", len(records)).Msg("dataset loaded")

	// Encoders are fitted over the full dataset so the vocabulary covers
	// holdout rows too.
	encoders, err := fitEncoders(records)
	if err != nil {
		return nil, err
	}
	art := model.NewArtifact(encoders)

	trainRecs, testRecs := dataset.Split(records, opts.Holdout, opts.Seed)
	trainX, trainY, err := vectorize(art, trainRecs)
	if err != nil {
		return nil, err
	}

	forest, importances, err := model.TrainForest(trainX, trainY, model.TrainOptions{
		Trees:    opts.Trees,
		MaxDepth: opts.MaxDepth,
		MinLeaf:  opts.MinLeaf,
		Seed:     opts.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("train forest: %w", err)
	}
	art.Forest = forest
	art.Meta.DatasetRows = len(records)
	art.Meta.Importances = importanceByColumn(importances)

	if len(testRecs) > 0 {
		testX, testY, err := vectorize(art, testRecs)
		if err != nil {
			return nil, err
		}
		metrics, err := model.Evaluate(forest, testX, testY)
		if err != nil {
			return nil, fmt.Errorf("evaluate: %w", err)
		}
		art.Meta.Holdout = metrics
		log.Info().
			Float64("mae", metrics.MAE).
			Float64("rmse", metrics.RMSE).
			Float64("r2", metrics.R2).
			Int("holdout_rows", len(testRecs)).
			Msg("holdout evaluation")
	}
	for col, imp := range art.Meta.Importances {
		log.Info().Str("feature", col).Float64("importance", imp).Msg("feature importance")
	}

	if err := fsutil.EnsureParentDir(outPath); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := art.Save(outPath); err != nil {
		return nil, err
	}
	log.Info().Str("artifact", outPath).Str("model_id", art.Meta.ID).Msg("artifact saved")
	return art, nil
}

func fitEncoders(records []dataset.Record) ([]*model.Encoder, error) {
	var encoders []*model.Encoder
	for _, col := range model.Columns() {
		if col.Kind != model.KindCategory {
			continue
		}
		values := make([]string, len(records))
		for i, rec := range records {
			values[i] = rec.Fields()[col.Name]
		}
		e, err := model.FitEncoder(col.Name, values)
		if err != nil {
			return nil, err
		}
		encoders = append(encoders, e)
	}
	return encoders, nil
}

func vectorize(art *model.Artifact, records []dataset.Record) (x [][]float64, y []float64, err error) {
	x = make([][]float64, 0, len(records))
	y = make([]float64, 0, len(records))
	for _, rec := range records {
		vec, _, err := art.Vector(rec.Fields())
		if err != nil {
			return nil, nil, err
		}
		x = append(x, vec)
		y = append(y, rec.Price)
	}
	return x, y, nil
}

func importanceByColumn(importances []float64) map[string]float64 {
	names := model.ColumnNames()
	out := make(map[string]float64, len(names))
	for i, name := range names {
		if i < len(importances) {
			out[name] = importances[i]
		}
	}
	return out
}
