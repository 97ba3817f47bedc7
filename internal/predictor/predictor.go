// Package predictor wraps a loaded model artifact behind the operations the
// HTTP layer needs. The predictor is immutable after construction and safe
// for concurrent use; it is built once at startup and injected, never held
// as package state.
package predictor

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"priced/internal/model"
	"priced/pkg/types"
)

// Input holds the raw feature values of one prediction request, keyed by
// schema column name. Form and JSON requests both reduce to this shape
// before validation.
type Input map[string]string

// Predictor serves predictions from a loaded artifact.
type Predictor struct {
	art   *model.Artifact
	log   zerolog.Logger
	start time.Time

	predictions        atomic.Uint64
	validationFailures atomic.Uint64
}

// New wraps an already-loaded artifact.
func New(art *model.Artifact, log zerolog.Logger) *Predictor {
	return &Predictor{art: art, log: log, start: time.Now()}
}

// Load reads the artifact at path and builds a predictor. Any error here is
// fatal for the caller: the server must not start without a usable model.
func Load(path string, log zerolog.Logger) (*Predictor, error) {
	art, err := model.LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("artifact", path).
		Str("model_id", art.Meta.ID).
		Int("trees", len(art.Forest.Trees)).
		Int("dataset_rows", art.Meta.DatasetRows).
		Msg("price model loaded")
	return New(art, log), nil
}

// Predict validates the input, builds the feature vector and evaluates the
// forest. Validation failures satisfy IsValidation; anything else is an
// internal prediction failure.
func (p *Predictor) Predict(ctx context.Context, in Input) (types.PredictResponse, error) {
	if err := ctx.Err(); err != nil {
		return types.PredictResponse{}, err
	}
	row, err := p.validate(in)
	if err != nil {
		p.validationFailures.Add(1)
		return types.PredictResponse{}, err
	}

	vec, fallbacks, err := p.art.Vector(row)
	if err != nil {
		return types.PredictResponse{}, fmt.Errorf("build feature vector: %w", err)
	}
	est, err := p.art.Forest.Predict(vec)
	if err != nil {
		return types.PredictResponse{}, fmt.Errorf("forest predict: %w", err)
	}
	p.predictions.Add(1)
	if len(fallbacks) > 0 {
		p.log.Warn().Strs("fields", fallbacks).Msg("unknown categorical values, fallback level used")
	}

	return types.PredictResponse{
		Price:     clampNonNegative(est.Value),
		RangeLow:  clampNonNegative(est.Low),
		RangeHigh: clampNonNegative(est.High),
		Fallbacks: fallbacks,
		ModelID:   p.art.Meta.ID,
	}, nil
}

// validate checks presence and type of every schema field and returns a
// complete row: required fields must be present, optional categorical fields
// default to their training fallback level.
func (p *Predictor) validate(in Input) (map[string]string, error) {
	row := make(map[string]string, len(p.art.Columns))
	for _, c := range p.art.Columns {
		raw, ok := in[c.Name]
		if ok && raw == "" {
			ok = false
		}
		switch c.Kind {
		case model.KindNumber:
			if !ok {
				return nil, ErrValidation(c.Name, "is required")
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, ErrValidation(c.Name, "must be a number")
			}
			if c.Name == "mileage" && v < 0 {
				return nil, ErrValidation(c.Name, "must not be negative")
			}
			row[c.Name] = raw
		case model.KindCategory:
			if !ok {
				if c.Required {
					return nil, ErrValidation(c.Name, "is required")
				}
				row[c.Name] = p.fallbackFor(c.Name)
				continue
			}
			row[c.Name] = model.Normalize(c.Name, raw)
		}
	}
	return row, nil
}

func (p *Predictor) fallbackFor(column string) string {
	for _, e := range p.art.Encoders {
		if e.Column == column {
			return e.Fallback
		}
	}
	return ""
}

// Ready reports whether the predictor can serve. A constructed predictor is
// always ready; the method exists so the HTTP layer has a single readiness
// source.
func (p *Predictor) Ready() bool { return p.art != nil }

// Status describes the loaded artifact and serving counters.
func (p *Predictor) Status() types.StatusResponse {
	now := time.Now()
	return types.StatusResponse{
		ModelID:                 p.art.Meta.ID,
		TrainedAtUnix:           p.art.Meta.TrainedAt.Unix(),
		DatasetRows:             p.art.Meta.DatasetRows,
		Trees:                   len(p.art.Forest.Trees),
		Features:                model.ColumnNames(),
		HoldoutMAE:              p.art.Meta.Holdout.MAE,
		HoldoutR2:               p.art.Meta.Holdout.R2,
		PredictionsTotal:        p.predictions.Load(),
		ValidationFailuresTotal: p.validationFailures.Load(),
		UptimeSeconds:           int64(now.Sub(p.start).Seconds()),
		ServerTimeUnix:          now.Unix(),
	}
}

// Schema exposes the input schema, including the categorical vocabularies
// the form page renders as dropdowns.
func (p *Predictor) Schema() types.SchemaResponse {
	fields := make([]types.FieldSchema, 0, len(p.art.Columns))
	for _, c := range p.art.Columns {
		f := types.FieldSchema{Name: c.Name, Kind: c.Kind, Required: c.Required}
		if c.Kind == model.KindCategory {
			if e := p.encoderFor(c.Name); e != nil {
				f.Values = append([]string(nil), e.Classes...)
				f.Fallback = e.Fallback
			}
		}
		fields = append(fields, f)
	}
	return types.SchemaResponse{Fields: fields, Target: p.art.Target}
}

func (p *Predictor) encoderFor(column string) *model.Encoder {
	for _, e := range p.art.Encoders {
		if e.Column == column {
			return e
		}
	}
	return nil
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
