package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Metadata records provenance for a trained artifact.
type Metadata struct {
	ID          string             `json:"id"`
	TrainedAt   time.Time          `json:"trained_at"`
	DatasetRows int                `json:"dataset_rows"`
	Holdout     Metrics            `json:"holdout"`
	Importances map[string]float64 `json:"importances,omitempty"`
}

// Artifact is the serialized model bundle: the feature schema it was trained
// against, the fitted encoders, the forest, and training metadata. It is
// written once by the trainer and read-only after load.
type Artifact struct {
	SchemaVersion int        `json:"schema_version"`
	Columns       []Field    `json:"columns"`
	Target        string     `json:"target"`
	Encoders      []*Encoder `json:"encoders"`
	Forest        *Forest    `json:"forest"`
	Meta          Metadata   `json:"meta"`
}

// NewArtifact starts an artifact for the current schema with fitted encoders.
// The forest and metadata are filled in by the trainer.
func NewArtifact(encoders []*Encoder) *Artifact {
	return &Artifact{
		SchemaVersion: SchemaVersion,
		Columns:       Columns(),
		Target:        Target,
		Encoders:      encoders,
		Meta: Metadata{
			ID:        uuid.NewString(),
			TrainedAt: time.Now().UTC(),
		},
	}
}

// Save writes the artifact as JSON.
func (a *Artifact) Save(path string) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads and validates an artifact. Errors distinguish a missing
// file, an undecodable file, and a schema the binary does not understand;
// callers treat all three as fatal at startup.
func LoadArtifact(path string) (*Artifact, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, artifactNotFoundError{path: path}
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, artifactCorruptError{msg: err.Error()}
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	for _, e := range a.Encoders {
		e.rebuild()
	}
	return &a, nil
}

func (a *Artifact) validate() error {
	if a.SchemaVersion != SchemaVersion {
		return schemaMismatchError{msg: fmt.Sprintf("artifact version %d, binary supports %d", a.SchemaVersion, SchemaVersion)}
	}
	want := Columns()
	if len(a.Columns) != len(want) {
		return schemaMismatchError{msg: fmt.Sprintf("artifact has %d columns, binary expects %d", len(a.Columns), len(want))}
	}
	for i, c := range a.Columns {
		if c.Name != want[i].Name || c.Kind != want[i].Kind {
			return schemaMismatchError{msg: fmt.Sprintf("column %d is %s/%s, binary expects %s/%s", i, c.Name, c.Kind, want[i].Name, want[i].Kind)}
		}
	}
	if a.Forest == nil || len(a.Forest.Trees) == 0 {
		return artifactCorruptError{msg: "no trees in forest"}
	}
	if a.Forest.NumFeatures != len(a.Columns) {
		return artifactCorruptError{msg: "forest width does not match column count"}
	}
	for _, c := range a.Columns {
		if c.Kind == KindCategory && a.encoderFor(c.Name) == nil {
			return artifactCorruptError{msg: "missing encoder for column " + c.Name}
		}
	}
	return nil
}

func (a *Artifact) encoderFor(column string) *Encoder {
	for _, e := range a.Encoders {
		if e.Column == column {
			return e
		}
	}
	return nil
}

// Vector builds the feature vector for one input row, in schema column
// order. Values must already be validated; categorical inputs that are not in
// the training vocabulary encode as the fallback level and their column name
// is reported in fallbacks.
func (a *Artifact) Vector(in map[string]string) (vec []float64, fallbacks []string, err error) {
	vec = make([]float64, 0, len(a.Columns))
	for _, c := range a.Columns {
		raw := in[c.Name]
		switch c.Kind {
		case KindNumber:
			v, perr := strconv.ParseFloat(raw, 64)
			if perr != nil {
				return nil, nil, fmt.Errorf("column %s: %w", c.Name, perr)
			}
			vec = append(vec, v)
		case KindCategory:
			code, known := a.encoderFor(c.Name).Transform(raw)
			if !known {
				fallbacks = append(fallbacks, c.Name)
			}
			vec = append(vec, code)
		default:
			return nil, nil, fmt.Errorf("column %s: unknown kind %q", c.Name, c.Kind)
		}
	}
	return vec, fallbacks, nil
}
