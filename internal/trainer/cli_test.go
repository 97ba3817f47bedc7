package trainer

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestTrainCommandDefaults(t *testing.T) {
	root := BuildRootCmd()
	train, _, err := root.Find([]string{"train"})
	if err != nil {
		t.Fatalf("find train: %v", err)
	}
	for flag, want := range map[string]string{
		"data":      "./data/cars.csv",
		"out":       "./models/car_price.json",
		"trees":     "200",
		"max-depth": "12",
		"min-leaf":  "2",
		"holdout":   "0.2",
		"seed":      "42",
	} {
		f := train.Flags().Lookup(flag)
		if f == nil {
			t.Fatalf("flag --%s missing", flag)
		}
		if f.DefValue != want {
			t.Errorf("--%s default = %q, want %q", flag, f.DefValue, want)
		}
	}
}

func TestTrainCommandEndToEnd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	root := BuildRootCmd()
	root.SetArgs([]string{"train",
		"--data", writeDataset(t, 30),
		"--out", out,
		"--trees", "4",
		"--max-depth", "6",
	})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	// The artifact it wrote must be inspectable.
	root = BuildRootCmd()
	var buf bytes.Buffer
	root.SetArgs([]string{"inspect", "--model", out})
	root.SetOut(&buf)
	root.SetErr(new(bytes.Buffer))
	if err := root.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var summary struct {
		SchemaVersion int `json:"schema_version"`
		Trees         int `json:"trees"`
	}
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("parse inspect output: %v\n%s", err, buf.String())
	}
	if summary.SchemaVersion != 1 || summary.Trees != 4 {
		t.Fatalf("summary: %+v", summary)
	}
}

func TestInspectMissingArtifact(t *testing.T) {
	root := BuildRootCmd()
	root.SetArgs([]string{"inspect", "--model", filepath.Join(t.TempDir(), "nope.json")})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "artifact") {
		t.Fatalf("err=%v, want artifact error", err)
	}
}
