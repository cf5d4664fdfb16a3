package model

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func validParams() Params {
	return Params{
		Means:     []float64{21.0, 50.0, 40.0},
		Stds:      []float64{3.0, 10.0, 20.0},
		Weights:   []float64{1.0, 0.5, 2.0},
		Intercept: -1.0,
		Threshold: 0.5,
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"short means", func(p *Params) { p.Means = []float64{1.0} }},
		{"long stds", func(p *Params) { p.Stds = []float64{1, 2, 3, 4} }},
		{"nil weights", func(p *Params) { p.Weights = nil }},
		{"zero threshold", func(p *Params) { p.Threshold = 0 }},
		{"threshold of one", func(p *Params) { p.Threshold = 1 }},
		{"negative threshold", func(p *Params) { p.Threshold = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			if _, err := New(p); err == nil {
				t.Error("New() must reject invalid parameters")
			}
		})
	}

	if _, err := New(validParams()); err != nil {
		t.Errorf("New() with valid parameters failed: %v", err)
	}
}

func TestPredict_Scaling(t *testing.T) {
	clf, err := New(validParams())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// A reading exactly at the feature means leaves only the intercept:
	// sigmoid(-1) ~ 0.269, below threshold.
	pred, score := clf.Predict(21.0, 50.0, 40.0)
	if pred != 0 {
		t.Errorf("prediction = %d, want 0 for a reading at the means", pred)
	}
	if want := 1.0 / (1.0 + math.Exp(1.0)); math.Abs(score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", score, want)
	}

	// A loud reading pushes z well past zero through the sound weight.
	pred, score = clf.Predict(21.0, 50.0, 100.0)
	if pred != 1 {
		t.Errorf("prediction = %d, want 1 for an extreme reading (score %v)", pred, score)
	}
	if score <= 0.5 {
		t.Errorf("score = %v, want > 0.5", score)
	}
}

func TestPredict_ThresholdBoundary(t *testing.T) {
	p := validParams()
	p.Intercept = 0
	p.Weights = []float64{0, 0, 0}
	clf, err := New(p)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Zero weights make every score sigmoid(0) = 0.5, exactly the
	// threshold. The decision is inclusive, so this classifies anomalous.
	pred, score := clf.Predict(0, 0, 0)
	if score != 0.5 {
		t.Fatalf("score = %v, want 0.5", score)
	}
	if pred != 1 {
		t.Errorf("prediction = %d, want 1 at the threshold", pred)
	}
}

func TestPredict_ZeroStdSkipsScaling(t *testing.T) {
	p := validParams()
	p.Stds = []float64{0, 10.0, 20.0}
	clf, err := New(p)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// A zero std must not divide; the centered value passes through.
	_, score := clf.Predict(22.0, 50.0, 40.0)
	want := sigmoid(-1.0 + 1.0*(22.0-21.0))
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", score, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "model.json")
	content := `{
		"means": [21.0, 50.0, 40.0],
		"stds": [3.0, 10.0, 20.0],
		"weights": [1.0, 0.5, 2.0],
		"intercept": -1.0,
		"threshold": 0.5
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write model file: %v", err)
	}

	clf, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if pred, _ := clf.Predict(21.0, 50.0, 40.0); pred != 0 {
		t.Errorf("prediction = %d, want 0", pred)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Load() must fail for a missing file")
	}

	badJSON := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badJSON, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Load(badJSON); err == nil {
		t.Error("Load() must fail for malformed JSON")
	}

	badParams := filepath.Join(dir, "short.json")
	if err := os.WriteFile(badParams, []byte(`{"means":[1],"stds":[1],"weights":[1],"threshold":0.5}`), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Load(badParams); err == nil {
		t.Error("Load() must fail for wrong parameter dimensions")
	}
}
