// Package model implements the pre-trained anomaly classifier applied to
// each ingested reading: a standard scaler followed by logistic regression.
//
// The classifier is trained offline; this package only loads the exported
// parameters and applies them. Parameters live in a small JSON artifact:
//
//	{
//	  "means": [21.3, 55.1, 42.7],
//	  "stds": [3.2, 9.8, 18.4],
//	  "weights": [0.8, 0.1, 1.9],
//	  "intercept": -2.4,
//	  "threshold": 0.5
//	}
//
// Feature order is temperature, humidity, sound volume.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// numFeatures is the fixed feature vector size: temperature, humidity,
// sound volume.
const numFeatures = 3

// Params holds the exported scaler and logistic regression parameters.
type Params struct {
	Means     []float64 `json:"means"`
	Stds      []float64 `json:"stds"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Threshold float64   `json:"threshold"`
}

// Classifier applies standard scaling and a logistic regression decision
// to a single reading. It is immutable after Load and safe for concurrent
// use.
type Classifier struct {
	params Params
}

// Load reads and validates the classifier parameters from a JSON file.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	var p Params
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse model file %q: %w", path, err)
	}

	c, err := New(p)
	if err != nil {
		return nil, fmt.Errorf("model file %q: %w", path, err)
	}
	return c, nil
}

// New creates a Classifier from in-memory parameters.
func New(p Params) (*Classifier, error) {
	for name, v := range map[string][]float64{
		"means": p.Means, "stds": p.Stds, "weights": p.Weights,
	} {
		if len(v) != numFeatures {
			return nil, fmt.Errorf("%s must have %d values, got %d", name, numFeatures, len(v))
		}
	}
	if p.Threshold <= 0 || p.Threshold >= 1 {
		return nil, fmt.Errorf("threshold must be in (0, 1), got %v", p.Threshold)
	}

	return &Classifier{params: p}, nil
}

// Predict classifies one reading; it returns 1 for anomalous and 0 for
// normal, along with the model score.
func (c *Classifier) Predict(temperature, humidity, soundVolume float64) (int, float64) {
	features := [numFeatures]float64{temperature, humidity, soundVolume}

	z := c.params.Intercept
	for i, v := range features {
		scaled := v - c.params.Means[i]
		if c.params.Stds[i] != 0 {
			scaled /= c.params.Stds[i]
		}
		z += c.params.Weights[i] * scaled
	}

	score := sigmoid(z)
	if score >= c.params.Threshold {
		return 1, score
	}
	return 0, score
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
