// Package main implements the replay loop: read the dataset, post one
// row to the predictor per interval, log the returned prediction.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// Sample is one dataset row to replay.
type Sample struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	SoundVolume float64 `json:"sound_volume"`
}

// Sender replays samples against the predictor at a fixed cadence.
type Sender struct {
	url      string
	client   *http.Client
	interval time.Duration
	logger   *slog.Logger
}

// NewSender creates a Sender posting to baseURL/predict.
func NewSender(baseURL string, client *http.Client, interval time.Duration, logger *slog.Logger) *Sender {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{
		url:      baseURL + "/predict",
		client:   client,
		interval: interval,
		logger:   logger,
	}
}

// Run replays every sample, sleeping the configured interval between
// rows. A send failure is logged and the replay continues with the next
// row. Returns when all samples are sent or the context is canceled.
func (s *Sender) Run(ctx context.Context, samples []Sample) error {
	s.logger.Info("starting replay", "samples", len(samples), "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i, sample := range samples {
		prediction, err := s.Send(ctx, sample)
		if err != nil {
			s.logger.Error("failed to send sample", "row", i, "error", err)
		} else {
			s.logger.Info("sent sample",
				"row", i,
				"temperature", sample.Temperature,
				"humidity", sample.Humidity,
				"sound_volume", sample.SoundVolume,
				"prediction", prediction,
			)
		}

		if i == len(samples)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	s.logger.Info("replay complete", "samples", len(samples))
	return nil
}

// Send posts one sample and extracts the prediction from the response.
func (s *Sender) Send(ctx context.Context, sample Sample) (int, error) {
	body, err := json.Marshal(sample)
	if err != nil {
		return 0, fmt.Errorf("marshal sample: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post sample: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg := gjson.GetBytes(respBody, "error"); msg.Exists() {
			return 0, fmt.Errorf("predictor returned %d: %s", resp.StatusCode, msg.String())
		}
		return 0, fmt.Errorf("predictor returned %d", resp.StatusCode)
	}

	prediction := gjson.GetBytes(respBody, "prediction")
	if !prediction.Exists() {
		return 0, fmt.Errorf("response missing prediction field")
	}

	return int(prediction.Int()), nil
}

// LoadDataset reads the CSV dataset, locating the temperature, humidity,
// and sound_volume columns by header name.
func LoadDataset(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range []string{"temperature", "humidity", "sound_volume"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("dataset missing column %q", name)
		}
	}

	var samples []Sample
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}

		sample, err := parseSample(record, cols)
		if err != nil {
			return nil, fmt.Errorf("dataset line %d: %w", line, err)
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

func parseSample(record []string, cols map[string]int) (Sample, error) {
	var s Sample
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"temperature", &s.Temperature},
		{"humidity", &s.Humidity},
		{"sound_volume", &s.SoundVolume},
	} {
		idx := cols[f.name]
		if idx >= len(record) {
			return Sample{}, fmt.Errorf("missing value for %s", f.name)
		}
		v, err := strconv.ParseFloat(record[idx], 64)
		if err != nil {
			return Sample{}, fmt.Errorf("parse %s %q: %w", f.name, record[idx], err)
		}
		*f.dst = v
	}
	return s, nil
}
