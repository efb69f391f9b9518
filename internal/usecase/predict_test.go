package usecase

import (
	"math"
	"testing"
	"time"

	"go.ngs.io/tide-atlas/internal/config"
)

func testRegistry(t *testing.T) *config.Registry {
	t.Helper()
	dir := t.TempDir()
	// s2 with phase zero: at the model epoch the predicted height equals
	// the amplitude exactly (no nodal modulation on s2).
	gridFile, files := writeAtlas(t, dir, 1500, map[string][2]float64{"s2": {0.6, 0}})
	return &config.Registry{Models: []config.Model{{
		Name:             "test-atlas",
		Directory:        dir,
		GridFile:         gridFile,
		ConstituentFiles: files,
	}}}
}

func TestServicePredict_RoundTrip(t *testing.T) {
	svc := NewService(testRegistry(t))

	start := time.Date(1992, 1, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.Predict(PredictionRequest{
		Lat:      30.5,
		Lon:      130.5,
		Model:    "test-atlas",
		Start:    start,
		End:      start.Add(24 * time.Hour),
		Interval: 30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(resp.Constituents) != 1 || resp.Constituents[0] != "s2" {
		t.Fatalf("constituents = %v", resp.Constituents)
	}
	if len(resp.Predictions) != 49 {
		t.Fatalf("got %d samples, want 49", len(resp.Predictions))
	}
	if resp.Predictions[0].Invalid {
		t.Fatal("first sample unexpectedly invalid")
	}
	if math.Abs(resp.Predictions[0].Height-0.6) > 1e-6 {
		t.Errorf("height at epoch = %v, want 0.6", resp.Predictions[0].Height)
	}
	// S2 has a 12 hour period: the sample 12 hours in repeats the first.
	if math.Abs(resp.Predictions[24].Height-resp.Predictions[0].Height) > 1e-6 {
		t.Errorf("height at +12h = %v, want %v", resp.Predictions[24].Height, resp.Predictions[0].Height)
	}
	// The series starts on a crest, so the interior holds one high (12h)
	// and two lows (6h, 18h).
	if len(resp.Extrema.Highs) != 1 || len(resp.Extrema.Lows) != 2 {
		t.Errorf("extrema: %d highs %d lows, want 1 and 2", len(resp.Extrema.Highs), len(resp.Extrema.Lows))
	}
	if math.Abs(resp.Depth-1500) > 1e-6 {
		t.Errorf("depth = %v, want 1500", resp.Depth)
	}
}

func TestServicePredict_UnknownModel(t *testing.T) {
	svc := NewService(testRegistry(t))
	_, err := svc.Predict(PredictionRequest{
		Lat:      30.5,
		Lon:      130.5,
		Model:    "nope",
		Start:    time.Now(),
		End:      time.Now().Add(time.Hour),
		Interval: 10 * time.Minute,
	})
	if err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestServicePredict_LandPointFlagged(t *testing.T) {
	svc := NewService(testRegistry(t))
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	// (132, 32) is the synthetic land cell.
	resp, err := svc.Predict(PredictionRequest{
		Lat:      32.0,
		Lon:      132.0,
		Model:    "test-atlas",
		Start:    start,
		End:      start.Add(2 * time.Hour),
		Interval: time.Hour,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i, p := range resp.Predictions {
		if !p.Invalid {
			t.Errorf("sample %d at a land point not flagged invalid", i)
		}
	}
	if len(resp.Extrema.Highs) != 0 || len(resp.Extrema.Lows) != 0 {
		t.Error("extrema reported for a fully masked series")
	}
}

func TestPredictionRequestValidate(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	valid := PredictionRequest{
		Lat: 35, Lon: 139, Model: "m",
		Start: start, End: start.Add(time.Hour), Interval: 10 * time.Minute,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*PredictionRequest)
	}{
		{"latitude too high", func(r *PredictionRequest) { r.Lat = 91 }},
		{"longitude too low", func(r *PredictionRequest) { r.Lon = -181 }},
		{"missing model", func(r *PredictionRequest) { r.Model = "" }},
		{"end before start", func(r *PredictionRequest) { r.End = r.Start.Add(-time.Hour) }},
		{"interval too small", func(r *PredictionRequest) { r.Interval = time.Second }},
		{"range too long", func(r *PredictionRequest) { r.End = r.Start.Add(400 * 24 * time.Hour) }},
	}
	for _, c := range cases {
		r := valid
		c.mutate(&r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}
