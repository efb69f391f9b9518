package usecase

import (
	"fmt"
	"time"

	"go.ngs.io/tide-atlas/internal/adapter/atlas"
	"go.ngs.io/tide-atlas/internal/adapter/interp"
	"go.ngs.io/tide-atlas/internal/config"
	"go.ngs.io/tide-atlas/internal/domain"
)

// PredictionRequest asks for a tide series at one location over a time
// range.
type PredictionRequest struct {
	Lat float64
	Lon float64

	Model string // Registry model name.

	Start    time.Time
	End      time.Time
	Interval time.Duration

	// Interpolation method for the atlas lookup; empty means spline.
	Method string

	// Ephemeris Time offset in days.
	DeltaT float64
}

// PredictionPoint is one sample of the response series. Invalid samples
// (masked extraction) are flagged rather than dropped so the series stays
// aligned with the requested times.
type PredictionPoint struct {
	Time    string  `json:"time"`
	Height  float64 `json:"height_m"`
	Invalid bool    `json:"invalid,omitempty"`
}

// ExtremaResponse lists detected high and low tides.
type ExtremaResponse struct {
	Highs []PredictionPoint `json:"highs"`
	Lows  []PredictionPoint `json:"lows"`
}

// PredictionResponse is the full prediction result.
type PredictionResponse struct {
	Model        string            `json:"model"`
	Constituents []string          `json:"constituents"`
	Depth        float64           `json:"depth_m"`
	Predictions  []PredictionPoint `json:"predictions"`
	Extrema      ExtremaResponse   `json:"extrema"`
	Meta         map[string]string `json:"meta"`
}

// Service wires the model registry to extraction and synthesis.
type Service struct {
	registry *config.Registry
}

// NewService creates a prediction service over a model registry.
func NewService(registry *config.Registry) *Service {
	return &Service{registry: registry}
}

// Models lists the available model names.
func (s *Service) Models() []string {
	return s.registry.Names()
}

// Constituents lists every constituent the synthesizer knows.
func (s *Service) Constituents() []string {
	return domain.KnownConstituents()
}

// Validate checks request sanity before any I/O.
func (r *PredictionRequest) Validate() error {
	if r.Lat < -90 || r.Lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if r.Lon < -180 || r.Lon > 360 {
		return fmt.Errorf("longitude must be between -180 and 360")
	}
	if r.Model == "" {
		return fmt.Errorf("model name is required")
	}
	if !r.Start.Before(r.End) {
		return fmt.Errorf("start time must be before end time")
	}
	if r.Interval < time.Minute {
		return fmt.Errorf("interval must be at least 1 minute")
	}
	duration := r.End.Sub(r.Start)
	if duration > 366*24*time.Hour {
		return fmt.Errorf("time range must be at most 366 days")
	}
	if int(duration/r.Interval) > 100000 {
		return fmt.Errorf("too many prediction samples; reduce the time range or increase the interval")
	}
	return nil
}

// Predict extracts harmonic constants at the requested location and
// synthesizes the tide series, including refined extrema.
func (s *Service) Predict(req PredictionRequest) (*PredictionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	model, ok := s.registry.Lookup(req.Model)
	if !ok {
		return nil, fmt.Errorf("unknown model %q (available: %v)", req.Model, s.registry.Names())
	}

	method := interp.MethodSpline
	if req.Method != "" {
		var err error
		if method, err = interp.ParseMethod(req.Method); err != nil {
			return nil, err
		}
	}
	variable, err := atlas.ParseVariable(modelVariable(model))
	if err != nil {
		return nil, err
	}

	points := []domain.Point{{Lon: req.Lon, Lat: req.Lat}}
	constants, err := ExtractConstants(points, model.Directory, model.GridFile, model.ConstituentFiles, ExtractOptions{
		Variable: variable,
		Method:   method,
		Gzip:     model.Gzip,
		Scale:    model.Scale,
	})
	if err != nil {
		return nil, fmt.Errorf("extracting constants for model %s: %w", model.Name, err)
	}

	times, days := sampleTimes(req.Start, req.End, req.Interval)
	conv := modelConvention(model)

	series, err := domain.PredictSeries(days, constants.HarmonicRow(0), constants.Constituents, req.DeltaT, conv)
	if err != nil {
		return nil, err
	}

	levels := domain.Levels(times, series)
	extrema := domain.RefineExtrema(levels, domain.FindExtrema(levels))

	resp := &PredictionResponse{
		Model:        model.Name,
		Constituents: constants.Constituents,
		Depth:        constants.Depth[0],
		Predictions:  make([]PredictionPoint, len(times)),
		Extrema: ExtremaResponse{
			Highs: toPoints(extrema.Highs),
			Lows:  toPoints(extrema.Lows),
		},
		Meta: map[string]string{
			"convention": string(conv),
			"method":     string(method),
			"epoch":      domain.ModelEpoch.Format(time.RFC3339),
		},
	}
	for i, t := range times {
		resp.Predictions[i] = PredictionPoint{
			Time:    t.UTC().Format(time.RFC3339),
			Height:  series.Values[i],
			Invalid: series.Mask[i],
		}
	}
	return resp, nil
}

func modelVariable(m config.Model) string {
	if m.Variable == "" {
		return string(atlas.VarZ)
	}
	return m.Variable
}

func modelConvention(m config.Model) domain.Convention {
	if m.Convention == "" {
		return domain.ConventionOTIS
	}
	return domain.Convention(m.Convention)
}

// sampleTimes expands a start/end/interval triple into absolute times and
// model-epoch day counts.
func sampleTimes(start, end time.Time, interval time.Duration) ([]time.Time, []float64) {
	var times []time.Time
	var days []float64
	for t := start; !t.After(end); t = t.Add(interval) {
		times = append(times, t)
		days = append(days, domain.TideTime(t))
	}
	return times, days
}

func toPoints(levels []domain.TideLevel) []PredictionPoint {
	out := make([]PredictionPoint, len(levels))
	for i, l := range levels {
		out[i] = PredictionPoint{Time: l.Time.UTC().Format(time.RFC3339), Height: l.Height}
	}
	return out
}
