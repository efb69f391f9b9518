package domain

import (
	"math"
	"testing"
	"time"
)

func TestTideTime(t *testing.T) {
	if got := TideTime(ModelEpoch); got != 0 {
		t.Errorf("TideTime(epoch) = %v, want 0", got)
	}
	if got := TideTime(time.Date(1992, 1, 2, 0, 0, 0, 0, time.UTC)); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("TideTime(epoch+1d) = %v, want 1", got)
	}
	if got := TideTime(time.Date(1992, 1, 1, 6, 0, 0, 0, time.UTC)); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("TideTime(epoch+6h) = %v, want 0.25", got)
	}
}

// S2 carries no nodal modulation and a zero epoch phase, so a unit real
// constant must synthesize exactly cos(omega * t * 86400).
func TestPredictSeries_PureS2(t *testing.T) {
	c, ok := LookupConstituent("s2")
	if !ok {
		t.Fatal("s2 missing from constituent table")
	}

	times := []float64{0, 0.05, 0.125, 0.25, 1.0, 10.4}
	hc := []HarmonicConstant{{Re: 1.0, Im: 0.0}}
	s, err := PredictSeries(times, hc, []string{"s2"}, 0, ConventionOTIS)
	if err != nil {
		t.Fatalf("PredictSeries: %v", err)
	}
	for i, ti := range times {
		if s.Mask[i] {
			t.Errorf("sample %d unexpectedly masked", i)
		}
		want := math.Cos(c.Omega * ti * 86400.0)
		if math.Abs(s.Values[i]-want) > 1e-9 {
			t.Errorf("h(%v) = %v, want %v", ti, s.Values[i], want)
		}
	}
}

func TestPredictSeries_PhaseShiftedConstant(t *testing.T) {
	// Re = A cos(phi), Im = -A sin(phi) must synthesize A cos(theta + phi):
	// at t=0 for s2, theta = 0, so h(0) = A cos(phi).
	const amp, phi = 0.75, 1.1
	hc := []HarmonicConstant{{Re: amp * math.Cos(phi), Im: -amp * math.Sin(phi)}}
	s, err := PredictSeries([]float64{0}, hc, []string{"s2"}, 0, ConventionOTIS)
	if err != nil {
		t.Fatalf("PredictSeries: %v", err)
	}
	want := amp * math.Cos(phi)
	if math.Abs(s.Values[0]-want) > 1e-9 {
		t.Errorf("h(0) = %v, want %v", s.Values[0], want)
	}
}

func TestPredictSeries_SumOfConstituents(t *testing.T) {
	times := []float64{0, 0.3, 0.61, 2.17}
	hcM2 := []HarmonicConstant{{Re: 0.8, Im: 0.2}, {Re: 0, Im: 0}}
	hcS2 := []HarmonicConstant{{Re: 0, Im: 0}, {Re: 0.3, Im: -0.1}}
	hcBoth := []HarmonicConstant{{Re: 0.8, Im: 0.2}, {Re: 0.3, Im: -0.1}}
	cons := []string{"m2", "s2"}

	sM2, err := PredictSeries(times, hcM2, cons, 0, ConventionOTIS)
	if err != nil {
		t.Fatal(err)
	}
	sS2, err := PredictSeries(times, hcS2, cons, 0, ConventionOTIS)
	if err != nil {
		t.Fatal(err)
	}
	sBoth, err := PredictSeries(times, hcBoth, cons, 0, ConventionOTIS)
	if err != nil {
		t.Fatal(err)
	}
	for i := range times {
		want := sM2.Values[i] + sS2.Values[i]
		if math.Abs(sBoth.Values[i]-want) > 1e-9 {
			t.Errorf("sample %d: combined %v, want sum of parts %v", i, sBoth.Values[i], want)
		}
	}
}

func TestPredictDrift_InvalidConstantMasksSample(t *testing.T) {
	times := []float64{0, 0.1, 0.2}
	hc := [][]HarmonicConstant{
		{{Re: 1}},
		{{Re: 1, Invalid: true}},
		{{Re: 1}},
	}
	s, err := PredictDrift(times, hc, []string{"s2"}, 0, ConventionOTIS)
	if err != nil {
		t.Fatalf("PredictDrift: %v", err)
	}
	if s.Mask[0] || s.Mask[2] {
		t.Error("valid samples unexpectedly masked")
	}
	if !s.Mask[1] {
		t.Error("sample with invalid constant not masked")
	}
}

func TestPredictDrift_ShapeErrors(t *testing.T) {
	if _, err := PredictDrift([]float64{0, 1}, [][]HarmonicConstant{{{Re: 1}}}, []string{"s2"}, 0, ConventionOTIS); err == nil {
		t.Error("expected error for row count mismatch")
	}
	if _, err := PredictDrift([]float64{0}, [][]HarmonicConstant{{{Re: 1}, {Re: 2}}}, []string{"s2"}, 0, ConventionOTIS); err == nil {
		t.Error("expected error for row length mismatch")
	}
}

func TestPredictSeries_UnknownConstituent(t *testing.T) {
	hc := []HarmonicConstant{{Re: 1}}
	if _, err := PredictSeries([]float64{0}, hc, []string{"x9"}, 0, ConventionOTIS); err == nil {
		t.Error("expected error for unknown constituent under OTIS")
	}
	// GOT reads tabulated arguments, so unknown names fall back to
	// identity corrections instead of failing.
	if _, err := PredictSeries([]float64{0}, hc, []string{"x9"}, 0, ConventionGOT); err != nil {
		t.Errorf("unexpected error under GOT: %v", err)
	}
}

func TestPredictSeries_ZeroConstituents(t *testing.T) {
	s, err := PredictSeries([]float64{0, 1, 2}, nil, nil, 0, ConventionOTIS)
	if err != nil {
		t.Fatalf("PredictSeries: %v", err)
	}
	for i, v := range s.Values {
		if v != 0 || s.Mask[i] {
			t.Errorf("sample %d: value %v mask %v, want 0 and valid", i, v, s.Mask[i])
		}
	}
}

func TestPredictSeries_Deterministic(t *testing.T) {
	times := []float64{0, 1.5, 300.25}
	hc := []HarmonicConstant{{Re: 0.5, Im: 0.3}, {Re: 0.1, Im: -0.2}}
	cons := []string{"m2", "k1"}
	a, err := PredictSeries(times, hc, cons, 0, ConventionOTIS)
	if err != nil {
		t.Fatal(err)
	}
	b, err := PredictSeries(times, hc, cons, 0, ConventionOTIS)
	if err != nil {
		t.Fatal(err)
	}
	for i := range times {
		if a.Values[i] != b.Values[i] {
			t.Errorf("sample %d differs between identical runs: %v vs %v", i, a.Values[i], b.Values[i])
		}
	}
}

func TestPredictMatrix_MatchesSeries(t *testing.T) {
	times := []float64{0, 0.25, 0.5}
	rows := [][]HarmonicConstant{
		{{Re: 1.0, Im: 0.0}},
		{{Re: 0.2, Im: 0.4}},
	}
	series, err := PredictMatrix(times, rows, []string{"m2"}, 0, ConventionOTIS)
	if err != nil {
		t.Fatalf("PredictMatrix: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("got %d series, want 2", len(series))
	}
	for p, row := range rows {
		want, err := PredictSeries(times, row, []string{"m2"}, 0, ConventionOTIS)
		if err != nil {
			t.Fatal(err)
		}
		for i := range times {
			if series[p].Values[i] != want.Values[i] {
				t.Errorf("point %d sample %d: %v != %v", p, i, series[p].Values[i], want.Values[i])
			}
		}
	}
}
