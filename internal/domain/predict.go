package domain

import (
	"fmt"
	"math"
	"time"
)

// The model epoch: tide times are expressed as continuous day counts
// relative to 1992-01-01T00:00:00Z, which is MJD 48622.
const ModelEpochMJD = 48622.0

// ModelEpoch is the reference instant for tide time values.
var ModelEpoch = time.Date(1992, time.January, 1, 0, 0, 0, 0, time.UTC)

// TideTime converts an absolute time to days since the model epoch.
func TideTime(t time.Time) float64 {
	return t.Sub(ModelEpoch).Seconds() / 86400.0
}

// HarmonicConstant is the complex harmonic constant of one constituent at
// one location, with an explicit validity flag. Invalid constants
// propagate to the mask of any series synthesized from them; their
// numeric content is never trusted.
type HarmonicConstant struct {
	Re, Im  float64
	Invalid bool
}

// Series is a real-valued tide series with a companion mask.
// Mask[i] == true marks Values[i] as invalid.
type Series struct {
	Values []float64
	Mask   []bool
}

func newSeries(n int) Series {
	return Series{Values: make([]float64, n), Mask: make([]bool, n)}
}

// PredictDrift reconstructs the tide at len(t) times, each with its own
// harmonic constants (hc[i] holds one constant per constituent for the
// location sampled at t[i]). This is the along-track altimetry form: the
// query point moves with time. Times are days since the model epoch;
// deltaT is an optional Ephemeris Time offset in days.
func PredictDrift(t []float64, hc [][]HarmonicConstant, constituents []string, deltaT float64, conv Convention) (Series, error) {
	nt := len(t)
	if len(hc) != nt {
		return Series{}, fmt.Errorf("harmonic constants rows (%d) must match times (%d)", len(hc), nt)
	}
	out := newSeries(nt)

	mjd := make([]float64, nt)
	for i, ti := range t {
		mjd[i] = ti + ModelEpochMJD
	}
	pu, pf, arg := NodalCorrections(mjd, constituents, deltaT, conv)

	for k, name := range constituents {
		var omega, phase float64
		if !conv.usesEquilibriumArgument() {
			c, ok := LookupConstituent(name)
			if !ok {
				return Series{}, fmt.Errorf("unknown tidal constituent %q", name)
			}
			omega, phase = c.Omega, c.Phase
		}
		for i := range t {
			if len(hc[i]) != len(constituents) {
				return Series{}, fmt.Errorf("harmonic constants row %d has %d entries, expected %d", i, len(hc[i]), len(constituents))
			}
			h := hc[i][k]
			if h.Invalid {
				out.Mask[i] = true
				continue
			}
			var th float64
			if conv.usesEquilibriumArgument() {
				th = arg[i][k]*math.Pi/180.0 + pu[i][k]
			} else {
				th = omega*t[i]*86400.0 + phase + pu[i][k]
			}
			out.Values[i] += pf[i][k] * (h.Re*math.Cos(th) - h.Im*math.Sin(th))
		}
	}
	return out, nil
}

// PredictSeries reconstructs the tide at a single fixed location for all
// requested times. hc holds one harmonic constant per constituent.
func PredictSeries(t []float64, hc []HarmonicConstant, constituents []string, deltaT float64, conv Convention) (Series, error) {
	rows := make([][]HarmonicConstant, len(t))
	for i := range rows {
		rows[i] = hc
	}
	return PredictDrift(t, rows, constituents, deltaT, conv)
}

// PredictMatrix reconstructs series for several fixed locations at the
// same set of times. hc[p] holds the constants for point p; the result is
// one Series per point, each of length len(t).
func PredictMatrix(t []float64, hc [][]HarmonicConstant, constituents []string, deltaT float64, conv Convention) ([]Series, error) {
	out := make([]Series, len(hc))
	for p, row := range hc {
		s, err := PredictSeries(t, row, constituents, deltaT, conv)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", p, err)
		}
		out[p] = s
	}
	return out, nil
}
