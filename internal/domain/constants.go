package domain

import "math"

// Point is a geographic query location in degrees. Longitude may use
// either the -180..180 or 0..360 convention; extraction normalizes it to
// the atlas convention ([0, 360)) before any grid lookup.
type Point struct {
	Lon float64
	Lat float64
}

// Constants holds extracted harmonic constants for a set of query
// points. Rows align with the query points; columns align with the order
// of the constituent files they were extracted from. Mask[p][k] == true
// marks the (point, constituent) pair invalid: the query touched land,
// missing data or left the grid domain.
type Constants struct {
	Constituents []string
	Amplitude    [][]float64 // [npts][nc], output units.
	Phase        [][]float64 // [npts][nc], degrees in [0, 360).
	Mask         [][]bool
	Depth        []float64 // Bathymetry at each point, meters.
	DepthMask    []bool
}

// NPoints returns the number of query points.
func (c *Constants) NPoints() int { return len(c.Amplitude) }

// HarmonicRow converts one point's amplitudes and phases into the
// complex form consumed by the synthesizer. The atlas phase convention is
// phase = atan2(-Im, Re), so Re = A·cos(φ) and Im = -A·sin(φ).
func (c *Constants) HarmonicRow(p int) []HarmonicConstant {
	row := make([]HarmonicConstant, len(c.Constituents))
	for k := range c.Constituents {
		if c.Mask[p][k] {
			row[k] = HarmonicConstant{Invalid: true}
			continue
		}
		amp := c.Amplitude[p][k]
		ph := Deg2Rad(c.Phase[p][k])
		row[k] = HarmonicConstant{
			Re: amp * math.Cos(ph),
			Im: -amp * math.Sin(ph),
		}
	}
	return row
}
