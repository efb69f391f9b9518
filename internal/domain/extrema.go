package domain

import (
	"math"
	"sort"
	"time"
)

// TideLevel is a single tide height at a specific time.
type TideLevel struct {
	Time   time.Time
	Height float64
}

// Extrema holds detected high and low tide events.
type Extrema struct {
	Highs []TideLevel
	Lows  []TideLevel
}

// Levels pairs a predicted Series with absolute timestamps, dropping
// masked samples so extrema detection never sees invalid values.
func Levels(times []time.Time, s Series) []TideLevel {
	levels := make([]TideLevel, 0, len(s.Values))
	for i, v := range s.Values {
		if i >= len(times) || (i < len(s.Mask) && s.Mask[i]) {
			continue
		}
		levels = append(levels, TideLevel{Time: times[i], Height: v})
	}
	return levels
}

// FindExtrema identifies high and low tides from a time series using
// first-derivative sign changes.
func FindExtrema(levels []TideLevel) Extrema {
	if len(levels) < 3 {
		return Extrema{Highs: []TideLevel{}, Lows: []TideLevel{}}
	}

	highs := make([]TideLevel, 0)
	lows := make([]TideLevel, 0)

	for i := 1; i < len(levels)-1; i++ {
		prev := levels[i-1].Height
		curr := levels[i].Height
		next := levels[i+1].Height

		if curr > prev && curr > next {
			highs = append(highs, levels[i])
		}
		if curr < prev && curr < next {
			lows = append(lows, levels[i])
		}
	}

	return Extrema{Highs: highs, Lows: lows}
}

// RefineExtremum fits a parabola through the three samples around a
// discrete extremum and returns the vertex time and height. Falls back to
// the discrete peak for non-uniform spacing or a degenerate fit.
func RefineExtremum(before, peak, after TideLevel) (time.Time, float64) {
	dt1 := peak.Time.Sub(before.Time).Hours()
	dt2 := after.Time.Sub(peak.Time).Hours()

	if math.Abs(dt1-dt2) > 1e-6 {
		return peak.Time, peak.Height
	}

	h0, h1, h2 := before.Height, peak.Height, after.Height
	a := (h2 - 2*h1 + h0) / (2 * dt1 * dt1)
	b := (h2 - h0) / (2 * dt1)

	if math.Abs(a) < 1e-10 {
		return peak.Time, peak.Height
	}

	dtVertex := -b / (2 * a)
	if math.Abs(dtVertex) > dt1 {
		return peak.Time, peak.Height
	}

	refinedTime := peak.Time.Add(time.Duration(dtVertex * float64(time.Hour)))
	refinedHeight := h1 + b*dtVertex + a*dtVertex*dtVertex
	return refinedTime, refinedHeight
}

// RefineExtrema applies parabolic refinement to every detected extremum.
func RefineExtrema(levels []TideLevel, extrema Extrema) Extrema {
	if len(levels) < 3 {
		return extrema
	}

	index := make(map[time.Time]int, len(levels))
	for i, l := range levels {
		index[l.Time] = i
	}

	refine := func(events []TideLevel) []TideLevel {
		refined := make([]TideLevel, 0, len(events))
		for _, ev := range events {
			idx, ok := index[ev.Time]
			if !ok || idx < 1 || idx >= len(levels)-1 {
				refined = append(refined, ev)
				continue
			}
			rt, rh := RefineExtremum(levels[idx-1], levels[idx], levels[idx+1])
			refined = append(refined, TideLevel{Time: rt, Height: rh})
		}
		sort.Slice(refined, func(i, j int) bool { return refined[i].Time.Before(refined[j].Time) })
		return refined
	}

	return Extrema{Highs: refine(extrema.Highs), Lows: refine(extrema.Lows)}
}
