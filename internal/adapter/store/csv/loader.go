// Package csv persists extracted harmonic constants as CSV so that
// prediction-only runs can skip the atlas files entirely.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.ngs.io/tide-atlas/internal/domain"
)

// Fixed leading columns; one (amp, phase, valid) triple per constituent
// follows.
var leadColumns = []string{"lon", "lat", "depth", "depth_valid"}

// Write serializes constants row-per-point. Masked entries keep their
// numeric placeholders; validity travels in its own column so zero
// amplitudes stay distinguishable from missing data.
func Write(path string, points []domain.Point, c *domain.Constants) error {
	if len(points) != c.NPoints() {
		return fmt.Errorf("points (%d) do not match constants rows (%d)", len(points), c.NPoints())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating constants file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := append([]string{}, leadColumns...)
	for _, con := range c.Constituents {
		header = append(header, con+"_amp", con+"_phase", con+"_valid")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	fb := func(invalid bool) string {
		if invalid {
			return "0"
		}
		return "1"
	}

	for p, pt := range points {
		rec := []string{ff(pt.Lon), ff(pt.Lat), ff(c.Depth[p]), fb(c.DepthMask[p])}
		for k := range c.Constituents {
			rec = append(rec, ff(c.Amplitude[p][k]), ff(c.Phase[p][k]), fb(c.Mask[p][k]))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing constants file: %w", err)
	}
	return nil
}

// Read loads constants written by Write. The constituent list is
// recovered from the header.
func Read(path string) ([]domain.Point, *domain.Constants, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening constants file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading constants header: %w", err)
	}
	if len(header) < len(leadColumns) || (len(header)-len(leadColumns))%3 != 0 {
		return nil, nil, fmt.Errorf("malformed constants header (%d columns)", len(header))
	}
	for i, want := range leadColumns {
		if header[i] != want {
			return nil, nil, fmt.Errorf("constants header column %d is %q, expected %q", i, header[i], want)
		}
	}

	nc := (len(header) - len(leadColumns)) / 3
	constituents := make([]string, nc)
	for k := 0; k < nc; k++ {
		col := header[len(leadColumns)+3*k]
		if len(col) < len("_amp") || col[len(col)-4:] != "_amp" {
			return nil, nil, fmt.Errorf("unexpected constants column %q", col)
		}
		constituents[k] = col[:len(col)-4]
	}

	c := &domain.Constants{Constituents: constituents}
	var points []domain.Point

	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading constants record: %w", err)
		}
		if len(rec) != len(header) {
			return nil, nil, fmt.Errorf("line %d has %d columns, expected %d", line, len(rec), len(header))
		}

		vals := make([]float64, len(leadColumns)-1)
		for i := range vals {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d column %s: %w", line, header[i], err)
			}
			vals[i] = v
		}
		points = append(points, domain.Point{Lon: vals[0], Lat: vals[1]})
		c.Depth = append(c.Depth, vals[2])
		c.DepthMask = append(c.DepthMask, rec[3] == "0")

		amp := make([]float64, nc)
		ph := make([]float64, nc)
		mask := make([]bool, nc)
		for k := 0; k < nc; k++ {
			base := len(leadColumns) + 3*k
			if amp[k], err = strconv.ParseFloat(rec[base], 64); err != nil {
				return nil, nil, fmt.Errorf("line %d column %s: %w", line, header[base], err)
			}
			if ph[k], err = strconv.ParseFloat(rec[base+1], 64); err != nil {
				return nil, nil, fmt.Errorf("line %d column %s: %w", line, header[base+1], err)
			}
			mask[k] = rec[base+2] == "0"
		}
		c.Amplitude = append(c.Amplitude, amp)
		c.Phase = append(c.Phase, ph)
		c.Mask = append(c.Mask, mask)
	}

	return points, c, nil
}
