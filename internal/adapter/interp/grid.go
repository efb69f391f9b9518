// Package interp provides masked-grid interpolation over rectangular
// longitude/latitude grids, including the periodic longitude extension
// needed for global tidal atlases.
package interp

import (
	"fmt"
)

// FillValue is written into evaluation output where no valid value
// exists. The companion mask is authoritative; the fill value is only a
// recognizable placeholder and must never be interpreted as data.
const FillValue = 1e20

// Field is a 2-D masked field on a rectangular lon×lat grid. Values are
// indexed [j][i] with j over Lat and i over Lon. Imag may be nil for
// real-valued fields such as bathymetry. Mask[j][i] == true marks the
// sample as invalid: it must never contribute a usable value to
// interpolation output.
type Field struct {
	Lon  []float64
	Lat  []float64
	Real [][]float64
	Imag [][]float64
	Mask [][]bool
}

// Validate checks grid shape and axis monotonicity.
func (f *Field) Validate() error {
	if len(f.Lon) < 2 || len(f.Lat) < 2 {
		return fmt.Errorf("grid must have at least 2 coordinates per axis (got %dx%d)", len(f.Lon), len(f.Lat))
	}
	if len(f.Real) != len(f.Lat) {
		return fmt.Errorf("field has %d rows, expected %d", len(f.Real), len(f.Lat))
	}
	for j, row := range f.Real {
		if len(row) != len(f.Lon) {
			return fmt.Errorf("row %d has %d values, expected %d", j, len(row), len(f.Lon))
		}
	}
	if f.Imag != nil && len(f.Imag) != len(f.Lat) {
		return fmt.Errorf("imaginary part has %d rows, expected %d", len(f.Imag), len(f.Lat))
	}
	if len(f.Mask) != len(f.Lat) {
		return fmt.Errorf("mask has %d rows, expected %d", len(f.Mask), len(f.Lat))
	}
	for i := 1; i < len(f.Lon); i++ {
		if f.Lon[i] <= f.Lon[i-1] {
			return fmt.Errorf("longitude coordinates must be strictly increasing")
		}
	}
	for i := 1; i < len(f.Lat); i++ {
		if f.Lat[i] <= f.Lat[i-1] {
			return fmt.Errorf("latitude coordinates must be strictly increasing")
		}
	}
	return nil
}

// ExtendAxis widens a coordinate axis by one step on each side:
// [x0-step, x0, ..., xN, xN+step].
func ExtendAxis(coords []float64, step float64) []float64 {
	n := len(coords)
	out := make([]float64, n+2)
	out[0] = coords[0] - step
	copy(out[1:n+1], coords)
	out[n+1] = coords[n-1] + step
	return out
}

// wrapColumns widens a matrix by one column per side, copying values from
// the opposite edge (periodic wrap).
func wrapColumns(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for j, row := range m {
		n := len(row)
		ext := make([]float64, n+2)
		ext[0] = row[n-1]
		copy(ext[1:n+1], row)
		ext[n+1] = row[0]
		out[j] = ext
	}
	return out
}

func wrapMaskColumns(m [][]bool) [][]bool {
	out := make([][]bool, len(m))
	for j, row := range m {
		n := len(row)
		ext := make([]bool, n+2)
		ext[0] = row[n-1]
		copy(ext[1:n+1], row)
		ext[n+1] = row[0]
		out[j] = ext
	}
	return out
}

// ExtendLongitude returns a copy of the field whose longitude axis has
// been widened by one column on each side: the first extra column holds
// the original last column, the last extra column the original first.
// This makes interpolation correct for query longitudes straddling the
// grid seam (e.g. near 0°/360° on a global grid).
func (f *Field) ExtendLongitude() *Field {
	step := f.Lon[1] - f.Lon[0]
	out := &Field{
		Lon:  ExtendAxis(f.Lon, step),
		Lat:  f.Lat,
		Real: wrapColumns(f.Real),
		Mask: wrapMaskColumns(f.Mask),
	}
	if f.Imag != nil {
		out.Imag = wrapColumns(f.Imag)
	}
	return out
}
