package interp

import (
	"fmt"
	"math"
	"sort"
)

// Method selects the interpolation strategy used by an Evaluator.
type Method string

const (
	// MethodSpline builds degree-1 bivariate (bilinear-equivalent)
	// surfaces independently over the real part, imaginary part, and
	// mask of the field.
	MethodSpline Method = "spline"
	// MethodLinear is regular-grid bilinear interpolation with strict
	// out-of-domain masking.
	MethodLinear Method = "linear"
	// MethodNearest is regular-grid nearest-neighbour lookup with strict
	// out-of-domain masking.
	MethodNearest Method = "nearest"
)

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodSpline, MethodLinear, MethodNearest:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unsupported interpolation method %q (use spline, linear or nearest)", s)
	}
}

// Evaluator evaluates a masked field at arbitrary query points. The
// returned mask entry is true wherever the result must not be used:
// out-of-domain queries and any point whose interpolation support touches
// an invalid source cell. Evaluation never fails; invalidity is always
// expressed through the mask.
type Evaluator interface {
	Evaluate(lon, lat []float64) (re, im []float64, mask []bool)
}

// NewEvaluator builds a fresh evaluator over the field. Evaluators hold
// no state beyond the field itself; callers build one per extraction and
// discard it.
func NewEvaluator(f *Field, method Method) (Evaluator, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}
	switch method {
	case MethodSpline:
		return &splineEvaluator{field: f}, nil
	case MethodLinear:
		return &regularGridEvaluator{field: f, nearest: false}, nil
	case MethodNearest:
		return &regularGridEvaluator{field: f, nearest: true}, nil
	default:
		return nil, fmt.Errorf("unsupported interpolation method %q", method)
	}
}

// cellIndex returns i such that coords[i] <= x <= coords[i+1], or false
// when x lies outside the axis.
func cellIndex(coords []float64, x float64) (int, bool) {
	if x < coords[0] || x > coords[len(coords)-1] {
		return 0, false
	}
	i := sort.SearchFloat64s(coords, x)
	if i > 0 {
		i--
	}
	if i > len(coords)-2 {
		i = len(coords) - 2
	}
	return i, true
}

// bilinear evaluates the standard cell-weighted form
//
//	f(x,y) ≈ (1-t)(1-u)·v00 + t(1-u)·v10 + (1-t)u·v01 + tu·v11
//
// with t, u clamped to [0, 1].
func bilinear(x0, x1, y0, y1, v00, v10, v01, v11, x, y float64) float64 {
	t := (x - x0) / (x1 - x0)
	u := (y - y0) / (y1 - y0)
	t = math.Max(0, math.Min(1, t))
	u = math.Max(0, math.Min(1, u))
	return (1-t)*(1-u)*v00 + t*(1-u)*v10 + (1-t)*u*v01 + t*u*v11
}

// cellValues gathers the four corner samples of a matrix for cell (i, j).
func cellValues(m [][]float64, i, j int) (v00, v10, v01, v11 float64) {
	return m[j][i], m[j][i+1], m[j+1][i], m[j+1][i+1]
}

func maskAsFloat(m [][]bool, i, j int) (v00, v10, v01, v11 float64) {
	b2f := func(b bool) float64 {
		if b {
			return 1.0
		}
		return 0.0
	}
	return b2f(m[j][i]), b2f(m[j][i+1]), b2f(m[j+1][i]), b2f(m[j+1][i+1])
}

// splineEvaluator approximates a degree-1 bivariate spline: separable
// bilinear surfaces over real, imaginary and mask fields. Queries outside
// the grid evaluate against the nearest edge cell and are masked invalid.
type splineEvaluator struct {
	field *Field
}

func (e *splineEvaluator) Evaluate(lon, lat []float64) ([]float64, []float64, []bool) {
	f := e.field
	n := len(lon)
	re := make([]float64, n)
	im := make([]float64, n)
	mask := make([]bool, n)

	for q := 0; q < n; q++ {
		i, okX := cellIndex(f.Lon, lon[q])
		j, okY := cellIndex(f.Lat, lat[q])
		if !okX {
			// Clamp to the nearer edge cell.
			if lon[q] > f.Lon[len(f.Lon)-1] {
				i = len(f.Lon) - 2
			}
		}
		if !okY {
			if lat[q] > f.Lat[len(f.Lat)-1] {
				j = len(f.Lat) - 2
			}
		}

		x0, x1 := f.Lon[i], f.Lon[i+1]
		y0, y1 := f.Lat[j], f.Lat[j+1]

		v00, v10, v01, v11 := cellValues(f.Real, i, j)
		re[q] = bilinear(x0, x1, y0, y1, v00, v10, v01, v11, lon[q], lat[q])
		if f.Imag != nil {
			v00, v10, v01, v11 = cellValues(f.Imag, i, j)
			im[q] = bilinear(x0, x1, y0, y1, v00, v10, v01, v11, lon[q], lat[q])
		}

		m00, m10, m01, m11 := maskAsFloat(f.Mask, i, j)
		mval := bilinear(x0, x1, y0, y1, m00, m10, m01, m11, lon[q], lat[q])
		mask[q] = mval > 0 || !okX || !okY
	}
	return re, im, mask
}

// regularGridEvaluator implements the linear and nearest regular-grid
// strategies. Out-of-domain queries return FillValue with the mask forced
// invalid; values are never extrapolated. Mask interpolation takes the
// ceiling of the raw interpolated value so that any location touched by
// an invalid neighbour is conservatively marked invalid.
type regularGridEvaluator struct {
	field   *Field
	nearest bool
}

func (e *regularGridEvaluator) Evaluate(lon, lat []float64) ([]float64, []float64, []bool) {
	f := e.field
	n := len(lon)
	re := make([]float64, n)
	im := make([]float64, n)
	mask := make([]bool, n)

	for q := 0; q < n; q++ {
		i, okX := cellIndex(f.Lon, lon[q])
		j, okY := cellIndex(f.Lat, lat[q])
		if !okX || !okY {
			re[q] = FillValue
			im[q] = FillValue
			mask[q] = true
			continue
		}

		if e.nearest {
			ni, nj := i, j
			if lon[q]-f.Lon[i] > f.Lon[i+1]-lon[q] {
				ni = i + 1
			}
			if lat[q]-f.Lat[j] > f.Lat[j+1]-lat[q] {
				nj = j + 1
			}
			re[q] = f.Real[nj][ni]
			if f.Imag != nil {
				im[q] = f.Imag[nj][ni]
			}
			mask[q] = f.Mask[nj][ni]
			continue
		}

		x0, x1 := f.Lon[i], f.Lon[i+1]
		y0, y1 := f.Lat[j], f.Lat[j+1]

		v00, v10, v01, v11 := cellValues(f.Real, i, j)
		re[q] = bilinear(x0, x1, y0, y1, v00, v10, v01, v11, lon[q], lat[q])
		if f.Imag != nil {
			v00, v10, v01, v11 = cellValues(f.Imag, i, j)
			im[q] = bilinear(x0, x1, y0, y1, v00, v10, v01, v11, lon[q], lat[q])
		}

		m00, m10, m01, m11 := maskAsFloat(f.Mask, i, j)
		mval := bilinear(x0, x1, y0, y1, m00, m10, m01, m11, lon[q], lat[q])
		mask[q] = math.Ceil(mval) > 0
	}
	return re, im, mask
}
