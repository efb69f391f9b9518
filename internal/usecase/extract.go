// Package usecase orchestrates atlas extraction and tide prediction.
package usecase

import (
	"fmt"
	"math"
	"path/filepath"

	"go.ngs.io/tide-atlas/internal/adapter/atlas"
	"go.ngs.io/tide-atlas/internal/adapter/interp"
	"go.ngs.io/tide-atlas/internal/domain"
)

// ExtractOptions configures harmonic constant extraction.
type ExtractOptions struct {
	Variable atlas.Variable // Tidal quantity: z, u, U, v or V.
	Method   interp.Method  // Interpolation strategy.
	Gzip     bool           // Atlas files are gzip-compressed.
	Scale    float64        // Amplitude unit conversion (e.g. mm -> m).
}

// normalizeLon360 maps arbitrary degree longitudes into [0, 360).
// The atlas grids are defined on a 0-360 axis, so query points using the
// conventional -180..180 representation must be wrapped before any
// interpolation happens.
func normalizeLon360(lon float64) float64 {
	lon = math.Mod(lon, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return lon
}

// ExtractConstants spatially interpolates per-constituent harmonic
// constants and bathymetry from an OTIS/ATLAS NetCDF atlas onto the query
// points. Output rows align with points; output columns align with
// modelFiles. Structural problems in any atlas file abort the call;
// out-of-domain or masked queries never do, they are reported through the
// output masks.
func ExtractConstants(points []domain.Point, dir, gridFile string, modelFiles []string, opts ExtractOptions) (*domain.Constants, error) {
	variable := opts.Variable
	if _, err := atlas.ParseVariable(string(variable)); err != nil {
		return nil, err
	}
	method := opts.Method
	if _, err := interp.ParseMethod(string(method)); err != nil {
		return nil, err
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1.0
	}

	grid, err := atlas.ReadGrid(filepath.Join(dir, gridFile), variable, opts.Gzip)
	if err != nil {
		return nil, fmt.Errorf("reading atlas grid: %w", err)
	}

	// Land / no-data cells carry zero bathymetry.
	landMask := make([][]bool, len(grid.Bathymetry))
	for j, row := range grid.Bathymetry {
		landMask[j] = make([]bool, len(row))
		for i, d := range row {
			landMask[j][i] = d == 0
		}
	}

	bathyField := (&interp.Field{
		Lon:  grid.Lon,
		Lat:  grid.Lat,
		Real: grid.Bathymetry,
		Mask: landMask,
	}).ExtendLongitude()

	npts := len(points)
	lons := make([]float64, npts)
	lats := make([]float64, npts)
	for p, pt := range points {
		lons[p] = normalizeLon360(pt.Lon)
		lats[p] = pt.Lat
	}

	bathyEval, err := interp.NewEvaluator(bathyField, method)
	if err != nil {
		return nil, err
	}
	depth, _, depthMask := bathyEval.Evaluate(lons, lats)

	// Velocity amplitudes are stored as transports (cm^2/s); dividing by
	// the local depth in centimeters converts them to velocities. The
	// depth is the one read at the requested variable's own grid nodes.
	divisor := make([]float64, npts)
	for p := range divisor {
		if variable.IsVelocity() {
			divisor[p] = depth[p] / 100.0
		} else {
			divisor[p] = 1.0
		}
	}

	nc := len(modelFiles)
	out := &domain.Constants{
		Constituents: make([]string, 0, nc),
		Amplitude:    make([][]float64, npts),
		Phase:        make([][]float64, npts),
		Mask:         make([][]bool, npts),
		Depth:        depth,
		DepthMask:    depthMask,
	}
	for p := 0; p < npts; p++ {
		out.Amplitude[p] = make([]float64, nc)
		out.Phase[p] = make([]float64, nc)
		out.Mask[p] = make([]bool, nc)
	}

	for k, file := range modelFiles {
		cf, err := atlas.ReadConstituent(filepath.Join(dir, file), variable, opts.Gzip)
		if err != nil {
			return nil, fmt.Errorf("reading constituent file %s: %w", file, err)
		}
		out.Constituents = append(out.Constituents, cf.Name)

		field := (&interp.Field{
			Lon:  grid.Lon,
			Lat:  grid.Lat,
			Real: cf.Real,
			Imag: cf.Imag,
			Mask: landMask,
		}).ExtendLongitude()

		eval, err := interp.NewEvaluator(field, method)
		if err != nil {
			return nil, fmt.Errorf("constituent %s: %w", cf.Name, err)
		}
		re, im, mask := eval.Evaluate(lons, lats)

		for p := 0; p < npts; p++ {
			invalid := mask[p] || re[p] == interp.FillValue || im[p] == interp.FillValue
			if variable.IsVelocity() {
				if divisor[p] == 0 || depthMask[p] {
					invalid = true
				} else {
					re[p] /= divisor[p]
					im[p] /= divisor[p]
				}
			}
			if invalid {
				out.Amplitude[p][k] = interp.FillValue
				out.Phase[p][k] = interp.FillValue
				out.Mask[p][k] = true
				continue
			}
			out.Amplitude[p][k] = math.Hypot(re[p], im[p])
			ph := domain.Rad2Deg(math.Atan2(-im[p], re[p]))
			if ph < 0 {
				ph += 360.0
			}
			out.Phase[p][k] = ph
		}
	}

	// Convert amplitudes to output units.
	if scale != 1.0 {
		for p := 0; p < npts; p++ {
			for k := range out.Amplitude[p] {
				if !out.Mask[p][k] {
					out.Amplitude[p][k] *= scale
				}
			}
		}
	}

	return out, nil
}
