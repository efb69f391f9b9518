// Command atlas-generator writes a synthetic OTIS/ATLAS-format NetCDF
// atlas (grid file plus one elevation file per constituent) for testing
// and demos. Amplitudes and phases vary smoothly around a reference
// point so interpolation results are visibly position-dependent.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"go.ngs.io/tide-atlas/internal/adapter/atlas"
	"go.ngs.io/tide-atlas/internal/domain"
)

func main() {
	outDir := flag.String("out", "./data/atlas", "Output directory")
	lonMin := flag.Float64("lon-min", 120.0, "Minimum longitude")
	lonMax := flag.Float64("lon-max", 150.0, "Maximum longitude")
	latMin := flag.Float64("lat-min", 20.0, "Minimum latitude")
	latMax := flag.Float64("lat-max", 50.0, "Maximum latitude")
	resolution := flag.Float64("resolution", 0.25, "Grid resolution in degrees")
	refLon := flag.Float64("ref-lon", 139.65, "Reference longitude (amplitude maximum)")
	refLat := flag.Float64("ref-lat", 35.68, "Reference latitude (amplitude maximum)")
	depth := flag.Float64("depth", 4000.0, "Uniform ocean depth in meters")
	conList := flag.String("constituents", "m2,s2,k1,o1", "Comma-separated constituent IDs")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	nx := int((*lonMax-*lonMin)/(*resolution)) + 1
	ny := int((*latMax-*latMin)/(*resolution)) + 1
	lon := make([]float64, nx)
	lat := make([]float64, ny)
	floats.Span(lon, *lonMin, *lonMin+float64(nx-1)*(*resolution))
	floats.Span(lat, *latMin, *latMin+float64(ny-1)*(*resolution))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal("creating output directory", zap.Error(err))
	}

	// Grid file: uniform ocean depth everywhere.
	bathymetry := make([][]float64, ny)
	for j := range bathymetry {
		row := make([]float64, nx)
		for i := range row {
			row[i] = *depth
		}
		bathymetry[j] = row
	}
	gridPath := filepath.Join(*outDir, "grid.nc")
	if err := atlas.WriteGrid(gridPath, lon, lat, bathymetry); err != nil {
		logger.Fatal("writing grid file", zap.Error(err))
	}
	logger.Info("wrote grid file", zap.String("path", gridPath), zap.Int("nx", nx), zap.Int("ny", ny))

	for _, name := range strings.Split(*conList, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		con, ok := domain.LookupConstituent(name)
		if !ok {
			logger.Warn("skipping unknown constituent", zap.String("constituent", name))
			continue
		}

		re := make([][]float64, ny)
		im := make([][]float64, ny)
		for j := 0; j < ny; j++ {
			re[j] = make([]float64, nx)
			im[j] = make([]float64, nx)
			for i := 0; i < nx; i++ {
				dLon := lon[i] - *refLon
				dLat := lat[j] - *refLat
				dist := math.Hypot(dLon, dLat)

				// Amplitude tapers away from the reference point, with
				// a floor so no ocean cell is ever exactly zero.
				base := con.Amplitude
				if base == 0 {
					base = 0.05
				}
				amp := base * math.Max(0.5, math.Cos(dist*math.Pi/40.0))

				// Phase drifts with distance.
				ph := domain.Deg2Rad(math.Mod(con.Phase*180.0/math.Pi+3.0*dist, 360.0))

				re[j][i] = amp * math.Cos(ph)
				im[j][i] = -amp * math.Sin(ph)
			}
		}

		path := filepath.Join(*outDir, name+".nc")
		if err := atlas.WriteConstituent(path, name, atlas.VarZ, re, im); err != nil {
			logger.Fatal("writing constituent file", zap.String("constituent", name), zap.Error(err))
		}
		logger.Info("wrote constituent file", zap.String("path", path))
	}
}
