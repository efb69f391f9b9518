package atlas

import (
	"fmt"

	"github.com/fhs/go-netcdf/netcdf"
)

// flatten transposes an in-memory [lat][lon] matrix into the on-disk
// (nx, ny) order used by the ATLAS schema.
func flatten(m [][]float64, nx, ny int) ([]float64, error) {
	if len(m) != ny {
		return nil, fmt.Errorf("matrix has %d rows, expected %d", len(m), ny)
	}
	flat := make([]float64, nx*ny)
	for j, row := range m {
		if len(row) != nx {
			return nil, fmt.Errorf("row %d has %d values, expected %d", j, len(row), nx)
		}
		for i, v := range row {
			flat[i*ny+j] = v
		}
	}
	return flat, nil
}

// defineFloatVar declares a DOUBLE variable while the dataset is still in
// define mode; the values are written after EndDef switches to data mode.
func defineFloatVar(ds netcdf.Dataset, name string, dims []netcdf.Dim) (netcdf.Var, error) {
	return ds.AddVar(name, netcdf.DOUBLE, dims)
}

// WriteGrid writes an ATLAS grid file. The same coordinate axes and
// bathymetry are recorded for all three node families, which is accurate
// for synthetic atlases and test fixtures.
func WriteGrid(path string, lon, lat []float64, bathymetry [][]float64) error {
	nx, ny := len(lon), len(lat)
	flat, err := flatten(bathymetry, nx, ny)
	if err != nil {
		return fmt.Errorf("bathymetry: %w", err)
	}

	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = ds.Close() }()

	dx, err := ds.AddDim("nx", uint64(nx))
	if err != nil {
		return err
	}
	dy, err := ds.AddDim("ny", uint64(ny))
	if err != nil {
		return err
	}

	nodes := []string{"z", "u", "v"}
	lonVars := make([]netcdf.Var, len(nodes))
	latVars := make([]netcdf.Var, len(nodes))
	bathyVars := make([]netcdf.Var, len(nodes))
	for i, node := range nodes {
		if lonVars[i], err = defineFloatVar(ds, "lon_"+node, []netcdf.Dim{dx}); err != nil {
			return err
		}
		if latVars[i], err = defineFloatVar(ds, "lat_"+node, []netcdf.Dim{dy}); err != nil {
			return err
		}
		if bathyVars[i], err = defineFloatVar(ds, "h"+node, []netcdf.Dim{dx, dy}); err != nil {
			return err
		}
	}
	if err := ds.EndDef(); err != nil {
		return err
	}
	for i := range nodes {
		if err := lonVars[i].WriteFloat64s(lon); err != nil {
			return err
		}
		if err := latVars[i].WriteFloat64s(lat); err != nil {
			return err
		}
		if err := bathyVars[i].WriteFloat64s(flat); err != nil {
			return err
		}
	}
	return nil
}

// WriteConstituent writes an ATLAS constituent file holding the complex
// field for the given node family, plus the constituent ID.
func WriteConstituent(path, name string, variable Variable, re, im [][]float64) error {
	ny := len(re)
	if ny == 0 {
		return fmt.Errorf("empty field")
	}
	nx := len(re[0])
	flatRe, err := flatten(re, nx, ny)
	if err != nil {
		return fmt.Errorf("real part: %w", err)
	}
	flatIm, err := flatten(im, nx, ny)
	if err != nil {
		return fmt.Errorf("imaginary part: %w", err)
	}

	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = ds.Close() }()

	dx, err := ds.AddDim("nx", uint64(nx))
	if err != nil {
		return err
	}
	dy, err := ds.AddDim("ny", uint64(ny))
	if err != nil {
		return err
	}

	// Constituent IDs are stored as a fixed-width character variable.
	id := []byte(name)
	for len(id) < 4 {
		id = append(id, ' ')
	}
	dc, err := ds.AddDim("nct", uint64(len(id)))
	if err != nil {
		return err
	}
	conVar, err := ds.AddVar("con", netcdf.CHAR, []netcdf.Dim{dc})
	if err != nil {
		return err
	}

	prefix := "h"
	switch variable.node() {
	case "u":
		prefix = "u"
	case "v":
		prefix = "v"
	}
	reVar, err := defineFloatVar(ds, prefix+"Re", []netcdf.Dim{dx, dy})
	if err != nil {
		return err
	}
	imVar, err := defineFloatVar(ds, prefix+"Im", []netcdf.Dim{dx, dy})
	if err != nil {
		return err
	}
	if err := ds.EndDef(); err != nil {
		return err
	}
	if err := conVar.WriteBytes(id); err != nil {
		return err
	}
	if err := reVar.WriteFloat64s(flatRe); err != nil {
		return err
	}
	return imVar.WriteFloat64s(flatIm)
}
