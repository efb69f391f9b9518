package atlas

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhs/go-netcdf/netcdf"
)

// Grid holds the raw contents of an atlas grid file for one node family:
// the coordinate axes and the bathymetry matrix, indexed [lat][lon].
// Bathymetry of zero marks land / no-data cells.
type Grid struct {
	Lon        []float64
	Lat        []float64
	Bathymetry [][]float64
}

// ConstituentField holds the complex harmonic field of one constituent,
// indexed [lat][lon], plus the constituent ID recorded in the file.
type ConstituentField struct {
	Name string
	Real [][]float64
	Imag [][]float64
}

// openDataset opens a NetCDF file, transparently decompressing gzip input
// to a scratch file first (the NetCDF C library needs a seekable path).
// The returned closer removes any scratch file.
func openDataset(path string, gzipped bool) (netcdf.Dataset, func(), error) {
	if !gzipped && !strings.HasSuffix(path, ".gz") {
		ds, err := netcdf.OpenFile(path, netcdf.NOWRITE)
		if err != nil {
			return netcdf.Dataset(0), nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		return ds, func() { _ = ds.Close() }, nil
	}

	in, err := os.Open(path)
	if err != nil {
		return netcdf.Dataset(0), nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return netcdf.Dataset(0), nil, fmt.Errorf("corrupt gzip stream in %s: %w", path, err)
	}
	defer zr.Close()

	tmp, err := os.CreateTemp("", "atlas-*"+strings.TrimSuffix(filepath.Ext(path), ".gz")+".nc")
	if err != nil {
		return netcdf.Dataset(0), nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	if _, err := io.Copy(tmp, zr); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return netcdf.Dataset(0), nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return netcdf.Dataset(0), nil, err
	}

	ds, err := netcdf.OpenFile(tmp.Name(), netcdf.NOWRITE)
	if err != nil {
		os.Remove(tmp.Name())
		return netcdf.Dataset(0), nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	closer := func() {
		_ = ds.Close()
		_ = os.Remove(tmp.Name())
	}
	return ds, closer, nil
}

// gridShape reads the nx/ny dimensions required by the ATLAS schema.
func gridShape(ds netcdf.Dataset, path string) (nx, ny int, err error) {
	dx, err := ds.Dim("nx")
	if err != nil {
		return 0, 0, fmt.Errorf("%s: missing dimension nx: %w", path, err)
	}
	dy, err := ds.Dim("ny")
	if err != nil {
		return 0, 0, fmt.Errorf("%s: missing dimension ny: %w", path, err)
	}
	lx, err := dx.Len()
	if err != nil {
		return 0, 0, err
	}
	ly, err := dy.Len()
	if err != nil {
		return 0, 0, err
	}
	return int(lx), int(ly), nil
}

// readAxis reads a 1-D coordinate variable of the given length.
func readAxis(ds netcdf.Dataset, path, name string, n int) ([]float64, error) {
	v, err := ds.Var(name)
	if err != nil {
		return nil, fmt.Errorf("%s: missing variable %s: %w", path, name, err)
	}
	out := make([]float64, n)
	if err := readFloats(v, out); err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", path, name, err)
	}
	return out, nil
}

// readMatrix reads an (nx, ny) variable and transposes it to [ny][nx]
// (rows over latitude), matching the in-memory layout used everywhere
// downstream.
func readMatrix(ds netcdf.Dataset, path, name string, nx, ny int) ([][]float64, error) {
	v, err := ds.Var(name)
	if err != nil {
		return nil, fmt.Errorf("%s: missing variable %s: %w", path, name, err)
	}
	flat := make([]float64, nx*ny)
	if err := readFloats(v, flat); err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", path, name, err)
	}
	out := make([][]float64, ny)
	for j := 0; j < ny; j++ {
		row := make([]float64, nx)
		for i := 0; i < nx; i++ {
			row[i] = flat[i*ny+j]
		}
		out[j] = row
	}
	return out, nil
}

// readFloats reads a variable of any numeric NetCDF type into a float64
// slice of the expected total length.
func readFloats(v netcdf.Var, dst []float64) error {
	t, err := v.Type()
	if err != nil {
		return fmt.Errorf("failed to get var type: %w", err)
	}
	switch t {
	case netcdf.DOUBLE:
		return v.ReadFloat64s(dst)
	case netcdf.FLOAT:
		tmp := make([]float32, len(dst))
		if err := v.ReadFloat32s(tmp); err != nil {
			return err
		}
		for i, val := range tmp {
			dst[i] = float64(val)
		}
		return nil
	case netcdf.INT:
		tmp := make([]int32, len(dst))
		if err := v.ReadInt32s(tmp); err != nil {
			return err
		}
		for i, val := range tmp {
			dst[i] = float64(val)
		}
		return nil
	case netcdf.SHORT:
		tmp := make([]int16, len(dst))
		if err := v.ReadInt16s(tmp); err != nil {
			return err
		}
		for i, val := range tmp {
			dst[i] = float64(val)
		}
		return nil
	default:
		return fmt.Errorf("unsupported var type: %v", t)
	}
}

// ReadGrid reads node coordinates and bathymetry for the node family the
// requested variable lives on.
func ReadGrid(path string, variable Variable, gzipped bool) (*Grid, error) {
	ds, closer, err := openDataset(path, gzipped)
	if err != nil {
		return nil, err
	}
	defer closer()

	nx, ny, err := gridShape(ds, path)
	if err != nil {
		return nil, err
	}

	node := variable.node()
	lon, err := readAxis(ds, path, "lon_"+node, nx)
	if err != nil {
		return nil, err
	}
	lat, err := readAxis(ds, path, "lat_"+node, ny)
	if err != nil {
		return nil, err
	}
	bathy, err := readMatrix(ds, path, "h"+node, nx, ny)
	if err != nil {
		return nil, err
	}

	return &Grid{Lon: lon, Lat: lat, Bathymetry: bathy}, nil
}

// ReadConstituent reads the complex harmonic field for one constituent
// from an elevation or transport file, selecting the variable pair by
// node family: hRe/hIm for elevations, uRe/uIm or vRe/vIm for transports.
func ReadConstituent(path string, variable Variable, gzipped bool) (*ConstituentField, error) {
	ds, closer, err := openDataset(path, gzipped)
	if err != nil {
		return nil, err
	}
	defer closer()

	nx, ny, err := gridShape(ds, path)
	if err != nil {
		return nil, err
	}

	name, err := readConstituentName(ds, path)
	if err != nil {
		return nil, err
	}

	prefix := "h"
	if variable.node() == "u" {
		prefix = "u"
	} else if variable.node() == "v" {
		prefix = "v"
	}

	re, err := readMatrix(ds, path, prefix+"Re", nx, ny)
	if err != nil {
		return nil, err
	}
	im, err := readMatrix(ds, path, prefix+"Im", nx, ny)
	if err != nil {
		return nil, err
	}

	return &ConstituentField{Name: name, Real: re, Imag: im}, nil
}

// readConstituentName reads the short character variable identifying the
// constituent stored in the file.
func readConstituentName(ds netcdf.Dataset, path string) (string, error) {
	v, err := ds.Var("con")
	if err != nil {
		return "", fmt.Errorf("%s: missing variable con: %w", path, err)
	}
	n, err := v.Len()
	if err != nil {
		return "", fmt.Errorf("%s: reading con: %w", path, err)
	}
	buf := make([]byte, n)
	if err := v.ReadBytes(buf); err != nil {
		return "", fmt.Errorf("%s: reading con: %w", path, err)
	}
	return strings.TrimSpace(strings.Trim(string(buf), "\x00")), nil
}
