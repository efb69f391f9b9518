package csv

import (
	"os"
	"path/filepath"
	"testing"

	"go.ngs.io/tide-atlas/internal/domain"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	points := []domain.Point{{Lon: 139.65, Lat: 35.68}, {Lon: -1.5, Lat: 50.1}}
	c := &domain.Constants{
		Constituents: []string{"m2", "s2"},
		Amplitude:    [][]float64{{1.25, 0.4}, {1e20, 0.31}},
		Phase:        [][]float64{{37.5, 120.0}, {1e20, 359.99}},
		Mask:         [][]bool{{false, false}, {true, false}},
		Depth:        []float64{2000, 45.5},
		DepthMask:    []bool{false, false},
	}

	path := filepath.Join(t.TempDir(), "constants.csv")
	if err := Write(path, points, c); err != nil {
		t.Fatalf("Write: %v", err)
	}

	gotPoints, got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(gotPoints) != len(points) {
		t.Fatalf("got %d points, want %d", len(gotPoints), len(points))
	}
	for p := range points {
		if gotPoints[p] != points[p] {
			t.Errorf("point %d = %+v, want %+v", p, gotPoints[p], points[p])
		}
		if got.Depth[p] != c.Depth[p] || got.DepthMask[p] != c.DepthMask[p] {
			t.Errorf("point %d depth (%v, %v), want (%v, %v)", p, got.Depth[p], got.DepthMask[p], c.Depth[p], c.DepthMask[p])
		}
	}
	if len(got.Constituents) != 2 || got.Constituents[0] != "m2" || got.Constituents[1] != "s2" {
		t.Fatalf("constituents = %v", got.Constituents)
	}
	for p := range points {
		for k := range c.Constituents {
			if got.Mask[p][k] != c.Mask[p][k] {
				t.Errorf("mask[%d][%d] = %v, want %v", p, k, got.Mask[p][k], c.Mask[p][k])
			}
			if got.Amplitude[p][k] != c.Amplitude[p][k] || got.Phase[p][k] != c.Phase[p][k] {
				t.Errorf("constants[%d][%d] = (%v, %v), want (%v, %v)",
					p, k, got.Amplitude[p][k], got.Phase[p][k], c.Amplitude[p][k], c.Phase[p][k])
			}
		}
	}
}

func TestWrite_PointCountMismatch(t *testing.T) {
	c := &domain.Constants{
		Constituents: []string{"m2"},
		Amplitude:    [][]float64{{1}},
		Phase:        [][]float64{{0}},
		Mask:         [][]bool{{false}},
		Depth:        []float64{100},
		DepthMask:    []bool{false},
	}
	path := filepath.Join(t.TempDir(), "constants.csv")
	if err := Write(path, []domain.Point{{}, {}}, c); err == nil {
		t.Error("expected error for mismatched point count")
	}
}

func TestRead_MalformedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("lon,lat,depth\n1,2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(path); err == nil {
		t.Error("expected error for malformed header")
	}

	if err := os.WriteFile(path, []byte("lon,lat,depth,depth_valid,m2_ampX,m2_phase,m2_valid\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(path); err == nil {
		t.Error("expected error for unexpected constituent column")
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, _, err := Read(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
