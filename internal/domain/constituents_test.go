package domain

import (
	"math"
	"testing"
)

func TestLookupConstituent(t *testing.T) {
	cases := []string{"m2", "M2", " m2 ", "K1"}
	for _, name := range cases {
		c, ok := LookupConstituent(name)
		if !ok {
			t.Errorf("LookupConstituent(%q): not found", name)
			continue
		}
		if c.Omega <= 0 {
			t.Errorf("LookupConstituent(%q): non-positive frequency %v", name, c.Omega)
		}
	}
	if _, ok := LookupConstituent("zz9"); ok {
		t.Error("LookupConstituent(zz9): unexpectedly found")
	}
}

func TestConstituentFrequencies(t *testing.T) {
	// Sanity-check a few well known periods derived from omega.
	cases := []struct {
		name        string
		periodHours float64
	}{
		{"m2", 12.4206},
		{"s2", 12.0},
		{"k1", 23.9345},
		{"o1", 25.8193},
	}
	for _, c := range cases {
		con, ok := LookupConstituent(c.name)
		if !ok {
			t.Fatalf("%s missing", c.name)
		}
		period := 2 * math.Pi / con.Omega / 3600.0
		if math.Abs(period-c.periodHours) > 0.001 {
			t.Errorf("%s period = %v h, want %v", c.name, period, c.periodHours)
		}
	}
}

func TestKnownConstituents_SortedAndComplete(t *testing.T) {
	names := KnownConstituents()
	if len(names) < 20 {
		t.Fatalf("only %d constituents known", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i] <= names[i-1] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{"m2", "s2", "n2", "k2", "k1", "o1", "p1", "q1", "m4"} {
		if !seen[want] {
			t.Errorf("expected constituent %q in table", want)
		}
	}
}

func TestHarmonicRow(t *testing.T) {
	c := &Constants{
		Constituents: []string{"m2", "s2"},
		Amplitude:    [][]float64{{1.0, 2.0}, {0.5, 0.25}},
		Phase:        [][]float64{{0.0, 90.0}, {180.0, 270.0}},
		Mask:         [][]bool{{false, false}, {true, false}},
	}
	row := c.HarmonicRow(0)
	if len(row) != 2 {
		t.Fatalf("got %d constants, want 2", len(row))
	}
	// m2 at point 0: amp 1, phase 0 -> Re=1, Im=0.
	if math.Abs(row[0].Re-1.0) > 1e-12 || math.Abs(row[0].Im) > 1e-12 || row[0].Invalid {
		t.Errorf("m2 constant = %+v, want Re=1 Im=0 valid", row[0])
	}
	// s2 at point 0: amp 2, phase 90 -> Re=0, Im=-2.
	if math.Abs(row[1].Re) > 1e-12 || math.Abs(row[1].Im+2.0) > 1e-12 {
		t.Errorf("s2 constant = %+v, want Re=0 Im=-2", row[1])
	}
	// m2 at point 1 is masked; the numbers must not be trusted.
	row = c.HarmonicRow(1)
	if !row[0].Invalid {
		t.Error("masked entry not marked invalid")
	}
	if row[1].Invalid {
		t.Error("valid entry marked invalid")
	}
}
