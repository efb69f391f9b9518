package domain

import (
	"math"
	"sort"
	"strings"
)

// Constituent holds the fixed astronomical parameters of one tidal
// frequency component, in the OTIS/ATLAS convention: the equilibrium
// amplitude of the generating potential (meters), the astronomical phase
// at the model epoch 1992-01-01T00:00:00Z (radians), the angular
// frequency (radians per second), the loading Love-number combination
// alpha, and the spherical-harmonic species of the potential
// (0 long-period, 1 diurnal, 2 semidiurnal).
type Constituent struct {
	Name      string
	Amplitude float64 // Equilibrium amplitude in meters.
	Phase     float64 // Astronomical argument at epoch, radians.
	Omega     float64 // Angular frequency, rad/s.
	Alpha     float64 // Loading Love number combination.
	Species   int
}

// constituentTable lists the constituents supported by the OTIS/ATLAS
// solutions, keyed by lower-case ID. Values follow the standard OTIS
// tables (Egbert & Erofeeva).
var constituentTable = map[string]Constituent{
	"m2":   {"m2", 0.242334, 1.731557546, 1.405189e-04, 0.693, 2},
	"s2":   {"s2", 0.112743, 0.000000000, 1.454441e-04, 0.693, 2},
	"k1":   {"k1", 0.141565, 0.173003674, 7.292117e-05, 0.736, 1},
	"o1":   {"o1", 0.100661, 1.558553872, 6.759774e-05, 0.695, 1},
	"n2":   {"n2", 0.046397, 6.050721243, 1.378797e-04, 0.693, 2},
	"p1":   {"p1", 0.046848, 6.110181633, 7.252295e-05, 0.706, 1},
	"k2":   {"k2", 0.030684, 3.487600001, 1.458423e-04, 0.693, 2},
	"q1":   {"q1", 0.019273, 5.877717569, 6.495854e-05, 0.695, 1},
	"2n2":  {"2n2", 0.006141, 4.086699633, 1.352405e-04, 0.693, 2},
	"mu2":  {"mu2", 0.007408, 3.463115091, 1.355937e-04, 0.693, 2},
	"nu2":  {"nu2", 0.008811, 5.427136701, 1.382329e-04, 0.693, 2},
	"l2":   {"l2", 0.006931, 0.553986502, 1.431581e-04, 0.693, 2},
	"t2":   {"t2", 0.006608, 0.052841931, 1.452450e-04, 0.693, 2},
	"j1":   {"j1", 0.007915, 2.137025284, 7.556036e-05, 0.695, 1},
	"m1":   {"m1", 0.007915, 2.436575100, 7.028195e-05, 0.695, 1},
	"oo1":  {"oo1", 0.004338, 1.929046130, 7.824458e-05, 0.695, 1},
	"rho1": {"rho1", 0.003661, 5.254133027, 6.531174e-05, 0.695, 1},
	"mf":   {"mf", 0.042041, 1.756042456, 5.323414e-06, 0.693, 0},
	"mm":   {"mm", 0.022191, 1.964021610, 2.639200e-06, 0.693, 0},
	"ssa":  {"ssa", 0.019567, 3.487600001, 3.982000e-07, 0.693, 0},
	"m4":   {"m4", 0.0, 3.463115091, 2.810377e-04, 0.693, 0},
	"ms4":  {"ms4", 0.0, 1.731557546, 2.859630e-04, 0.693, 0},
	"mn4":  {"mn4", 0.0, 1.499093481, 2.783984e-04, 0.693, 0},
	"m6":   {"m6", 0.0, 5.194672637, 4.215566e-04, 0.693, 0},
	"m8":   {"m8", 0.0, 6.926230184, 5.620755e-04, 0.693, 0},
	"mk3":  {"mk3", 0.0, 1.904561220, 2.134402e-04, 0.693, 0},
	"s6":   {"s6", 0.0, 0.000000000, 4.363323e-04, 0.693, 0},
	"2sm2": {"2sm2", 0.0, 4.551627762, 1.503693e-04, 0.693, 0},
	"2mk3": {"2mk3", 0.0, 3.809122439, 2.081166e-04, 0.693, 0},
}

// normalizeConstituentID lower-cases an ID and strips the padding that
// NetCDF fixed-width character variables carry.
func normalizeConstituentID(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LookupConstituent resolves a constituent ID, case-insensitively.
func LookupConstituent(name string) (Constituent, bool) {
	c, ok := constituentTable[normalizeConstituentID(name)]
	return c, ok
}

// KnownConstituents returns the IDs of every constituent in the table,
// sorted.
func KnownConstituents() []string {
	names := make([]string, 0, len(constituentTable))
	for name := range constituentTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
