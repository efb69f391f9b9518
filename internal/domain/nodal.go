package domain

import (
	"math"
)

// Convention selects how nodal corrections and astronomical arguments are
// combined during synthesis.
//
//   - ConventionOTIS / ConventionATLAS: the synthesizer forms the phase from
//     the constituent frequency and epoch phase plus the nodal phase offset.
//   - ConventionGOT: the synthesizer uses the tabulated equilibrium argument
//     directly, with GOT-style simplified nodal factors.
type Convention string

const (
	ConventionOTIS  Convention = "OTIS"
	ConventionATLAS Convention = "ATLAS"
	ConventionGOT   Convention = "GOT"
)

// usesEquilibriumArgument reports whether synthesis under this convention
// reads the equilibrium-argument table instead of frequency times time.
func (c Convention) usesEquilibriumArgument() bool {
	return c == ConventionGOT
}

// astroAngles holds the mean astronomical longitudes (degrees) used to
// build equilibrium arguments and nodal factors at one instant.
type astroAngles struct {
	t1 float64 // 15 * solar hour angle, degrees (diurnal).
	t2 float64 // 30 * solar hour angle, degrees (semidiurnal).
	s  float64 // Mean longitude of the moon.
	h  float64 // Mean longitude of the sun.
	p  float64 // Mean longitude of lunar perigee.
	n  float64 // Mean longitude of the ascending lunar node.
	pp float64 // Mean longitude of solar perigee.
}

// meanLongitudes evaluates the linear Meeus-style expansions of the mean
// astronomical longitudes at a Modified Julian Date.
func meanLongitudes(mjd float64) (s, h, p, n, pp float64) {
	// Days since 2000-01-01T11:58:56 (the OTIS reference for these fits).
	T := mjd - 51544.4993
	s = math.Mod(218.3164+13.17639648*T, 360.0)
	h = math.Mod(280.4661+0.98564736*T, 360.0)
	p = math.Mod(83.3535+0.11140353*T, 360.0)
	n = math.Mod(125.0445-0.05295377*T, 360.0)
	pp = math.Mod(282.9384+0.0000470684*T, 360.0)
	if s < 0 {
		s += 360.0
	}
	if h < 0 {
		h += 360.0
	}
	if p < 0 {
		p += 360.0
	}
	if n < 0 {
		n += 360.0
	}
	if pp < 0 {
		pp += 360.0
	}
	return s, h, p, n, pp
}

// anglesAt computes the astronomical angles for one time. The ephemeris
// offset deltaT (days) shifts the slowly varying longitudes only; the hour
// angle terms stay on the input time scale.
func anglesAt(mjd, deltaT float64) astroAngles {
	s, h, p, n, pp := meanLongitudes(mjd + deltaT)
	hour := (mjd - math.Floor(mjd)) * 24.0
	return astroAngles{
		t1: 15.0 * hour,
		t2: 30.0 * hour,
		s:  s,
		h:  h,
		p:  p,
		n:  n,
		pp: pp,
	}
}

// equilibriumArgument returns the Greenwich equilibrium argument (degrees)
// for a constituent at the given astronomical angles. Unknown constituents
// return 0.
func equilibriumArgument(name string, a astroAngles) float64 {
	t1, t2 := a.t1, a.t2
	s, h, p, pp := a.s, a.h, a.p, a.pp
	switch name {
	case "mm":
		return s - p
	case "mf":
		return 2.0 * s
	case "ssa":
		return 2.0 * h
	case "q1":
		return t1 - 3.0*s + h + p - 90.0
	case "rho1":
		return t1 - 3.0*s + 3.0*h - p - 90.0
	case "o1":
		return t1 - 2.0*s + h - 90.0
	case "m1":
		return t1 - s + h + 90.0
	case "p1":
		return t1 - h - 90.0
	case "k1":
		return t1 + h + 90.0
	case "j1":
		return t1 + s + h - p + 90.0
	case "oo1":
		return t1 + 2.0*s + h + 90.0
	case "2n2":
		return t2 - 4.0*s + 2.0*h + 2.0*p
	case "mu2":
		return t2 - 4.0*s + 4.0*h
	case "n2":
		return t2 - 3.0*s + 2.0*h + p
	case "nu2":
		return t2 - 3.0*s + 4.0*h - p
	case "m2":
		return t2 - 2.0*s + 2.0*h
	case "l2":
		return t2 - s + 2.0*h - p + 180.0
	case "t2":
		return t2 - h + pp
	case "s2":
		return t2
	case "k2":
		return t2 + 2.0*h
	case "m4":
		return 2.0 * equilibriumArgument("m2", a)
	case "m6":
		return 3.0 * equilibriumArgument("m2", a)
	case "m8":
		return 4.0 * equilibriumArgument("m2", a)
	case "mn4":
		return equilibriumArgument("n2", a) + equilibriumArgument("m2", a)
	case "ms4":
		return equilibriumArgument("m2", a) + t2
	case "mk3":
		return equilibriumArgument("m2", a) + equilibriumArgument("k1", a)
	case "2mk3":
		return 2.0*equilibriumArgument("m2", a) - equilibriumArgument("k1", a)
	case "2sm2":
		return 2.0*t2 - equilibriumArgument("m2", a)
	case "s6":
		return 3.0 * t2
	default:
		return 0.0
	}
}

// schuremanFactors returns the nodal amplitude factor f and phase
// correction u (degrees) for a constituent using the full Schureman
// formulation, as used by the OTIS and ATLAS solutions. Constituents with
// no nodal modulation, and unknown constituents, return (1, 0).
func schuremanFactors(name string, a astroAngles) (f, u float64) {
	sinn := math.Sin(Deg2Rad(a.n))
	cosn := math.Cos(Deg2Rad(a.n))
	sin2n := math.Sin(2.0 * Deg2Rad(a.n))
	cos2n := math.Cos(2.0 * Deg2Rad(a.n))
	sin3n := math.Sin(3.0 * Deg2Rad(a.n))

	switch name {
	case "mm":
		return 1.0 - 0.130*cosn, 0.0
	case "mf":
		return 1.043 + 0.414*cosn, -23.7*sinn + 2.7*sin2n - 0.4*sin3n
	case "q1", "rho1":
		f = math.Sqrt(math.Pow(1.0+0.188*cosn, 2) + math.Pow(0.188*sinn, 2))
		u = Rad2Deg(math.Atan2(0.189*sinn, 1.0+0.189*cosn))
		return f, u
	case "o1":
		f = math.Sqrt(math.Pow(1.0+0.189*cosn-0.0058*cos2n, 2) +
			math.Pow(0.189*sinn-0.0058*sin2n, 2))
		u = 10.8*sinn - 1.3*sin2n + 0.2*sin3n
		return f, u
	case "m1":
		tmp1 := 2.0*math.Cos(Deg2Rad(a.p)) + 0.4*math.Cos(Deg2Rad(a.p-a.n))
		tmp2 := math.Sin(Deg2Rad(a.p)) + 0.2*math.Sin(Deg2Rad(a.p-a.n))
		return math.Sqrt(tmp1*tmp1 + tmp2*tmp2), Rad2Deg(math.Atan2(-tmp2, tmp1))
	case "k1":
		f = math.Sqrt(math.Pow(1.0+0.1158*cosn-0.0029*cos2n, 2) +
			math.Pow(0.1554*sinn-0.0029*sin2n, 2))
		u = Rad2Deg(math.Atan2(-(0.1554*sinn - 0.0029*sin2n), 1.0+0.1158*cosn-0.0029*cos2n))
		return f, u
	case "j1":
		f = math.Sqrt(math.Pow(1.0+0.169*cosn, 2) + math.Pow(0.227*sinn, 2))
		u = Rad2Deg(math.Atan2(-0.227*sinn, 1.0+0.169*cosn))
		return f, u
	case "oo1":
		f = math.Sqrt(math.Pow(1.0+0.640*cosn+0.134*cos2n, 2) +
			math.Pow(0.640*sinn+0.134*sin2n, 2))
		u = Rad2Deg(math.Atan2(-(0.640*sinn + 0.134*sin2n), 1.0+0.640*cosn+0.134*cos2n))
		return f, u
	case "2n2", "mu2", "n2", "nu2", "m2":
		f = math.Sqrt(math.Pow(1.0-0.03731*cosn+0.00052*cos2n, 2) +
			math.Pow(0.03731*sinn-0.00052*sin2n, 2))
		u = Rad2Deg(math.Atan2(-(0.03731*sinn - 0.00052*sin2n), 1.0-0.03731*cosn+0.00052*cos2n))
		return f, u
	case "l2":
		tmp1 := 1.0 - 0.25*math.Cos(2.0*Deg2Rad(a.p)) -
			0.11*math.Cos(Deg2Rad(2.0*a.p-a.n)) - 0.04*cosn
		tmp2 := 0.25*math.Sin(2.0*Deg2Rad(a.p)) +
			0.11*math.Sin(Deg2Rad(2.0*a.p-a.n)) + 0.04*sinn
		return math.Sqrt(tmp1*tmp1 + tmp2*tmp2), Rad2Deg(math.Atan2(-tmp2, tmp1))
	case "k2":
		f = math.Sqrt(math.Pow(1.0+0.2852*cosn+0.0324*cos2n, 2) +
			math.Pow(0.3108*sinn+0.0324*sin2n, 2))
		u = Rad2Deg(math.Atan2(-(0.3108*sinn + 0.0324*sin2n), 1.0+0.2852*cosn+0.0324*cos2n))
		return f, u
	case "m4", "mn4":
		fm2, um2 := schuremanFactors("m2", a)
		return fm2 * fm2, 2.0 * um2
	case "m6":
		fm2, um2 := schuremanFactors("m2", a)
		return fm2 * fm2 * fm2, 3.0 * um2
	case "m8":
		fm2, um2 := schuremanFactors("m2", a)
		return math.Pow(fm2, 4), 4.0 * um2
	case "ms4":
		return schuremanFactors("m2", a)
	case "mk3":
		fm2, um2 := schuremanFactors("m2", a)
		fk1, uk1 := schuremanFactors("k1", a)
		return fm2 * fk1, um2 + uk1
	case "2mk3":
		fm2, um2 := schuremanFactors("m2", a)
		fk1, uk1 := schuremanFactors("k1", a)
		return fm2 * fm2 * fk1, 2.0*um2 - uk1
	case "2sm2":
		fm2, um2 := schuremanFactors("m2", a)
		return fm2, -um2
	default:
		return 1.0, 0.0
	}
}

// gotFactors returns the simplified sinusoidal nodal factors used by the
// GSFC GOT solutions. Constituents outside the GOT set get identity.
func gotFactors(name string, a astroAngles) (f, u float64) {
	sinn := math.Sin(Deg2Rad(a.n))
	cosn := math.Cos(Deg2Rad(a.n))
	cos2n := math.Cos(2.0 * Deg2Rad(a.n))

	switch name {
	case "q1", "o1":
		return 1.009 + 0.187*cosn - 0.015*cos2n, 10.8 * sinn
	case "k1":
		return 1.006 + 0.115*cosn - 0.009*cos2n, -8.9 * sinn
	case "n2", "m2":
		return 1.000 - 0.037*cosn, -2.1 * sinn
	case "k2":
		return 1.024 + 0.286*cosn + 0.008*cos2n, -17.7 * sinn
	case "m4":
		fm2 := 1.000 - 0.037*cosn
		return fm2 * fm2, -4.2 * sinn
	default:
		return 1.0, 0.0
	}
}

// NodalCorrections computes, for each time (Modified Julian Date) and each
// constituent, the nodal phase offset pu (radians), the nodal amplitude
// factor pf, and the Greenwich equilibrium argument arg (degrees). The
// ephemeris offset deltaT (days) is applied to the astronomical longitudes
// only. Output slices are shaped [len(mjd)][len(constituents)].
func NodalCorrections(mjd []float64, constituents []string, deltaT float64, conv Convention) (pu, pf, arg [][]float64) {
	nt := len(mjd)
	nc := len(constituents)
	pu = make([][]float64, nt)
	pf = make([][]float64, nt)
	arg = make([][]float64, nt)
	for i, t := range mjd {
		pu[i] = make([]float64, nc)
		pf[i] = make([]float64, nc)
		arg[i] = make([]float64, nc)
		a := anglesAt(t, deltaT)
		for k, name := range constituents {
			id := normalizeConstituentID(name)
			var f, u float64
			if conv.usesEquilibriumArgument() {
				f, u = gotFactors(id, a)
			} else {
				f, u = schuremanFactors(id, a)
			}
			pu[i][k] = Deg2Rad(u)
			pf[i][k] = f
			arg[i][k] = equilibriumArgument(id, a)
		}
	}
	return pu, pf, arg
}
