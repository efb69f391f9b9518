// Package atlas reads OTIS/ATLAS-format NetCDF tidal solutions: a grid
// file holding node coordinates and bathymetry, plus one file per
// constituent holding the complex elevation or transport field. Files may
// be gzip-compressed.
package atlas

import "fmt"

// Variable identifies the tidal quantity being extracted. The atlas
// stores elevations at z-nodes and the two transport components at u- and
// v-nodes, each with their own coordinate grids.
type Variable string

const (
	// VarZ is tidal elevation at z-nodes.
	VarZ Variable = "z"
	// VarU is horizontal transport velocity at u-nodes (cm/s).
	VarU Variable = "u"
	// VarUbar is depth-averaged horizontal transport at u-nodes (m^2/s).
	VarUbar Variable = "U"
	// VarV is vertical transport velocity at v-nodes (cm/s).
	VarV Variable = "v"
	// VarVbar is depth-averaged vertical transport at v-nodes (m^2/s).
	VarVbar Variable = "V"
)

// ParseVariable validates a variable-type string. Unsupported types are
// rejected before any file I/O happens.
func ParseVariable(s string) (Variable, error) {
	switch Variable(s) {
	case VarZ, VarU, VarUbar, VarV, VarVbar:
		return Variable(s), nil
	default:
		return "", fmt.Errorf("unsupported variable type %q (use z, u, U, v or V)", s)
	}
}

// IsVelocity reports whether this variable needs division by local depth
// to convert transport units to a velocity.
func (v Variable) IsVelocity() bool {
	return v == VarU || v == VarV
}

// node returns the grid node family the variable lives on.
func (v Variable) node() string {
	switch v {
	case VarU, VarUbar:
		return "u"
	case VarV, VarVbar:
		return "v"
	default:
		return "z"
	}
}
