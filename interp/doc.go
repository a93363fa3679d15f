// Package interp combines labeled records: 1D linear interpolation between
// two records along a named axis, and cubic inverse-distance weighting.
package interp
