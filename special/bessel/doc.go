// Package bessel evaluates spherical Bessel functions of the first kind,
//
//	j_l(x) = sqrt(pi/(2x)) J_{l+1/2}(x),
//
// for integer orders l >= 0 and real arguments x >= 0.
//
// Three regimes are used:
//
//   - x < 1e-3: leading terms of the power series around the origin
//   - x > l:    upward recurrence from j_0 and j_1, stable above the turning point
//   - x <= l:   Miller's downward recurrence, normalised against j_0 or j_1
//
// # Usage
//
//	v := bessel.Jl(10, 25.0)
//
// When many orders are needed at the same argument, [Array] computes
// j_0 .. j_lmax in a single recurrence:
//
//	js := bessel.Array(50, 25.0, nil)
package bessel
