// Package spline provides natural cubic-spline interpolation on uniformly
// spaced samples.
//
// The table form separates the setup cost from evaluation: second
// derivatives are computed once with [SecondDerivatives] and stored next to
// the samples, after which [At] interpolates at any fractional node position
// in O(1).
//
//	dd, err := spline.SecondDerivatives(y, h, nil)
//	v := spline.At(y, dd, h, 12.25) // between nodes 12 and 13
//
// [Linear] is the cheaper two-point fallback using the same addressing.
package spline
