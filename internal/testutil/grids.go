package testutil

import "math"

// Linspace returns n points evenly spaced over [a, b], both ends included.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = a
		return out
	}
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + step*float64(i)
	}
	out[n-1] = b
	return out
}

// Geomspace returns n points spaced evenly in log over [a, b], a and b > 0.
func Geomspace(a, b float64, n int) []float64 {
	out := Linspace(0, 1, n)
	ratio := b / a
	for i, t := range out {
		out[i] = a * math.Pow(ratio, t)
	}
	if n > 0 {
		out[n-1] = b
	}
	return out
}

// Const returns a slice of length n filled with value.
func Const(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
