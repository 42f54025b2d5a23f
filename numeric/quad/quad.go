// Package quad provides trapezoidal quadrature on non-uniform grids.
//
// Weights follow the convention
//
//	delta[0]   = x[1] - x[0]
//	delta[i]   = x[i+1] - x[i-1]
//	delta[n-1] = x[n-1] - x[n-2]
//
// so that the trapezoidal integral is 0.5 * sum(delta[i] * f[i]).
package quad

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrTooShort indicates a grid with fewer than two points.
	ErrTooShort = errors.New("quad: grid needs at least two points")
	// ErrNotIncreasing indicates a grid that is not strictly increasing.
	ErrNotIncreasing = errors.New("quad: grid not strictly increasing")
	// ErrLengthMismatch indicates weights and samples of different length.
	ErrLengthMismatch = errors.New("quad: length mismatch")
)

// TrapezoidWeights returns the weights delta for the grid x.
func TrapezoidWeights(x []float64) ([]float64, error) {
	n := len(x)
	if n < 2 {
		return nil, ErrTooShort
	}
	for i := 1; i < n; i++ {
		if !(x[i] > x[i-1]) {
			return nil, ErrNotIncreasing
		}
	}
	delta := make([]float64, n)
	delta[0] = x[1] - x[0]
	for i := 1; i < n-1; i++ {
		delta[i] = x[i+1] - x[i-1]
	}
	delta[n-1] = x[n-1] - x[n-2]
	return delta, nil
}

// Sum returns 0.5 * sum(delta[i] * f[i]).
func Sum(delta, f []float64) (float64, error) {
	if len(delta) != len(f) {
		return 0, ErrLengthMismatch
	}
	return 0.5 * vecmath.DotProduct(delta, f), nil
}

// Integrate applies the trapezoidal rule to samples f on the grid x.
func Integrate(x, f []float64) (float64, error) {
	delta, err := TrapezoidWeights(x)
	if err != nil {
		return 0, err
	}
	return Sum(delta, f)
}
