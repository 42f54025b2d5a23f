package spline

import (
	"errors"
	"math"
)

var (
	// ErrEmpty indicates an empty sample slice.
	ErrEmpty = errors.New("spline: empty samples")
	// ErrInvalidStep indicates a non-positive node spacing.
	ErrInvalidStep = errors.New("spline: invalid step")
)

// SecondDerivatives returns the second derivatives of the natural cubic
// spline through y, sampled with spacing h. The end values are zero.
// dst is reused when its capacity suffices.
func SecondDerivatives(y []float64, h float64, dst []float64) ([]float64, error) {
	n := len(y)
	if n == 0 {
		return nil, ErrEmpty
	}
	if !(h > 0) {
		return nil, ErrInvalidStep
	}
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dd := dst[:n]
	clear(dd)
	if n < 3 {
		return dd, nil
	}

	// Uniform spacing turns the spline system into
	//   dd[i-1] + 4 dd[i] + dd[i+1] = 6 (y[i+1] - 2y[i] + y[i-1]) / h^2
	// for the interior nodes. Forward elimination keeps the modified
	// diagonal in tmp, back substitution runs in place.
	m := n - 2
	tmp := make([]float64, m)
	scale := 6 / (h * h)
	beta := 4.0
	dd[1] = scale * (y[2] - 2*y[1] + y[0]) / beta
	for i := 1; i < m; i++ {
		tmp[i] = 1 / beta
		beta = 4 - tmp[i]
		r := scale * (y[i+2] - 2*y[i+1] + y[i])
		dd[i+1] = (r - dd[i]) / beta
	}
	for i := m - 2; i >= 0; i-- {
		dd[i+1] -= tmp[i+1] * dd[i+2]
	}
	return dd, nil
}

// node splits a fractional position into the left node index and the
// weights of the left and right node. Positions outside [0, n-1] are
// clamped to the first or last interval.
func node(n int, pos float64) (i int, a, b float64) {
	i = int(math.Floor(pos))
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	b = pos - float64(i)
	a = 1 - b
	return i, a, b
}

// At evaluates the spline through y with second derivatives dd at the
// fractional node position pos (x = x0 + pos*h).
func At(y, dd []float64, h, pos float64) float64 {
	n := len(y)
	switch n {
	case 0:
		return 0
	case 1:
		return y[0]
	}
	i, a, b := node(n, pos)
	return a*y[i] + b*y[i+1] + ((a*a*a-a)*dd[i]+(b*b*b-b)*dd[i+1])*h*h/6
}

// Derivative evaluates the first derivative d/dx of the spline at pos.
func Derivative(y, dd []float64, h, pos float64) float64 {
	n := len(y)
	if n < 2 {
		return 0
	}
	i, a, b := node(n, pos)
	return (y[i+1]-y[i])/h - (3*a*a-1)*h/6*dd[i] + (3*b*b-1)*h/6*dd[i+1]
}

// Linear interpolates y linearly at the fractional node position pos.
func Linear(y []float64, pos float64) float64 {
	n := len(y)
	switch n {
	case 0:
		return 0
	case 1:
		return y[0]
	}
	i, a, b := node(n, pos)
	return a*y[i] + b*y[i+1]
}
