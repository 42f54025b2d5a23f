package bessel

import (
	"math"
)

const (
	// smallX is the argument below which the power series is used.
	smallX = 1e-3

	// Miller's recurrence grows towards low orders; values are rescaled
	// before they leave the float64 range.
	rescaleAbove = 1e200
	rescaleBy    = 1e-200
)

// Jl returns the spherical Bessel function j_l(x).
// Returns NaN for l < 0, x < 0 or x = NaN.
func Jl(l int, x float64) float64 {
	switch {
	case l < 0 || x < 0 || math.IsNaN(x):
		return math.NaN()
	case x == 0:
		if l == 0 {
			return 1
		}
		return 0
	case x < smallX:
		return series(l, x)
	case float64(l) < x:
		return upward(l, x)
	default:
		return miller(l, x)
	}
}

// Array fills dst with j_0(x) .. j_lmax(x) and returns it.
// dst is reallocated when its capacity is below lmax+1.
// Returns nil for lmax < 0, x < 0 or x = NaN.
func Array(lmax int, x float64, dst []float64) []float64 {
	if lmax < 0 || x < 0 || math.IsNaN(x) {
		return nil
	}
	if cap(dst) < lmax+1 {
		dst = make([]float64, lmax+1)
	}
	dst = dst[:lmax+1]

	switch {
	case x == 0:
		clear(dst)
		dst[0] = 1
	case x < smallX:
		for l := range dst {
			dst[l] = series(l, x)
		}
	case float64(lmax) < x:
		upwardArray(x, dst)
	default:
		millerArray(x, dst)
	}
	return dst
}

// lnDoubleFactorial returns ln((2l+1)!!).
func lnDoubleFactorial(l int) float64 {
	a, _ := math.Lgamma(float64(2*l + 2))
	b, _ := math.Lgamma(float64(l + 1))
	return a - b - float64(l)*math.Ln2
}

// series evaluates the expansion
//
//	j_l(x) = x^l/(2l+1)!! * (1 - t/(2l+3) + t^2/(2(2l+3)(2l+5)) - ...),  t = x^2/2
//
// which is exact to double precision for x < smallX.
func series(l int, x float64) float64 {
	t := 0.5 * x * x
	a := float64(2*l + 3)
	b := float64(2*l + 5)
	c := float64(2*l + 7)
	s := 1 - t/a*(1-t/(2*b)*(1-t/(3*c)))
	if l == 0 {
		return s
	}
	return math.Exp(float64(l)*math.Log(x)-lnDoubleFactorial(l)) * s
}

func lowOrders(x float64) (j0, j1 float64) {
	s, c := math.Sincos(x)
	j0 = s / x
	j1 = (j0 - c) / x
	return j0, j1
}

func upward(l int, x float64) float64 {
	j0, j1 := lowOrders(x)
	if l == 0 {
		return j0
	}
	for n := 1; n < l; n++ {
		j0, j1 = j1, float64(2*n+1)/x*j1-j0
	}
	return j1
}

func upwardArray(x float64, dst []float64) {
	j0, j1 := lowOrders(x)
	dst[0] = j0
	if len(dst) == 1 {
		return
	}
	dst[1] = j1
	for n := 1; n+1 < len(dst); n++ {
		dst[n+1] = float64(2*n+1)/x*dst[n] - dst[n-1]
	}
}

// millerStart returns the order at which the downward recurrence starts.
// The minimal solution has decayed far below double precision there.
func millerStart(l int, x float64) int {
	n := max(l, int(x))
	return n + 10 + int(math.Sqrt(40*float64(n+1)))
}

// normalise returns the factor mapping the unnormalised recurrence values
// f0, f1 onto j_0, j_1. The larger of the two true values is used so that
// arguments near a zero of j_0 stay well conditioned.
func normalise(x, f0, f1 float64) float64 {
	j0, j1 := lowOrders(x)
	if math.Abs(j0) >= math.Abs(j1) {
		return j0 / f0
	}
	return j1 / f1
}

func miller(l int, x float64) float64 {
	next, cur := 0.0, 1.0
	var fl float64
	for n := millerStart(l, x); n > 0; n-- {
		next, cur = cur, float64(2*n+1)/x*cur-next
		if n-1 == l {
			fl = cur
		}
		if math.Abs(cur) > rescaleAbove {
			cur *= rescaleBy
			next *= rescaleBy
			fl *= rescaleBy
		}
	}
	return fl * normalise(x, cur, next)
}

func millerArray(x float64, dst []float64) {
	lmax := len(dst) - 1
	next, cur := 0.0, 1.0
	for n := millerStart(lmax, x); n > 0; n-- {
		next, cur = cur, float64(2*n+1)/x*cur-next
		if n-1 <= lmax {
			dst[n-1] = cur
		}
		if math.Abs(cur) > rescaleAbove {
			cur *= rescaleBy
			next *= rescaleBy
			for i := n - 1; i <= lmax; i++ {
				dst[i] *= rescaleBy
			}
		}
	}
	scale := normalise(x, cur, next)
	for i := range dst {
		dst[i] *= scale
	}
}
