// Package wigner computes Wigner 3j-symbols
//
//	( j1 j2 j3 )
//	( m1 m2 m3 )
//
// for integer angular momenta. Whole families over j1 at fixed
// (j2, j3, m2, m3) come from the Schulten–Gordon three-term recurrence,
// run forward through the classically forbidden region at low j1 and
// backward from j1 = j2 + j3, spliced where the forward solution stops
// growing.
package wigner

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidArgument is returned for negative momenta or |m| > j.
var ErrInvalidArgument = errors.New("wigner: invalid angular momenta")

const (
	rescaleAbove = 1e150
	rescaleBy    = 1e-150
)

// Family returns the symbols (j1 j2 j3; m1 m2 m3) with m1 = -m2-m3 for
// every j1 from j1min = max(|j2-j3|, |m1|) to j2+j3. vals[i] belongs to
// j1 = j1min+i. dst is reused when its capacity suffices.
func Family(j2, j3, m2, m3 int, dst []float64) (j1min int, vals []float64, err error) {
	if j2 < 0 || j3 < 0 || abs(m2) > j2 || abs(m3) > j3 {
		return 0, nil, ErrInvalidArgument
	}
	m1 := -m2 - m3
	jmin := max(abs(j2-j3), abs(m1))
	jmax := j2 + j3
	n := jmax - jmin + 1

	if cap(dst) < n {
		dst = make([]float64, n)
	}
	f := dst[:n]

	if n == 1 {
		f[0] = phase(j2-j3-m1) / math.Sqrt(float64(2*jmax+1))
		return jmin, f, nil
	}

	r := recurrence{j2: j2, j3: j3, m1: m1, m2: m2, m3: m3}

	var (
		g        []float64
		splice   int
		computed int
		stop     int
	)
	if jmin > 0 {
		g, splice, computed = r.forward(jmin, n)
		stop = max(0, splice-1)
	}

	r.backward(f, jmin, jmax, stop)

	if g != nil {
		hi := min(splice+1, computed-1, n-1)
		var num, den float64
		for i := stop; i <= hi; i++ {
			num += f[i] * g[i]
			den += g[i] * g[i]
		}
		lambda := num / den
		for i := 0; i <= splice; i++ {
			f[i] = lambda * g[i]
		}
	}

	norm := 0.0
	for i, v := range f {
		norm += float64(2*(jmin+i)+1) * v * v
	}
	c := 1 / math.Sqrt(norm)
	if (f[n-1] < 0) != (phase(j2-j3-m1) < 0) {
		c = -c
	}
	vecmath.ScaleBlockInPlace(f, c)
	return jmin, f, nil
}

// Symbol returns a single 3j-symbol. Symbols violating the selection rules
// (projection sum, triangle, |m| <= j) are zero.
func Symbol(j1, j2, j3, m1, m2, m3 int) float64 {
	if m1+m2+m3 != 0 || j1 < 0 || abs(m1) > j1 {
		return 0
	}
	if j1 < abs(j2-j3) || j1 > j2+j3 {
		return 0
	}
	jmin, vals, err := Family(j2, j3, m2, m3, nil)
	if err != nil || j1 < jmin {
		return 0
	}
	return vals[j1-jmin]
}

// Zero returns (a b c; 0 0 0) from its closed form. It vanishes unless
// a+b+c is even and the triangle condition holds.
func Zero(a, b, c int) float64 {
	if a < 0 || b < 0 || c < 0 {
		return 0
	}
	if c < abs(a-b) || c > a+b {
		return 0
	}
	j := a + b + c
	if j%2 != 0 {
		return 0
	}
	g := j / 2
	lnDelta := lnFact(j-2*a) + lnFact(j-2*b) + lnFact(j-2*c) - lnFact(j+1)
	ln := 0.5*lnDelta + lnFact(g) - lnFact(g-a) - lnFact(g-b) - lnFact(g-c)
	return phase(g) * math.Exp(ln)
}

type recurrence struct {
	j2, j3     int
	m1, m2, m3 int
}

func (r recurrence) a(j int) float64 {
	jf := float64(j)
	d := float64(r.j2 - r.j3)
	s := float64(r.j2 + r.j3 + 1)
	m := float64(r.m1)
	return math.Sqrt((jf*jf - d*d) * (s*s - jf*jf) * (jf*jf - m*m))
}

func (r recurrence) b(j int) float64 {
	jf := float64(j)
	c := float64(r.j2*(r.j2+1) - r.j3*(r.j3+1))
	return -(2*jf + 1) * (c*float64(r.m1) - jf*(jf+1)*float64(r.m3-r.m2))
}

// x and z are the coefficients of f(j+1) and f(j-1):
//
//	x(j) f(j+1) + b(j) f(j) + z(j) f(j-1) = 0
func (r recurrence) x(j int) float64 { return float64(j) * r.a(j+1) }
func (r recurrence) z(j int) float64 { return float64(j+1) * r.a(j) }

// forward runs the recurrence upward from jmin while the solution grows.
// It returns the unnormalised values, the index of the last growing point
// and the number of computed entries.
func (r recurrence) forward(jmin, n int) (g []float64, splice, computed int) {
	g = make([]float64, n)
	g[0] = 1
	g[1] = -r.b(jmin) / r.x(jmin)
	computed = 2
	if math.Abs(g[1]) <= math.Abs(g[0]) {
		return g, 0, computed
	}
	k := 1
	for k+1 < n {
		j := jmin + k
		g[k+1] = -(r.b(j)*g[k] + r.z(j)*g[k-1]) / r.x(j)
		computed = k + 2
		if math.Abs(g[k+1]) <= math.Abs(g[k]) {
			break
		}
		k++
		if math.Abs(g[k]) > rescaleAbove {
			for i := 0; i <= k; i++ {
				g[i] *= rescaleBy
			}
		}
	}
	return g, k, computed
}

// backward fills f from j = jmax down to index stop, starting from
// f(jmax) = 1. x(jmax) vanishes, so one seed value suffices.
func (r recurrence) backward(f []float64, jmin, jmax, stop int) {
	n := len(f)
	f[n-1] = 1
	f[n-2] = -r.b(jmax) / r.z(jmax)
	for j := jmax - 1; j-jmin-1 >= stop; j-- {
		lo := j - 1 - jmin
		f[lo] = -(r.x(j)*f[j+1-jmin] + r.b(j)*f[j-jmin]) / r.z(j)
		if math.Abs(f[lo]) > rescaleAbove {
			for i := lo; i < n; i++ {
				f[i] *= rescaleBy
			}
		}
	}
}

func lnFact(n int) float64 {
	v, _ := math.Lgamma(float64(n + 1))
	return v
}

func phase(n int) float64 {
	if n%2 != 0 {
		return -1
	}
	return 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
