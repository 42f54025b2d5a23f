package projection

import (
	"github.com/cwbudde/algo-bessel2/numeric/quad"
	"github.com/cwbudde/algo-vecmath"
)

// Convolve approximates
//
//	int f(k) g(k) j_l(k r) dk  ~  1/2 sum_i deltaKK[i] f[i] g[i] j_l(kk[i] r)
//
// with j_l interpolated from the Bessel table. deltaKK holds the trapezoid
// weights kk[i+1]-kk[i-1], see quad.TrapezoidWeights. l must be a member of
// the l1-list and every kk[i]*r must lie on the grid.
func (t *Tables) Convolve(kk, deltaKK, f, g []float64, l int, r float64) (float64, error) {
	if err := t.live("Convolve"); err != nil {
		return 0, err
	}
	index, ok := t.l1.Index(l)
	if !ok {
		return 0, configError("Convolve", "l=%d is not in the l1-list", l)
	}
	return t.convolve("Convolve", &t.bessel[index], kk, deltaKK, f, g, r)
}

// ConvolveJ is Convolve with the projection function at
// (kind, iL, il, im) as kernel.
func (t *Tables) ConvolveJ(kind Kind, iL, il, im int, kk, deltaKK, f, g []float64, r float64) (float64, error) {
	s, err := t.slot("ConvolveJ", kind, iL, il, im)
	if err != nil {
		return 0, err
	}
	return t.convolve("ConvolveJ", s, kk, deltaKK, f, g, r)
}

func (t *Tables) convolve(op string, s *Slot, kk, deltaKK, f, g []float64, r float64) (float64, error) {
	n := len(kk)
	if n == 0 || len(deltaKK) != n || len(f) != n || len(g) != n {
		return 0, domainError(op, "kk, deltaKK, f and g must have the same non-zero length")
	}
	integrand := make([]float64, n)
	for i, k := range kk {
		x := k * r
		if err := t.checkX(op, x); err != nil {
			return 0, err
		}
		integrand[i] = s.eval(t.grid.step, x, false)
	}
	product := make([]float64, n)
	vecmath.MulBlock(product, f, g)
	vecmath.MulBlockInPlace(integrand, product)
	return quad.Sum(deltaKK, integrand)
}
