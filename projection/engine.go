package projection

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-bessel2/special/bessel"
	"github.com/cwbudde/algo-bessel2/special/wigner"
	"github.com/cwbudde/algo-vecmath"
)

// Workspace holds everything needed to sum one projection function over
// l1. It belongs to a single call and is never shared.
type Workspace struct {
	Kind    Kind
	L, l, m int

	// L1 lists the admissible l1 with a non-zero coefficient, ascending.
	L1 []int
	// L1Min, L1Max and L1Size describe L1; IndexL1Min is the position of
	// L1Min in the l1-list.
	L1Min, L1Max, L1Size, IndexL1Min int

	// First and Second are the 3j-symbols (l l1 L; a 0 -a) with a = 0 or 2,
	// and (l l1 L; -m 0 m), one entry per element of L1.
	First, Second []float64
	// Coeff folds the phase, (2l1+1), the normalisation and both symbols.
	Coeff []float64

	// Bessels is x-major: Bessels[i*L1Size+k] = j_{L1[k]}(xx[i]).
	Bessels []float64

	absCoeff []float64
}

// Admissible reports whether the selection rules leave at least one l1
// for (kind, L, l, m). Combinations that fail are identically zero.
func Admissible(kind Kind, L, l, m int) bool {
	if L < 0 || l < 0 || abs(m) > l || abs(m) > L {
		return false
	}
	switch kind {
	case TT:
		return true
	case EE:
		return l >= 2 && L >= 2
	case EB:
		// (l l1 L; 0 0 0) vanishes for odd l+l1+L
		return l >= 2 && L >= 2 && m != 0
	}
	return false
}

// coefficients fills the l1 range and weights of ws for (kind, L, l, m).
//
//	J_Llm(x) = (-1)^m (2L+1) sum_l1 s(l1) (2l1+1) j_l1(x) 3j_1 3j_2
//
// with s = (-1)^((L+l-l1)/2) for even parity and (-1)^((L+l-l1-1)/2) for EB.
func (ws *Workspace) coefficients(kind Kind, L, l, m int) error {
	*ws = Workspace{Kind: kind, L: L, l: l, m: m, Bessels: ws.Bessels[:0]}
	if !Admissible(kind, L, l, m) {
		return ErrNoAdmissibleL1
	}

	a := kind.spin()
	// (l1 l L; 0 a -a) and (l1 l L; 0 -m m); both start at |l-L|.
	jmin, f1, err := wigner.Family(l, L, a, -a, nil)
	if err != nil {
		return newError(KindConfig, "Prepare", err, "first 3j family")
	}
	_, f2, err := wigner.Family(l, L, -m, m, nil)
	if err != nil {
		return newError(KindConfig, "Prepare", err, "second 3j family")
	}

	norm := float64(2*L + 1)
	if m%2 != 0 {
		norm = -norm
	}
	odd := 0
	if kind.oddParity() {
		odd = 1
	}

	for k := range f1 {
		l1 := jmin + k
		if (l+l1+L)%2 != odd {
			continue
		}
		// Moving l1 to the second column costs (-1)^(l+l1+L) in each
		// symbol, so the product is unchanged.
		sign := phase(l + l1 + L)
		t1, t2 := sign*f1[k], sign*f2[k]
		c := norm * phase((L+l-l1-odd)/2) * float64(2*l1+1) * t1 * t2
		if c == 0 {
			continue
		}
		ws.L1 = append(ws.L1, l1)
		ws.First = append(ws.First, t1)
		ws.Second = append(ws.Second, t2)
		ws.Coeff = append(ws.Coeff, c)
	}
	if len(ws.L1) == 0 {
		return ErrNoAdmissibleL1
	}
	ws.L1Size = len(ws.L1)
	ws.L1Min = ws.L1[0]
	ws.L1Max = ws.L1[ws.L1Size-1]
	ws.absCoeff = make([]float64, ws.L1Size)
	for k, c := range ws.Coeff {
		ws.absCoeff[k] = max(c, -c)
	}
	return nil
}

// Prepare fills ws for (kind, L, l, m): the admissible l1, both 3j arrays,
// the coefficients and the Bessel samples of every l1 on the grid, read
// from the Bessel table. It returns ErrNoAdmissibleL1 when the function is
// identically zero and a configuration error when an admissible l1 is not
// in the l1-list.
func (t *Tables) Prepare(ws *Workspace, kind Kind, L, l, m int) error {
	if err := t.live("Prepare"); err != nil {
		return err
	}
	if err := ws.coefficients(kind, L, l, m); err != nil {
		return err
	}
	idx := make([]int, ws.L1Size)
	for k, l1 := range ws.L1 {
		i, ok := t.l1.Index(l1)
		if !ok {
			return configError("Prepare", "l1=%d needed by %s L=%d l=%d m=%d is not in the l1-list", l1, kind, L, l, m)
		}
		idx[k] = i
	}
	ws.IndexL1Min = idx[0]

	n := t.grid.Size()
	size := n * ws.L1Size
	if cap(ws.Bessels) < size {
		ws.Bessels = make([]float64, size)
	}
	ws.Bessels = ws.Bessels[:size]
	clear(ws.Bessels)
	for k, i := range idx {
		s := &t.bessel[i]
		if s.Empty() {
			continue
		}
		for j, v := range s.values {
			ws.Bessels[(s.indexXMin+j)*ws.L1Size+k] = v
		}
	}
	return nil
}

// Sum returns J at grid node i from a prepared workspace.
func (ws *Workspace) Sum(i int) float64 {
	row := ws.Bessels[i*ws.L1Size : (i+1)*ws.L1Size]
	return vecmath.DotProduct(row, ws.Coeff)
}

// bound returns sum |c| |j_l1(xx[i])|, which dominates |J| at node i.
func (ws *Workspace) bound(i int) float64 {
	row := ws.Bessels[i*ws.L1Size : (i+1)*ws.L1Size]
	b := 0.0
	for k, v := range row {
		b += ws.absCoeff[k] * max(v, -v)
	}
	return b
}

// Direct evaluates J_Llm(x) by explicit summation with freshly computed
// Bessel functions. It needs no tables and serves as a reference.
func Direct(kind Kind, L, l, m int, x float64) (float64, error) {
	if x < 0 || math.IsNaN(x) {
		return 0, domainError("Direct", "x=%g outside [0, inf)", x)
	}
	var ws Workspace
	if err := ws.coefficients(kind, L, l, m); err != nil {
		if errors.Is(err, ErrNoAdmissibleL1) {
			return 0, nil
		}
		return 0, err
	}
	js := bessel.Array(ws.L1Max, x, nil)
	sum := 0.0
	for k, l1 := range ws.L1 {
		sum += ws.Coeff[k] * js[l1]
	}
	return sum, nil
}

func phase(n int) float64 {
	if n%2 != 0 {
		return -1
	}
	return 1
}
