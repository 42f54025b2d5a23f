package projection

import (
	"math"

	"github.com/cwbudde/algo-bessel2/numeric/spline"
	"github.com/cwbudde/algo-vecmath"
)

// Slot is one sparsely stored function: the samples on the contiguous
// range of grid nodes where it exceeds its cutoff, with the natural spline
// second derivatives of those samples. Outside the range the function is
// zero.
type Slot struct {
	indexXMin int
	xMin      float64
	values    []float64
	dd        []float64
}

// emptySlot is a function that is negligible on the whole grid. Its
// accessors report the legacy sentinels xx_size-1 and xx_max.
func emptySlot(g *Grid) Slot {
	return Slot{indexXMin: g.Size() - 1, xMin: g.Max()}
}

// Empty reports whether the function is negligible everywhere.
func (s *Slot) Empty() bool { return len(s.values) == 0 }

// IndexXMin returns the grid index of the first stored sample.
func (s *Slot) IndexXMin() int { return s.indexXMin }

// XMin returns the abscissa of the first stored sample.
func (s *Slot) XMin() float64 { return s.xMin }

// XSize returns the number of stored samples. An empty slot reports 1.
func (s *Slot) XSize() int {
	if s.Empty() {
		return 1
	}
	return len(s.values)
}

// Values returns the stored samples. The slice must not be modified.
func (s *Slot) Values() []float64 { return s.values }

// SecondDerivatives returns the spline second derivatives of Values.
func (s *Slot) SecondDerivatives() []float64 { return s.dd }

// Peak returns max |f| over the stored samples.
func (s *Slot) Peak() float64 {
	if s.Empty() {
		return 0
	}
	return vecmath.MaxAbs(s.values)
}

// doubles is the number of float64 held by the slot.
func (s *Slot) doubles() int64 { return int64(len(s.values) + len(s.dd)) }

// at returns the sample at grid node i, zero outside the stored range.
func (s *Slot) at(i int) float64 {
	k := i - s.indexXMin
	if s.Empty() || k < 0 || k >= len(s.values) {
		return 0
	}
	return s.values[k]
}

// eval interpolates the slot at x >= 0. Points below the first or beyond
// the last stored node are zero.
func (s *Slot) eval(step, x float64, linear bool) float64 {
	if s.Empty() {
		return 0
	}
	pos := x/step - float64(s.indexXMin)
	last := float64(len(s.values) - 1)
	switch {
	case pos < -gridEps || pos > last+gridEps:
		return 0
	case pos < 0:
		pos = 0
	case pos > last:
		pos = last
	}
	if linear || len(s.values) == 1 {
		return spline.Linear(s.values, pos)
	}
	return spline.At(s.values, s.dd, step, pos)
}

// sampler returns f at grid node i together with a bound on |f| that
// decreases monotonically towards x = 0 below the scan floor.
type sampler func(i int) (value, bound float64)

// compact samples a function from the top of the grid downward and keeps
// the interval between the first and the last node where |f| > cut.
// Below floor the bound is monotonic, so the scan stops at the first node
// there whose bound does not exceed cut. buf must hold g.Size() values.
func compact(g *Grid, cut float64, floor int, f sampler, buf []float64) (Slot, error) {
	lo, hi := -1, -1
	for i := g.Size() - 1; i >= 0; i-- {
		v, bound := f(i)
		if math.IsNaN(v) {
			return Slot{}, domainError("compact", "non-finite sample at x=%g", g.X(i))
		}
		buf[i] = v
		if math.Abs(v) > cut {
			if hi < 0 {
				hi = i
			}
			lo = i
			continue
		}
		if i < floor && bound <= cut {
			break
		}
	}
	if hi < 0 {
		return emptySlot(g), nil
	}

	values := make([]float64, hi-lo+1)
	copy(values, buf[lo:hi+1])
	dd, err := spline.SecondDerivatives(values, g.step, nil)
	if err != nil {
		return Slot{}, err
	}
	return Slot{indexXMin: lo, xMin: g.X(lo), values: values, dd: dd}, nil
}
