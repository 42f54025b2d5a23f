package projection

import (
	"math"
	"slices"
)

// gridEps absorbs rounding when x/step lands a hair off a node.
const gridEps = 1e-9

// Grid is the uniform sampling grid xx[i] = i*step on [0, max].
type Grid struct {
	x    []float64
	step float64
}

// NewGrid builds the grid for [0, xmax] with spacing step. A xmax that is
// not a multiple of step is rounded up to the next multiple.
func NewGrid(xmax, step float64) (*Grid, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, configError("NewGrid", "step must be positive, got %g", step)
	}
	if !(xmax > 0) || math.IsInf(xmax, 0) {
		return nil, configError("NewGrid", "xmax must be positive, got %g", xmax)
	}
	n := int(math.Ceil(xmax/step-gridEps)) + 1
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * step
	}
	return &Grid{x: x, step: step}, nil
}

// Size returns the number of nodes.
func (g *Grid) Size() int { return len(g.x) }

// Step returns the node spacing.
func (g *Grid) Step() float64 { return g.step }

// Max returns the last node.
func (g *Grid) Max() float64 { return g.x[len(g.x)-1] }

// X returns node i.
func (g *Grid) X(i int) float64 { return g.x[i] }

// Values returns the nodes. The slice must not be modified.
func (g *Grid) Values() []float64 { return g.x }

// contains reports whether x lies in [0, Max], allowing for rounding.
func (g *Grid) contains(x float64) bool {
	return x >= 0 && x <= g.Max()+gridEps*g.step
}

// L1List is the sorted set of auxiliary multipoles l1 for which j_l1 is
// tabulated.
type L1List struct {
	values []int
	index  []int // index[l1] is the position of l1 or -1
}

// NewL1List returns the union of [max(0, l-w), l+w] over the primary
// multipoles, with w = lmax, or lmax+max(ms) when extend is set.
func NewL1List(multipoles []int, lmax int, ms []int, extend bool) (*L1List, error) {
	if len(multipoles) == 0 {
		return nil, configError("NewL1List", "no primary multipoles")
	}
	if lmax < 0 {
		return nil, configError("NewL1List", "l_max must be non-negative, got %d", lmax)
	}
	w := lmax
	if extend {
		for _, m := range ms {
			w = max(w, lmax+abs(m))
		}
	}

	top := 0
	for _, l := range multipoles {
		if l < 0 {
			return nil, configError("NewL1List", "negative multipole %d", l)
		}
		top = max(top, l+w)
	}
	member := make([]bool, top+1)
	for _, l := range multipoles {
		for l1 := max(0, l-w); l1 <= l+w; l1++ {
			member[l1] = true
		}
	}

	list := &L1List{index: make([]int, top+1)}
	for l1, ok := range member {
		list.index[l1] = -1
		if ok {
			list.index[l1] = len(list.values)
			list.values = append(list.values, l1)
		}
	}
	return list, nil
}

// Len returns the number of members.
func (l *L1List) Len() int { return len(l.values) }

// Value returns member i.
func (l *L1List) Value(i int) int { return l.values[i] }

// Values returns a copy of the members.
func (l *L1List) Values() []int { return slices.Clone(l.values) }

// Max returns the largest member.
func (l *L1List) Max() int { return l.values[len(l.values)-1] }

// Index returns the position of l1, or false when l1 is not a member.
func (l *L1List) Index(l1 int) (int, bool) {
	if l1 < 0 || l1 >= len(l.index) || l.index[l1] < 0 {
		return 0, false
	}
	return l.index[l1], true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
