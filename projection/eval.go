package projection

import (
	"math"
	"slices"
)

// J returns J_Llm(x) for the slot at (kind, iL, il, im), where the indices
// address the L, multipole and m lists of the configuration. It returns 0
// below the first or beyond the last stored node and for empty slots.
func (t *Tables) J(kind Kind, iL, il, im int, x float64) (float64, error) {
	s, err := t.slot("J", kind, iL, il, im)
	if err != nil {
		return 0, err
	}
	if err := t.checkX("J", x); err != nil {
		return 0, err
	}
	return s.eval(t.grid.step, x, false), nil
}

// JAt is J addressed by the values of L, l and m.
func (t *Tables) JAt(kind Kind, L, l, m int, x float64) (float64, error) {
	iL, il, im, err := t.indices("JAt", L, l, m)
	if err != nil {
		return 0, err
	}
	return t.J(kind, iL, il, im, x)
}

// Slot returns the stored projection function at (kind, iL, il, im).
func (t *Tables) Slot(kind Kind, iL, il, im int) (*Slot, error) {
	return t.slot("Slot", kind, iL, il, im)
}

// BesselAt returns the spline interpolation of j_l1(x), where l1 is the
// member at position index of the l1-list.
func (t *Tables) BesselAt(index int, x float64) (float64, error) {
	return t.besselAt("BesselAt", index, x, false)
}

// BesselAtLinear is BesselAt with linear interpolation.
func (t *Tables) BesselAtLinear(index int, x float64) (float64, error) {
	return t.besselAt("BesselAtLinear", index, x, true)
}

// BesselSlot returns the stored j_l1 for position index of the l1-list.
func (t *Tables) BesselSlot(index int) (*Slot, error) {
	if err := t.live("BesselSlot"); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(t.bessel) {
		return nil, domainError("BesselSlot", "l1 index %d outside [0, %d)", index, len(t.bessel))
	}
	return &t.bessel[index], nil
}

func (t *Tables) besselAt(op string, index int, x float64, linear bool) (float64, error) {
	if err := t.live(op); err != nil {
		return 0, err
	}
	if index < 0 || index >= len(t.bessel) {
		return 0, domainError(op, "l1 index %d outside [0, %d)", index, len(t.bessel))
	}
	if err := t.checkX(op, x); err != nil {
		return 0, err
	}
	return t.bessel[index].eval(t.grid.step, x, linear), nil
}

func (t *Tables) slot(op string, kind Kind, iL, il, im int) (*Slot, error) {
	if err := t.live(op); err != nil {
		return nil, err
	}
	if kind < 0 || kind >= numKinds || t.kindIndex[kind] < 0 {
		return nil, domainError(op, "%s was not tabulated", kind)
	}
	switch {
	case iL < 0 || iL >= len(t.ls):
		return nil, domainError(op, "L index %d outside [0, %d)", iL, len(t.ls))
	case il < 0 || il >= len(t.cfg.Multipoles):
		return nil, domainError(op, "l index %d outside [0, %d)", il, len(t.cfg.Multipoles))
	case im < 0 || im >= len(t.cfg.M):
		return nil, domainError(op, "m index %d outside [0, %d)", im, len(t.cfg.M))
	}
	return &t.j[t.slotIndex(t.kindIndex[kind], iL, il, im)], nil
}

func (t *Tables) indices(op string, L, l, m int) (iL, il, im int, err error) {
	if L > t.cfg.LMax {
		return 0, 0, 0, domainError(op, "L=%d exceeds l_max=%d", L, t.cfg.LMax)
	}
	if iL = slices.Index(t.ls, L); iL < 0 {
		return 0, 0, 0, domainError(op, "L=%d was not tabulated", L)
	}
	if il = slices.Index(t.cfg.Multipoles, l); il < 0 {
		return 0, 0, 0, domainError(op, "l=%d was not tabulated", l)
	}
	if im = slices.Index(t.cfg.M, m); im < 0 {
		return 0, 0, 0, domainError(op, "m=%d was not tabulated", m)
	}
	return iL, il, im, nil
}

func (t *Tables) checkX(op string, x float64) error {
	if math.IsNaN(x) || !t.grid.contains(x) {
		return domainError(op, "x=%g outside [0, %g]", x, t.grid.Max())
	}
	return nil
}
