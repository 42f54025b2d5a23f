package testutil

import (
	"math"
	"testing"
)

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	RequireSliceNearlyEqual(t, got, []float64{0, 0.25, 0.5, 0.75, 1}, 1e-15)
	if Linspace(0, 1, 0) != nil {
		t.Fatal("Linspace(n=0) should be nil")
	}
	if one := Linspace(3, 7, 1); len(one) != 1 || one[0] != 3 {
		t.Fatalf("Linspace(n=1) = %v", one)
	}
}

func TestGeomspace(t *testing.T) {
	got := Geomspace(1e-3, 1e1, 5)
	for i, want := range []float64{1e-3, 1e-2, 1e-1, 1, 1e1} {
		if math.Abs(got[i]-want) > 1e-12*want {
			t.Fatalf("index %d: got %v want %v", i, got[i], want)
		}
	}
}

func TestConst(t *testing.T) {
	for i, v := range Const(2.5, 4) {
		if v != 2.5 {
			t.Fatalf("index %d: got %v", i, v)
		}
	}
}
