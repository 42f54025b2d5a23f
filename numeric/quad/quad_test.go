package quad

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-bessel2/internal/testutil"
)

func TestTrapezoidWeights(t *testing.T) {
	delta, err := TrapezoidWeights([]float64{0, 1, 3, 6})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, delta, []float64{1, 3, 5, 3}, 0)
}

func TestTrapezoidWeightsErrors(t *testing.T) {
	if _, err := TrapezoidWeights([]float64{1}); !errors.Is(err, ErrTooShort) {
		t.Fatalf("err = %v, want ErrTooShort", err)
	}
	if _, err := TrapezoidWeights([]float64{0, 1, 1}); !errors.Is(err, ErrNotIncreasing) {
		t.Fatalf("err = %v, want ErrNotIncreasing", err)
	}
	if _, err := Sum([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestIntegrateLinearIsExact(t *testing.T) {
	x := testutil.Geomspace(0.01, 5, 40)
	f := make([]float64, len(x))
	for i, v := range x {
		f[i] = 2*v + 1
	}
	got, err := Integrate(x, f)
	if err != nil {
		t.Fatal(err)
	}
	want := (25 + 5) - (0.01*0.01 + 0.01)
	testutil.RequireNearlyEqual(t, got, want, 1e-12, 0, "linear integral")
}

func TestIntegrateSine(t *testing.T) {
	x := testutil.Linspace(0, math.Pi, 2001)
	f := make([]float64, len(x))
	for i, v := range x {
		f[i] = math.Sin(v)
	}
	got, err := Integrate(x, f)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireNearlyEqual(t, got, 2, 1e-6, 0, "sine integral")
}
