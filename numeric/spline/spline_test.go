package spline

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-bessel2/internal/testutil"
)

func sineTable(n int) ([]float64, float64) {
	h := 2 * math.Pi / float64(n-1)
	y := make([]float64, n)
	for i := range y {
		y[i] = math.Sin(float64(i) * h)
	}
	return y, h
}

func TestSecondDerivativesErrors(t *testing.T) {
	if _, err := SecondDerivatives(nil, 1, nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
	for _, h := range []float64{0, -1, math.NaN()} {
		if _, err := SecondDerivatives([]float64{1, 2, 3}, h, nil); !errors.Is(err, ErrInvalidStep) {
			t.Fatalf("h=%v: err = %v, want ErrInvalidStep", h, err)
		}
	}
}

func TestSecondDerivativesShortTables(t *testing.T) {
	for _, y := range [][]float64{{1}, {1, 2}} {
		dd, err := SecondDerivatives(y, 0.5, nil)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireSliceNearlyEqual(t, dd, make([]float64, len(y)), 0)
	}
}

func TestSecondDerivativesOfSine(t *testing.T) {
	y, h := sineTable(65)
	dd, err := SecondDerivatives(y, h, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range y {
		if d := math.Abs(dd[i] + y[i]); d > 1e-3 {
			t.Fatalf("node %d: y''=%v, want %v", i, dd[i], -y[i])
		}
	}
}

func TestAtReproducesNodes(t *testing.T) {
	y, h := sineTable(33)
	dd, _ := SecondDerivatives(y, h, nil)
	for i := range y {
		if got := At(y, dd, h, float64(i)); math.Abs(got-y[i]) > 1e-15 {
			t.Fatalf("node %d: got %v want %v", i, got, y[i])
		}
	}
}

func TestAtAccuracy(t *testing.T) {
	y, h := sineTable(65)
	dd, _ := SecondDerivatives(y, h, nil)
	for p := 0.0; p <= 64; p += 1.0 / 7 {
		want := math.Sin(p * h)
		if got := At(y, dd, h, p); math.Abs(got-want) > 1e-6 {
			t.Fatalf("pos %v: got %v want %v", p, got, want)
		}
		if got := Derivative(y, dd, h, p); math.Abs(got-math.Cos(p*h)) > 1e-4 {
			t.Fatalf("pos %v: derivative %v want %v", p, got, math.Cos(p*h))
		}
	}
}

func TestDerivativeContinuousAtNodes(t *testing.T) {
	y, h := sineTable(65)
	dd, _ := SecondDerivatives(y, h, nil)
	for i := 1; i < len(y)-1; i++ {
		left := Derivative(y, dd, h, float64(i)-1e-9)
		right := Derivative(y, dd, h, float64(i)+1e-9)
		if math.Abs(left-right) > 1e-8 {
			t.Fatalf("node %d: left %v right %v", i, left, right)
		}
	}
}

func TestLinearFunctionIsExact(t *testing.T) {
	y := make([]float64, 10)
	for i := range y {
		y[i] = 1.5*float64(i) - 1
	}
	dd, _ := SecondDerivatives(y, 0.5, nil)
	for _, p := range []float64{0, 0.25, 3.3, 8.75, 9} {
		want := 1.5*p - 1
		if got := At(y, dd, 0.5, p); math.Abs(got-want) > 1e-12 {
			t.Fatalf("spline pos %v: got %v want %v", p, got, want)
		}
		if got := Linear(y, p); math.Abs(got-want) > 1e-12 {
			t.Fatalf("linear pos %v: got %v want %v", p, got, want)
		}
	}
}

func TestDegenerateTables(t *testing.T) {
	if got := At(nil, nil, 1, 0); got != 0 {
		t.Fatalf("empty At = %v", got)
	}
	if got := At([]float64{4}, []float64{0}, 1, 0); got != 4 {
		t.Fatalf("single At = %v", got)
	}
	if got := Linear([]float64{4}, 0); got != 4 {
		t.Fatalf("single Linear = %v", got)
	}
}

func BenchmarkSecondDerivatives(b *testing.B) {
	y, h := sineTable(2001)
	dd := make([]float64, len(y))
	for b.Loop() {
		_, _ = SecondDerivatives(y, h, dd)
	}
}
