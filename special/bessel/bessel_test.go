package bessel

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-bessel2/internal/testutil"
)

// closed forms for the lowest orders, accurate away from the origin
func closedForm(l int, x float64) float64 {
	s, c := math.Sincos(x)
	switch l {
	case 0:
		return s / x
	case 1:
		return s/(x*x) - c/x
	case 2:
		return (3/(x*x)-1)*s/x - 3*c/(x*x)
	case 3:
		return (15/(x*x*x)-6/x)*s/x - (15/(x*x)-1)*c/x
	}
	panic("no closed form")
}

func TestJlAtOrigin(t *testing.T) {
	if got := Jl(0, 0); got != 1 {
		t.Fatalf("j_0(0) = %v, want 1", got)
	}
	for l := 1; l < 10; l++ {
		if got := Jl(l, 0); got != 0 {
			t.Fatalf("j_%d(0) = %v, want 0", l, got)
		}
	}
}

func TestJlInvalid(t *testing.T) {
	for _, tc := range []struct {
		l int
		x float64
	}{
		{-1, 1},
		{2, -0.5},
		{2, math.NaN()},
	} {
		if got := Jl(tc.l, tc.x); !math.IsNaN(got) {
			t.Fatalf("Jl(%d, %v) = %v, want NaN", tc.l, tc.x, got)
		}
	}
	if got := Array(-1, 1, nil); got != nil {
		t.Fatalf("Array(-1) = %v, want nil", got)
	}
}

func TestJlClosedForms(t *testing.T) {
	xs := []float64{0.5, 0.9, 1, 1.5, 2, 2.5, 3, 5, 7.25, 10, 33.3, 100, 999.5, 1000}
	for l := 0; l <= 3; l++ {
		for _, x := range xs {
			got := Jl(l, x)
			want := closedForm(l, x)
			if !testutil.NearlyEqual(got, want, 1e-9, 1e-15) {
				t.Fatalf("j_%d(%v) = %.17g, want %.17g", l, x, got, want)
			}
		}
	}
}

func TestJlReferenceValues(t *testing.T) {
	// reference values from the exact rational power series
	for _, tc := range []struct {
		l    int
		x    float64
		want float64
	}{
		{5, 0.5, 2.9774668754574457e-06},
		{10, 5, 0.0004073442442494604},
		{50, 10, 2.2306960232186467e-31},
		{20, 20, 0.03832485163980518},
		{20, 21, 0.05178841660574334},
		{40, 39.5, 0.0192579990198406},
		{7, 0.0015, 8.429070371264783e-27},
		{3, 0.0009, 6.942856830428577e-12},
		{54, 0.5, 1.5969965821731505e-105},
	} {
		got := Jl(tc.l, tc.x)
		if !testutil.NearlyEqual(got, tc.want, 1e-12, 0) {
			t.Fatalf("j_%d(%v) = %.17g, want %.17g", tc.l, tc.x, got, tc.want)
		}
	}
}

func TestSeriesMatchesRecurrenceAtThreshold(t *testing.T) {
	for l := 0; l <= 12; l++ {
		below := series(l, smallX)
		above := miller(l, smallX)
		if l == 0 {
			above = upward(l, smallX)
		}
		if !testutil.NearlyEqual(below, above, 1e-12, 0) {
			t.Fatalf("l=%d: series %.17g, recurrence %.17g", l, below, above)
		}
	}
}

func TestArrayMatchesJl(t *testing.T) {
	for _, x := range []float64{0, 0.0005, 0.3, 4, 17.5, 60, 250} {
		js := Array(60, x, nil)
		if len(js) != 61 {
			t.Fatalf("len = %d, want 61", len(js))
		}
		for l, got := range js {
			want := Jl(l, x)
			if !testutil.NearlyEqual(got, want, 1e-10, 1e-300) {
				t.Fatalf("x=%v l=%d: Array %.17g, Jl %.17g", x, l, got, want)
			}
		}
	}
}

func TestArrayReusesBuffer(t *testing.T) {
	buf := make([]float64, 0, 32)
	out := Array(10, 3, buf)
	if &out[0] != &buf[:1][0] {
		t.Fatal("Array reallocated a buffer with sufficient capacity")
	}
}

func TestSumRule(t *testing.T) {
	// sum_n (2n+1) j_n(x)^2 = 1
	for _, x := range []float64{0.7, 3.14159, 10, 42} {
		js := Array(int(x)+60, x, nil)
		sum := 0.0
		for n, v := range js {
			sum += float64(2*n+1) * v * v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("x=%v: sum rule = %.17g", x, sum)
		}
	}
}

func BenchmarkJl(b *testing.B) {
	for b.Loop() {
		_ = Jl(40, 25)
	}
}
