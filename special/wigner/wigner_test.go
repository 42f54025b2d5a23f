package wigner

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-bessel2/internal/testutil"
)

func TestSymbolReferenceValues(t *testing.T) {
	// values from the Racah formula in exact arithmetic
	tests := []struct {
		j1, j2, j3, m1, m2, m3 int
		want                   float64
	}{
		{2, 2, 2, 0, 0, 0, -0.23904572186687872},
		{1, 1, 0, 1, -1, 0, 0.5773502691896257},
		{10, 6, 4, 0, -2, 2, 0.05976854619341832},
		{12, 10, 2, 0, 2, -2, 0.04316658473017156},
		{7, 10, 3, 0, -1, 1, -0.12081105830566215},
		{50, 54, 4, 0, 0, 0, 0.05105420485677065},
		{25, 20, 8, -3, 7, -4, -0.05470770248492117},
		{3, 2, 1, 0, -1, 1, -0.1690308509457033},
		{13, 10, 4, 0, -2, 2, -0.09376710793983659},
		{9, 10, 2, 0, 2, -2, 0.12262786789699316},
	}
	for _, tc := range tests {
		got := Symbol(tc.j1, tc.j2, tc.j3, tc.m1, tc.m2, tc.m3)
		testutil.RequireNearlyEqual(t, got, tc.want, 1e-13, 1e-16, "3j")
	}
}

func TestSymbolSelectionRules(t *testing.T) {
	for _, tc := range []struct{ j1, j2, j3, m1, m2, m3 int }{
		{1, 1, 1, 0, 0, 0},  // odd sum with zero projections
		{5, 1, 1, 0, 0, 0},  // triangle
		{2, 2, 2, 1, 1, 1},  // projections do not sum to zero
		{1, 2, 2, 2, -1, -1}, // |m1| > j1
	} {
		if got := Symbol(tc.j1, tc.j2, tc.j3, tc.m1, tc.m2, tc.m3); got != 0 {
			t.Fatalf("%+v: got %v, want 0", tc, got)
		}
	}
}

func TestFamilyInvalid(t *testing.T) {
	if _, _, err := Family(2, 3, 3, 0, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if _, _, err := Family(-1, 3, 0, 0, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestFamilyRange(t *testing.T) {
	jmin, vals, err := Family(10, 4, 2, -1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if jmin != 6 || len(vals) != 9 {
		t.Fatalf("jmin=%d len=%d, want 6 and 9", jmin, len(vals))
	}

	jmin, vals, err = Family(3, 3, 3, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	// |m1| = 3 raises the lower end above |j2-j3| = 0
	if jmin != 3 || len(vals) != 4 {
		t.Fatalf("jmin=%d len=%d, want 3 and 4", jmin, len(vals))
	}
}

func TestFamilyNormalisation(t *testing.T) {
	for _, tc := range []struct{ j2, j3, m2, m3 int }{
		{0, 0, 0, 0},
		{5, 5, 0, 0},
		{20, 3, -3, 3},
		{30, 30, 29, -29},
		{54, 20, 15, -15},
		{80, 40, 30, -30},
	} {
		jmin, vals, err := Family(tc.j2, tc.j3, tc.m2, tc.m3, nil)
		if err != nil {
			t.Fatal(err)
		}
		sum := 0.0
		for i, v := range vals {
			sum += float64(2*(jmin+i)+1) * v * v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("%+v: sum (2j1+1) f^2 = %.17g", tc, sum)
		}
		// sign convention at the stretched end
		last := vals[len(vals)-1]
		if want := phase(tc.j2 - tc.j3 + tc.m2 + tc.m3); last*want <= 0 {
			t.Fatalf("%+v: sign of f(j2+j3) = %v", tc, last)
		}
	}
}

func TestFamilyMatchesClosedForm(t *testing.T) {
	jmin, vals, err := Family(150, 120, 0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range vals {
		want := Zero(jmin+i, 150, 120)
		if want == 0 {
			if v != 0 {
				t.Fatalf("j1=%d: got %v, want exact zero", jmin+i, v)
			}
			continue
		}
		testutil.RequireNearlyEqual(t, v, want, 1e-11, 0, "family vs closed form")
	}
}

func TestPermutationSymmetry(t *testing.T) {
	// swapping two columns multiplies by (-1)^(j1+j2+j3)
	for _, tc := range []struct{ j1, j2, j3, m1, m2, m3 int }{
		{7, 10, 3, 0, -1, 1},
		{12, 10, 4, 0, 2, -2},
		{13, 10, 4, 0, -2, 2},
	} {
		a := Symbol(tc.j1, tc.j2, tc.j3, tc.m1, tc.m2, tc.m3)
		b := Symbol(tc.j2, tc.j1, tc.j3, tc.m2, tc.m1, tc.m3)
		testutil.RequireNearlyEqual(t, b, phase(tc.j1+tc.j2+tc.j3)*a, 1e-12, 1e-16, "column swap")
	}
}

func TestFamilyReusesBuffer(t *testing.T) {
	buf := make([]float64, 64)
	for i := range buf {
		buf[i] = math.NaN()
	}
	_, vals, err := Family(10, 4, 0, 0, buf)
	if err != nil {
		t.Fatal(err)
	}
	if &vals[0] != &buf[0] {
		t.Fatal("Family reallocated a buffer with sufficient capacity")
	}
	testutil.RequireFinite(t, vals)
}

func BenchmarkFamily(b *testing.B) {
	buf := make([]float64, 0, 128)
	for b.Loop() {
		_, buf, _ = Family(50, 4, 2, -2, buf)
	}
}
