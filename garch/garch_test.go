package garch

import (
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(-1, 0, 1); err == nil {
		t.Error("negative order should fail")
	}
	if _, err := New(0, 0, 0); err == nil {
		t.Error("all-zero orders should fail")
	}
	m, err := New(1, 1, 1)
	if err != nil {
		t.Fatalf("New(1,1,1) failed: %v", err)
	}
	if m.NumParams() != 4 {
		t.Errorf("NumParams = %d, want 4", m.NumParams())
	}
	if m.Power != 2 {
		t.Errorf("Power = %v, want 2", m.Power)
	}
}

func TestBaseBounds(t *testing.T) {
	m, _ := New(1, 1, 1)
	resids := []float64{1, -1, 2, -2} // mean square = 2.5

	bounds := m.Bounds(resids)
	if len(bounds) != 4 {
		t.Fatalf("bounds length = %d, want 4", len(bounds))
	}

	v := 2.5
	if math.Abs(bounds[0].Lower-1e-8*v) > 1e-15 || math.Abs(bounds[0].Upper-10*v) > 1e-12 {
		t.Errorf("intercept bound = %+v, want (%v, %v)", bounds[0], 1e-8*v, 10*v)
	}
	if bounds[1].Lower != 0 || bounds[1].Upper != 1 {
		t.Errorf("alpha bound = %+v, want (0, 1)", bounds[1])
	}
	if bounds[2].Lower != -1 || bounds[2].Upper != 2 {
		t.Errorf("gamma bound = %+v, want (-1, 2)", bounds[2])
	}
	if bounds[3].Lower != 0 || bounds[3].Upper != 1 {
		t.Errorf("beta bound = %+v, want (0, 1)", bounds[3])
	}
}

func TestRelaxedBoundsScaleWithResiduals(t *testing.T) {
	m, _ := NewRelaxed(1, 1, 1)

	small := m.Bounds([]float64{0.01, -0.01})
	large := m.Bounds([]float64{10, -10})

	// The intercept lower bound scales linearly with mean(|r|^2):
	// scaling residuals by 1000 scales the bound by 1e6.
	ratio := large[0].Lower / small[0].Lower
	if math.Abs(ratio-1e6) > 1e-6*1e6 {
		t.Errorf("intercept lower-bound ratio = %v, want 1e6", ratio)
	}

	// Order-coefficient bounds are (-1, 2) regardless of residual scale.
	for _, bounds := range [][]float64{{small[1].Lower, small[1].Upper}, {large[3].Lower, large[3].Upper}} {
		if bounds[0] != -1 || bounds[1] != 2 {
			t.Errorf("order coefficient bound = %v, want (-1, 2)", bounds)
		}
	}
}

func TestBaseConstraintsLayout(t *testing.T) {
	m, _ := New(1, 1, 1)
	a, b := m.Constraints()

	rows, cols := a.Dims()
	if rows != 5 || cols != 4 {
		t.Fatalf("A dims = %dx%d, want 5x4", rows, cols)
	}

	// Identity block: omega, alpha, gamma, beta each ≥ 0.
	for i := 0; i < 4; i++ {
		if a.At(i, i) != 1 {
			t.Errorf("A[%d,%d] = %v, want 1", i, i, a.At(i, i))
		}
	}
	// The gamma row also includes alpha: alpha + gamma ≥ 0.
	if a.At(2, 1) != 1 {
		t.Errorf("A[2,1] = %v, want 1 (alpha term in asymmetry row)", a.At(2, 1))
	}
	// Persistence row: -alpha - 0.5*gamma - beta ≥ -1.
	if a.At(4, 1) != -1 || a.At(4, 2) != -0.5 || a.At(4, 3) != -1 {
		t.Errorf("persistence row = [%v %v %v %v]", a.At(4, 0), a.At(4, 1), a.At(4, 2), a.At(4, 3))
	}

	want := []float64{0, 0, 0, 0, -1}
	for i, w := range want {
		if b[i] != w {
			t.Errorf("b[%d] = %v, want %v", i, b[i], w)
		}
	}
}

func TestRelaxedConstraints(t *testing.T) {
	m, _ := NewRelaxed(2, 1, 1)
	a, b := m.Constraints()

	rows, cols := a.Dims()
	if rows != 6 || cols != 5 {
		t.Fatalf("A dims = %dx%d, want 6x5", rows, cols)
	}

	// Rows 1..p+o cover the alpha and gamma coefficients; the relaxation
	// lowers those right-hand sides to -1.
	for i := 1; i <= 3; i++ {
		if b[i] != -1 {
			t.Errorf("b[%d] = %v, want -1", i, b[i])
		}
	}
	// The intercept and persistence rows are inherited unchanged.
	if b[0] != 0 {
		t.Errorf("b[0] = %v, want 0", b[0])
	}
	if b[5] != -1 {
		t.Errorf("b[5] = %v, want -1", b[5])
	}

	// Beta non-negativity row untouched.
	if b[4] != 0 {
		t.Errorf("b[4] = %v, want 0", b[4])
	}
}

func TestEmptyResiduals(t *testing.T) {
	m, _ := New(1, 0, 1)
	bounds := m.Bounds(nil)
	if bounds[0].Lower != 1e-8 || bounds[0].Upper != 10 {
		t.Errorf("empty residuals should fall back to unit scale, got %+v", bounds[0])
	}
}
