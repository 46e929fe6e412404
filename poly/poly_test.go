package poly_test

import (
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/Robotechnic/newtonfractal/poly"
)

const tol = 1e-9

func TestFromRootsZeros(t *testing.T) {
	p := poly.FromRoots(1, 2)
	for _, r := range []complex128{1, 2} {
		got := p.Evaluate(r)
		if cmplx.Abs(got) > tol {
			t.Errorf("want zero at root %v, got %v", r, got)
		}
	}
	got := p.Evaluate(0)
	if cmplx.Abs(got-2) > tol {
		t.Errorf("(0-1)(0-2) want 2, got %v", got)
	}
	want := poly.New(1, -3, 2)
	if !p.AlmostEqual(want, tol) {
		t.Errorf("want coefficients %v, got %v", want, p)
	}
}

func TestFromRootsRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for k := 1; k <= 10; k++ {
		roots := make([]complex128, k)
		for i := range roots {
			roots[i] = complex(rng.Float64()*4-2, rng.Float64()*4-2)
		}
		p := poly.FromRoots(roots...)
		if p.Degree() != k {
			t.Fatalf("want degree %d, got %d", k, p.Degree())
		}
		if p.Coefficient(0) != 1 {
			t.Errorf("want monic polynomial, got leading coefficient %v", p.Coefficient(0))
		}
		for _, r := range roots {
			if v := p.Evaluate(r); cmplx.Abs(v) > 1e-6 {
				t.Errorf("degree %d: want zero at %v, got %v", k, r, v)
			}
		}
	}
}

func TestAddRootOrderIndependent(t *testing.T) {
	roots := []complex128{1, complex(-0.5, 0.866), complex(-0.5, -0.866), 3i}
	a := poly.FromRoots(roots...)
	b := poly.One()
	for i := len(roots) - 1; i >= 0; i-- {
		b.AddRoot(roots[i])
	}
	if !a.AlmostEqual(b, tol) {
		t.Errorf("root insertion order changed coefficients:\n%v\n%v", a, b)
	}
}

func TestMul(t *testing.T) {
	a := poly.New(1, 1)     // x+1
	b := poly.New(1, 0, -1) // x^2-1
	got := poly.Mul(a, b)
	want := poly.New(1, 1, -1, -1)
	if !got.Equal(want) {
		t.Errorf("want %v, got %v", want, got)
	}
	if got.Len() != a.Len()+b.Len()-1 {
		t.Errorf("unexpected product length %d", got.Len())
	}
}

func TestDerivative(t *testing.T) {
	var tests = []struct {
		p, want poly.Polynomial
	}{
		{p: poly.New(1, 0, 0), want: poly.New(2, 0)},
		{p: poly.New(1, 2, 3), want: poly.New(2, 2)},
		{p: poly.New(4, 0, 0, 1), want: poly.New(12, 0, 0)},
		{p: poly.New(complex(0, 1), 5), want: poly.New(complex(0, 1))},
		{p: poly.One(), want: poly.New(0)},
		{p: poly.New(7i), want: poly.New(0)},
	}
	for _, test := range tests {
		got := test.p.Derivative()
		if !got.Equal(test.want) {
			t.Errorf("derivative of %v: want %v, got %v", test.p, test.want, got)
		}
	}
}

func TestDerivativeAnalytic(t *testing.T) {
	// x^2 -> 2x, evaluated at 3 is 6.
	d := poly.New(1, 0, 0).Derivative()
	if got := d.Evaluate(3); cmplx.Abs(got-6) > tol {
		t.Errorf("want 6, got %v", got)
	}
	// Compare against central differences for a cubic with complex roots.
	p := poly.FromRoots(1, complex(-0.5, 0.866), complex(-0.5, -0.866))
	d = p.Derivative()
	const h = 1e-6
	for _, x := range []complex128{0, 1 + 1i, -2, complex(0.3, -0.7)} {
		numeric := (p.Evaluate(x+h) - p.Evaluate(x-h)) / (2 * h)
		if got := d.Evaluate(x); cmplx.Abs(got-numeric) > 1e-5 {
			t.Errorf("at %v: analytic %v, numeric %v", x, got, numeric)
		}
	}
}

func TestDegree(t *testing.T) {
	if d := poly.New(1, 2, 3).Degree(); d != 2 {
		t.Errorf("want degree 2, got %d", d)
	}
	if d := poly.New(1).Degree(); d != 0 {
		t.Errorf("want degree 0, got %d", d)
	}
	if d := poly.FromRoots(1, 2, 3, 4, 5).Degree(); d != 5 {
		t.Errorf("want degree 5, got %d", d)
	}
}

func TestNewPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty coefficients")
		}
	}()
	poly.New()
}

func TestZeroValuePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on zero value use")
		}
	}()
	var p poly.Polynomial
	p.Evaluate(1)
}

func TestCoefficientsCopy(t *testing.T) {
	p := poly.New(1, 2)
	c := p.Coefficients()
	c[0] = 100
	if p.Coefficient(0) != 1 {
		t.Error("Coefficients must return a copy")
	}
}

func TestString(t *testing.T) {
	got := poly.New(1, 0, 2).String()
	want := "(1+0i)*x^2 + (2+0i)"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	got = poly.New(3, -1).String()
	want = "(3+0i)*x + (-1+0i)"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}
