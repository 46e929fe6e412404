// Package poly implements single variable polynomials with complex coefficients.
//
// Coefficients are stored highest degree first, so the polynomial
//
//	a_n*x^n + ... + a_1*x + a_0
//
// is stored as [a_n, ..., a_1, a_0]. Every function and method in this package
// follows that convention, as does the derivative coefficient emission in glbuild.
package poly

import (
	"math/cmplx"
	"slices"
	"strconv"
)

// Polynomial is a single variable polynomial with complex coefficients.
// The zero value is not a valid polynomial: use [New], [One] or [FromRoots].
type Polynomial struct {
	coeffs []complex128
}

// New creates a polynomial from its coefficients, highest degree first.
// New panics if no coefficients are passed.
func New(coeffs ...complex128) Polynomial {
	if len(coeffs) == 0 {
		panic("poly: polynomial must have at least one coefficient")
	}
	return Polynomial{coeffs: slices.Clone(coeffs)}
}

// One returns the constant polynomial 1. It is the starting point for building
// a monic polynomial from its roots.
func One() Polynomial {
	return Polynomial{coeffs: []complex128{1}}
}

// FromRoots returns the monic polynomial (x-r0)(x-r1)...(x-rn) built by
// multiplying the factors in argument order.
func FromRoots(roots ...complex128) Polynomial {
	p := One()
	p.AddRoots(roots...)
	return p
}

// Mul returns the product of a and b. The result has len(a)+len(b)-1 coefficients.
func Mul(a, b Polynomial) Polynomial {
	a.mustValidate()
	b.mustValidate()
	coeffs := make([]complex128, len(a.coeffs)+len(b.coeffs)-1)
	for i, ca := range a.coeffs {
		for j, cb := range b.coeffs {
			coeffs[i+j] += ca * cb
		}
	}
	return Polynomial{coeffs: coeffs}
}

// AddRoot multiplies p by the factor (x - root) so that root becomes a zero of p.
func (p *Polynomial) AddRoot(root complex128) {
	*p = Mul(*p, Polynomial{coeffs: []complex128{1, -root}})
}

// AddRoots calls AddRoot for every root in order.
func (p *Polynomial) AddRoots(roots ...complex128) {
	for _, r := range roots {
		p.AddRoot(r)
	}
}

// Derivative returns the derivative of p. The coefficient of x^k becomes
// k times the old coefficient at power k-1 and the constant term is dropped.
// The derivative of a constant polynomial is the zero polynomial [0].
func (p Polynomial) Derivative() Polynomial {
	p.mustValidate()
	deg := p.Degree()
	if deg == 0 {
		return Polynomial{coeffs: []complex128{0}}
	}
	coeffs := make([]complex128, deg)
	for i := range coeffs {
		power := deg - i
		coeffs[i] = p.coeffs[i] * complex(float64(power), 0)
	}
	return Polynomial{coeffs: coeffs}
}

// Evaluate evaluates p at x using Horner's method.
func (p Polynomial) Evaluate(x complex128) complex128 {
	p.mustValidate()
	var result complex128
	for _, c := range p.coeffs {
		result = result*x + c
	}
	return result
}

// Degree returns the degree of p, which is the number of coefficients minus one.
func (p Polynomial) Degree() int {
	p.mustValidate()
	return len(p.coeffs) - 1
}

// Len returns the number of coefficients of p.
func (p Polynomial) Len() int { return len(p.coeffs) }

// Coefficient returns the i'th coefficient, highest degree first.
func (p Polynomial) Coefficient(i int) complex128 {
	return p.coeffs[i]
}

// Coefficients returns a copy of the coefficients of p, highest degree first.
func (p Polynomial) Coefficients() []complex128 {
	p.mustValidate()
	return slices.Clone(p.coeffs)
}

// AppendCoefficients appends the coefficients of p to dst and returns the result.
func (p Polynomial) AppendCoefficients(dst []complex128) []complex128 {
	p.mustValidate()
	return append(dst, p.coeffs...)
}

// Equal reports whether p and q have exactly the same coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	return slices.Equal(p.coeffs, q.coeffs)
}

// AlmostEqual reports whether p and q have the same degree and every pair of
// coefficients is within tol of each other.
func (p Polynomial) AlmostEqual(q Polynomial, tol float64) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i, c := range p.coeffs {
		if cmplx.Abs(c-q.coeffs[i]) > tol {
			return false
		}
	}
	return true
}

// String returns p in the form "(a+bi)*x^n + ... + (c+di)". Terms with a zero
// coefficient are omitted except for the constant term.
func (p Polynomial) String() string {
	if len(p.coeffs) == 0 {
		return "<invalid polynomial>"
	}
	deg := len(p.coeffs) - 1
	var b []byte
	for i, c := range p.coeffs {
		power := deg - i
		if power == 0 {
			b = append(b, strconv.FormatComplex(c, 'g', -1, 128)...)
			break
		} else if c == 0 {
			continue
		}
		b = append(b, strconv.FormatComplex(c, 'g', -1, 128)...)
		b = append(b, "*x"...)
		if power > 1 {
			b = append(b, '^')
			b = strconv.AppendInt(b, int64(power), 10)
		}
		b = append(b, " + "...)
	}
	return string(b)
}

func (p Polynomial) mustValidate() {
	if len(p.coeffs) == 0 {
		panic("poly: use of zero value Polynomial. Create polynomials with poly.New or poly.One")
	}
}
