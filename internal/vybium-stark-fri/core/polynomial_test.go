package core

import (
	"errors"
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

func poly(coeffs ...uint64) *Polynomial {
	elems := make([]field.Element, len(coeffs))
	for i, c := range coeffs {
		elems[i] = field.New(c)
	}
	return NewPolynomial(elems)
}

func TestNewPolynomialTrimsLeadingZeros(t *testing.T) {
	p := poly(1, 2, 0, 0)
	if p.Degree() != 1 {
		t.Errorf("expected degree 1, got %d", p.Degree())
	}
	if !poly(0, 0).IsZero() {
		t.Error("all-zero coefficients should give the zero polynomial")
	}
	if ZeroPolynomial().Degree() != -1 {
		t.Error("zero polynomial should have degree -1")
	}
}

func TestPolynomialEval(t *testing.T) {
	// 3 + 2x + x^2 at x = 5 is 38
	p := poly(3, 2, 1)
	if got := p.Eval(field.New(5)); !got.Equal(field.New(38)) {
		t.Errorf("expected 38, got %d", got.Value())
	}
}

func TestPolynomialArithmetic(t *testing.T) {
	a := poly(1, 1)                                                        // 1 + x
	b := NewPolynomial([]field.Element{field.New(field.P - 1), field.One}) // x - 1

	prod := a.Mul(b) // x^2 - 1
	want := NewPolynomial([]field.Element{field.New(field.P - 1), field.Zero, field.One})
	if !prod.Equal(want) {
		t.Errorf("(x+1)(x-1) = %s, want %s", prod, want)
	}

	if !prod.Sub(want).IsZero() {
		t.Error("p - p should be zero")
	}
	if !a.Add(b).Equal(poly(0, 2)) {
		t.Errorf("(x+1)+(x-1) = %s", a.Add(b))
	}
	if !a.MulScalar(field.New(3)).Equal(poly(3, 3)) {
		t.Error("MulScalar mismatch")
	}
}

func TestPolynomialDiv(t *testing.T) {
	// (x^3 + 2x + 5) / (x - 1) = x^2 + x + 3 remainder 8
	p := poly(5, 2, 0, 1)
	d := NewPolynomial([]field.Element{field.New(field.P - 1), field.One})
	q, r, err := p.Div(d)
	if err != nil {
		t.Fatal(err)
	}
	if !q.Equal(poly(3, 1, 1)) {
		t.Errorf("quotient %s", q)
	}
	if !r.Equal(poly(8)) {
		t.Errorf("remainder %s", r)
	}

	if _, err := p.ExactDiv(d); err == nil {
		t.Error("ExactDiv should fail with a non-zero remainder")
	}
	if _, _, err := p.Div(ZeroPolynomial()); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}

	exact, err := q.Mul(d).ExactDiv(d)
	if err != nil || !exact.Equal(q) {
		t.Errorf("exact division failed: %v", err)
	}
}

func TestScaleArgumentAndCompose(t *testing.T) {
	p := poly(1, 2, 3)
	s := field.New(4)
	x := field.New(11)

	if !p.ScaleArgument(s).Eval(x).Equal(p.Eval(s.Mul(x))) {
		t.Error("ScaleArgument does not match p(s*x)")
	}

	inner := poly(0, 0, 1) // x^2
	if !p.Compose(inner).Eval(x).Equal(p.Eval(x.Mul(x))) {
		t.Error("Compose does not match p(x^2)")
	}
}

func TestSplitEvenOdd(t *testing.T) {
	p := poly(1, 2, 3, 4, 5)
	even, odd := p.SplitEvenOdd()
	x := field.New(9)
	x2 := x.Mul(x)
	got := even.Eval(x2).Add(x.Mul(odd.Eval(x2)))
	if !got.Equal(p.Eval(x)) {
		t.Error("E(x^2) + x*O(x^2) != p(x)")
	}
}

func TestZerofierFromRoots(t *testing.T) {
	roots := []field.Element{field.New(2), field.New(5), field.New(7)}
	z := ZerofierFromRoots(roots)
	if z.Degree() != 3 {
		t.Fatalf("expected degree 3, got %d", z.Degree())
	}
	for _, r := range roots {
		if !z.Eval(r).IsZero() {
			t.Errorf("zerofier does not vanish at %d", r.Value())
		}
	}
	if z.Eval(field.New(3)).IsZero() {
		t.Error("zerofier vanishes outside its roots")
	}
}

func TestLagrangeInterpolation(t *testing.T) {
	xs := []field.Element{field.New(1), field.New(2), field.New(3)}
	ys := []field.Element{field.New(6), field.New(11), field.New(18)} // x^2 + 2x + 3
	p, err := LagrangeInterpolation(xs, ys)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(poly(3, 2, 1)) {
		t.Errorf("interpolated %s", p)
	}

	if _, err := LagrangeInterpolation([]field.Element{field.One, field.One}, ys[:2]); err == nil {
		t.Error("duplicate x should fail")
	}
	if _, err := LagrangeInterpolation(xs, ys[:1]); err == nil {
		t.Error("length mismatch should fail")
	}
}
