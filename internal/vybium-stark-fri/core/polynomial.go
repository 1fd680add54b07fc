package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// ErrDivisionByZero is returned when dividing by the zero polynomial
var ErrDivisionByZero = errors.New("division by zero polynomial")

// Polynomial is a univariate polynomial in coefficient form, lowest degree first.
// The zero polynomial has a single zero coefficient and degree -1.
type Polynomial struct {
	coefficients []field.Element
}

// NewPolynomial creates a polynomial, trimming leading zero coefficients.
func NewPolynomial(coefficients []field.Element) *Polynomial {
	end := len(coefficients)
	for end > 0 && coefficients[end-1].IsZero() {
		end--
	}
	coeffs := make([]field.Element, end)
	copy(coeffs, coefficients[:end])
	return &Polynomial{coefficients: coeffs}
}

// ZeroPolynomial returns the zero polynomial.
func ZeroPolynomial() *Polynomial {
	return &Polynomial{}
}

// ConstantPolynomial returns the constant polynomial c.
func ConstantPolynomial(c field.Element) *Polynomial {
	return NewPolynomial([]field.Element{c})
}

// Monomial returns c*X^degree.
func Monomial(c field.Element, degree int) *Polynomial {
	coeffs := make([]field.Element, degree+1)
	for i := range coeffs {
		coeffs[i] = field.Zero
	}
	coeffs[degree] = c
	return NewPolynomial(coeffs)
}

// Degree returns the degree, or -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p *Polynomial) IsZero() bool {
	return len(p.coefficients) == 0
}

// Coefficient returns the coefficient of X^degree.
func (p *Polynomial) Coefficient(degree int) field.Element {
	if degree < 0 || degree >= len(p.coefficients) {
		return field.Zero
	}
	return p.coefficients[degree]
}

// LeadingCoefficient returns the coefficient of the highest degree term
func (p *Polynomial) LeadingCoefficient() field.Element {
	if p.IsZero() {
		return field.Zero
	}
	return p.coefficients[len(p.coefficients)-1]
}

// Coefficients returns a copy of the coefficients
func (p *Polynomial) Coefficients() []field.Element {
	coeffs := make([]field.Element, len(p.coefficients))
	copy(coeffs, p.coefficients)
	return coeffs
}

// Eval evaluates the polynomial at x using Horner's rule.
func (p *Polynomial) Eval(x field.Element) field.Element {
	result := field.Zero
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result
}

// Equal reports whether both polynomials have the same coefficients.
func (p *Polynomial) Equal(other *Polynomial) bool {
	if len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i := range p.coefficients {
		if !p.coefficients[i].Equal(other.coefficients[i]) {
			return false
		}
	}
	return true
}

// Add adds two polynomials
func (p *Polynomial) Add(other *Polynomial) *Polynomial {
	n := max(len(p.coefficients), len(other.coefficients))
	coefficients := make([]field.Element, n)
	for i := 0; i < n; i++ {
		coefficients[i] = p.Coefficient(i).Add(other.Coefficient(i))
	}
	return NewPolynomial(coefficients)
}

// Sub subtracts two polynomials
func (p *Polynomial) Sub(other *Polynomial) *Polynomial {
	n := max(len(p.coefficients), len(other.coefficients))
	coefficients := make([]field.Element, n)
	for i := 0; i < n; i++ {
		coefficients[i] = p.Coefficient(i).Sub(other.Coefficient(i))
	}
	return NewPolynomial(coefficients)
}

// Mul multiplies two polynomials (schoolbook).
func (p *Polynomial) Mul(other *Polynomial) *Polynomial {
	if p.IsZero() || other.IsZero() {
		return ZeroPolynomial()
	}

	coefficients := make([]field.Element, len(p.coefficients)+len(other.coefficients)-1)
	for i := range coefficients {
		coefficients[i] = field.Zero
	}
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			coefficients[i+j] = coefficients[i+j].Add(a.Mul(b))
		}
	}
	return NewPolynomial(coefficients)
}

// MulScalar multiplies the polynomial by a scalar
func (p *Polynomial) MulScalar(scalar field.Element) *Polynomial {
	coefficients := make([]field.Element, len(p.coefficients))
	for i, c := range p.coefficients {
		coefficients[i] = c.Mul(scalar)
	}
	return NewPolynomial(coefficients)
}

// ScaleArgument returns q(X) = p(s*X).
func (p *Polynomial) ScaleArgument(s field.Element) *Polynomial {
	coefficients := make([]field.Element, len(p.coefficients))
	power := field.One
	for i, c := range p.coefficients {
		coefficients[i] = c.Mul(power)
		power = power.Mul(s)
	}
	return NewPolynomial(coefficients)
}

// Compose returns p(other(X)).
func (p *Polynomial) Compose(other *Polynomial) *Polynomial {
	result := ZeroPolynomial()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(other).Add(ConstantPolynomial(p.coefficients[i]))
	}
	return result
}

// Div performs long division, returning quotient and remainder.
func (p *Polynomial) Div(divisor *Polynomial) (*Polynomial, *Polynomial, error) {
	if divisor.IsZero() {
		return nil, nil, ErrDivisionByZero
	}
	if divisor.Degree() > p.Degree() {
		return ZeroPolynomial(), NewPolynomial(p.coefficients), nil
	}

	remainder := p.Coefficients()
	quotient := make([]field.Element, p.Degree()-divisor.Degree()+1)
	leadInv := divisor.LeadingCoefficient().Inverse()
	dd := divisor.Degree()

	for i := len(quotient) - 1; i >= 0; i-- {
		q := remainder[i+dd].Mul(leadInv)
		quotient[i] = q
		if q.IsZero() {
			continue
		}
		for j := 0; j <= dd; j++ {
			remainder[i+j] = remainder[i+j].Sub(q.Mul(divisor.coefficients[j]))
		}
	}

	return NewPolynomial(quotient), NewPolynomial(remainder[:dd]), nil
}

// ExactDiv divides and fails if the remainder is not zero.
func (p *Polynomial) ExactDiv(divisor *Polynomial) (*Polynomial, error) {
	q, r, err := p.Div(divisor)
	if err != nil {
		return nil, err
	}
	if !r.IsZero() {
		return nil, fmt.Errorf("non-zero remainder of degree %d", r.Degree())
	}
	return q, nil
}

// SplitEvenOdd returns E and O with p(X) = E(X^2) + X*O(X^2).
func (p *Polynomial) SplitEvenOdd() (even, odd *Polynomial) {
	evenCoeffs := make([]field.Element, 0, (len(p.coefficients)+1)/2)
	oddCoeffs := make([]field.Element, 0, len(p.coefficients)/2)
	for i, c := range p.coefficients {
		if i%2 == 0 {
			evenCoeffs = append(evenCoeffs, c)
		} else {
			oddCoeffs = append(oddCoeffs, c)
		}
	}
	return NewPolynomial(evenCoeffs), NewPolynomial(oddCoeffs)
}

// ZerofierFromRoots returns prod (X - r).
func ZerofierFromRoots(roots []field.Element) *Polynomial {
	result := ConstantPolynomial(field.One)
	for _, r := range roots {
		result = result.Mul(NewPolynomial([]field.Element{field.Zero.Sub(r), field.One}))
	}
	return result
}

// LagrangeInterpolation returns the unique polynomial of degree < len(xs)
// passing through (xs[i], ys[i]).
func LagrangeInterpolation(xs, ys []field.Element) (*Polynomial, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("interpolation needs equal x and y counts, got %d and %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return ZeroPolynomial(), nil
	}

	result := ZeroPolynomial()
	for i := range xs {
		basis := ConstantPolynomial(field.One)
		denominator := field.One
		for j := range xs {
			if i == j {
				continue
			}
			diff := xs[i].Sub(xs[j])
			if diff.IsZero() {
				return nil, fmt.Errorf("duplicate interpolation point at indices %d and %d", j, i)
			}
			denominator = denominator.Mul(diff)
			basis = basis.Mul(NewPolynomial([]field.Element{field.Zero.Sub(xs[j]), field.One}))
		}
		result = result.Add(basis.MulScalar(ys[i].Mul(denominator.Inverse())))
	}
	return result, nil
}

// String returns a string representation of the polynomial
func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}

	var terms []string
	for i := p.Degree(); i >= 0; i-- {
		c := p.coefficients[i]
		if c.IsZero() {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, c.String())
		case 1:
			terms = append(terms, c.String()+"x")
		default:
			terms = append(terms, fmt.Sprintf("%sx^%d", c.String(), i))
		}
	}
	return strings.Join(terms, " + ")
}
