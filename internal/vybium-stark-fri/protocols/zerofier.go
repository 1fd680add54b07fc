package protocols

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
)

// exemptRoots returns w^k for the last exemptions rows of the trace domain.
func exemptRoots(trace *ArithmeticDomain, exemptions int) []field.Element {
	roots := make([]field.Element, exemptions)
	for i := range roots {
		roots[i] = trace.Element(trace.Length - exemptions + i)
	}
	return roots
}

// TransitionZerofier returns (X^n - 1) / prod_{exempt k} (X - w^k), which
// vanishes on every trace row except the last exemptions ones. Its degree is
// exactly n - exemptions.
func TransitionZerofier(trace *ArithmeticDomain, exemptions int) (*core.Polynomial, error) {
	if exemptions < 0 || exemptions >= trace.Length {
		return nil, airErrorf("%d exemptions for trace length %d", exemptions, trace.Length)
	}

	vanishing := core.Monomial(field.One, trace.Length).Sub(core.ConstantPolynomial(field.One))
	zerofier, err := vanishing.ExactDiv(core.ZerofierFromRoots(exemptRoots(trace, exemptions)))
	if err != nil {
		return nil, fmt.Errorf("transition zerofier: %w", err)
	}
	if zerofier.Degree() != trace.Length-exemptions {
		return nil, airErrorf("transition zerofier has degree %d, expected %d",
			zerofier.Degree(), trace.Length-exemptions)
	}
	return zerofier, nil
}

// BoundaryZerofier returns prod_{r in rows} (X - w^r).
func BoundaryZerofier(trace *ArithmeticDomain, rows []int) *core.Polynomial {
	roots := make([]field.Element, len(rows))
	for i, r := range rows {
		roots[i] = trace.Element(r)
	}
	return core.ZerofierFromRoots(roots)
}

// transitionZerofierAt evaluates TransitionZerofier at x without building
// the polynomial. x must lie outside the trace domain.
func transitionZerofierAt(x field.Element, n int, exempt []field.Element) (field.Element, error) {
	numerator := x.ModPow(uint64(n)).Sub(field.One)
	if numerator.IsZero() {
		return field.Zero, fmt.Errorf("transition zerofier evaluated inside the trace domain")
	}
	denominator := field.One
	for _, r := range exempt {
		denominator = denominator.Mul(x.Sub(r))
	}
	inv, err := core.Inverse(denominator)
	if err != nil {
		return field.Zero, err
	}
	return numerator.Mul(inv), nil
}
