package protocols

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/utils"
)

// ArithmeticDomain is a coset of a multiplicative subgroup:
// {offset * generator^i : i = 0..length-1}.
//
// All domains have power-of-2 lengths for efficient NTT operations.
type ArithmeticDomain struct {
	// Offset shifts the domain (field.One for the subgroup itself)
	Offset field.Element

	// Generator is a primitive root of unity of order Length
	Generator field.Element

	// Length is the number of elements in the domain (must be power of 2)
	Length int
}

// NewArithmeticDomain creates the coset offset*<g> with |<g>| = length.
func NewArithmeticDomain(length int, offset field.Element) (*ArithmeticDomain, error) {
	if !utils.IsPowerOfTwo(length) {
		return nil, fmt.Errorf("domain length must be a power of 2, got %d", length)
	}
	if offset.IsZero() {
		return nil, fmt.Errorf("domain offset must be non-zero")
	}

	generator, err := core.PrimitiveRootOfUnity(uint64(length))
	if err != nil {
		return nil, fmt.Errorf("domain of length %d: %w", length, err)
	}

	return &ArithmeticDomain{
		Offset:    offset,
		Generator: generator,
		Length:    length,
	}, nil
}

// Halve returns the domain of the squares: offset and generator are squared
// and the length halves.
func (d *ArithmeticDomain) Halve() (*ArithmeticDomain, error) {
	if d.Length < 2 {
		return nil, fmt.Errorf("cannot halve domain of length %d", d.Length)
	}

	return &ArithmeticDomain{
		Offset:    d.Offset.Mul(d.Offset),
		Generator: d.Generator.Mul(d.Generator),
		Length:    d.Length / 2,
	}, nil
}

// HalveTimes applies Halve rounds times.
func (d *ArithmeticDomain) HalveTimes(rounds int) (*ArithmeticDomain, error) {
	current := d
	for i := 0; i < rounds; i++ {
		next, err := current.Halve()
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// Element returns offset * generator^index.
func (d *ArithmeticDomain) Element(index int) field.Element {
	return d.Offset.Mul(d.Generator.ModPow(uint64(index)))
}

// Elements returns all elements in the domain: {offset * generator^i : i = 0..length-1}
func (d *ArithmeticDomain) Elements() []field.Element {
	elements := core.Powers(d.Generator, d.Length)
	for i := range elements {
		elements[i] = elements[i].Mul(d.Offset)
	}
	return elements
}

// Contains reports whether x lies in the domain, i.e. (x/offset)^length = 1.
func (d *ArithmeticDomain) Contains(x field.Element) bool {
	if x.IsZero() {
		return false
	}
	return x.Mul(d.Offset.Inverse()).ModPow(uint64(d.Length)).Equal(field.One)
}

// String returns a human-readable representation
func (d *ArithmeticDomain) String() string {
	return fmt.Sprintf("Domain{length: %d, offset: %v, generator: %v}",
		d.Length, d.Offset, d.Generator)
}

// Evaluator evaluates and interpolates polynomials over a domain. An
// accelerated implementation may replace the CPU NTT but must return
// identical values, since commitments and challenges are derived from them.
type Evaluator interface {
	Evaluate(p *core.Polynomial, d *ArithmeticDomain) ([]field.Element, error)
	Interpolate(values []field.Element, d *ArithmeticDomain) (*core.Polynomial, error)
}

// NTTEvaluator is the CPU radix-2 NTT evaluator.
type NTTEvaluator struct {
	Workers int
}

// Evaluate evaluates p over every element of d.
func (e NTTEvaluator) Evaluate(p *core.Polynomial, d *ArithmeticDomain) ([]field.Element, error) {
	return core.EvaluateOnCoset(p, d.Offset, d.Generator, d.Length, e.Workers)
}

// Interpolate returns the polynomial of degree < d.Length through values.
func (e NTTEvaluator) Interpolate(values []field.Element, d *ArithmeticDomain) (*core.Polynomial, error) {
	if len(values) != d.Length {
		return nil, fmt.Errorf("interpolation needs %d values, got %d", d.Length, len(values))
	}
	return core.InterpolateOnCoset(values, d.Offset, d.Generator, e.Workers)
}

// ProverDomains holds the two domains of one proof.
type ProverDomains struct {
	// Trace domain: <w>, |<w>| = trace length
	Trace *ArithmeticDomain

	// LDE domain: h*<g>, |<g>| = trace length * blowup, g^blowup = w
	LDE *ArithmeticDomain
}

// DeriveProverDomains computes the trace and LDE domains from public parameters.
func DeriveProverDomains(traceLength int, cfg *utils.Config) (*ProverDomains, error) {
	trace, err := NewArithmeticDomain(traceLength, field.One)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace domain: %w", err)
	}

	lde, err := NewArithmeticDomain(traceLength*cfg.BlowupFactor, cfg.CosetOffsetElement())
	if err != nil {
		return nil, fmt.Errorf("failed to create LDE domain: %w", err)
	}

	return &ProverDomains{Trace: trace, LDE: lde}, nil
}

// String returns a human-readable representation of both domains
func (pd *ProverDomains) String() string {
	return fmt.Sprintf("ProverDomains{Trace: %s, LDE: %s}", pd.Trace, pd.LDE)
}
