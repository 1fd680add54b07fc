// Package core provides the algebraic and commitment layers used by the
// STARK protocols: Goldilocks field helpers, polynomials, NTT-based domain
// evaluation, hash backends and Merkle trees.
package core

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// ElementSize is the byte length of a canonically encoded field element.
const ElementSize = 8

// MaxTwoAdicity is the largest k such that 2^k divides P-1.
const MaxTwoAdicity = 32

// MultiplicativeGenerator generates the full multiplicative group of the field.
// It lies in no proper subgroup, which makes it a valid coset offset for every
// power-of-two domain.
var MultiplicativeGenerator = field.New(7)

var (
	// ErrNotPowerOfTwo is returned when a size or order must be a power of two
	ErrNotPowerOfTwo = errors.New("value is not a power of two")

	// ErrNonCanonical is returned when decoding a value >= P
	ErrNonCanonical = errors.New("non-canonical field element encoding")

	// ErrZeroInverse is returned when inverting zero
	ErrZeroInverse = errors.New("cannot invert zero element")
)

// PrimitiveRootOfUnity returns an element of multiplicative order exactly n.
//
// Every root is a power of MultiplicativeGenerator, so for n dividing m:
// PrimitiveRootOfUnity(m)^(m/n) == PrimitiveRootOfUnity(n).
func PrimitiveRootOfUnity(n uint64) (field.Element, error) {
	if n == 0 || n&(n-1) != 0 {
		return field.Zero, fmt.Errorf("%w: root of unity order %d", ErrNotPowerOfTwo, n)
	}
	if n > 1<<MaxTwoAdicity {
		return field.Zero, fmt.Errorf("root of unity order %d exceeds 2^%d", n, MaxTwoAdicity)
	}
	return MultiplicativeGenerator.ModPow((field.P - 1) / n), nil
}

// Reduce maps an arbitrary uint64 into the field.
func Reduce(v uint64) field.Element {
	return field.New(v % field.P)
}

// Inverse inverts a non-zero element.
func Inverse(e field.Element) (field.Element, error) {
	if e.IsZero() {
		return field.Zero, ErrZeroInverse
	}
	return e.Inverse(), nil
}

// Halve returns e / 2.
func Halve(e field.Element) field.Element {
	return e.Mul(twoInverse)
}

var twoInverse = field.New(2).Inverse()

// AppendElement appends the canonical big-endian encoding of e to dst.
func AppendElement(dst []byte, e field.Element) []byte {
	return binary.BigEndian.AppendUint64(dst, e.Value())
}

// EncodeElements encodes a slice of elements back to back.
func EncodeElements(elems []field.Element) []byte {
	out := make([]byte, 0, len(elems)*ElementSize)
	for _, e := range elems {
		out = AppendElement(out, e)
	}
	return out
}

// DecodeElement decodes a canonical big-endian element.
func DecodeElement(b []byte) (field.Element, error) {
	if len(b) != ElementSize {
		return field.Zero, fmt.Errorf("element encoding must be %d bytes, got %d", ElementSize, len(b))
	}
	v := binary.BigEndian.Uint64(b)
	if v >= field.P {
		return field.Zero, fmt.Errorf("%w: %d", ErrNonCanonical, v)
	}
	return field.New(v), nil
}

// BatchInversion inverts every element with a single field inversion
// (Montgomery's trick). It fails if any element is zero.
func BatchInversion(elements []field.Element) ([]field.Element, error) {
	n := len(elements)
	if n == 0 {
		return []field.Element{}, nil
	}

	// acc[i] = elements[0] * ... * elements[i]
	acc := make([]field.Element, n)
	running := field.One
	for i, e := range elements {
		if e.IsZero() {
			return nil, fmt.Errorf("%w at index %d", ErrZeroInverse, i)
		}
		running = running.Mul(e)
		acc[i] = running
	}

	accInv := acc[n-1].Inverse()
	results := make([]field.Element, n)
	for i := n - 1; i > 0; i-- {
		results[i] = accInv.Mul(acc[i-1])
		accInv = accInv.Mul(elements[i])
	}
	results[0] = accInv

	return results, nil
}

// Powers returns [1, base, base^2, ..., base^(n-1)].
func Powers(base field.Element, n int) []field.Element {
	out := make([]field.Element, n)
	current := field.One
	for i := range out {
		out[i] = current
		current = current.Mul(base)
	}
	return out
}
