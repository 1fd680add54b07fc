package airs

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/protocols"
)

var two = field.New(2)

// BitFlagAIR proves the binary decomposition of a public value. Row i holds
// value >> i, so bit_i = x_i - 2*x_{i+1} and every bit satisfies
// bit*(bit - 1) = 0. Row 0 is the value and the last row is zero, which
// bounds the value below 2^(length-1).
type BitFlagAIR struct {
	length int
	value  uint64
}

// NewBitFlagAIR creates the AIR for value over a trace of length rows.
func NewBitFlagAIR(length int, value uint64) *BitFlagAIR {
	return &BitFlagAIR{length: length, value: value}
}

// Context implements protocols.AIR
func (a *BitFlagAIR) Context() protocols.AIRContext {
	return protocols.AIRContext{
		TraceColumns:             1,
		FrameSize:                2,
		TransitionExemptions:     1,
		NumTransitionConstraints: 1,
		TransitionDegree:         2,
	}
}

// TraceLength implements protocols.AIR
func (a *BitFlagAIR) TraceLength() int {
	return a.length
}

// BoundaryConstraints implements protocols.AIR
func (a *BitFlagAIR) BoundaryConstraints() []protocols.BoundaryConstraint {
	return []protocols.BoundaryConstraint{
		{Column: 0, Row: 0, Value: field.New(a.value)},
		{Column: 0, Row: a.length - 1, Value: field.Zero},
	}
}

// EvaluateTransition implements protocols.AIR
func (a *BitFlagAIR) EvaluateTransition(frame [][]field.Element) []field.Element {
	bit := frame[0][0].Sub(two.Mul(frame[1][0]))
	return []field.Element{bit.Mul(bit.Sub(field.One))}
}

// PublicInputs implements protocols.AIR
func (a *BitFlagAIR) PublicInputs() []byte {
	return binary.BigEndian.AppendUint64([]byte("bit-flag/1"), a.value)
}

// BitFlagTrace generates the trace BitFlagAIR expects.
func BitFlagTrace(length int, value uint64) (*protocols.Trace, error) {
	if length < 2 || bits.Len64(value) > length-1 {
		return nil, fmt.Errorf("%w: %d does not fit in %d rows", protocols.ErrInvalidTrace, value, length)
	}
	column := make([]field.Element, length)
	for i := range column {
		column[i] = field.New(value >> uint(i))
	}
	return protocols.NewTrace([][]field.Element{column})
}
