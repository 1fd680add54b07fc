// Package airs contains the example constraint systems shipped with the
// prover: Fibonacci sequences and a bit decomposition.
package airs

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/protocols"
)

// FibonacciAIR proves a single-column Fibonacci sequence:
//
//	T(w^2 x) = T(w x) + T(x)
//
// with rows 0 and 1 pinned. The last two rows have no successor pair and
// are exempt from the transition.
type FibonacciAIR struct {
	length int
	first  field.Element
	second field.Element
	result *field.Element
}

// NewFibonacciAIR creates the AIR for a trace of length rows starting at
// (first, second).
func NewFibonacciAIR(length int, first, second field.Element) *FibonacciAIR {
	return &FibonacciAIR{length: length, first: first, second: second}
}

// WithResult additionally pins the last row to result.
func (a *FibonacciAIR) WithResult(result field.Element) *FibonacciAIR {
	a.result = &result
	return a
}

// Context implements protocols.AIR
func (a *FibonacciAIR) Context() protocols.AIRContext {
	return protocols.AIRContext{
		TraceColumns:             1,
		FrameSize:                3,
		TransitionExemptions:     2,
		NumTransitionConstraints: 1,
		TransitionDegree:         1,
	}
}

// TraceLength implements protocols.AIR
func (a *FibonacciAIR) TraceLength() int {
	return a.length
}

// BoundaryConstraints implements protocols.AIR
func (a *FibonacciAIR) BoundaryConstraints() []protocols.BoundaryConstraint {
	constraints := []protocols.BoundaryConstraint{
		{Column: 0, Row: 0, Value: a.first},
		{Column: 0, Row: 1, Value: a.second},
	}
	if a.result != nil {
		constraints = append(constraints, protocols.BoundaryConstraint{Column: 0, Row: a.length - 1, Value: *a.result})
	}
	return constraints
}

// EvaluateTransition implements protocols.AIR
func (a *FibonacciAIR) EvaluateTransition(frame [][]field.Element) []field.Element {
	return []field.Element{frame[2][0].Sub(frame[1][0]).Sub(frame[0][0])}
}

// PublicInputs implements protocols.AIR
func (a *FibonacciAIR) PublicInputs() []byte {
	return []byte("fibonacci/1")
}

// FibonacciTrace generates the trace FibonacciAIR expects.
func FibonacciTrace(length int, first, second field.Element) (*protocols.Trace, error) {
	if length < 2 {
		return nil, fmt.Errorf("%w: fibonacci trace needs at least 2 rows", protocols.ErrInvalidTrace)
	}
	column := make([]field.Element, length)
	column[0], column[1] = first, second
	for i := 2; i < length; i++ {
		column[i] = column[i-1].Add(column[i-2])
	}
	return protocols.NewTrace([][]field.Element{column})
}

// FibonacciPairAIR proves the two-column form (a, b) -> (b, a + b).
type FibonacciPairAIR struct {
	length int
	first  field.Element
	second field.Element
}

// NewFibonacciPairAIR creates the two-column AIR starting at (first, second).
func NewFibonacciPairAIR(length int, first, second field.Element) *FibonacciPairAIR {
	return &FibonacciPairAIR{length: length, first: first, second: second}
}

func (a *FibonacciPairAIR) Context() protocols.AIRContext {
	return protocols.AIRContext{
		TraceColumns:             2,
		FrameSize:                2,
		TransitionExemptions:     1,
		NumTransitionConstraints: 2,
		TransitionDegree:         1,
	}
}

func (a *FibonacciPairAIR) TraceLength() int {
	return a.length
}

func (a *FibonacciPairAIR) BoundaryConstraints() []protocols.BoundaryConstraint {
	return []protocols.BoundaryConstraint{
		{Column: 0, Row: 0, Value: a.first},
		{Column: 1, Row: 0, Value: a.second},
	}
}

func (a *FibonacciPairAIR) EvaluateTransition(frame [][]field.Element) []field.Element {
	current, next := frame[0], frame[1]
	return []field.Element{
		next[0].Sub(current[1]),
		next[1].Sub(current[0]).Sub(current[1]),
	}
}

func (a *FibonacciPairAIR) PublicInputs() []byte {
	return []byte("fibonacci-pair/1")
}

// FibonacciPairTrace generates the trace FibonacciPairAIR expects.
func FibonacciPairTrace(length int, first, second field.Element) (*protocols.Trace, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: empty trace", protocols.ErrInvalidTrace)
	}
	a := make([]field.Element, length)
	b := make([]field.Element, length)
	a[0], b[0] = first, second
	for i := 1; i < length; i++ {
		a[i], b[i] = b[i-1], a[i-1].Add(b[i-1])
	}
	return protocols.NewTrace([][]field.Element{a, b})
}
