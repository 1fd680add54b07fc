package protocols

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/utils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fibonacciAIR: T(w^2 x) = T(w x) + T(x) with the first two rows pinned.
type fibonacciAIR struct {
	n             int
	first, second field.Element
}

func newFibonacciAIR(n int, first, second uint64) *fibonacciAIR {
	return &fibonacciAIR{n: n, first: field.New(first), second: field.New(second)}
}

func (a *fibonacciAIR) Context() AIRContext {
	return AIRContext{
		TraceColumns:             1,
		FrameSize:                3,
		TransitionExemptions:     2,
		NumTransitionConstraints: 1,
		TransitionDegree:         1,
	}
}

func (a *fibonacciAIR) TraceLength() int { return a.n }

func (a *fibonacciAIR) BoundaryConstraints() []BoundaryConstraint {
	return []BoundaryConstraint{
		{Column: 0, Row: 0, Value: a.first},
		{Column: 0, Row: 1, Value: a.second},
	}
}

func (a *fibonacciAIR) EvaluateTransition(frame [][]field.Element) []field.Element {
	return []field.Element{frame[2][0].Sub(frame[1][0]).Sub(frame[0][0])}
}

func (a *fibonacciAIR) PublicInputs() []byte { return []byte("fibonacci") }

func fibonacciTrace(t *testing.T, n int, first, second uint64) *Trace {
	t.Helper()
	col := make([]field.Element, n)
	col[0], col[1] = field.New(first), field.New(second)
	for i := 2; i < n; i++ {
		col[i] = col[i-1].Add(col[i-2])
	}
	trace, err := NewTrace([][]field.Element{col})
	require.NoError(t, err)
	return trace
}

// bitsAIR decomposes a value into bits: x_i - 2 x_{i+1} is a bit and the
// last row is zero. Transition degree 2.
type bitsAIR struct {
	n      int
	value  uint64
	degree int
}

func (a *bitsAIR) Context() AIRContext {
	return AIRContext{
		TraceColumns:             1,
		FrameSize:                2,
		TransitionExemptions:     1,
		NumTransitionConstraints: 1,
		TransitionDegree:         a.degree,
	}
}

func (a *bitsAIR) TraceLength() int { return a.n }

func (a *bitsAIR) BoundaryConstraints() []BoundaryConstraint {
	return []BoundaryConstraint{
		{Column: 0, Row: 0, Value: field.New(a.value)},
		{Column: 0, Row: a.n - 1, Value: field.Zero},
	}
}

func (a *bitsAIR) EvaluateTransition(frame [][]field.Element) []field.Element {
	bit := frame[0][0].Sub(field.New(2).Mul(frame[1][0]))
	return []field.Element{bit.Mul(bit.Sub(field.One))}
}

func (a *bitsAIR) PublicInputs() []byte { return nil }

func bitsTrace(t *testing.T, n int, value uint64) *Trace {
	t.Helper()
	col := make([]field.Element, n)
	for i := range col {
		col[i] = field.New(value >> uint(i))
	}
	trace, err := NewTrace([][]field.Element{col})
	require.NoError(t, err)
	return trace
}

// pairAIR is the two-column Fibonacci: (a, b) -> (b, a + b).
type pairAIR struct {
	n int
}

func (a *pairAIR) Context() AIRContext {
	return AIRContext{
		TraceColumns:             2,
		FrameSize:                2,
		TransitionExemptions:     1,
		NumTransitionConstraints: 2,
		TransitionDegree:         1,
	}
}

func (a *pairAIR) TraceLength() int { return a.n }

func (a *pairAIR) BoundaryConstraints() []BoundaryConstraint {
	return []BoundaryConstraint{
		{Column: 0, Row: 0, Value: field.One},
		{Column: 1, Row: 0, Value: field.One},
	}
}

func (a *pairAIR) EvaluateTransition(frame [][]field.Element) []field.Element {
	cur, next := frame[0], frame[1]
	return []field.Element{
		next[0].Sub(cur[1]),
		next[1].Sub(cur[0]).Sub(cur[1]),
	}
}

func (a *pairAIR) PublicInputs() []byte { return nil }

func pairTrace(t *testing.T, n int) *Trace {
	t.Helper()
	a := make([]field.Element, n)
	b := make([]field.Element, n)
	a[0], b[0] = field.One, field.One
	for i := 1; i < n; i++ {
		a[i], b[i] = b[i-1], a[i-1].Add(b[i-1])
	}
	trace, err := NewTrace([][]field.Element{a, b})
	require.NoError(t, err)
	return trace
}

func testConfig() *utils.Config {
	return utils.DefaultConfig().WithFRIQueries(8)
}

func randomPolynomial(rng *rand.Rand, degree int) *core.Polynomial {
	coeffs := make([]field.Element, degree+1)
	for i := range coeffs {
		coeffs[i] = core.Reduce(rng.Uint64())
	}
	if coeffs[degree].IsZero() {
		coeffs[degree] = field.One
	}
	return core.NewPolynomial(coeffs)
}

func cloneProof(t *testing.T, p *StarkProof) *StarkProof {
	t.Helper()
	data, err := p.MarshalBinary()
	require.NoError(t, err)
	out := &StarkProof{}
	require.NoError(t, out.UnmarshalBinary(data))
	return out
}
