package protocols

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
)

// Points evaluated per goroutine in pointwise LDE passes.
const pointChunk = 512

// CompositionCoefficients are the transcript-drawn (alpha, beta) pairs, one
// per constrained boundary column (ascending) and one per transition constraint.
type CompositionCoefficients struct {
	Boundary   [][2]field.Element
	Transition [][2]field.Element
}

type boundaryTerm struct {
	column      int
	interpolant *core.Polynomial
	zerofier    *core.Polynomial
	degree      int
}

// CompositionBuilder builds and evaluates
//
//	H(x) = sum_c (T_c(x) - L_c(x)) / Zb_c(x) * (alpha_c x^(D-d_c) + beta_c)
//	     + sum_j C_j(frame(x)) / Zt(x) * (alpha_j x^(D-d_t) + beta_j)
//
// The same Evaluate is used by the prover on the LDE domain and by the
// verifier at the out-of-domain point and at every query.
type CompositionBuilder struct {
	air         AIR
	ctx         AIRContext
	domains     *ProverDomains
	boundary    []boundaryTerm
	exempt      []field.Element
	transition  int // quotient degree bound d_t
	degreeBound int // D
}

// NewCompositionBuilder validates the AIR against the domains and prepares
// boundary interpolants and zerofiers.
func NewCompositionBuilder(air AIR, domains *ProverDomains) (*CompositionBuilder, error) {
	if err := validateAIR(air); err != nil {
		return nil, err
	}

	ctx := air.Context()
	n := air.TraceLength()
	if domains.Trace.Length != n {
		return nil, airErrorf("trace domain has length %d, AIR expects %d", domains.Trace.Length, n)
	}

	degreeBound := compositionDegreeBound(air)
	if domains.LDE.Length < 2*degreeBound {
		return nil, airErrorf("transition degree %d needs blowup factor >= %d",
			ctx.TransitionDegree, 2*degreeBound/n)
	}

	// Builds the divisor once to check its degree matches the exemptions.
	if _, err := TransitionZerofier(domains.Trace, ctx.TransitionExemptions); err != nil {
		return nil, err
	}

	byColumn := make(map[int][]BoundaryConstraint)
	for _, bc := range sortedBoundary(air.BoundaryConstraints()) {
		byColumn[bc.Column] = append(byColumn[bc.Column], bc)
	}

	var boundary []boundaryTerm
	for col := 0; col < ctx.TraceColumns; col++ {
		constraints := byColumn[col]
		if len(constraints) == 0 {
			continue
		}
		xs := make([]field.Element, len(constraints))
		ys := make([]field.Element, len(constraints))
		rows := make([]int, len(constraints))
		for i, bc := range constraints {
			xs[i] = domains.Trace.Element(bc.Row)
			ys[i] = bc.Value
			rows[i] = bc.Row
		}
		interpolant, err := core.LagrangeInterpolation(xs, ys)
		if err != nil {
			return nil, airErrorf("boundary interpolant for column %d: %v", col, err)
		}
		boundary = append(boundary, boundaryTerm{
			column:      col,
			interpolant: interpolant,
			zerofier:    BoundaryZerofier(domains.Trace, rows),
			degree:      max(n-1-len(constraints), 0),
		})
	}

	transition := max(ctx.TransitionDegree*(n-1)-(n-ctx.TransitionExemptions), 0)

	return &CompositionBuilder{
		air:         air,
		ctx:         ctx,
		domains:     domains,
		boundary:    boundary,
		exempt:      exemptRoots(domains.Trace, ctx.TransitionExemptions),
		transition:  transition,
		degreeBound: degreeBound,
	}, nil
}

// DegreeBound returns D, the degree bound of the composition polynomial.
func (b *CompositionBuilder) DegreeBound() int {
	return b.degreeBound
}

// NumBoundaryTerms returns how many columns carry boundary constraints.
func (b *CompositionBuilder) NumBoundaryTerms() int {
	return len(b.boundary)
}

// Evaluate returns H(x) given frame[k][c] = T_c(x * w^k).
func (b *CompositionBuilder) Evaluate(x field.Element, frame [][]field.Element, coeffs *CompositionCoefficients) (field.Element, error) {
	if len(coeffs.Boundary) != len(b.boundary) || len(coeffs.Transition) != b.ctx.NumTransitionConstraints {
		return field.Zero, fmt.Errorf("composition coefficients do not match the AIR")
	}

	result := field.Zero
	for i, term := range b.boundary {
		zInv, err := core.Inverse(term.zerofier.Eval(x))
		if err != nil {
			return field.Zero, fmt.Errorf("boundary zerofier of column %d vanishes at x", term.column)
		}
		quotient := frame[0][term.column].Sub(term.interpolant.Eval(x)).Mul(zInv)
		result = result.Add(quotient.Mul(adjustment(x, b.degreeBound-term.degree, coeffs.Boundary[i])))
	}

	if b.ctx.NumTransitionConstraints == 0 {
		return result, nil
	}

	zt, err := transitionZerofierAt(x, b.air.TraceLength(), b.exempt)
	if err != nil {
		return field.Zero, err
	}
	ztInv, err := core.Inverse(zt)
	if err != nil {
		return field.Zero, err
	}

	values, err := evaluateTransition(b.air, frame)
	if err != nil {
		return field.Zero, err
	}
	scale := x.ModPow(uint64(b.degreeBound - b.transition))
	for j, v := range values {
		ab := coeffs.Transition[j]
		result = result.Add(v.Mul(ztInv).Mul(ab[0].Mul(scale).Add(ab[1])))
	}
	return result, nil
}

// adjustment returns alpha * x^k + beta.
func adjustment(x field.Element, k int, ab [2]field.Element) field.Element {
	return ab[0].Mul(x.ModPow(uint64(k))).Add(ab[1])
}

// ldeFrame gathers frame[k][c] = lde[c][(i + k*step) mod N].
func ldeFrame(lde [][]field.Element, i, step, size int) [][]field.Element {
	n := len(lde[0])
	frame := make([][]field.Element, size)
	for k := range frame {
		row := make([]field.Element, len(lde))
		idx := (i + k*step) % n
		for c := range lde {
			row[c] = lde[c][idx]
		}
		frame[k] = row
	}
	return frame
}

// EvaluateOnLDE computes H at every LDE point from the trace LDE columns.
func (b *CompositionBuilder) EvaluateOnLDE(lde [][]field.Element, coeffs *CompositionCoefficients, workers int) ([]field.Element, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	size := b.domains.LDE.Length
	step := size / b.domains.Trace.Length
	points := b.domains.LDE.Elements()
	out := make([]field.Element, size)

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < size; start += pointChunk {
		start, end := start, min(start+pointChunk, size)
		g.Go(func() error {
			for i := start; i < end; i++ {
				v, err := b.Evaluate(points[i], ldeFrame(lde, i, step, b.ctx.FrameSize), coeffs)
				if err != nil {
					return fmt.Errorf("composition at LDE index %d: %w", i, err)
				}
				out[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SplitComposition interpolates H from its LDE evaluations, checks
// deg H <= D and returns H1, H2 with H(X) = H1(X^2) + X*H2(X^2).
func (b *CompositionBuilder) SplitComposition(values []field.Element, evaluator Evaluator) (*core.Polynomial, *core.Polynomial, error) {
	h, err := evaluator.Interpolate(values, b.domains.LDE)
	if err != nil {
		return nil, nil, fmt.Errorf("interpolate composition: %w", err)
	}
	if h.Degree() > b.degreeBound {
		return nil, nil, airErrorf("composition polynomial has degree %d above bound %d; declared degree or exemptions do not match the constraints",
			h.Degree(), b.degreeBound)
	}
	h1, h2 := h.SplitEvenOdd()
	return h1, h2, nil
}
