package protocols

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/utils"
)

// The functions below are the only places prover and verifier touch the
// transcript outside FRI. Both sides call them in this order:
//
//	appendPublicInputs, trace root, drawCompositionCoefficients, drawOODPoint,
//	appendOODEvaluations, drawDeepCoefficients, FRI rounds, drawQueryIndices

// maxOODAttempts bounds rejection sampling of z. Each draw lands in either
// domain with probability about N/P, so reaching the bound means the
// transcript is broken.
const maxOODAttempts = 64

func appendPublicInputs(t *utils.Transcript, air AIR, cfg *utils.Config) {
	t.Append(encodePublicInputs(air, cfg))
}

func appendTraceRoot(t *utils.Transcript, root []byte) {
	t.Append(root)
}

// drawCompositionCoefficients draws (alpha, beta) for every constrained
// boundary column, then for every transition constraint.
func drawCompositionCoefficients(t *utils.Transcript, b *CompositionBuilder) *CompositionCoefficients {
	coeffs := &CompositionCoefficients{
		Boundary:   make([][2]field.Element, b.NumBoundaryTerms()),
		Transition: make([][2]field.Element, b.ctx.NumTransitionConstraints),
	}
	for i := range coeffs.Boundary {
		coeffs.Boundary[i] = [2]field.Element{t.ChallengeFieldElement(), t.ChallengeFieldElement()}
	}
	for j := range coeffs.Transition {
		coeffs.Transition[j] = [2]field.Element{t.ChallengeFieldElement(), t.ChallengeFieldElement()}
	}
	return coeffs
}

// drawOODPoint samples z outside the trace domain and the LDE coset.
func drawOODPoint(t *utils.Transcript, domains *ProverDomains) (field.Element, error) {
	for attempt := 0; attempt < maxOODAttempts; attempt++ {
		z := t.ChallengeFieldElement()
		if z.IsZero() || domains.Trace.Contains(z) || domains.LDE.Contains(z) {
			continue
		}
		return z, nil
	}
	return field.Zero, fmt.Errorf("no out-of-domain point after %d draws", maxOODAttempts)
}

func appendOODEvaluations(t *utils.Transcript, frame [][]field.Element, composition [2]field.Element) {
	for _, row := range frame {
		t.AppendElements(row)
	}
	t.AppendElements(composition[:])
}

func drawDeepCoefficients(t *utils.Transcript, ctx AIRContext) []field.Element {
	return t.ChallengeFieldElements(deepCoefficientCount(ctx))
}

// drawQueryIndices draws count indices in [0, domainSize). Repeats are kept.
func drawQueryIndices(t *utils.Transcript, domainSize, count int) ([]int, error) {
	indices := make([]int, count)
	for i := range indices {
		q, err := t.ChallengeUsize(domainSize)
		if err != nil {
			return nil, err
		}
		indices[i] = q
	}
	return indices, nil
}
