package protocols

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/utils"
)

// FriLayer is one committed layer of the folding chain.
type FriLayer struct {
	Evaluations []field.Element
	Tree        *core.MerkleTree
	Domain      *ArithmeticDomain
}

// FriCommitment is the prover side of FRI: every committed layer plus the
// constant the chain collapses to.
type FriCommitment struct {
	Layers    []FriLayer
	Betas     []field.Element
	LastLayer field.Element
}

// FriLayerOpening opens one layer at an index and at its mirror
// (index + size/2) mod size.
type FriLayerOpening struct {
	Value          field.Element
	SymmetricValue field.Element
	Proof          *core.MerkleProof
	SymmetricProof *core.MerkleProof
}

// FriDecommitment holds one opening per committed layer for one query.
type FriDecommitment struct {
	Layers []FriLayerOpening
}

// FoldPolynomial returns E(X) + beta*O(X) for p(X) = E(X^2) + X*O(X^2).
func FoldPolynomial(p *core.Polynomial, beta field.Element) *core.Polynomial {
	even, odd := p.SplitEvenOdd()
	return even.Add(odd.MulScalar(beta))
}

// foldEvaluations folds the values of p over domain into the values of
// FoldPolynomial(p, beta) over domain squared:
//
//	next[j] = (v[j] + v[j+N/2])/2 + beta * (v[j] - v[j+N/2]) / (2 x_j)
func foldEvaluations(values []field.Element, domain *ArithmeticDomain, beta field.Element, workers int) ([]field.Element, error) {
	half := len(values) / 2
	xs := domain.Elements()[:half]
	xInv, err := core.BatchInversion(xs)
	if err != nil {
		return nil, fmt.Errorf("fold: %w", err)
	}

	next := make([]field.Element, half)
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < half; start += pointChunk {
		start, end := start, min(start+pointChunk, half)
		g.Go(func() error {
			for j := start; j < end; j++ {
				next[j] = foldPair(values[j], values[j+half], xInv[j], beta)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return next, nil
}

// foldPair combines the evaluations at x and -x.
func foldPair(v, sym, xInv, beta field.Element) field.Element {
	even := core.Halve(v.Add(sym))
	odd := core.Halve(v.Sub(sym)).Mul(xInv)
	return even.Add(beta.Mul(odd))
}

func singletonLeaves(values []field.Element) [][]field.Element {
	leaves := make([][]field.Element, len(values))
	for i := range values {
		leaves[i] = values[i : i+1]
	}
	return leaves
}

// CommitFRI runs the commit phase over evaluations of a polynomial of degree
// below 2^rounds on domain. Each round commits the current layer, appends its
// root, draws beta and folds. The remaining layer must be constant; its value
// is appended to the transcript.
func CommitFRI(t *utils.Transcript, evaluations []field.Element, domain *ArithmeticDomain, rounds int, hasher core.Hasher, workers int) (*FriCommitment, error) {
	if len(evaluations) != domain.Length {
		return nil, fmt.Errorf("FRI input has %d values for a domain of %d", len(evaluations), domain.Length)
	}
	if rounds < 0 || domain.Length>>rounds < 2 {
		return nil, fmt.Errorf("%d FRI rounds do not fit a domain of %d", rounds, domain.Length)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	commitment := &FriCommitment{
		Layers: make([]FriLayer, 0, rounds),
		Betas:  make([]field.Element, 0, rounds),
	}
	current := evaluations
	currentDomain := domain

	for round := 0; round < rounds; round++ {
		tree, err := core.NewMerkleTree(hasher, singletonLeaves(current), workers)
		if err != nil {
			return nil, fmt.Errorf("FRI layer %d: %w", round, err)
		}
		commitment.Layers = append(commitment.Layers, FriLayer{
			Evaluations: current,
			Tree:        tree,
			Domain:      currentDomain,
		})
		t.Append(tree.Root())

		beta := t.ChallengeFieldElement()
		commitment.Betas = append(commitment.Betas, beta)

		current, err = foldEvaluations(current, currentDomain, beta, workers)
		if err != nil {
			return nil, fmt.Errorf("FRI layer %d: %w", round, err)
		}
		if currentDomain, err = currentDomain.Halve(); err != nil {
			return nil, err
		}
	}

	last := current[0]
	for i, v := range current {
		if !v.Equal(last) {
			return nil, fmt.Errorf("%w: last FRI layer is not constant at index %d", ErrDegreeBoundExceeded, i)
		}
	}
	commitment.LastLayer = last
	t.AppendElement(last)
	return commitment, nil
}

// Roots returns the Merkle root of every committed layer.
func (c *FriCommitment) Roots() [][]byte {
	roots := make([][]byte, len(c.Layers))
	for i, layer := range c.Layers {
		roots[i] = layer.Tree.Root()
	}
	return roots
}

// Decommit opens every layer along the path of query index q.
func (c *FriCommitment) Decommit(q int) (*FriDecommitment, error) {
	if len(c.Layers) == 0 {
		return &FriDecommitment{}, nil
	}
	if q < 0 || q >= c.Layers[0].Domain.Length {
		return nil, fmt.Errorf("%w: query %d", core.ErrIndexOutOfRange, q)
	}

	out := &FriDecommitment{Layers: make([]FriLayerOpening, len(c.Layers))}
	for round, layer := range c.Layers {
		size := layer.Domain.Length
		idx := q % size
		sym := (idx + size/2) % size

		proof, err := layer.Tree.Open(idx)
		if err != nil {
			return nil, fmt.Errorf("FRI layer %d: %w", round, err)
		}
		symProof, err := layer.Tree.Open(sym)
		if err != nil {
			return nil, fmt.Errorf("FRI layer %d: %w", round, err)
		}
		out.Layers[round] = FriLayerOpening{
			Value:          layer.Evaluations[idx],
			SymmetricValue: layer.Evaluations[sym],
			Proof:          proof,
			SymmetricProof: symProof,
		}
	}
	return out, nil
}

// FriVerifier replays the commit phase from public roots and checks
// decommitments against it.
type FriVerifier struct {
	roots     [][]byte
	betas     []field.Element
	lastLayer field.Element
	domain    *ArithmeticDomain
	hasher    core.Hasher
}

// NewFriVerifier absorbs the roots into the transcript in commit order,
// drawing one beta after each, then absorbs the last layer.
func NewFriVerifier(t *utils.Transcript, roots [][]byte, lastLayer field.Element, domain *ArithmeticDomain, hasher core.Hasher) *FriVerifier {
	betas := make([]field.Element, len(roots))
	for i, root := range roots {
		t.Append(root)
		betas[i] = t.ChallengeFieldElement()
	}
	t.AppendElement(lastLayer)
	return &FriVerifier{
		roots:     roots,
		betas:     betas,
		lastLayer: lastLayer,
		domain:    domain,
		hasher:    hasher,
	}
}

// VerifyQuery checks one query. layer0 is the pair (f(x_q), f(-x_q)) the
// caller computed independently; it must match the first layer's opening.
func (v *FriVerifier) VerifyQuery(q int, layer0 [2]field.Element, d *FriDecommitment) error {
	if d == nil || len(d.Layers) != len(v.roots) {
		return reject("fri", "query %d opens the wrong number of layers", q)
	}
	if q < 0 || q >= v.domain.Length {
		return reject("fri", "query %d outside the domain", q)
	}

	if len(d.Layers) == 0 {
		if !layer0[0].Equal(v.lastLayer) || !layer0[1].Equal(v.lastLayer) {
			return reject("fri", "query %d does not match the last layer", q)
		}
		return nil
	}
	if !d.Layers[0].Value.Equal(layer0[0]) || !d.Layers[0].SymmetricValue.Equal(layer0[1]) {
		return reject("fri", "query %d layer 0 disagrees with the DEEP evaluation", q)
	}

	domain := v.domain
	for round, opening := range d.Layers {
		size := domain.Length
		idx := q % size
		sym := (idx + size/2) % size
		depth := utils.Log2(size)

		if opening.Proof == nil || len(opening.Proof.Path) != depth ||
			opening.SymmetricProof == nil || len(opening.SymmetricProof.Path) != depth {
			return reject("fri", "query %d layer %d has a malformed path", q, round)
		}
		if !core.VerifyMerkleProof(v.hasher, v.roots[round], idx, []field.Element{opening.Value}, opening.Proof) {
			return reject("fri", "query %d layer %d value not in commitment", q, round)
		}
		if !core.VerifyMerkleProof(v.hasher, v.roots[round], sym, []field.Element{opening.SymmetricValue}, opening.SymmetricProof) {
			return reject("fri", "query %d layer %d symmetric value not in commitment", q, round)
		}

		xInv, err := core.Inverse(domain.Element(idx))
		if err != nil {
			return reject("fri", "query %d layer %d: %v", q, round, err)
		}
		folded := foldPair(opening.Value, opening.SymmetricValue, xInv, v.betas[round])

		var expected field.Element
		if round+1 < len(d.Layers) {
			expected = d.Layers[round+1].Value
		} else {
			expected = v.lastLayer
		}
		if !folded.Equal(expected) {
			return reject("fri", "query %d colinearity fails after layer %d", q, round)
		}

		if domain, err = domain.Halve(); err != nil {
			return reject("fri", "query %d layer %d: %v", q, round, err)
		}
	}
	return nil
}
