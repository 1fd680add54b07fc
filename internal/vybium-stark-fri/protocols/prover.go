package protocols

import (
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/utils"
)

// Prover generates STARK proofs that a trace satisfies an AIR.
//
// The Prover implements the following workflow:
// 1. Binds public inputs into the transcript
// 2. Extends the trace to the LDE domain and commits to it
// 3. Builds the composition polynomial and splits it into H1, H2
// 4. Samples the out-of-domain point and evaluates the trace and H1, H2 there
// 5. Builds the DEEP polynomial over the LDE domain
// 6. Runs the FRI commit phase
// 7. Samples queries and decommits trace rows and FRI layers
type Prover struct {
	cfg    *utils.Config
	hasher core.Hasher
	opts   *options
}

// NewProver creates a prover for one set of public options.
func NewProver(cfg *utils.Config, opts ...Option) (*Prover, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", utils.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hasher, err := cfg.Hasher()
	if err != nil {
		return nil, err
	}
	return &Prover{
		cfg:    cfg.Clone(),
		hasher: hasher,
		opts:   buildOptions(cfg.Workers, opts),
	}, nil
}

func (p *Prover) workers() int {
	if p.cfg.Workers > 0 {
		return p.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// traceCommitment is the committed low-degree extension of the trace.
type traceCommitment struct {
	polys []*core.Polynomial
	lde   [][]field.Element // [column][LDE index]
	tree  *core.MerkleTree
}

func (p *Prover) commitTrace(trace *Trace, domains *ProverDomains) (*traceCommitment, error) {
	width := trace.Width()
	tc := &traceCommitment{
		polys: make([]*core.Polynomial, width),
		lde:   make([][]field.Element, width),
	}

	var g errgroup.Group
	g.SetLimit(p.workers())
	for c := 0; c < width; c++ {
		g.Go(func() error {
			poly, err := p.opts.evaluator.Interpolate(trace.Column(c), domains.Trace)
			if err != nil {
				return fmt.Errorf("interpolate column %d: %w", c, err)
			}
			values, err := p.opts.evaluator.Evaluate(poly, domains.LDE)
			if err != nil {
				return fmt.Errorf("extend column %d: %w", c, err)
			}
			tc.polys[c] = poly
			tc.lde[c] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([][]field.Element, domains.LDE.Length)
	for i := range rows {
		row := make([]field.Element, width)
		for c := range tc.lde {
			row[c] = tc.lde[c][i]
		}
		rows[i] = row
	}
	tree, err := core.NewMerkleTree(p.hasher, rows, p.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("commit trace: %w", err)
	}
	tc.tree = tree
	return tc, nil
}

// Prove generates a proof that trace satisfies air.
func (p *Prover) Prove(air AIR, trace *Trace) (*StarkProof, error) {
	if air == nil || trace == nil {
		return nil, fmt.Errorf("%w: nil AIR or trace", ErrInvalidTrace)
	}
	start := time.Now()
	log := p.opts.logger.With(zap.Int("trace_length", air.TraceLength()))

	// Step 0: shapes and constraint satisfaction
	if err := validateAIR(air); err != nil {
		return nil, err
	}
	if err := CheckTrace(air, trace); err != nil {
		return nil, err
	}
	domains, err := DeriveProverDomains(air.TraceLength(), p.cfg)
	if err != nil {
		return nil, err
	}
	builder, err := NewCompositionBuilder(air, domains)
	if err != nil {
		return nil, err
	}
	ctx := air.Context()

	// Step 1: public inputs
	t := utils.NewTranscript(p.hasher)
	appendPublicInputs(t, air, p.cfg)

	// Step 2: trace LDE and commitment
	tc, err := p.commitTrace(trace, domains)
	if err != nil {
		return nil, err
	}
	appendTraceRoot(t, tc.tree.Root())
	log.Debug("trace committed", zap.Int("lde_size", domains.LDE.Length), zap.Int("columns", ctx.TraceColumns))

	// Step 3: composition polynomial
	coeffs := drawCompositionCoefficients(t, builder)
	composition, err := builder.EvaluateOnLDE(tc.lde, coeffs, p.cfg.Workers)
	if err != nil {
		return nil, err
	}
	h1, h2, err := builder.SplitComposition(composition, p.opts.evaluator)
	if err != nil {
		return nil, err
	}
	log.Debug("composition built", zap.Int("degree_bound", builder.DegreeBound()))

	// Step 4: out-of-domain evaluations
	z, err := drawOODPoint(t, domains)
	if err != nil {
		return nil, err
	}
	ood := make([][]field.Element, ctx.FrameSize)
	point := z
	for k := range ood {
		row := make([]field.Element, ctx.TraceColumns)
		for c, poly := range tc.polys {
			row[c] = poly.Eval(point)
		}
		ood[k] = row
		point = point.Mul(domains.Trace.Generator)
	}
	zSquared := z.Mul(z)
	oodComposition := [2]field.Element{h1.Eval(zSquared), h2.Eval(zSquared)}
	appendOODEvaluations(t, ood, oodComposition)

	// Step 5: DEEP polynomial
	gammas := drawDeepCoefficients(t, ctx)
	deep := newDeepComposer(z, domains.Trace, ood, oodComposition[0], oodComposition[1], gammas)
	deepValues, err := deep.evaluateOnLDE(domains.LDE, tc.lde, composition, p.cfg.Workers)
	if err != nil {
		return nil, err
	}

	// Step 6: FRI
	rounds := utils.Log2(builder.DegreeBound())
	fri, err := CommitFRI(t, deepValues, domains.LDE, rounds, p.hasher, p.cfg.Workers)
	if err != nil {
		return nil, err
	}
	log.Debug("FRI committed", zap.Int("rounds", rounds))

	// Step 7: queries
	indices, err := drawQueryIndices(t, domains.LDE.Length, p.cfg.FRIQueries)
	if err != nil {
		return nil, err
	}
	queries := make([]QueryProof, len(indices))
	var g errgroup.Group
	g.SetLimit(p.workers())
	for i, q := range indices {
		g.Go(func() error {
			qp, err := p.openQuery(q, ctx, domains, tc, composition, fri)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			queries[i] = *qp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	proof := &StarkProof{
		TraceRoot:                 tc.tree.Root(),
		OODTraceEvaluations:       ood,
		OODCompositionEvaluations: oodComposition,
		FriLayerRoots:             fri.Roots(),
		FriLastLayer:              fri.LastLayer,
		Queries:                   queries,
	}

	elapsed := time.Since(start)
	if p.opts.metrics != nil {
		p.opts.metrics.observeProof(elapsed, proof.Size())
	}
	log.Info("proof generated",
		zap.Duration("elapsed", elapsed),
		zap.Int("fri_layers", len(proof.FriLayerRoots)),
		zap.Int("queries", len(proof.Queries)))
	return proof, nil
}

// queryRows lists the LDE rows opened for query q: the frame at x_q, then
// the frame at -x_q.
func queryRows(q, frameSize, blowup, size int) []int {
	rows := make([]int, 0, 2*frameSize)
	for _, base := range []int{q, q + size/2} {
		for k := 0; k < frameSize; k++ {
			rows = append(rows, (base+k*blowup)%size)
		}
	}
	return rows
}

func (p *Prover) openQuery(q int, ctx AIRContext, domains *ProverDomains, tc *traceCommitment, composition []field.Element, fri *FriCommitment) (*QueryProof, error) {
	size := domains.LDE.Length
	rows := queryRows(q, ctx.FrameSize, p.cfg.BlowupFactor, size)

	qp := &QueryProof{
		TraceOpenings: make([]TraceOpening, len(rows)),
		CompositionValues: [2]field.Element{
			composition[q],
			composition[(q+size/2)%size],
		},
	}
	for i, row := range rows {
		proof, err := tc.tree.Open(row)
		if err != nil {
			return nil, err
		}
		values := make([]field.Element, len(tc.lde))
		for c := range tc.lde {
			values[c] = tc.lde[c][row]
		}
		qp.TraceOpenings[i] = TraceOpening{Values: values, Proof: proof}
	}

	d, err := fri.Decommit(q)
	if err != nil {
		return nil, err
	}
	qp.Fri = *d
	return qp, nil
}
