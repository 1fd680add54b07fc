package protocols

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/utils"
)

// Verifier checks STARK proofs against an AIR.
//
// Verification replays the prover's transcript from the proof's commitments.
// The composition must agree with the constraints at z, and every query must
// open committed trace rows whose DEEP values start a valid FRI chain.
type Verifier struct {
	cfg    *utils.Config
	hasher core.Hasher
	opts   *options
}

// NewVerifier creates a verifier for one set of public options.
func NewVerifier(cfg *utils.Config, opts ...Option) (*Verifier, error) {
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
	return &Verifier{
		cfg:    cfg.Clone(),
		hasher: hasher,
		opts:   buildOptions(cfg.Workers, opts),
	}, nil
}

// Verify returns nil if proof shows air is satisfied. Every soundness
// failure returns ErrInvalidProof; a malformed AIR returns its *AIRError.
func (v *Verifier) Verify(air AIR, proof *StarkProof) error {
	if air == nil {
		return airErrorf("nil AIR")
	}
	if err := validateAIR(air); err != nil {
		return err
	}
	domains, err := DeriveProverDomains(air.TraceLength(), v.cfg)
	if err != nil {
		return err
	}
	builder, err := NewCompositionBuilder(air, domains)
	if err != nil {
		return err
	}

	start := time.Now()
	err = v.verify(air, builder, domains, proof)
	v.opts.metrics.observeVerification(time.Since(start), err == nil)
	if err == nil {
		v.opts.logger.Debug("proof accepted", zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	var airErr *AIRError
	if errors.As(err, &airErr) {
		return err
	}
	check := "internal"
	var rej *rejection
	if errors.As(err, &rej) {
		check = rej.check
	}
	v.opts.logger.Debug("proof rejected", zap.String("check", check), zap.Error(err))
	return ErrInvalidProof
}

func (v *Verifier) checkShape(ctx AIRContext, builder *CompositionBuilder, proof *StarkProof) error {
	if proof == nil {
		return reject("shape", "nil proof")
	}
	digest := v.hasher.DigestSize()
	if len(proof.TraceRoot) != digest {
		return reject("shape", "trace root has %d bytes", len(proof.TraceRoot))
	}
	if len(proof.OODTraceEvaluations) != ctx.FrameSize {
		return reject("shape", "OOD frame has %d rows, expected %d", len(proof.OODTraceEvaluations), ctx.FrameSize)
	}
	for k, row := range proof.OODTraceEvaluations {
		if len(row) != ctx.TraceColumns {
			return reject("shape", "OOD row %d has %d values", k, len(row))
		}
	}
	rounds := utils.Log2(builder.DegreeBound())
	if len(proof.FriLayerRoots) != rounds {
		return reject("shape", "%d FRI roots, expected %d", len(proof.FriLayerRoots), rounds)
	}
	for i, root := range proof.FriLayerRoots {
		if len(root) != digest {
			return reject("shape", "FRI root %d has %d bytes", i, len(root))
		}
	}
	if len(proof.Queries) != v.cfg.FRIQueries {
		return reject("shape", "%d queries, expected %d", len(proof.Queries), v.cfg.FRIQueries)
	}
	return nil
}

// verify replays the transcript in the prover's order.
func (v *Verifier) verify(air AIR, builder *CompositionBuilder, domains *ProverDomains, proof *StarkProof) error {
	ctx := air.Context()
	if err := v.checkShape(ctx, builder, proof); err != nil {
		return err
	}

	t := utils.NewTranscript(v.hasher)
	appendPublicInputs(t, air, v.cfg)
	appendTraceRoot(t, proof.TraceRoot)
	coeffs := drawCompositionCoefficients(t, builder)

	z, err := drawOODPoint(t, domains)
	if err != nil {
		return reject("ood", "%v", err)
	}
	appendOODEvaluations(t, proof.OODTraceEvaluations, proof.OODCompositionEvaluations)

	hz, err := builder.Evaluate(z, proof.OODTraceEvaluations, coeffs)
	if err != nil {
		return err
	}
	h1z, h2z := proof.OODCompositionEvaluations[0], proof.OODCompositionEvaluations[1]
	if !hz.Equal(h1z.Add(z.Mul(h2z))) {
		return reject("ood", "composition at z disagrees with H1(z^2) + z*H2(z^2)")
	}

	gammas := drawDeepCoefficients(t, ctx)
	deep := newDeepComposer(z, domains.Trace, proof.OODTraceEvaluations, h1z, h2z, gammas)
	fri := NewFriVerifier(t, proof.FriLayerRoots, proof.FriLastLayer, domains.LDE, v.hasher)

	indices, err := drawQueryIndices(t, domains.LDE.Length, v.cfg.FRIQueries)
	if err != nil {
		return reject("queries", "%v", err)
	}

	workers := v.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, q := range indices {
		g.Go(func() error {
			return v.verifyQuery(q, ctx, domains, builder, coeffs, deep, fri, proof.TraceRoot, &proof.Queries[i])
		})
	}
	return g.Wait()
}

func (v *Verifier) verifyQuery(q int, ctx AIRContext, domains *ProverDomains, builder *CompositionBuilder,
	coeffs *CompositionCoefficients, deep *deepComposer, fri *FriVerifier, traceRoot []byte, qp *QueryProof,
) error {
	size := domains.LDE.Length
	rows := queryRows(q, ctx.FrameSize, v.cfg.BlowupFactor, size)
	if len(qp.TraceOpenings) != len(rows) {
		return reject("trace", "query %d has %d openings, expected %d", q, len(qp.TraceOpenings), len(rows))
	}

	depth := utils.Log2(size)
	for i, row := range rows {
		o := qp.TraceOpenings[i]
		if len(o.Values) != ctx.TraceColumns || o.Proof == nil || len(o.Proof.Path) != depth {
			return reject("trace", "query %d opening %d is malformed", q, i)
		}
		if !core.VerifyMerkleProof(v.hasher, traceRoot, row, o.Values, o.Proof) {
			return reject("trace", "query %d row %d not in trace commitment", q, row)
		}
	}

	frameAt := func(offset int) [][]field.Element {
		frame := make([][]field.Element, ctx.FrameSize)
		for k := range frame {
			frame[k] = qp.TraceOpenings[offset+k].Values
		}
		return frame
	}
	frame, mirror := frameAt(0), frameAt(ctx.FrameSize)

	x := domains.LDE.Element(q)
	negX := domains.LDE.Element((q + size/2) % size)

	hx, err := builder.Evaluate(x, frame, coeffs)
	if err != nil {
		return err
	}
	hnx, err := builder.Evaluate(negX, mirror, coeffs)
	if err != nil {
		return err
	}
	if !hx.Equal(qp.CompositionValues[0]) || !hnx.Equal(qp.CompositionValues[1]) {
		return reject("composition", "query %d composition values disagree with the trace", q)
	}

	deepX, err := deep.evaluate(x, frame[0], hx, hnx)
	if err != nil {
		return reject("deep", "query %d: %v", q, err)
	}
	deepNegX, err := deep.evaluate(negX, mirror[0], hnx, hx)
	if err != nil {
		return reject("deep", "query %d: %v", q, err)
	}

	return fri.VerifyQuery(q, [2]field.Element{deepX, deepNegX}, &qp.Fri)
}
