// Package vybiumstarkfri is the public API of the Vybium STARK prover.
//
// A computation is described by an AIR: the number of trace columns, which
// cells are pinned to public values, and the transition constraints every
// window of consecutive rows must satisfy. The prover commits to a low-degree
// extension of the trace, folds the constraint quotients into a composition
// polynomial, checks it at a random out-of-domain point (DEEP) and proves the
// resulting polynomial has low degree with FRI. All randomness comes from a
// Fiat-Shamir transcript, so proofs are non-interactive and need no setup.
//
// # Quick Start
//
// Proving a Fibonacci sequence:
//
//	cfg := vybiumstarkfri.DefaultConfig()
//	air := vybiumstarkfri.NewFibonacciAIR(64, vybiumstarkfri.NewFieldElement(1), vybiumstarkfri.NewFieldElement(1))
//	trace, err := vybiumstarkfri.FibonacciTrace(64, vybiumstarkfri.NewFieldElement(1), vybiumstarkfri.NewFieldElement(1))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	proof, err := vybiumstarkfri.Prove(cfg, air, trace)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Verifying it:
//
//	ok, err := vybiumstarkfri.Verify(cfg, air, proof)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("valid:", ok)
//
// # Proof Encoding
//
// EncodeProof and DecodeProof convert proofs to a zstd-compressed binary
// form suitable for files and network transfer.
//
// # Custom AIRs
//
// Any type implementing AIR can be proven. EvaluateTransition receives
// frame[k][column] = T_column(x * w^k) for k < FrameSize and returns one
// value per constraint; all of them must vanish on every non-exempt row.
// TransitionDegree must be the highest total degree of those expressions in
// the frame values.
package vybiumstarkfri
