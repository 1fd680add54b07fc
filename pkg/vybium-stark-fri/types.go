package vybiumstarkfri

import starkfri "github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri"

// FieldElement is an element of the Goldilocks field, p = 2^64 - 2^32 + 1
type FieldElement = starkfri.FieldElement

// Config holds the public proof options; prover and verifier must agree
type Config = starkfri.Config

// AIR describes the constraints a trace must satisfy
type AIR = starkfri.AIR

// AIRContext describes the shape of an AIR
type AIRContext = starkfri.AIRContext

// BoundaryConstraint pins one trace cell to a public value
type BoundaryConstraint = starkfri.BoundaryConstraint

// Trace is an execution trace stored column by column
type Trace = starkfri.Trace

// Proof is a STARK proof
type Proof = starkfri.StarkProof

// Example AIRs
type (
	FibonacciAIR     = starkfri.FibonacciAIR
	FibonacciPairAIR = starkfri.FibonacciPairAIR
	BitFlagAIR       = starkfri.BitFlagAIR
)

// Hash functions accepted by Config.HashFunction
const (
	HashSHA3   = "sha3"
	HashSHA256 = "sha256"
	HashBlake3 = "blake3"
	HashTip5   = "tip5"
)

var (
	NewFibonacciAIR     = starkfri.NewFibonacciAIR
	FibonacciTrace      = starkfri.FibonacciTrace
	NewFibonacciPairAIR = starkfri.NewFibonacciPairAIR
	FibonacciPairTrace  = starkfri.FibonacciPairTrace
	NewBitFlagAIR       = starkfri.NewBitFlagAIR
	BitFlagTrace        = starkfri.BitFlagTrace
)

// NewFieldElement reduces v modulo p
func NewFieldElement(v uint64) FieldElement {
	return starkfri.Reduce(v)
}

// DefaultConfig returns the default proof options: blowup 4, 30 queries,
// coset offset 7, SHA3
func DefaultConfig() *Config {
	return starkfri.DefaultConfig()
}

// NewTrace builds a trace from columns of equal power-of-two length
func NewTrace(columns [][]FieldElement) (*Trace, error) {
	trace, err := starkfri.NewTrace(columns)
	if err != nil {
		return nil, NewError(ErrInvalidInput, "invalid trace", err)
	}
	return trace, nil
}
