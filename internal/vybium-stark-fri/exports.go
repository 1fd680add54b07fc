// Package vybiumstarkfri re-exports the internal subpackages behind one
// import for the public API and the command line tool.
package vybiumstarkfri

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/airs"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/protocols"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/utils"
)

// Re-export core types and functions
type (
	FieldElement = field.Element
	Polynomial   = core.Polynomial
	MerkleTree   = core.MerkleTree
	MerkleProof  = core.MerkleProof
	Hasher       = core.Hasher
)

var (
	Reduce           = core.Reduce
	NewPolynomial    = core.NewPolynomial
	NewMerkleTree    = core.NewMerkleTree
	NewHasher        = core.NewHasher
	DecodeElement    = core.DecodeElement
	SupportedHashes  = []string{core.HashSHA3, core.HashSHA256, core.HashBlake3, core.HashTip5}
	ErrUnknownHash   = core.ErrUnknownHash
	ErrNotPowerOfTwo = core.ErrNotPowerOfTwo
)

// Re-export protocol types and functions
type (
	AIR                = protocols.AIR
	AIRContext         = protocols.AIRContext
	AIRError           = protocols.AIRError
	BoundaryConstraint = protocols.BoundaryConstraint
	Trace              = protocols.Trace
	StarkProof         = protocols.StarkProof
	QueryProof         = protocols.QueryProof
	Prover             = protocols.Prover
	Verifier           = protocols.Verifier
	Option             = protocols.Option
	Metrics            = protocols.Metrics
	Evaluator          = protocols.Evaluator
)

var (
	NewTrace              = protocols.NewTrace
	CheckTrace            = protocols.CheckTrace
	NewProver             = protocols.NewProver
	NewVerifier           = protocols.NewVerifier
	NewMetrics            = protocols.NewMetrics
	WithLogger            = protocols.WithLogger
	WithMetrics           = protocols.WithMetrics
	WithEvaluator         = protocols.WithEvaluator
	ErrInvalidProof       = protocols.ErrInvalidProof
	ErrMalformedProof     = protocols.ErrMalformedProof
	ErrInvalidTrace       = protocols.ErrInvalidTrace
	ErrTraceNotSatisfying = protocols.ErrTraceNotSatisfying
	ErrInvalidAIR         = protocols.ErrInvalidAIR
)

// Re-export example AIRs
type (
	FibonacciAIR     = airs.FibonacciAIR
	FibonacciPairAIR = airs.FibonacciPairAIR
	BitFlagAIR       = airs.BitFlagAIR
)

var (
	NewFibonacciAIR     = airs.NewFibonacciAIR
	FibonacciTrace      = airs.FibonacciTrace
	NewFibonacciPairAIR = airs.NewFibonacciPairAIR
	FibonacciPairTrace  = airs.FibonacciPairTrace
	NewBitFlagAIR       = airs.NewBitFlagAIR
	BitFlagTrace        = airs.BitFlagTrace
)

// Re-export utility types and functions
type (
	Config     = utils.Config
	Transcript = utils.Transcript
)

var (
	DefaultConfig    = utils.DefaultConfig
	NewTranscript    = utils.NewTranscript
	ErrInvalidConfig = utils.ErrInvalidConfig
)

const MaxFRIQueries = utils.MaxFRIQueries
