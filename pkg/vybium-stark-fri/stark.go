package vybiumstarkfri

import (
	"errors"

	starkfri "github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri"
)

// Option configures logging, metrics or the domain evaluator
type Option = starkfri.Option

var (
	WithLogger    = starkfri.WithLogger
	WithMetrics   = starkfri.WithMetrics
	WithEvaluator = starkfri.WithEvaluator
	NewMetrics    = starkfri.NewMetrics
)

// Prove generates a proof that trace satisfies air.
func Prove(cfg *Config, air AIR, trace *Trace, opts ...Option) (*Proof, error) {
	stark, err := newSTARK(cfg, opts)
	if err != nil {
		return nil, err
	}
	proof, err := stark.Prove(air, trace)
	if err != nil {
		return nil, classify(err, ErrProofGeneration, "failed to generate proof")
	}
	return proof, nil
}

// Verify reports whether proof is valid for air. A rejected proof returns
// (false, nil); an error means the inputs themselves are unusable.
func Verify(cfg *Config, air AIR, proof *Proof, opts ...Option) (bool, error) {
	stark, err := newSTARK(cfg, opts)
	if err != nil {
		return false, err
	}
	err = stark.Verify(air, proof)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, starkfri.ErrInvalidProof):
		return false, nil
	default:
		return false, classify(err, ErrInvalidProof, "failed to verify proof")
	}
}

func newSTARK(cfg *Config, opts []Option) (*starkfri.STARK, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	stark, err := starkfri.NewSTARK(cfg, opts...)
	if err != nil {
		return nil, NewError(ErrInvalidConfig, "invalid configuration", err)
	}
	return stark, nil
}

// classify maps internal sentinel errors onto public codes.
func classify(err error, fallback ErrorCode, message string) *StarkError {
	code := fallback
	switch {
	case errors.Is(err, starkfri.ErrInvalidConfig):
		code = ErrInvalidConfig
	case errors.Is(err, starkfri.ErrInvalidAIR):
		code = ErrInvalidAIR
	case errors.Is(err, starkfri.ErrInvalidTrace), errors.Is(err, starkfri.ErrTraceNotSatisfying):
		code = ErrInvalidInput
	}
	return NewError(code, message, err)
}
