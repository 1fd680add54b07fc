package vybiumstarkfri

import (
	"fmt"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/protocols"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/utils"
)

// STARK bundles a prover and a verifier sharing one configuration
type STARK struct {
	config   *utils.Config
	prover   *protocols.Prover
	verifier *protocols.Verifier
}

// NewSTARK creates a new STARK instance with the given configuration
func NewSTARK(config *utils.Config, opts ...protocols.Option) (*STARK, error) {
	if config == nil {
		config = utils.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	prover, err := protocols.NewProver(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create prover: %w", err)
	}
	verifier, err := protocols.NewVerifier(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create verifier: %w", err)
	}

	return &STARK{
		config:   config.Clone(),
		prover:   prover,
		verifier: verifier,
	}, nil
}

// Config returns a copy of the configuration
func (s *STARK) Config() *utils.Config {
	return s.config.Clone()
}

// Prove generates a proof that trace satisfies air
func (s *STARK) Prove(air protocols.AIR, trace *protocols.Trace) (*protocols.StarkProof, error) {
	return s.prover.Prove(air, trace)
}

// Verify checks a proof; see protocols.Verifier.Verify for the error contract
func (s *STARK) Verify(air protocols.AIR, proof *protocols.StarkProof) error {
	return s.verifier.Verify(air, proof)
}
