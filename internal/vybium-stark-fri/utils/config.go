package utils

import (
	"errors"
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// MaxFRIQueries bounds how many queries a verifier is willing to check.
const MaxFRIQueries = 256

// Config holds the public proof options. Prover and verifier must use
// identical values; they are bound into the transcript.
type Config struct {
	// BlowupFactor is the LDE domain size divided by the trace length
	BlowupFactor int

	// FRIQueries is the number of sampled query indices
	FRIQueries int

	// CosetOffset shifts the LDE domain off every power-of-two subgroup
	CosetOffset uint64

	// HashFunction names the transcript and Merkle hash backend
	HashFunction string

	// Workers caps goroutines per parallel phase (0 = GOMAXPROCS)
	Workers int
}

// DefaultConfig returns options suitable for tests and examples.
func DefaultConfig() *Config {
	return &Config{
		BlowupFactor: 4,
		FRIQueries:   30,
		CosetOffset:  core.MultiplicativeGenerator.Value(),
		HashFunction: core.HashSHA3,
		Workers:      0,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BlowupFactor < 2 || !IsPowerOfTwo(c.BlowupFactor) {
		return fmt.Errorf("%w: blowup factor must be a power of two >= 2, got %d", ErrInvalidConfig, c.BlowupFactor)
	}

	if c.FRIQueries <= 0 || c.FRIQueries > MaxFRIQueries {
		return fmt.Errorf("%w: FRI queries must be in [1, %d], got %d", ErrInvalidConfig, MaxFRIQueries, c.FRIQueries)
	}

	if c.CosetOffset == 0 || c.CosetOffset >= field.P {
		return fmt.Errorf("%w: coset offset %d is not a non-zero field element", ErrInvalidConfig, c.CosetOffset)
	}

	// An offset of 2-power order would make the LDE coset overlap a subgroup.
	if field.New(c.CosetOffset).ModPow(1 << core.MaxTwoAdicity).Equal(field.One) {
		return fmt.Errorf("%w: coset offset %d lies in the two-adic subgroup", ErrInvalidConfig, c.CosetOffset)
	}

	if _, err := core.NewHasher(c.HashFunction); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}

	return nil
}

// Hasher returns the configured hash backend.
func (c *Config) Hasher() (core.Hasher, error) {
	return core.NewHasher(c.HashFunction)
}

// CosetOffsetElement returns the LDE coset offset as a field element.
func (c *Config) CosetOffsetElement() field.Element {
	return field.New(c.CosetOffset)
}

// WithBlowupFactor sets the blowup factor
func (c *Config) WithBlowupFactor(factor int) *Config {
	c.BlowupFactor = factor
	return c
}

// WithFRIQueries sets the number of FRI queries
func (c *Config) WithFRIQueries(queries int) *Config {
	c.FRIQueries = queries
	return c
}

// WithCosetOffset sets the LDE coset offset
func (c *Config) WithCosetOffset(offset uint64) *Config {
	c.CosetOffset = offset
	return c
}

// WithHashFunction sets the hash function
func (c *Config) WithHashFunction(hashFunc string) *Config {
	c.HashFunction = hashFunc
	return c
}

// WithWorkers sets the parallelism cap
func (c *Config) WithWorkers(workers int) *Config {
	c.Workers = workers
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a compact human-readable form.
func (c *Config) String() string {
	return fmt.Sprintf("Config{blowup: %d, queries: %d, offset: %d, hash: %s}",
		c.BlowupFactor, c.FRIQueries, c.CosetOffset, c.HashFunction)
}
