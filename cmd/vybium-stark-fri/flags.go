package main

import (
	"fmt"

	"github.com/spf13/pflag"

	stark "github.com/vybium/vybium-stark-fri/pkg/vybium-stark-fri"
)

const (
	VerboseKey     = "verbose"
	BlowupKey      = "blowup"
	QueriesKey     = "queries"
	HashKey        = "hash"
	CosetOffsetKey = "coset-offset"
	WorkersKey     = "workers"

	AIRKey    = "air"
	LengthKey = "length"
	FirstKey  = "first"
	SecondKey = "second"
	ValueKey  = "value"
	OutKey    = "out"
)

const (
	airFibonacci     = "fibonacci"
	airFibonacciPair = "fibonacci-pair"
	airBitFlag       = "bit-flag"
)

// AddConfigFlags registers the proof options. Prover and verifier must be
// given the same values.
func AddConfigFlags(flags *pflag.FlagSet) {
	def := stark.DefaultConfig()
	flags.Int(BlowupKey, def.BlowupFactor, "LDE blowup factor (power of two >= 2)")
	flags.Int(QueriesKey, def.FRIQueries, "Number of FRI queries")
	flags.String(HashKey, def.HashFunction, "Hash function: sha3, sha256, blake3 or tip5")
	flags.Uint64(CosetOffsetKey, def.CosetOffset, "LDE coset offset")
	flags.Int(WorkersKey, 0, "Goroutines per parallel phase (0 = GOMAXPROCS)")
}

// AddAIRFlags registers the statement being proven.
func AddAIRFlags(flags *pflag.FlagSet) {
	flags.String(AIRKey, airFibonacci, "AIR to use: fibonacci, fibonacci-pair or bit-flag")
	flags.Int(LengthKey, 64, "Trace length (power of two)")
	flags.Uint64(FirstKey, 1, "First Fibonacci value")
	flags.Uint64(SecondKey, 1, "Second Fibonacci value")
	flags.Uint64(ValueKey, 0, "Value decomposed by the bit-flag AIR")
}

func ParseConfig(flags *pflag.FlagSet) (*stark.Config, error) {
	blowup, err := flags.GetInt(BlowupKey)
	if err != nil {
		return nil, err
	}
	queries, err := flags.GetInt(QueriesKey)
	if err != nil {
		return nil, err
	}
	hash, err := flags.GetString(HashKey)
	if err != nil {
		return nil, err
	}
	offset, err := flags.GetUint64(CosetOffsetKey)
	if err != nil {
		return nil, err
	}
	workers, err := flags.GetInt(WorkersKey)
	if err != nil {
		return nil, err
	}

	cfg := stark.DefaultConfig().
		WithBlowupFactor(blowup).
		WithFRIQueries(queries).
		WithHashFunction(hash).
		WithCosetOffset(offset).
		WithWorkers(workers)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Statement is an AIR together with the generator of its trace.
type Statement struct {
	Name  string
	AIR   stark.AIR
	Trace func() (*stark.Trace, error)
}

func ParseStatement(flags *pflag.FlagSet) (*Statement, error) {
	name, err := flags.GetString(AIRKey)
	if err != nil {
		return nil, err
	}
	length, err := flags.GetInt(LengthKey)
	if err != nil {
		return nil, err
	}
	first, err := flags.GetUint64(FirstKey)
	if err != nil {
		return nil, err
	}
	second, err := flags.GetUint64(SecondKey)
	if err != nil {
		return nil, err
	}
	value, err := flags.GetUint64(ValueKey)
	if err != nil {
		return nil, err
	}

	a, b := stark.NewFieldElement(first), stark.NewFieldElement(second)
	switch name {
	case airFibonacci:
		return &Statement{
			Name:  name,
			AIR:   stark.NewFibonacciAIR(length, a, b),
			Trace: func() (*stark.Trace, error) { return stark.FibonacciTrace(length, a, b) },
		}, nil
	case airFibonacciPair:
		return &Statement{
			Name:  name,
			AIR:   stark.NewFibonacciPairAIR(length, a, b),
			Trace: func() (*stark.Trace, error) { return stark.FibonacciPairTrace(length, a, b) },
		}, nil
	case airBitFlag:
		return &Statement{
			Name:  name,
			AIR:   stark.NewBitFlagAIR(length, value),
			Trace: func() (*stark.Trace, error) { return stark.BitFlagTrace(length, value) },
		}, nil
	default:
		return nil, fmt.Errorf("unknown AIR %q", name)
	}
}
