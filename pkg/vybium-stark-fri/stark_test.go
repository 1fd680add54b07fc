package vybiumstarkfri

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig() *Config {
	return DefaultConfig().WithFRIQueries(12)
}

func fibonacciProof(t *testing.T, cfg *Config) (*FibonacciAIR, *Proof) {
	t.Helper()
	one := NewFieldElement(1)
	trace, err := FibonacciTrace(16, one, one)
	require.NoError(t, err)

	air := NewFibonacciAIR(16, one, one)
	proof, err := Prove(cfg, air, trace, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return air, proof
}

func TestProveVerify(t *testing.T) {
	cfg := testConfig()
	air, proof := fibonacciProof(t, cfg)
	require.Len(t, proof.Queries, 12)

	ok, err := Verify(cfg, air, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejects(t *testing.T) {
	cfg := testConfig()
	air, proof := fibonacciProof(t, cfg)

	t.Run("tampered last layer", func(t *testing.T) {
		bad := *proof
		bad.FriLastLayer = bad.FriLastLayer.Add(NewFieldElement(1))
		ok, err := Verify(cfg, air, &bad)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("different public input", func(t *testing.T) {
		other := NewFibonacciAIR(16, NewFieldElement(2), NewFieldElement(1))
		ok, err := Verify(cfg, other, proof)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("different config", func(t *testing.T) {
		ok, err := Verify(cfg.Clone().WithHashFunction(HashBlake3), air, proof)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("nil proof", func(t *testing.T) {
		ok, err := Verify(cfg, air, nil)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestProveErrorCodes(t *testing.T) {
	one := NewFieldElement(1)
	trace, err := FibonacciTrace(16, one, one)
	require.NoError(t, err)

	_, err = Prove(DefaultConfig().WithBlowupFactor(3), NewFibonacciAIR(16, one, one), trace)
	require.ErrorIs(t, err, &StarkError{Code: ErrInvalidConfig})

	_, err = Prove(testConfig(), NewFibonacciAIR(16, one, NewFieldElement(2)), trace)
	require.ErrorIs(t, err, &StarkError{Code: ErrInvalidInput})

	_, err = Prove(testConfig(), NewFibonacciAIR(8, one, one), trace)
	require.ErrorIs(t, err, &StarkError{Code: ErrInvalidInput})

	_, err = NewTrace(nil)
	require.ErrorIs(t, err, &StarkError{Code: ErrInvalidInput})
}

func TestProveNilConfigUsesDefault(t *testing.T) {
	trace, err := BitFlagTrace(16, 0x2a)
	require.NoError(t, err)

	air := NewBitFlagAIR(16, 0x2a)
	proof, err := Prove(nil, air, trace)
	require.NoError(t, err)
	require.Len(t, proof.Queries, DefaultConfig().FRIQueries)

	ok, err := Verify(nil, air, proof)
	require.NoError(t, err)
	require.True(t, ok)
}
