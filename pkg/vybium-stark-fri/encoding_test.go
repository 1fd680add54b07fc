package vybiumstarkfri

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeProof(t *testing.T) {
	cfg := testConfig()
	air, proof := fibonacciProof(t, cfg)

	data, err := EncodeProof(proof)
	require.NoError(t, err)

	decoded, err := DecodeProof(data)
	require.NoError(t, err)
	require.Equal(t, proof.TraceRoot, decoded.TraceRoot)

	ok, err := Verify(cfg, air, decoded)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDecodeProofErrors(t *testing.T) {
	_, err := EncodeProof(nil)
	require.ErrorIs(t, err, &StarkError{Code: ErrSerialization})

	_, err = DecodeProof([]byte("not a proof"))
	require.ErrorIs(t, err, &StarkError{Code: ErrSerialization})

	_, proof := fibonacciProof(t, testConfig())
	data, err := EncodeProof(proof)
	require.NoError(t, err)
	_, err = DecodeProof(data[:len(data)/2])
	require.ErrorIs(t, err, &StarkError{Code: ErrSerialization})
}
