package vybiumstarkfri

import (
	"github.com/klauspost/compress/zstd"
)

// MaxProofSize bounds the decompressed size DecodeProof accepts.
const MaxProofSize = 64 << 20

// EncodeProof serializes proof and compresses it with zstd.
func EncodeProof(proof *Proof) ([]byte, error) {
	if proof == nil {
		return nil, NewError(ErrSerialization, "nil proof", nil)
	}
	raw, err := proof.MarshalBinary()
	if err != nil {
		return nil, NewError(ErrSerialization, "failed to encode proof", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, NewError(ErrSerialization, "failed to create compressor", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(raw, nil), nil
}

// DecodeProof reverses EncodeProof.
func DecodeProof(data []byte) (*Proof, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxProofSize), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, NewError(ErrSerialization, "failed to create decompressor", err)
	}
	defer decoder.Close()

	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, NewError(ErrSerialization, "failed to decompress proof", err)
	}
	proof := &Proof{}
	if err := proof.UnmarshalBinary(raw); err != nil {
		return nil, NewError(ErrSerialization, "failed to decode proof", err)
	}
	return proof, nil
}
