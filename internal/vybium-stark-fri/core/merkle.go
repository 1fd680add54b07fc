package core

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// ErrIndexOutOfRange is returned when opening a leaf that does not exist
var ErrIndexOutOfRange = errors.New("leaf index out of range")

// Leaves hashed per goroutine when building a tree.
const leafHashChunk = 256

// MerkleTree commits to a power-of-two number of leaves, each a vector of
// field elements.
type MerkleTree struct {
	hasher Hasher
	// levels[0] holds the leaf digests, the last level holds the root.
	levels [][][]byte
}

// NewMerkleTree hashes every leaf (in parallel) and builds the tree.
func NewMerkleTree(hasher Hasher, leaves [][]field.Element, workers int) (*MerkleTree, error) {
	n := len(leaves)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: merkle tree needs a power-of-two leaf count, got %d", ErrNotPowerOfTwo, n)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	digests := make([][]byte, n)
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += leafHashChunk {
		start, end := start, min(start+leafHashChunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				digests[i] = hasher.HashLeaf(leaves[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	levels := [][][]byte{digests}
	current := digests
	for len(current) > 1 {
		next := make([][]byte, len(current)/2)
		for i := range next {
			next[i] = hasher.HashNodes(current[2*i], current[2*i+1])
		}
		levels = append(levels, next)
		current = next
	}

	return &MerkleTree{hasher: hasher, levels: levels}, nil
}

// Root returns the Merkle root
func (mt *MerkleTree) Root() []byte {
	root := mt.levels[len(mt.levels)-1][0]
	return append([]byte(nil), root...)
}

// LeafCount returns the number of committed leaves.
func (mt *MerkleTree) LeafCount() int {
	return len(mt.levels[0])
}

// Open returns the authentication path for the leaf at index.
func (mt *MerkleTree) Open(index int) (*MerkleProof, error) {
	if index < 0 || index >= mt.LeafCount() {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, mt.LeafCount())
	}

	path := make([][]byte, 0, len(mt.levels)-1)
	current := index
	for level := 0; level < len(mt.levels)-1; level++ {
		sibling := mt.levels[level][current^1]
		path = append(path, append([]byte(nil), sibling...))
		current >>= 1
	}
	return &MerkleProof{Path: path}, nil
}

// MerkleProof is an authentication path, leaf level first. The side of each
// sibling is taken from the leaf index, never from the proof.
type MerkleProof struct {
	Path [][]byte
}

// VerifyMerkleProof checks that leaf sits at index under root. The path
// length fixes the tree height, so index must be below 2^len(Path).
func VerifyMerkleProof(hasher Hasher, root []byte, index int, leaf []field.Element, proof *MerkleProof) bool {
	if proof == nil || index < 0 || index>>len(proof.Path) != 0 {
		return false
	}

	current := hasher.HashLeaf(leaf)
	for _, sibling := range proof.Path {
		if len(sibling) != hasher.DigestSize() {
			return false
		}
		if index&1 == 0 {
			current = hasher.HashNodes(current, sibling)
		} else {
			current = hasher.HashNodes(sibling, current)
		}
		index >>= 1
	}
	return bytes.Equal(current, root)
}

// MarshalBinary encodes the path as a uint32 count followed by
// uint32-length-prefixed digests.
func (p *MerkleProof) MarshalBinary() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(nil, uint32(len(p.Path)))
	for _, node := range p.Path {
		out = binary.BigEndian.AppendUint32(out, uint32(len(node)))
		out = append(out, node...)
	}
	return out, nil
}

// UnmarshalBinary decodes a proof produced by MarshalBinary. Trailing bytes are
// rejected.
func (p *MerkleProof) UnmarshalBinary(data []byte) error {
	rest, err := p.decode(data)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("merkle proof: %d trailing bytes", len(rest))
	}
	return nil
}

// DecodeMerkleProof decodes one proof from the front of data and returns the
// remaining bytes.
func DecodeMerkleProof(data []byte) (*MerkleProof, []byte, error) {
	p := &MerkleProof{}
	rest, err := p.decode(data)
	if err != nil {
		return nil, nil, err
	}
	return p, rest, nil
}

// Merkle trees here never exceed 2^MaxTwoAdicity leaves.
const maxPathLength = MaxTwoAdicity

func (p *MerkleProof) decode(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errors.New("merkle proof: truncated path length")
	}
	count := binary.BigEndian.Uint32(data)
	data = data[4:]
	if count > maxPathLength {
		return nil, fmt.Errorf("merkle proof: path length %d exceeds %d", count, maxPathLength)
	}

	path := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < 4 {
			return nil, fmt.Errorf("merkle proof: truncated node %d", i)
		}
		size := binary.BigEndian.Uint32(data)
		data = data[4:]
		if uint32(len(data)) < size {
			return nil, fmt.Errorf("merkle proof: node %d wants %d bytes, %d left", i, size, len(data))
		}
		path = append(path, append([]byte(nil), data[:size]...))
		data = data[size:]
	}
	p.Path = path
	return data, nil
}
