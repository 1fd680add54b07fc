package core

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
)

// Supported hash backends.
const (
	HashSHA3   = "sha3"
	HashSHA256 = "sha256"
	HashBlake3 = "blake3"
	HashTip5   = "tip5"
)

// ErrUnknownHash is returned for an unsupported hash backend name
var ErrUnknownHash = errors.New("unknown hash function")

// Hasher is the hash backend shared by the transcript and the Merkle trees.
type Hasher interface {
	// Name returns the backend name as accepted by NewHasher.
	Name() string

	// DigestSize is the byte length of every digest this hasher produces.
	DigestSize() int

	// Sum hashes arbitrary bytes.
	Sum(data []byte) []byte

	// HashLeaf hashes one Merkle leaf.
	HashLeaf(values []field.Element) []byte

	// HashNodes hashes two child digests into their parent.
	HashNodes(left, right []byte) []byte
}

// NewHasher returns the hash backend with the given name.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case HashSHA3, "":
		return &byteHasher{name: HashSHA3, sum: func(b []byte) []byte {
			h := sha3.Sum256(b)
			return h[:]
		}}, nil
	case HashSHA256:
		return &byteHasher{name: HashSHA256, sum: func(b []byte) []byte {
			h := sha256.Sum256(b)
			return h[:]
		}}, nil
	case HashBlake3:
		return &byteHasher{name: HashBlake3, sum: func(b []byte) []byte {
			h := blake3.Sum256(b)
			return h[:]
		}}, nil
	case HashTip5:
		return tip5Hasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
}

// MustHasher is NewHasher for names known to be valid.
func MustHasher(name string) Hasher {
	h, err := NewHasher(name)
	if err != nil {
		panic(err)
	}
	return h
}

const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// byteHasher wraps a 32-byte hash function with leaf/node domain separation.
type byteHasher struct {
	name string
	sum  func([]byte) []byte
}

func (h *byteHasher) Name() string    { return h.name }
func (h *byteHasher) DigestSize() int { return 32 }

func (h *byteHasher) Sum(data []byte) []byte {
	return h.sum(data)
}

func (h *byteHasher) HashLeaf(values []field.Element) []byte {
	buf := make([]byte, 1, 1+len(values)*ElementSize)
	buf[0] = leafPrefix
	for _, v := range values {
		buf = AppendElement(buf, v)
	}
	return h.sum(buf)
}

func (h *byteHasher) HashNodes(left, right []byte) []byte {
	buf := make([]byte, 0, 1+len(left)+len(right))
	buf = append(buf, nodePrefix)
	buf = append(buf, left...)
	buf = append(buf, right...)
	return h.sum(buf)
}

// tip5Hasher hashes field elements natively with Tip5.
type tip5Hasher struct{}

func (tip5Hasher) Name() string    { return HashTip5 }
func (tip5Hasher) DigestSize() int { return hash.DigestLen * ElementSize }

// Sum packs the input into 7-byte limbs, which are always below P, and
// prefixes the byte length.
func (t tip5Hasher) Sum(data []byte) []byte {
	elems := make([]field.Element, 0, 1+(len(data)+6)/7)
	elems = append(elems, field.New(uint64(len(data))))
	for i := 0; i < len(data); i += 7 {
		var limb [8]byte
		copy(limb[1:], data[i:min(i+7, len(data))])
		elems = append(elems, field.New(binary.BigEndian.Uint64(limb[:])))
	}
	return digestBytes(hash.HashVarlen(elems))
}

func (tip5Hasher) HashLeaf(values []field.Element) []byte {
	return digestBytes(hash.HashVarlen(values))
}

func (tip5Hasher) HashNodes(left, right []byte) []byte {
	elems := make([]field.Element, 0, (len(left)+len(right))/ElementSize)
	elems = appendDigestElements(elems, left)
	elems = appendDigestElements(elems, right)
	return digestBytes(hash.HashVarlen(elems))
}

func digestBytes(d hash.Digest) []byte {
	out := make([]byte, 0, hash.DigestLen*ElementSize)
	for _, e := range d {
		out = AppendElement(out, e)
	}
	return out
}

func appendDigestElements(dst []field.Element, digest []byte) []field.Element {
	for i := 0; i+ElementSize <= len(digest); i += ElementSize {
		dst = append(dst, Reduce(binary.BigEndian.Uint64(digest[i:i+ElementSize])))
	}
	return dst
}
