package utils

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
)

// ChallengeSize is the byte length of a raw challenge.
const ChallengeSize = 32

const transcriptLabel = "vybium-stark-fri/transcript/v1"

// Transcript is a Fiat-Shamir transcript. Every Append is absorbed into the
// state; every challenge is read from the state and then ratchets it, so two
// challenges never repeat. Prover and verifier must make identical calls in
// identical order.
type Transcript struct {
	hasher   core.Hasher
	state    []byte
	messages []string
}

// NewTranscript creates a transcript seeded with a fixed domain label.
func NewTranscript(hasher core.Hasher) *Transcript {
	return &Transcript{
		hasher:   hasher,
		state:    hasher.Sum([]byte(transcriptLabel)),
		messages: make([]string, 0, 64),
	}
}

// Append absorbs data into the transcript.
func (t *Transcript) Append(data []byte) {
	t.messages = append(t.messages, "append:"+hex.EncodeToString(data))
	buf := make([]byte, 0, len(t.state)+len(data))
	buf = append(buf, t.state...)
	buf = append(buf, data...)
	t.state = t.hasher.Sum(buf)
}

// AppendElement absorbs one field element.
func (t *Transcript) AppendElement(e field.Element) {
	t.Append(core.AppendElement(nil, e))
}

// AppendElements absorbs several field elements as one message.
func (t *Transcript) AppendElements(elems []field.Element) {
	t.Append(core.EncodeElements(elems))
}

// AppendUint64 absorbs an integer as 8 big-endian bytes.
func (t *Transcript) AppendUint64(v uint64) {
	t.Append(binary.BigEndian.AppendUint64(nil, v))
}

// Challenge returns 32 pseudorandom bytes derived from everything absorbed so far.
func (t *Transcript) Challenge() [ChallengeSize]byte {
	var out [ChallengeSize]byte
	copy(out[:], t.state)
	t.state = t.hasher.Sum(t.state)
	t.messages = append(t.messages, "challenge:"+hex.EncodeToString(out[:]))
	return out
}

// ChallengeFieldElement draws a field element from the next challenge.
func (t *Transcript) ChallengeFieldElement() field.Element {
	c := t.Challenge()
	return core.Reduce(binary.BigEndian.Uint64(c[:8]))
}

// ChallengeFieldElements draws n field elements.
func (t *Transcript) ChallengeFieldElements(n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i] = t.ChallengeFieldElement()
	}
	return out
}

// ChallengeUsize draws an integer in [0, upper).
func (t *Transcript) ChallengeUsize(upper int) (int, error) {
	if upper <= 0 {
		return 0, fmt.Errorf("challenge upper bound must be positive, got %d", upper)
	}
	c := t.Challenge()
	return int(binary.BigEndian.Uint64(c[:8]) % uint64(upper)), nil
}

// State returns a copy of the current state
func (t *Transcript) State() []byte {
	return append([]byte(nil), t.state...)
}

// Messages returns the ordered log of appends and challenges.
func (t *Transcript) Messages() []string {
	return append([]string(nil), t.messages...)
}

// String returns a string representation of the transcript log
func (t *Transcript) String() string {
	return strings.Join(t.messages, " ")
}
