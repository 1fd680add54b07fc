package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
)

func newTestTranscript(t *testing.T, name string) *Transcript {
	t.Helper()
	h, err := core.NewHasher(name)
	if err != nil {
		t.Fatal(err)
	}
	return NewTranscript(h)
}

func TestTranscriptDeterministic(t *testing.T) {
	for _, name := range []string{core.HashSHA3, core.HashSHA256, core.HashBlake3, core.HashTip5} {
		t.Run(name, func(t *testing.T) {
			a := newTestTranscript(t, name)
			b := newTestTranscript(t, name)
			for _, tr := range []*Transcript{a, b} {
				tr.Append([]byte("root"))
				tr.AppendElement(field.New(42))
			}
			if a.Challenge() != b.Challenge() {
				t.Error("identical transcripts produced different challenges")
			}
			if !a.ChallengeFieldElement().Equal(b.ChallengeFieldElement()) {
				t.Error("identical transcripts produced different field challenges")
			}
		})
	}
}

func TestTranscriptAppendChangesState(t *testing.T) {
	tr := newTestTranscript(t, core.HashSHA3)
	before := tr.State()
	tr.Append([]byte("data"))
	if bytes.Equal(before, tr.State()) {
		t.Error("state should change after Append")
	}
	if len(tr.Messages()) != 1 || !strings.HasPrefix(tr.Messages()[0], "append:") {
		t.Errorf("unexpected message log %v", tr.Messages())
	}
}

func TestTranscriptDivergesOnDifferentAppends(t *testing.T) {
	a := newTestTranscript(t, core.HashSHA3)
	b := newTestTranscript(t, core.HashSHA3)
	a.Append([]byte{1})
	b.Append([]byte{2})
	if a.Challenge() == b.Challenge() {
		t.Error("different appends produced equal challenges")
	}
}

func TestTranscriptOrderMatters(t *testing.T) {
	a := newTestTranscript(t, core.HashSHA3)
	b := newTestTranscript(t, core.HashSHA3)
	a.Append([]byte("x"))
	a.Append([]byte("y"))
	b.Append([]byte("y"))
	b.Append([]byte("x"))
	if a.Challenge() == b.Challenge() {
		t.Error("swapping append order should change the challenge")
	}
}

func TestTranscriptChallengesNeverRepeat(t *testing.T) {
	tr := newTestTranscript(t, core.HashSHA3)
	seen := make(map[[ChallengeSize]byte]bool)
	for i := 0; i < 100; i++ {
		c := tr.Challenge()
		if seen[c] {
			t.Fatalf("challenge %d repeated", i)
		}
		seen[c] = true
	}
}

func TestChallengeFieldElementIsCanonical(t *testing.T) {
	tr := newTestTranscript(t, core.HashSHA256)
	for i := 0; i < 50; i++ {
		if e := tr.ChallengeFieldElement(); e.Value() >= field.P {
			t.Fatalf("challenge %d >= P", e.Value())
		}
	}
	if got := len(tr.ChallengeFieldElements(5)); got != 5 {
		t.Errorf("ChallengeFieldElements(5) returned %d elements", got)
	}
}

func TestChallengeUsize(t *testing.T) {
	tr := newTestTranscript(t, core.HashBlake3)
	for i := 0; i < 50; i++ {
		v, err := tr.ChallengeUsize(17)
		if err != nil {
			t.Fatal(err)
		}
		if v < 0 || v >= 17 {
			t.Fatalf("ChallengeUsize(17) = %d", v)
		}
	}
	if _, err := tr.ChallengeUsize(0); err == nil {
		t.Error("ChallengeUsize(0) should fail")
	}
}
