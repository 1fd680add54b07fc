package core

import (
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

func naiveEvaluate(p *Polynomial, offset, root field.Element, size int) []field.Element {
	out := make([]field.Element, size)
	x := offset
	for i := range out {
		out[i] = p.Eval(x)
		x = x.Mul(root)
	}
	return out
}

func TestEvaluateOnCosetMatchesNaive(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		offset  field.Element
		workers int
	}{
		{"subgroup size 8", 8, field.One, 1},
		{"coset size 16", 16, MultiplicativeGenerator, 1},
		{"coset size 64 parallel", 64, MultiplicativeGenerator, 4},
		{"large parallel", 1 << 13, field.New(3), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coeffs := make([]field.Element, tt.size/2)
			for i := range coeffs {
				coeffs[i] = field.New(uint64(i*i + 1))
			}
			p := NewPolynomial(coeffs)
			root, err := PrimitiveRootOfUnity(uint64(tt.size))
			if err != nil {
				t.Fatal(err)
			}

			got, err := EvaluateOnCoset(p, tt.offset, root, tt.size, tt.workers)
			if err != nil {
				t.Fatal(err)
			}

			// the naive check is quadratic, so sample the big domain
			want := naiveEvaluate(p, tt.offset, root, min(tt.size, 64))
			for i := range want {
				if !got[i].Equal(want[i]) {
					t.Fatalf("index %d: got %d want %d", i, got[i].Value(), want[i].Value())
				}
			}
		})
	}
}

func TestInterpolateOnCosetRoundTrip(t *testing.T) {
	p := poly(5, 0, 3, 9, 1, 2)
	root, _ := PrimitiveRootOfUnity(16)

	values, err := EvaluateOnCoset(p, MultiplicativeGenerator, root, 16, 2)
	if err != nil {
		t.Fatal(err)
	}
	back, err := InterpolateOnCoset(values, MultiplicativeGenerator, root, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(p) {
		t.Errorf("round trip gave %s, want %s", back, p)
	}
}

func TestEvaluateOnCosetRejectsOversizedPolynomial(t *testing.T) {
	root, _ := PrimitiveRootOfUnity(4)
	if _, err := EvaluateOnCoset(poly(1, 2, 3, 4, 5), field.One, root, 4, 1); err == nil {
		t.Error("degree 4 polynomial should not fit a domain of size 4")
	}
}

func TestNTTRejectsNonPowerOfTwo(t *testing.T) {
	values := make([]field.Element, 6)
	if err := NTT(values, field.One, 1); err == nil {
		t.Error("expected error for size 6")
	}
}
