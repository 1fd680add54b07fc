package protocols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

func TestTransitionZerofier(t *testing.T) {
	for _, tc := range []struct {
		n, exemptions int
	}{
		{8, 0},
		{8, 1},
		{8, 2},
		{16, 3},
	} {
		domain, err := NewArithmeticDomain(tc.n, field.One)
		require.NoError(t, err)

		z, err := TransitionZerofier(domain, tc.exemptions)
		require.NoError(t, err)
		require.Equal(t, tc.n-tc.exemptions, z.Degree())

		for k := 0; k < tc.n; k++ {
			v := z.Eval(domain.Element(k))
			if k < tc.n-tc.exemptions {
				require.True(t, v.IsZero(), "row %d should vanish", k)
			} else {
				require.False(t, v.IsZero(), "exempt row %d should not vanish", k)
			}
		}

		x := field.New(123456789)
		at, err := transitionZerofierAt(x, tc.n, exemptRoots(domain, tc.exemptions))
		require.NoError(t, err)
		require.True(t, at.Equal(z.Eval(x)))
	}
}

func TestTransitionZerofierRejectsExemptions(t *testing.T) {
	domain, err := NewArithmeticDomain(8, field.One)
	require.NoError(t, err)

	_, err = TransitionZerofier(domain, 8)
	require.ErrorIs(t, err, ErrInvalidAIR)
	_, err = TransitionZerofier(domain, -1)
	require.ErrorIs(t, err, ErrInvalidAIR)
}

func TestTransitionZerofierAtInsideDomain(t *testing.T) {
	domain, err := NewArithmeticDomain(8, field.One)
	require.NoError(t, err)

	_, err = transitionZerofierAt(domain.Element(3), 8, exemptRoots(domain, 1))
	require.Error(t, err)
}

func TestBoundaryZerofier(t *testing.T) {
	domain, err := NewArithmeticDomain(16, field.One)
	require.NoError(t, err)

	rows := []int{0, 5, 15}
	z := BoundaryZerofier(domain, rows)
	require.Equal(t, len(rows), z.Degree())
	for _, r := range rows {
		require.True(t, z.Eval(domain.Element(r)).IsZero())
	}
	require.False(t, z.Eval(domain.Element(1)).IsZero())
}
