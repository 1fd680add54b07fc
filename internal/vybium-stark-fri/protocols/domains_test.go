package protocols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/utils"
)

func TestArithmeticDomain(t *testing.T) {
	d, err := NewArithmeticDomain(16, core.MultiplicativeGenerator)
	require.NoError(t, err)

	elems := d.Elements()
	require.Len(t, elems, 16)
	for i, e := range elems {
		require.True(t, e.Equal(d.Element(i)))
		require.True(t, d.Contains(e))
	}
	require.True(t, elems[8].Equal(field.Zero.Sub(elems[0])), "x_{i+N/2} = -x_i")

	h, err := d.Halve()
	require.NoError(t, err)
	require.Equal(t, 8, h.Length)
	require.True(t, h.Element(3).Equal(elems[3].Mul(elems[3])))

	last, err := d.HalveTimes(4)
	require.NoError(t, err)
	require.Equal(t, 1, last.Length)
	_, err = last.Halve()
	require.Error(t, err)

	_, err = NewArithmeticDomain(12, field.One)
	require.Error(t, err)
	_, err = NewArithmeticDomain(8, field.Zero)
	require.Error(t, err)
}

func TestDeriveProverDomains(t *testing.T) {
	cfg := utils.DefaultConfig().WithBlowupFactor(8)
	domains, err := DeriveProverDomains(16, cfg)
	require.NoError(t, err)

	require.Equal(t, 16, domains.Trace.Length)
	require.Equal(t, 128, domains.LDE.Length)
	require.True(t, domains.LDE.Generator.ModPow(8).Equal(domains.Trace.Generator))
	require.False(t, domains.LDE.Contains(field.One))
	require.Contains(t, domains.String(), "length: 128")
}

func TestNTTEvaluatorRoundTrip(t *testing.T) {
	d, err := NewArithmeticDomain(32, core.MultiplicativeGenerator)
	require.NoError(t, err)

	p := core.NewPolynomial([]field.Element{field.New(5), field.New(0), field.New(7), field.New(11)})
	values, err := NTTEvaluator{Workers: 2}.Evaluate(p, d)
	require.NoError(t, err)
	require.True(t, values[5].Equal(p.Eval(d.Element(5))))

	back, err := NTTEvaluator{}.Interpolate(values, d)
	require.NoError(t, err)
	require.True(t, back.Equal(p))

	_, err = NTTEvaluator{}.Interpolate(values[:16], d)
	require.Error(t, err)
}
