package protocols

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
)

// deepComposer evaluates the DEEP polynomial
//
//	sum_{k,c} g_{k,c} (T_c(x) - T_c(z w^k)) / (x - z w^k)
//	  + g' (H1(x^2) - H1(z^2)) / (x^2 - z^2) + g'' (H2(x^2) - H2(z^2)) / (x^2 - z^2)
//
// from one trace row at x and the composition values H(x), H(-x).
type deepComposer struct {
	z         field.Element
	zSquared  field.Element
	points    []field.Element   // z * w^k
	ood       [][]field.Element // T_c(z * w^k), [k][c]
	h1z, h2z  field.Element
	gammas    []field.Element
	width     int
	frameSize int
}

func deepCoefficientCount(ctx AIRContext) int {
	return ctx.TraceColumns*ctx.FrameSize + 2
}

func newDeepComposer(z field.Element, trace *ArithmeticDomain, ood [][]field.Element, h1z, h2z field.Element, gammas []field.Element) *deepComposer {
	points := make([]field.Element, len(ood))
	for k := range points {
		points[k] = z.Mul(trace.Generator.ModPow(uint64(k)))
	}
	return &deepComposer{
		z:         z,
		zSquared:  z.Mul(z),
		points:    points,
		ood:       ood,
		h1z:       h1z,
		h2z:       h2z,
		gammas:    gammas,
		width:     len(ood[0]),
		frameSize: len(ood),
	}
}

// denominators returns x - z w^k for every k, then x^2 - z^2, then x.
func (d *deepComposer) denominators(x field.Element) []field.Element {
	out := make([]field.Element, 0, d.frameSize+2)
	for _, p := range d.points {
		out = append(out, x.Sub(p))
	}
	return append(out, x.Mul(x).Sub(d.zSquared), x)
}

// combine evaluates DEEP at x given the inverses of denominators(x).
func (d *deepComposer) combine(row []field.Element, hx, hnx field.Element, inv []field.Element) field.Element {
	xInv := inv[d.frameSize+1]
	h1 := core.Halve(hx.Add(hnx))
	h2 := core.Halve(hx.Sub(hnx)).Mul(xInv)

	acc := field.Zero
	for k := 0; k < d.frameSize; k++ {
		for c := 0; c < d.width; c++ {
			g := d.gammas[k*d.width+c]
			acc = acc.Add(g.Mul(row[c].Sub(d.ood[k][c])).Mul(inv[k]))
		}
	}

	sq := inv[d.frameSize]
	n := d.frameSize * d.width
	acc = acc.Add(d.gammas[n].Mul(h1.Sub(d.h1z)).Mul(sq))
	return acc.Add(d.gammas[n+1].Mul(h2.Sub(d.h2z)).Mul(sq))
}

// evaluate computes DEEP at a single point, as the verifier does per query.
func (d *deepComposer) evaluate(x field.Element, row []field.Element, hx, hnx field.Element) (field.Element, error) {
	inv, err := core.BatchInversion(d.denominators(x))
	if err != nil {
		return field.Zero, fmt.Errorf("DEEP denominator vanishes at %v", x)
	}
	return d.combine(row, hx, hnx, inv), nil
}

// evaluateOnLDE computes DEEP over the whole LDE domain. Denominators are
// inverted in one batch per chunk.
func (d *deepComposer) evaluateOnLDE(domain *ArithmeticDomain, lde [][]field.Element, composition []field.Element, workers int) ([]field.Element, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	size := domain.Length
	half := size / 2
	points := domain.Elements()
	stride := d.frameSize + 2
	out := make([]field.Element, size)

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < size; start += pointChunk {
		start, end := start, min(start+pointChunk, size)
		g.Go(func() error {
			dens := make([]field.Element, 0, (end-start)*stride)
			for i := start; i < end; i++ {
				dens = append(dens, d.denominators(points[i])...)
			}
			inv, err := core.BatchInversion(dens)
			if err != nil {
				return fmt.Errorf("DEEP denominators in chunk at %d: %w", start, err)
			}

			row := make([]field.Element, d.width)
			for i := start; i < end; i++ {
				for c := range lde {
					row[c] = lde[c][i]
				}
				off := (i - start) * stride
				out[i] = d.combine(row, composition[i], composition[(i+half)%size], inv[off:off+stride])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
