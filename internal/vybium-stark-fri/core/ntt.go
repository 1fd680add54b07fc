package core

import (
	"fmt"
	"runtime"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// Butterfly stages of domains at least this large are split across goroutines.
const parallelNTTThreshold = 1 << 12

const twiddleCacheSize = 64

var twiddleCache *lru.Cache

func init() {
	cache, err := lru.New(twiddleCacheSize)
	if err != nil {
		panic(fmt.Sprintf("core: twiddle cache: %v", err))
	}
	twiddleCache = cache
}

type twiddleKey struct {
	root uint64
	size int
}

// twiddles returns [1, root, root^2, ..., root^(size/2-1)], cached per (root, size).
func twiddles(root field.Element, size int) []field.Element {
	key := twiddleKey{root: root.Value(), size: size}
	if cached, ok := twiddleCache.Get(key); ok {
		return cached.([]field.Element)
	}
	tw := Powers(root, size/2)
	twiddleCache.Add(key, tw)
	return tw
}

func bitReverse(values []field.Element) {
	n := len(values)
	logN := 0
	for 1<<logN < n {
		logN++
	}
	for i := 0; i < n; i++ {
		j := reverseBits(i, logN)
		if i < j {
			values[i], values[j] = values[j], values[i]
		}
	}
}

func reverseBits(x, bits int) int {
	r := 0
	for i := 0; i < bits; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// NTT evaluates the polynomial whose coefficients are given in values on
// {root^i}, in place. len(values) must be a power of two and root must have
// exactly that order.
func NTT(values []field.Element, root field.Element, workers int) error {
	n := len(values)
	if n == 0 || n&(n-1) != 0 {
		return fmt.Errorf("%w: ntt size %d", ErrNotPowerOfTwo, n)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	bitReverse(values)
	tw := twiddles(root, n)

	for half := 1; half < n; half <<= 1 {
		stride := n / (2 * half)
		butterfly := func(b int) {
			block, k := b/half, b%half
			i := block*2*half + k
			j := i + half
			t := values[j].Mul(tw[k*stride])
			values[j] = values[i].Sub(t)
			values[i] = values[i].Add(t)
		}

		if n < parallelNTTThreshold || workers == 1 {
			for b := 0; b < n/2; b++ {
				butterfly(b)
			}
			continue
		}

		// each butterfly touches a distinct (i, j) pair within a stage
		var g errgroup.Group
		chunk := (n/2 + workers - 1) / workers
		for start := 0; start < n/2; start += chunk {
			start, end := start, min(start+chunk, n/2)
			g.Go(func() error {
				for b := start; b < end; b++ {
					butterfly(b)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// INTT is the inverse of NTT for the same root.
func INTT(values []field.Element, root field.Element, workers int) error {
	if err := NTT(values, root.Inverse(), workers); err != nil {
		return err
	}
	nInv := field.New(uint64(len(values))).Inverse()
	for i := range values {
		values[i] = values[i].Mul(nInv)
	}
	return nil
}

// EvaluateOnCoset evaluates p on {offset * root^i : i < size}.
func EvaluateOnCoset(p *Polynomial, offset, root field.Element, size, workers int) ([]field.Element, error) {
	if p.Degree() >= size {
		return nil, fmt.Errorf("polynomial of degree %d does not fit a domain of size %d", p.Degree(), size)
	}

	values := make([]field.Element, size)
	power := field.One
	for i := range values {
		values[i] = p.Coefficient(i).Mul(power)
		power = power.Mul(offset)
	}
	if err := NTT(values, root, workers); err != nil {
		return nil, err
	}
	return values, nil
}

// InterpolateOnCoset returns the polynomial of degree < len(values) taking
// values[i] at offset * root^i.
func InterpolateOnCoset(values []field.Element, offset, root field.Element, workers int) (*Polynomial, error) {
	coeffs := make([]field.Element, len(values))
	copy(coeffs, values)
	if err := INTT(coeffs, root, workers); err != nil {
		return nil, err
	}

	offsetInv := offset.Inverse()
	power := field.One
	for i := range coeffs {
		coeffs[i] = coeffs[i].Mul(power)
		power = power.Mul(offsetInv)
	}
	return NewPolynomial(coeffs), nil
}
