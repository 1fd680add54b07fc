package protocols

import (
	"encoding/binary"
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
)

// proofVersion prefixes every encoded proof.
const proofVersion = 1

// StarkProof is everything the verifier receives besides the AIR and the
// Config. It carries no domain sizes and no query indices; both are derived.
type StarkProof struct {
	// TraceRoot commits to the LDE of the trace, one leaf per row
	TraceRoot []byte

	// OODTraceEvaluations[k][c] = T_c(z * w^k)
	OODTraceEvaluations [][]field.Element

	// OODCompositionEvaluations = (H1(z^2), H2(z^2))
	OODCompositionEvaluations [2]field.Element

	FriLayerRoots [][]byte
	FriLastLayer  field.Element

	Queries []QueryProof
}

// TraceOpening is one trace row of the LDE with its authentication path.
type TraceOpening struct {
	Values []field.Element
	Proof  *core.MerkleProof
}

// QueryProof answers one query q. TraceOpenings holds FrameSize rows at
// q + k*blowup followed by FrameSize rows at the mirrored index.
type QueryProof struct {
	TraceOpenings     []TraceOpening
	CompositionValues [2]field.Element // H(x_q), H(-x_q)
	Fri               FriDecommitment
}

// Size returns the encoded size in bytes.
func (p *StarkProof) Size() int {
	data, err := p.MarshalBinary()
	if err != nil {
		return 0
	}
	return len(data)
}

// String returns a short summary of the proof
func (p *StarkProof) String() string {
	return fmt.Sprintf("StarkProof{frame: %d, fri layers: %d, queries: %d, size: %d bytes}",
		len(p.OODTraceEvaluations), len(p.FriLayerRoots), len(p.Queries), p.Size())
}

type proofWriter struct {
	buf []byte
	err error
}

func (w *proofWriter) uint32(v int) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
}

func (w *proofWriter) bytes(b []byte) {
	w.uint32(len(b))
	w.buf = append(w.buf, b...)
}

func (w *proofWriter) element(e field.Element) {
	w.buf = core.AppendElement(w.buf, e)
}

func (w *proofWriter) elements(es []field.Element) {
	w.uint32(len(es))
	for _, e := range es {
		w.element(e)
	}
}

func (w *proofWriter) merkle(p *core.MerkleProof) {
	if w.err != nil {
		return
	}
	if p == nil {
		w.err = fmt.Errorf("missing Merkle proof")
		return
	}
	data, err := p.MarshalBinary()
	if err != nil {
		w.err = err
		return
	}
	w.buf = append(w.buf, data...)
}

// MarshalBinary encodes the proof field by field, big-endian, with uint32
// length prefixes on every variable-size part.
func (p *StarkProof) MarshalBinary() ([]byte, error) {
	w := &proofWriter{buf: make([]byte, 0, 4096)}
	w.buf = append(w.buf, proofVersion)

	w.bytes(p.TraceRoot)
	w.uint32(len(p.OODTraceEvaluations))
	for _, row := range p.OODTraceEvaluations {
		w.elements(row)
	}
	w.element(p.OODCompositionEvaluations[0])
	w.element(p.OODCompositionEvaluations[1])

	w.uint32(len(p.FriLayerRoots))
	for _, root := range p.FriLayerRoots {
		w.bytes(root)
	}
	w.element(p.FriLastLayer)

	w.uint32(len(p.Queries))
	for _, q := range p.Queries {
		w.uint32(len(q.TraceOpenings))
		for _, o := range q.TraceOpenings {
			w.elements(o.Values)
			w.merkle(o.Proof)
		}
		w.element(q.CompositionValues[0])
		w.element(q.CompositionValues[1])

		w.uint32(len(q.Fri.Layers))
		for _, l := range q.Fri.Layers {
			w.element(l.Value)
			w.element(l.SymmetricValue)
			w.merkle(l.Proof)
			w.merkle(l.SymmetricProof)
		}
	}

	if w.err != nil {
		return nil, fmt.Errorf("encode proof: %w", w.err)
	}
	return w.buf, nil
}

type proofReader struct {
	data []byte
	err  error
}

func (r *proofReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s", ErrMalformedProof, fmt.Sprintf(format, args...))
	}
}

// count reads a length prefix for items of at least minSize bytes each.
func (r *proofReader) count(minSize int) int {
	if r.err != nil {
		return 0
	}
	if len(r.data) < 4 {
		r.fail("truncated length")
		return 0
	}
	n := int(binary.BigEndian.Uint32(r.data))
	r.data = r.data[4:]
	if minSize > 0 && n > len(r.data)/minSize {
		r.fail("length %d exceeds remaining %d bytes", n, len(r.data))
		return 0
	}
	return n
}

func (r *proofReader) bytes() []byte {
	n := r.count(1)
	if r.err != nil {
		return nil
	}
	out := append([]byte(nil), r.data[:n]...)
	r.data = r.data[n:]
	return out
}

func (r *proofReader) element() field.Element {
	if r.err != nil {
		return field.Zero
	}
	if len(r.data) < core.ElementSize {
		r.fail("truncated field element")
		return field.Zero
	}
	e, err := core.DecodeElement(r.data[:core.ElementSize])
	if err != nil {
		r.fail("%v", err)
		return field.Zero
	}
	r.data = r.data[core.ElementSize:]
	return e
}

func (r *proofReader) elements() []field.Element {
	n := r.count(core.ElementSize)
	if r.err != nil {
		return nil
	}
	out := make([]field.Element, n)
	for i := range out {
		out[i] = r.element()
	}
	return out
}

func (r *proofReader) merkle() *core.MerkleProof {
	if r.err != nil {
		return nil
	}
	proof, rest, err := core.DecodeMerkleProof(r.data)
	if err != nil {
		r.fail("%v", err)
		return nil
	}
	r.data = rest
	return proof
}

// UnmarshalBinary decodes a proof produced by MarshalBinary. Trailing bytes
// are rejected.
func (p *StarkProof) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || data[0] != proofVersion {
		return fmt.Errorf("%w: unsupported version", ErrMalformedProof)
	}
	r := &proofReader{data: data[1:]}
	var out StarkProof

	out.TraceRoot = r.bytes()
	out.OODTraceEvaluations = make([][]field.Element, r.count(4))
	for k := range out.OODTraceEvaluations {
		out.OODTraceEvaluations[k] = r.elements()
	}
	out.OODCompositionEvaluations = [2]field.Element{r.element(), r.element()}

	out.FriLayerRoots = make([][]byte, r.count(4))
	for i := range out.FriLayerRoots {
		out.FriLayerRoots[i] = r.bytes()
	}
	out.FriLastLayer = r.element()

	out.Queries = make([]QueryProof, r.count(8))
	for i := range out.Queries {
		q := &out.Queries[i]
		q.TraceOpenings = make([]TraceOpening, r.count(8))
		for j := range q.TraceOpenings {
			q.TraceOpenings[j].Values = r.elements()
			q.TraceOpenings[j].Proof = r.merkle()
		}
		q.CompositionValues = [2]field.Element{r.element(), r.element()}

		q.Fri.Layers = make([]FriLayerOpening, r.count(2*core.ElementSize+8))
		for j := range q.Fri.Layers {
			l := &q.Fri.Layers[j]
			l.Value = r.element()
			l.SymmetricValue = r.element()
			l.Proof = r.merkle()
			l.SymmetricProof = r.merkle()
		}
	}

	if r.err != nil {
		return r.err
	}
	if len(r.data) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedProof, len(r.data))
	}
	*p = out
	return nil
}
