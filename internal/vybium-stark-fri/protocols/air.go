package protocols

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/utils"
)

// MinTraceLength is the smallest supported trace.
const MinTraceLength = 4

// AIRContext describes the shape of an AIR.
type AIRContext struct {
	// TraceColumns is the trace width
	TraceColumns int

	// FrameSize is the number of consecutive rows a transition reads;
	// a frame at x holds T(x), T(wx), ..., T(w^(FrameSize-1) x)
	FrameSize int

	// TransitionExemptions is the number of trailing rows where
	// transitions are not enforced
	TransitionExemptions int

	// NumTransitionConstraints is len(EvaluateTransition(frame))
	NumTransitionConstraints int

	// TransitionDegree is the highest total degree of any transition
	// constraint in the frame values
	TransitionDegree int
}

// BoundaryConstraint pins the trace cell at (Column, Row) to Value.
type BoundaryConstraint struct {
	Column int
	Row    int
	Value  field.Element
}

// AIR is an algebraic intermediate representation: the boundary and
// transition constraints a valid trace satisfies.
type AIR interface {
	// Context returns the shape of the constraint system
	Context() AIRContext

	// TraceLength is the number of rows, a power of two
	TraceLength() int

	// BoundaryConstraints pins individual trace cells
	BoundaryConstraints() []BoundaryConstraint

	// EvaluateTransition returns one value per transition constraint for
	// frame[k][column]; all values vanish on a valid trace
	EvaluateTransition(frame [][]field.Element) []field.Element

	// PublicInputs is bound into the transcript before any commitment
	PublicInputs() []byte
}

// validateAIR checks the declared context against the trace length.
func validateAIR(air AIR) error {
	ctx := air.Context()
	n := air.TraceLength()

	if n < MinTraceLength || !utils.IsPowerOfTwo(n) {
		return airErrorf("trace length %d must be a power of two >= %d", n, MinTraceLength)
	}
	if ctx.TraceColumns <= 0 {
		return airErrorf("trace must have at least one column")
	}
	if ctx.FrameSize < 1 || ctx.FrameSize > n {
		return airErrorf("frame size %d out of range for trace length %d", ctx.FrameSize, n)
	}
	if ctx.TransitionExemptions < 0 || ctx.TransitionExemptions >= n {
		return airErrorf("%d transition exemptions for trace length %d", ctx.TransitionExemptions, n)
	}
	if ctx.NumTransitionConstraints < 0 {
		return airErrorf("negative transition constraint count")
	}
	if ctx.NumTransitionConstraints > 0 && ctx.TransitionDegree < 1 {
		return airErrorf("transition degree must be positive, got %d", ctx.TransitionDegree)
	}

	seen := make(map[[2]int]bool)
	for _, bc := range air.BoundaryConstraints() {
		if bc.Column < 0 || bc.Column >= ctx.TraceColumns {
			return airErrorf("boundary constraint column %d out of range", bc.Column)
		}
		if bc.Row < 0 || bc.Row >= n {
			return airErrorf("boundary constraint row %d out of range", bc.Row)
		}
		key := [2]int{bc.Column, bc.Row}
		if seen[key] {
			return airErrorf("duplicate boundary constraint at column %d row %d", bc.Column, bc.Row)
		}
		seen[key] = true
	}
	return nil
}

// compositionDegreeBound is D = n * K with K the transition degree rounded
// up to a power of two. For degree-1 AIRs it is the trace length.
func compositionDegreeBound(air AIR) int {
	degree := max(air.Context().TransitionDegree, 1)
	return air.TraceLength() * utils.NextPowerOfTwo(degree)
}

// encodePublicInputs serializes everything the verifier knows up front.
func encodePublicInputs(air AIR, cfg *utils.Config) []byte {
	ctx := air.Context()
	out := make([]byte, 0, 128)
	for _, v := range []uint64{
		uint64(air.TraceLength()),
		uint64(ctx.TraceColumns),
		uint64(ctx.FrameSize),
		uint64(ctx.TransitionExemptions),
		uint64(ctx.NumTransitionConstraints),
		uint64(ctx.TransitionDegree),
		uint64(cfg.BlowupFactor),
		uint64(cfg.FRIQueries),
		cfg.CosetOffset,
	} {
		out = binary.BigEndian.AppendUint64(out, v)
	}
	out = append(out, cfg.HashFunction...)

	for _, bc := range sortedBoundary(air.BoundaryConstraints()) {
		out = binary.BigEndian.AppendUint64(out, uint64(bc.Column))
		out = binary.BigEndian.AppendUint64(out, uint64(bc.Row))
		out = core.AppendElement(out, bc.Value)
	}
	return append(out, air.PublicInputs()...)
}

func sortedBoundary(constraints []BoundaryConstraint) []BoundaryConstraint {
	out := append([]BoundaryConstraint(nil), constraints...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].Row < out[j].Row
	})
	return out
}

// Trace is an execution trace stored column by column.
type Trace struct {
	columns [][]field.Element
}

// NewTrace copies the given columns into a trace. All columns must have the
// same power-of-two length.
func NewTrace(columns [][]field.Element) (*Trace, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidTrace)
	}
	n := len(columns[0])
	if n < MinTraceLength || !utils.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: length %d must be a power of two >= %d", ErrInvalidTrace, n, MinTraceLength)
	}

	copied := make([][]field.Element, len(columns))
	for i, col := range columns {
		if len(col) != n {
			return nil, fmt.Errorf("%w: column %d has %d rows, expected %d", ErrInvalidTrace, i, len(col), n)
		}
		copied[i] = append([]field.Element(nil), col...)
	}
	return &Trace{columns: copied}, nil
}

// Length returns the number of rows
func (t *Trace) Length() int {
	return len(t.columns[0])
}

// Width returns the number of columns
func (t *Trace) Width() int {
	return len(t.columns)
}

// Get returns the cell at (row, column)
func (t *Trace) Get(row, column int) field.Element {
	return t.columns[column][row]
}

// Column returns a copy of one column
func (t *Trace) Column(column int) []field.Element {
	return append([]field.Element(nil), t.columns[column]...)
}

// Row returns a copy of one row
func (t *Trace) Row(row int) []field.Element {
	out := make([]field.Element, len(t.columns))
	for c := range t.columns {
		out[c] = t.columns[c][row]
	}
	return out
}

// frame returns the FrameSize rows starting at row, wrapping around.
func (t *Trace) frame(row, size int) [][]field.Element {
	out := make([][]field.Element, size)
	for k := range out {
		out[k] = t.Row((row + k) % t.Length())
	}
	return out
}

// CheckTrace verifies the trace satisfies every constraint of the AIR on the
// trace domain, naming the first violation.
func CheckTrace(air AIR, trace *Trace) error {
	ctx := air.Context()
	if trace.Length() != air.TraceLength() {
		return fmt.Errorf("%w: %d rows, AIR expects %d", ErrInvalidTrace, trace.Length(), air.TraceLength())
	}
	if trace.Width() != ctx.TraceColumns {
		return fmt.Errorf("%w: %d columns, AIR expects %d", ErrInvalidTrace, trace.Width(), ctx.TraceColumns)
	}

	for _, bc := range air.BoundaryConstraints() {
		if got := trace.Get(bc.Row, bc.Column); !got.Equal(bc.Value) {
			return fmt.Errorf("%w: boundary at column %d row %d is %v, expected %v",
				ErrTraceNotSatisfying, bc.Column, bc.Row, got, bc.Value)
		}
	}

	for row := 0; row < trace.Length()-ctx.TransitionExemptions; row++ {
		values, err := evaluateTransition(air, trace.frame(row, ctx.FrameSize))
		if err != nil {
			return err
		}
		for j, v := range values {
			if !v.IsZero() {
				return fmt.Errorf("%w: transition constraint %d fails at row %d", ErrTraceNotSatisfying, j, row)
			}
		}
	}
	return nil
}

// evaluateTransition calls the AIR and checks the result count. A panic
// inside the AIR is returned as an *AIRError.
func evaluateTransition(air AIR, frame [][]field.Element) (values []field.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			values, err = nil, airErrorf("EvaluateTransition panicked: %v", r)
		}
	}()

	values = air.EvaluateTransition(frame)
	if n := air.Context().NumTransitionConstraints; len(values) != n {
		return nil, airErrorf("EvaluateTransition returned %d values, context declares %d", len(values), n)
	}
	return values, nil
}
