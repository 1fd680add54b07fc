package protocols

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProof is the single rejection result of Verify. The failing
	// check is only logged.
	ErrInvalidProof = errors.New("invalid proof")

	// ErrMalformedProof reports bytes that do not decode to a StarkProof
	ErrMalformedProof = errors.New("malformed proof encoding")

	// ErrInvalidTrace reports a trace with the wrong shape for its AIR
	ErrInvalidTrace = errors.New("invalid trace")

	// ErrTraceNotSatisfying reports a trace that violates a constraint
	ErrTraceNotSatisfying = errors.New("trace does not satisfy the AIR")

	// ErrInvalidAIR reports an AIR whose declared shape does not match its constraints
	ErrInvalidAIR = errors.New("invalid AIR")

	// ErrDegreeBoundExceeded reports a FRI input that is not of the claimed degree
	ErrDegreeBoundExceeded = errors.New("degree bound exceeded")
)

// AIRError describes why an AIR was rejected.
type AIRError struct {
	Reason string
}

func (e *AIRError) Error() string {
	return fmt.Sprintf("invalid AIR: %s", e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidAIR.
func (e *AIRError) Unwrap() error {
	return ErrInvalidAIR
}

func airErrorf(format string, args ...any) error {
	return &AIRError{Reason: fmt.Sprintf(format, args...)}
}

// rejection carries the failing check inside the verifier; it is logged and
// then collapsed into ErrInvalidProof.
type rejection struct {
	check  string
	detail string
}

func (r *rejection) Error() string {
	return r.check + ": " + r.detail
}

func reject(check, format string, args ...any) error {
	return &rejection{check: check, detail: fmt.Sprintf(format, args...)}
}
