package vybiumstarkfri

import "fmt"

// ErrorCode represents a Vybium STARK error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig represents an invalid configuration error
	ErrInvalidConfig

	// ErrInvalidInput represents a malformed trace or a trace that violates its AIR
	ErrInvalidInput

	// ErrInvalidAIR represents an AIR whose declared shape does not match its constraints
	ErrInvalidAIR

	// ErrProofGeneration represents a proof generation error
	ErrProofGeneration

	// ErrInvalidProof represents a proof that failed verification
	ErrInvalidProof

	// ErrSerialization represents a proof encoding or decoding error
	ErrSerialization
)

// String returns the name of the code
func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidConfig:
		return "invalid config"
	case ErrInvalidInput:
		return "invalid input"
	case ErrInvalidAIR:
		return "invalid AIR"
	case ErrProofGeneration:
		return "proof generation"
	case ErrInvalidProof:
		return "invalid proof"
	case ErrSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// StarkError represents a Vybium STARK error
type StarkError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *StarkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vybium-stark-fri error [%s]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("vybium-stark-fri error [%s]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *StarkError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *StarkError) Is(target error) bool {
	t, ok := target.(*StarkError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a StarkError
func NewError(code ErrorCode, message string, cause error) *StarkError {
	return &StarkError{Code: code, Message: message, Cause: cause}
}
