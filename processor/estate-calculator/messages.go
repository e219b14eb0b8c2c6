package estatecalculator

import (
	"errors"
	"fmt"
	"time"

	"github.com/c360studio/faraid/engine"
)

// ComputeRequest is the message consumed from the request subject.
type ComputeRequest struct {
	// RequestID correlates the request with its result subject. It is
	// required so callers can subscribe before publishing.
	RequestID string `json:"request_id"`

	// Input is the estate computation request.
	Input engine.Input `json:"input"`
}

// Validate checks the request for structural problems the engine would
// not report usefully.
func (r *ComputeRequest) Validate() error {
	if r.RequestID == "" {
		return fmt.Errorf("request_id is required")
	}
	if len(r.Heirs()) == 0 && r.Input.EstateValue == 0 {
		return fmt.Errorf("input is empty")
	}
	return nil
}

// Heirs returns the requested heir categories.
func (r *ComputeRequest) Heirs() []engine.Heir {
	return r.Input.Heirs
}

// ComputeError carries the engine's error taxonomy across the wire.
type ComputeError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// ComputeResult is published on <result_subject_prefix>.<request_id>.
// Exactly one of Report and Error is set.
type ComputeResult struct {
	RequestID   string         `json:"request_id"`
	RulingID    string         `json:"ruling_id,omitempty"`
	Report      *engine.Report `json:"report,omitempty"`
	Error       *ComputeError  `json:"error,omitempty"`
	CompletedAt time.Time      `json:"completed_at"`
}

// classifyEngineError maps an engine error onto a stable result code.
func classifyEngineError(err error) *ComputeError {
	var unknownType *engine.UnknownHeirTypeError
	var unsupported *engine.UnsupportedCombinationError

	code := "invalid_request"
	switch {
	case errors.Is(err, engine.ErrInsolventEstate):
		code = "insolvent_estate"
	case errors.Is(err, engine.ErrNoHeirs):
		code = "no_heirs"
	case errors.As(err, &unknownType):
		code = "unknown_heir_type"
	case errors.As(err, &unsupported):
		code = "unsupported_combination"
	}

	return &ComputeError{Code: code, Detail: err.Error()}
}
