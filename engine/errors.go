package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for deterministic input failures. All abort the
// computation before any share is reported; the engine never downgrades
// one of these into a partial or zero result.
var (
	// ErrInsolventEstate is returned when the supplied net estate value
	// is negative. Computing assets minus liabilities is the caller's
	// concern, but a negative result must never reach the pipeline.
	ErrInsolventEstate = errors.New("net estate value is negative")

	// ErrNoHeirs is returned for an empty heir list. Distinct from the
	// all-heirs-excluded terminal state, which is a valid computation
	// outcome, not an error.
	ErrNoHeirs = errors.New("no heirs supplied")
)

// UnknownHeirTypeError reports heir names with no catalog definition.
// The pipeline fails fast and lists every offending name.
type UnknownHeirTypeError struct {
	Names []string
}

func (e *UnknownHeirTypeError) Error() string {
	return fmt.Sprintf("unknown heir type(s): %s", strings.Join(e.Names, ", "))
}

// UnsupportedCombinationError reports a surviving heir combination for
// which no rule path assigns the full estate. It is raised loudly
// rather than silently returning an incomplete allocation, which would
// be financially incorrect output.
type UnsupportedCombinationError struct {
	Detail string
}

func (e *UnsupportedCombinationError) Error() string {
	return fmt.Sprintf("unsupported heir combination: %s", e.Detail)
}
