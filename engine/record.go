package engine

import "fmt"

// Classification distinguishes heirs with Qur'anic fixed shares from
// residuary (Asaba) heirs, who inherit whatever remains after fixed
// shares are allocated.
type Classification string

const (
	// ClassificationFixedShare marks an heir entitled to a designated
	// fraction of the estate.
	ClassificationFixedShare Classification = "fixed_share"

	// ClassificationResiduary marks an heir entitled to a weighted
	// portion of the residue.
	ClassificationResiduary Classification = "residuary"
)

// AllocationStatus is the machine-readable outcome for one heir
// category. It is the control-flow-relevant counterpart of the
// human-readable trace, which is diagnostic only.
type AllocationStatus string

const (
	// AllocationPending is the initial state before any stage runs.
	AllocationPending AllocationStatus = "pending"

	// AllocationExcluded marks an heir barred by a Hajb rule.
	AllocationExcluded AllocationStatus = "excluded"

	// AllocationFixedShare marks an heir holding a fixed share.
	AllocationFixedShare AllocationStatus = "fixed_share"

	// AllocationResiduary marks an heir allocated from the residue.
	AllocationResiduary AllocationStatus = "residuary"

	// AllocationAwlAdjusted marks a share proportionally reduced by Awl.
	AllocationAwlAdjusted AllocationStatus = "awl_adjusted"

	// AllocationRaddAdjusted marks a share recomputed from the Radd pool.
	AllocationRaddAdjusted AllocationStatus = "radd_adjusted"

	// AllocationNotAllocated marks a surviving heir that ends the
	// computation with no share, such as a Radd-ineligible heir whose
	// fixed share was never assigned.
	AllocationNotAllocated AllocationStatus = "not_allocated"
)

// HeirRecord is the working state for one surviving heir category
// during a single computation. Records are created at pipeline start,
// transformed by each stage, and discarded once the report is built.
// They are never shared across concurrent computations.
//
// Stages treat records as immutable inputs: transformations return
// updated copies rather than mutating in place, so each stage's
// contract can be tested in isolation.
type HeirRecord struct {
	Name           string
	Count          int
	Classification Classification
	Excluded       bool
	Share          Rational
	Status         AllocationStatus
	Trace          []string
}

// newRecord builds the initial record for an heir category from its
// catalog definition.
func newRecord(name string, count int, class Classification) HeirRecord {
	return HeirRecord{
		Name:           name,
		Count:          count,
		Classification: class,
		Status:         AllocationPending,
	}
}

// withShare returns a copy of the record holding the given share and
// status, appending a trace note.
func (h HeirRecord) withShare(share Rational, status AllocationStatus, note string) HeirRecord {
	out := h.cloneTrace()
	out.Share = share
	out.Status = status
	if note != "" {
		out.Trace = append(out.Trace, note)
	}
	return out
}

// withClassification returns a copy reclassified to class, appending a
// trace note. Reclassification clears any previously assigned share.
func (h HeirRecord) withClassification(class Classification, note string) HeirRecord {
	out := h.cloneTrace()
	out.Classification = class
	out.Share = Zero()
	if note != "" {
		out.Trace = append(out.Trace, note)
	}
	return out
}

// withExclusion returns a copy marked excluded, naming the heir whose
// presence triggered the rule.
func (h HeirRecord) withExclusion(by string) HeirRecord {
	out := h.cloneTrace()
	out.Excluded = true
	out.Share = Zero()
	out.Status = AllocationExcluded
	out.Trace = append(out.Trace, fmt.Sprintf("excluded by presence of %s", by))
	return out
}

// cloneTrace copies the record with an owned trace slice so appends on
// the copy never alias the original.
func (h HeirRecord) cloneTrace() HeirRecord {
	out := h
	out.Trace = make([]string, len(h.Trace), len(h.Trace)+1)
	copy(out.Trace, h.Trace)
	return out
}
