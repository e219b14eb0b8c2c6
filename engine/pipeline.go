package engine

import "fmt"

// Heir is one surviving heir category in a computation request.
type Heir struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Input is the engine's request shape. EstateValue is the net estate
// (assets minus liabilities) pre-computed by the caller; the engine
// rejects a negative value rather than attempting the subtraction
// itself.
type Input struct {
	EstateValue float64 `json:"estate_value"`
	Heirs       []Heir  `json:"heirs"`
}

// Share is the reported allocation for one heir category. Fraction is
// exact; the decimal and monetary renderings are informational.
type Share struct {
	Name            string           `json:"name"`
	Count           int              `json:"count"`
	Classification  Classification   `json:"classification"`
	Status          AllocationStatus `json:"status"`
	Fraction        Rational         `json:"fraction"`
	FractionDecimal float64          `json:"fraction_decimal"`
	Amount          float64          `json:"amount"`
	Trace           []string         `json:"trace,omitempty"`
}

// Report is the result of one completed computation. Shares are
// ordered as the heirs were supplied, including excluded categories
// with zero allocation, so the exact TotalFraction equals the sum over
// every reported share.
type Report struct {
	EstateValue   float64              `json:"estate_value"`
	TotalFraction Rational             `json:"total_fraction"`
	TotalDecimal  float64              `json:"total_fraction_decimal"`
	Status        ReconciliationStatus `json:"status"`
	Shares        []Share              `json:"shares"`
}

// Compute runs the full pipeline for one input against an immutable
// catalog snapshot and renders the report. It is a pure function:
// given identical input and snapshot it produces identical output, and
// concurrent invocations share no mutable state.
func Compute(in Input, snap *Snapshot) (*Report, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil catalog snapshot")
	}
	if in.EstateValue < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInsolventEstate, in.EstateValue)
	}
	if len(in.Heirs) == 0 {
		return nil, ErrNoHeirs
	}

	records := make([]HeirRecord, 0, len(in.Heirs))
	present := make(map[string]bool, len(in.Heirs))
	seen := make(map[string]bool, len(in.Heirs))
	var unknown []string
	for _, h := range in.Heirs {
		if h.Count < 1 {
			return nil, fmt.Errorf("heir %q has invalid count %d", h.Name, h.Count)
		}
		if seen[h.Name] {
			return nil, fmt.Errorf("duplicate heir category %q", h.Name)
		}
		seen[h.Name] = true

		def, ok := snap.HeirType(h.Name)
		if !ok {
			unknown = append(unknown, h.Name)
			continue
		}
		records = append(records, newRecord(h.Name, h.Count, def.Classification))
		present[h.Name] = true
	}
	if len(unknown) > 0 {
		return nil, &UnknownHeirTypeError{Names: unknown}
	}

	records = applyExclusions(records, present, snap)

	live := survivors(records)
	switch len(live) {
	case 0:
		// All heirs excluded: a valid terminal state, not an error.
		return render(in, records, Zero(), StatusNoHeirs), nil
	case 1:
		// A sole heir always inherits the whole estate regardless of
		// nominal classification.
		sole := live[0].withShare(One(), AllocationFixedShare,
			"sole surviving heir takes the whole estate")
		merged := mergeFinal(records, []HeirRecord{sole})
		return render(in, merged, One(), StatusSingleHeir), nil
	}

	assigned, totalFixed := assignShares(live, present, snap)
	distributed := distributeResidue(assigned, totalFixed)
	reconciled, status, err := reconcile(distributed)
	if err != nil {
		return nil, err
	}

	merged := mergeFinal(records, reconciled)
	total := Zero()
	for _, rec := range merged {
		total = total.Add(rec.Share)
	}
	if !total.Equal(One()) {
		return nil, &UnsupportedCombinationError{
			Detail: fmt.Sprintf("reconciled total is %s, not 1", total),
		}
	}
	return render(in, merged, total, status), nil
}

// mergeFinal folds the post-pipeline records back into the full input
// set, preserving input order; excluded records keep their zero share.
func mergeFinal(all, final []HeirRecord) []HeirRecord {
	byName := make(map[string]HeirRecord, len(final))
	for _, rec := range final {
		byName[rec.Name] = rec
	}
	out := make([]HeirRecord, len(all))
	for i, rec := range all {
		if f, ok := byName[rec.Name]; ok {
			out[i] = f
			continue
		}
		out[i] = rec
	}
	return out
}

// render builds the report from the final record set.
func render(in Input, records []HeirRecord, total Rational, status ReconciliationStatus) *Report {
	report := &Report{
		EstateValue:   in.EstateValue,
		TotalFraction: total,
		TotalDecimal:  total.Decimal(),
		Status:        status,
		Shares:        make([]Share, len(records)),
	}
	for i, rec := range records {
		report.Shares[i] = Share{
			Name:            rec.Name,
			Count:           rec.Count,
			Classification:  rec.Classification,
			Status:          rec.Status,
			Fraction:        rec.Share,
			FractionDecimal: rec.Share.Decimal(),
			Amount:          in.EstateValue * rec.Share.Decimal(),
			Trace:           rec.Trace,
		}
	}
	return report
}
