package engine

import "fmt"

// ReconciliationStatus is the terminal state of a computation. Exactly
// one status applies per computation; they are mutually exclusive.
type ReconciliationStatus string

const (
	// StatusBalanced means fixed shares and residue summed to exactly
	// the whole estate without correction.
	StatusBalanced ReconciliationStatus = "balanced"

	// StatusAwl means fixed shares over-allocated the estate and every
	// share was proportionally reduced.
	StatusAwl ReconciliationStatus = "awl"

	// StatusRadd means the residue was proportionally returned to
	// non-spouse fixed-share heirs.
	StatusRadd ReconciliationStatus = "radd"

	// StatusSingleHeir means exactly one heir survived exclusion and
	// took the whole estate.
	StatusSingleHeir ReconciliationStatus = "single_heir"

	// StatusNoHeirs means no heir survived exclusion; the estate is
	// reported with zero allocation.
	StatusNoHeirs ReconciliationStatus = "no_heirs"
)

// reconcile recomputes the allocated total across the surviving
// records and corrects over-allocation (Awl) or under-allocation
// (Radd). After either correction the total is exactly 1 by
// construction: every adjusted share is derived by dividing or
// multiplying with the same factor that detected the imbalance.
func reconcile(records []HeirRecord) ([]HeirRecord, ReconciliationStatus, error) {
	total := Zero()
	anyResiduary := false
	for _, rec := range records {
		total = total.Add(rec.Share)
		if rec.Classification == ClassificationResiduary {
			anyResiduary = true
		}
	}

	switch total.Cmp(One()) {
	case 0:
		return records, StatusBalanced, nil
	case 1:
		return applyAwl(records, total), StatusAwl, nil
	}

	// Under-allocation with a residuary heir present means the residue
	// stage should already have absorbed the remainder; no rule path
	// covers this combination.
	if anyResiduary {
		return nil, "", &UnsupportedCombinationError{
			Detail: fmt.Sprintf("allocated total %s with residuary heirs present", total),
		}
	}
	out, err := applyRadd(records)
	if err != nil {
		return nil, "", err
	}
	return out, StatusRadd, nil
}

// applyAwl divides every share by the over-allocated total (the Awl
// factor), shrinking all shares proportionally so they sum to exactly
// 1. No heir is removed and relative proportions are preserved.
func applyAwl(records []HeirRecord, total Rational) []HeirRecord {
	out := make([]HeirRecord, len(records))
	for i, rec := range records {
		if rec.Share.IsZero() {
			out[i] = rec.withShare(Zero(), AllocationNotAllocated, "no share to adjust under Awl")
			continue
		}
		out[i] = rec.withShare(rec.Share.Div(total), AllocationAwlAdjusted,
			fmt.Sprintf("share reduced by Awl factor %s", total))
	}
	return out
}

// applyRadd proportionally returns the unallocated residue to
// non-spouse fixed-share heirs. Spouse shares are locked at their
// post-reduction value; the pool 1 - (spouse shares) is redistributed
// over the Radd-eligible shares, replacing each prior share. Heirs
// outside the eligible set end with zero and are marked not allocated.
func applyRadd(records []HeirRecord) ([]HeirRecord, error) {
	spouseSum := Zero()
	eligibleSum := Zero()
	for _, rec := range records {
		if isSpouse(rec.Name) {
			spouseSum = spouseSum.Add(rec.Share)
			continue
		}
		eligibleSum = eligibleSum.Add(rec.Share)
	}

	if eligibleSum.IsZero() {
		return nil, &UnsupportedCombinationError{
			Detail: "residue remains but no Radd-eligible heir holds a share",
		}
	}

	pool := One().Sub(spouseSum)
	out := make([]HeirRecord, len(records))
	for i, rec := range records {
		switch {
		case isSpouse(rec.Name):
			out[i] = rec.withShare(rec.Share, rec.Status, "spouse share locked during Radd")
		case rec.Share.IsZero():
			out[i] = rec.withShare(Zero(), AllocationNotAllocated, "not allocated: ineligible for Radd")
		default:
			share := pool.Mul(rec.Share.Div(eligibleSum))
			out[i] = rec.withShare(share, AllocationRaddAdjusted,
				fmt.Sprintf("share recomputed from Radd pool %s", pool))
		}
	}
	return out, nil
}

// isSpouse reports whether name is a spouse heir, the only class
// barred from receiving Radd.
func isSpouse(name string) bool {
	return name == HeirHusband || name == HeirWife
}
