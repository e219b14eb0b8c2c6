package engine

import "fmt"

// femaleResiduaryNames are residuary heirs weighted one head against
// two for their male counterparts. Extending the catalog to further
// residuary classes reuses this weighting rather than special-casing
// heir names elsewhere.
var femaleResiduaryNames = map[string]bool{
	HeirDaughter: true,
	"full_sister": true,
}

// distributeResidue runs the residue-distribution stage: the fraction
// left after fixed shares is split among residuary heirs by weighted
// head count. With no residuary heir the residue stays unallocated for
// the reconciliation stage to absorb via Radd.
func distributeResidue(records []HeirRecord, totalFixed Rational) []HeirRecord {
	residue := One().Sub(totalFixed) // clamped; a clamp here means Awl triggers next
	if residue.IsZero() {
		return records
	}

	var residuaryIdx []int
	for i, rec := range records {
		if rec.Classification == ClassificationResiduary {
			residuaryIdx = append(residuaryIdx, i)
		}
	}
	if len(residuaryIdx) == 0 {
		return records
	}

	out := make([]HeirRecord, len(records))
	copy(out, records)

	weights := make(map[int]int64, len(residuaryIdx))
	var totalWeight int64
	for _, i := range residuaryIdx {
		w := residuaryWeight(out[i], len(residuaryIdx) == 1)
		weights[i] = w
		totalWeight += w
	}

	for _, i := range residuaryIdx {
		ratio := MustRational(weights[i], totalWeight)
		alloc := residue.Mul(ratio)
		out[i] = out[i].withShare(out[i].Share.Add(alloc), AllocationResiduary,
			fmt.Sprintf("residuary allocation %s (weight %d of %d over residue %s)",
				alloc, weights[i], totalWeight, residue))
	}
	return out
}

// residuaryWeight returns the total head weight for one residuary
// record: 2 per head for male-line residuaries, 1 per head for
// daughters and sisters sharing with them. A lone residuary class
// needs no ratio and is weighted by plain head count.
func residuaryWeight(rec HeirRecord, lone bool) int64 {
	count := int64(rec.Count)
	if lone || femaleResiduaryNames[rec.Name] {
		return count
	}
	return 2 * count
}
