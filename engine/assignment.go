package engine

import "fmt"

// presenceFacts are the two boolean facts about the surviving set that
// gate context-dependent share assignment.
type presenceFacts struct {
	hasDescendant bool // son or daughter survives
	hasSon        bool
}

// surveyPresence derives the descendant facts from the surviving
// records.
func surveyPresence(records []HeirRecord) presenceFacts {
	var facts presenceFacts
	for _, rec := range records {
		switch rec.Name {
		case HeirSon:
			facts.hasSon = true
			facts.hasDescendant = true
		case HeirDaughter:
			facts.hasDescendant = true
		}
	}
	return facts
}

// assignShares runs the share-assignment stage over the surviving
// records. It applies, in fixed order: spouse shares keyed on
// descendant presence, the daughter fixed share when no son survives,
// daughter and father reclassification, catalog defaults for the
// remaining fixed-share heirs, and catalog reduction rules (catalog
// order, last applicable wins).
//
// Reduction rule conditions are evaluated against the original input
// presence set: an heir excluded by Hajb still reduces another heir's
// share, matching the exclusion stage's one-pass semantics.
//
// It returns the updated records together with the exact sum of all
// fixed shares.
func assignShares(records []HeirRecord, present map[string]bool, snap *Snapshot) ([]HeirRecord, Rational) {
	facts := surveyPresence(records)

	out := make([]HeirRecord, len(records))
	copy(out, records)

	for i, rec := range out {
		switch rec.Name {
		case HeirHusband:
			share, note := MustRational(1, 2), "husband takes 1/2, no surviving descendant"
			if facts.hasDescendant {
				share, note = MustRational(1, 4), "husband reduced to 1/4 by surviving descendant"
			}
			out[i] = rec.withShare(share, AllocationFixedShare, note)

		case HeirWife:
			share, note := MustRational(1, 4), "wife takes 1/4 collectively, no surviving descendant"
			if facts.hasDescendant {
				share, note = MustRational(1, 8), "wife reduced to 1/8 collectively by surviving descendant"
			}
			out[i] = rec.withShare(share, AllocationFixedShare, note)

		case HeirDaughter:
			if facts.hasSon {
				out[i] = rec.withClassification(ClassificationResiduary,
					"daughter inherits as residuary alongside son")
				break
			}
			if rec.Count == 1 {
				out[i] = rec.withShare(MustRational(1, 2), AllocationFixedShare,
					"sole daughter takes 1/2")
			} else {
				out[i] = rec.withShare(MustRational(2, 3), AllocationFixedShare,
					"daughters take 2/3 collectively")
			}

		case HeirFather:
			if !facts.hasDescendant {
				out[i] = rec.withClassification(ClassificationResiduary,
					"father inherits as residuary, no surviving descendant")
				break
			}
			def, _ := snap.HeirType(rec.Name)
			out[i] = rec.withShare(*def.DefaultShare, AllocationFixedShare,
				fmt.Sprintf("father keeps fixed share %s, descendant present", def.DefaultShare))
		}
	}

	// Catalog defaults for fixed-share heirs not covered above.
	for i, rec := range out {
		if rec.Classification != ClassificationFixedShare || rec.Status != AllocationPending {
			continue
		}
		def, _ := snap.HeirType(rec.Name)
		out[i] = rec.withShare(*def.DefaultShare, AllocationFixedShare,
			fmt.Sprintf("fixed share %s from catalog", def.DefaultShare))
	}

	// Reduction rules in catalog order; a later applicable rule
	// overrides an earlier one.
	for _, rule := range snap.Rules() {
		if rule.Kind != RuleReduction || !present[rule.Condition] {
			continue
		}
		for i, rec := range out {
			if rec.Name == rule.Primary && rec.Classification == ClassificationFixedShare {
				out[i] = rec.withShare(*rule.ReducedShare, AllocationFixedShare,
					fmt.Sprintf("share reduced to %s by presence of %s", rule.ReducedShare, rule.Condition))
			}
		}
	}

	total := Zero()
	for _, rec := range out {
		if rec.Classification == ClassificationFixedShare {
			total = total.Add(rec.Share)
		}
	}
	return out, total
}
