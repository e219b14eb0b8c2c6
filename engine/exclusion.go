package engine

// applyExclusions runs the Hajb stage: one pass over the catalog's
// exclusion rules, marking primary heirs excluded when their condition
// heir appears in the input.
//
// Rules are evaluated against the original input presence set, never
// against partially excluded state, so two exclusion rules cannot
// chain within the single pass regardless of catalog order.
func applyExclusions(records []HeirRecord, present map[string]bool, snap *Snapshot) []HeirRecord {
	out := make([]HeirRecord, len(records))
	copy(out, records)

	for _, rule := range snap.Rules() {
		if rule.Kind != RuleExclusion {
			continue
		}
		if !present[rule.Condition] {
			continue
		}
		for i, rec := range out {
			if rec.Name == rule.Primary && !rec.Excluded {
				out[i] = rec.withExclusion(rule.Condition)
			}
		}
	}
	return out
}

// survivors returns the non-excluded records.
func survivors(records []HeirRecord) []HeirRecord {
	out := make([]HeirRecord, 0, len(records))
	for _, rec := range records {
		if !rec.Excluded {
			out = append(out, rec)
		}
	}
	return out
}
