package engine

import "testing"

// ratPtr builds a *Rational for catalog literals in tests.
func ratPtr(num, den int64) *Rational {
	r := MustRational(num, den)
	return &r
}

// testSnapshot builds the rule catalog the stage and pipeline tests run
// against. It mirrors the shipped default catalog.
func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	types := []HeirType{
		{Name: HeirHusband, Classification: ClassificationFixedShare, DefaultShare: ratPtr(1, 2)},
		{Name: HeirWife, Classification: ClassificationFixedShare, DefaultShare: ratPtr(1, 4)},
		{Name: HeirSon, Classification: ClassificationResiduary},
		{Name: HeirDaughter, Classification: ClassificationFixedShare, DefaultShare: ratPtr(1, 2)},
		{Name: HeirFather, Classification: ClassificationFixedShare, DefaultShare: ratPtr(1, 6)},
		{Name: HeirMother, Classification: ClassificationFixedShare, DefaultShare: ratPtr(1, 3)},
		{Name: "paternal_grandfather", Classification: ClassificationFixedShare, DefaultShare: ratPtr(1, 6)},
		{Name: "grandmother", Classification: ClassificationFixedShare, DefaultShare: ratPtr(1, 6)},
		{Name: "full_brother", Classification: ClassificationResiduary},
		{Name: "full_sister", Classification: ClassificationFixedShare, DefaultShare: ratPtr(1, 2)},
	}
	rules := []Rule{
		{Primary: "grandmother", Condition: HeirMother, Kind: RuleExclusion},
		{Primary: "paternal_grandfather", Condition: HeirFather, Kind: RuleExclusion},
		{Primary: "full_brother", Condition: HeirFather, Kind: RuleExclusion},
		{Primary: "full_brother", Condition: HeirSon, Kind: RuleExclusion},
		{Primary: "full_sister", Condition: HeirFather, Kind: RuleExclusion},
		{Primary: "full_sister", Condition: HeirSon, Kind: RuleExclusion},
		{Primary: HeirMother, Condition: HeirSon, Kind: RuleReduction, ReducedShare: ratPtr(1, 6)},
		{Primary: HeirMother, Condition: HeirDaughter, Kind: RuleReduction, ReducedShare: ratPtr(1, 6)},
	}

	snap, err := NewSnapshot(types, rules)
	if err != nil {
		t.Fatalf("NewSnapshot error = %v", err)
	}
	return snap
}

// shareOf finds the reported share for an heir name.
func shareOf(t *testing.T, report *Report, name string) Share {
	t.Helper()
	for _, s := range report.Shares {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no share reported for %q", name)
	return Share{}
}

func TestNewSnapshotValidation(t *testing.T) {
	tests := []struct {
		name  string
		types []HeirType
		rules []Rule
	}{
		{
			name:  "fixed share without default",
			types: []HeirType{{Name: "aunt", Classification: ClassificationFixedShare}},
		},
		{
			name: "residuary with default share",
			types: []HeirType{
				{Name: "uncle", Classification: ClassificationResiduary, DefaultShare: ratPtr(1, 2)},
			},
		},
		{
			name:  "unknown classification",
			types: []HeirType{{Name: "cousin", Classification: "distant"}},
		},
		{
			name: "duplicate type",
			types: []HeirType{
				{Name: HeirSon, Classification: ClassificationResiduary},
				{Name: HeirSon, Classification: ClassificationResiduary},
			},
		},
		{
			name:  "rule with undefined primary",
			types: []HeirType{{Name: HeirSon, Classification: ClassificationResiduary}},
			rules: []Rule{{Primary: "ghost", Condition: HeirSon, Kind: RuleExclusion}},
		},
		{
			name:  "reduction without reduced share",
			types: []HeirType{{Name: HeirSon, Classification: ClassificationResiduary}},
			rules: []Rule{{Primary: HeirSon, Condition: HeirSon, Kind: RuleReduction}},
		},
		{
			name:  "exclusion with reduced share",
			types: []HeirType{{Name: HeirSon, Classification: ClassificationResiduary}},
			rules: []Rule{{Primary: HeirSon, Condition: HeirSon, Kind: RuleExclusion, ReducedShare: ratPtr(1, 2)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSnapshot(tt.types, tt.rules); err == nil {
				t.Error("NewSnapshot expected validation error")
			}
		})
	}
}
