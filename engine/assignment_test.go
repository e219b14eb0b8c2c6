package engine

import "testing"

// assign is a test shorthand running the share-assignment stage over
// freshly built records for the named heirs.
func assign(t *testing.T, snap *Snapshot, heirs ...Heir) ([]HeirRecord, Rational) {
	t.Helper()
	records := make([]HeirRecord, 0, len(heirs))
	present := make(map[string]bool, len(heirs))
	for _, h := range heirs {
		def, ok := snap.HeirType(h.Name)
		if !ok {
			t.Fatalf("heir %q not in test snapshot", h.Name)
		}
		records = append(records, newRecord(h.Name, h.Count, def.Classification))
		present[h.Name] = true
	}
	return assignShares(records, present, snap)
}

func findRecord(t *testing.T, records []HeirRecord, name string) HeirRecord {
	t.Helper()
	for _, rec := range records {
		if rec.Name == name {
			return rec
		}
	}
	t.Fatalf("no record for %q", name)
	return HeirRecord{}
}

func TestAssignSpouseShares(t *testing.T) {
	snap := testSnapshot(t)

	tests := []struct {
		name   string
		heirs  []Heir
		spouse string
		want   Rational
	}{
		{
			name:   "husband without descendant",
			heirs:  []Heir{{Name: HeirHusband, Count: 1}, {Name: HeirMother, Count: 1}},
			spouse: HeirHusband,
			want:   MustRational(1, 2),
		},
		{
			name:   "husband with descendant",
			heirs:  []Heir{{Name: HeirHusband, Count: 1}, {Name: HeirDaughter, Count: 1}},
			spouse: HeirHusband,
			want:   MustRational(1, 4),
		},
		{
			name:   "wife without descendant",
			heirs:  []Heir{{Name: HeirWife, Count: 1}, {Name: HeirMother, Count: 1}},
			spouse: HeirWife,
			want:   MustRational(1, 4),
		},
		{
			name:   "wives share collectively with descendant",
			heirs:  []Heir{{Name: HeirWife, Count: 3}, {Name: HeirSon, Count: 1}},
			spouse: HeirWife,
			want:   MustRational(1, 8),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, _ := assign(t, snap, tt.heirs...)
			got := findRecord(t, records, tt.spouse)
			if !got.Share.Equal(tt.want) {
				t.Errorf("%s share = %s, want %s", tt.spouse, got.Share, tt.want)
			}
			if got.Status != AllocationFixedShare {
				t.Errorf("%s status = %s, want %s", tt.spouse, got.Status, AllocationFixedShare)
			}
		})
	}
}

func TestAssignDaughterShares(t *testing.T) {
	snap := testSnapshot(t)

	t.Run("sole daughter takes half", func(t *testing.T) {
		records, _ := assign(t, snap, Heir{Name: HeirDaughter, Count: 1}, Heir{Name: HeirMother, Count: 1})
		got := findRecord(t, records, HeirDaughter)
		if !got.Share.Equal(MustRational(1, 2)) {
			t.Errorf("daughter share = %s, want 1/2", got.Share)
		}
	})

	t.Run("plural daughters take two thirds collectively", func(t *testing.T) {
		records, _ := assign(t, snap, Heir{Name: HeirDaughter, Count: 2}, Heir{Name: HeirMother, Count: 1})
		got := findRecord(t, records, HeirDaughter)
		if !got.Share.Equal(MustRational(2, 3)) {
			t.Errorf("daughters share = %s, want 2/3", got.Share)
		}
	})

	t.Run("son reclassifies daughter as residuary", func(t *testing.T) {
		records, _ := assign(t, snap, Heir{Name: HeirDaughter, Count: 1}, Heir{Name: HeirSon, Count: 1})
		got := findRecord(t, records, HeirDaughter)
		if got.Classification != ClassificationResiduary {
			t.Errorf("daughter classification = %s, want %s", got.Classification, ClassificationResiduary)
		}
		if !got.Share.IsZero() {
			t.Errorf("reclassified daughter share = %s, want 0", got.Share)
		}
	})
}

func TestAssignFatherReclassification(t *testing.T) {
	snap := testSnapshot(t)

	t.Run("father keeps fixed share with descendant", func(t *testing.T) {
		records, _ := assign(t, snap, Heir{Name: HeirFather, Count: 1}, Heir{Name: HeirDaughter, Count: 1})
		got := findRecord(t, records, HeirFather)
		if got.Classification != ClassificationFixedShare {
			t.Errorf("father classification = %s, want %s", got.Classification, ClassificationFixedShare)
		}
		if !got.Share.Equal(MustRational(1, 6)) {
			t.Errorf("father share = %s, want 1/6", got.Share)
		}
	})

	t.Run("father becomes residuary without descendant", func(t *testing.T) {
		records, _ := assign(t, snap, Heir{Name: HeirFather, Count: 1}, Heir{Name: HeirMother, Count: 1})
		got := findRecord(t, records, HeirFather)
		if got.Classification != ClassificationResiduary {
			t.Errorf("father classification = %s, want %s", got.Classification, ClassificationResiduary)
		}
	})
}

func TestAssignReductionRules(t *testing.T) {
	snap := testSnapshot(t)

	t.Run("mother reduced by descendant", func(t *testing.T) {
		records, _ := assign(t, snap, Heir{Name: HeirMother, Count: 1}, Heir{Name: HeirSon, Count: 1})
		got := findRecord(t, records, HeirMother)
		if !got.Share.Equal(MustRational(1, 6)) {
			t.Errorf("mother share = %s, want 1/6", got.Share)
		}
	})

	t.Run("mother keeps default without descendant", func(t *testing.T) {
		records, _ := assign(t, snap, Heir{Name: HeirMother, Count: 1}, Heir{Name: HeirHusband, Count: 1})
		got := findRecord(t, records, HeirMother)
		if !got.Share.Equal(MustRational(1, 3)) {
			t.Errorf("mother share = %s, want 1/3", got.Share)
		}
	})

	t.Run("last applicable reduction in catalog order wins", func(t *testing.T) {
		types := []HeirType{
			{Name: HeirMother, Classification: ClassificationFixedShare, DefaultShare: ratPtr(1, 3)},
			{Name: HeirSon, Classification: ClassificationResiduary},
		}
		rules := []Rule{
			{Primary: HeirMother, Condition: HeirSon, Kind: RuleReduction, ReducedShare: ratPtr(1, 4)},
			{Primary: HeirMother, Condition: HeirSon, Kind: RuleReduction, ReducedShare: ratPtr(1, 6)},
		}
		ordered, err := NewSnapshot(types, rules)
		if err != nil {
			t.Fatalf("NewSnapshot error = %v", err)
		}
		records, _ := assign(t, ordered, Heir{Name: HeirMother, Count: 1}, Heir{Name: HeirSon, Count: 1})
		got := findRecord(t, records, HeirMother)
		if !got.Share.Equal(MustRational(1, 6)) {
			t.Errorf("mother share = %s, want 1/6 (last rule)", got.Share)
		}
	})
}

func TestAssignFixedShareTotal(t *testing.T) {
	snap := testSnapshot(t)

	// Scenario: mother 1/6 + father 1/6 + daughter 1/2 = 5/6, computed
	// by exact addition.
	_, total := assign(t, snap,
		Heir{Name: HeirMother, Count: 1},
		Heir{Name: HeirFather, Count: 1},
		Heir{Name: HeirDaughter, Count: 1},
	)
	if !total.Equal(MustRational(5, 6)) {
		t.Errorf("fixed-share total = %s, want 5/6", total)
	}
}
