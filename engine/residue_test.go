package engine

import "testing"

func TestDistributeResidue(t *testing.T) {
	t.Run("sole residuary takes whole residue", func(t *testing.T) {
		records := []HeirRecord{
			newRecord(HeirHusband, 1, ClassificationFixedShare).
				withShare(MustRational(1, 4), AllocationFixedShare, ""),
			newRecord(HeirSon, 1, ClassificationResiduary),
		}
		out := distributeResidue(records, MustRational(1, 4))
		son := findRecord(t, out, HeirSon)
		if !son.Share.Equal(MustRational(3, 4)) {
			t.Errorf("son share = %s, want 3/4", son.Share)
		}
		if son.Status != AllocationResiduary {
			t.Errorf("son status = %s, want %s", son.Status, AllocationResiduary)
		}
	})

	t.Run("two to one ratio between son and daughters", func(t *testing.T) {
		// Wife 1/8 fixed; residue 7/8 over son (weight 2) and two
		// daughters (weight 1 each): son 7/16, daughters 7/16 together.
		records := []HeirRecord{
			newRecord(HeirWife, 1, ClassificationFixedShare).
				withShare(MustRational(1, 8), AllocationFixedShare, ""),
			newRecord(HeirSon, 1, ClassificationResiduary),
			newRecord(HeirDaughter, 2, ClassificationResiduary),
		}
		out := distributeResidue(records, MustRational(1, 8))

		son := findRecord(t, out, HeirSon)
		if !son.Share.Equal(MustRational(7, 16)) {
			t.Errorf("son share = %s, want 7/16", son.Share)
		}
		daughters := findRecord(t, out, HeirDaughter)
		if !daughters.Share.Equal(MustRational(7, 16)) {
			t.Errorf("daughters share = %s, want 7/16 collectively", daughters.Share)
		}
	})

	t.Run("lone residuary class weighted by head count", func(t *testing.T) {
		records := []HeirRecord{
			newRecord(HeirMother, 1, ClassificationFixedShare).
				withShare(MustRational(1, 3), AllocationFixedShare, ""),
			newRecord(HeirFather, 1, ClassificationResiduary),
		}
		out := distributeResidue(records, MustRational(1, 3))
		father := findRecord(t, out, HeirFather)
		if !father.Share.Equal(MustRational(2, 3)) {
			t.Errorf("father share = %s, want 2/3", father.Share)
		}
	})

	t.Run("no residuary leaves records untouched", func(t *testing.T) {
		records := []HeirRecord{
			newRecord(HeirHusband, 1, ClassificationFixedShare).
				withShare(MustRational(1, 4), AllocationFixedShare, ""),
			newRecord(HeirDaughter, 1, ClassificationFixedShare).
				withShare(MustRational(1, 2), AllocationFixedShare, ""),
		}
		out := distributeResidue(records, MustRational(3, 4))
		for i := range out {
			if !out[i].Share.Equal(records[i].Share) {
				t.Errorf("%s share changed to %s", out[i].Name, out[i].Share)
			}
		}
	})

	t.Run("zero residue is a no-op", func(t *testing.T) {
		records := []HeirRecord{
			newRecord(HeirSon, 1, ClassificationResiduary),
		}
		out := distributeResidue(records, One())
		if !out[0].Share.IsZero() {
			t.Errorf("son share = %s, want 0 with no residue", out[0].Share)
		}
	})

	t.Run("over-allocated total clamps residue to zero", func(t *testing.T) {
		records := []HeirRecord{
			newRecord(HeirSon, 1, ClassificationResiduary),
		}
		out := distributeResidue(records, MustRational(4, 3))
		if !out[0].Share.IsZero() {
			t.Errorf("son share = %s, want 0 when fixed shares over-allocate", out[0].Share)
		}
	})
}

func TestResiduaryWeight(t *testing.T) {
	tests := []struct {
		name string
		rec  HeirRecord
		lone bool
		want int64
	}{
		{name: "son", rec: newRecord(HeirSon, 1, ClassificationResiduary), want: 2},
		{name: "two sons", rec: newRecord(HeirSon, 2, ClassificationResiduary), want: 4},
		{name: "daughter with son", rec: newRecord(HeirDaughter, 3, ClassificationResiduary), want: 3},
		{name: "full sister with brother", rec: newRecord("full_sister", 1, ClassificationResiduary), want: 1},
		{name: "lone father by head count", rec: newRecord(HeirFather, 1, ClassificationResiduary), lone: true, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := residuaryWeight(tt.rec, tt.lone); got != tt.want {
				t.Errorf("residuaryWeight(%s) = %d, want %d", tt.rec.Name, got, tt.want)
			}
		})
	}
}
