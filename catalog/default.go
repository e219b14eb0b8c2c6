package catalog

import "github.com/c360studio/faraid/engine"

// DefaultFile returns the built-in catalog document: the heir types and
// conditional rules exercised by the shipped rule set. Shares are
// stated as exact fraction literals.
//
// The built-in set covers spouses, direct descendants, parents,
// grandparents, and full siblings. Further classes extend the catalog
// through the same YAML shape without engine changes.
func DefaultFile() *File {
	return &File{
		Version: "1",
		HeirTypes: []HeirType{
			{Name: engine.HeirHusband, Classification: "fixed_share", DefaultShare: "1/2"},
			{Name: engine.HeirWife, Classification: "fixed_share", DefaultShare: "1/4"},
			{Name: engine.HeirSon, Classification: "residuary"},
			{Name: engine.HeirDaughter, Classification: "fixed_share", DefaultShare: "1/2"},
			{Name: engine.HeirFather, Classification: "fixed_share", DefaultShare: "1/6"},
			{Name: engine.HeirMother, Classification: "fixed_share", DefaultShare: "1/3"},
			{Name: "paternal_grandfather", Classification: "fixed_share", DefaultShare: "1/6"},
			{Name: "grandmother", Classification: "fixed_share", DefaultShare: "1/6"},
			{Name: "full_brother", Classification: "residuary"},
			{Name: "full_sister", Classification: "fixed_share", DefaultShare: "1/2"},
		},
		Rules: []Rule{
			{Primary: "grandmother", Condition: engine.HeirMother, Kind: "exclusion"},
			{Primary: "paternal_grandfather", Condition: engine.HeirFather, Kind: "exclusion"},
			{Primary: "full_brother", Condition: engine.HeirFather, Kind: "exclusion"},
			{Primary: "full_brother", Condition: engine.HeirSon, Kind: "exclusion"},
			{Primary: "full_sister", Condition: engine.HeirFather, Kind: "exclusion"},
			{Primary: "full_sister", Condition: engine.HeirSon, Kind: "exclusion"},
			{Primary: engine.HeirMother, Condition: engine.HeirSon, Kind: "reduction", ReducedShare: "1/6"},
			{Primary: engine.HeirMother, Condition: engine.HeirDaughter, Kind: "reduction", ReducedShare: "1/6"},
		},
	}
}

// Default resolves the built-in catalog. It panics on failure: the
// built-in document is covered by tests and must always resolve.
func Default() *engine.Snapshot {
	snap, err := DefaultFile().Resolve()
	if err != nil {
		panic("built-in catalog failed to resolve: " + err.Error())
	}
	return snap
}
