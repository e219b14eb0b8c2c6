package engine

import (
	"fmt"
	"sort"
)

// Well-known heir names the share-assignment stage keys on. Catalogs
// may define further heir types freely; only these names carry
// context-dependent behaviour inside the engine.
const (
	HeirHusband  = "husband"
	HeirWife     = "wife"
	HeirSon      = "son"
	HeirDaughter = "daughter"
	HeirFather   = "father"
	HeirMother   = "mother"
)

// RuleKind distinguishes the two conditional rule families.
type RuleKind string

const (
	// RuleExclusion bars the primary heir entirely when the condition
	// heir is present (Hajb hirman).
	RuleExclusion RuleKind = "exclusion"

	// RuleReduction replaces the primary heir's fixed share with the
	// rule's reduced share when the condition heir is present
	// (Hajb nuqsan).
	RuleReduction RuleKind = "reduction"
)

// HeirType is one catalog-supplied heir definition. Residuary heirs
// carry no default share; their allocation is always computed from the
// residue.
type HeirType struct {
	Name           string
	Classification Classification
	DefaultShare   *Rational
}

// Rule is one catalog-supplied conditional rule. ReducedShare is set
// only for RuleReduction.
type Rule struct {
	Primary      string
	Condition    string
	Kind         RuleKind
	ReducedShare *Rational
}

// Snapshot is the immutable rule catalog view one computation runs
// against. Rule order is preserved: when several reduction rules apply
// to the same heir, the last applicable rule in catalog order wins.
//
// A Snapshot must not change for the duration of a computation;
// callers hand every computation its own already-resolved snapshot and
// the engine performs no catalog I/O.
type Snapshot struct {
	types map[string]HeirType
	rules []Rule
}

// NewSnapshot builds a Snapshot from heir type definitions and rules.
// Definitions are validated for internal consistency: fixed-share
// types need a default share, residuary types must not carry one, and
// rules may only reference defined heir types.
func NewSnapshot(types []HeirType, rules []Rule) (*Snapshot, error) {
	byName := make(map[string]HeirType, len(types))
	for _, t := range types {
		if t.Name == "" {
			return nil, fmt.Errorf("heir type with empty name")
		}
		if _, dup := byName[t.Name]; dup {
			return nil, fmt.Errorf("duplicate heir type %q", t.Name)
		}
		switch t.Classification {
		case ClassificationFixedShare:
			if t.DefaultShare == nil {
				return nil, fmt.Errorf("fixed-share heir type %q has no default share", t.Name)
			}
		case ClassificationResiduary:
			if t.DefaultShare != nil {
				return nil, fmt.Errorf("residuary heir type %q must not carry a default share", t.Name)
			}
		default:
			return nil, fmt.Errorf("heir type %q has unknown classification %q", t.Name, t.Classification)
		}
		byName[t.Name] = t
	}

	for i, r := range rules {
		if _, ok := byName[r.Primary]; !ok {
			return nil, fmt.Errorf("rule %d references undefined primary heir %q", i, r.Primary)
		}
		if _, ok := byName[r.Condition]; !ok {
			return nil, fmt.Errorf("rule %d references undefined condition heir %q", i, r.Condition)
		}
		switch r.Kind {
		case RuleExclusion:
			if r.ReducedShare != nil {
				return nil, fmt.Errorf("exclusion rule %d (%s/%s) must not carry a reduced share", i, r.Primary, r.Condition)
			}
		case RuleReduction:
			if r.ReducedShare == nil {
				return nil, fmt.Errorf("reduction rule %d (%s/%s) has no reduced share", i, r.Primary, r.Condition)
			}
		default:
			return nil, fmt.Errorf("rule %d has unknown kind %q", i, r.Kind)
		}
	}

	out := &Snapshot{
		types: byName,
		rules: make([]Rule, len(rules)),
	}
	copy(out.rules, rules)
	return out, nil
}

// HeirType returns the definition for name, if defined.
func (s *Snapshot) HeirType(name string) (HeirType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// HeirTypes returns every defined heir type sorted by name.
func (s *Snapshot) HeirTypes() []HeirType {
	out := make([]HeirType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Rules returns the conditional rules in catalog order. Callers must
// not modify the returned slice.
func (s *Snapshot) Rules() []Rule {
	return s.rules
}

// TypeCount returns the number of defined heir types.
func (s *Snapshot) TypeCount() int {
	return len(s.types)
}
