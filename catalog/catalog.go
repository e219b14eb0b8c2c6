// Package catalog supplies the heir-type definitions and conditional
// rules the engine computes against.
//
// A catalog is defined either by the built-in default rule set or by a
// YAML file. Either way it is validated up front and resolved into an
// immutable engine.Snapshot before any computation runs; the engine
// itself never reads catalog data mid-pipeline.
//
// Share values in YAML use exact "num/den" literals so fractions are
// constructed rationally at the source. A catalog that cannot state a
// share exactly is a data-modelling gap, not something to approximate
// from decimals.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/faraid/engine"
)

// File is the YAML catalog document structure.
type File struct {
	Version   string     `yaml:"version" json:"version"`
	HeirTypes []HeirType `yaml:"heir_types" json:"heir_types"`
	Rules     []Rule     `yaml:"rules" json:"rules"`
}

// HeirType is one heir definition in a catalog file.
type HeirType struct {
	Name           string `yaml:"name" json:"name"`
	Classification string `yaml:"classification" json:"classification"` // fixed_share or residuary
	DefaultShare   string `yaml:"default_share,omitempty" json:"default_share,omitempty"`
}

// Rule is one conditional rule in a catalog file.
type Rule struct {
	Primary      string `yaml:"primary" json:"primary"`
	Condition    string `yaml:"condition" json:"condition"`
	Kind         string `yaml:"kind" json:"kind"` // exclusion or reduction
	ReducedShare string `yaml:"reduced_share,omitempty" json:"reduced_share,omitempty"`
}

// LoadFile reads and resolves a YAML catalog from path.
func LoadFile(path string) (*engine.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	snap, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return snap, nil
}

// Parse resolves YAML catalog bytes into an engine snapshot,
// validating fraction literals, classifications, and rule references.
func Parse(data []byte) (*engine.Snapshot, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return file.Resolve()
}

// ParseFile decodes YAML catalog bytes into the file document,
// validating it by resolution. Callers that need to persist the
// document use this; Parse is for going straight to a snapshot.
func ParseFile(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if _, err := file.Resolve(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Resolve converts the file document into an immutable snapshot.
func (f *File) Resolve() (*engine.Snapshot, error) {
	if len(f.HeirTypes) == 0 {
		return nil, fmt.Errorf("catalog defines no heir types")
	}

	types := make([]engine.HeirType, 0, len(f.HeirTypes))
	for _, t := range f.HeirTypes {
		def := engine.HeirType{
			Name:           t.Name,
			Classification: engine.Classification(t.Classification),
		}
		if t.DefaultShare != "" {
			share, err := engine.ParseRational(t.DefaultShare)
			if err != nil {
				return nil, fmt.Errorf("heir type %q: %w", t.Name, err)
			}
			def.DefaultShare = &share
		}
		types = append(types, def)
	}

	rules := make([]engine.Rule, 0, len(f.Rules))
	for i, r := range f.Rules {
		rule := engine.Rule{
			Primary:   r.Primary,
			Condition: r.Condition,
			Kind:      engine.RuleKind(r.Kind),
		}
		if r.ReducedShare != "" {
			share, err := engine.ParseRational(r.ReducedShare)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s/%s): %w", i, r.Primary, r.Condition, err)
			}
			rule.ReducedShare = &share
		}
		rules = append(rules, rule)
	}

	return engine.NewSnapshot(types, rules)
}
