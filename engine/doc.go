// Package engine computes the distribution of a net estate among
// surviving heirs under Fara'id succession rules.
//
// The engine is a pure function of its inputs: an estate value, an
// ordered list of heir categories, and an immutable rule catalog
// snapshot. It never performs I/O and is safe for fully concurrent use;
// each computation operates on its own private record set.
//
// # Pipeline
//
// A computation runs four stages in fixed order:
//
//  1. Exclusion (Hajb): heirs barred by the presence of a closer heir
//     are marked excluded, evaluated against the original input set.
//  2. Share assignment: context-dependent fixed shares (spouse and
//     daughter shares keyed on descendant presence), reclassification
//     of daughters and the father, and catalog reduction rules.
//  3. Residue distribution: the unallocated fraction is split among
//     residuary (Asaba) heirs by the 2:1 male:female head weighting.
//  4. Reconciliation: Awl proportionally shrinks an over-allocated
//     estate; Radd proportionally returns an unallocated residue to
//     non-spouse fixed-share heirs.
//
// Data flows strictly forward; no stage revisits an earlier stage's
// decision.
//
// # Exactness
//
// All share arithmetic uses the Rational type, which keeps fractions in
// lowest terms and compares by cross-multiplication. Decimal values in
// reports are rendered for display only and never feed back into
// allocation decisions.
package engine
