// Package faraid provides the Fara'id estate-distribution vocabulary
// predicates.
//
// # Semstreams Integration
//
// This package follows semstreams vocabulary patterns:
//   - Predicates use three-level dotted notation (domain.category.property)
//   - Predicates are registered in init() using vocabulary.Register()
//   - Metadata includes description and data type
//
// # Usage
//
// Import the package to register predicates, then use predicate
// constants when building triples for graph export:
//
//	triples := []message.Triple{
//	    {Subject: entityID, Predicate: faraid.RulingStatus, Object: string(report.Status)},
//	    {Subject: entityID, Predicate: faraid.RulingEstateValue, Object: report.EstateValue},
//	}
//
// Share fractions are exported in their exact "num/den" literal form so
// downstream consumers never reconstruct them from decimals.
package faraid
