package faraid

import "github.com/c360studio/semstreams/vocabulary"

// Ruling predicates describe one completed estate computation.
const (
	// RulingEstateValue is the net estate value the ruling was computed for.
	RulingEstateValue = "faraid.ruling.estate_value"

	// RulingStatus is the terminal reconciliation status.
	// Values: balanced, awl, radd, single_heir, no_heirs.
	RulingStatus = "faraid.ruling.status"

	// RulingTotal is the exact allocated total as a fraction literal.
	RulingTotal = "faraid.ruling.total_fraction"

	// RulingHeirCount is the number of heir categories supplied.
	RulingHeirCount = "faraid.ruling.heir_count"

	// RulingComputedAt is the RFC3339 computation timestamp.
	RulingComputedAt = "faraid.ruling.computed_at"
)

// Share predicates describe one heir category's allocation within a
// ruling.
const (
	// ShareHeir is the heir type name the share belongs to.
	ShareHeir = "faraid.share.heir"

	// ShareCount is the surviving head count in the category.
	ShareCount = "faraid.share.count"

	// ShareClassification is fixed_share or residuary.
	ShareClassification = "faraid.share.classification"

	// ShareStatus is the allocation status.
	// Values: excluded, fixed_share, residuary, awl_adjusted, radd_adjusted, not_allocated.
	ShareStatus = "faraid.share.status"

	// ShareFraction is the exact share as a fraction literal (e.g. "7/16").
	ShareFraction = "faraid.share.fraction"

	// ShareAmount is the monetary allocation.
	ShareAmount = "faraid.share.amount"
)

func init() {
	vocabulary.Register(RulingEstateValue,
		vocabulary.WithDescription("Net estate value the ruling was computed for"),
		vocabulary.WithDataType("float"))

	vocabulary.Register(RulingStatus,
		vocabulary.WithDescription("Terminal reconciliation status"),
		vocabulary.WithDataType("string"))

	vocabulary.Register(RulingTotal,
		vocabulary.WithDescription("Exact allocated total as a fraction literal"),
		vocabulary.WithDataType("string"))

	vocabulary.Register(RulingHeirCount,
		vocabulary.WithDescription("Number of heir categories supplied"),
		vocabulary.WithDataType("int"))

	vocabulary.Register(RulingComputedAt,
		vocabulary.WithDescription("When the ruling was computed (RFC3339)"),
		vocabulary.WithDataType("datetime"))

	vocabulary.Register(ShareHeir,
		vocabulary.WithDescription("Heir type name the share belongs to"),
		vocabulary.WithDataType("string"))

	vocabulary.Register(ShareCount,
		vocabulary.WithDescription("Surviving head count in the heir category"),
		vocabulary.WithDataType("int"))

	vocabulary.Register(ShareClassification,
		vocabulary.WithDescription("Heir classification: fixed_share or residuary"),
		vocabulary.WithDataType("string"))

	vocabulary.Register(ShareStatus,
		vocabulary.WithDescription("Allocation status for the heir category"),
		vocabulary.WithDataType("string"))

	vocabulary.Register(ShareFraction,
		vocabulary.WithDescription("Exact share as a fraction literal"),
		vocabulary.WithDataType("string"))

	vocabulary.Register(ShareAmount,
		vocabulary.WithDescription("Monetary allocation for the heir category"),
		vocabulary.WithDataType("float"))
}
