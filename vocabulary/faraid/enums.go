package faraid

// RulingStatusValue represents the terminal reconciliation status of
// a computed ruling.
type RulingStatusValue string

const (
	// StatusBalanced indicates fixed shares and residue summed to exactly
	// the whole estate without adjustment.
	StatusBalanced RulingStatusValue = "balanced"

	// StatusAwl indicates the fixed shares exceeded the estate and every
	// share was scaled down proportionally.
	StatusAwl RulingStatusValue = "awl"

	// StatusRadd indicates a surplus remained with no residuary heir and
	// was returned proportionally to the eligible fixed-share heirs.
	StatusRadd RulingStatusValue = "radd"

	// StatusSingleHeir indicates exactly one heir category survived
	// exclusion and took the whole estate.
	StatusSingleHeir RulingStatusValue = "single_heir"

	// StatusNoHeirs indicates no heir category survived exclusion.
	StatusNoHeirs RulingStatusValue = "no_heirs"
)

// ShareClassValue represents how an heir category participates in the
// distribution.
type ShareClassValue string

const (
	// ClassFixedShare is a Quranic fixed-fraction heir.
	ClassFixedShare ShareClassValue = "fixed_share"

	// ClassResiduary is an agnatic heir taking whatever remains after
	// the fixed shares.
	ClassResiduary ShareClassValue = "residuary"
)

// ShareStatusValue represents the allocation outcome for one heir
// category within a ruling.
type ShareStatusValue string

const (
	// ShareExcluded means the category was blocked by a nearer relative
	// and received nothing.
	ShareExcluded ShareStatusValue = "excluded"

	// ShareFixed means the category received its fixed Quranic fraction.
	ShareFixed ShareStatusValue = "fixed_share"

	// ShareResiduary means the category received a portion of the residue.
	ShareResiduary ShareStatusValue = "residuary"

	// ShareAwlAdjusted means the fixed fraction was scaled down during
	// proportional reduction.
	ShareAwlAdjusted ShareStatusValue = "awl_adjusted"

	// ShareRaddAdjusted means the share was increased by proportional
	// return of the surplus.
	ShareRaddAdjusted ShareStatusValue = "radd_adjusted"

	// ShareNotAllocated means the category survived exclusion but ended
	// with nothing, such as a residuary heir under a fully consumed estate.
	ShareNotAllocated ShareStatusValue = "not_allocated"
)
