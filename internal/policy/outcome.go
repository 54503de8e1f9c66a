package policy

import (
	"fmt"

	"tokengate/internal/uintrange"
)

// ViolationKind classifies why a policy denied.
type ViolationKind string

const (
	// ViolationTooLittle: owned amount fell below the minimum bound.
	ViolationTooLittle ViolationKind = "too_little"
	// ViolationTooMuch: owned amount exceeded the maximum bound.
	ViolationTooMuch ViolationKind = "too_much"
	// ViolationNoAlternative: every branch of an OR group was tried and none accepted.
	ViolationNoAlternative ViolationKind = "no_alternative"
	// ViolationInsufficientMatches: fewer sub-checks passed than the threshold requires.
	ViolationInsufficientMatches ViolationKind = "insufficient_matches"
)

// Denial carries the structured context of a refusal so callers and tests can
// branch on fields instead of string-matching. Reason renders the auditable
// human-readable form.
type Denial struct {
	Address      string
	CollectionID string
	AssetRange   *uintrange.UintRange
	Violation    ViolationKind
	Owned        uintrange.Uint
	Bound        uintrange.Uint
	Satisfied    uint64
	Required     uint64
	Alternatives int
}

// Reason renders the denial for audit logs and API responses: which address,
// which collection and sub-range, and which bound was crossed.
func (d *Denial) Reason() string {
	switch d.Violation {
	case ViolationTooLittle:
		return fmt.Sprintf("address %s owns %s of badges %s in collection %s, below the minimum %s",
			d.Address, d.Owned, d.AssetRange, d.CollectionID, d.Bound)
	case ViolationTooMuch:
		return fmt.Sprintf("address %s owns %s of badges %s in collection %s, above the maximum %s",
			d.Address, d.Owned, d.AssetRange, d.CollectionID, d.Bound)
	case ViolationNoAlternative:
		return fmt.Sprintf("address %s satisfied none of the %d alternatives", d.Address, d.Alternatives)
	case ViolationInsufficientMatches:
		return fmt.Sprintf("address %s satisfied %d of %d required ownership checks",
			d.Address, d.Satisfied, d.Required)
	}
	return fmt.Sprintf("address %s denied", d.Address)
}

// Outcome is the single result of evaluating a condition tree: accepted, or
// denied with a reason. Never both, never partial.
type Outcome struct {
	Accepted bool
	Denial   *Denial
}

// Accept returns the accepting outcome.
func Accept() Outcome {
	return Outcome{Accepted: true}
}

// Deny returns a denying outcome with the given structured reason.
func Deny(d *Denial) Outcome {
	return Outcome{Denial: d}
}
