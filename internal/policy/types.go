// Package policy implements the ownership condition tree and its evaluator.
// A tree combines leaf ownership requirements with AND/OR logic and
// threshold satisfaction; evaluating it yields a single accept-or-deny
// outcome with an auditable reason on denial.
package policy

import (
	"fmt"

	"tokengate/internal/uintrange"
)

// ConditionNode is the closed set of tree shapes: AndNode, OrNode, LeafNode.
// The evaluator matches exhaustively on these three, so the AND/OR/leaf
// distinction is a compile-time invariant rather than a shape check on
// optional fields.
type ConditionNode interface {
	isConditionNode()
}

// AndNode accepts iff every child accepts. Children are evaluated in
// declared order and the first denial or error stops the walk.
type AndNode struct {
	Children []ConditionNode
}

// OrNode accepts as soon as one child accepts; later children are never
// evaluated. Branch denials are expected alternatives and are swallowed, but
// infrastructure and validation errors still propagate.
type OrNode struct {
	Children []ConditionNode
}

// LeafNode holds one requirement group.
type LeafNode struct {
	Group RequirementGroup
}

func (AndNode) isConditionNode()  {}
func (OrNode) isConditionNode()   {}
func (LeafNode) isConditionNode() {}

// PolicyKind selects how many of a group's sub-checks must pass.
type PolicyKind string

const (
	// PolicyAllOf requires every sub-range of every requirement to pass.
	PolicyAllOf PolicyKind = "allOf"
	// PolicyAtLeastK requires at least K passing sub-ranges across the group.
	PolicyAtLeastK PolicyKind = "atLeastK"
)

// SatisfactionPolicy is the group's threshold rule. Construct via AllOf or
// AtLeastK; direct literals bypass the K > 0 check and are rejected at
// evaluation time instead.
type SatisfactionPolicy struct {
	Kind PolicyKind
	K    uint64
}

// AllOf returns the all-or-nothing policy.
func AllOf() SatisfactionPolicy {
	return SatisfactionPolicy{Kind: PolicyAllOf}
}

// AtLeastK returns a threshold policy requiring k passing sub-checks.
func AtLeastK(k uint64) (SatisfactionPolicy, error) {
	if k == 0 {
		return SatisfactionPolicy{}, fmt.Errorf("threshold must be positive")
	}
	return SatisfactionPolicy{Kind: PolicyAtLeastK, K: k}, nil
}

func (p SatisfactionPolicy) validate() error {
	switch p.Kind {
	case PolicyAllOf:
		return nil
	case PolicyAtLeastK:
		if p.K == 0 {
			return fmt.Errorf("atLeastK policy with zero threshold")
		}
		return nil
	default:
		return fmt.Errorf("unknown satisfaction policy %q", p.Kind)
	}
}

// RequirementGroup is a list of ownership requirements plus the policy
// deciding how many of their sub-checks must be satisfied. The legacy flat
// asset list is just a group under AllOf.
type RequirementGroup struct {
	Requirements []OwnershipRequirement
	Policy       SatisfactionPolicy
}

// OwnershipRequirement is one leaf check: the principal must hold an amount
// inside AmountRange for every asset sub-range of AssetIDRanges in the named
// collection, during OwnershipTimes. Empty OwnershipTimes means the
// instantaneous evaluation-time window.
type OwnershipRequirement struct {
	Chain          string
	CollectionID   string
	AssetIDRanges  []uintrange.UintRange
	OwnershipTimes []uintrange.UintRange
	AmountRange    uintrange.UintRange
}

// validate enforces the range invariants. Malformed bounds are a hard error
// everywhere, including inside an AtLeastK group: they mean the request
// cannot be evaluated, not that the principal owns the wrong amount.
func (r OwnershipRequirement) validate() error {
	if len(r.AssetIDRanges) == 0 {
		return &InvalidRequirementError{CollectionID: r.CollectionID, Detail: "no asset id ranges"}
	}
	if err := uintrange.ValidateAll(r.AssetIDRanges); err != nil {
		return &InvalidRequirementError{CollectionID: r.CollectionID, Detail: fmt.Sprintf("asset id ranges: %v", err)}
	}
	if err := uintrange.ValidateAll(r.OwnershipTimes); err != nil {
		return &InvalidRequirementError{CollectionID: r.CollectionID, Detail: fmt.Sprintf("ownership times: %v", err)}
	}
	if !r.AmountRange.Valid() {
		return &InvalidRequirementError{CollectionID: r.CollectionID, Detail: fmt.Sprintf("amount range %s: min exceeds max", r.AmountRange)}
	}
	return nil
}
