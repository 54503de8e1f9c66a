package httptransport

import (
	"fmt"
	"strconv"

	"tokengate/internal/policy"
	"tokengate/internal/uintrange"
)

// conditionDTO is the wire form of the condition tree: a tagged union with
// exactly one of "and", "or", or "group" set per node.
type conditionDTO struct {
	And   []conditionDTO `json:"and,omitempty"`
	Or    []conditionDTO `json:"or,omitempty"`
	Group *groupDTO      `json:"group,omitempty"`
}

type groupDTO struct {
	Requirements []requirementDTO `json:"requirements"`
	Policy       *policyDTO       `json:"policy,omitempty"`
}

// policyDTO selects the satisfaction policy. Kind "allOf" needs no K;
// "atLeastK" carries the threshold as a decimal string like every other
// integer on the wire.
type policyDTO struct {
	Kind string `json:"kind"`
	K    string `json:"k,omitempty"`
}

type requirementDTO struct {
	Chain          string                `json:"chain"`
	CollectionID   string                `json:"collectionId"`
	BadgeIDs       []uintrange.UintRange `json:"badgeIds"`
	OwnershipTimes []uintrange.UintRange `json:"ownershipTimes,omitempty"`
	AmountRange    uintrange.UintRange   `json:"amountRange"`
}

// toNode converts the wire form into the policy package's closed sum type,
// rejecting nodes that set zero or several variants.
func (c conditionDTO) toNode() (policy.ConditionNode, error) {
	set := 0
	if len(c.And) > 0 {
		set++
	}
	if len(c.Or) > 0 {
		set++
	}
	if c.Group != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("condition node must set exactly one of \"and\", \"or\", \"group\"")
	}

	switch {
	case len(c.And) > 0:
		children, err := toChildren(c.And)
		if err != nil {
			return nil, err
		}
		return policy.AndNode{Children: children}, nil
	case len(c.Or) > 0:
		children, err := toChildren(c.Or)
		if err != nil {
			return nil, err
		}
		return policy.OrNode{Children: children}, nil
	default:
		group, err := c.Group.toGroup()
		if err != nil {
			return nil, err
		}
		return policy.LeafNode{Group: group}, nil
	}
}

func toChildren(dtos []conditionDTO) ([]policy.ConditionNode, error) {
	children := make([]policy.ConditionNode, 0, len(dtos))
	for _, dto := range dtos {
		child, err := dto.toNode()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (g groupDTO) toGroup() (policy.RequirementGroup, error) {
	satisfaction := policy.AllOf()
	if g.Policy != nil {
		switch g.Policy.Kind {
		case "", string(policy.PolicyAllOf):
		case string(policy.PolicyAtLeastK):
			k, err := strconv.ParseUint(g.Policy.K, 10, 64)
			if err != nil {
				return policy.RequirementGroup{}, fmt.Errorf("invalid threshold %q", g.Policy.K)
			}
			satisfaction, err = policy.AtLeastK(k)
			if err != nil {
				return policy.RequirementGroup{}, err
			}
		default:
			return policy.RequirementGroup{}, fmt.Errorf("unknown policy kind %q", g.Policy.Kind)
		}
	}

	requirements := make([]policy.OwnershipRequirement, 0, len(g.Requirements))
	for _, r := range g.Requirements {
		requirements = append(requirements, policy.OwnershipRequirement{
			Chain:          r.Chain,
			CollectionID:   r.CollectionID,
			AssetIDRanges:  r.BadgeIDs,
			OwnershipTimes: r.OwnershipTimes,
			AmountRange:    r.AmountRange,
		})
	}
	return policy.RequirementGroup{Requirements: requirements, Policy: satisfaction}, nil
}
