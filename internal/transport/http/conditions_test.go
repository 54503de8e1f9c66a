package httptransport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokengate/internal/policy"
)

func decodeConditions(t *testing.T, raw string) (policy.ConditionNode, error) {
	t.Helper()
	var dto conditionDTO
	require.NoError(t, json.Unmarshal([]byte(raw), &dto))
	return dto.toNode()
}

func TestConditionDTO_NestedTree(t *testing.T) {
	node, err := decodeConditions(t, `{
		"and": [
			{"or": [
				{"group": {"requirements": [{
					"chain": "bitbadges", "collectionId": "1",
					"badgeIds": [{"start": "1", "end": "10"}],
					"amountRange": {"start": "1", "end": "1"}
				}]}},
				{"group": {"requirements": [], "policy": {"kind": "allOf"}}}
			]},
			{"group": {
				"requirements": [{
					"chain": "bitbadges", "collectionId": "2",
					"badgeIds": [{"start": "5", "end": "5"}],
					"ownershipTimes": [{"start": "0", "end": "100"}],
					"amountRange": {"start": "0", "end": "0"}
				}],
				"policy": {"kind": "atLeastK", "k": "1"}
			}}
		]
	}`)
	require.NoError(t, err)

	and, ok := node.(policy.AndNode)
	require.True(t, ok)
	require.Len(t, and.Children, 2)

	_, ok = and.Children[0].(policy.OrNode)
	assert.True(t, ok)

	leafNode, ok := and.Children[1].(policy.LeafNode)
	require.True(t, ok)
	assert.Equal(t, policy.PolicyAtLeastK, leafNode.Group.Policy.Kind)
	assert.Equal(t, uint64(1), leafNode.Group.Policy.K)
	require.Len(t, leafNode.Group.Requirements, 1)
	assert.Equal(t, "2", leafNode.Group.Requirements[0].CollectionID)
	assert.Equal(t, "[0, 100]", leafNode.Group.Requirements[0].OwnershipTimes[0].String())
}

func TestConditionDTO_DefaultsToAllOf(t *testing.T) {
	node, err := decodeConditions(t, `{"group": {"requirements": []}}`)
	require.NoError(t, err)
	leafNode, ok := node.(policy.LeafNode)
	require.True(t, ok)
	assert.Equal(t, policy.PolicyAllOf, leafNode.Group.Policy.Kind)
}

func TestConditionDTO_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty node", raw: `{}`},
		{name: "two variants", raw: `{"and": [{"group": {"requirements": []}}], "group": {"requirements": []}}`},
		{name: "unknown policy kind", raw: `{"group": {"requirements": [], "policy": {"kind": "someOf"}}}`},
		{name: "zero threshold", raw: `{"group": {"requirements": [], "policy": {"kind": "atLeastK", "k": "0"}}}`},
		{name: "non-numeric threshold", raw: `{"group": {"requirements": [], "policy": {"kind": "atLeastK", "k": "two"}}}`},
		{name: "invalid nested child", raw: `{"and": [{}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeConditions(t, tc.raw)
			require.Error(t, err)
		})
	}
}
