package balance

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokengate/internal/uintrange"
)

func rng(start, end uint64) uintrange.UintRange {
	return uintrange.UintRange{Start: uintrange.NewUint(start), End: uintrange.NewUint(end)}
}

func ownedTotals(t *testing.T, owned []OwnedAmount) map[string]string {
	t.Helper()
	out := make(map[string]string, len(owned))
	for _, oa := range owned {
		out[oa.AssetRange.String()] = oa.Amount.String()
	}
	return out
}

var allTimes = []uintrange.UintRange{rng(0, 18446744073709551615)}

func TestOwnedAmounts_NoIntersection(t *testing.T) {
	held := []Balance{{
		Amount:         uintrange.NewUint(3),
		BadgeIDRanges:  []uintrange.UintRange{rng(100, 200)},
		OwnershipTimes: allTimes,
	}}

	owned := OwnedAmounts([]uintrange.UintRange{rng(1, 10)}, allTimes, held)

	require.Len(t, owned, 1)
	assert.Equal(t, "[1, 10]", owned[0].AssetRange.String())
	assert.True(t, owned[0].Amount.IsZero(), "non-intersecting request owns zero, not an error")
}

func TestOwnedAmounts_AdditiveAcrossBalances(t *testing.T) {
	held := []Balance{
		{Amount: uintrange.NewUint(2), BadgeIDRanges: []uintrange.UintRange{rng(1, 10)}, OwnershipTimes: allTimes},
		{Amount: uintrange.NewUint(3), BadgeIDRanges: []uintrange.UintRange{rng(1, 10)}, OwnershipTimes: allTimes},
	}

	owned := OwnedAmounts([]uintrange.UintRange{rng(1, 10)}, allTimes, held)

	require.Len(t, owned, 1)
	assert.Equal(t, "5", owned[0].Amount.String(), "overlapping balances sum, they do not override")
}

func TestOwnedAmounts_PartialOverlapSegments(t *testing.T) {
	held := []Balance{
		{Amount: uintrange.NewUint(1), BadgeIDRanges: []uintrange.UintRange{rng(1, 6)}, OwnershipTimes: allTimes},
		{Amount: uintrange.NewUint(4), BadgeIDRanges: []uintrange.UintRange{rng(4, 8)}, OwnershipTimes: allTimes},
	}

	owned := OwnedAmounts([]uintrange.UintRange{rng(1, 10)}, allTimes, held)

	assert.Equal(t, map[string]string{
		"[1, 3]":  "1",
		"[4, 6]":  "5",
		"[7, 8]":  "4",
		"[9, 10]": "0",
	}, ownedTotals(t, owned))

	// Output is disjoint and sorted.
	for i := 1; i < len(owned); i++ {
		assert.True(t, owned[i-1].AssetRange.End.Cmp(owned[i].AssetRange.Start) < 0)
	}
}

func TestOwnedAmounts_PermutationInvariance(t *testing.T) {
	held := []Balance{
		{Amount: uintrange.NewUint(1), BadgeIDRanges: []uintrange.UintRange{rng(1, 5)}, OwnershipTimes: allTimes},
		{Amount: uintrange.NewUint(7), BadgeIDRanges: []uintrange.UintRange{rng(3, 9)}, OwnershipTimes: allTimes},
		{Amount: uintrange.NewUint(2), BadgeIDRanges: []uintrange.UintRange{rng(8, 20)}, OwnershipTimes: allTimes},
		{Amount: uintrange.NewUint(5), BadgeIDRanges: []uintrange.UintRange{rng(2, 2), rng(15, 18)}, OwnershipTimes: allTimes},
	}
	requested := []uintrange.UintRange{rng(1, 25)}

	want := ownedTotals(t, OwnedAmounts(requested, allTimes, held))

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]Balance(nil), held...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, ownedTotals(t, OwnedAmounts(requested, allTimes, shuffled)))
	}
}

func TestOwnedAmounts_TimeWindowFiltering(t *testing.T) {
	held := []Balance{
		{Amount: uintrange.NewUint(9), BadgeIDRanges: []uintrange.UintRange{rng(1, 10)}, OwnershipTimes: []uintrange.UintRange{rng(0, 99)}},
		{Amount: uintrange.NewUint(4), BadgeIDRanges: []uintrange.UintRange{rng(1, 10)}, OwnershipTimes: []uintrange.UintRange{rng(100, 200)}},
	}

	// Only the second balance is valid at instant 150.
	owned := OwnedAmounts([]uintrange.UintRange{rng(1, 10)}, []uintrange.UintRange{rng(150, 150)}, held)

	require.Len(t, owned, 1)
	assert.Equal(t, "4", owned[0].Amount.String(), "balances outside the requested window contribute zero")
}

func TestOwnedAmounts_MergesRequestedRanges(t *testing.T) {
	held := []Balance{
		{Amount: uintrange.NewUint(2), BadgeIDRanges: []uintrange.UintRange{rng(1, 20)}, OwnershipTimes: allTimes},
	}

	// Overlapping requested ranges must not double count or emit overlapping output.
	owned := OwnedAmounts([]uintrange.UintRange{rng(1, 10), rng(5, 15)}, allTimes, held)

	require.Len(t, owned, 1)
	assert.Equal(t, "[1, 15]", owned[0].AssetRange.String())
	assert.Equal(t, "2", owned[0].Amount.String())
}

func TestOwnedAmounts_EmptyInputs(t *testing.T) {
	assert.Empty(t, OwnedAmounts(nil, allTimes, nil))

	owned := OwnedAmounts([]uintrange.UintRange{rng(1, 5)}, allTimes, nil)
	require.Len(t, owned, 1)
	assert.True(t, owned[0].Amount.IsZero())
}
