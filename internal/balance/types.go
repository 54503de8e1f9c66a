// Package balance resolves held balances for an address and computes the
// effective owned amounts over requested asset and time ranges.
package balance

import (
	"tokengate/internal/uintrange"
)

// Balance is one held quantity: an amount tied to a set of badge-id ranges and
// the time windows during which ownership is valid. Balances are constructed
// fresh per evaluation and never mutated.
type Balance struct {
	Amount         uintrange.Uint        `json:"amount"`
	BadgeIDRanges  []uintrange.UintRange `json:"badgeIds"`
	OwnershipTimes []uintrange.UintRange `json:"ownershipTimes"`
}

// Snapshot maps canonical addresses to the balances already known for them.
// When a snapshot is supplied, resolution is synchronous and performs no I/O;
// an address missing from the snapshot owns nothing.
type Snapshot map[string][]Balance

// SupportedChain is the only backing chain this resolver can look balances up
// on. Requirements naming any other chain fail with UnsupportedChainError.
const SupportedChain = "bitbadges"
