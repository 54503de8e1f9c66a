package balance

import (
	"errors"
	"fmt"
)

// Resolution failures are infrastructure errors, never "owns zero": they
// abort a policy evaluation regardless of AND/OR/threshold structure, because
// swallowing them would turn an outage into an authorization decision.

// ResolutionError wraps a transport or backend failure while fetching
// balances from the remote service.
type ResolutionError struct {
	CollectionID string
	Address      string
	StatusCode   int // zero when the request never completed
	Err          error
}

func (e *ResolutionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("balance lookup for collection %s, address %s: status %d", e.CollectionID, e.Address, e.StatusCode)
	}
	return fmt.Sprintf("balance lookup for collection %s, address %s: %v", e.CollectionID, e.Address, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// UnsupportedCollectionKindError marks a collection identifier that names an
// aggregate membership list rather than a numeric badge collection. Lists
// have no per-badge balances to intersect, so they fail loudly instead of
// silently resolving to empty.
type UnsupportedCollectionKindError struct {
	CollectionID string
}

func (e *UnsupportedCollectionKindError) Error() string {
	return fmt.Sprintf("collection %q is a membership list, not a badge collection", e.CollectionID)
}

// UnsupportedChainError marks a requirement whose chain tag has no balance
// backend wired.
type UnsupportedChainError struct {
	Chain string
}

func (e *UnsupportedChainError) Error() string {
	return fmt.Sprintf("no balance backend for chain %q", e.Chain)
}

// IsFatal reports whether err belongs to the resolution error taxonomy.
// All of them are fatal to an evaluation.
func IsFatal(err error) bool {
	var re *ResolutionError
	var ce *UnsupportedCollectionKindError
	var che *UnsupportedChainError
	return errors.As(err, &re) || errors.As(err, &ce) || errors.As(err, &che)
}
