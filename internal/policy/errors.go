package policy

import "fmt"

// InvalidRequirementError reports a leaf requirement that violates the range
// invariants. Always fatal: it aborts the whole evaluation regardless of the
// surrounding AND/OR/threshold structure.
type InvalidRequirementError struct {
	CollectionID string
	Detail       string
}

func (e *InvalidRequirementError) Error() string {
	if e.CollectionID == "" {
		return fmt.Sprintf("invalid requirement: %s", e.Detail)
	}
	return fmt.Sprintf("invalid requirement for collection %s: %s", e.CollectionID, e.Detail)
}
