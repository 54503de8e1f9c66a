// Package uintrange provides the exact-integer primitives the policy engine
// computes with: non-negative arbitrary-precision integers and closed
// intervals over them. Ownership bounds compare exactly, so floating point is
// never used anywhere in this package.
package uintrange

import (
	"fmt"
	"math/big"
)

// Uint is an immutable non-negative arbitrary-precision integer.
// On the wire it is a decimal string to preserve exact-integer semantics.
//
// Usage: construct via NewUint or ParseUint at trust boundaries; the zero
// value is a valid zero.
type Uint struct {
	i *big.Int
}

// NewUint returns a Uint holding v.
func NewUint(v uint64) Uint {
	return Uint{i: new(big.Int).SetUint64(v)}
}

// ParseUint constructs a Uint from a decimal string.
//
// Errors: rejects empty strings, signs, and any non-digit character; the
// balance service encodes all amounts this way, so parse failures mean a
// malformed response, not a zero.
func ParseUint(s string) (Uint, error) {
	if s == "" {
		return Uint{}, fmt.Errorf("empty integer string")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return Uint{}, fmt.Errorf("invalid integer %q", s)
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Uint{}, fmt.Errorf("invalid integer %q", s)
	}
	return Uint{i: v}, nil
}

func (u Uint) big() *big.Int {
	if u.i == nil {
		return new(big.Int)
	}
	return u.i
}

// Cmp compares u against v: -1 if u < v, 0 if equal, +1 if u > v.
func (u Uint) Cmp(v Uint) int {
	return u.big().Cmp(v.big())
}

// Add returns u + v without mutating either operand.
func (u Uint) Add(v Uint) Uint {
	return Uint{i: new(big.Int).Add(u.big(), v.big())}
}

// Incr returns u + 1.
func (u Uint) Incr() Uint {
	return Uint{i: new(big.Int).Add(u.big(), big.NewInt(1))}
}

// Decr returns u - 1. Calling Decr on zero is a programming error; the result
// is clamped to zero so the invariant "never negative" holds regardless.
func (u Uint) Decr() Uint {
	r := new(big.Int).Sub(u.big(), big.NewInt(1))
	if r.Sign() < 0 {
		r.SetUint64(0)
	}
	return Uint{i: r}
}

// IsZero reports whether u is zero.
func (u Uint) IsZero() bool {
	return u.big().Sign() == 0
}

// String returns the decimal representation.
func (u Uint) String() string {
	return u.big().String()
}

// MarshalJSON encodes the value as a decimal string.
func (u Uint) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// UnmarshalJSON decodes a decimal string.
func (u *Uint) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("integer must be a decimal string, got %s", data)
	}
	v, err := ParseUint(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MaxUint returns the larger of a and b.
func MaxUint(a, b Uint) Uint {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// MinUint returns the smaller of a and b.
func MinUint(a, b Uint) Uint {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// UintRange is a closed interval [Start, End] over non-negative integers.
// Invariant: Start <= End. Used for asset-id spans, ownership-time windows,
// and amount bounds alike.
type UintRange struct {
	Start Uint `json:"start"`
	End   Uint `json:"end"`
}

// NewUintRange validates the interval invariant and returns the range.
func NewUintRange(start, end Uint) (UintRange, error) {
	r := UintRange{Start: start, End: end}
	if !r.Valid() {
		return UintRange{}, fmt.Errorf("invalid range [%s, %s]: start exceeds end", start, end)
	}
	return r, nil
}

// Valid reports whether Start <= End.
func (r UintRange) Valid() bool {
	return r.Start.Cmp(r.End) <= 0
}

// Contains reports whether v lies inside the closed interval.
func (r UintRange) Contains(v Uint) bool {
	return r.Start.Cmp(v) <= 0 && v.Cmp(r.End) <= 0
}

// Overlaps reports whether the two closed intervals share at least one point.
func (r UintRange) Overlaps(o UintRange) bool {
	return r.Start.Cmp(o.End) <= 0 && o.Start.Cmp(r.End) <= 0
}

// Intersect returns the overlap of two closed intervals. The second return is
// false when the intervals are disjoint.
func (r UintRange) Intersect(o UintRange) (UintRange, bool) {
	if !r.Overlaps(o) {
		return UintRange{}, false
	}
	return UintRange{Start: MaxUint(r.Start, o.Start), End: MinUint(r.End, o.End)}, true
}

// String renders the interval as [start, end].
func (r UintRange) String() string {
	return fmt.Sprintf("[%s, %s]", r.Start, r.End)
}

// AnyOverlap reports whether any range in a overlaps any range in b.
func AnyOverlap(a, b []UintRange) bool {
	for _, ra := range a {
		for _, rb := range b {
			if ra.Overlaps(rb) {
				return true
			}
		}
	}
	return false
}

// ValidateAll checks the interval invariant on every range in rs.
func ValidateAll(rs []UintRange) error {
	for _, r := range rs {
		if !r.Valid() {
			return fmt.Errorf("invalid range %s: start exceeds end", r)
		}
	}
	return nil
}
