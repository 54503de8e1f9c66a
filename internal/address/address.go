// Package address handles the chain-native textual address form: validation
// and canonicalization into the chain-neutral key used by balance lookups.
package address

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// EncodedLength is the expected textual length of a well-formed address.
// A cheap pre-filter only; decode validation is still authoritative.
const EncodedLength = 44

// PublicKeyLength is the raw byte length an address must decode to.
const PublicKeyLength = 32

// DecodeError reports an address that could not be decoded into raw public
// key bytes.
type DecodeError struct {
	Address string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode address %q: %v", e.Address, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsWellFormed reports whether addr has the chain's expected textual length.
func IsWellFormed(addr string) bool {
	return len(addr) == EncodedLength
}

// Decode turns a chain-native address into its raw public key bytes.
func Decode(addr string) ([]byte, error) {
	if !IsWellFormed(addr) {
		return nil, &DecodeError{Address: addr, Err: fmt.Errorf("expected %d characters, got %d", EncodedLength, len(addr))}
	}
	raw, err := base58.Decode(addr)
	if err != nil {
		return nil, &DecodeError{Address: addr, Err: err}
	}
	if len(raw) != PublicKeyLength {
		return nil, &DecodeError{Address: addr, Err: fmt.Errorf("expected %d raw bytes, got %d", PublicKeyLength, len(raw))}
	}
	return raw, nil
}

// Canonicalize maps a chain-native address to the canonical key form used by
// balance snapshots and the balance service. Deterministic and total over
// syntactically valid addresses: decode then re-encode, which strips any
// non-canonical base58 spelling.
func Canonicalize(addr string) (string, error) {
	raw, err := Decode(addr)
	if err != nil {
		return "", err
	}
	return base58.Encode(raw), nil
}
